package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"synthchart/internal/chart"
	"synthchart/internal/logging"
	"synthchart/internal/metrics"
	"synthchart/internal/series"
	"synthchart/internal/storage"
	synthapi "synthchart/pkg/synthchart"
)

const (
	cfgConfigFile      = "config"
	cfgLogLevel        = "log.level"
	cfgLogFormat       = "log.format"
	cfgStore           = "store"
	cfgDBPath          = "db_path"
	cfgExportsDir      = "exports_dir"
	cfgMetricsTextfile = "metrics.textfile"
	cfgSeed            = "seed"
	cfgNaNPolicy       = "nan_policy"

	cfgCount = "count"
	cfgMinX  = "x.min"
	cfgMaxX  = "x.max"
	cfgMinY  = "y.min"
	cfgMaxY  = "y.max"

	cfgRandomSpikes         = "effects.random_spikes"
	cfgSpikeChance          = "effects.spike_chance"
	cfgSpikeMultiplier      = "effects.spike_multiplier"
	cfgNoiseAmplitude       = "effects.noise_amplitude"
	cfgDriftRate            = "effects.drift_rate"
	cfgPeriodicityFrequency = "effects.periodicity_frequency"
	cfgPeriodicityAmplitude = "effects.periodicity_amplitude"
	cfgTrendSlope           = "effects.trend_slope"
	cfgCyclicJumpRate       = "effects.cyclic_jump_rate"
	cfgJumpAmplitude        = "effects.jump_amplitude"
)

func rootFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	logLevel := logging.LevelWarn
	logFormat := logging.FmtLogfmt

	fs.String(cfgConfigFile, "", "config file (yaml, json or toml)")
	fs.Var(&logLevel, cfgLogLevel, "log level")
	fs.Var(&logFormat, cfgLogFormat, "log format")
	fs.String(cfgStore, storage.DefaultStoreKind(), "store backend: memory|sqlite|badger")
	fs.String(cfgDBPath, "synthchart.db", "store path")
	fs.String(cfgExportsDir, "exports", "default export directory")
	fs.String(cfgMetricsTextfile, "", "write prometheus metrics to this file on exit")
	fs.String(cfgNaNPolicy, "corrected", "NaN step handling: corrected|legacy")
	return fs
}

// seriesFlags are shared by every command that generates a series.
func seriesFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.Int64(cfgSeed, 0, "rng seed (unset draws from the global source)")
	fs.Int(cfgCount, 10, "number of points")
	fs.Float64(cfgMinX, 0, "minimum x")
	fs.Float64(cfgMaxX, 100, "maximum x")
	fs.Float64(cfgMinY, 0, "minimum y")
	fs.Float64(cfgMaxY, 100, "maximum y")

	fs.Bool(cfgRandomSpikes, false, "enable random spikes")
	fs.Float64(cfgSpikeChance, 0, "per-point spike probability")
	fs.Float64(cfgSpikeMultiplier, 0, "spike magnitude")
	fs.Float64(cfgNoiseAmplitude, 0, "noise amplitude")
	fs.Float64(cfgDriftRate, 0, "constant drift per point")
	fs.Float64(cfgPeriodicityFrequency, 0, "sine frequency")
	fs.Float64(cfgPeriodicityAmplitude, 0, "sine amplitude")
	fs.Float64(cfgTrendSlope, 0, "constant trend per point")
	fs.Float64(cfgCyclicJumpRate, 0, "per-point jump probability")
	fs.Float64(cfgJumpAmplitude, 0, "jump magnitude")
	return fs
}

func (a *app) readConfigFile() error {
	path := a.v.GetString(cfgConfigFile)
	if path == "" {
		return nil
	}
	a.v.SetConfigFile(path)
	if err := a.v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

func (a *app) initLogging() error {
	var lvl logging.Level
	if err := lvl.Set(a.v.GetString(cfgLogLevel)); err != nil {
		return err
	}
	var format logging.Format
	if err := format.Set(a.v.GetString(cfgLogFormat)); err != nil {
		return err
	}
	err := logging.Initialize(a.stderr, format, lvl)
	if errors.Is(err, logging.ErrAlreadyInitialized) {
		return nil
	}
	return err
}

// optionalFloat returns nil unless key was given on the command line or in
// the config file.
func (a *app) optionalFloat(key string) *float64 {
	if !a.v.IsSet(key) {
		return nil
	}
	return series.Float(a.v.GetFloat64(key))
}

func (a *app) seriesRequest() series.Request {
	return series.Request{
		Count: a.v.GetInt(cfgCount),
		MinX:  a.v.GetFloat64(cfgMinX),
		MaxX:  a.v.GetFloat64(cfgMaxX),
		MinY:  a.v.GetFloat64(cfgMinY),
		MaxY:  a.v.GetFloat64(cfgMaxY),
		Effects: series.Effects{
			RandomSpikes:         a.v.GetBool(cfgRandomSpikes),
			SpikeChance:          a.optionalFloat(cfgSpikeChance),
			SpikeMultiplier:      a.optionalFloat(cfgSpikeMultiplier),
			NoiseAmplitude:       a.optionalFloat(cfgNoiseAmplitude),
			DriftRate:            a.optionalFloat(cfgDriftRate),
			PeriodicityFrequency: a.optionalFloat(cfgPeriodicityFrequency),
			PeriodicityAmplitude: a.optionalFloat(cfgPeriodicityAmplitude),
			TrendSlope:           a.optionalFloat(cfgTrendSlope),
			CyclicJumpRate:       a.optionalFloat(cfgCyclicJumpRate),
			JumpAmplitude:        a.optionalFloat(cfgJumpAmplitude),
		},
	}
}

func (a *app) generateRequest(save bool, kind string) synthapi.GenerateRequest {
	req := synthapi.GenerateRequest{
		Series: a.seriesRequest(),
		Save:   save,
		Kind:   kind,
	}
	if a.v.IsSet(cfgSeed) {
		seed := a.v.GetInt64(cfgSeed)
		req.Seed = &seed
	}
	return req
}

func (a *app) newClient() (*synthapi.Client, error) {
	policy, err := series.ParseNaNPolicy(a.v.GetString(cfgNaNPolicy))
	if err != nil {
		return nil, err
	}
	return synthapi.New(synthapi.Options{
		StoreKind:  a.v.GetString(cfgStore),
		DBPath:     a.v.GetString(cfgDBPath),
		ExportsDir: a.v.GetString(cfgExportsDir),
		NaNPolicy:  policy,
		Renderer:   chart.NewPNGRenderer(),
	})
}

// closeClient writes the metrics textfile, if configured, and closes the
// client.
func (a *app) closeClient(client *synthapi.Client) error {
	var err error
	if path := a.v.GetString(cfgMetricsTextfile); path != "" && client.Gatherer() != nil {
		err = metrics.WriteTextfile(path, client.Gatherer())
	}
	return errors.Join(err, client.Close())
}
