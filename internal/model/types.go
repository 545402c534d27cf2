package model

import "synthchart/internal/series"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version" cbor:"schema_version"`
	CodecVersion  int `json:"codec_version" cbor:"codec_version"`
}

// Run is one persisted generation call and its output.
type Run struct {
	VersionedRecord
	ID           string           `json:"id" cbor:"id"`
	CreatedAtUTC string           `json:"created_at_utc" cbor:"created_at_utc"`
	Request      series.Request   `json:"request" cbor:"request"`
	NaNPolicy    series.NaNPolicy `json:"nan_policy" cbor:"nan_policy"`
	Seed         *int64           `json:"seed,omitempty" cbor:"seed,omitempty"`
	Kind         string           `json:"kind,omitempty" cbor:"kind,omitempty"`
	Points       []series.Point   `json:"points" cbor:"points"`
	Summary      SeriesSummary    `json:"summary" cbor:"summary"`
}

// SeriesSummary describes the y values of a series. NaN values are counted
// separately and excluded from the other fields.
type SeriesSummary struct {
	Count    int     `json:"count" cbor:"count"`
	NaNCount int     `json:"nan_count" cbor:"nan_count"`
	MinY     float64 `json:"min_y" cbor:"min_y"`
	MaxY     float64 `json:"max_y" cbor:"max_y"`
	MeanY    float64 `json:"mean_y" cbor:"mean_y"`
	StdY     float64 `json:"std_y" cbor:"std_y"`
	FirstY   float64 `json:"first_y" cbor:"first_y"`
	LastY    float64 `json:"last_y" cbor:"last_y"`
}
