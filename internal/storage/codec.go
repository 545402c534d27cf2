package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"synthchart/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// cborMode keeps map ordering canonical so equal runs encode identically.
var cborMode, _ = cbor.CanonicalEncOptions().EncMode()

// EncodeRun is the JSON codec used by the sqlite backend.
func EncodeRun(run model.Run) ([]byte, error) {
	return json.Marshal(stampVersion(run))
}

func DecodeRun(data []byte) (model.Run, error) {
	var run model.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return model.Run{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.Run{}, err
	}
	return run, nil
}

// EncodeRunCBOR is the binary codec used by the badger backend. Unlike JSON
// it keeps NaN values intact.
func EncodeRunCBOR(run model.Run) ([]byte, error) {
	return cborMode.Marshal(stampVersion(run))
}

func DecodeRunCBOR(data []byte) (model.Run, error) {
	var run model.Run
	if err := cbor.Unmarshal(data, &run); err != nil {
		return model.Run{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.Run{}, err
	}
	return run, nil
}

func stampVersion(run model.Run) model.Run {
	if run.SchemaVersion == 0 {
		run.SchemaVersion = CurrentSchemaVersion
	}
	if run.CodecVersion == 0 {
		run.CodecVersion = CurrentCodecVersion
	}
	return run
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return fmt.Errorf("%w: schema=%d codec=%d", ErrVersionMismatch, v.SchemaVersion, v.CodecVersion)
	}
	return nil
}
