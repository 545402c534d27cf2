package storage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synthchart/internal/model"
)

func TestRunJSONCodec(t *testing.T) {
	run := sampleRun("r", "2026-01-01T00:00:00Z")
	data, err := EncodeRun(run)
	require.NoError(t, err)

	decoded, err := DecodeRun(data)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, decoded.SchemaVersion)
	assert.Equal(t, run.ID, decoded.ID)
	assert.Equal(t, run.Points, decoded.Points)
}

func TestRunJSONCodecNaNAsNull(t *testing.T) {
	run := sampleRun("r", "")
	run.Points[0].Y = math.NaN()
	data, err := EncodeRun(run)
	require.NoError(t, err)

	decoded, err := DecodeRun(data)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(decoded.Points[0].Y))
}

func TestRunCBORCodec(t *testing.T) {
	run := sampleRun("r", "2026-01-01T00:00:00Z")
	data, err := EncodeRunCBOR(run)
	require.NoError(t, err)

	decoded, err := DecodeRunCBOR(data)
	require.NoError(t, err)
	assert.Equal(t, run.Request, decoded.Request)
	assert.Equal(t, run.Summary, decoded.Summary)
}

func TestDecodeRejectsVersionMismatch(t *testing.T) {
	run := sampleRun("r", "")
	run.VersionedRecord = model.VersionedRecord{SchemaVersion: 99, CodecVersion: 1}

	data, err := EncodeRun(run)
	require.NoError(t, err)
	_, err = DecodeRun(data)
	require.ErrorIs(t, err, ErrVersionMismatch)

	data, err = EncodeRunCBOR(run)
	require.NoError(t, err)
	_, err = DecodeRunCBOR(data)
	require.ErrorIs(t, err, ErrVersionMismatch)
}
