package storage

import (
	"context"
	"errors"

	"synthchart/internal/model"
)

var ErrRunNotFound = errors.New("run not found")

// Store persists generated runs.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.Run) error
	GetRun(ctx context.Context, id string) (model.Run, bool, error)
	// ListRuns returns up to limit runs, newest first. limit <= 0 means all.
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)
	DeleteRun(ctx context.Context, id string) error
}
