package storage

import (
	"sort"

	"synthchart/internal/model"
)

// sortNewestFirst orders runs by creation time, breaking ties by id.
func sortNewestFirst(runs []model.Run) {
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].CreatedAtUTC == runs[j].CreatedAtUTC {
			return runs[i].ID > runs[j].ID
		}
		return runs[i].CreatedAtUTC > runs[j].CreatedAtUTC
	})
}

func applyLimit(runs []model.Run, limit int) []model.Run {
	if limit > 0 && len(runs) > limit {
		return runs[:limit]
	}
	return runs
}
