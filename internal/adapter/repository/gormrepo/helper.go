package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

// Keeps multi-row INSERTs under SQLite's bound-parameter limit.
const batchSize = 200

func existingIDs(ctx context.Context, db *gorm.DB, model any, ids []uint64) (map[uint64]struct{}, error) {
	out := make(map[uint64]struct{}, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	for start := 0; start < len(ids); start += batchSize {
		end := min(start+batchSize, len(ids))
		var found []uint64
		if err := db.WithContext(ctx).Model(model).Where("id IN ?", ids[start:end]).Pluck("id", &found).Error; err != nil {
			return nil, err
		}
		for _, id := range found {
			out[id] = struct{}{}
		}
	}
	return out, nil
}
