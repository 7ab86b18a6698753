// Package repo implements the data persistence layer for the action ledger,
// backed by GORM. This file provides the ledger's single mutating operation.
//
// The repository follows a "thin" approach: it performs persistence and simple
// query composition, leaving business rules to the services package.
//
// Concurrency:
//   - RecordOccurrence must be serialized per (action, actor, target) triple
//     or concurrent identical requests would lose increments. That guarantee
//     comes from two layers: the composite unique index on the triple, and a
//     single INSERT ... ON CONFLICT DO UPDATE statement, so the increment is
//     atomic inside the storage engine rather than a read-then-write in Go.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-slack-actions/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// RecordOccurrence registers one occurrence of action by actor on target.
//
// First occurrence of a triple inserts a row with count = 1; every later
// occurrence increments the existing row's count by 1. The resulting count
// is read back inside the same transaction and returned.
//
// On failure, it returns 0 and the DB error.
func RecordOccurrence(ctx context.Context, db *gorm.DB, action, actor, target string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		rec := &domain.ActionRecord{
			ID:        uuid.NewString(),
			Action:    action,
			ActorID:   actor,
			TargetID:  target,
			Count:     1,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "action"}, {Name: "actor_id"}, {Name: "target_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count":      gorm.Expr("count + 1"),
				"updated_at": now,
			}),
		}).Create(rec).Error; err != nil {
			return err
		}

		var row domain.ActionRecord
		if err := tx.
			Where("action = ? AND actor_id = ? AND target_id = ?", action, actor, target).
			First(&row).Error; err != nil {
			return err
		}
		count = row.Count
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
