// Package repo implements the data persistence layer for the action ledger,
// backed by GORM. This file provides the aggregate queries behind /stats.
// Each function is context-aware and safe to call from services or handlers.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-slack-actions/internal/domain"
)

// AggregateSent returns, for every action the user has ever initiated, the
// summed occurrence count, grouped by canonical action key and ordered by
// key for deterministic output.
//
// A user with no history yields an empty slice, not an error.
func AggregateSent(ctx context.Context, db *gorm.DB, userID string) ([]domain.ActionTotal, error) {
	var out []domain.ActionTotal
	err := db.WithContext(ctx).
		Model(&domain.ActionRecord{}).
		Select("action, SUM(count) AS total").
		Where("actor_id = ?", userID).
		Group("action").
		Order("action").
		Scan(&out).Error
	return out, err
}

// AggregateReceived is the symmetric aggregate where the user is the target
// of the recorded actions.
func AggregateReceived(ctx context.Context, db *gorm.DB, userID string) ([]domain.ActionTotal, error) {
	var out []domain.ActionTotal
	err := db.WithContext(ctx).
		Model(&domain.ActionRecord{}).
		Select("action, SUM(count) AS total").
		Where("target_id = ?", userID).
		Group("action").
		Order("action").
		Scan(&out).Error
	return out, err
}
