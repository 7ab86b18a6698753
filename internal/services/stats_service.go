// Package services – StatsService
//
// This file implements the StatsService, which assembles the /stats reply:
// one line per (direction, action) pair found in the user's ledger history,
// sent totals first, rendered through the registry's stat templates.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-slack-actions/internal/registry"
	"github.com/tbourn/go-slack-actions/internal/repo"
)

// statsSubject is the fixed subject pronoun substituted into stat templates.
const statsSubject = "You"

// statsHeader is the first line of every stats reply, history or not.
const statsHeader = "Your stats:"

// StatsService builds the per-user stats summary from the ledger aggregates.
type StatsService struct {
	// DB is the database handle used for aggregate reads.
	DB *gorm.DB
	// Registry resolves stored action keys back to their templates.
	Registry *registry.Registry
}

// Summary returns the stats text for userID: the header line, then one line
// per action the user has initiated, then one per action received. Totals
// sum across all counterparties. A stored key with no registered definition
// is skipped; a user with no history gets the header only.
//
// Storage errors are returned as-is for the handler to treat as
// infrastructure faults.
func (s *StatsService) Summary(ctx context.Context, userID string) (string, error) {
	sent, err := repo.AggregateSent(ctx, s.DB, userID)
	if err != nil {
		return "", err
	}
	received, err := repo.AggregateReceived(ctx, s.DB, userID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(statsHeader)
	for _, row := range sent {
		def, ok := s.Registry.LookupKey(row.Action)
		if !ok {
			continue
		}
		b.WriteString("\n")
		b.WriteString(registry.RenderStat(def.SendTemplate, statsSubject, row.Total))
	}
	for _, row := range received {
		def, ok := s.Registry.LookupKey(row.Action)
		if !ok {
			continue
		}
		b.WriteString("\n")
		b.WriteString(registry.RenderStat(def.ReceiveTemplate, statsSubject, row.Total))
	}
	return b.String(), nil
}
