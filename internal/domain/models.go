// Package domain defines the persistence model for the action ledger.
// The types here are mapped with GORM and form the core data layer of
// the slash-command service.
package domain

import (
	"time"
)

// ActionRecord tallies how many times one user performed a given action on
// another. Exactly one row exists per (action, actor_id, target_id) triple;
// the composite unique index backs the upsert in repo.RecordOccurrence.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Action: canonical action key from the registry (e.g. "poke"). Not a
//     schema-level foreign key; the registry is configuration, not a table.
//   - ActorID / TargetID: opaque Slack user identifiers. Actor != target is
//     enforced at request time, not here.
//   - Count: occurrence counter, starts at 1 and only ever grows. Rows are
//     never deleted or archived.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type ActionRecord struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	Action    string    `json:"action"    gorm:"type:varchar(64);not null;uniqueIndex:ux_actions_action_actor_target,priority:1"`
	ActorID   string    `json:"actor_id"  gorm:"type:varchar(64);not null;uniqueIndex:ux_actions_action_actor_target,priority:2;index:idx_actions_actor"`
	TargetID  string    `json:"target_id" gorm:"type:varchar(64);not null;uniqueIndex:ux_actions_action_actor_target,priority:3;index:idx_actions_target"`
	Count     int64     `json:"count"     gorm:"not null;default:1;check:count >= 0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for ActionRecord.
func (ActionRecord) TableName() string { return "actions" }

// ActionTotal is the aggregate row shape returned by the ledger's grouped
// sum queries: one total per canonical action key.
type ActionTotal struct {
	Action string `json:"action"`
	Total  int64  `json:"total"`
}
