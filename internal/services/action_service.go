// Package services – ActionService
//
// This file implements the ActionService, the core of the action command
// flow. It validates the request (registered command, usable target, no
// self-targeting), records the occurrence in the ledger, renders the public
// message from a randomly chosen template, and hands the delayed reply to
// the notifier on a detached goroutine. Service-level errors
// (ErrUnknownCommand, ErrNoTarget, ErrSelfTarget) are returned for
// predictable cases so handlers can map them to replies consistently.
package services

import (
	"context"
	"math/rand"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-slack-actions/internal/registry"
	"github.com/tbourn/go-slack-actions/internal/repo"
	"github.com/tbourn/go-slack-actions/internal/slackutil"
)

// WebhookPoster delivers a delayed reply to a Slack response_url.
// *slackutil.Notifier satisfies it; tests substitute stubs.
type WebhookPoster interface {
	Post(ctx context.Context, responseURL, text string) error
}

// ActionResult carries everything the handler needs after a successful
// action: the rendered public message and the resulting tally.
type ActionResult struct {
	// Key is the canonical action key that was recorded.
	Key string
	// ActorID and TargetID are the validated participant identifiers.
	ActorID  string
	TargetID string
	// Count is the ledger tally for the triple after this occurrence.
	Count int64
	// Message is the public in_channel text, mentions already applied.
	Message string
}

// ActionService implements the use-cases around performing a social action.
// It is context-aware and safe for concurrent use; per-triple serialization
// of the tally update is delegated to repo.RecordOccurrence.
type ActionService struct {
	// DB is the database handle used for ledger writes.
	DB *gorm.DB
	// Registry resolves command names to action definitions.
	Registry *registry.Registry
	// Notifier posts the delayed in_channel reply.
	Notifier WebhookPoster
	// Intn selects a message template index; defaults to math/rand.
	// Injectable so tests can pin deterministic output.
	Intn func(n int) int
}

// Perform validates and records one occurrence of the named command by
// actorID, with the target parsed out of rawText.
//
// Semantics and validation:
//   - command must be registered; otherwise ErrUnknownCommand.
//   - rawText must contain a parseable user mention; otherwise ErrNoTarget.
//   - actorID must differ from the target; otherwise ErrSelfTarget.
//
// No ledger access happens on any validation failure. On success the tally
// is incremented (or created at 1) and the public message is rendered from
// one of the definition's templates, chosen uniformly at random.
func (s *ActionService) Perform(ctx context.Context, command, actorID, rawText string) (*ActionResult, error) {
	def, ok := s.Registry.Lookup(command)
	if !ok {
		return nil, ErrUnknownCommand
	}

	targetID := slackutil.ExtractMention(rawText)
	if targetID == "" {
		return nil, ErrNoTarget
	}
	if actorID == targetID {
		return nil, ErrSelfTarget
	}

	count, err := repo.RecordOccurrence(ctx, s.DB, def.Key, actorID, targetID)
	if err != nil {
		return nil, err
	}

	tmpl := def.MessageTemplates[s.intn(len(def.MessageTemplates))]
	msg := registry.RenderMessage(tmpl, slackutil.Mention(actorID), slackutil.Mention(targetID))

	return &ActionResult{
		Key:      def.Key,
		ActorID:  actorID,
		TargetID: targetID,
		Count:    count,
		Message:  msg,
	}, nil
}

// Announce delivers the public message to responseURL on a detached
// goroutine. Delivery failures are logged at debug level and otherwise
// invisible: the caller's ephemeral acknowledgment never waits on Slack.
func (s *ActionService) Announce(responseURL, text string) {
	go func() {
		// Detached from the request: the inbound context is canceled as
		// soon as the ephemeral response is written.
		if err := s.Notifier.Post(context.Background(), responseURL, text); err != nil {
			log.Debug().
				Err(err).
				Str("response_url", responseURL).
				Msg("delayed reply delivery failed")
		}
	}()
}

// intn applies the injected random source, defaulting to math/rand. n is
// always >= 1 because registry validation requires at least one template.
func (s *ActionService) intn(n int) int {
	if s.Intn != nil {
		return s.Intn(n)
	}
	return rand.Intn(n)
}
