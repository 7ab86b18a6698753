// Package services defines the business logic for the slash-command flows.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors mark user-input validation failures. Translation into the
// plain-text replies Slack shows the user happens at the handler layer;
// anything not listed here is treated as an infrastructure (storage) fault.
package services

import "errors"

var (
	// ErrUnknownCommand is returned when the inbound command name is not
	// present in the action registry.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrNoTarget is returned when no user mention could be extracted from
	// the command text.
	ErrNoTarget = errors.New("no target user in command text")

	// ErrSelfTarget is returned when a user attempts to perform an action
	// on themselves.
	ErrSelfTarget = errors.New("cannot target yourself")
)
