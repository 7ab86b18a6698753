// Package handlers defines the HTTP-layer error codes used by the JSON
// error envelope. User-facing rejections never carry these codes — those
// are plain-text 200s by the Slack contract — so the taxonomy only covers
// transport fallbacks and infrastructure faults.
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeInternal         = "internal_error"

	// Domain-specific:
	ErrCodeLedgerFailed = "ledger_failed"
	ErrCodeStatsFailed  = "stats_failed"
)
