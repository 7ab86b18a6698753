// Package handlers provides the HTTP handler implementations for the
// slash-command endpoints.
//
// This file defines the response utilities shared by all endpoints. The
// wire contract follows Slack's slash-command protocol, which makes the
// shapes unusual for an HTTP API:
//
//   - Successful commands answer 200 with a JSON body carrying
//     response_type ("ephemeral" or "in_channel") and text.
//   - User-facing rejections (bad token, invalid command, self-target)
//     also answer 200, but with a raw plain-text body — Slack shows that
//     text verbatim to the user.
//   - Only infrastructure faults (storage errors, panics) produce real
//     HTTP errors, as a JSON envelope with a stable machine-readable code.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-slack-actions/internal/http/middleware"
	"github.com/tbourn/go-slack-actions/internal/slackutil"
)

// SlashResponse is the JSON body Slack expects from a slash-command
// endpoint.
type SlashResponse struct {
	// ResponseType controls visibility: "ephemeral" (requester only) or
	// "in_channel" (everyone in the channel).
	ResponseType string `json:"response_type"`
	// Text is the message shown in Slack.
	Text string `json:"text"`
}

// ErrorResponse is the JSON envelope returned for infrastructure faults.
//
// Fields:
//   - RequestID: correlation ID echoed from X-Request-ID, for matching
//     server logs to client reports.
//   - Code: stable machine-readable string (see errors.go constants).
//   - Message: human-readable description.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// ephemeral writes a 200 JSON reply visible only to the requesting user.
func ephemeral(c *gin.Context, text string) {
	c.JSON(http.StatusOK, SlashResponse{
		ResponseType: slackutil.ResponseTypeEphemeral,
		Text:         text,
	})
}

// rejectText writes a user-facing rejection: plain text with a 200 status,
// per the Slack contract, and stops further processing.
func rejectText(c *gin.Context, msg string) {
	c.String(http.StatusOK, msg)
	c.Abort()
}

// fail aborts the request with the structured error envelope and logs
// server-side (5xx) errors through the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(), for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }
