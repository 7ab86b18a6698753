// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the Slack verification-token gate. Every command
// endpoint sits behind it: the form-encoded payload is parsed once, the
// token is checked against the configured secret, and the parsed command is
// stashed in the Gin context for handlers to pick up.
//
// Rejections are deliberately odd by HTTP standards: Slack renders whatever
// body comes back with a 200, so the gate answers token mismatches with a
// plain-text message and a success status instead of a 401.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
)

// slashCommandKey is the Gin context key for the parsed slash command.
const slashCommandKey = "slashCommand"

// rejectIncorrectToken is the plain-text body returned on token mismatch.
const rejectIncorrectToken = "Sorry, incorrect token"

// SlackTokenVerifier returns a middleware that parses the inbound slash
// command and verifies its token against secret before any other
// processing. On mismatch (or an unparseable body, which cannot carry a
// valid token) the request is aborted with a plain-text 200.
//
// On success the parsed slack.SlashCommand is stored in the context; use
// SlashCommandFrom to retrieve it.
func SlackTokenVerifier(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		scmd, err := slack.SlashCommandParse(c.Request)
		if err != nil || !scmd.ValidateToken(secret) {
			c.String(http.StatusOK, rejectIncorrectToken)
			c.Abort()
			return
		}
		c.Set(slashCommandKey, scmd)
		c.Next()
	}
}

// SlashCommandFrom returns the slash command parsed by SlackTokenVerifier.
// The second return is false when the verifier did not run (e.g. in tests
// exercising a handler directly).
func SlashCommandFrom(c *gin.Context) (slack.SlashCommand, bool) {
	if v, ok := c.Get(slashCommandKey); ok {
		if scmd, ok := v.(slack.SlashCommand); ok {
			return scmd, true
		}
	}
	return slack.SlashCommand{}, false
}
