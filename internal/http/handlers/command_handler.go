// Slash-command HTTP handlers.
//
// This file exposes the three command endpoints:
//   - POST /list    (ephemeral list of available commands)
//   - POST /stats   (ephemeral per-user tally summary)
//   - POST /action  (record an action, announce it in-channel)
//
// Handlers are transport-thin: they pull the parsed slash command out of
// the context (placed there by the token verifier), delegate to services,
// and translate results into Slack-shaped responses. Validation failures
// become plain-text 200s; only storage faults surface as HTTP errors.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"

	"github.com/tbourn/go-slack-actions/internal/http/middleware"
	"github.com/tbourn/go-slack-actions/internal/services"
)

// User-facing rejection texts. Slack renders these verbatim.
const (
	rejectInvalidCommand = "Sorry, invalid command"
	rejectSelfTarget     = "Sorry, can't perform action on yourself"
	rejectNoTarget       = "Sorry, couldn't find a user to target"
	rejectMissingUser    = "Sorry, couldn't tell who you are"

	// ackText is the ephemeral acknowledgment for a recorded action. The
	// public message goes through the response_url instead, so the direct
	// reply stays visible only to the requester.
	ackText = "You did it. Sadly Slack seems to require a message but at least it's only visible to you."
)

//
// Service contracts (context-aware)
//

// ActionPerformer records social actions and announces them.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ActionPerformer interface {
	// Perform validates and records one occurrence of command by actorID.
	Perform(ctx context.Context, command, actorID, rawText string) (*services.ActionResult, error)
	// Announce delivers the public message to responseURL without blocking.
	Announce(responseURL, text string)
}

// StatsSummarizer renders a user's tally summary.
type StatsSummarizer interface {
	Summary(ctx context.Context, userID string) (string, error)
}

// CommandLister enumerates the registered command names in a stable order.
type CommandLister interface {
	Commands() []string
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for the slash-command API. It depends
// on abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	actions ActionPerformer
	stats   StatsSummarizer
	lister  CommandLister
}

// New constructs a Handlers instance bound to the given services.
func New(actions ActionPerformer, stats StatsSummarizer, lister CommandLister) *Handlers {
	return &Handlers{actions: actions, stats: stats, lister: lister}
}

// slashCommand returns the payload parsed by the token verifier, falling
// back to parsing the request directly when a test drives the handler
// without the middleware chain.
func slashCommand(c *gin.Context) slack.SlashCommand {
	if scmd, ok := middleware.SlashCommandFrom(c); ok {
		return scmd
	}
	scmd, _ := slack.SlashCommandParse(c.Request)
	return scmd
}

// ListCommands handles POST /list: an ephemeral message naming every
// registered command, one per line, in configuration order. Pure read of
// the registry; the ledger is never touched.
func (h *Handlers) ListCommands(c *gin.Context) {
	var b strings.Builder
	b.WriteString("List of available commands:")
	for _, name := range h.lister.Commands() {
		b.WriteString("\n/")
		b.WriteString(name)
	}
	middleware.ObserveCommand("list", middleware.OutcomeOK)
	ephemeral(c, b.String())
}

// Stats handles POST /stats: an ephemeral summary of the requesting user's
// sent and received tallies.
func (h *Handlers) Stats(c *gin.Context) {
	scmd := slashCommand(c)
	if scmd.UserID == "" {
		middleware.ObserveCommand("stats", middleware.OutcomeRejected)
		rejectText(c, rejectMissingUser)
		return
	}

	text, err := h.stats.Summary(c.Request.Context(), scmd.UserID)
	if err != nil {
		middleware.ObserveCommand("stats", middleware.OutcomeError)
		fail(c, http.StatusInternalServerError, ErrCodeStatsFailed, "could not load stats")
		return
	}
	middleware.ObserveCommand("stats", middleware.OutcomeOK)
	ephemeral(c, text)
}

// Action handles POST /action: validates the command, records the
// occurrence, announces the public message through the response_url, and
// answers the requester with a private acknowledgment.
//
// The announcement is fire-and-forget; the acknowledgment is returned
// regardless of its fate.
func (h *Handlers) Action(c *gin.Context) {
	scmd := slashCommand(c)
	command := strings.TrimPrefix(scmd.Command, "/")

	res, err := h.actions.Perform(c.Request.Context(), command, scmd.UserID, scmd.Text)
	if err != nil {
		switch err {
		case services.ErrUnknownCommand:
			// Unregistered names are arbitrary user input; collapse them to
			// one label value to keep metric cardinality bounded.
			middleware.ObserveCommand("unknown", middleware.OutcomeRejected)
			rejectText(c, rejectInvalidCommand)
		case services.ErrNoTarget:
			middleware.ObserveCommand(command, middleware.OutcomeRejected)
			rejectText(c, rejectNoTarget)
		case services.ErrSelfTarget:
			middleware.ObserveCommand(command, middleware.OutcomeRejected)
			rejectText(c, rejectSelfTarget)
		default:
			middleware.ObserveCommand(command, middleware.OutcomeError)
			fail(c, http.StatusInternalServerError, ErrCodeLedgerFailed, "could not record action")
		}
		return
	}

	if scmd.ResponseURL != "" {
		h.actions.Announce(scmd.ResponseURL, res.Message)
	}

	middleware.ObserveCommand(command, middleware.OutcomeOK)
	ephemeral(c, ackText)
}
