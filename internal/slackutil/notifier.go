package slackutil

import (
	"context"
	"net/http"
	"time"

	"github.com/slack-go/slack"
)

// postWebhook is a test seam over the slack-go webhook client.
var postWebhook = slack.PostWebhookCustomHTTPContext

// Notifier posts delayed slash-command replies to the per-request
// response_url Slack supplies. Delivery is best effort: the command's
// ephemeral acknowledgment never depends on it, and failures are neither
// retried nor surfaced to the requester.
type Notifier struct {
	// Client is the HTTP client used for webhook posts. When nil,
	// http.DefaultClient is used.
	Client *http.Client
	// Timeout bounds a single delivery attempt. Zero means 5s.
	Timeout time.Duration
}

// Post delivers an in_channel message to responseURL. It blocks for at most
// the configured timeout and returns the delivery error, which callers are
// expected to swallow (optionally after logging).
func (n *Notifier) Post(ctx context.Context, responseURL, text string) error {
	timeout := n.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	msg := &slack.WebhookMessage{
		ResponseType: ResponseTypeInChannel,
		Text:         text,
	}
	return postWebhook(ctx, responseURL, client, msg)
}
