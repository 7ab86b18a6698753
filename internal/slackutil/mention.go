// Package slackutil bundles the small pieces of Slack protocol handling the
// service needs on top of slack-go: mention token parsing, mention
// formatting, and the response_type values used by slash-command replies.
package slackutil

import "strings"

// Slash-command response visibility values, as Slack expects them in the
// response_type field.
const (
	ResponseTypeEphemeral = "ephemeral"
	ResponseTypeInChannel = "in_channel"
)

// Mention renders a user ID as a Slack mention token, e.g. "<@U123>".
func Mention(userID string) string {
	return "<@" + userID + ">"
}

// ExtractMention pulls the target user ID out of free-form slash-command
// text. Slack escapes mentions as "<@U123|name>"; the ID is the substring
// between the first "@" and the first "|" that follows it.
//
// Degenerate inputs return "": text without an "@", without a "|" after the
// "@", or with nothing between the two markers. When several mentions are
// present the first one wins. Callers treat "" as a validation failure.
func ExtractMention(text string) string {
	at := strings.Index(text, "@")
	if at < 0 {
		return ""
	}
	rest := text[at+1:]
	pipe := strings.Index(rest, "|")
	if pipe < 0 {
		return ""
	}
	return rest[:pipe]
}
