// Positional template rendering.
//
// Templates carry opaque "{}" slots that are filled left to right with
// typed arguments. Substitution is plain string splicing, so values taken
// from user input can never be interpreted as formatting directives.
package registry

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// placeholder is the positional slot marker used by all templates.
const placeholder = "{}"

// counts are rendered with grouping separators (1,234) for readability in
// Slack messages.
var countPrinter = message.NewPrinter(language.English)

// RenderMessage fills a message template with the actor and target mention
// strings, in that order.
func RenderMessage(tmpl, actor, target string) string {
	return fill(tmpl, actor, target)
}

// RenderStat fills a stats-line template with the subject pronoun and the
// formatted occurrence total, in that order.
func RenderStat(tmpl, subject string, total int64) string {
	return fill(tmpl, subject, countPrinter.Sprintf("%d", total))
}

// fill replaces successive "{}" slots with args, left to right. Surplus
// slots are left untouched; surplus args are ignored.
func fill(tmpl string, args ...string) string {
	var b strings.Builder
	rest := tmpl
	for _, a := range args {
		i := strings.Index(rest, placeholder)
		if i < 0 {
			break
		}
		b.WriteString(rest[:i])
		b.WriteString(a)
		rest = rest[i+len(placeholder):]
	}
	b.WriteString(rest)
	return b.String()
}
