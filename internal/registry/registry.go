// Package registry holds the static action configuration: the mapping from
// a slash-command name to its canonical action key and response templates.
//
// The registry is populated once at process start, either from the builtin
// defaults or from a YAML file, and is read-only for the process lifetime.
// Command order is preserved so that /list output is deterministic.
package registry

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition describes one social action: the user-facing command that
// triggers it, the canonical key stored in the ledger, and the templates
// used when rendering replies.
//
// All templates use two positional "{}" slots (see template.go):
//   - SendTemplate / ReceiveTemplate: subject pronoun, total count.
//   - MessageTemplates: actor mention, target mention. One entry is chosen
//     uniformly at random per invocation.
type Definition struct {
	Command          string   `yaml:"command"`
	Key              string   `yaml:"key"`
	SendTemplate     string   `yaml:"send_template"`
	ReceiveTemplate  string   `yaml:"receive_template"`
	MessageTemplates []string `yaml:"message_templates"`
}

// Registry is an immutable, ordered collection of action definitions with
// lookup by command name and by canonical key. Safe for concurrent reads.
type Registry struct {
	defs      []Definition
	byCommand map[string]int
	byKey     map[string]int
}

// New builds a Registry from defs, preserving order. It validates each
// definition and rejects duplicate command names and duplicate keys.
func New(defs []Definition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, errors.New("registry: no actions defined")
	}
	r := &Registry{
		defs:      make([]Definition, 0, len(defs)),
		byCommand: make(map[string]int, len(defs)),
		byKey:     make(map[string]int, len(defs)),
	}
	for i, d := range defs {
		if err := validate(d); err != nil {
			return nil, fmt.Errorf("registry: action %d (%q): %w", i, d.Command, err)
		}
		if _, dup := r.byCommand[d.Command]; dup {
			return nil, fmt.Errorf("registry: duplicate command %q", d.Command)
		}
		if _, dup := r.byKey[d.Key]; dup {
			return nil, fmt.Errorf("registry: duplicate key %q", d.Key)
		}
		r.byCommand[d.Command] = len(r.defs)
		r.byKey[d.Key] = len(r.defs)
		r.defs = append(r.defs, d)
	}
	return r, nil
}

// Load returns the builtin registry when path is empty, otherwise the
// registry parsed from the YAML file at path.
func Load(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return LoadFile(path)
}

// LoadFile reads a YAML action file. The file is a sequence of definitions:
//
//	- command: poke
//	  key: poke
//	  send_template: "{} have poked people {} times"
//	  receive_template: "{} have been poked {} times"
//	  message_templates:
//	    - "{} pokes {}"
func LoadFile(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var defs []Definition
	if err := yaml.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("registry: parse %s: %w", path, err)
	}
	return New(defs)
}

// Default returns the builtin action set.
func Default() (*Registry, error) {
	return New([]Definition{
		{
			Command:         "poke",
			Key:             "poke",
			SendTemplate:    "{} have poked people {} times",
			ReceiveTemplate: "{} have been poked {} times",
			MessageTemplates: []string{
				"{} pokes {}",
				"{} gives {} a good poke",
				"{} sneaks up on {} and pokes them",
			},
		},
		{
			Command:         "hug",
			Key:             "hug",
			SendTemplate:    "{} have hugged people {} times",
			ReceiveTemplate: "{} have been hugged {} times",
			MessageTemplates: []string{
				"{} hugs {}",
				"{} gives {} a warm hug",
			},
		},
		{
			Command:         "highfive",
			Key:             "highfive",
			SendTemplate:    "{} have high-fived people {} times",
			ReceiveTemplate: "{} have been high-fived {} times",
			MessageTemplates: []string{
				"{} high-fives {}",
				"{} jumps up and high-fives {}",
			},
		},
	})
}

// Lookup returns the definition registered under the given command name.
func (r *Registry) Lookup(command string) (Definition, bool) {
	i, ok := r.byCommand[command]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// LookupKey returns the definition whose canonical key matches key. The
// ledger stores keys, not command names, so stats rendering resolves
// through this path.
func (r *Registry) LookupKey(key string) (Definition, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// Commands returns the registered command names in configuration order.
// The returned slice is a copy; callers may modify it freely.
func (r *Registry) Commands() []string {
	out := make([]string, len(r.defs))
	for i, d := range r.defs {
		out[i] = d.Command
	}
	return out
}

// Len reports the number of registered actions.
func (r *Registry) Len() int { return len(r.defs) }

func validate(d Definition) error {
	if strings.TrimSpace(d.Command) == "" {
		return errors.New("command must not be empty")
	}
	if strings.HasPrefix(d.Command, "/") {
		return errors.New("command must not include the leading slash")
	}
	if strings.TrimSpace(d.Key) == "" {
		return errors.New("key must not be empty")
	}
	if slots(d.SendTemplate) != 2 {
		return errors.New("send_template must have exactly two {} slots")
	}
	if slots(d.ReceiveTemplate) != 2 {
		return errors.New("receive_template must have exactly two {} slots")
	}
	if len(d.MessageTemplates) == 0 {
		return errors.New("at least one message template is required")
	}
	for i, t := range d.MessageTemplates {
		if slots(t) != 2 {
			return fmt.Errorf("message_templates[%d] must have exactly two {} slots", i)
		}
	}
	return nil
}

func slots(tmpl string) int {
	return strings.Count(tmpl, placeholder)
}
