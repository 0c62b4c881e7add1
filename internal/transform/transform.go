package transform

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
)

// Kind distinguishes the two Transform variants.
type Kind int

const (
	// KindSingle runs one command.
	KindSingle Kind = iota
	// KindChain runs commands in order, feeding each output into the next.
	KindChain
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindChain:
		return "chain"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Transform is a single command or an ordered chain of commands.
//
// In configuration files it is written as a string (single) or a list of
// strings (chain).
type Transform struct {
	kind     Kind
	commands []string
}

// NewSingle returns a Transform running one command.
func NewSingle(command string) Transform {
	return Transform{kind: KindSingle, commands: []string{command}}
}

// NewChain returns a Transform running commands in order.
func NewChain(commands ...string) Transform {
	cp := make([]string, len(commands))
	copy(cp, commands)
	return Transform{kind: KindChain, commands: cp}
}

// Kind reports whether t is a single command or a chain.
func (t Transform) Kind() Kind { return t.kind }

// Commands returns the commands in execution order.
func (t Transform) Commands() []string {
	cp := make([]string, len(t.commands))
	copy(cp, t.commands)
	return cp
}

func (t Transform) String() string {
	if t.kind == KindSingle && len(t.commands) == 1 {
		return t.commands[0]
	}
	return strings.Join(t.commands, " | ")
}

// Validate rejects empty chains and blank commands.
func (t Transform) Validate() error {
	if len(t.commands) == 0 {
		return errors.ValidationError("transform has no commands").
			WithContext("kind", t.kind.String()).
			Build()
	}
	for i, c := range t.commands {
		if strings.TrimSpace(c) == "" {
			return errors.ValidationError("transform command is blank").
				WithContext("kind", t.kind.String()).
				WithContext("step", i).
				Build()
		}
	}
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (t *Transform) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		*t = NewSingle(v)
		return nil
	case []any:
		cmds := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return errors.ConfigError("transform chain entries must be strings").
					WithContext("step", i).
					WithContext("type", fmt.Sprintf("%T", item)).
					Build()
			}
			cmds = append(cmds, s)
		}
		*t = NewChain(cmds...)
		return nil
	default:
		return errors.ConfigError("transform must be a string or a list of strings").
			WithContext("type", fmt.Sprintf("%T", data)).
			Build()
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Transform) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*t = NewSingle(s)
		return nil
	case yaml.SequenceNode:
		var cmds []string
		if err := node.Decode(&cmds); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "transform chain entries must be strings").
				WithContext("line", node.Line).
				Build()
		}
		*t = NewChain(cmds...)
		return nil
	default:
		return errors.ConfigError("transform must be a string or a list of strings").
			WithContext("line", node.Line).
			Build()
	}
}
