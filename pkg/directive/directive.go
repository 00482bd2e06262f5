// Package directive models the configuration entries submitted to the
// upgrade-assurance evaluator. A directive is either a bare check name,
// meaning "run with evaluator defaults", or a single-key mapping from the
// check name to its configuration options. When used in JSON or YAML
// marshalling and unmarshalling, it produces or consumes the evaluator's
// wire form directly.
package directive

import (
	"encoding/json"
	"fmt"
)

// Directive is a type that can hold a bare check name or a parameterized
// check configuration.
type Directive struct {
	Type    DirectiveType
	Name    string
	Options interface{}
}

// DirectiveType represents the stored form of a Directive.
type DirectiveType int

const (
	Bare DirectiveType = iota // The Directive holds only a check name.
	Parameterized             // The Directive holds a name and options.
)

// FromName creates a bare Directive.
func FromName(name string) Directive {
	return Directive{Type: Bare, Name: name}
}

// WithOptions creates a parameterized Directive. The options value is
// marshalled as-is under the check name, so its field tags must match the
// evaluator's expected option-key spellings exactly.
func WithOptions(name string, options interface{}) Directive {
	return Directive{Type: Parameterized, Name: name, Options: options}
}

// MarshalJSON implements the json.Marshaler interface.
func (d Directive) MarshalJSON() ([]byte, error) {
	switch d.Type {
	case Bare:
		return json.Marshal(d.Name)
	case Parameterized:
		return json.Marshal(map[string]interface{}{d.Name: d.Options})
	default:
		return nil, fmt.Errorf("impossible Directive.Type")
	}
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Directive) UnmarshalJSON(value []byte) error {
	if len(value) == 0 {
		return fmt.Errorf("cannot unmarshal empty value into a directive")
	}

	if value[0] == '"' {
		d.Type = Bare
		d.Options = nil
		return json.Unmarshal(value, &d.Name)
	}

	entries := map[string]interface{}{}
	if err := json.Unmarshal(value, &entries); err != nil {
		return err
	}
	if len(entries) != 1 {
		return fmt.Errorf("a parameterized directive must have exactly one key, got %d", len(entries))
	}

	d.Type = Parameterized
	for name, options := range entries {
		d.Name = name
		d.Options = options
	}
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface https://godoc.org/gopkg.in/yaml.v2#Marshaler
func (d Directive) MarshalYAML() (interface{}, error) {
	switch d.Type {
	case Bare:
		return d.Name, nil
	case Parameterized:
		return map[string]interface{}{d.Name: d.Options}, nil
	default:
		return nil, fmt.Errorf("impossible Directive.Type")
	}
}

// String returns the check name regardless of form.
func (d Directive) String() string {
	return d.Name
}
