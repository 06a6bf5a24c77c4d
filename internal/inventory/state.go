package inventory

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// State is the ground-truth state of a sample or template.
type State int

const (
	Present State = iota + 1 // part is in the tray
	Missing                  // part is absent from the tray
	Uncertain                // no ground truth
)

func (s State) String() string {
	switch s {
	case Present:
		return "present"
	case Missing:
		return "missing"
	case Uncertain:
		return "uncertain"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Evaluable reports whether s carries ground truth usable for scoring.
func (s State) Evaluable() bool {
	return s == Present || s == Missing
}

func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "present":
		return Present, nil
	case "missing":
		return Missing, nil
	case "uncertain":
		return Uncertain, nil
	default:
		return 0, fmt.Errorf("unknown state %q", s)
	}
}

func (s *State) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseState(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = parsed
	return nil
}

func (s State) MarshalYAML() (any, error) {
	return s.String(), nil
}
