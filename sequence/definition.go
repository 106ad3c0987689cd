package sequence

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Definition describes a sequence as stored on disk.
type Definition struct {
	Name      string   `yaml:"name"`
	Greeting  string   `yaml:"greeting,omitempty"`
	Durations []Millis `yaml:"durations"`
	Actions   []Action `yaml:"actions,omitempty"`
	Source    string   `yaml:"-"`
}

// Action is the message printed when Frame becomes active.
type Action struct {
	Frame   int    `yaml:"frame"`
	Message string `yaml:"message"`
}

// Millis is a duration written in YAML either as an integer number of
// milliseconds or as a Go duration string ("1.5s").
type Millis time.Duration

const maxMillis = math.MaxInt64 / int64(time.Millisecond)

// FromMillis converts a millisecond count, failing when it does not fit in
// a time.Duration.
func FromMillis(ms int64) (Millis, error) {
	if ms > maxMillis || ms < -maxMillis {
		return 0, &ConfigurationError{
			Field: "durations",
			Err:   fmt.Errorf("%w: %dms overflows", ErrInvalidDuration, ms),
		}
	}
	return Millis(time.Duration(ms) * time.Millisecond), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Millis) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	if ms, err := strconv.ParseInt(node.Value, 10, 64); err == nil {
		v, err := FromMillis(ms)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*m = v
		return nil
	}
	d, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: parse duration %q: %w", node.Line, node.Value, err)
	}
	*m = Millis(d)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m Millis) MarshalYAML() (any, error) {
	return time.Duration(m).Milliseconds(), nil
}

// DefaultDefinition returns the three-frame demo sequence.
func DefaultDefinition() *Definition {
	def := &Definition{
		Name:     "default",
		Greeting: "hello world!",
		Actions: []Action{
			{Frame: 0, Message: "frame zero"},
			{Frame: 1, Message: "frame one"},
			{Frame: 2, Message: "frame two"},
		},
		Source: "builtin",
	}
	for _, d := range DefaultDurations {
		def.Durations = append(def.Durations, Millis(d))
	}
	return def
}

// FrameDurations converts the stored durations.
func (d *Definition) FrameDurations() []time.Duration {
	out := make([]time.Duration, len(d.Durations))
	for i, m := range d.Durations {
		out[i] = time.Duration(m)
	}
	return out
}

// Validate checks that a sequencer can be built from d and that every
// action names an existing frame.
func (d *Definition) Validate() error {
	if len(d.Durations) == 0 {
		return &ConfigurationError{Field: "durations", Err: ErrEmptySequence}
	}
	for i, m := range d.Durations {
		if m <= 0 {
			return &ConfigurationError{Field: fmt.Sprintf("durations[%d]", i), Err: ErrInvalidDuration}
		}
	}
	for i, a := range d.Actions {
		if a.Frame < 0 || a.Frame >= len(d.Durations) {
			return &ConfigurationError{
				Field: fmt.Sprintf("actions[%d].frame", i),
				Err:   fmt.Errorf("%w: %d not in [0, %d)", ErrFrameOutOfRange, a.Frame, len(d.Durations)),
			}
		}
	}
	return nil
}

// Sequencer builds a fresh sequencer from d.
func (d *Definition) Sequencer() (*Sequencer, error) {
	return New(d.FrameDurations()...)
}

// ParseDefinition decodes and validates a YAML definition.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadDefinition reads a definition from disk.
func LoadDefinition(path string) (*Definition, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sequence path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sequence %s: %w", path, err)
	}

	def, err := ParseDefinition(data)
	if err != nil {
		return nil, fmt.Errorf("parse sequence %s: %w", path, err)
	}
	def.Source = path
	return def, nil
}
