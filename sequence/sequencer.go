// Package sequence steps through an ordered list of timed frames and
// gates per-frame actions so they fire once on entry.
package sequence

import (
	"fmt"
	"time"
)

// NotStarted is the index reported before the first frame fires.
const NotStarted = -1

// DefaultDurations is the frame list the demo starts with.
var DefaultDurations = []time.Duration{
	1000 * time.Millisecond,
	5000 * time.Millisecond,
	10000 * time.Millisecond,
}

// Sequencer cycles through frames, holding each one for its duration.
// The zero value is not usable; construct with New.
type Sequencer struct {
	durations []time.Duration
	index     int
	remaining time.Duration
}

// New creates a sequencer over the given frame durations. The list must be
// non-empty and every duration positive.
func New(durations ...time.Duration) (*Sequencer, error) {
	if len(durations) == 0 {
		return nil, &ConfigurationError{Field: "durations", Err: ErrEmptySequence}
	}
	for i, d := range durations {
		if d <= 0 {
			return nil, &ConfigurationError{
				Field: fmt.Sprintf("durations[%d]", i),
				Err:   ErrInvalidDuration,
			}
		}
	}

	s := &Sequencer{durations: append([]time.Duration(nil), durations...)}
	s.Reset()
	return s, nil
}

// MustNew is like New but panics on an invalid frame list.
func MustNew(durations ...time.Duration) *Sequencer {
	s, err := New(durations...)
	if err != nil {
		panic(err)
	}
	return s
}

// Reset puts the sequencer back into its pre-start state. The next positive
// Advance enters frame 0.
func (s *Sequencer) Reset() {
	s.index = NotStarted
	s.remaining = 0
}

// Advance counts the timer down by elapsed and reports whether the active
// frame changed. At most one frame change happens per call: an elapsed value
// spanning several frames still only moves the index by one.
func (s *Sequencer) Advance(elapsed time.Duration) bool {
	if elapsed <= 0 {
		return false
	}

	s.remaining -= elapsed
	if s.remaining > 0 {
		return false
	}

	s.index++
	if s.index > len(s.durations)-1 {
		s.index = 0
	}
	s.remaining = s.durations[s.index]
	return true
}

// Index returns the active frame, or NotStarted.
func (s *Sequencer) Index() int {
	return s.index
}

// Remaining returns the time left on the active frame.
func (s *Sequencer) Remaining() time.Duration {
	return s.remaining
}

// Current returns the duration of the active frame, or 0 before the first
// frame fires.
func (s *Sequencer) Current() time.Duration {
	if s.index == NotStarted {
		return 0
	}
	return s.durations[s.index]
}

// Progress returns the elapsed fraction of the active frame in [0, 1].
func (s *Sequencer) Progress() float64 {
	current := s.Current()
	if current == 0 {
		return 0
	}
	return 1 - float64(s.remaining)/float64(current)
}

// Len returns the number of frames.
func (s *Sequencer) Len() int {
	return len(s.durations)
}

// Durations returns a copy of the frame durations.
func (s *Sequencer) Durations() []time.Duration {
	return append([]time.Duration(nil), s.durations...)
}
