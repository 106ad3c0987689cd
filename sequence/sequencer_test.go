package sequence

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ms = time.Millisecond

func TestNewRejectsInvalidDurations(t *testing.T) {
	tests := []struct {
		name      string
		durations []time.Duration
		want      error
	}{
		{"empty", nil, ErrEmptySequence},
		{"zero", []time.Duration{1000 * ms, 0}, ErrInvalidDuration},
		{"negative", []time.Duration{-5 * ms}, ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.durations...)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, tt.want)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.NotEmpty(t, cfgErr.Field)
		})
	}

	assert.Panics(t, func() { MustNew() })
}

func TestSequencerInitialState(t *testing.T) {
	a := MustNew(DefaultDurations...)
	b := MustNew(DefaultDurations...)

	assert.Equal(t, NotStarted, a.Index())
	assert.Equal(t, time.Duration(0), a.Remaining())
	assert.Equal(t, time.Duration(0), a.Current())
	assert.Equal(t, 0.0, a.Progress())
	assert.Equal(t, *a, *b)

	require.True(t, a.Advance(1*ms))
	require.True(t, b.Advance(1*ms))
	assert.Equal(t, 0, a.Index())
	assert.Equal(t, DefaultDurations[0], a.Remaining())
	assert.Equal(t, a.Remaining(), b.Remaining())
}

func TestSequencerWrapsAround(t *testing.T) {
	s := MustNew(DefaultDurations...)

	steps := []struct {
		elapsed time.Duration
		fired   bool
		index   int
	}{
		{1000 * ms, true, 0},
		{999 * ms, false, 0},
		{1 * ms, true, 1},
		{4000 * ms, false, 1},
		{1000 * ms, true, 2},
		{10000 * ms, true, 0},
		{1000 * ms, true, 1},
	}

	for i, step := range steps {
		fired := s.Advance(step.elapsed)
		assert.Equal(t, step.fired, fired, "step %d fired", i)
		assert.Equal(t, step.index, s.Index(), "step %d index", i)
		assert.GreaterOrEqual(t, s.Remaining(), time.Duration(0))
		assert.LessOrEqual(t, s.Remaining(), s.Current())
	}
}

func TestSequencerZeroElapsedNeverFires(t *testing.T) {
	s := MustNew(DefaultDurations...)
	for range 100 {
		assert.False(t, s.Advance(0))
	}
	assert.Equal(t, NotStarted, s.Index())

	s.Advance(1 * ms)
	for range 100 {
		assert.False(t, s.Advance(0))
	}
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 1000*ms, s.Remaining())
}

func TestSequencerOvershootFiresOnce(t *testing.T) {
	s := MustNew(DefaultDurations...)
	s.Advance(1 * ms)

	// 16s covers frames 0, 1 and 2 but only one frame change happens.
	require.True(t, s.Advance(16000*ms))
	assert.Equal(t, 1, s.Index())
	assert.Equal(t, 5000*ms, s.Remaining())
}

func TestSequencerProgressAndReset(t *testing.T) {
	s := MustNew(1000 * ms)
	s.Advance(1 * ms)
	s.Advance(250 * ms)
	assert.InDelta(t, 0.25, s.Progress(), 1e-9)

	s.Reset()
	assert.Equal(t, NotStarted, s.Index())
	assert.Equal(t, 0.0, s.Progress())
}

func TestSequencerDurationsIsCopy(t *testing.T) {
	in := []time.Duration{10 * ms, 20 * ms}
	s := MustNew(in...)
	in[0] = time.Hour

	out := s.Durations()
	out[1] = time.Hour

	assert.Equal(t, []time.Duration{10 * ms, 20 * ms}, s.Durations())
	assert.Equal(t, 2, s.Len())
}
