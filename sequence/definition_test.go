package sequence

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefinition(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blink.yaml")

	data := `name: blink
greeting: hi
durations: [250, 1.5s]
actions:
  - frame: 0
    message: "on"
  - frame: 1
    message: "off"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	def, err := LoadDefinition(path)
	require.NoError(t, err)

	assert.Equal(t, "blink", def.Name)
	assert.Equal(t, "hi", def.Greeting)
	assert.Equal(t, path, def.Source)
	assert.Equal(t, []time.Duration{250 * ms, 1500 * ms}, def.FrameDurations())
	require.Len(t, def.Actions, 2)
	assert.Equal(t, Action{Frame: 1, Message: "off"}, def.Actions[1])

	s, err := def.Sequencer()
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestLoadDefinitionErrors(t *testing.T) {
	_, err := LoadDefinition(" ")
	require.Error(t, err)

	_, err = LoadDefinition(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseDefinitionValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"no durations", "name: x\n", ErrEmptySequence},
		{"zero duration", "durations: [1000, 0]\n", ErrInvalidDuration},
		{"action out of range", "durations: [1000]\nactions:\n  - frame: 1\n    message: nope\n", ErrFrameOutOfRange},
		{"negative action", "durations: [1000]\nactions:\n  - frame: -1\n    message: nope\n", ErrFrameOutOfRange},
		{"overflowing millis", "durations: [18446744073710]\n", ErrInvalidDuration},
		{"negative overflowing millis", "durations: [-18446744073710]\n", ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDefinition([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := ParseDefinition([]byte("durations: [soon]\n"))
	assert.Error(t, err)
}

func TestFromMillis(t *testing.T) {
	m, err := FromMillis(1500)
	require.NoError(t, err)
	assert.Equal(t, 1500*ms, time.Duration(m))

	m, err = FromMillis(math.MaxInt64 / int64(time.Millisecond))
	require.NoError(t, err)
	assert.Positive(t, time.Duration(m))

	_, err = FromMillis(math.MaxInt64/int64(time.Millisecond) + 1)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestDefaultDefinition(t *testing.T) {
	def := DefaultDefinition()
	require.NoError(t, def.Validate())
	assert.Equal(t, DefaultDurations, def.FrameDurations())
	assert.Equal(t, "hello world!", def.Greeting)
	assert.Len(t, def.Actions, 3)
}
