package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameGate(t *testing.T) {
	t.Run("fires once per entry", func(t *testing.T) {
		g := NewFrameGate(1)
		assert.False(t, g.Check(NotStarted))
		assert.False(t, g.Check(0))
		assert.True(t, g.Check(1))
		assert.False(t, g.Check(1))
		assert.False(t, g.Check(1))
	})

	t.Run("re-arms after leaving", func(t *testing.T) {
		g := NewFrameGate(0)
		assert.True(t, g.Check(0))
		assert.False(t, g.Check(0))
		assert.False(t, g.Check(1))
		assert.True(t, g.Check(0))
	})

	t.Run("first observation counts as entry", func(t *testing.T) {
		g := NewFrameGate(0)
		assert.True(t, g.Check(0))
	})

	t.Run("watches not-started marker", func(t *testing.T) {
		g := NewFrameGate(NotStarted)
		assert.Equal(t, NotStarted, g.Watched())
		assert.True(t, g.Check(NotStarted))
		assert.False(t, g.Check(NotStarted))
	})
}
