package ecs_test

import (
	"testing"

	"github.com/plus3/framestep/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 3, DY: 4})
	lonely := storage.Spawn(Position{X: 5})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	result := view.Get(id)
	require.NotNil(t, result)
	assert.Equal(t, float32(1), result.Position.X)
	assert.Equal(t, float32(4), result.Velocity.DY)

	assert.Nil(t, view.Get(lonely))
	assert.Nil(t, view.Get(ecs.NewEntityId(999, 0)))
}

func TestViewMutationIsVisible(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Health{Current: 10, Max: 100})

	view := ecs.NewView[struct{ *Health }](storage)
	for item := range view.Values() {
		item.Health.Current = 99
	}

	assert.Equal(t, 99, ecs.ReadComponent[Health](storage, id).Current)
}

func TestViewIterAcrossArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1})
	storage.Spawn(Position{X: 2}, Velocity{})
	storage.Spawn(Position{X: 3}, Health{})
	storage.Spawn(Velocity{})

	view := ecs.NewView[struct{ *Position }](storage)

	var sum float32
	count := 0
	for _, item := range view.Iter() {
		sum += item.Position.X
		count++
	}
	assert.Equal(t, 3, count)
	assert.Equal(t, float32(6), sum)
}

func TestViewIterEarlyBreak(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := range 10 {
		storage.Spawn(Score(i))
	}

	view := ecs.NewView[struct{ *Score }](storage)
	count := 0
	for range view.Iter() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestViewSkipsDeletedEntities(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	a := storage.Spawn(Score(1))
	storage.Spawn(Score(2))
	storage.Delete(a)

	view := ecs.NewView[struct{ *Score }](storage)
	var seen []Score
	for item := range view.Values() {
		seen = append(seen, *item.Score)
	}
	assert.Equal(t, []Score{2}, seen)
}

func TestViewOptionalComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	withName := storage.Spawn(Position{X: 1}, Name{Value: "a"})
	without := storage.Spawn(Position{X: 2})

	view := ecs.NewView[struct {
		*Position
		Name *Name `ecs:"optional"`
	}](storage)

	named := view.Get(withName)
	require.NotNil(t, named)
	require.NotNil(t, named.Name)
	assert.Equal(t, "a", named.Name.Value)

	plain := view.Get(without)
	require.NotNil(t, plain)
	assert.Nil(t, plain.Name)
}

func TestViewMarkerComponentFilters(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(PlayerController{}, Health{Current: 1})
	storage.Spawn(Health{Current: 2})

	view := ecs.NewView[struct {
		*PlayerController
		*Health
	}](storage)

	var currents []int
	for item := range view.Values() {
		currents = append(currents, item.Health.Current)
	}
	assert.Equal(t, []int{1}, currents)
}

func TestViewInvalidDefinitions(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Name *Name `ecs:"maybe"`
		}](storage)
	})
}
