package ui

import (
	"testing"

	"github.com/Garsondee/Kickabout/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

func keys(held ...ebiten.Key) func(ebiten.Key) bool {
	set := map[ebiten.Key]bool{}
	for _, k := range held {
		set[k] = true
	}
	return func(k ebiten.Key) bool { return set[k] }
}

func TestIntent_MoveIsLevelTriggered(t *testing.T) {
	b := DefaultBindings()[game.SideLeft]
	edges := newKeyEdges()

	for i := 0; i < 3; i++ {
		in := b.intent(keys(ebiten.KeyW, ebiten.KeyD), edges)
		assert.Equal(t, game.V(1, -1), in.Move, "frame %d", i)
	}
	in := b.intent(keys(ebiten.KeyA, ebiten.KeyD), edges)
	assert.True(t, in.Move.IsZero(), "opposite keys cancel")
}

func TestIntent_ActionsArePulses(t *testing.T) {
	b := DefaultBindings()[game.SideRight]
	edges := newKeyEdges()

	in := b.intent(keys(ebiten.KeyEnter), edges)
	assert.True(t, in.Shoot)
	in = b.intent(keys(ebiten.KeyEnter), edges)
	assert.False(t, in.Shoot, "held key fires once")
	b.intent(keys(), edges)
	in = b.intent(keys(ebiten.KeyEnter, ebiten.KeySlash), edges)
	assert.True(t, in.Shoot)
	assert.True(t, in.SwitchKeeper)
	assert.False(t, in.Slide)
}

func TestIntent_SidesDoNotShareKeys(t *testing.T) {
	bs := DefaultBindings()
	edges := newKeyEdges()
	left := bs[game.SideLeft].intent(keys(ebiten.KeySpace, ebiten.KeyArrowUp), edges)
	right := bs[game.SideRight].intent(keys(ebiten.KeySpace, ebiten.KeyArrowUp), edges)

	assert.True(t, left.Shoot)
	assert.True(t, left.Move.IsZero())
	assert.False(t, right.Shoot)
	assert.Equal(t, game.V(0, -1), right.Move)
}

func TestMerge_KeepsPulsesUntilConsumed(t *testing.T) {
	p := merge(game.Intent{}, game.Intent{Shoot: true, Move: game.V(1, 0)})
	p = merge(p, game.Intent{Move: game.V(0, 1)})
	assert.True(t, p.Shoot)
	assert.Equal(t, game.V(0, 1), p.Move, "movement follows the latest frame")
}

func TestSimSpeedSteps(t *testing.T) {
	assert.Equal(t, 2.0, faster(1))
	assert.Equal(t, 4.0, faster(4))
	assert.Equal(t, 0.25, faster(0))
	assert.Equal(t, 0.5, slower(1))
	assert.Equal(t, 0.0, slower(0.25))
	assert.Equal(t, 0.0, slower(0))
}
