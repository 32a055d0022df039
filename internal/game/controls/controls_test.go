package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/wildmere/internal/game/sheet"
	"github.com/Faultbox/wildmere/internal/game/sim"
	"github.com/Faultbox/wildmere/pkg/math"
)

func TestMoveAxes(t *testing.T) {
	tests := []struct {
		name string
		held []Action
		want math.Vec2
	}{
		{"idle", nil, math.Vec2{}},
		{"forward", []Action{MoveForward}, math.Vec2{Y: 1}},
		{"back", []Action{MoveBack}, math.Vec2{Y: -1}},
		{"opposed", []Action{MoveForward, MoveBack}, math.Vec2{}},
		{"diagonal", []Action{MoveForward, StrafeRight}, math.Vec2{X: 1, Y: 1}},
		{"left", []Action{StrafeLeft}, math.Vec2{X: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s State
			for _, a := range tt.held {
				s.Press(a)
			}
			assert.Equal(t, tt.want, s.Intent().Move)
		})
	}
}

func TestPressedLastsOneFrame(t *testing.T) {
	var s State
	s.Press(Jump)
	s.Press(Run)
	assert.True(t, s.Intent().Jump)
	assert.True(t, s.Intent().Run)

	s.EndFrame()
	assert.False(t, s.Intent().Jump)
	assert.True(t, s.Intent().Run, "held actions survive the frame")

	// Key repeat while held does not re-trigger.
	s.Press(Jump)
	assert.False(t, s.Pressed(Jump))

	s.Release(Jump)
	s.Press(Jump)
	assert.True(t, s.Pressed(Jump))
}

func TestLookAndZoomReset(t *testing.T) {
	var s State
	s.Look(12)
	s.Look(-2)
	s.Zoom(1)
	assert.Equal(t, float32(10), s.LookDelta)
	assert.Equal(t, float32(1), s.ZoomDelta)

	s.EndFrame()
	assert.Zero(t, s.LookDelta)
	assert.Zero(t, s.ZoomDelta)
}

func TestReset(t *testing.T) {
	var s State
	s.Press(MoveForward)
	s.Press(Interact)
	s.Reset()
	assert.False(t, s.Held(MoveForward))
	assert.False(t, s.Pressed(Interact))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "quick_save", QuickSave.String())
	assert.Equal(t, "unknown", Action(200).String())
	s := State{}
	s.Press(Action(200))
	assert.False(t, s.Held(Action(200)))
}

func TestCommands(t *testing.T) {
	var s State
	assert.Empty(t, s.Commands())

	s.Press(EquipSlot3)
	s.Press(UnequipHead)
	s.Press(SpendAgility)
	assert.Equal(t, []sim.Command{
		{Kind: sim.CmdEquipIndex, Index: 2},
		{Kind: sim.CmdUnequip, Slot: sheet.SlotHead},
		{Kind: sim.CmdSpendPoint, Attribute: sheet.Agility},
	}, s.Commands())

	s.EndFrame()
	assert.Empty(t, s.Commands(), "commands fire once per press")
	assert.Equal(t, "equip_slot_9", EquipSlot9.String())
	assert.Equal(t, "spend_vitality", SpendVitality.String())
}
