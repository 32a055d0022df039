// Package controls turns abstract player actions into per-frame intents.
// It has no window dependency; the input package feeds it from SDL events.
package controls

import (
	"github.com/Faultbox/wildmere/internal/game/entity"
	"github.com/Faultbox/wildmere/internal/game/sheet"
	"github.com/Faultbox/wildmere/internal/game/sim"
	"github.com/Faultbox/wildmere/pkg/math"
)

// Action is a bindable player action.
type Action uint8

const (
	MoveForward Action = iota
	MoveBack
	StrafeLeft
	StrafeRight
	Run
	Jump
	Interact
	Attack
	ToggleInventory
	QuickSave
	Quit
	Screenshot
	ToggleColliders
	EquipSlot1
	EquipSlot2
	EquipSlot3
	EquipSlot4
	EquipSlot5
	EquipSlot6
	EquipSlot7
	EquipSlot8
	EquipSlot9
	UnequipWeapon
	UnequipBody
	UnequipHead
	UnequipBoots
	SpendStrength
	SpendAgility
	SpendVitality
	actionCount
)

var actionNames = [actionCount]string{
	"move_forward", "move_back", "strafe_left", "strafe_right", "run", "jump",
	"interact", "attack", "toggle_inventory", "quick_save", "quit",
	"screenshot", "toggle_colliders",
	"equip_slot_1", "equip_slot_2", "equip_slot_3", "equip_slot_4", "equip_slot_5",
	"equip_slot_6", "equip_slot_7", "equip_slot_8", "equip_slot_9",
	"unequip_weapon", "unequip_body", "unequip_head", "unequip_boots",
	"spend_strength", "spend_agility", "spend_vitality",
}

var unequipSlots = map[Action]sheet.Slot{
	UnequipWeapon: sheet.SlotWeapon,
	UnequipBody:   sheet.SlotBody,
	UnequipHead:   sheet.SlotHead,
	UnequipBoots:  sheet.SlotBoots,
}

var spendAttrs = map[Action]sheet.Attribute{
	SpendStrength: sheet.Strength,
	SpendAgility:  sheet.Agility,
	SpendVitality: sheet.Vitality,
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// State accumulates actions between frames. Held actions persist until
// released; pressed actions and look deltas last one frame.
type State struct {
	held    [actionCount]bool
	pressed [actionCount]bool

	LookDelta float32 // horizontal mouse motion in pixels
	ZoomDelta float32 // wheel steps, positive zooms in
}

// Press marks a as held and pressed this frame. Key repeats are ignored.
func (s *State) Press(a Action) {
	if a >= actionCount {
		return
	}
	if !s.held[a] {
		s.pressed[a] = true
	}
	s.held[a] = true
}

// Release marks a as no longer held.
func (s *State) Release(a Action) {
	if a < actionCount {
		s.held[a] = false
	}
}

// Look adds horizontal mouse motion.
func (s *State) Look(dx float32) {
	s.LookDelta += dx
}

// Zoom adds wheel motion.
func (s *State) Zoom(dy float32) {
	s.ZoomDelta += dy
}

// Held reports whether a is down.
func (s *State) Held(a Action) bool {
	return a < actionCount && s.held[a]
}

// Pressed reports whether a went down this frame.
func (s *State) Pressed(a Action) bool {
	return a < actionCount && s.pressed[a]
}

func axis(neg, pos bool) float32 {
	var v float32
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}

// Intent builds the frame intent. LookYaw is left for the caller, which
// owns the camera.
func (s *State) Intent() entity.Intent {
	return entity.Intent{
		Move: math.Vec2{
			X: axis(s.held[StrafeLeft], s.held[StrafeRight]),
			Y: axis(s.held[MoveBack], s.held[MoveForward]),
		},
		Jump:            s.pressed[Jump],
		Interact:        s.pressed[Interact],
		Attack:          s.pressed[Attack],
		Run:             s.held[Run],
		ToggleInventory: s.pressed[ToggleInventory],
		QuickSave:       s.pressed[QuickSave],
	}
}

// Commands returns the character sheet commands pressed this frame, in
// action order.
func (s *State) Commands() []sim.Command {
	var cmds []sim.Command
	for a := EquipSlot1; a <= EquipSlot9; a++ {
		if s.pressed[a] {
			cmds = append(cmds, sim.Command{Kind: sim.CmdEquipIndex, Index: int(a - EquipSlot1)})
		}
	}
	for a := UnequipWeapon; a <= UnequipBoots; a++ {
		if s.pressed[a] {
			cmds = append(cmds, sim.Command{Kind: sim.CmdUnequip, Slot: unequipSlots[a]})
		}
	}
	for a := SpendStrength; a <= SpendVitality; a++ {
		if s.pressed[a] {
			cmds = append(cmds, sim.Command{Kind: sim.CmdSpendPoint, Attribute: spendAttrs[a]})
		}
	}
	return cmds
}

// EndFrame clears one-frame state.
func (s *State) EndFrame() {
	s.pressed = [actionCount]bool{}
	s.LookDelta = 0
	s.ZoomDelta = 0
}

// Reset releases everything, e.g. when the window loses focus.
func (s *State) Reset() {
	*s = State{}
}
