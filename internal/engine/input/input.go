// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/wildmere/internal/game/controls"
)

// EventType is a window-level event the game loop reacts to directly.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventFocusLost
)

// Event represents a processed window event.
type Event struct {
	Type   EventType
	Width  int
	Height int
}

// DefaultBindings maps keys to actions.
func DefaultBindings() map[sdl.Scancode]controls.Action {
	return map[sdl.Scancode]controls.Action{
		sdl.SCANCODE_W:      controls.MoveForward,
		sdl.SCANCODE_UP:     controls.MoveForward,
		sdl.SCANCODE_S:      controls.MoveBack,
		sdl.SCANCODE_DOWN:   controls.MoveBack,
		sdl.SCANCODE_A:      controls.StrafeLeft,
		sdl.SCANCODE_D:      controls.StrafeRight,
		sdl.SCANCODE_LSHIFT: controls.Run,
		sdl.SCANCODE_SPACE:  controls.Jump,
		sdl.SCANCODE_E:      controls.Interact,
		sdl.SCANCODE_I:      controls.ToggleInventory,
		sdl.SCANCODE_TAB:    controls.ToggleInventory,
		sdl.SCANCODE_F5:     controls.QuickSave,
		sdl.SCANCODE_ESCAPE: controls.Quit,
		sdl.SCANCODE_F12:    controls.Screenshot,
		sdl.SCANCODE_F3:     controls.ToggleColliders,
		sdl.SCANCODE_1:      controls.EquipSlot1,
		sdl.SCANCODE_2:      controls.EquipSlot2,
		sdl.SCANCODE_3:      controls.EquipSlot3,
		sdl.SCANCODE_4:      controls.EquipSlot4,
		sdl.SCANCODE_5:      controls.EquipSlot5,
		sdl.SCANCODE_6:      controls.EquipSlot6,
		sdl.SCANCODE_7:      controls.EquipSlot7,
		sdl.SCANCODE_8:      controls.EquipSlot8,
		sdl.SCANCODE_9:      controls.EquipSlot9,
		sdl.SCANCODE_F6:     controls.UnequipWeapon,
		sdl.SCANCODE_F7:     controls.UnequipBody,
		sdl.SCANCODE_F8:     controls.UnequipHead,
		sdl.SCANCODE_F9:     controls.UnequipBoots,
		sdl.SCANCODE_Z:      controls.SpendStrength,
		sdl.SCANCODE_X:      controls.SpendAgility,
		sdl.SCANCODE_C:      controls.SpendVitality,
	}
}

// Input polls SDL and feeds the control state.
type Input struct {
	Bindings map[sdl.Scancode]controls.Action
	Controls controls.State

	events   []Event
	dragging bool
}

// New creates a new input handler with the default bindings.
func New() *Input {
	return &Input{
		Bindings: DefaultBindings(),
		events:   make([]Event, 0, 4),
	}
}

// Update clears last frame's one-shot state, then polls SDL events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.Controls.EndFrame()

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED:
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			case sdl.WINDOWEVENT_FOCUS_LOST:
				i.Controls.Reset()
				i.dragging = false
				i.events = append(i.events, Event{Type: EventFocusLost})
			}

		case *sdl.KeyboardEvent:
			action, ok := i.Bindings[e.Keysym.Scancode]
			if !ok {
				continue
			}
			if e.State == sdl.PRESSED {
				i.Controls.Press(action)
			} else {
				i.Controls.Release(action)
			}

		case *sdl.MouseMotionEvent:
			if i.dragging {
				i.Controls.Look(float32(e.XRel))
			}

		case *sdl.MouseButtonEvent:
			down := e.State == sdl.PRESSED
			switch e.Button {
			case sdl.BUTTON_LEFT:
				if down {
					i.Controls.Press(controls.Attack)
				} else {
					i.Controls.Release(controls.Attack)
				}
			case sdl.BUTTON_RIGHT:
				i.dragging = down
			}

		case *sdl.MouseWheelEvent:
			i.Controls.Zoom(float32(e.Y))
		}
	}

	if i.Controls.Pressed(controls.Quit) {
		quit = true
	}
	return quit
}

// Events returns the window events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
