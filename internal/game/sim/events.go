package sim

import "github.com/Faultbox/wildmere/internal/game/sheet"

// EventKind identifies a session event.
type EventKind uint8

const (
	LootDiscovered EventKind = iota + 1
	LootTaken
	LevelUp
	Saved
)

func (k EventKind) String() string {
	switch k {
	case LootDiscovered:
		return "loot_discovered"
	case LootTaken:
		return "loot_taken"
	case LevelUp:
		return "level_up"
	case Saved:
		return "saved"
	}
	return "unknown"
}

// MarshalText lets events encode with readable kinds.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is something the HUD should announce.
type Event struct {
	Kind    EventKind    `json:"kind"`
	ChestID int          `json:"chest_id,omitempty"`
	Item    sheet.ItemID `json:"item,omitempty"`
	Gold    int          `json:"gold,omitempty"`
	XP      int          `json:"xp,omitempty"`
	Level   int          `json:"level,omitempty"`
	Path    string       `json:"path,omitempty"`
	Err     error        `json:"-"`
}
