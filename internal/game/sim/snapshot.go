package sim

import (
	"github.com/Faultbox/wildmere/internal/game/sheet"
	"github.com/Faultbox/wildmere/pkg/math"
)

// Snapshot is the read-only view the HUD and the feed consume. It shares no
// memory with the session.
type Snapshot struct {
	Frame         uint64           `json:"frame"`
	HP            int              `json:"hp"`
	MaxHP         int              `json:"max_hp"`
	XP            int              `json:"xp"`
	XPToNext      int              `json:"xp_to_next"`
	Level         int              `json:"level"`
	Gold          int              `json:"gold"`
	Attributes    sheet.Attributes `json:"attributes"`
	Unspent       int              `json:"unspent"`
	Inventory     []sheet.ItemID   `json:"inventory"`
	Equipped      sheet.Equipment  `json:"equipped"`
	Position      math.Vec3        `json:"position"`
	Yaw           float32          `json:"yaw"`
	Moving        bool             `json:"moving"`
	Jumping       bool             `json:"jumping"`
	InventoryOpen bool             `json:"inventory_open"`
	Attacking     bool             `json:"attacking"`
	Looted        int              `json:"looted"`
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	sh := s.Sheet
	inv := make([]sheet.ItemID, len(sh.Inventory))
	copy(inv, sh.Inventory)
	return Snapshot{
		Frame:         s.frame,
		HP:            sh.HP,
		MaxHP:         sh.MaxHP,
		XP:            sh.XP,
		XPToNext:      sh.XPToNext(),
		Level:         sh.Level,
		Gold:          sh.Gold,
		Attributes:    sh.Attributes,
		Unspent:       sh.Unspent,
		Inventory:     inv,
		Equipped:      sh.Equipped,
		Position:      s.Player.Position,
		Yaw:           s.Player.Yaw,
		Moving:        s.Player.Moving,
		Jumping:       s.Player.Jumping(),
		InventoryOpen: s.InventoryOpen,
		Attacking:     s.attackTimer > 0,
		Looted:        len(s.looted),
	}
}
