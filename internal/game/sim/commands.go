package sim

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/wildmere/internal/game/sheet"
)

// CommandKind identifies a character sheet command.
type CommandKind uint8

const (
	CmdEquipIndex CommandKind = iota + 1
	CmdUnequip
	CmdSpendPoint
)

// Command is a character sheet action issued from the inventory screen.
type Command struct {
	Kind      CommandKind
	Index     int // inventory position for CmdEquipIndex
	Slot      sheet.Slot
	Attribute sheet.Attribute
}

var (
	ErrEmptyInventorySlot = errors.New("inventory slot is empty")
	ErrUnknownCommand     = errors.New("unknown command")
)

// Apply runs c against the session.
func (s *Session) Apply(c Command) error {
	switch c.Kind {
	case CmdEquipIndex:
		return s.EquipIndex(c.Index)
	case CmdUnequip:
		return s.Unequip(c.Slot)
	case CmdSpendPoint:
		return s.SpendPoint(c.Attribute)
	}
	return fmt.Errorf("%w: %d", ErrUnknownCommand, c.Kind)
}

// Equip wears item id from the inventory and updates the rig.
func (s *Session) Equip(id sheet.ItemID) error {
	if err := s.Sheet.Equip(id); err != nil {
		return fmt.Errorf("equip %s: %w", id, err)
	}
	s.rebuildRig()
	s.log.Info("item equipped", zap.String("item", string(id)))
	return nil
}

// EquipIndex equips the item at inventory position i.
func (s *Session) EquipIndex(i int) error {
	if i < 0 || i >= len(s.Sheet.Inventory) {
		return fmt.Errorf("%w: %d", ErrEmptyInventorySlot, i+1)
	}
	return s.Equip(s.Sheet.Inventory[i])
}

// Unequip returns the item in slot to the inventory and updates the rig.
func (s *Session) Unequip(slot sheet.Slot) error {
	id := s.Sheet.Equipped.Get(slot)
	if err := s.Sheet.Unequip(slot); err != nil {
		return fmt.Errorf("unequip %s: %w", slot, err)
	}
	s.rebuildRig()
	s.log.Info("item unequipped", zap.String("slot", string(slot)), zap.String("item", string(id)))
	return nil
}

// SpendPoint raises attr with one unspent point.
func (s *Session) SpendPoint(attr sheet.Attribute) error {
	if err := s.Sheet.SpendPoint(attr); err != nil {
		return fmt.Errorf("spend point on %s: %w", attr, err)
	}
	s.log.Info("point spent",
		zap.String("attribute", string(attr)),
		zap.Int("unspent", s.Sheet.Unspent))
	return nil
}
