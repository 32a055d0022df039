// Package sheet tracks the player's progression: level, experience,
// attributes, gold, inventory and equipment.
package sheet

import (
	"errors"
	"fmt"
	"slices"
)

// Progression constants.
const (
	InventorySlots = 12
	PointsPerLevel = 3
	XPPerLevel     = 100
	BaseMaxHP      = 100
	HPPerLevel     = 10
	HPPerVitality  = 5
	BaseAttribute  = 5
)

// Errors returned by sheet operations.
var (
	ErrUnknownItem    = errors.New("unknown item")
	ErrInventoryFull  = errors.New("inventory full")
	ErrNotInInventory = errors.New("item not in inventory")
	ErrNotEquippable  = errors.New("item cannot be equipped")
	ErrSlotEmpty      = errors.New("slot is empty")
	ErrNoPoints       = errors.New("no unspent points")
	ErrUnknownAttr    = errors.New("unknown attribute")
)

// Attribute names a spendable stat.
type Attribute string

const (
	Strength Attribute = "strength"
	Agility  Attribute = "agility"
	Vitality Attribute = "vitality"
)

// Attributes are the spendable stats.
type Attributes struct {
	Strength int `yaml:"strength" json:"strength"`
	Agility  int `yaml:"agility" json:"agility"`
	Vitality int `yaml:"vitality" json:"vitality"`
}

// Equipment maps slots to worn items.
type Equipment struct {
	Weapon ItemID `yaml:"weapon,omitempty" json:"weapon,omitempty"`
	Body   ItemID `yaml:"body,omitempty" json:"body,omitempty"`
	Head   ItemID `yaml:"head,omitempty" json:"head,omitempty"`
	Boots  ItemID `yaml:"boots,omitempty" json:"boots,omitempty"`
}

func (e *Equipment) slot(s Slot) *ItemID {
	switch s {
	case SlotWeapon:
		return &e.Weapon
	case SlotBody:
		return &e.Body
	case SlotHead:
		return &e.Head
	case SlotBoots:
		return &e.Boots
	}
	return nil
}

// Get returns the item in slot s.
func (e Equipment) Get(s Slot) ItemID {
	if p := e.slot(s); p != nil {
		return *p
	}
	return ""
}

// Sheet is the player's character sheet.
type Sheet struct {
	Level      int        `yaml:"level" json:"level"`
	XP         int        `yaml:"xp" json:"xp"`
	HP         int        `yaml:"hp" json:"hp"`
	MaxHP      int        `yaml:"max_hp" json:"max_hp"`
	Gold       int        `yaml:"gold" json:"gold"`
	Attributes Attributes `yaml:"attributes" json:"attributes"`
	Unspent    int        `yaml:"unspent" json:"unspent"`
	Inventory  []ItemID   `yaml:"inventory" json:"inventory"`
	Equipped   Equipment  `yaml:"equipped" json:"equipped"`
}

// New returns a level 1 sheet.
func New() *Sheet {
	return &Sheet{
		Level:      1,
		HP:         BaseMaxHP,
		MaxHP:      BaseMaxHP,
		Attributes: Attributes{Strength: BaseAttribute, Agility: BaseAttribute, Vitality: BaseAttribute},
	}
}

// XPToNext is the experience needed to finish the current level.
func (s *Sheet) XPToNext() int {
	return XPPerLevel * s.Level
}

// GainXP adds experience and returns how many levels were gained.
func (s *Sheet) GainXP(n int) int {
	if n <= 0 {
		return 0
	}
	s.XP += n
	gained := 0
	for s.XP >= s.XPToNext() {
		s.XP -= s.XPToNext()
		s.Level++
		s.Unspent += PointsPerLevel
		s.MaxHP += HPPerLevel
		gained++
	}
	if gained > 0 {
		s.HP = s.MaxHP
	}
	return gained
}

// AddGold adds n gold.
func (s *Sheet) AddGold(n int) {
	s.Gold += n
}

// AddItem puts id in the first free inventory slot.
func (s *Sheet) AddItem(id ItemID) error {
	if _, ok := Lookup(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if len(s.Inventory) >= InventorySlots {
		return ErrInventoryFull
	}
	s.Inventory = append(s.Inventory, id)
	return nil
}

// RemoveItem takes one id out of the inventory.
func (s *Sheet) RemoveItem(id ItemID) error {
	i := slices.Index(s.Inventory, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotInInventory, id)
	}
	s.Inventory = slices.Delete(s.Inventory, i, i+1)
	return nil
}

// Equip moves id from the inventory into its slot. Whatever was in the slot
// goes back into the inventory.
func (s *Sheet) Equip(id ItemID) error {
	it, ok := Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if !it.Equippable() {
		return fmt.Errorf("%w: %s", ErrNotEquippable, id)
	}
	if err := s.RemoveItem(id); err != nil {
		return err
	}
	slot := s.Equipped.slot(it.Slot)
	if prev := *slot; prev != "" {
		s.Inventory = append(s.Inventory, prev)
	}
	*slot = id
	return nil
}

// Unequip moves the item in slot back to the inventory.
func (s *Sheet) Unequip(slot Slot) error {
	p := s.Equipped.slot(slot)
	if p == nil || *p == "" {
		return fmt.Errorf("%w: %s", ErrSlotEmpty, slot)
	}
	if len(s.Inventory) >= InventorySlots {
		return ErrInventoryFull
	}
	s.Inventory = append(s.Inventory, *p)
	*p = ""
	return nil
}

// SpendPoint raises attr by one using an unspent point.
func (s *Sheet) SpendPoint(attr Attribute) error {
	if s.Unspent <= 0 {
		return ErrNoPoints
	}
	switch attr {
	case Strength:
		s.Attributes.Strength++
	case Agility:
		s.Attributes.Agility++
	case Vitality:
		s.Attributes.Vitality++
		s.MaxHP += HPPerVitality
		s.HP += HPPerVitality
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAttr, attr)
	}
	s.Unspent--
	return nil
}

// Armor sums the armor of equipped items.
func (s *Sheet) Armor() int {
	total := 0
	for _, slot := range Slots {
		if it, ok := Lookup(s.Equipped.Get(slot)); ok {
			total += it.Armor
		}
	}
	return total
}

// Damage is weapon damage plus half of strength.
func (s *Sheet) Damage() int {
	d := 1
	if it, ok := Lookup(s.Equipped.Weapon); ok {
		d = it.Damage
	}
	return d + s.Attributes.Strength/2
}

// Clone returns a deep copy.
func (s *Sheet) Clone() *Sheet {
	c := *s
	c.Inventory = slices.Clone(s.Inventory)
	return &c
}
