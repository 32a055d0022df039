package sheet

import (
	"slices"
)

// ItemID names an entry in the item catalog.
type ItemID string

// Slot is an equipment slot.
type Slot string

const (
	SlotNone   Slot = ""
	SlotWeapon Slot = "weapon"
	SlotBody   Slot = "body"
	SlotHead   Slot = "head"
	SlotBoots  Slot = "boots"
)

// Slots lists the equipment slots in display order.
var Slots = []Slot{SlotWeapon, SlotBody, SlotHead, SlotBoots}

// Item is a static catalog entry.
type Item struct {
	ID     ItemID `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Slot   Slot   `yaml:"slot,omitempty" json:"slot,omitempty"`
	Tier   int    `yaml:"tier" json:"tier"`
	Value  int    `yaml:"value" json:"value"`
	Damage int    `yaml:"damage,omitempty" json:"damage,omitempty"`
	Armor  int    `yaml:"armor,omitempty" json:"armor,omitempty"`
}

// Equippable reports whether the item goes in a slot.
func (i Item) Equippable() bool {
	return i.Slot != SlotNone
}

var catalog = map[ItemID]Item{
	"rusty_sword":    {ID: "rusty_sword", Name: "Rusty Sword", Slot: SlotWeapon, Tier: 1, Value: 8, Damage: 4},
	"leather_jerkin": {ID: "leather_jerkin", Name: "Leather Jerkin", Slot: SlotBody, Tier: 1, Value: 10, Armor: 2},
	"cloth_hood":     {ID: "cloth_hood", Name: "Cloth Hood", Slot: SlotHead, Tier: 1, Value: 4, Armor: 1},
	"worn_boots":     {ID: "worn_boots", Name: "Worn Boots", Slot: SlotBoots, Tier: 1, Value: 5, Armor: 1},
	"healing_herb":   {ID: "healing_herb", Name: "Healing Herb", Tier: 1, Value: 3},

	"iron_sword":  {ID: "iron_sword", Name: "Iron Sword", Slot: SlotWeapon, Tier: 2, Value: 30, Damage: 8},
	"chain_mail":  {ID: "chain_mail", Name: "Chain Mail", Slot: SlotBody, Tier: 2, Value: 45, Armor: 5},
	"iron_helm":   {ID: "iron_helm", Name: "Iron Helm", Slot: SlotHead, Tier: 2, Value: 25, Armor: 3},
	"silver_ring": {ID: "silver_ring", Name: "Silver Ring", Tier: 2, Value: 40},

	"knight_blade": {ID: "knight_blade", Name: "Knight Blade", Slot: SlotWeapon, Tier: 3, Value: 90, Damage: 14},
	"plate_armor":  {ID: "plate_armor", Name: "Plate Armor", Slot: SlotBody, Tier: 3, Value: 120, Armor: 9},
	"swift_boots":  {ID: "swift_boots", Name: "Swift Boots", Slot: SlotBoots, Tier: 3, Value: 70, Armor: 3},
}

// Lookup returns the catalog entry for id.
func Lookup(id ItemID) (Item, bool) {
	it, ok := catalog[id]
	return it, ok
}

// ItemsForTier returns the ids of every item of tier, sorted.
func ItemsForTier(tier int) []ItemID {
	var ids []ItemID
	for id, it := range catalog {
		if it.Tier == tier {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// LootItem picks the item of tier selected by roll in [0, 1).
func LootItem(tier int, roll float32) (ItemID, bool) {
	ids := ItemsForTier(tier)
	if len(ids) == 0 {
		return "", false
	}
	i := min(int(roll*float32(len(ids))), len(ids)-1)
	return ids[max(i, 0)], true
}
