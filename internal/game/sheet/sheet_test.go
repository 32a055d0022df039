package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGainXP(t *testing.T) {
	s := New()
	assert.Equal(t, 100, s.XPToNext())

	assert.Zero(t, s.GainXP(99))
	assert.Equal(t, 1, s.Level)

	assert.Equal(t, 1, s.GainXP(1))
	assert.Equal(t, 2, s.Level)
	assert.Zero(t, s.XP)
	assert.Equal(t, PointsPerLevel, s.Unspent)
	assert.Equal(t, BaseMaxHP+HPPerLevel, s.MaxHP)
	assert.Equal(t, s.MaxHP, s.HP)

	// 200 for level 2, 300 for level 3, 50 left over.
	assert.Equal(t, 2, s.GainXP(550))
	assert.Equal(t, 4, s.Level)
	assert.Equal(t, 50, s.XP)

	assert.Zero(t, s.GainXP(-10))
}

func TestInventoryCapacity(t *testing.T) {
	s := New()
	for i := 0; i < InventorySlots; i++ {
		require.NoError(t, s.AddItem("healing_herb"))
	}
	assert.ErrorIs(t, s.AddItem("healing_herb"), ErrInventoryFull)
	assert.ErrorIs(t, New().AddItem("moon_rock"), ErrUnknownItem)
}

func TestEquipSwapsIntoInventory(t *testing.T) {
	s := New()
	require.NoError(t, s.AddItem("rusty_sword"))
	require.NoError(t, s.AddItem("iron_sword"))

	require.NoError(t, s.Equip("rusty_sword"))
	assert.Equal(t, ItemID("rusty_sword"), s.Equipped.Weapon)
	assert.Equal(t, []ItemID{"iron_sword"}, s.Inventory)

	require.NoError(t, s.Equip("iron_sword"))
	assert.Equal(t, ItemID("iron_sword"), s.Equipped.Weapon)
	assert.Equal(t, []ItemID{"rusty_sword"}, s.Inventory)
	assert.Equal(t, 8+BaseAttribute/2, s.Damage())
}

func TestEquipErrors(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.Equip("chain_mail"), ErrNotInInventory)
	require.NoError(t, s.AddItem("healing_herb"))
	assert.ErrorIs(t, s.Equip("healing_herb"), ErrNotEquippable)
	assert.ErrorIs(t, s.Equip("nothing"), ErrUnknownItem)
}

func TestUnequip(t *testing.T) {
	s := New()
	require.NoError(t, s.AddItem("chain_mail"))
	require.NoError(t, s.Equip("chain_mail"))
	assert.Equal(t, 5, s.Armor())

	require.NoError(t, s.Unequip(SlotBody))
	assert.Empty(t, s.Equipped.Body)
	assert.Equal(t, []ItemID{"chain_mail"}, s.Inventory)
	assert.ErrorIs(t, s.Unequip(SlotBody), ErrSlotEmpty)

	require.NoError(t, s.Equip("chain_mail"))
	for len(s.Inventory) < InventorySlots {
		require.NoError(t, s.AddItem("healing_herb"))
	}
	assert.ErrorIs(t, s.Unequip(SlotBody), ErrInventoryFull)
	assert.Equal(t, ItemID("chain_mail"), s.Equipped.Body)
}

func TestSpendPoint(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.SpendPoint(Strength), ErrNoPoints)

	s.GainXP(100)
	require.NoError(t, s.SpendPoint(Strength))
	require.NoError(t, s.SpendPoint(Vitality))
	assert.ErrorIs(t, s.SpendPoint("luck"), ErrUnknownAttr)

	assert.Equal(t, BaseAttribute+1, s.Attributes.Strength)
	assert.Equal(t, BaseAttribute+1, s.Attributes.Vitality)
	assert.Equal(t, BaseMaxHP+HPPerLevel+HPPerVitality, s.MaxHP)
	assert.Equal(t, 1, s.Unspent)
}

func TestLootItem(t *testing.T) {
	for tier := 1; tier <= 3; tier++ {
		ids := ItemsForTier(tier)
		require.NotEmpty(t, ids, "tier %d", tier)

		first, ok := LootItem(tier, 0)
		require.True(t, ok)
		assert.Equal(t, ids[0], first)

		last, ok := LootItem(tier, 0.99999)
		require.True(t, ok)
		assert.Equal(t, ids[len(ids)-1], last)
	}
	_, ok := LootItem(9, 0.5)
	assert.False(t, ok)
}

func TestClone(t *testing.T) {
	s := New()
	require.NoError(t, s.AddItem("healing_herb"))
	c := s.Clone()
	c.Inventory[0] = "silver_ring"
	assert.Equal(t, ItemID("healing_herb"), s.Inventory[0])
}
