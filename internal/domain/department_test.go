package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDepartment_NewHasOneEmptyRow(t *testing.T) {
	d := NewDepartment()
	require.Len(t, d.LineItems, 1)
	assert.True(t, d.LineItems[0].IsEmpty())
	assert.True(t, d.Amount.IsZero())
}

func TestDepartment_AmountSumsLineItemTotals(t *testing.T) {
	d := NewDepartment()
	first := d.LineItems[0].ID
	require.NoError(t, d.SetLineItemQuantity(first, "2"))
	require.NoError(t, d.SetLineItemUnitPrice(first, "100.00"))

	second := d.AddLineItem()
	require.NoError(t, d.SetLineItemQuantity(second, "3"))
	require.NoError(t, d.SetLineItemUnitPrice(second, "50.00"))

	assert.True(t, d.Amount.Equal(amount("350.00")),
		"2x100 + 3x50 should be 350, got %s", d.Amount)
}

func TestDepartment_RemoveLineItemRecomputes(t *testing.T) {
	d := NewDepartment()
	first := d.LineItems[0].ID
	require.NoError(t, d.SetLineItemQuantity(first, "2"))
	require.NoError(t, d.SetLineItemUnitPrice(first, "100"))

	second := d.AddLineItem()
	require.NoError(t, d.SetLineItemQuantity(second, "3"))
	require.NoError(t, d.SetLineItemUnitPrice(second, "50"))

	require.NoError(t, d.RemoveLineItem(second))
	assert.True(t, d.Amount.Equal(amount("200")))
}

func TestDepartment_RemoveLastLineItemRejected(t *testing.T) {
	d := NewDepartment()
	id := d.LineItems[0].ID

	err := d.RemoveLineItem(id)
	require.Error(t, err)
	var iv *InvariantViolation
	assert.ErrorAs(t, err, &iv)
	assert.Len(t, d.LineItems, 1, "tree must be unchanged after rejected removal")
}

func TestHydrateDepartment_StoredAmountWinsUntilFirstMutation(t *testing.T) {
	li := NewLineItem()
	require.NoError(t, li.SetQuantity("2"))
	require.NoError(t, li.SetUnitPrice("100"))

	d := HydrateDepartment("", "Masonry", ContractorTurnkey, "9,999", []*LineItem{li})

	// Legacy stored amount overrides the 200 sum at load time.
	assert.True(t, d.Amount.Equal(amount("9999")), "stored amount should win, got %s", d.Amount)
	assert.True(t, d.AmountPinned())

	// First user mutation hands control back to recomputation.
	require.NoError(t, d.SetLineItemQuantity(li.ID, "3"))
	assert.False(t, d.AmountPinned())
	assert.True(t, d.Amount.Equal(amount("300")), "recomputed sum should take over, got %s", d.Amount)
}

func TestHydrateDepartment_ZeroStoredAmountRecomputes(t *testing.T) {
	li := NewLineItem()
	require.NoError(t, li.SetQuantity("4"))
	require.NoError(t, li.SetUnitPrice("25"))

	d := HydrateDepartment("", "Masonry", ContractorTurnkey, "0", []*LineItem{li})

	assert.False(t, d.AmountPinned())
	assert.True(t, d.Amount.Equal(amount("100")))
}

func TestDepartment_SwitchToLabourOnlyClearsMaterialRows(t *testing.T) {
	d := NewDepartment()
	id := d.LineItems[0].ID
	li := d.LineItem(id)
	li.ItemType = "Material"
	li.Item = "cement"
	li.Spec = "OPC 53"
	li.UOM = "bag"
	require.NoError(t, d.SetLineItemQuantity(id, "2"))
	require.NoError(t, d.SetLineItemUnitPrice(id, "100"))

	d.SetContractorMode(ContractorLabourOnly)

	assert.Empty(t, li.ItemType)
	assert.Empty(t, li.Item)
	assert.Empty(t, li.Spec)
	assert.Equal(t, "bag", li.UOM, "uom survives the mode switch")
	assert.True(t, li.Quantity.Equal(amount("2")))
	assert.True(t, li.UnitPrice.Equal(amount("100")))
	assert.True(t, d.Amount.Equal(amount("200")), "amount still based on quantity x price")
}

func TestDepartment_SwitchToLabourOnlyLeavesLabourRowsAlone(t *testing.T) {
	d := NewDepartment()
	id := d.LineItems[0].ID
	li := d.LineItem(id)
	li.ItemType = ItemTypeLabour
	li.Item = "mason"

	d.SetContractorMode(ContractorLabourOnly)

	assert.Equal(t, ItemTypeLabour, li.ItemType)
	assert.Equal(t, "mason", li.Item)
}
