package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sitebudget/internal/money"
)

// LineItem is the atomic budget unit: quantity times unit price at a given
// unit of measure. Quantity and unit price keep both the raw display string
// the user typed and the parsed decimal; arithmetic only ever uses the
// parsed value.
type LineItem struct {
	ID       string
	ItemType string
	Item     string
	Spec     string
	UOM      string

	QuantityRaw  string
	Quantity     decimal.Decimal
	UnitPriceRaw string
	UnitPrice    decimal.Decimal
}

// NewLineItem returns an empty row with a fresh identity.
func NewLineItem() *LineItem {
	return &LineItem{ID: uuid.New().String()}
}

// SetQuantity parses raw formatted text into the quantity. On a parse
// failure the previous value is kept and the error is returned for inline
// display.
func (li *LineItem) SetQuantity(raw string) error {
	v, err := money.ParseAmount(raw)
	if err != nil {
		return err
	}
	li.QuantityRaw = raw
	li.Quantity = v
	return nil
}

// SetUnitPrice parses raw formatted text into the unit price, keeping the
// previous value on a parse failure.
func (li *LineItem) SetUnitPrice(raw string) error {
	v, err := money.ParseAmount(raw)
	if err != nil {
		return err
	}
	li.UnitPriceRaw = raw
	li.UnitPrice = v
	return nil
}

// Total is always derived from quantity and unit price, rounded to two
// decimal places. It is never independently settable.
func (li *LineItem) Total() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice).Round(2)
}

// SwitchItemType changes the row's item type. Crossing the labour boundary
// in either direction clears Item and Spec, since the valid item/spec
// catalog is type-dependent. The UOM resets to empty unless the new type's
// allowed UOM set still contains the current one.
func (li *LineItem) SwitchItemType(to string, catalog UOMCatalog) {
	if to == li.ItemType {
		return
	}
	if isLabour(to) != isLabour(li.ItemType) {
		li.Item = ""
		li.Spec = ""
	}
	if li.UOM != "" && !uomAllowed(to, li.UOM, catalog) {
		li.UOM = ""
	}
	li.ItemType = to
}

// ClearMaterialFields drops the type/item/spec triple, leaving quantity,
// UOM and unit price untouched. Used when a department switches to
// labour-only procurement.
func (li *LineItem) ClearMaterialFields() {
	li.ItemType = ""
	li.Item = ""
	li.Spec = ""
}

// IsEmpty reports whether the row carries no user input worth submitting.
func (li *LineItem) IsEmpty() bool {
	return li.ItemType == "" && li.Item == "" &&
		li.Quantity.IsZero() && li.UnitPrice.IsZero()
}

func uomAllowed(itemType, uom string, catalog UOMCatalog) bool {
	if catalog == nil {
		return false
	}
	for _, u := range catalog(itemType) {
		if u == uom {
			return true
		}
	}
	return false
}
