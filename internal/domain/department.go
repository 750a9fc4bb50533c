package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sitebudget/internal/money"
)

// Department is a cost-bearing subdivision of a phase. It owns an ordered
// list of line items and a derived amount equal to the sum of their totals.
//
// Hydration quirk, kept for compatibility with stored data: when a
// department is loaded with a non-zero stored amount and line items are
// also present, the stored amount wins over the recomputed sum until the
// first user mutation of any line item. After that, recomputation takes
// over unconditionally.
type Department struct {
	ID             string
	Name           string
	ContractorMode ContractorMode
	LineItems      []*LineItem
	Amount         decimal.Decimal

	// amountPinned marks a hydrated amount that has not yet been
	// superseded by a user edit.
	amountPinned bool
}

// NewDepartment returns a department holding a single empty line item,
// since the editor never shows a department with zero rows.
func NewDepartment() *Department {
	return &Department{
		ID:             uuid.New().String(),
		ContractorMode: ContractorTurnkey,
		LineItems:      []*LineItem{NewLineItem()},
	}
}

// HydrateDepartment rebuilds a department from stored or template data.
// A non-zero stored amount takes precedence over the recomputed sum when
// line items are present.
func HydrateDepartment(id, name string, mode ContractorMode, storedAmount string, items []*LineItem) *Department {
	if id == "" {
		id = uuid.New().String()
	}
	if mode == "" {
		mode = ContractorTurnkey
	}
	if len(items) == 0 {
		items = []*LineItem{NewLineItem()}
	}
	d := &Department{
		ID:             id,
		Name:           name,
		ContractorMode: mode,
		LineItems:      items,
	}

	stored, err := money.ParseAmount(storedAmount)
	if err == nil && !stored.IsZero() {
		d.Amount = stored
		d.amountPinned = true
		return d
	}
	d.RecomputeAmount()
	return d
}

// AddLineItem appends a new empty row and returns its id.
func (d *Department) AddLineItem() string {
	li := NewLineItem()
	d.LineItems = append(d.LineItems, li)
	d.markMutated()
	return li.ID
}

// RemoveLineItem deletes the row with the given id. Removing the last
// remaining row is an invariant violation: a department under edit always
// holds at least one row.
func (d *Department) RemoveLineItem(id string) error {
	idx := d.indexOf(id)
	if idx < 0 {
		return &InvariantViolation{Op: "remove line item", Reason: "line item not found: " + id}
	}
	if len(d.LineItems) == 1 {
		return &InvariantViolation{Op: "remove line item", Reason: "a department must keep at least one line item"}
	}
	d.LineItems = append(d.LineItems[:idx], d.LineItems[idx+1:]...)
	d.markMutated()
	return nil
}

// LineItem returns the row with the given id, or nil.
func (d *Department) LineItem(id string) *LineItem {
	if idx := d.indexOf(id); idx >= 0 {
		return d.LineItems[idx]
	}
	return nil
}

// SetLineItemQuantity routes a quantity edit through the department so the
// amount invariant holds after every row mutation.
func (d *Department) SetLineItemQuantity(id, raw string) error {
	li := d.LineItem(id)
	if li == nil {
		return &InvariantViolation{Op: "set quantity", Reason: "line item not found: " + id}
	}
	if err := li.SetQuantity(raw); err != nil {
		return err
	}
	d.markMutated()
	return nil
}

// SetLineItemUnitPrice routes a unit-price edit through the department.
func (d *Department) SetLineItemUnitPrice(id, raw string) error {
	li := d.LineItem(id)
	if li == nil {
		return &InvariantViolation{Op: "set unit price", Reason: "line item not found: " + id}
	}
	if err := li.SetUnitPrice(raw); err != nil {
		return err
	}
	d.markMutated()
	return nil
}

// SwitchLineItemType changes a row's item type, with the catalog deciding
// whether the current UOM survives.
func (d *Department) SwitchLineItemType(id, to string, catalog UOMCatalog) error {
	li := d.LineItem(id)
	if li == nil {
		return &InvariantViolation{Op: "switch item type", Reason: "line item not found: " + id}
	}
	li.SwitchItemType(to, catalog)
	d.markMutated()
	return nil
}

// SetContractorMode switches procurement mode. Dropping to labour-only
// clears the type/item/spec triple on every non-labour row; quantities,
// UOMs and unit prices are untouched, so totals are unaffected.
func (d *Department) SetContractorMode(mode ContractorMode) {
	if mode == d.ContractorMode {
		return
	}
	d.ContractorMode = mode
	if mode == ContractorLabourOnly {
		for _, li := range d.LineItems {
			if li.ItemType != "" && !isLabour(li.ItemType) {
				li.ClearMaterialFields()
			}
		}
	}
	d.markMutated()
}

// RecomputeAmount sums all line item totals into Amount, unless a hydrated
// amount is still pinned.
func (d *Department) RecomputeAmount() {
	if d.amountPinned {
		return
	}
	sum := decimal.Zero
	for _, li := range d.LineItems {
		sum = sum.Add(li.Total())
	}
	d.Amount = sum
}

// AmountPinned reports whether a hydrated amount still overrides the
// recomputed sum.
func (d *Department) AmountPinned() bool { return d.amountPinned }

func (d *Department) markMutated() {
	d.amountPinned = false
	d.RecomputeAmount()
}

func (d *Department) indexOf(id string) int {
	for i, li := range d.LineItems {
		if li.ID == id {
			return i
		}
	}
	return -1
}
