package testutil

import (
	"testing"
	"time"

	"sitebudget/internal/domain"
)

// Date parses a YYYY-MM-DD string, failing the test on bad input.
func Date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// NewValidProject builds a minimal project tree that passes the full
// validation walk: one named phase with an ordered date window and one
// named department holding a single priced material row.
func NewValidProject(t *testing.T) *domain.Project {
	t.Helper()
	pr := domain.NewProject()
	pr.ProjectName = "Riverside Villa"
	pr.Client = "A. Sharma"
	pr.Location = "Pune"
	pr.Currency = "INR"
	pr.PlannedDate = Date(t, "2025-01-01")

	phase := pr.Phases[0]
	phase.PhaseName = "Foundation"
	phase.StartDate = Date(t, "2025-01-05")
	phase.EndDate = Date(t, "2025-02-01")

	dept := phase.Departments[0]
	dept.Name = "Earthwork"
	li := dept.LineItems[0]
	li.ItemType = "Material"
	li.Item = "cement"
	li.Spec = "OPC 53"
	li.UOM = "bag"
	if err := dept.SetLineItemQuantity(li.ID, "100"); err != nil {
		t.Fatalf("setting quantity: %v", err)
	}
	if err := dept.SetLineItemUnitPrice(li.ID, "400"); err != nil {
		t.Fatalf("setting unit price: %v", err)
	}

	pr.RecomputeTotalBudget()
	return pr
}
