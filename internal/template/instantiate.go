package template

import (
	"time"

	"sitebudget/internal/domain"
)

// Instantiate builds a phase/department/line-item tree from the schema,
// anchored at the project's planned start date. Every entity gets a fresh
// identity so the instance is fully independent of the template
// definition.
func Instantiate(s *Schema, plannedStart time.Time) []*domain.Phase {
	phases := make([]*domain.Phase, 0, len(s.Phases))
	for _, pc := range s.Phases {
		phase := domain.NewPhase()
		phase.PhaseName = pc.Name
		phase.StartDate = plannedStart.AddDate(0, 0, pc.StartOffsetDays)
		duration := pc.DurationDays
		if duration < 1 {
			duration = 1
		}
		phase.EndDate = phase.StartDate.AddDate(0, 0, duration)

		if len(pc.Departments) > 0 {
			phase.Departments = phase.Departments[:0]
			for _, dc := range pc.Departments {
				phase.Departments = append(phase.Departments, instantiateDepartment(dc))
			}
		}
		phase.RecomputeBudget()
		phases = append(phases, phase)
	}
	return phases
}

// Apply replaces the project's phase list with a fresh instance of the
// template tree and carries over the template currency when the project
// has none yet.
func Apply(pr *domain.Project, s *Schema) {
	if pr.Currency == "" && s.Currency != "" {
		pr.Currency = s.Currency
	}
	pr.ReplacePhases(Instantiate(s, pr.PlannedDate))
}

func instantiateDepartment(dc DepartmentConfig) *domain.Department {
	items := make([]*domain.LineItem, 0, len(dc.LineItems))
	for _, lc := range dc.LineItems {
		li := domain.NewLineItem()
		li.ItemType = lc.ItemType
		li.Item = lc.Item
		li.Spec = lc.Spec
		li.UOM = lc.UOM
		// Template amounts are trusted input; a malformed number leaves
		// the field at zero rather than failing instantiation.
		_ = li.SetQuantity(lc.Quantity)
		_ = li.SetUnitPrice(lc.UnitPrice)
		items = append(items, li)
	}

	mode := domain.ContractorMode(dc.ContractorMode)
	return domain.HydrateDepartment("", dc.Name, mode, dc.Amount, items)
}
