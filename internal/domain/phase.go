package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Phase is a time-boxed stage of the project holding one or more
// departments. PhaseNumber is the 1-based position in the project and is
// recomputed on reorder and delete.
type Phase struct {
	ID          string
	PhaseNumber int
	PhaseName   string
	StartDate   time.Time
	EndDate     time.Time
	Departments []*Department
	Budget      decimal.Decimal
}

// NewPhase returns a phase seeded with a single empty department.
func NewPhase() *Phase {
	return &Phase{
		ID:          uuid.New().String(),
		Departments: []*Department{NewDepartment()},
	}
}

// AddDepartment appends a new empty department and returns its id.
func (p *Phase) AddDepartment() string {
	d := NewDepartment()
	p.Departments = append(p.Departments, d)
	p.RecomputeBudget()
	return d.ID
}

// RemoveDepartment deletes the department with the given id. Removing the
// last department is rejected; the caller must block the UI action rather
// than silently ignore it.
func (p *Phase) RemoveDepartment(id string) error {
	idx := p.indexOf(id)
	if idx < 0 {
		return &InvariantViolation{Op: "remove department", Reason: "department not found: " + id}
	}
	if len(p.Departments) == 1 {
		return &InvariantViolation{Op: "remove department", Reason: "a phase must keep at least one department"}
	}
	p.Departments = append(p.Departments[:idx], p.Departments[idx+1:]...)
	p.RecomputeBudget()
	return nil
}

// Department returns the department with the given id, or nil.
func (p *Phase) Department(id string) *Department {
	if idx := p.indexOf(id); idx >= 0 {
		return p.Departments[idx]
	}
	return nil
}

// RecomputeBudget sums department amounts into the phase budget.
func (p *Phase) RecomputeBudget() {
	sum := decimal.Zero
	for _, d := range p.Departments {
		sum = sum.Add(d.Amount)
	}
	p.Budget = sum
}

// ValidateDates checks the phase date window: the end date must be strictly
// after the start date, and the start date must not precede the project's
// planned start.
func (p *Phase) ValidateDates(plannedStart time.Time) error {
	if !p.EndDate.After(p.StartDate) {
		return &DateOrderError{Start: p.StartDate, End: p.EndDate}
	}
	if p.StartDate.Before(plannedStart) {
		return &DateRangeError{Start: p.StartDate, PlannedStart: plannedStart}
	}
	return nil
}

// ValidateDepartmentName checks candidate against all sibling department
// names, case-insensitively and trimmed, excluding the department with
// excludeID itself.
func (p *Phase) ValidateDepartmentName(excludeID, candidate string) *DuplicateNameError {
	want := strings.ToLower(strings.TrimSpace(candidate))
	if want == "" {
		return nil
	}
	for _, d := range p.Departments {
		if d.ID == excludeID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(d.Name)) == want {
			return &DuplicateNameError{Entity: "department", Name: candidate}
		}
	}
	return nil
}

func (p *Phase) indexOf(id string) int {
	for i, d := range p.Departments {
		if d.ID == id {
			return i
		}
	}
	return -1
}
