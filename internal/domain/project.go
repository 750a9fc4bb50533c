package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Project is the draft form state of a construction project under
// authoring: an ordered list of phases plus the project-level fields and
// team selection. The total budget is always derived from phase budgets.
type Project struct {
	ID          string
	ProjectName string
	Description string
	Client      string
	Location    string
	PlannedDate time.Time
	Currency    string

	Phases []*Phase

	// ProjectManager holds at most one member id; empty means none.
	ProjectManager string
	// TeamMembers is a set displayed in insertion order.
	TeamMembers []string

	AttachmentRef string
	Context       AuthoringContext

	TotalBudget decimal.Decimal
}

// NewProject returns an empty project with a single phase, the minimal
// editable tree.
func NewProject() *Project {
	return &Project{
		ID:      uuid.New().String(),
		Context: ContextNew,
		Phases:  []*Phase{newNumberedPhase(1)},
	}
}

func newNumberedPhase(n int) *Phase {
	p := NewPhase()
	p.PhaseNumber = n
	return p
}

// AddPhase appends a new phase and renumbers the list sequentially from 1.
func (pr *Project) AddPhase() string {
	p := NewPhase()
	pr.Phases = append(pr.Phases, p)
	pr.renumber()
	pr.RecomputeTotalBudget()
	return p.ID
}

// RemovePhase deletes the phase with the given id and renumbers the rest.
// The only phase of a project cannot be removed.
func (pr *Project) RemovePhase(id string) error {
	idx := pr.indexOf(id)
	if idx < 0 {
		return &InvariantViolation{Op: "remove phase", Reason: "phase not found: " + id}
	}
	if len(pr.Phases) == 1 {
		return &InvariantViolation{Op: "remove phase", Reason: "a project must keep at least one phase"}
	}
	pr.Phases = append(pr.Phases[:idx], pr.Phases[idx+1:]...)
	pr.renumber()
	pr.RecomputeTotalBudget()
	return nil
}

// Phase returns the phase with the given id, or nil.
func (pr *Project) Phase(id string) *Phase {
	if idx := pr.indexOf(id); idx >= 0 {
		return pr.Phases[idx]
	}
	return nil
}

// RecomputeTotalBudget refreshes every phase budget and sums them.
func (pr *Project) RecomputeTotalBudget() {
	sum := decimal.Zero
	for _, p := range pr.Phases {
		p.RecomputeBudget()
		sum = sum.Add(p.Budget)
	}
	pr.TotalBudget = sum
}

// ReplacePhases swaps in an entirely new phase list, renumbering it. Used
// by the template loader, which hands over deep copies with fresh ids.
func (pr *Project) ReplacePhases(phases []*Phase) {
	if len(phases) == 0 {
		phases = []*Phase{NewPhase()}
	}
	pr.Phases = phases
	pr.renumber()
	pr.RecomputeTotalBudget()
}

// BeginEditing marks the project as hydrated from a previously submitted
// one, which suppresses template and business-type inference for the
// session.
func (pr *Project) BeginEditing() {
	pr.Context = ContextEditing
}

// ValidatePhaseName checks candidate against all sibling phase names in the
// project, case-insensitively and trimmed, excluding the phase with
// excludeID itself.
func (pr *Project) ValidatePhaseName(excludeID, candidate string) *DuplicateNameError {
	want := strings.ToLower(strings.TrimSpace(candidate))
	if want == "" {
		return nil
	}
	for _, p := range pr.Phases {
		if p.ID == excludeID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(p.PhaseName)) == want {
			return &DuplicateNameError{Entity: "phase", Name: candidate}
		}
	}
	return nil
}

// AddTeamMember adds id to the team set. Returns false if already present.
func (pr *Project) AddTeamMember(id string) bool {
	for _, m := range pr.TeamMembers {
		if m == id {
			return false
		}
	}
	pr.TeamMembers = append(pr.TeamMembers, id)
	return true
}

// RemoveTeamMember drops id from the team set, preserving insertion order
// of the rest.
func (pr *Project) RemoveTeamMember(id string) {
	for i, m := range pr.TeamMembers {
		if m == id {
			pr.TeamMembers = append(pr.TeamMembers[:i], pr.TeamMembers[i+1:]...)
			return
		}
	}
}

func (pr *Project) renumber() {
	for i, p := range pr.Phases {
		p.PhaseNumber = i + 1
	}
}

func (pr *Project) indexOf(id string) int {
	for i, p := range pr.Phases {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// NewID returns a fresh opaque identity. Exposed so collaborating packages
// mint ids the same way the domain does.
func NewID() string { return uuid.New().String() }
