// Package validate walks a project tree in a fixed order and reports the
// first field that would block submission. The walk order is load-bearing:
// it decides which field the UI scrolls to, so it must stay deterministic
// and stable across calls for the same tree state.
package validate

import (
	"strings"

	"sitebudget/internal/domain"
)

// Entity names the tree level a field reference points at.
type Entity string

const (
	EntityProject    Entity = "project"
	EntityPhase      Entity = "phase"
	EntityDepartment Entity = "department"
	EntityLineItem   Entity = "line_item"
)

// Field names used in references.
const (
	FieldProjectName = "projectName"
	FieldPhaseName   = "phaseName"
	FieldDates       = "dates"
	FieldDepartments = "departments"
	FieldName        = "name"
	FieldUOM         = "uom"
)

// FieldRef identifies a single invalid field for UI focus-scrolling.
// EntityID is empty for project-level fields.
type FieldRef struct {
	Entity   Entity
	EntityID string
	Field    string
}

// FirstInvalidField walks the tree and returns the first violation found,
// or nil when the whole tree is valid. The walk is read-only: an invalid
// tree is an expected state during editing, not an exceptional one, so no
// error ever escapes as a panic or a returned error.
//
// Walk order: project fields (name, description, client, location) -> team
// fields -> each phase in order (name -> dates -> departments) -> within
// each phase, each department in order (name -> each line item's UOM).
func FirstInvalidField(pr *domain.Project) *FieldRef {
	// Project-level fields. Description, client and location carry no
	// blocking rule but keep their position in the walk.
	if strings.TrimSpace(pr.ProjectName) == "" {
		return &FieldRef{Entity: EntityProject, Field: FieldProjectName}
	}

	// Team fields: both the manager and the member set are optional in
	// this domain, so they never yield a violation. Any previously shown
	// team error state is the caller's to clear.

	for _, phase := range pr.Phases {
		if ref := checkPhase(pr, phase); ref != nil {
			return ref
		}
	}
	return nil
}

func checkPhase(pr *domain.Project, phase *domain.Phase) *FieldRef {
	if strings.TrimSpace(phase.PhaseName) == "" {
		return &FieldRef{Entity: EntityPhase, EntityID: phase.ID, Field: FieldPhaseName}
	}
	if pr.ValidatePhaseName(phase.ID, phase.PhaseName) != nil {
		return &FieldRef{Entity: EntityPhase, EntityID: phase.ID, Field: FieldPhaseName}
	}

	if !phase.EndDate.After(phase.StartDate) {
		return &FieldRef{Entity: EntityPhase, EntityID: phase.ID, Field: FieldDates}
	}

	if !hasNamedDepartment(phase) {
		return &FieldRef{Entity: EntityPhase, EntityID: phase.ID, Field: FieldDepartments}
	}

	for _, dept := range phase.Departments {
		if ref := checkDepartment(phase, dept); ref != nil {
			return ref
		}
	}
	return nil
}

func checkDepartment(phase *domain.Phase, dept *domain.Department) *FieldRef {
	if strings.TrimSpace(dept.Name) == "" {
		return &FieldRef{Entity: EntityDepartment, EntityID: dept.ID, Field: FieldName}
	}
	if phase.ValidateDepartmentName(dept.ID, dept.Name) != nil {
		return &FieldRef{Entity: EntityDepartment, EntityID: dept.ID, Field: FieldName}
	}

	for _, li := range dept.LineItems {
		// No UOM requirement while the item type is still unset.
		if li.ItemType != "" && strings.TrimSpace(li.UOM) == "" {
			return &FieldRef{Entity: EntityLineItem, EntityID: li.ID, Field: FieldUOM}
		}
	}
	return nil
}

func hasNamedDepartment(phase *domain.Phase) bool {
	for _, d := range phase.Departments {
		if strings.TrimSpace(d.Name) != "" {
			return true
		}
	}
	return false
}
