package draft

import (
	"encoding/json"
	"fmt"
	"time"

	"sitebudget/internal/domain"
)

// Snapshot is the persisted draft layout: the full project tree plus the
// expanded-phase UI state and the save timestamp.
type Snapshot struct {
	Project          *domain.Project
	ExpandedPhaseIDs []string
	SavedAt          time.Time
}

// The wire structs below mirror the domain tree field-for-field so the
// domain types stay free of serialization tags.

type snapshotJSON struct {
	Project          projectJSON `json:"project"`
	ExpandedPhaseIDs []string    `json:"expanded_phase_ids"`
	SavedAt          time.Time   `json:"saved_at"`
}

type projectJSON struct {
	ID             string      `json:"id"`
	ProjectName    string      `json:"project_name"`
	Description    string      `json:"description,omitempty"`
	Client         string      `json:"client,omitempty"`
	Location       string      `json:"location,omitempty"`
	PlannedDate    time.Time   `json:"planned_date"`
	Currency       string      `json:"currency,omitempty"`
	ProjectManager string      `json:"project_manager,omitempty"`
	TeamMembers    []string    `json:"team_members,omitempty"`
	AttachmentRef  string      `json:"attachment_ref,omitempty"`
	Context        string      `json:"context"`
	Phases         []phaseJSON `json:"phases"`
}

type phaseJSON struct {
	ID          string           `json:"id"`
	PhaseNumber int              `json:"phase_number"`
	PhaseName   string           `json:"phase_name"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	Departments []departmentJSON `json:"departments"`
}

type departmentJSON struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ContractorMode string `json:"contractor_mode"`
	// PinnedAmount carries the hydrated amount only while it still
	// overrides the recomputed sum; an unpinned department round-trips
	// through recomputation instead.
	PinnedAmount string         `json:"pinned_amount,omitempty"`
	LineItems    []lineItemJSON `json:"line_items"`
}

type lineItemJSON struct {
	ID        string `json:"id"`
	ItemType  string `json:"item_type,omitempty"`
	Item      string `json:"item,omitempty"`
	Spec      string `json:"spec,omitempty"`
	UOM       string `json:"uom,omitempty"`
	Quantity  string `json:"quantity,omitempty"`
	UnitPrice string `json:"unit_price,omitempty"`
}

// Encode serializes a snapshot for the local store.
func Encode(s Snapshot) ([]byte, error) {
	out := snapshotJSON{
		Project:          encodeProject(s.Project),
		ExpandedPhaseIDs: s.ExpandedPhaseIDs,
		SavedAt:          s.SavedAt.UTC(),
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// Decode rebuilds a snapshot, re-deriving every amount that is not pinned.
func Decode(blob []byte) (*Snapshot, error) {
	var in snapshotJSON
	if err := json.Unmarshal(blob, &in); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	pr := &domain.Project{
		ID:             in.Project.ID,
		ProjectName:    in.Project.ProjectName,
		Description:    in.Project.Description,
		Client:         in.Project.Client,
		Location:       in.Project.Location,
		PlannedDate:    in.Project.PlannedDate,
		Currency:       in.Project.Currency,
		ProjectManager: in.Project.ProjectManager,
		TeamMembers:    in.Project.TeamMembers,
		AttachmentRef:  in.Project.AttachmentRef,
		Context:        domain.AuthoringContext(in.Project.Context),
	}
	for _, pj := range in.Project.Phases {
		phase := &domain.Phase{
			ID:          pj.ID,
			PhaseNumber: pj.PhaseNumber,
			PhaseName:   pj.PhaseName,
			StartDate:   pj.StartDate,
			EndDate:     pj.EndDate,
		}
		for _, dj := range pj.Departments {
			items := make([]*domain.LineItem, 0, len(dj.LineItems))
			for _, lj := range dj.LineItems {
				li := &domain.LineItem{
					ID:       lj.ID,
					ItemType: lj.ItemType,
					Item:     lj.Item,
					Spec:     lj.Spec,
					UOM:      lj.UOM,
				}
				_ = li.SetQuantity(lj.Quantity)
				_ = li.SetUnitPrice(lj.UnitPrice)
				items = append(items, li)
			}
			phase.Departments = append(phase.Departments,
				domain.HydrateDepartment(dj.ID, dj.Name, domain.ContractorMode(dj.ContractorMode), dj.PinnedAmount, items))
		}
		phase.RecomputeBudget()
		pr.Phases = append(pr.Phases, phase)
	}
	if len(pr.Phases) == 0 {
		pr.Phases = []*domain.Phase{domain.NewPhase()}
	}
	pr.RecomputeTotalBudget()

	return &Snapshot{
		Project:          pr,
		ExpandedPhaseIDs: in.ExpandedPhaseIDs,
		SavedAt:          in.SavedAt,
	}, nil
}

func encodeProject(pr *domain.Project) projectJSON {
	out := projectJSON{
		ID:             pr.ID,
		ProjectName:    pr.ProjectName,
		Description:    pr.Description,
		Client:         pr.Client,
		Location:       pr.Location,
		PlannedDate:    pr.PlannedDate,
		Currency:       pr.Currency,
		ProjectManager: pr.ProjectManager,
		TeamMembers:    pr.TeamMembers,
		AttachmentRef:  pr.AttachmentRef,
		Context:        string(pr.Context),
	}
	for _, phase := range pr.Phases {
		pj := phaseJSON{
			ID:          phase.ID,
			PhaseNumber: phase.PhaseNumber,
			PhaseName:   phase.PhaseName,
			StartDate:   phase.StartDate,
			EndDate:     phase.EndDate,
		}
		for _, dept := range phase.Departments {
			dj := departmentJSON{
				ID:             dept.ID,
				Name:           dept.Name,
				ContractorMode: string(dept.ContractorMode),
			}
			if dept.AmountPinned() {
				dj.PinnedAmount = dept.Amount.String()
			}
			for _, li := range dept.LineItems {
				dj.LineItems = append(dj.LineItems, lineItemJSON{
					ID:        li.ID,
					ItemType:  li.ItemType,
					Item:      li.Item,
					Spec:      li.Spec,
					UOM:       li.UOM,
					Quantity:  li.QuantityRaw,
					UnitPrice: li.UnitPriceRaw,
				})
			}
			pj.Departments = append(pj.Departments, dj)
		}
		out.Phases = append(out.Phases, pj)
	}
	return out
}
