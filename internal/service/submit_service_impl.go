package service

import (
	"context"
	"fmt"
	"time"

	"sitebudget/internal/db"
	"sitebudget/internal/domain"
	"sitebudget/internal/draft"
	"sitebudget/internal/remote"
	"sitebudget/internal/repository"
	"sitebudget/internal/validate"
)

type submitService struct {
	uow        db.UnitOfWork
	store      remote.Store // nil disables the remote submission write
	reconciler *draft.Reconciler
	clock      func() time.Time
	observer   UseCaseObserver
}

func NewSubmitService(uow db.UnitOfWork, store remote.Store, reconciler *draft.Reconciler, observers ...UseCaseObserver) SubmitService {
	return &submitService{
		uow:        uow,
		store:      store,
		reconciler: reconciler,
		clock:      time.Now,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// Submit runs the validation walk and, on pass, persists a pruned copy of
// the tree in one transaction plus a remote summary write. The remote
// write happens inside the transaction so a remote failure rolls the local
// write back too; the caller retries explicitly, never this service. The
// in-memory tree is never modified by a submission, successful or not.
func (s *submitService) Submit(ctx context.Context, pr *domain.Project) (result *SubmitResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project": pr.ID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "submit-project",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil && (result == nil || result.Invalid == nil),
			Err:       err,
			Fields:    fields,
		})
	}()

	if ref := validate.FirstInvalidField(pr); ref != nil {
		fields["invalid_field"] = ref.Field
		return &SubmitResult{Invalid: ref}, nil
	}

	submittedAt := s.clock().UTC()
	pruned := pruneForSubmission(pr)
	fields["total_budget"] = pruned.TotalBudget.String()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSubmittedProjectRepo(tx).Create(ctx, pruned, submittedAt); err != nil {
			return err
		}
		if s.store != nil {
			if err := s.store.SetField(ctx, "projects", pruned.ID, map[string]any{
				"name":         pruned.ProjectName,
				"client":       pruned.Client,
				"total_budget": pruned.TotalBudget.String(),
				"submitted_at": submittedAt.Format(time.RFC3339),
			}); err != nil {
				return fmt.Errorf("writing remote submission: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Submission succeeded, so the draft slot is spent.
	if s.reconciler != nil {
		if clearErr := s.reconciler.ClearForm(ctx); clearErr != nil {
			return nil, fmt.Errorf("submitted, but clearing draft failed: %w", clearErr)
		}
	}

	return &SubmitResult{ProjectID: pruned.ID, SubmittedAt: submittedAt}, nil
}

// pruneForSubmission deep-copies the tree without rows that carry no data
// at all. A department whose rows were all empty is dropped with them; the
// validation walk has already guaranteed each phase keeps at least one
// named department.
func pruneForSubmission(pr *domain.Project) *domain.Project {
	out := *pr
	out.TeamMembers = append([]string(nil), pr.TeamMembers...)
	out.Phases = make([]*domain.Phase, 0, len(pr.Phases))
	for _, phase := range pr.Phases {
		np := *phase
		np.Departments = nil
		for _, dept := range phase.Departments {
			kept := make([]*domain.LineItem, 0, len(dept.LineItems))
			for _, li := range dept.LineItems {
				if !li.IsEmpty() {
					kept = append(kept, li)
				}
			}
			if len(kept) == 0 {
				continue
			}
			pinned := ""
			if dept.AmountPinned() {
				pinned = dept.Amount.String()
			}
			np.Departments = append(np.Departments,
				domain.HydrateDepartment(dept.ID, dept.Name, dept.ContractorMode, pinned, kept))
		}
		np.RecomputeBudget()
		out.Phases = append(out.Phases, &np)
	}
	out.RecomputeTotalBudget()
	return &out
}
