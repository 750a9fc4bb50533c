package service

import (
	"context"
	"time"

	"sitebudget/internal/domain"
	"sitebudget/internal/repository"
)

type projectService struct {
	repo     repository.SubmittedProjectRepo
	observer UseCaseObserver
}

func NewProjectService(repo repository.SubmittedProjectRepo, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		repo:     repo,
		observer: useCaseObserverOrNoop(observers),
	}
}

// LoadForEditing hydrates a submitted project back into the authoring
// tree. The editing context suppresses template and business-type
// inference for the rest of the session.
func (s *projectService) LoadForEditing(ctx context.Context, id string) (pr *domain.Project, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "load-for-editing",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"project": id},
		})
	}()

	pr, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pr.BeginEditing()
	return pr, nil
}

func (s *projectService) List(ctx context.Context) ([]repository.SubmittedSummary, error) {
	return s.repo.List(ctx)
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
