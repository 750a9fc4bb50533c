package service

import (
	"context"
	"time"

	"sitebudget/internal/draft"
)

type draftService struct {
	reconciler *draft.Reconciler
	observer   UseCaseObserver
}

func NewDraftService(reconciler *draft.Reconciler, observers ...UseCaseObserver) DraftService {
	return &draftService{
		reconciler: reconciler,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *draftService) Reconciler() *draft.Reconciler { return s.reconciler }

func (s *draftService) Save(ctx context.Context) error {
	return s.observe(ctx, "save-draft", func() error {
		return s.reconciler.SaveDraft(ctx)
	})
}

func (s *draftService) Restore(ctx context.Context) (restored bool, err error) {
	err = s.observe(ctx, "restore-draft", func() error {
		restored, err = s.reconciler.Restore(ctx)
		return err
	})
	return restored, err
}

func (s *draftService) Clear(ctx context.Context) error {
	return s.observe(ctx, "clear-form", func() error {
		return s.reconciler.ClearForm(ctx)
	})
}

func (s *draftService) ListRemote(ctx context.Context) ([]draft.DraftSummary, error) {
	return s.reconciler.ListRemoteDrafts(ctx)
}

func (s *draftService) DeleteRemote(ctx context.Context, id string) error {
	return s.observe(ctx, "delete-remote-draft", func() error {
		return s.reconciler.DeleteRemoteDraft(ctx, id)
	})
}

func (s *draftService) observe(ctx context.Context, name string, fn func() error) error {
	startedAt := time.Now().UTC()
	err := fn()
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
	})
	return err
}
