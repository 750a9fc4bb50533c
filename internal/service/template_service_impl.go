package service

import (
	"context"
	"strings"
	"time"

	"sitebudget/internal/domain"
	"sitebudget/internal/remote"
	"sitebudget/internal/template"
)

type templateService struct {
	catalog  *template.Catalog
	store    remote.Store // nil disables business-type inference
	observer UseCaseObserver
}

func NewTemplateService(catalog *template.Catalog, store remote.Store, observers ...UseCaseObserver) TemplateService {
	return &templateService{
		catalog:  catalog,
		store:    store,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *templateService) List(ctx context.Context) ([]template.Summary, error) {
	return s.catalog.List(ctx)
}

func (s *templateService) ListOffered(ctx context.Context, pr *domain.Project) ([]template.Summary, error) {
	return s.catalog.ListForBusinessType(ctx, s.businessTypeFor(ctx, pr))
}

func (s *templateService) Get(ctx context.Context, selector string) (*template.Schema, error) {
	return s.catalog.Get(ctx, selector)
}

func (s *templateService) StartFromTemplate(ctx context.Context, pr *domain.Project, selector string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "start-from-template",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"template": selector},
		})
	}()

	schema, err := s.catalog.Get(ctx, selector)
	if err != nil {
		return err
	}
	template.Apply(pr, schema)
	return nil
}

// businessTypeFor asks the remote store what kind of client this is. An
// editing session keeps the phases it was submitted with, so inference is
// suppressed there; any lookup failure degrades to the unfiltered catalog.
func (s *templateService) businessTypeFor(ctx context.Context, pr *domain.Project) string {
	if pr == nil || pr.Context == domain.ContextEditing || s.store == nil {
		return ""
	}
	key := clientKey(pr.Client)
	if key == "" {
		return ""
	}
	doc, err := s.store.GetDocument(ctx, "clients/"+key)
	if err != nil || doc == nil {
		return ""
	}
	bt, _ := doc["business_type"].(string)
	return bt
}

func clientKey(client string) string {
	key := strings.ToLower(strings.TrimSpace(client))
	return strings.Join(strings.Fields(key), "-")
}
