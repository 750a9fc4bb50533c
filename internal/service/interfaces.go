package service

import (
	"context"
	"time"

	"sitebudget/internal/domain"
	"sitebudget/internal/draft"
	"sitebudget/internal/repository"
	"sitebudget/internal/template"
	"sitebudget/internal/validate"
)

// TemplateService exposes the template catalog, narrowed to the client's
// business type when the remote store can tell us one.
type TemplateService interface {
	List(ctx context.Context) ([]template.Summary, error)
	// ListOffered filters the catalog by the project's inferred business
	// type. Editing sessions and remote failures fall back to the full
	// listing.
	ListOffered(ctx context.Context, pr *domain.Project) ([]template.Summary, error)
	Get(ctx context.Context, selector string) (*template.Schema, error)
	// StartFromTemplate instantiates the selected template into pr,
	// replacing its phase list.
	StartFromTemplate(ctx context.Context, pr *domain.Project, selector string) error
}

// DraftService drives the draft reconciler.
type DraftService interface {
	Save(ctx context.Context) error
	Restore(ctx context.Context) (bool, error)
	Clear(ctx context.Context) error
	ListRemote(ctx context.Context) ([]draft.DraftSummary, error)
	DeleteRemote(ctx context.Context, id string) error
	Reconciler() *draft.Reconciler
}

// SubmitResult reports the outcome of a submission attempt.
type SubmitResult struct {
	// Invalid is the first failing field when validation blocked the
	// submission; nil on success.
	Invalid     *validate.FieldRef
	ProjectID   string
	SubmittedAt time.Time
}

// SubmitService validates and persists a finished project.
type SubmitService interface {
	Submit(ctx context.Context, pr *domain.Project) (*SubmitResult, error)
}

// ProjectService reads back submitted projects.
type ProjectService interface {
	// LoadForEditing hydrates a submitted project into an editing-context
	// authoring tree.
	LoadForEditing(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]repository.SubmittedSummary, error)
	Delete(ctx context.Context, id string) error
}
