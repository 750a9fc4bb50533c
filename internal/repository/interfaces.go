package repository

import (
	"context"
	"time"

	"sitebudget/internal/domain"
)

// SnapshotStore is the local persistence store used by the draft
// reconciler: a single serialized blob per key.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, key string, blob []byte, savedAt time.Time) error
	// LoadSnapshot returns nil with no error when no snapshot exists.
	LoadSnapshot(ctx context.Context, key string) ([]byte, error)
	ClearSnapshot(ctx context.Context, key string) error
}

// SubmittedProjectRepo stores successfully submitted projects and hydrates
// them back into the authoring tree for editing sessions.
type SubmittedProjectRepo interface {
	Create(ctx context.Context, p *domain.Project, submittedAt time.Time) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]SubmittedSummary, error)
	Delete(ctx context.Context, id string) error
}

// SubmittedSummary is the listing row for a submitted project.
type SubmittedSummary struct {
	ID          string
	Name        string
	Client      string
	TotalBudget string
	SubmittedAt time.Time
}
