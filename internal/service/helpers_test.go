package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"sitebudget/internal/db"
	"sitebudget/internal/draft"
	"sitebudget/internal/remote"
	"sitebudget/internal/repository"
	"sitebudget/internal/testutil"
)

// recordingStore is an in-process remote.Store shared by the service tests.
type recordingStore struct {
	mu       sync.Mutex
	docs     map[string]remote.Document
	sets     []string
	getErr   error
	writeErr error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{docs: map[string]remote.Document{}}
}

func (f *recordingStore) GetDocument(ctx context.Context, path string) (remote.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.docs[path], nil
}

func (f *recordingStore) SetField(ctx context.Context, path, field string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.sets = append(f.sets, path+"."+field)
	doc := f.docs[path]
	if doc == nil {
		doc = remote.Document{}
		f.docs[path] = doc
	}
	doc[field] = value
	return nil
}

func (f *recordingStore) DeleteField(ctx context.Context, path, field string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	if doc := f.docs[path]; doc != nil {
		delete(doc, field)
	}
	return nil
}

var errRemoteDown = errors.New("remote down")

// submitFixture wires a submit service against a real in-memory database.
type submitFixture struct {
	svc        SubmitService
	store      *recordingStore
	repo       repository.SubmittedProjectRepo
	snapshots  repository.SnapshotStore
	reconciler *draft.Reconciler
}

func newSubmitFixture(t *testing.T) *submitFixture {
	t.Helper()
	sqlDB := testutil.NewTestDB(t)
	store := newRecordingStore()
	snapshots := repository.NewSQLiteSnapshotStore(sqlDB)
	reconciler := draft.NewReconciler(snapshots, store)
	return &submitFixture{
		svc:        NewSubmitService(db.NewSQLiteUnitOfWork(sqlDB), store, reconciler),
		store:      store,
		repo:       repository.NewSQLiteSubmittedProjectRepo(sqlDB),
		snapshots:  snapshots,
		reconciler: reconciler,
	}
}
