package draft

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitebudget/internal/remote"
	"sitebudget/internal/repository"
	"sitebudget/internal/testutil"
)

type fakeRemote struct {
	mu        sync.Mutex
	docs      map[string]remote.Document
	setCalls  []string
	delCalls  []string
	failWrite bool
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{docs: map[string]remote.Document{}}
}

func (f *fakeRemote) GetDocument(ctx context.Context, path string) (remote.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.docs[path], nil
}

func (f *fakeRemote) SetField(ctx context.Context, path, field string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return errors.New("remote down")
	}
	f.setCalls = append(f.setCalls, path+"."+field)
	doc := f.docs[path]
	if doc == nil {
		doc = remote.Document{}
		f.docs[path] = doc
	}
	doc[field] = value
	return nil
}

func (f *fakeRemote) DeleteField(ctx context.Context, path, field string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return errors.New("remote down")
	}
	f.delCalls = append(f.delCalls, path+"."+field)
	if doc := f.docs[path]; doc != nil {
		delete(doc, field)
	}
	return nil
}

func newTestReconciler(t *testing.T, store remote.Store) (*Reconciler, repository.SnapshotStore) {
	t.Helper()
	snapshots := repository.NewSQLiteSnapshotStore(testutil.NewTestDB(t))
	return NewReconciler(snapshots, store), snapshots
}

func TestReconciler_StartsCleanWithFreshProject(t *testing.T) {
	r, _ := newTestReconciler(t, nil)
	assert.Equal(t, StateClean, r.State())
	require.Len(t, r.Project().Phases, 1)
	assert.Equal(t, []string{r.Project().Phases[0].ID}, r.ExpandedPhaseIDs(),
		"the only phase starts expanded")
}

func TestReconciler_SaveAndRestore(t *testing.T) {
	rem := newFakeRemote()
	r, snapshots := newTestReconciler(t, rem)
	ctx := context.Background()

	r.Attach(testutil.NewValidProject(t))
	r.MarkDirty()
	require.Equal(t, StateDirty, r.State())

	require.NoError(t, r.SaveDraft(ctx))
	assert.Equal(t, StateClean, r.State())
	assert.Len(t, rem.setCalls, 1, "a save mirrors one summary row")

	// Cold start against the same store.
	r2 := NewReconciler(snapshots, rem)
	restored, err := r2.Restore(ctx)
	require.NoError(t, err)
	require.True(t, restored)
	assert.Equal(t, "Riverside Villa", r2.Project().ProjectName)
	assert.Equal(t, StateClean, r2.State())
	assert.Equal(t, []string{r2.Project().Phases[0].ID}, r2.ExpandedPhaseIDs())
}

func TestReconciler_RestoreWithoutSnapshot(t *testing.T) {
	r, _ := newTestReconciler(t, nil)
	restored, err := r.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, restored)
	assert.Equal(t, StateClean, r.State())
	assert.NotNil(t, r.Project())
}

func TestReconciler_RestoreDropsStaleExpandedIDs(t *testing.T) {
	r, snapshots := newTestReconciler(t, nil)
	ctx := context.Background()

	pr := testutil.NewValidProject(t)
	blob, err := Encode(Snapshot{
		Project:          pr,
		ExpandedPhaseIDs: []string{pr.Phases[0].ID, "phase-that-no-longer-exists"},
		SavedAt:          time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, snapshots.SaveSnapshot(ctx, SnapshotKey, blob, time.Now()))

	restored, err := r.Restore(ctx)
	require.NoError(t, err)
	require.True(t, restored)
	assert.Equal(t, []string{pr.Phases[0].ID}, r.ExpandedPhaseIDs(),
		"ids without a live phase are dropped")
}

func TestReconciler_RemoteFailureDoesNotFailSave(t *testing.T) {
	rem := newFakeRemote()
	rem.failWrite = true
	r, _ := newTestReconciler(t, rem)

	r.MarkDirty()
	require.NoError(t, r.SaveDraft(context.Background()))
	assert.Equal(t, StateClean, r.State())
}

func TestReconciler_ClearForm(t *testing.T) {
	rem := newFakeRemote()
	r, snapshots := newTestReconciler(t, rem)
	ctx := context.Background()

	r.Attach(testutil.NewValidProject(t))
	oldID := r.Project().ID
	r.MarkDirty()
	require.NoError(t, r.SaveDraft(ctx))

	require.NoError(t, r.ClearForm(ctx))
	assert.Equal(t, StateClean, r.State())
	assert.NotEqual(t, oldID, r.Project().ID, "cleared form starts a fresh project")
	assert.Empty(t, r.Project().ProjectName)
	assert.Contains(t, rem.delCalls, draftsDoc+"."+oldID)

	blob, err := snapshots.LoadSnapshot(ctx, SnapshotKey)
	require.NoError(t, err)
	assert.Nil(t, blob)
}

func TestReconciler_ExpandedSetFollowsPhaseOrder(t *testing.T) {
	r, _ := newTestReconciler(t, nil)
	pr := r.Project()
	second := pr.AddPhase()
	third := pr.AddPhase()

	r.SetPhaseExpanded(third, true)
	r.SetPhaseExpanded(second, true)
	r.SetPhaseExpanded(pr.Phases[0].ID, false)

	assert.Equal(t, []string{second, third}, r.ExpandedPhaseIDs())
}

func TestReconciler_ListRemoteDrafts(t *testing.T) {
	rem := newFakeRemote()
	rem.docs[draftsDoc] = remote.Document{
		"d1": map[string]any{"name": "Villa", "saved_at": "2025-03-01T10:00:00Z"},
		"d2": map[string]any{"name": "Warehouse", "saved_at": "2025-03-02T10:00:00Z"},
	}
	r, _ := newTestReconciler(t, rem)

	drafts, err := r.ListRemoteDrafts(context.Background())
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "Warehouse", drafts[0].Name, "newest first")
	assert.Equal(t, "Villa", drafts[1].Name)

	require.NoError(t, r.DeleteRemoteDraft(context.Background(), "d1"))
	drafts, err = r.ListRemoteDrafts(context.Background())
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "d2", drafts[0].ID)
}

func TestReconciler_NoRemoteConfigured(t *testing.T) {
	r, _ := newTestReconciler(t, nil)
	drafts, err := r.ListRemoteDrafts(context.Background())
	require.NoError(t, err)
	assert.Nil(t, drafts)
	require.NoError(t, r.DeleteRemoteDraft(context.Background(), "d1"))
}
