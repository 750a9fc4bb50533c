package draft

import (
	"context"
	"fmt"
	"sort"
	"time"

	"sitebudget/internal/domain"
	"sitebudget/internal/remote"
	"sitebudget/internal/repository"
)

// State of the reconciler relative to the persisted snapshot.
type State string

const (
	StateClean  State = "clean"
	StateDirty  State = "dirty"
	StateSaving State = "saving"
)

// SnapshotKey is the single local slot a work-in-progress draft lives in.
const SnapshotKey = "current"

// draftsDoc is the remote document whose fields enumerate saved drafts,
// one field per draft id.
const draftsDoc = "drafts"

// DraftSummary is one row of the remote draft list.
type DraftSummary struct {
	ID      string
	Name    string
	SavedAt time.Time
}

// Reconciler keeps the in-memory project tree in sync with the local
// snapshot store and mirrors a summary row into the remote draft list.
// The local store is authoritative; remote mirroring is best effort.
//
// Not safe for concurrent use: drive it from the editor loop.
type Reconciler struct {
	snapshots repository.SnapshotStore
	store     remote.Store // nil disables remote mirroring
	clock     func() time.Time

	state    State
	project  *domain.Project
	expanded map[string]struct{}
}

// NewReconciler starts with a fresh empty project in the Clean state,
// the first phase expanded.
func NewReconciler(snapshots repository.SnapshotStore, store remote.Store) *Reconciler {
	r := &Reconciler{
		snapshots: snapshots,
		store:     store,
		clock:     time.Now,
		state:     StateClean,
	}
	r.resetProject()
	return r
}

func (r *Reconciler) resetProject() {
	r.project = domain.NewProject()
	r.expanded = map[string]struct{}{r.project.Phases[0].ID: {}}
}

// Project returns the live tree. Mutations to it must be followed by
// MarkDirty so the next SaveDraft picks them up.
func (r *Reconciler) Project() *domain.Project { return r.project }

// Attach replaces the live tree, e.g. when an editing session hydrates a
// submitted project. The reconciler starts Clean against the new tree.
func (r *Reconciler) Attach(pr *domain.Project) {
	r.project = pr
	r.expanded = map[string]struct{}{}
	if len(pr.Phases) > 0 {
		r.expanded[pr.Phases[0].ID] = struct{}{}
	}
	r.state = StateClean
}

func (r *Reconciler) State() State { return r.state }

// MarkDirty records that the tree diverged from the last saved snapshot.
func (r *Reconciler) MarkDirty() {
	r.state = StateDirty
}

// SetPhaseExpanded tracks which phases the editor shows expanded; the set
// is persisted with the draft so a restored session looks the same.
func (r *Reconciler) SetPhaseExpanded(phaseID string, expanded bool) {
	if expanded {
		r.expanded[phaseID] = struct{}{}
	} else {
		delete(r.expanded, phaseID)
	}
}

// ExpandedPhaseIDs returns the expanded set in phase order.
func (r *Reconciler) ExpandedPhaseIDs() []string {
	ids := make([]string, 0, len(r.expanded))
	for _, phase := range r.project.Phases {
		if _, ok := r.expanded[phase.ID]; ok {
			ids = append(ids, phase.ID)
		}
	}
	return ids
}

// SaveDraft writes the current tree to the local snapshot store and
// mirrors a summary row to the remote draft list. A local write failure
// returns the reconciler to Dirty; a remote failure does not fail the
// save.
func (r *Reconciler) SaveDraft(ctx context.Context) error {
	r.state = StateSaving
	savedAt := r.clock()

	blob, err := Encode(Snapshot{
		Project:          r.project,
		ExpandedPhaseIDs: r.ExpandedPhaseIDs(),
		SavedAt:          savedAt,
	})
	if err != nil {
		r.state = StateDirty
		return err
	}
	if err := r.snapshots.SaveSnapshot(ctx, SnapshotKey, blob, savedAt); err != nil {
		r.state = StateDirty
		return fmt.Errorf("saving draft: %w", err)
	}

	if r.store != nil {
		_ = r.store.SetField(ctx, draftsDoc, r.project.ID, map[string]any{
			"name":     r.project.ProjectName,
			"saved_at": savedAt.UTC().Format(time.RFC3339),
		})
	}

	r.state = StateClean
	return nil
}

// ClearForm discards the snapshot and the remote mirror row and resets
// the editor to a fresh empty project.
func (r *Reconciler) ClearForm(ctx context.Context) error {
	if err := r.snapshots.ClearSnapshot(ctx, SnapshotKey); err != nil {
		return fmt.Errorf("clearing draft: %w", err)
	}
	if r.store != nil {
		_ = r.store.DeleteField(ctx, draftsDoc, r.project.ID)
	}
	r.resetProject()
	r.state = StateClean
	return nil
}

// Restore loads the saved snapshot on cold start. It reports false when
// no snapshot exists, leaving the fresh project in place. Expanded-phase
// ids that no longer match a live phase are dropped.
func (r *Reconciler) Restore(ctx context.Context) (bool, error) {
	blob, err := r.snapshots.LoadSnapshot(ctx, SnapshotKey)
	if err != nil {
		return false, fmt.Errorf("loading draft: %w", err)
	}
	if blob == nil {
		return false, nil
	}
	snap, err := Decode(blob)
	if err != nil {
		return false, fmt.Errorf("restoring draft: %w", err)
	}

	live := make(map[string]struct{}, len(snap.Project.Phases))
	for _, phase := range snap.Project.Phases {
		live[phase.ID] = struct{}{}
	}
	expanded := map[string]struct{}{}
	for _, id := range snap.ExpandedPhaseIDs {
		if _, ok := live[id]; ok {
			expanded[id] = struct{}{}
		}
	}

	r.project = snap.Project
	r.expanded = expanded
	r.state = StateClean
	return true, nil
}

// ListRemoteDrafts enumerates the remote draft list, newest first.
func (r *Reconciler) ListRemoteDrafts(ctx context.Context) ([]DraftSummary, error) {
	if r.store == nil {
		return nil, nil
	}
	doc, err := r.store.GetDocument(ctx, draftsDoc)
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	var out []DraftSummary
	for id, v := range doc {
		row := DraftSummary{ID: id}
		if fields, ok := v.(map[string]any); ok {
			if name, ok := fields["name"].(string); ok {
				row.Name = name
			}
			if raw, ok := fields["saved_at"].(string); ok {
				if ts, err := time.Parse(time.RFC3339, raw); err == nil {
					row.SavedAt = ts
				}
			}
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out, nil
}

// DeleteRemoteDraft removes one row from the remote draft list.
func (r *Reconciler) DeleteRemoteDraft(ctx context.Context, id string) error {
	if r.store == nil {
		return nil
	}
	if err := r.store.DeleteField(ctx, draftsDoc, id); err != nil {
		return fmt.Errorf("deleting draft %s: %w", id, err)
	}
	return nil
}
