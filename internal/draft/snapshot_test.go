package draft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitebudget/internal/domain"
	"sitebudget/internal/testutil"
)

func TestSnapshotRoundTrip(t *testing.T) {
	pr := testutil.NewValidProject(t)
	savedAt := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

	blob, err := Encode(Snapshot{
		Project:          pr,
		ExpandedPhaseIDs: []string{pr.Phases[0].ID},
		SavedAt:          savedAt,
	})
	require.NoError(t, err)

	snap, err := Decode(blob)
	require.NoError(t, err)

	got := snap.Project
	assert.Equal(t, pr.ID, got.ID)
	assert.Equal(t, "Riverside Villa", got.ProjectName)
	assert.Equal(t, "A. Sharma", got.Client)
	assert.Equal(t, "INR", got.Currency)
	assert.True(t, got.PlannedDate.Equal(pr.PlannedDate))
	assert.Equal(t, domain.ContextNew, got.Context)

	require.Len(t, got.Phases, 1)
	phase := got.Phases[0]
	assert.Equal(t, "Foundation", phase.PhaseName)
	assert.Equal(t, 1, phase.PhaseNumber)
	require.Len(t, phase.Departments, 1)

	dept := phase.Departments[0]
	assert.Equal(t, "Earthwork", dept.Name)
	require.Len(t, dept.LineItems, 1)
	li := dept.LineItems[0]
	assert.Equal(t, "cement", li.Item)
	assert.Equal(t, "100", li.QuantityRaw)
	assert.Equal(t, "400", li.UnitPriceRaw)

	assert.True(t, got.TotalBudget.Equal(pr.TotalBudget), "budget must re-derive to the same value")
	assert.Equal(t, []string{pr.Phases[0].ID}, snap.ExpandedPhaseIDs)
	assert.True(t, snap.SavedAt.Equal(savedAt))
}

func TestSnapshotPreservesPinnedAmount(t *testing.T) {
	li := domain.NewLineItem()
	require.NoError(t, li.SetQuantity("2"))
	require.NoError(t, li.SetUnitPrice("100"))
	dept := domain.HydrateDepartment("", "Masonry", domain.ContractorTurnkey, "9,999", []*domain.LineItem{li})
	require.True(t, dept.AmountPinned())

	pr := domain.NewProject()
	pr.Phases[0].Departments = []*domain.Department{dept}

	blob, err := Encode(Snapshot{Project: pr, SavedAt: time.Now()})
	require.NoError(t, err)
	snap, err := Decode(blob)
	require.NoError(t, err)

	restored := snap.Project.Phases[0].Departments[0]
	assert.True(t, restored.AmountPinned(), "pinned amount must survive the round trip")
	assert.Equal(t, "9999", restored.Amount.String())

	// The first edit after restore unpins as usual.
	require.NoError(t, restored.SetLineItemQuantity(restored.LineItems[0].ID, "3"))
	assert.Equal(t, "300", restored.Amount.String())
}

func TestSnapshotUnpinnedAmountRederived(t *testing.T) {
	pr := testutil.NewValidProject(t)
	dept := pr.Phases[0].Departments[0]
	require.False(t, dept.AmountPinned())

	blob, err := Encode(Snapshot{Project: pr, SavedAt: time.Now()})
	require.NoError(t, err)
	snap, err := Decode(blob)
	require.NoError(t, err)

	restored := snap.Project.Phases[0].Departments[0]
	assert.False(t, restored.AmountPinned())
	assert.Equal(t, "40000", restored.Amount.String())
}

func TestDecodeEmptyPhaseListGetsFreshPhase(t *testing.T) {
	snap, err := Decode([]byte(`{"project":{"id":"p1","project_name":"X","planned_date":"2025-01-01T00:00:00Z","context":"new","phases":null},"saved_at":"2025-01-01T00:00:00Z"}`))
	require.NoError(t, err)
	require.Len(t, snap.Project.Phases, 1)
	assert.NotEmpty(t, snap.Project.Phases[0].ID)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("{not json"))
	require.Error(t, err)
}
