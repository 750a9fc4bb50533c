package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_AddPhaseRenumbersSequentially(t *testing.T) {
	pr := NewProject()
	pr.AddPhase()
	pr.AddPhase()

	require.Len(t, pr.Phases, 3)
	for i, p := range pr.Phases {
		assert.Equal(t, i+1, p.PhaseNumber)
	}
}

func TestProject_RemovePhaseRenumbers(t *testing.T) {
	pr := NewProject()
	second := pr.AddPhase()
	pr.AddPhase()

	require.NoError(t, pr.RemovePhase(second))
	require.Len(t, pr.Phases, 2)
	assert.Equal(t, 1, pr.Phases[0].PhaseNumber)
	assert.Equal(t, 2, pr.Phases[1].PhaseNumber)
}

func TestProject_RemoveOnlyPhaseRejected(t *testing.T) {
	pr := NewProject()
	id := pr.Phases[0].ID

	err := pr.RemovePhase(id)
	require.Error(t, err)
	var iv *InvariantViolation
	assert.ErrorAs(t, err, &iv)
	assert.Len(t, pr.Phases, 1, "tree must be unchanged after rejected removal")
}

func TestProject_TotalBudgetSumsPhases(t *testing.T) {
	pr := NewProject()

	d := pr.Phases[0].Departments[0]
	require.NoError(t, d.SetLineItemQuantity(d.LineItems[0].ID, "2"))
	require.NoError(t, d.SetLineItemUnitPrice(d.LineItems[0].ID, "100"))

	second := pr.AddPhase()
	d2 := pr.Phase(second).Departments[0]
	require.NoError(t, d2.SetLineItemQuantity(d2.LineItems[0].ID, "3"))
	require.NoError(t, d2.SetLineItemUnitPrice(d2.LineItems[0].ID, "50"))

	pr.RecomputeTotalBudget()
	assert.True(t, pr.TotalBudget.Equal(amount("350")))
}

func TestProject_ValidatePhaseName_CaseInsensitive(t *testing.T) {
	pr := NewProject()
	pr.Phases[0].PhaseName = "foundation"
	second := pr.AddPhase()

	err := pr.ValidatePhaseName(second, "Foundation")
	require.NotNil(t, err)
	assert.Equal(t, "Foundation", err.Name, "error must reference the offending value")

	assert.Nil(t, pr.ValidatePhaseName(second, "Foundation2"))
}

func TestProject_ValidatePhaseName_ExcludesSelf(t *testing.T) {
	pr := NewProject()
	p := pr.Phases[0]
	p.PhaseName = "Foundation"

	assert.Nil(t, pr.ValidatePhaseName(p.ID, "Foundation"))
}

func TestProject_TeamMembersSetSemantics(t *testing.T) {
	pr := NewProject()

	assert.True(t, pr.AddTeamMember("u1"))
	assert.True(t, pr.AddTeamMember("u2"))
	assert.False(t, pr.AddTeamMember("u1"), "duplicates rejected")
	assert.Equal(t, []string{"u1", "u2"}, pr.TeamMembers, "insertion order preserved")

	pr.RemoveTeamMember("u1")
	assert.Equal(t, []string{"u2"}, pr.TeamMembers)
}

func TestProject_ReplacePhasesRenumbers(t *testing.T) {
	pr := NewProject()
	a, b := NewPhase(), NewPhase()
	a.PhaseName = "Foundation"
	b.PhaseName = "Framing"

	pr.ReplacePhases([]*Phase{a, b})

	require.Len(t, pr.Phases, 2)
	assert.Equal(t, 1, pr.Phases[0].PhaseNumber)
	assert.Equal(t, 2, pr.Phases[1].PhaseNumber)
}

func TestProject_ReplacePhasesEmptyFallsBackToOnePhase(t *testing.T) {
	pr := NewProject()
	pr.ReplacePhases(nil)
	assert.Len(t, pr.Phases, 1)
}

func TestProject_BeginEditing(t *testing.T) {
	pr := NewProject()
	assert.Equal(t, ContextNew, pr.Context)
	pr.BeginEditing()
	assert.Equal(t, ContextEditing, pr.Context)
}
