package template

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitebudget/internal/domain"
)

func villaSchema(t *testing.T) *Schema {
	t.Helper()
	var s Schema
	require.NoError(t, json.Unmarshal([]byte(villaTemplate), &s))
	return &s
}

func TestInstantiate_BuildsTreeWithDates(t *testing.T) {
	s := villaSchema(t)
	planned := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	phases := Instantiate(s, planned)
	require.Len(t, phases, 2)

	foundation := phases[0]
	assert.Equal(t, "Foundation", foundation.PhaseName)
	assert.Equal(t, planned, foundation.StartDate)
	assert.Equal(t, planned.AddDate(0, 0, 30), foundation.EndDate)
	require.Len(t, foundation.Departments, 1)

	earthwork := foundation.Departments[0]
	assert.Equal(t, "Earthwork", earthwork.Name)
	require.Len(t, earthwork.LineItems, 1)
	li := earthwork.LineItems[0]
	assert.Equal(t, "cement", li.Item)
	assert.True(t, li.Total().Equal(decimal.RequireFromString("40000")))
	assert.True(t, earthwork.Amount.Equal(decimal.RequireFromString("40000")))

	framing := phases[1]
	assert.Equal(t, planned.AddDate(0, 0, 30), framing.StartDate)
	assert.Equal(t, domain.ContractorLabourOnly, framing.Departments[0].ContractorMode)
	// A department config without line items still yields one empty row.
	assert.Len(t, framing.Departments[0].LineItems, 1)
}

func TestInstantiate_FreshIdentitiesPerInstance(t *testing.T) {
	s := villaSchema(t)
	planned := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	a := Instantiate(s, planned)
	b := Instantiate(s, planned)

	assert.NotEqual(t, a[0].ID, b[0].ID)
	assert.NotEqual(t, a[0].Departments[0].ID, b[0].Departments[0].ID)
	assert.NotEqual(t, a[0].Departments[0].LineItems[0].ID, b[0].Departments[0].LineItems[0].ID)

	// Mutating one instance must not leak into the other.
	a[0].Departments[0].Name = "Changed"
	assert.Equal(t, "Earthwork", b[0].Departments[0].Name)
}

func TestInstantiate_AuthoredAmountWinsAtLoad(t *testing.T) {
	s := villaSchema(t)
	s.Phases[0].Departments[0].Amount = "75,000"

	phases := Instantiate(s, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	d := phases[0].Departments[0]

	assert.True(t, d.Amount.Equal(decimal.RequireFromString("75000")),
		"authored template amount should override the 40000 sum, got %s", d.Amount)
	assert.True(t, d.AmountPinned())
}

func TestApply_ReplacesPhasesAndRenumbers(t *testing.T) {
	s := villaSchema(t)
	pr := domain.NewProject()
	pr.PlannedDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	Apply(pr, s)

	require.Len(t, pr.Phases, 2)
	assert.Equal(t, 1, pr.Phases[0].PhaseNumber)
	assert.Equal(t, 2, pr.Phases[1].PhaseNumber)
	assert.Equal(t, "INR", pr.Currency)
	assert.True(t, pr.TotalBudget.Equal(decimal.RequireFromString("40000")))
}
