package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sitebudget/internal/testutil"
	"sitebudget/internal/validate"
)

func TestDescribeFieldRef(t *testing.T) {
	pr := testutil.NewValidProject(t)
	phase := pr.Phases[0]
	dept := phase.Departments[0]
	li := dept.LineItems[0]

	tests := []struct {
		name string
		ref  *validate.FieldRef
		want string
	}{
		{
			name: "project field",
			ref:  &validate.FieldRef{Entity: validate.EntityProject, Field: validate.FieldProjectName},
			want: `project field "projectName"`,
		},
		{
			name: "phase field",
			ref:  &validate.FieldRef{Entity: validate.EntityPhase, EntityID: phase.ID, Field: validate.FieldDates},
			want: `phase 1 (Foundation), field "dates"`,
		},
		{
			name: "department field",
			ref:  &validate.FieldRef{Entity: validate.EntityDepartment, EntityID: dept.ID, Field: validate.FieldName},
			want: `department Earthwork in phase 1, field "name"`,
		},
		{
			name: "line item field",
			ref:  &validate.FieldRef{Entity: validate.EntityLineItem, EntityID: li.ID, Field: validate.FieldUOM},
			want: `line item 1 of department Earthwork, field "uom"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeFieldRef(pr, tt.ref))
		})
	}
}

func TestDescribeFieldRef_UnknownEntity(t *testing.T) {
	pr := testutil.NewValidProject(t)
	got := describeFieldRef(pr, &validate.FieldRef{Entity: validate.EntityPhase, EntityID: "gone", Field: "dates"})
	assert.Contains(t, got, "gone")
}
