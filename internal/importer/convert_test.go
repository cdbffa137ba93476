package importer

import (
	"strings"
	"testing"

	"github.com/planpush/planpush/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestConvert_PlanTree(t *testing.T) {
	schema := &PlanSchema{
		Plan: &PlanImport{Title: "Release 2.0", AreaPath: `Web\Checkout`, Iteration: `Web\Sprint 9`},
		Suites: []SuiteImport{
			{Ref: "s1", Title: "Checkout"},
			{Ref: "s2", ParentRef: strPtr("s1"), Title: "Payments"},
			{Ref: "s3", ParentRef: strPtr("s1"), Title: "Shipping"},
			{Ref: "s4", Title: "Search"},
		},
		Cases: []CaseImport{
			{Ref: "c1", SuiteRef: "s2", Title: "Pay by card", Type: "regression",
				Steps: []StepImport{{Action: "Enter card", Expected: "Accepted"}}},
			{Ref: "c2", SuiteRef: "s2", Title: "Pay by invoice"},
			{Ref: "c3", SuiteRef: "s1", Title: "Cart survives login",
				Fields: []FieldImport{{Name: "priority", Value: "2"}}},
		},
	}

	require.Empty(t, ValidatePlanSchema(schema))

	converted, err := Convert(schema)
	require.NoError(t, err)

	root := converted.Root
	assert.Equal(t, domain.KindPlan, root.Kind)
	assert.Equal(t, "Release 2.0", root.Title)
	assert.Equal(t, `Web\Checkout`, converted.AreaPath)
	assert.Equal(t, `Web\Sprint 9`, converted.Iteration)
	assert.Equal(t, 8, root.CountNodes())

	// Plan children in declaration order.
	require.Len(t, root.Children, 2)
	checkout := root.Children[0]
	assert.Equal(t, "Checkout", checkout.Title)
	assert.Equal(t, "Search", root.Children[1].Title)

	// Child suites in declaration order, ahead of the parent's own cases.
	require.Len(t, checkout.Children, 3)
	assert.Equal(t, "Payments", checkout.Children[0].Title)
	assert.Equal(t, "Shipping", checkout.Children[1].Title)
	assert.Equal(t, "Cart survives login", checkout.Children[2].Title)

	payments := checkout.Children[0]
	require.Len(t, payments.Children, 2)
	assert.Equal(t, "Pay by card", payments.Children[0].Title)
	assert.Equal(t, "regression", payments.Children[0].Type)
	assert.Equal(t, "Pay by invoice", payments.Children[1].Title)
	assert.Empty(t, payments.Children[1].Type)
	require.Len(t, payments.Children[0].Steps, 1)
	assert.Equal(t, "Enter card", payments.Children[0].Steps[0].Action)

	require.Empty(t, root.ValidateKinds())
}

func TestConvert_WorkItemTree(t *testing.T) {
	schema := &PlanSchema{
		WorkItems: []WorkItemImport{
			{Ref: "epic", Title: "Self-service returns", Type: "Epic"},
			{Ref: "story1", ParentRef: strPtr("epic"), Title: "Request a return", Type: "User Story"},
			{Ref: "story2", ParentRef: strPtr("epic"), Title: "Print return label", Type: "User Story"},
			{Ref: "task1", ParentRef: strPtr("story1"), Title: "Return form UI", Type: "Task",
				Fields: []FieldImport{{Name: "activity", Value: "Development"}}},
		},
	}

	require.Empty(t, ValidatePlanSchema(schema))

	converted, err := Convert(schema)
	require.NoError(t, err)

	root := converted.Root
	assert.Equal(t, domain.KindWorkItem, root.Kind)
	assert.Equal(t, "Epic", root.Type)
	assert.Equal(t, 4, root.CountNodes())

	require.Len(t, root.Children, 2)
	assert.Equal(t, "Request a return", root.Children[0].Title)
	assert.Equal(t, "Print return label", root.Children[1].Title)
	require.Len(t, root.Children[0].Children, 1)
	assert.Equal(t, "Return form UI", root.Children[0].Children[0].Title)
}

func TestValidatePlanSchema(t *testing.T) {
	tests := []struct {
		name    string
		schema  PlanSchema
		wantErr string
	}{
		{
			name:    "empty file",
			schema:  PlanSchema{},
			wantErr: "either a plan or work_items",
		},
		{
			name: "both variants",
			schema: PlanSchema{
				Plan:      &PlanImport{Title: "P"},
				WorkItems: []WorkItemImport{{Ref: "w", Title: "W", Type: "Task"}},
			},
			wantErr: "cannot declare both",
		},
		{
			name: "missing plan title",
			schema: PlanSchema{
				Plan: &PlanImport{},
			},
			wantErr: "plan.title is required",
		},
		{
			name: "forward suite parent ref",
			schema: PlanSchema{
				Plan: &PlanImport{Title: "P"},
				Suites: []SuiteImport{
					{Ref: "s1", ParentRef: strPtr("s2"), Title: "A"},
					{Ref: "s2", Title: "B"},
				},
			},
			wantErr: "does not name an earlier suite",
		},
		{
			name: "case without suite",
			schema: PlanSchema{
				Plan:  &PlanImport{Title: "P"},
				Cases: []CaseImport{{Ref: "c1", SuiteRef: "nope", Title: "C"}},
			},
			wantErr: "does not name a declared suite",
		},
		{
			name: "duplicate suite ref",
			schema: PlanSchema{
				Plan: &PlanImport{Title: "P"},
				Suites: []SuiteImport{
					{Ref: "s1", Title: "A"},
					{Ref: "s1", Title: "B"},
				},
			},
			wantErr: "duplicate ref",
		},
		{
			name: "step without action",
			schema: PlanSchema{
				Plan:   &PlanImport{Title: "P"},
				Suites: []SuiteImport{{Ref: "s1", Title: "A"}},
				Cases: []CaseImport{
					{Ref: "c1", SuiteRef: "s1", Title: "C", Steps: []StepImport{{Expected: "x"}}},
				},
			},
			wantErr: "action is required",
		},
		{
			name: "two work item roots",
			schema: PlanSchema{
				WorkItems: []WorkItemImport{
					{Ref: "a", Title: "A", Type: "Task"},
					{Ref: "b", Title: "B", Type: "Task"},
				},
			},
			wantErr: "exactly one root",
		},
		{
			name: "work item missing type",
			schema: PlanSchema{
				WorkItems: []WorkItemImport{{Ref: "a", Title: "A"}},
			},
			wantErr: "type is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatePlanSchema(&tt.schema)
			require.NotEmpty(t, errs)

			found := false
			for _, e := range errs {
				if strings.Contains(e.Error(), tt.wantErr) {
					found = true
				}
			}
			assert.True(t, found, "expected an error containing %q, got %v", tt.wantErr, errs)
		})
	}
}
