package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// PlanSchema is the top-level JSON structure for a publishable tree. A file
// describes either a test plan (plan + suites + cases) or a work item tree
// (work_items), never both.
type PlanSchema struct {
	Plan      *PlanImport      `json:"plan,omitempty"`
	Suites    []SuiteImport    `json:"suites,omitempty"`
	Cases     []CaseImport     `json:"cases,omitempty"`
	WorkItems []WorkItemImport `json:"work_items,omitempty"`
}

// PlanImport defines the plan-level fields in the file.
type PlanImport struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	AreaPath    string `json:"area_path,omitempty"`
	Iteration   string `json:"iteration,omitempty"`
}

// SuiteImport defines one suite. An empty parent_ref attaches the suite
// directly to the plan.
type SuiteImport struct {
	Ref       string  `json:"ref"`
	ParentRef *string `json:"parent_ref,omitempty"`
	Title     string  `json:"title"`
}

// CaseImport defines one test case inside a suite. Type is optional; when
// set it overrides the run-level case type and resolves through type
// mappings like a work-item type.
type CaseImport struct {
	Ref         string        `json:"ref"`
	SuiteRef    string        `json:"suite_ref"`
	Title       string        `json:"title"`
	Type        string        `json:"type,omitempty"`
	Description string        `json:"description,omitempty"`
	Fields      []FieldImport `json:"fields,omitempty"`
	Steps       []StepImport  `json:"steps,omitempty"`
}

// WorkItemImport defines one work item. Exactly one item per file has an
// empty parent_ref; it becomes the root of the tree.
type WorkItemImport struct {
	Ref         string        `json:"ref"`
	ParentRef   *string       `json:"parent_ref,omitempty"`
	Title       string        `json:"title"`
	Type        string        `json:"type"`
	Description string        `json:"description,omitempty"`
	Fields      []FieldImport `json:"fields,omitempty"`
}

// FieldImport is one ordered field entry. A list rather than a map so the
// declared order survives into the patch document.
type FieldImport struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StepImport is one action/expected pair of a case.
type StepImport struct {
	Action   string `json:"action"`
	Expected string `json:"expected,omitempty"`
}

// LoadPlanSchema reads and parses a plan file.
func LoadPlanSchema(path string) (*PlanSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema PlanSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &schema, nil
}
