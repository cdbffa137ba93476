package importer

import (
	"fmt"

	"github.com/planpush/planpush/internal/domain"
)

// ConvertedPlan is the result of converting a validated schema: the owned
// spec tree plus the run-wide classification defaults the file declared.
type ConvertedPlan struct {
	Root      *domain.SpecNode
	AreaPath  string
	Iteration string
}

// Convert transforms a validated PlanSchema into an owned SpecNode tree.
// Call ValidatePlanSchema first; Convert assumes the schema is valid.
// Children keep their declaration order: a parent's suites come first, then
// its cases, each in file order.
func Convert(schema *PlanSchema) (*ConvertedPlan, error) {
	if schema.Plan != nil {
		return convertPlan(schema)
	}
	return convertWorkItems(schema.WorkItems)
}

func convertPlan(schema *PlanSchema) (*ConvertedPlan, error) {
	root := &domain.SpecNode{
		Kind:        domain.KindPlan,
		Title:       schema.Plan.Title,
		Description: schema.Plan.Description,
	}

	// Build suite nodes first; attach to parents on a second pass so slices
	// are not reallocated under earlier references.
	nodes := make([]*domain.SpecNode, len(schema.Suites))
	index := make(map[string]int, len(schema.Suites))
	for i, s := range schema.Suites {
		nodes[i] = &domain.SpecNode{Kind: domain.KindSuite, Title: s.Title}
		index[s.Ref] = i
	}

	for i, c := range schema.Cases {
		parentIdx, ok := index[c.SuiteRef]
		if !ok {
			return nil, fmt.Errorf("cases[%d]: unknown suite_ref %q", i, c.SuiteRef)
		}
		nodes[parentIdx].Children = append(nodes[parentIdx].Children, domain.SpecNode{
			Kind:        domain.KindCase,
			Title:       c.Title,
			Type:        c.Type,
			Description: c.Description,
			Fields:      convertFields(c.Fields),
			Steps:       convertSteps(c.Steps),
		})
	}

	// Attach suites bottom-up (reverse declaration order) so each node's
	// subtree is final before the node itself is copied into its parent.
	// Prepending preserves sibling declaration order and keeps child suites
	// ahead of the parent's own cases.
	for i := len(schema.Suites) - 1; i >= 0; i-- {
		s := schema.Suites[i]
		if s.ParentRef == nil || *s.ParentRef == "" {
			continue
		}
		parent := nodes[index[*s.ParentRef]]
		parent.Children = append([]domain.SpecNode{*nodes[i]}, parent.Children...)
		nodes[i] = nil
	}
	// Remaining nodes are the plan's direct children, in declaration order.
	for i := range schema.Suites {
		if nodes[i] != nil {
			root.Children = append(root.Children, *nodes[i])
		}
	}

	return &ConvertedPlan{
		Root:      root,
		AreaPath:  schema.Plan.AreaPath,
		Iteration: schema.Plan.Iteration,
	}, nil
}

func convertWorkItems(items []WorkItemImport) (*ConvertedPlan, error) {
	nodes := make([]*domain.SpecNode, len(items))
	index := make(map[string]int, len(items))
	rootIdx := -1

	for i, wi := range items {
		nodes[i] = &domain.SpecNode{
			Kind:        domain.KindWorkItem,
			Title:       wi.Title,
			Type:        wi.Type,
			Description: wi.Description,
			Fields:      convertFields(wi.Fields),
		}
		index[wi.Ref] = i
		if wi.ParentRef == nil || *wi.ParentRef == "" {
			rootIdx = i
		}
	}
	if rootIdx == -1 {
		return nil, fmt.Errorf("work_items: no root item found")
	}

	for i := len(items) - 1; i >= 0; i-- {
		wi := items[i]
		if wi.ParentRef == nil || *wi.ParentRef == "" {
			continue
		}
		parentIdx, ok := index[*wi.ParentRef]
		if !ok {
			return nil, fmt.Errorf("work_items[%d]: unknown parent_ref %q", i, *wi.ParentRef)
		}
		parent := nodes[parentIdx]
		parent.Children = append([]domain.SpecNode{*nodes[i]}, parent.Children...)
	}

	return &ConvertedPlan{Root: nodes[rootIdx]}, nil
}

func convertFields(fields []FieldImport) []domain.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]domain.Field, len(fields))
	for i, f := range fields {
		out[i] = domain.Field{Name: f.Name, Value: f.Value}
	}
	return out
}

func convertSteps(steps []StepImport) []domain.Step {
	if len(steps) == 0 {
		return nil
	}
	out := make([]domain.Step, len(steps))
	for i, s := range steps {
		out[i] = domain.Step{Action: s.Action, Expected: s.Expected}
	}
	return out
}
