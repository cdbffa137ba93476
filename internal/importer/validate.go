package importer

import "fmt"

// ValidatePlanSchema checks a plan schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidatePlanSchema(schema *PlanSchema) []error {
	var errs []error

	hasPlan := schema.Plan != nil
	hasWorkItems := len(schema.WorkItems) > 0

	switch {
	case !hasPlan && !hasWorkItems:
		return []error{fmt.Errorf("file must declare either a plan or work_items")}
	case hasPlan && hasWorkItems:
		return []error{fmt.Errorf("file cannot declare both a plan and work_items")}
	}

	if hasPlan {
		errs = append(errs, validatePlanTree(schema)...)
	} else {
		errs = append(errs, validateWorkItemTree(schema.WorkItems)...)
	}
	return errs
}

func validatePlanTree(schema *PlanSchema) []error {
	var errs []error

	if schema.Plan.Title == "" {
		errs = append(errs, fmt.Errorf("plan.title is required"))
	}

	suiteRefs := make(map[string]bool)
	for i, s := range schema.Suites {
		where := fmt.Sprintf("suites[%d]", i)
		if s.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", where))
		} else if suiteRefs[s.Ref] {
			errs = append(errs, fmt.Errorf("%s: duplicate ref %q", where, s.Ref))
		}
		if s.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", where))
		}
		// Parents must be declared before their children so conversion can
		// thread ownership in one pass.
		if s.ParentRef != nil && *s.ParentRef != "" && !suiteRefs[*s.ParentRef] {
			errs = append(errs, fmt.Errorf("%s.parent_ref %q does not name an earlier suite", where, *s.ParentRef))
		}
		if s.Ref != "" {
			suiteRefs[s.Ref] = true
		}
	}

	caseRefs := make(map[string]bool)
	for i, c := range schema.Cases {
		where := fmt.Sprintf("cases[%d]", i)
		if c.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", where))
		} else if caseRefs[c.Ref] {
			errs = append(errs, fmt.Errorf("%s: duplicate ref %q", where, c.Ref))
		} else {
			caseRefs[c.Ref] = true
		}
		if c.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", where))
		}
		if c.SuiteRef == "" {
			errs = append(errs, fmt.Errorf("%s.suite_ref is required", where))
		} else if !suiteRefs[c.SuiteRef] {
			errs = append(errs, fmt.Errorf("%s.suite_ref %q does not name a declared suite", where, c.SuiteRef))
		}
		for j, st := range c.Steps {
			if st.Action == "" {
				errs = append(errs, fmt.Errorf("%s.steps[%d].action is required", where, j))
			}
		}
	}

	return errs
}

func validateWorkItemTree(items []WorkItemImport) []error {
	var errs []error

	refs := make(map[string]bool)
	roots := 0
	for i, wi := range items {
		where := fmt.Sprintf("work_items[%d]", i)
		if wi.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", where))
		} else if refs[wi.Ref] {
			errs = append(errs, fmt.Errorf("%s: duplicate ref %q", where, wi.Ref))
		}
		if wi.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", where))
		}
		if wi.Type == "" {
			errs = append(errs, fmt.Errorf("%s.type is required", where))
		}
		if wi.ParentRef == nil || *wi.ParentRef == "" {
			roots++
		} else if !refs[*wi.ParentRef] {
			errs = append(errs, fmt.Errorf("%s.parent_ref %q does not name an earlier work item", where, *wi.ParentRef))
		}
		if wi.Ref != "" {
			refs[wi.Ref] = true
		}
	}

	if roots != 1 {
		errs = append(errs, fmt.Errorf("work_items must declare exactly one root (found %d items without parent_ref)", roots))
	}

	return errs
}
