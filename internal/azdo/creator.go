package azdo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/planpush/planpush/internal/domain"
)

// PlanDescriptor describes a created test plan. RootSuiteID is the implicit
// root suite the tracker attaches to every plan; zero means the response did
// not include one.
type PlanDescriptor struct {
	ID          int
	Name        string
	RootSuiteID int
}

// SuiteDescriptor describes a created test suite.
type SuiteDescriptor struct {
	ID   int
	Name string
}

// WorkItemDescriptor describes a created work item or test case.
type WorkItemDescriptor struct {
	ID    int
	Title string
	URL   string
}

// PatchOp is one operation of a JSON-patch document submitted to the work
// item creation endpoint. Operations are applied in order.
type PatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// AddField appends an add operation targeting the given field reference name.
func AddField(patch []PatchOp, refName string, value any) []PatchOp {
	return append(patch, PatchOp{Op: "add", Path: "/fields/" + refName, Value: value})
}

type planRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AreaPath    string `json:"areaPath,omitempty"`
	Iteration   string `json:"iteration,omitempty"`
}

type planResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	RootSuite *struct {
		ID int `json:"id"`
	} `json:"rootSuite"`
}

// CreatePlan creates a top-level test plan and reports the implicit root
// suite id when the tracker returns one.
func (c *Client) CreatePlan(ctx context.Context, rc RemoteContext, plan *domain.SpecNode, areaPath, iteration string) (PlanDescriptor, error) {
	req := planRequest{
		Name:        plan.Title,
		Description: plan.Description,
		AreaPath:    areaPath,
		Iteration:   iteration,
	}

	var resp planResponse
	callURL := rc.apiRoot() + "/testplan/plans"
	if err := c.doJSON(ctx, rc, http.MethodPost, callURL, "application/json", req, &resp, "create plan", plan.Title); err != nil {
		return PlanDescriptor{}, err
	}

	desc := PlanDescriptor{ID: resp.ID, Name: resp.Name}
	if resp.RootSuite != nil {
		desc.RootSuiteID = resp.RootSuite.ID
	}
	return desc, nil
}

type suiteRequest struct {
	SuiteType   string `json:"suiteType"`
	Name        string `json:"name"`
	ParentSuite struct {
		ID int `json:"id"`
	} `json:"parentSuite"`
}

type suiteResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreateSuite creates a static suite under parentSuiteID in the given plan.
func (c *Client) CreateSuite(ctx context.Context, rc RemoteContext, planID, parentSuiteID int, suite *domain.SpecNode) (SuiteDescriptor, error) {
	req := suiteRequest{SuiteType: "staticTestSuite", Name: suite.Title}
	req.ParentSuite.ID = parentSuiteID

	var resp suiteResponse
	callURL := fmt.Sprintf("%s/testplan/Plans/%d/suites", rc.apiRoot(), planID)
	if err := c.doJSON(ctx, rc, http.MethodPost, callURL, "application/json", req, &resp, "create suite", suite.Title); err != nil {
		return SuiteDescriptor{}, err
	}
	return SuiteDescriptor{ID: resp.ID, Name: resp.Name}, nil
}

type workItemResponse struct {
	ID     int            `json:"id"`
	Fields map[string]any `json:"fields"`
	URL    string         `json:"url"`
}

// CreateWorkItem creates one tracked item of the given type from an ordered
// JSON-patch document. The type name is embedded in the URL path, prefixed
// with "$" per the tracker's convention.
func (c *Client) CreateWorkItem(ctx context.Context, rc RemoteContext, typeName string, patch []PatchOp, nodeTitle string) (WorkItemDescriptor, error) {
	var resp workItemResponse
	callURL := rc.apiRoot() + "/wit/workitems/$" + url.PathEscape(typeName)
	if err := c.doJSON(ctx, rc, http.MethodPost, callURL, "application/json-patch+json", patch, &resp, "create work item", nodeTitle); err != nil {
		return WorkItemDescriptor{}, err
	}
	title, _ := resp.Fields["System.Title"].(string)
	return WorkItemDescriptor{
		ID:    resp.ID,
		Title: title,
		URL:   resp.URL,
	}, nil
}

type suiteEntry struct {
	WorkItem struct {
		ID int `json:"id"`
	} `json:"workItem"`
}

// AddSuiteEntries registers created test cases as members of a suite. The
// tracker returns nothing useful beyond success or failure.
func (c *Client) AddSuiteEntries(ctx context.Context, rc RemoteContext, planID, suiteID int, caseIDs []int, nodeTitle string) error {
	entries := make([]suiteEntry, len(caseIDs))
	for i, id := range caseIDs {
		entries[i].WorkItem.ID = id
	}

	callURL := fmt.Sprintf("%s/testplan/Plans/%d/Suites/%d/TestCase", rc.apiRoot(), planID, suiteID)
	return c.doJSON(ctx, rc, http.MethodPost, callURL, "application/json", entries, nil, "add suite entries", nodeTitle)
}

type pointsRequest struct {
	PointsFilter struct {
		TestcaseIDs []int `json:"testcaseIds"`
	} `json:"pointsFilter"`
}

// AddTestPoints creates execution points binding the given cases to a suite.
func (c *Client) AddTestPoints(ctx context.Context, rc RemoteContext, planID, suiteID int, caseIDs []int, nodeTitle string) error {
	var req pointsRequest
	req.PointsFilter.TestcaseIDs = caseIDs

	callURL := fmt.Sprintf("%s/test/Plans/%d/Suites/%d/points", rc.apiRoot(), planID, suiteID)
	return c.doJSON(ctx, rc, http.MethodPost, callURL, "application/json", req, nil, "add test points", nodeTitle)
}

// LinkParent attaches childID to the work item at parentURL through a
// hierarchy-reverse relation.
func (c *Client) LinkParent(ctx context.Context, rc RemoteContext, childID int, parentURL, nodeTitle string) error {
	patch := []PatchOp{{
		Op:   "add",
		Path: "/relations/-",
		Value: map[string]any{
			"rel": "System.LinkTypes.Hierarchy-Reverse",
			"url": parentURL,
		},
	}}

	callURL := fmt.Sprintf("%s/wit/workitems/%d", rc.apiRoot(), childID)
	return c.doJSON(ctx, rc, http.MethodPatch, callURL, "application/json-patch+json", patch, nil, "link parent", nodeTitle)
}
