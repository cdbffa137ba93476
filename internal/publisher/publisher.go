package publisher

import (
	"context"
	"fmt"
	"strings"

	"github.com/planpush/planpush/internal/azdo"
	"github.com/planpush/planpush/internal/domain"
)

// Creator is the slice of the remote client the publisher depends on.
// *azdo.Client satisfies it.
type Creator interface {
	CreatePlan(ctx context.Context, rc azdo.RemoteContext, plan *domain.SpecNode, areaPath, iteration string) (azdo.PlanDescriptor, error)
	CreateSuite(ctx context.Context, rc azdo.RemoteContext, planID, parentSuiteID int, suite *domain.SpecNode) (azdo.SuiteDescriptor, error)
	CreateWorkItem(ctx context.Context, rc azdo.RemoteContext, typeName string, patch []azdo.PatchOp, nodeTitle string) (azdo.WorkItemDescriptor, error)
	AddSuiteEntries(ctx context.Context, rc azdo.RemoteContext, planID, suiteID int, caseIDs []int, nodeTitle string) error
	AddTestPoints(ctx context.Context, rc azdo.RemoteContext, planID, suiteID int, caseIDs []int, nodeTitle string) error
	LinkParent(ctx context.Context, rc azdo.RemoteContext, childID int, parentURL, nodeTitle string) error
}

// Options carries run-wide defaults applied to every created item.
type Options struct {
	AreaPath      string
	IterationPath string
	CaseType      string // remote type for test cases; defaults to "Test Case"
}

// directFields are set explicitly by the publisher and therefore excluded
// from generic field processing, so they are never submitted twice.
var directFields = map[string]bool{
	"title":          true,
	"description":    true,
	"area":           true,
	"area path":      true,
	"iteration":      true,
	"iteration path": true,
}

// Publisher materializes a spec tree against the remote tracker, strictly
// sequentially and in declared order: every node's remote id is resolved
// before any call that references it as a parent.
type Publisher struct {
	creator  Creator
	observer Observer
}

// New creates a Publisher. A nil observer is replaced with NoopObserver.
func New(creator Creator, observer Observer) *Publisher {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Publisher{creator: creator, observer: observer}
}

// Publish creates the whole tree rooted at root and returns a result tree
// mirroring it 1:1. The first failure aborts the run: no partial result is
// returned, and calls already issued are not undone, so the caller must
// assume some artifacts exist remotely after any error.
func (p *Publisher) Publish(ctx context.Context, rc azdo.RemoteContext, root *domain.SpecNode, opts Options) (*domain.ResultNode, error) {
	if opts.CaseType == "" {
		opts.CaseType = "Test Case"
	}

	switch root.Kind {
	case domain.KindPlan:
		return p.publishPlan(ctx, rc, root, opts)
	case domain.KindWorkItem:
		return p.publishWorkItem(ctx, rc, root, nil, opts, 0)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRoot, root.Kind)
	}
}

func (p *Publisher) publishPlan(ctx context.Context, rc azdo.RemoteContext, node *domain.SpecNode, opts Options) (*domain.ResultNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	desc, err := p.creator.CreatePlan(ctx, rc, node, opts.AreaPath, opts.IterationPath)
	if err != nil {
		return nil, err
	}

	result := &domain.ResultNode{
		Kind:     domain.KindPlan,
		RemoteID: desc.ID,
		Name:     desc.Name,
		Status:   domain.StatusCreated,
	}
	p.observer.OnNodeComplete(NodeEvent{Kind: node.Kind, Title: node.Title, RemoteID: desc.ID, Status: domain.StatusCreated})

	// The implicit root suite is the attachment point for the plan's
	// declared children. Without it they cannot be placed anywhere.
	if len(node.Children) > 0 && desc.RootSuiteID == 0 {
		return nil, &StructuralError{Node: node.Title, Missing: "root suite id"}
	}

	for i := range node.Children {
		childResult, err := p.publishSuite(ctx, rc, &node.Children[i], desc.ID, desc.RootSuiteID, opts, 1)
		if err != nil {
			return nil, err
		}
		result.Children = append(result.Children, *childResult)
	}
	return result, nil
}

func (p *Publisher) publishSuite(ctx context.Context, rc azdo.RemoteContext, node *domain.SpecNode, planID, parentSuiteID int, opts Options, depth int) (*domain.ResultNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	desc, err := p.creator.CreateSuite(ctx, rc, planID, parentSuiteID, node)
	if err != nil {
		return nil, err
	}

	result := &domain.ResultNode{
		Kind:     domain.KindSuite,
		RemoteID: desc.ID,
		Name:     desc.Name,
		Status:   domain.StatusCreated,
	}
	p.observer.OnNodeComplete(NodeEvent{Kind: node.Kind, Title: node.Title, RemoteID: desc.ID, Status: domain.StatusCreated, Depth: depth})

	for i := range node.Children {
		child := &node.Children[i]

		var childResult *domain.ResultNode
		switch child.Kind {
		case domain.KindCase:
			childResult, err = p.publishCase(ctx, rc, child, planID, desc.ID, opts, depth+1)
		default:
			childResult, err = p.publishSuite(ctx, rc, child, planID, desc.ID, opts, depth+1)
		}
		if err != nil {
			return nil, err
		}
		result.Children = append(result.Children, *childResult)
	}
	return result, nil
}

func (p *Publisher) publishCase(ctx context.Context, rc azdo.RemoteContext, node *domain.SpecNode, planID, suiteID int, opts Options, depth int) (*domain.ResultNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	typeName := domain.CoalesceStr(node.Type, opts.CaseType)
	patch := p.buildPatch(node, opts)
	patch = azdo.AddField(patch, "Microsoft.VSTS.TCM.Steps", azdo.EncodeSteps(node.Steps))

	desc, err := p.creator.CreateWorkItem(ctx, rc, typeName, patch, node.Title)
	if err != nil {
		return nil, err
	}

	// Membership and point registration come after item creation and are
	// not atomic with it: a failure here leaves the item orphaned remotely.
	if err := p.creator.AddSuiteEntries(ctx, rc, planID, suiteID, []int{desc.ID}, node.Title); err != nil {
		p.observer.OnNodeComplete(NodeEvent{Kind: node.Kind, Title: node.Title, RemoteID: desc.ID, Status: domain.StatusCreatedUnlinked, Depth: depth})
		return nil, &OrphanedItemError{Node: node.Title, RemoteID: desc.ID, Err: err}
	}
	if err := p.creator.AddTestPoints(ctx, rc, planID, suiteID, []int{desc.ID}, node.Title); err != nil {
		p.observer.OnNodeComplete(NodeEvent{Kind: node.Kind, Title: node.Title, RemoteID: desc.ID, Status: domain.StatusCreatedUnlinked, Depth: depth})
		return nil, &OrphanedItemError{Node: node.Title, RemoteID: desc.ID, Err: err}
	}

	p.observer.OnNodeComplete(NodeEvent{Kind: node.Kind, Title: node.Title, RemoteID: desc.ID, Status: domain.StatusCreated, Depth: depth})
	return &domain.ResultNode{
		Kind:     domain.KindCase,
		RemoteID: desc.ID,
		Name:     desc.Title,
		URL:      desc.URL,
		Status:   domain.StatusCreated,
	}, nil
}

func (p *Publisher) publishWorkItem(ctx context.Context, rc azdo.RemoteContext, node *domain.SpecNode, parent *azdo.WorkItemDescriptor, opts Options, depth int) (*domain.ResultNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	typeName := domain.CoalesceStr(node.Type, "Task")
	patch := p.buildPatch(node, opts)

	desc, err := p.creator.CreateWorkItem(ctx, rc, typeName, patch, node.Title)
	if err != nil {
		return nil, err
	}

	if parent != nil {
		if err := p.creator.LinkParent(ctx, rc, desc.ID, parent.URL, node.Title); err != nil {
			p.observer.OnNodeComplete(NodeEvent{Kind: node.Kind, Title: node.Title, RemoteID: desc.ID, Status: domain.StatusCreatedUnlinked, Depth: depth})
			return nil, &OrphanedItemError{Node: node.Title, RemoteID: desc.ID, Err: err}
		}
	}

	result := &domain.ResultNode{
		Kind:     domain.KindWorkItem,
		RemoteID: desc.ID,
		Name:     desc.Title,
		URL:      desc.URL,
		Status:   domain.StatusCreated,
	}
	p.observer.OnNodeComplete(NodeEvent{Kind: node.Kind, Title: node.Title, RemoteID: desc.ID, Status: domain.StatusCreated, Depth: depth})

	for i := range node.Children {
		childResult, err := p.publishWorkItem(ctx, rc, &node.Children[i], &desc, opts, depth+1)
		if err != nil {
			return nil, err
		}
		result.Children = append(result.Children, *childResult)
	}
	return result, nil
}

// buildPatch assembles the ordered patch document for one node: title and
// description first, then the run-wide classification paths, then the node's
// own fields through the friendly-name mapping. Fields the publisher sets
// directly are skipped so they are not submitted twice.
func (p *Publisher) buildPatch(node *domain.SpecNode, opts Options) []azdo.PatchOp {
	patch := azdo.AddField(nil, "System.Title", node.Title)
	if node.Description != "" {
		patch = azdo.AddField(patch, "System.Description", node.Description)
	}
	if opts.AreaPath != "" {
		patch = azdo.AddField(patch, "System.AreaPath", opts.AreaPath)
	}
	if opts.IterationPath != "" {
		patch = azdo.AddField(patch, "System.IterationPath", opts.IterationPath)
	}

	for _, f := range node.Fields {
		if directFields[normalizeFieldName(f.Name)] {
			continue
		}
		patch = azdo.AddField(patch, azdo.FieldReferenceName(f.Name), f.Value)
	}
	return patch
}

// normalizeFieldName lowers and trims a friendly field name for comparison
// against the direct-field exclusion set.
func normalizeFieldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
