package domain

// NodeKind identifies what a SpecNode materializes as on the remote tracker.
type NodeKind string

const (
	KindPlan     NodeKind = "plan"
	KindSuite    NodeKind = "suite"
	KindCase     NodeKind = "case"
	KindWorkItem NodeKind = "work_item"
)

// ValidChildKinds maps each node kind to the kinds its children may have.
var ValidChildKinds = map[NodeKind][]NodeKind{
	KindPlan:     {KindSuite},
	KindSuite:    {KindSuite, KindCase},
	KindCase:     {},
	KindWorkItem: {KindWorkItem},
}

// Step is one action/expected-result pair of a test case.
type Step struct {
	Action   string
	Expected string
}

// Field is a single typed field value on a node, keyed by its friendly name.
// Order is significant: fields are submitted to the remote tracker in the
// order they were declared.
type Field struct {
	Name  string
	Value string
}

// SpecNode is one node of an input tree to publish. Children are owned by
// value, so the tree is acyclic by construction; parents are never referenced
// back from children.
type SpecNode struct {
	Kind        NodeKind
	Title       string
	Description string
	Type        string // remote work item type; work items and cases only
	Fields      []Field
	Steps       []Step // cases only
	Children    []SpecNode
}

// CountNodes returns the total number of nodes in the subtree rooted at n,
// including n itself.
func (n *SpecNode) CountNodes() int {
	count := 1
	for i := range n.Children {
		count += n.Children[i].CountNodes()
	}
	return count
}

// ValidateKinds checks that every parent/child pairing in the subtree is
// legal. Returns a slice of all violations found.
func (n *SpecNode) ValidateKinds() []error {
	return validateKinds(n, nil)
}

func validateKinds(n *SpecNode, errs []error) []error {
	allowed := ValidChildKinds[n.Kind]
	for i := range n.Children {
		child := &n.Children[i]
		if !kindAllowed(allowed, child.Kind) {
			errs = append(errs, &ChildKindError{
				Parent:     n.Title,
				ParentKind: n.Kind,
				Child:      child.Title,
				ChildKind:  child.Kind,
			})
		}
		errs = validateKinds(child, errs)
	}
	return errs
}

func kindAllowed(allowed []NodeKind, kind NodeKind) bool {
	for _, k := range allowed {
		if k == kind {
			return true
		}
	}
	return false
}

// ChildKindError reports an illegal parent/child kind pairing.
type ChildKindError struct {
	Parent     string
	ParentKind NodeKind
	Child      string
	ChildKind  NodeKind
}

func (e *ChildKindError) Error() string {
	return "node \"" + e.Parent + "\" (" + string(e.ParentKind) + ") cannot contain \"" +
		e.Child + "\" (" + string(e.ChildKind) + ")"
}
