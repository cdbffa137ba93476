package domain

// CreateStatus records the outcome of materializing a single node. The
// two-step case creation (work item, then suite membership and test points)
// is not atomic on the remote side, so a node can exist remotely without
// being linked into its suite.
type CreateStatus string

const (
	StatusCreated         CreateStatus = "created"
	StatusCreatedUnlinked CreateStatus = "created_unlinked"
)

// ResultNode mirrors a published SpecNode 1:1: same kind, children in the
// same order, but carrying the remote-assigned identity instead of the
// requested one.
type ResultNode struct {
	Kind     NodeKind
	RemoteID int
	Name     string
	URL      string
	Status   CreateStatus
	Children []ResultNode
}

// CountNodes returns the total number of nodes in the subtree rooted at r,
// including r itself.
func (r *ResultNode) CountNodes() int {
	count := 1
	for i := range r.Children {
		count += r.Children[i].CountNodes()
	}
	return count
}
