package formatter

import (
	"fmt"
	"strings"

	"github.com/planpush/planpush/internal/domain"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeGap    = "   "
)

// RenderSpecTree renders a to-be-published tree with kind badges and step
// counts. Used for dry-run previews and draft review.
func RenderSpecTree(root *domain.SpecNode) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	renderSpecNode(&b, root, "", "")
	return b.String()
}

func renderSpecNode(b *strings.Builder, n *domain.SpecNode, connector, childPrefix string) {
	b.WriteString(connector)
	b.WriteString(KindBadge(n.Kind))
	b.WriteString(" ")
	b.WriteString(n.Title)
	if n.Kind == domain.KindWorkItem && n.Type != "" {
		b.WriteString(Dim(" (" + n.Type + ")"))
	}
	if n.Kind == domain.KindCase && len(n.Steps) > 0 {
		b.WriteString(Dim(fmt.Sprintf(" [%d steps]", len(n.Steps))))
	}
	b.WriteString("\n")

	for i := range n.Children {
		conn := childPrefix + treeBranch
		next := childPrefix + treePipe
		if i == len(n.Children)-1 {
			conn = childPrefix + treeCorner
			next = childPrefix + treeGap
		}
		renderSpecNode(b, &n.Children[i], conn, next)
	}
}

// RenderResultTree renders a published tree with remote ids and per-node
// status marks.
func RenderResultTree(root *domain.ResultNode) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	renderResultNode(&b, root, "", "")
	return b.String()
}

func renderResultNode(b *strings.Builder, n *domain.ResultNode, connector, childPrefix string) {
	b.WriteString(connector)
	b.WriteString(StatusMark(n.Status))
	b.WriteString(" ")
	b.WriteString(n.Name)
	b.WriteString(Dim(fmt.Sprintf(" #%d", n.RemoteID)))
	if n.Status == domain.StatusCreatedUnlinked {
		b.WriteString(" " + StyleYellow.Render("(created but not linked)"))
	}
	b.WriteString("\n")

	for i := range n.Children {
		conn := childPrefix + treeBranch
		next := childPrefix + treePipe
		if i == len(n.Children)-1 {
			conn = childPrefix + treeCorner
			next = childPrefix + treeGap
		}
		renderResultNode(b, &n.Children[i], conn, next)
	}
}
