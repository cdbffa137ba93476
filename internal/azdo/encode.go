package azdo

import (
	"fmt"
	"strings"

	"github.com/planpush/planpush/internal/domain"
)

// xmlEscaper covers the five characters that must not appear raw inside the
// steps document. Ampersand is listed first so already-escaped entities are
// not double-escaped by later pairs.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EncodeSteps serializes test case steps into the XML document the tracker
// stores in its steps field. An empty input produces a single placeholder
// step so the remote "at least one step" constraint always holds. Steps are
// numbered 1..N in input order and the container declares the count.
func EncodeSteps(steps []domain.Step) string {
	if len(steps) == 0 {
		steps = []domain.Step{{Action: "No steps defined"}}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<steps id="0" last="%d">`, len(steps))
	for i, s := range steps {
		stepType := "ActionStep"
		if s.Expected != "" {
			stepType = "ValidateStep"
		}
		fmt.Fprintf(&b, `<step id="%d" type="%s">`, i+1, stepType)
		fmt.Fprintf(&b, `<parameterizedString isformatted="true">%s</parameterizedString>`, xmlEscaper.Replace(s.Action))
		fmt.Fprintf(&b, `<parameterizedString isformatted="true">%s</parameterizedString>`, xmlEscaper.Replace(s.Expected))
		b.WriteString(`<description/></step>`)
	}
	b.WriteString(`</steps>`)
	return b.String()
}

// fieldReferenceNames maps lowercase friendly field names to the tracker's
// canonical reference names. Names not in the table pass through unchanged,
// so callers can address any field by its full reference name directly.
var fieldReferenceNames = map[string]string{
	"title":               "System.Title",
	"description":         "System.Description",
	"state":               "System.State",
	"tags":                "System.Tags",
	"area":                "System.AreaPath",
	"area path":           "System.AreaPath",
	"iteration":           "System.IterationPath",
	"iteration path":      "System.IterationPath",
	"assigned to":         "System.AssignedTo",
	"assignee":            "System.AssignedTo",
	"priority":            "Microsoft.VSTS.Common.Priority",
	"severity":            "Microsoft.VSTS.Common.Severity",
	"risk":                "Microsoft.VSTS.Common.Risk",
	"activity":            "Microsoft.VSTS.Common.Activity",
	"value area":          "Microsoft.VSTS.Common.ValueArea",
	"acceptance criteria": "Microsoft.VSTS.Common.AcceptanceCriteria",
	"story points":        "Microsoft.VSTS.Scheduling.StoryPoints",
	"effort":              "Microsoft.VSTS.Scheduling.Effort",
	"remaining work":      "Microsoft.VSTS.Scheduling.RemainingWork",
	"original estimate":   "Microsoft.VSTS.Scheduling.OriginalEstimate",
	"repro steps":         "Microsoft.VSTS.TCM.ReproSteps",
	"steps":               "Microsoft.VSTS.TCM.Steps",
	"automation status":   "Microsoft.VSTS.TCM.AutomationStatus",
}

// FieldReferenceName resolves a friendly field name to its canonical
// reference name. Lookup is case-insensitive. Unrecognized names are
// returned unchanged, which makes the function total and idempotent.
func FieldReferenceName(friendly string) string {
	if ref, ok := fieldReferenceNames[strings.ToLower(strings.TrimSpace(friendly))]; ok {
		return ref
	}
	return friendly
}
