package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/planpush/planpush/internal/domain"
)

// FormatDryRun renders the validated tree without touching the remote.
func FormatDryRun(root *domain.SpecNode, nodeCount int) string {
	var b strings.Builder
	b.WriteString(Header("dry run"))
	b.WriteString("\n\n")
	b.WriteString(RenderSpecTree(root))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d items would be created. Nothing was sent.", nodeCount)))
	b.WriteString("\n")
	return b.String()
}

// FormatPublishResult renders a completed publish run.
func FormatPublishResult(root *domain.ResultNode, created, total int) string {
	var b strings.Builder
	b.WriteString(RenderResultTree(root))
	b.WriteString("\n")
	b.WriteString(StyleGreen.Render(fmt.Sprintf("Published %d of %d items.", created, total)))
	b.WriteString("\n")
	return b.String()
}

// FormatPublishFailure renders a partial run that stopped at an error.
func FormatPublishFailure(err error, created, total int) string {
	var b strings.Builder
	b.WriteString(StyleRed.Render("Publish failed: "))
	b.WriteString(err.Error())
	b.WriteString("\n")
	if created > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%d of %d items were created before the failure and remain on the server.", created, total)))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatProfileList renders stored profiles as a table.
func FormatProfileList(profiles []*domain.Profile) string {
	rows := make([][]string, len(profiles))
	for i, p := range profiles {
		rows[i] = []string{
			p.Name,
			p.Organization,
			p.Project,
			ActivePill(p.Active),
		}
	}
	return RenderTable([]string{"NAME", "ORGANIZATION", "PROJECT", ""}, rows)
}

// FormatMappingList renders type mappings as a table.
func FormatMappingList(mappings []*domain.TypeMapping) string {
	rows := make([][]string, len(mappings))
	for i, m := range mappings {
		defaults := make([]string, len(m.DefaultFields))
		for j, f := range m.DefaultFields {
			defaults[j] = f.Name + "=" + f.Value
		}
		rows[i] = []string{
			m.Alias,
			m.RemoteType,
			Dim(strings.Join(defaults, ", ")),
		}
	}
	return RenderTable([]string{"ALIAS", "REMOTE TYPE", "DEFAULTS"}, rows)
}

// FormatHistory renders publish history records as a table.
func FormatHistory(records []*domain.PublishRecord) string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			TruncID(r.ID),
			r.RootTitle,
			string(r.RootKind),
			strconv.Itoa(r.CreatedCount) + "/" + strconv.Itoa(r.NodeCount),
			OutcomePill(r.Outcome),
			Dim(HumanTimestamp(r.StartedAt)),
		}
	}
	return RenderTable([]string{"ID", "ROOT", "KIND", "CREATED", "OUTCOME", "WHEN"}, rows)
}

// FormatHistoryRecord renders one record in full.
func FormatHistoryRecord(r *domain.PublishRecord) string {
	var b strings.Builder
	b.WriteString(Header("publish run"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", Bold(r.RootTitle), KindBadge(r.RootKind)))
	b.WriteString(fmt.Sprintf("  Outcome:  %s\n", OutcomePill(r.Outcome)))
	b.WriteString(fmt.Sprintf("  Created:  %d of %d items\n", r.CreatedCount, r.NodeCount))
	if r.ProfileName != "" {
		b.WriteString(fmt.Sprintf("  Profile:  %s\n", r.ProfileName))
	}
	b.WriteString(fmt.Sprintf("  Started:  %s\n", r.StartedAt.Local().Format("Jan 2, 2006 15:04:05")))
	b.WriteString(fmt.Sprintf("  Duration: %s\n", r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond)))
	if r.ErrorText != "" {
		b.WriteString(fmt.Sprintf("  Error:    %s\n", StyleRed.Render(r.ErrorText)))
	}
	return b.String()
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}
