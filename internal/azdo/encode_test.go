package azdo

import (
	"strings"
	"testing"

	"github.com/planpush/planpush/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestEncodeSteps_Empty(t *testing.T) {
	got := EncodeSteps(nil)

	assert.Contains(t, got, `last="1"`)
	assert.Contains(t, got, "No steps defined")
	assert.Contains(t, got, `type="ActionStep"`)
}

func TestEncodeSteps_NumbersAndCount(t *testing.T) {
	steps := []domain.Step{
		{Action: "Open the login page", Expected: "Login form is shown"},
		{Action: "Submit empty form", Expected: "Validation errors appear"},
		{Action: "Close the browser"},
	}

	got := EncodeSteps(steps)

	assert.Contains(t, got, `<steps id="0" last="3">`)
	assert.Contains(t, got, `<step id="1" type="ValidateStep">`)
	assert.Contains(t, got, `<step id="2" type="ValidateStep">`)
	assert.Contains(t, got, `<step id="3" type="ActionStep">`)
	assert.Contains(t, got, "Open the login page")
	assert.Contains(t, got, "Validation errors appear")
}

func TestEncodeSteps_EscapesMarkup(t *testing.T) {
	steps := []domain.Step{
		{Action: `Enter <script>alert("x")</script> & click 'OK'`, Expected: `Value is < 10 & > 5`},
	}

	got := EncodeSteps(steps)

	// None of the raw input characters may survive inside the document.
	inner := strings.TrimPrefix(got, `<steps id="0" last="1">`)
	for _, pair := range []struct{ raw, escaped string }{
		{"<script>", "&lt;script&gt;"},
		{`"x"`, "&quot;x&quot;"},
		{"'OK'", "&apos;OK&apos;"},
		{"& click", "&amp; click"},
	} {
		assert.NotContains(t, inner, pair.raw)
		assert.Contains(t, got, pair.escaped)
	}
}

func TestFieldReferenceName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"priority", "Microsoft.VSTS.Common.Priority"},
		{"Priority", "Microsoft.VSTS.Common.Priority"},
		{"PRIORITY", "Microsoft.VSTS.Common.Priority"},
		{"description", "System.Description"},
		{"area", "System.AreaPath"},
		{"Area Path", "System.AreaPath"},
		{"iteration", "System.IterationPath"},
		{"tags", "System.Tags"},
		{"assigned to", "System.AssignedTo"},
		{"story points", "Microsoft.VSTS.Scheduling.StoryPoints"},
		{"repro steps", "Microsoft.VSTS.TCM.ReproSteps"},
		{"Custom.MyField", "Custom.MyField"},
		{"unknown name", "unknown name"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FieldReferenceName(tt.in))
		})
	}
}

func TestFieldReferenceName_Idempotent(t *testing.T) {
	for _, name := range []string{"priority", "Severity", "area", "unknown", "System.Title"} {
		once := FieldReferenceName(name)
		twice := FieldReferenceName(once)
		assert.Equal(t, once, twice, "FieldReferenceName must be idempotent for %q", name)
	}
}
