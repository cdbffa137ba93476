package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/planpush/planpush/internal/azdo"
	"github.com/planpush/planpush/internal/config"
	"github.com/planpush/planpush/internal/importer"
	"github.com/planpush/planpush/internal/repository"
	"github.com/planpush/planpush/internal/service"
	"github.com/planpush/planpush/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB. IsInteractive is left
// nil so commands take their non-interactive paths.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	profileRepo := repository.NewSQLiteProfileRepo(database, uow)
	mappingRepo := repository.NewSQLiteTypeMappingRepo(database)
	logRepo := repository.NewSQLitePublishLogRepo(database)

	resolver := config.NewResolver(nil, config.Settings{})
	creator := azdo.NewClient(azdo.NoopObserver{})
	mappings := service.NewMappingService(mappingRepo)

	return &App{
		Profiles: service.NewProfileService(profileRepo),
		Mappings: mappings,
		Publish:  service.NewPublishService(resolver, creator, mappings, logRepo),
		History:  service.NewHistoryService(logRepo),
		// Intelligence services left nil: LLM disabled.
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// writePlanFile marshals a schema to a plan file in a temp dir.
func writePlanFile(t *testing.T, schema *importer.PlanSchema) string {
	t.Helper()
	data, err := json.Marshal(schema)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func testPlanSchema() *importer.PlanSchema {
	checkout := "s1"
	return &importer.PlanSchema{
		Plan: &importer.PlanImport{Title: "Release 1.0"},
		Suites: []importer.SuiteImport{
			{Ref: "s1", Title: "Checkout"},
			{Ref: "s2", ParentRef: &checkout, Title: "Payments"},
		},
		Cases: []importer.CaseImport{
			{Ref: "c1", SuiteRef: "s2", Title: "Pay by card",
				Steps: []importer.StepImport{{Action: "Pay", Expected: "Confirmed"}}},
		},
	}
}

// startFakeTracker serves the creation endpoints with incrementing ids and
// points the resolver env vars at the server.
func startFakeTracker(t *testing.T) {
	t.Helper()
	var nextID atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := int(nextID.Add(1)) + 100
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/testplan/plans"):
			json.NewEncoder(w).Encode(map[string]any{
				"id": id, "name": "plan", "rootSuite": map[string]int{"id": id + 1000},
			})
		case strings.Contains(r.URL.Path, "/suites"):
			json.NewEncoder(w).Encode(map[string]any{"id": id, "name": "suite"})
		case strings.Contains(r.URL.Path, "/wit/workitems/$"):
			json.NewEncoder(w).Encode(map[string]any{
				"id": id, "url": "http://tracker/items/" + r.URL.Path,
				"fields": map[string]any{"System.Title": "item"},
			})
		default:
			json.NewEncoder(w).Encode(map[string]any{})
		}
	}))
	t.Cleanup(srv.Close)

	t.Setenv("PLANPUSH_AZDO_ORG", "contoso")
	t.Setenv("PLANPUSH_AZDO_PROJECT", "Webshop")
	t.Setenv("PLANPUSH_AZDO_TOKEN", "test-pat")
	t.Setenv("PLANPUSH_AZDO_BASE_URL", srv.URL)
}

// --- profile commands ---

func TestProfileCmd_AddAndList(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "profile", "add", "work", "--org", "contoso", "--project", "Webshop")
	require.NoError(t, err)
	assert.Contains(t, output, "Added profile work (contoso/Webshop)")

	output, err = executeCmd(t, app, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "work")
	assert.Contains(t, output, "contoso")
}

func TestProfileCmd_List_Empty(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "No profiles stored")
}

func TestProfileCmd_Add_MissingOrg(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "profile", "add", "work", "--project", "Webshop")
	assert.Error(t, err)
}

func TestProfileCmd_UseAndRemove(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "profile", "add", "work", "--org", "contoso", "--project", "Webshop")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "profile", "add", "personal", "--org", "home", "--project", "Side")
	require.NoError(t, err)

	output, err := executeCmd(t, app, "profile", "use", "personal")
	require.NoError(t, err)
	assert.Contains(t, output, "Active profile: personal")

	output, err = executeCmd(t, app, "profile", "remove", "work")
	require.NoError(t, err)
	assert.Contains(t, output, "Removed profile work")

	output, err = executeCmd(t, app, "profile", "list")
	require.NoError(t, err)
	assert.NotContains(t, output, "work")
	assert.Contains(t, output, "personal")
}

func TestProfileCmd_Use_Unknown(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "profile", "use", "nope")
	assert.Error(t, err)
}

// --- mapping commands ---

func TestMappingCmd_SetListRemove(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "mapping", "set", "bug", "Bug", "--field", "priority=2")
	require.NoError(t, err)
	assert.Contains(t, output, "Bug")

	output, err = executeCmd(t, app, "mapping", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "bug")
	assert.Contains(t, output, "priority=2")

	_, err = executeCmd(t, app, "mapping", "remove", "bug")
	require.NoError(t, err)

	output, err = executeCmd(t, app, "mapping", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "No mappings stored")
}

func TestMappingCmd_Set_InvalidField(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "mapping", "set", "bug", "Bug", "--field", "noequals")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "name=value")
}

// --- publish command ---

func TestPublishCmd_DryRun(t *testing.T) {
	app := testApp(t)
	path := writePlanFile(t, testPlanSchema())

	output, err := executeCmd(t, app, "publish", path, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, output, "Release 1.0")
	assert.Contains(t, output, "Pay by card")
	assert.Contains(t, output, "Nothing was sent")
}

func TestPublishCmd_MissingFile(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "publish", filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestPublishCmd_NonInteractive(t *testing.T) {
	startFakeTracker(t)
	app := testApp(t)
	path := writePlanFile(t, testPlanSchema())

	output, err := executeCmd(t, app, "publish", path)
	require.NoError(t, err)

	// Line progress plus the final summary.
	assert.Contains(t, output, "Release 1.0")
	assert.Contains(t, output, "Pay by card")
	assert.Contains(t, output, "Published 4 of 4 items.")
}

func TestPublishCmd_NoRemoteContext(t *testing.T) {
	app := testApp(t)
	path := writePlanFile(t, testPlanSchema())

	_, err := executeCmd(t, app, "publish", path)
	assert.Error(t, err)
}

// --- history command ---

func TestHistoryCmd_Empty(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, output, "No publish runs recorded yet")
}

func TestHistoryCmd_AfterPublish(t *testing.T) {
	startFakeTracker(t)
	app := testApp(t)
	path := writePlanFile(t, testPlanSchema())

	_, err := executeCmd(t, app, "publish", path)
	require.NoError(t, err)

	output, err := executeCmd(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, output, "Release 1.0")
	assert.Contains(t, output, "4/4")
}

func TestHistoryCmd_Unknown(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "history", "no-such-id")
	assert.Error(t, err)
}

// --- ask command ---

func TestAskCmd_DeterministicFallback(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "ask", "how", "do", "I", "publish", "a", "plan?")
	require.NoError(t, err)
	assert.Contains(t, output, "publish")
	assert.Contains(t, output, "planpush publish plan.json")
}

func TestAskCmd_UnknownTopic_ListsCommands(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "ask", "zzz", "qqq")
	require.NoError(t, err)
	assert.Contains(t, output, "Available commands")
}

// --- draft command ---

func TestDraftCmd_LLMDisabled(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "draft", "regression plan for checkout")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PLANPUSH_LLM_ENABLED")
}

// --- root command ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "planpush")
}
