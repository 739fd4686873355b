package tui

import (
	"strings"
	"testing"

	"github.com/amsaleh/daytrack/internal/stats"
	"github.com/amsaleh/daytrack/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Root app
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	// Every view renders without panic
	views := []viewState{viewDashboard, viewJournal, viewReports, viewSettings}
	for _, v := range views {
		app.activeView = v
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	// Width 0 means not yet sized
	output := app.View()
	if output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
	if !strings.Contains(header, "daytrack") {
		t.Fatal("header missing app title")
	}
}

func TestAppRenderFooter(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	footer := app.renderFooter()
	if footer == "" {
		t.Fatal("footer should not be empty")
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	app.status = "test status"

	footer := app.renderFooter()
	if !strings.Contains(footer, "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppFooterShowsStreak(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	app.dashboard.profile.ConsecutiveDays = 5

	footer := app.renderFooter()
	if !strings.Contains(footer, "🔥 5") {
		t.Fatal("footer should show the streak flame")
	}
}

func TestAppExportPickerRender(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	app.exportPicking = true

	output := app.View()
	if !strings.Contains(output, "JSON backup") || !strings.Contains(output, "CSV ledger") {
		t.Fatal("export picker should list both formats")
	}
}

func TestAppRefreshIntervalDefault(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if got := app.refreshInterval().Minutes(); got != 30 {
		t.Fatalf("default refresh interval = %v min", got)
	}

	cfg, _ := s.Settings()
	cfg.AutoRefreshMinutes = 5
	if err := s.SaveSettings(cfg); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	if got := app.refreshInterval().Minutes(); got != 5 {
		t.Fatalf("configured refresh interval = %v min", got)
	}
}

// ============================================================
// Journal navigation
// ============================================================

func TestJournalShiftDate(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	j := app.journal
	j.date = "2024-01-15"
	j.cursor = 2

	j = j.shiftDate(-1)
	if j.date != "2024-01-14" {
		t.Fatalf("date = %q", j.date)
	}
	if j.cursor != 0 {
		t.Fatal("cursor should reset on navigation")
	}

	j = j.shiftDate(1)
	if j.date != "2024-01-15" {
		t.Fatalf("date = %q", j.date)
	}
}

func TestJournalShiftDateAcrossMonth(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	j := app.journal
	j.date = "2024-02-01"
	j = j.shiftDate(-1)
	if j.date != "2024-01-31" {
		t.Fatalf("date = %q", j.date)
	}
}

// ============================================================
// Reports filters
// ============================================================

func TestNextTimeFilterCycles(t *testing.T) {
	f := stats.FilterDay
	seen := map[stats.TimeFilter]bool{f: true}
	for i := 0; i < 3; i++ {
		f = nextTimeFilter(f)
		if seen[f] {
			t.Fatalf("filter %q repeated before the cycle closed", f)
		}
		seen[f] = true
	}
	if f = nextTimeFilter(f); f != stats.FilterDay {
		t.Fatalf("cycle did not wrap, got %q", f)
	}
}

func TestCategoryFiltersStartUnfiltered(t *testing.T) {
	if categoryFilters[0] != "" {
		t.Fatal("first category filter should be the all-categories sentinel")
	}
	if len(categoryFilters) != 4 {
		t.Fatalf("category filters = %d, want all + 3", len(categoryFilters))
	}
}

// ============================================================
// Forms
// ============================================================

func TestValidDuration(t *testing.T) {
	if err := validDuration("30"); err != nil {
		t.Fatalf("30 should be valid: %v", err)
	}
	if err := validDuration("0"); err == nil {
		t.Fatal("0 should be rejected")
	}
	if err := validDuration("-5"); err == nil {
		t.Fatal("negative should be rejected")
	}
	if err := validDuration("abc"); err == nil {
		t.Fatal("non-numeric should be rejected")
	}
}

func TestAddFormDefaultsFromCatalog(t *testing.T) {
	catalog := store.DefaultCatalog()
	f := newAddForm(catalog)

	if *f.activityID == "" {
		t.Fatal("add form should preselect the first definition")
	}
	def, ok := catalog.Find(*f.activityID)
	if !ok {
		t.Fatal("preselected activity not in catalog")
	}

	input, ok := f.addInput(catalog)
	if !ok {
		t.Fatal("addInput should succeed")
	}
	if input.ActivityID != def.ID || input.Category != def.Category {
		t.Fatalf("input = %+v", input)
	}
	if input.Duration != def.DefaultDuration {
		t.Fatalf("duration = %d, want catalog default %d", input.Duration, def.DefaultDuration)
	}
	if input.Points != def.DefaultPoints {
		t.Fatalf("points = %d", input.Points)
	}
}

func TestEditFormPatch(t *testing.T) {
	rec := store.ActivityRecord{
		ID:          "activity_1",
		ActivityID:  "eng_reading",
		Duration:    60,
		CustomTitle: "Novel",
		Notes:       "chapter 3",
	}
	f := newEditForm(rec)

	if f.editingID != "activity_1" {
		t.Fatalf("editingID = %q", f.editingID)
	}

	*f.duration = "90"
	patch, ok := f.patch()
	if !ok {
		t.Fatal("patch should succeed")
	}
	if patch.Duration == nil || *patch.Duration != 90 {
		t.Fatalf("patch duration = %v", patch.Duration)
	}
	if patch.CustomTitle == nil || *patch.CustomTitle != "Novel" {
		t.Fatalf("patch title = %v", patch.CustomTitle)
	}

	*f.duration = "x"
	if _, ok := f.patch(); ok {
		t.Fatal("unparsable duration should fail the patch")
	}
}

// ============================================================
// Helpers
// ============================================================

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		min  int
		want string
	}{
		{0, "0m"},
		{25, "25m"},
		{60, "1h 00m"},
		{95, "1h 35m"},
		{125, "2h 05m"},
	}
	for _, c := range cases {
		if got := formatMinutes(c.min); got != c.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", c.min, got, c.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate("2024-01-15"); got != "Mon, Jan 15 2024" {
		t.Fatalf("formatDate = %q", got)
	}
	// Unparsable dates pass through untouched.
	if got := formatDate("garbage"); got != "garbage" {
		t.Fatalf("formatDate fallback = %q", got)
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(0, 10); got != strings.Repeat("░", 10) {
		t.Fatalf("empty bar = %q", got)
	}
	if got := progressBar(1, 10); got != strings.Repeat("█", 10) {
		t.Fatalf("full bar = %q", got)
	}
	if got := progressBar(0.5, 10); got != strings.Repeat("█", 5)+strings.Repeat("░", 5) {
		t.Fatalf("half bar = %q", got)
	}
	// Ratios clamp instead of overflowing the width
	if got := progressBar(2.0, 4); got != strings.Repeat("█", 4) {
		t.Fatalf("clamped bar = %q", got)
	}
	if got := progressBar(-1, 4); got != strings.Repeat("░", 4) {
		t.Fatalf("negative bar = %q", got)
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test — just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"subtitle", func() string { return subtitleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"streak", func() string { return streakStyle.Render("test") }},
		{"goalDone", func() string { return goalDoneStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
	}
	for _, s := range styles {
		if out := s.fn(); out == "" {
			t.Errorf("style %s rendered empty", s.name)
		}
	}
}

func TestCategoryColorsCoverCatalog(t *testing.T) {
	for _, c := range store.Categories {
		if _, ok := categoryColors[string(c)]; !ok {
			t.Errorf("no color for category %q", c)
		}
	}
}
