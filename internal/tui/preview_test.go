package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/forgo/imgstash/internal/collection"
	"github.com/forgo/imgstash/internal/core"
	"github.com/forgo/imgstash/internal/plan"
)

func cleanPlan() []plan.Download {
	return plan.DetectConflicts([]plan.Download{
		{URL: "https://x.com/a.jpg", Directory: "Trip", Filename: "a.jpg"},
		{URL: "https://x.com/b.jpg", Directory: "Trip", Filename: "b.jpg"},
		{URL: "https://x.com/c.jpg", Directory: "Work", Filename: "c.jpg"},
	}, true)
}

func conflictedPlan() []plan.Download {
	return plan.DetectConflicts([]plan.Download{
		{URL: "https://x.com/a.jpg", Directory: "Trip", Filename: "same.jpg"},
		{URL: "https://x.com/b.jpg", Directory: "Trip", Filename: "same.jpg"},
	}, true)
}

func TestNewPreviewModelLayoutDefaults(t *testing.T) {
	t.Parallel()
	m := NewPreviewModel(cleanPlan(), collection.DefaultSettings())

	if m.width != 80 || m.height != 24 {
		t.Errorf("NewPreviewModel() size = %dx%d, want 80x24", m.width, m.height)
	}
	if m.treeWidth != 48 {
		t.Errorf("NewPreviewModel() treeWidth = %d, want 48", m.treeWidth)
	}
	if m.treeHeight != 21 {
		t.Errorf("NewPreviewModel() treeHeight = %d, want 21", m.treeHeight)
	}
	if m.statsWidth != 32 {
		t.Errorf("NewPreviewModel() statsWidth = %d, want 32", m.statsWidth)
	}
	if m.statsHeight != 19 {
		t.Errorf("NewPreviewModel() statsHeight = %d, want 19", m.statsHeight)
	}
	if m.TuiTreeModel == nil {
		t.Errorf("NewPreviewModel() TuiTreeModel = nil, want embedded tree model")
	}
	if m.Confirmed() {
		t.Errorf("NewPreviewModel() Confirmed() = true, want false before any input")
	}
}

func TestCalculateLayoutClampsSmallWindow(t *testing.T) {
	t.Parallel()
	m := NewPreviewModel(cleanPlan(), collection.DefaultSettings())
	m.width = 20
	m.height = 6
	m.CalculateLayout()

	if m.treeHeight != 5 {
		t.Errorf("CalculateLayout() treeHeight = %d, want clamp to 5", m.treeHeight)
	}
	if m.statsHeight != 3 {
		t.Errorf("CalculateLayout() statsHeight = %d, want 3", m.statsHeight)
	}
}

func TestUpdateWindowResize(t *testing.T) {
	t.Parallel()
	m := NewPreviewModel(cleanPlan(), collection.DefaultSettings())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	pm, ok := updated.(*PreviewModel)
	if !ok {
		t.Fatalf("Update(WindowSizeMsg) returned %T, want *PreviewModel", updated)
	}
	if pm.width != 120 || pm.height != 40 {
		t.Errorf("Update(WindowSizeMsg) size = %dx%d, want 120x40", pm.width, pm.height)
	}
	if pm.treeWidth != 72 {
		t.Errorf("Update(WindowSizeMsg) treeWidth = %d, want 72", pm.treeWidth)
	}
}

func TestConfirmKeyQuits(t *testing.T) {
	t.Parallel()
	m := NewPreviewModel(cleanPlan(), collection.DefaultSettings())
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})

	pm, ok := updated.(*PreviewModel)
	if !ok {
		t.Fatalf("Update(d) returned %T, want *PreviewModel", updated)
	}
	if !pm.Confirmed() {
		t.Errorf("Update(d) Confirmed() = false, want true")
	}
	if cmd == nil {
		t.Fatalf("Update(d) cmd = nil, want tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("Update(d) cmd() = %T, want tea.QuitMsg", cmd())
	}
}

func TestEditKeysWhileEditing(t *testing.T) {
	t.Parallel()
	m := NewPreviewModel(conflictedPlan(), collection.DefaultSettings())
	m.editing = true
	m.editIndex = 0
	m.editor.SetValue("same.jpg")

	// Keys that would otherwise confirm or toggle go to the text input.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	pm := updated.(*PreviewModel)
	if pm.Confirmed() {
		t.Errorf("Update(d while editing) Confirmed() = true, want input to capture the key")
	}

	updated, _ = pm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	pm = updated.(*PreviewModel)
	if pm.editing {
		t.Errorf("Update(esc while editing) editing = true, want edit cancelled")
	}
}

func TestCommitEditResolvesConflict(t *testing.T) {
	t.Parallel()
	m := NewPreviewModel(conflictedPlan(), collection.DefaultSettings())
	if !m.downloads[0].HasConflict || !m.downloads[1].HasConflict {
		t.Fatalf("conflictedPlan() entries not flagged: %+v", m.downloads)
	}

	m.editing = true
	m.editIndex = 1
	m.editor.SetValue("other.jpg")
	m.commitEdit()

	if m.editing {
		t.Errorf("commitEdit() editing = true, want false")
	}
	if got := m.downloads[1].Filename; got != "other.jpg" {
		t.Errorf("commitEdit() filename = %q, want %q (verbatim)", got, "other.jpg")
	}
	if m.downloads[0].HasConflict || m.downloads[1].HasConflict {
		t.Errorf("commitEdit() conflicts not cleared: %+v", m.downloads)
	}
}

func TestCommitEditIntroducesConflict(t *testing.T) {
	t.Parallel()
	m := NewPreviewModel(cleanPlan(), collection.DefaultSettings())

	m.editing = true
	m.editIndex = 1
	m.editor.SetValue("a.jpg")
	m.commitEdit()

	if !m.downloads[0].HasConflict || !m.downloads[1].HasConflict {
		t.Errorf("commitEdit() did not flag the collision it created: %+v", m.downloads)
	}
	if m.downloads[2].HasConflict {
		t.Errorf("commitEdit() flagged unrelated entry in another directory: %+v", m.downloads[2])
	}
}

func TestCommitEditEmptyValueIgnored(t *testing.T) {
	t.Parallel()
	m := NewPreviewModel(cleanPlan(), collection.DefaultSettings())
	want := m.downloads[0].Filename

	m.editing = true
	m.editIndex = 0
	m.editor.SetValue("")
	m.commitEdit()

	if got := m.downloads[0].Filename; got != want {
		t.Errorf("commitEdit(empty) filename = %q, want unchanged %q", got, want)
	}
}

func TestRefreshProjectsOntoTree(t *testing.T) {
	t.Parallel()
	m := NewPreviewModel(conflictedPlan(), collection.DefaultSettings())
	m.downloads[0].Filename = "renamed.jpg"
	m.refresh()

	found := false
	for ni := range m.Tree.All(context.Background()) {
		dm := core.GetMeta(ni.Node)
		if dm == nil || dm.PlanIndex != 0 {
			continue
		}
		found = true
		if dm.Filename != "renamed.jpg" {
			t.Errorf("refresh() node filename = %q, want %q", dm.Filename, "renamed.jpg")
		}
		if dm.HasConflict {
			t.Errorf("refresh() node still flagged after rename resolved the collision")
		}
	}
	if !found {
		t.Errorf("refresh() no node with PlanIndex 0 found in tree")
	}
}

func TestBuildPlanTreeStructure(t *testing.T) {
	t.Parallel()
	downloads := cleanPlan()
	tree := buildPlanTree(downloads)

	roots := tree.Nodes()
	var names []string
	for _, r := range roots {
		names = append(names, r.Name())
	}
	if diff := cmp.Diff([]string{"Trip", "Work"}, names); diff != "" {
		t.Errorf("buildPlanTree roots mismatch (-want +got):\n%s", diff)
	}

	trip := roots[0]
	if got := len(trip.Children()); got != 2 {
		t.Fatalf("buildPlanTree Trip children = %d, want 2", got)
	}
	dm := core.GetMeta(trip.Children()[0])
	if dm == nil {
		t.Fatalf("buildPlanTree file node missing metadata")
	}
	if dm.Filename != "a.jpg" || dm.URL != "https://x.com/a.jpg" || dm.PlanIndex != 0 {
		t.Errorf("buildPlanTree meta = %+v, want a.jpg / https://x.com/a.jpg / index 0", dm)
	}
}

func TestCalculateStats(t *testing.T) {
	t.Parallel()
	m := NewPreviewModel(conflictedPlan(), collection.DefaultSettings())
	stats := m.calculateStats()

	if stats.Total != 2 {
		t.Errorf("calculateStats() Total = %d, want 2", stats.Total)
	}
	if stats.Conflicts != 2 {
		t.Errorf("calculateStats() Conflicts = %d, want 2", stats.Conflicts)
	}
	if stats.directories != 1 {
		t.Errorf("calculateStats() directories = %d, want 1", stats.directories)
	}

	// Cached until the next edit marks it dirty.
	if m.statsDirty {
		t.Errorf("calculateStats() statsDirty = true, want cached")
	}
	m.refresh()
	if !m.statsDirty {
		t.Errorf("refresh() statsDirty = false, want recalculation scheduled")
	}
}

func TestViewContainsSections(t *testing.T) {
	t.Parallel()
	m := NewPreviewModel(cleanPlan(), collection.Settings{
		DownloadDirectory:  "Export",
		UngroupedDirectory: "Ungrouped",
		FilenameTemplate:   "{name}",
		AutoRename:         true,
	})
	view := m.View()

	for _, want := range []string{
		"Download Preview - Export",
		"📊 Statistics",
		"e: Rename",
		"d: Confirm",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestViewHeaderRootFallback(t *testing.T) {
	t.Parallel()
	m := NewPreviewModel(cleanPlan(), collection.DefaultSettings())
	if got := m.renderHeader(); !strings.Contains(got, "(root)") {
		t.Errorf("renderHeader() = %q, want (root) fallback for empty download directory", got)
	}
}

func TestStatusBarShowsEditor(t *testing.T) {
	t.Parallel()
	m := NewPreviewModel(cleanPlan(), collection.DefaultSettings())
	m.editing = true
	m.editor.SetValue("new-name.jpg")
	m.editor.Focus()

	if got := m.renderStatusBar(); !strings.Contains(got, "enter: apply") {
		t.Errorf("renderStatusBar() while editing = %q, want rename hint", got)
	}
}
