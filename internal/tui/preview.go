package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/forgo/imgstash/internal/collection"
	"github.com/forgo/imgstash/internal/core"
	"github.com/forgo/imgstash/internal/plan"

	"github.com/Digital-Shane/treeview"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Cached base styles (applied with dynamic Width each render) to avoid
// re-allocating identical style pipelines on every View() call.
var (
	headerStyleBase = lipgloss.NewStyle().
			Bold(true).
			Background(colorPrimary).
			Foreground(colorBackground).
			Align(lipgloss.Center)

	statusStyleBase = lipgloss.NewStyle().
			Background(colorSecondary).
			Foreground(colorBackground).
			Padding(0, 1)
)

// PreviewModel wraps the underlying treeview TUI model to add plan review
// functionality: real-time statistics, per-entry conflict resolution and
// inline filename editing. The flat plan owned by the model is the single
// source of truth; tree node metadata is a projection refreshed after every
// edit.
type PreviewModel struct {
	*treeview.TuiTreeModel[treeview.FileInfo]
	downloads []plan.Download
	settings  collection.Settings

	width  int
	height int

	// Layout metrics
	treeWidth   int
	treeHeight  int
	statsWidth  int
	statsHeight int

	// Inline filename editing
	editing   bool
	editIndex int
	editor    textinput.Model

	confirmed bool

	// Stat tracking
	statsCache planStats
	statsDirty bool
}

// planStats extends the engine aggregate with layout-only counts.
type planStats struct {
	plan.Stats
	directories int
}

// NewPreviewModel returns an initialized PreviewModel for the given
// conflict-annotated plan, with default dimensions (adjusted on the first
// WindowSize message).
func NewPreviewModel(downloads []plan.Download, settings collection.Settings) *PreviewModel {
	editor := textinput.New()
	editor.CharLimit = 255
	editor.Prompt = "rename: "

	m := &PreviewModel{
		downloads:  downloads,
		settings:   settings,
		width:      80,
		height:     24,
		editor:     editor,
		statsDirty: true,
	}
	m.CalculateLayout()
	m.TuiTreeModel = m.createSizedTuiModel(buildPlanTree(downloads))
	return m
}

// buildPlanTree projects a flat plan into treeview nodes: one root node per
// directory in lexicographic order, one child per planned file in plan
// order.
func buildPlanTree(downloads []plan.Download) *treeview.Tree[treeview.FileInfo] {
	t := plan.BuildTree(downloads)
	roots := make([]*treeview.Node[treeview.FileInfo], 0, len(t))
	for _, dir := range plan.SortedDirectories(t) {
		dirNode := treeview.NewNode(dir, dir, treeview.FileInfo{
			FileInfo: core.NewDirInfo(dir),
			Path:     dir,
		})
		for _, e := range t[dir] {
			child := treeview.NewNode(e.URL, e.Filename, treeview.FileInfo{
				FileInfo: core.NewFileInfo(e.Filename),
				Path:     dir + "/" + e.Filename,
			})
			dm := core.EnsureMeta(child)
			dm.PlanIndex = e.PlanIndex
			dm.Filename = e.Filename
			dm.URL = e.URL
			dm.HasConflict = e.HasConflict
			dm.WillRename = e.WillRename
			dirNode.AddChild(child)
		}
		roots = append(roots, dirNode)
	}
	return treeview.NewTree(roots,
		treeview.WithExpandAll[treeview.FileInfo](),
		treeview.WithProvider(CreatePlanProvider()),
	)
}

// Confirmed reports whether the user accepted the plan.
func (m *PreviewModel) Confirmed() bool { return m.confirmed }

// Plan returns the plan as currently edited.
func (m *PreviewModel) Plan() []plan.Download { return m.downloads }

// CalculateLayout recomputes panel dimensions from current window size.
func (m *PreviewModel) CalculateLayout() {
	// Tree pane takes 60% of the width
	tw := m.width * 6 / 10
	// Header, status and one spacing line
	th := m.height - 3
	if th < 5 {
		th = 5
	}
	m.treeWidth = tw
	m.treeHeight = th
	m.statsWidth = m.width - tw
	// Subtract the rounded border of the stats panel.
	m.statsHeight = th - 2
	if m.statsHeight < 1 {
		m.statsHeight = 1
	}
}

// createSizedTuiModel builds a tree model sized to current dimensions and
// disables treeview features (search/reset) not needed for this application.
func (m *PreviewModel) createSizedTuiModel(tree *treeview.Tree[treeview.FileInfo]) *treeview.TuiTreeModel[treeview.FileInfo] {
	keyMap := treeview.DefaultKeyMap()
	keyMap.SearchStart = []string{} // Disable search
	keyMap.Reset = []string{}       // Disable ctrl+r reset

	return treeview.NewTuiTreeModel(tree,
		treeview.WithTuiWidth[treeview.FileInfo](m.treeWidth),
		treeview.WithTuiHeight[treeview.FileInfo](m.treeHeight),
		treeview.WithTuiAllowResize[treeview.FileInfo](true),
		treeview.WithTuiDisableNavBar[treeview.FileInfo](true),
		treeview.WithTuiKeyMap[treeview.FileInfo](keyMap),
	)
}

// Init initializes the embedded tree model and requests an initial window size.
func (m *PreviewModel) Init() tea.Cmd {
	return tea.Batch(
		m.TuiTreeModel.Init(),
		tea.WindowSize(),
	)
}

// Update handles Bubble Tea messages (resize, key events, edit flow).
func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.CalculateLayout()
		internalMsg := tea.WindowSizeMsg{Width: m.treeWidth, Height: m.treeHeight}
		updated, cmd := m.TuiTreeModel.Update(internalMsg)
		if tm, ok := updated.(*treeview.TuiTreeModel[treeview.FileInfo]); ok {
			m.TuiTreeModel = tm
		}
		return m, cmd

	case tea.KeyMsg:
		// While editing, every key belongs to the text input.
		if m.editing {
			switch msg.String() {
			case "enter":
				m.commitEdit()
				return m, nil
			case "esc":
				m.editing = false
				return m, nil
			}
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "e":
			m.beginEdit()
			return m, nil
		case "o":
			m.toggleResolution()
			return m, nil
		case "d":
			m.confirmed = true
			return m, tea.Quit
		case "pgup":
			pageSize := m.treeHeight
			if pageSize <= 0 {
				pageSize = 10
			}
			m.TuiTreeModel.Tree.Move(context.Background(), -pageSize)
			return m, nil
		case "pgdown":
			pageSize := m.treeHeight
			if pageSize <= 0 {
				pageSize = 10
			}
			m.TuiTreeModel.Tree.Move(context.Background(), pageSize)
			return m, nil
		}

	case tea.MouseMsg:
		switch msg.Type {
		case tea.MouseWheelUp:
			m.TuiTreeModel.Tree.Move(context.Background(), -1)
			return m, nil
		case tea.MouseWheelDown:
			m.TuiTreeModel.Tree.Move(context.Background(), 1)
			return m, nil
		}
	}

	// Pass through to embedded tree model for other messages
	updatedModel, cmd := m.TuiTreeModel.Update(msg)
	if tm, ok := updatedModel.(*treeview.TuiTreeModel[treeview.FileInfo]); ok {
		m.TuiTreeModel = tm
	}
	return m, cmd
}

// beginEdit opens the inline rename input for the focused file node.
func (m *PreviewModel) beginEdit() {
	dm := core.GetMeta(m.Tree.GetFocusedNode())
	if dm == nil {
		return
	}
	m.editing = true
	m.editIndex = dm.PlanIndex
	m.editor.SetValue(dm.Filename)
	m.editor.CursorEnd()
	m.editor.Focus()
}

// commitEdit writes the edited name back to the plan verbatim and re-runs
// conflict detection. The edited value deliberately skips templating and
// uniquification; a collision it introduces is surfaced as a conflict, not
// silently rewritten.
func (m *PreviewModel) commitEdit() {
	m.editing = false
	value := m.editor.Value()
	if value == "" || m.editIndex < 0 || m.editIndex >= len(m.downloads) {
		return
	}
	m.downloads[m.editIndex].Filename = value
	m.refresh()
}

// toggleResolution flips rename/overwrite on the focused conflicted entry.
func (m *PreviewModel) toggleResolution() {
	dm := core.GetMeta(m.Tree.GetFocusedNode())
	if dm == nil || !dm.HasConflict {
		return
	}
	m.downloads[dm.PlanIndex].WillRename = !m.downloads[dm.PlanIndex].WillRename
	m.refresh()
}

// refresh re-runs conflict detection over the whole plan and projects the
// result back onto the tree metadata. The plan builder is intentionally not
// re-run: re-uniquifying here could rewrite a name the user just typed.
func (m *PreviewModel) refresh() {
	m.downloads = plan.DetectConflicts(m.downloads, m.settings.AutoRename)
	for ni := range m.Tree.All(context.Background()) {
		dm := core.GetMeta(ni.Node)
		if dm == nil {
			continue
		}
		d := m.downloads[dm.PlanIndex]
		dm.Filename = d.Filename
		dm.HasConflict = d.HasConflict
		dm.WillRename = d.WillRename
	}
	m.statsDirty = true
}

// View returns the full TUI string (header, tree+stats layout, status bar).
func (m *PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteByte('\n')

	b.WriteString(m.renderTwoPanelLayout())
	b.WriteByte('\n')

	b.WriteString(m.renderStatusBar())
	return b.String()
}

// renderHeader creates the single-line header bar with the export root.
func (m *PreviewModel) renderHeader() string {
	style := headerStyleBase.Width(m.width)

	root := m.settings.DownloadDirectory
	if root == "" {
		root = "(root)"
	}
	return style.Render(fmt.Sprintf("🖼️ Download Preview - %s", root))
}

// renderStatusBar renders a single line of key hints, or the rename input
// while an inline edit is active.
func (m *PreviewModel) renderStatusBar() string {
	style := statusStyleBase.Width(m.width)

	if m.editing {
		return style.Render(m.editor.View() + "  (enter: apply, esc: cancel)")
	}
	statusText := "↑↓: Navigate  PgUp/PgDn: Page  ←→: Expand/Collapse  │  e: Rename  o: Rename/Overwrite  │  d: Confirm  esc: Quit"
	return style.Render(statusText)
}

// renderTwoPanelLayout joins the tree view and statistics panel horizontally.
func (m *PreviewModel) renderTwoPanelLayout() string {
	statsPanel := m.renderStatsPanel()
	treeView := m.TuiTreeModel.View()

	return lipgloss.JoinHorizontal(lipgloss.Top, treeView, statsPanel)
}

// renderStatsPanel builds and formats the statistics panel content.
func (m *PreviewModel) renderStatsPanel() string {
	style := lipgloss.NewStyle().
		Width(m.statsWidth - 6).
		Height(m.statsHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1)

	stats := m.calculateStats()
	var b strings.Builder
	b.Grow(512)

	b.WriteString("📊 Statistics\n\n")
	b.WriteString("Plan:\n")
	fmt.Fprintf(&b, "  📁 Folders:     %d\n", stats.directories)
	fmt.Fprintf(&b, "  🖼️ Images:      %d\n", stats.Total)

	b.WriteString("\nConflicts:\n")
	fmt.Fprintf(&b, "  ⚠️ Total:       %d\n", stats.Conflicts)
	fmt.Fprintf(&b, "  ✏️ Auto-rename: %d\n", stats.Conflicts-stats.WillOverwrite)
	fmt.Fprintf(&b, "  ❌ Overwrite:   %d\n", stats.WillOverwrite)

	if stats.Total > 0 {
		percentClean := ((stats.Total - stats.Conflicts) * 100) / stats.Total
		fmt.Fprintf(&b, "\nConflict-free: %d%%", percentClean)
	}

	return style.Render(b.String())
}

// calculateStats aggregates the current plan, caching the result until the
// next edit marks it dirty.
func (m *PreviewModel) calculateStats() planStats {
	if !m.statsDirty {
		return m.statsCache
	}
	t := plan.BuildTree(m.downloads)
	m.statsCache = planStats{
		Stats:       plan.Aggregate(t),
		directories: len(t),
	}
	m.statsDirty = false
	return m.statsCache
}
