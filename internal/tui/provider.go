package tui

import (
	"fmt"

	"github.com/forgo/imgstash/internal/core"

	"github.com/Digital-Shane/treeview"
	"github.com/charmbracelet/lipgloss"
)

// Color scheme used throughout the download preview TUI.
var (
	// Core colors
	colorPrimary    = lipgloss.Color("#2d5f8a") // Dark blue - main text, headers
	colorSecondary  = lipgloss.Color("#5a86ac") // Medium blue - directories, status bars
	colorAccent     = lipgloss.Color("#79a8c2") // Light blue - borders, highlights
	colorBackground = lipgloss.Color("#f8f8f8") // Light background
	colorMuted      = lipgloss.Color("#9ba8c0") // Gray - files, secondary text

	// State colors
	colorWarn  = lipgloss.Color("#e0a458") // Conflicts resolved by auto-rename
	colorError = lipgloss.Color("#f04c56") // Conflicts resolved by overwrite
)

// ---- predicate helpers ----

// metaRule adapts a metadata predicate to a node predicate. Directory nodes
// carry no metadata and therefore never match.
func metaRule(cond func(*core.DownloadMeta) bool) func(*treeview.Node[treeview.FileInfo]) bool {
	return func(n *treeview.Node[treeview.FileInfo]) bool {
		if dm := core.GetMeta(n); dm != nil {
			return cond(dm)
		}
		return false
	}
}

// isDirectory matches the synthetic folder nodes of the plan tree.
func isDirectory() func(*treeview.Node[treeview.FileInfo]) bool {
	return func(n *treeview.Node[treeview.FileInfo]) bool {
		return n.Data().IsDir()
	}
}

// conflictRename matches conflicted entries that will auto-rename on write.
func conflictRename() func(*treeview.Node[treeview.FileInfo]) bool {
	return metaRule(func(dm *core.DownloadMeta) bool { return dm.HasConflict && dm.WillRename })
}

// conflictOverwrite matches conflicted entries that will overwrite on write.
func conflictOverwrite() func(*treeview.Node[treeview.FileInfo]) bool {
	return metaRule(func(dm *core.DownloadMeta) bool { return dm.HasConflict && !dm.WillRename })
}

// CreatePlanProvider constructs the [treeview.DefaultNodeProvider] used by
// the preview and instant execution paths. It wires together:
//   - icon rules (conflict state precedes the plain file icon)
//   - style rules (normal & focused variants) with matching precedence
//   - the custom [PlanFormatter] for per-entry labeling.
func CreatePlanProvider() *treeview.DefaultNodeProvider[treeview.FileInfo] {
	// Icon rules (order matters: conflict state first)
	overwriteIconRule := treeview.WithIconRule(conflictOverwrite(), "❌")
	renameIconRule := treeview.WithIconRule(conflictRename(), "⚠️")
	directoryIconRule := treeview.WithIconRule(isDirectory(), "📁")
	defaultIconRule := treeview.WithDefaultIcon[treeview.FileInfo]("🖼️")

	// Style rules (most specific first)
	overwriteStyleRule := treeview.WithStyleRule(
		conflictOverwrite(),
		lipgloss.NewStyle().Foreground(colorError),
		lipgloss.NewStyle().Foreground(colorError).Background(colorBackground),
	)
	renameStyleRule := treeview.WithStyleRule(
		conflictRename(),
		lipgloss.NewStyle().Foreground(colorWarn),
		lipgloss.NewStyle().Foreground(colorWarn).Background(colorBackground),
	)
	directoryStyleRule := treeview.WithStyleRule(
		isDirectory(),
		lipgloss.NewStyle().Foreground(colorSecondary).Bold(true),
		lipgloss.NewStyle().Foreground(colorBackground).Bold(true).Background(colorPrimary),
	)
	defaultStyleRule := treeview.WithStyleRule(
		func(*treeview.Node[treeview.FileInfo]) bool { return true },
		lipgloss.NewStyle().Foreground(colorMuted),
		lipgloss.NewStyle().Foreground(colorBackground).Background(colorPrimary),
	)

	formatterRule := treeview.WithFormatter(PlanFormatter)

	return treeview.NewDefaultNodeProvider(
		// Icon rules (order matters - most specific first)
		overwriteIconRule, renameIconRule, directoryIconRule, defaultIconRule,
		// Style rules (order matters - most specific first)
		overwriteStyleRule, renameStyleRule, directoryStyleRule, defaultStyleRule,
		// Formatter
		formatterRule,
	)
}

// PlanFormatter produces the display label for a node in the plan preview.
//
//   - Directory nodes (no metadata) show their path plus a file count.
//   - Conflict-free entries show the planned filename.
//   - Conflicted entries additionally state how the collision resolves.
func PlanFormatter(node *treeview.Node[treeview.FileInfo]) (string, bool) {
	dm := core.GetMeta(node)
	if dm == nil {
		n := len(node.Children())
		label := "files"
		if n == 1 {
			label = "file"
		}
		return fmt.Sprintf("%s (%d %s)", node.Name(), n, label), true
	}
	if dm.HasConflict {
		if dm.WillRename {
			return dm.Filename + "  [conflict: auto-rename]", true
		}
		return dm.Filename + "  [conflict: overwrite]", true
	}
	return dm.Filename, true
}
