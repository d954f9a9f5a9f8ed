package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/forgo/imgstash/internal/collection"
	"github.com/forgo/imgstash/internal/plan"
	"github.com/forgo/imgstash/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

// CommandConfig describes how to assemble a download plan for a given
// subcommand. Fields:
//   - filter: optional narrowing of the collection to the subcommand's scope
//     (single group, ungrouped only) before planning.
//   - CollectionPath / SettingsPath: input snapshot locations.
//   - SelectPath: optional file of URLs, one per line, restricting the plan
//     to a selection.
//   - OutputPath: manifest destination; empty writes to stdout.
//   - InstantMode: emit the manifest immediately without interactive preview.
type CommandConfig struct {
	filter func(collection.Collection) (collection.Collection, error)

	CollectionPath string
	SettingsPath   string
	SelectPath     string
	OutputPath     string
	InstantMode    bool
}

// RunCommand loads the collection and settings, builds and annotates the
// plan, then either previews it interactively or emits the manifest
// directly.
func RunCommand(cfg CommandConfig) error {
	col, err := collection.Load(cfg.CollectionPath)
	if err != nil {
		return err
	}
	settings, err := collection.LoadSettings(cfg.SettingsPath)
	if err != nil {
		return err
	}
	if cfg.filter != nil {
		if col, err = cfg.filter(col); err != nil {
			return err
		}
	}

	scope := plan.ScopeAll
	var selected map[string]struct{}
	if cfg.SelectPath != "" {
		if selected, err = loadSelection(cfg.SelectPath); err != nil {
			return err
		}
		scope = plan.ScopeSelected
	}

	downloads := plan.Build(col, settings, scope, selected, nil, time.Now())
	downloads = plan.DetectConflicts(downloads, settings.AutoRename)
	if len(downloads) == 0 {
		return fmt.Errorf("nothing to download in the current scope")
	}

	if cfg.InstantMode {
		if err := writeManifest(cfg.OutputPath, downloads); err != nil {
			return err
		}
		t := plan.BuildTree(downloads)
		s := plan.Aggregate(t)
		fmt.Fprintf(os.Stderr, "planned %d files into %d folders (%d conflicts, %d overwrites)\n",
			s.Total, len(t), s.Conflicts, s.WillOverwrite)
		return nil
	}

	model := tui.NewPreviewModel(downloads, settings)
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if pm, ok := final.(*tui.PreviewModel); ok && pm.Confirmed() {
		return writeManifest(cfg.OutputPath, pm.Plan())
	}
	return nil
}

// loadSelection reads one URL per line; blank lines and #-comments are
// skipped.
func loadSelection(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read selection %s: %w", path, err)
	}
	defer f.Close()

	selected := map[string]struct{}{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		selected[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read selection %s: %w", path, err)
	}
	return selected, nil
}
