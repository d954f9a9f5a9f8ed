package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/forgo/imgstash/internal/collection"
	"github.com/forgo/imgstash/internal/plan"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("prep %s: %v", name, err)
	}
	return path
}

func TestWriteManifestRoundTrip(t *testing.T) {
	t.Parallel()
	downloads := []plan.Download{
		{URL: "https://x.com/a.jpg", Directory: "Trip", Filename: "a.jpg", GroupID: "g1", WillRename: true},
		{URL: "https://x.com/b.jpg", Directory: "Trip", Filename: "b.jpg", HasConflict: true},
	}
	var buf bytes.Buffer
	if err := WriteManifest(&buf, downloads); err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}

	var got []plan.Download
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal(manifest) error = %v", err)
	}
	if diff := cmp.Diff(downloads, got); diff != "" {
		t.Errorf("manifest round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupCommandFilter(t *testing.T) {
	t.Parallel()
	col := collection.Collection{
		Groups: []collection.Group{
			{ID: "g1", Name: "Trip", Images: []collection.Image{{URL: "https://x.com/a.jpg"}}},
			{ID: "g2", Name: "Work", Images: []collection.Image{{URL: "https://x.com/b.jpg"}}},
		},
		Ungrouped: []collection.Image{{URL: "https://x.com/c.jpg"}},
	}

	t.Run("MatchByName", func(t *testing.T) {
		got, err := GroupCommand("Work").filter(col)
		if err != nil {
			t.Fatalf("filter(Work) error = %v", err)
		}
		if len(got.Groups) != 1 || got.Groups[0].ID != "g2" {
			t.Errorf("filter(Work) groups = %v, want just g2", got.Groups)
		}
		if len(got.Ungrouped) != 0 {
			t.Errorf("filter(Work) kept %d ungrouped images, want 0", len(got.Ungrouped))
		}
	})

	t.Run("MatchByID", func(t *testing.T) {
		got, err := GroupCommand("g1").filter(col)
		if err != nil {
			t.Fatalf("filter(g1) error = %v", err)
		}
		if len(got.Groups) != 1 || got.Groups[0].Name != "Trip" {
			t.Errorf("filter(g1) groups = %v, want just Trip", got.Groups)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		if _, err := GroupCommand("Nope").filter(col); err == nil {
			t.Errorf("filter(Nope) error = nil, want no-group error")
		}
	})
}

func TestUngroupedCommandFilter(t *testing.T) {
	t.Parallel()
	col := collection.Collection{
		Groups:    []collection.Group{{ID: "g1", Name: "Trip", Images: []collection.Image{{URL: "https://x.com/a.jpg"}}}},
		Ungrouped: []collection.Image{{URL: "https://x.com/c.jpg"}},
	}
	got, err := UngroupedCommand.filter(col)
	if err != nil {
		t.Fatalf("filter() error = %v", err)
	}
	if got.Groups != nil {
		t.Errorf("filter() kept groups %v, want none", got.Groups)
	}
	if len(got.Ungrouped) != 1 {
		t.Errorf("filter() ungrouped = %d images, want 1", len(got.Ungrouped))
	}
}

func TestLoadSelection(t *testing.T) {
	t.Parallel()
	path := writeTestFile(t, t.TempDir(), "selection.txt",
		"https://x.com/a.jpg\n\n# keep this one out\nhttps://x.com/b.jpg\n   \n")
	got, err := loadSelection(path)
	if err != nil {
		t.Fatalf("loadSelection() error = %v", err)
	}
	want := map[string]struct{}{
		"https://x.com/a.jpg": {},
		"https://x.com/b.jpg": {},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loadSelection mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSelectionMissingFile(t *testing.T) {
	t.Parallel()
	if _, err := loadSelection(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Errorf("loadSelection(missing) error = nil, want error")
	}
}

func TestRunCommandInstantMode(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	colPath := writeTestFile(t, dir, "collection.json", `{
		"groups": [{"id": "g1", "name": "Trip", "images": [
			{"url": "https://x.com/a.jpg"},
			{"url": "https://x.com/other/a.jpg"}
		]}]
	}`)
	setPath := writeTestFile(t, dir, "settings.json", `{"downloadDirectory": "Export"}`)
	outPath := filepath.Join(dir, "manifest.json")

	err := RunCommand(CommandConfig{
		CollectionPath: colPath,
		SettingsPath:   setPath,
		OutputPath:     outPath,
		InstantMode:    true,
	})
	if err != nil {
		t.Fatalf("RunCommand() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var got []plan.Download
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	want := []plan.Download{
		{URL: "https://x.com/a.jpg", Directory: "Export/Trip", Filename: "a.jpg", GroupID: "g1", WillRename: true},
		{URL: "https://x.com/other/a.jpg", Directory: "Export/Trip", Filename: "a_1.jpg", GroupID: "g1", WillRename: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestRunCommandEmptyScope(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	colPath := writeTestFile(t, dir, "collection.json", `{"ungrouped": [{"url": "https://x.com/a.jpg"}]}`)
	selPath := writeTestFile(t, dir, "selection.txt", "https://x.com/never-collected.jpg\n")

	err := RunCommand(CommandConfig{
		CollectionPath: colPath,
		SettingsPath:   filepath.Join(dir, "settings.json"),
		SelectPath:     selPath,
		InstantMode:    true,
	})
	if err == nil {
		t.Errorf("RunCommand(empty scope) error = nil, want nothing-to-download error")
	}
}

func TestRunCommandBadCollection(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	err := RunCommand(CommandConfig{
		CollectionPath: filepath.Join(dir, "absent.json"),
		SettingsPath:   filepath.Join(dir, "settings.json"),
		InstantMode:    true,
	})
	if err == nil {
		t.Errorf("RunCommand(missing collection) error = nil, want error")
	}
}
