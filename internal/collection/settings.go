package collection

import (
	"encoding/json"
	"fmt"
	"os"
)

// Settings is the immutable per-planning-pass snapshot of the user's export
// preferences.
type Settings struct {
	// DownloadDirectory is the root all planned paths are joined under.
	// Empty means paths start at the group directory itself.
	DownloadDirectory string `json:"downloadDirectory"`

	// UngroupedDirectory receives images not assigned to any group.
	UngroupedDirectory string `json:"ungroupedDirectory"`

	// FilenameTemplate names auto-generated files. The default "{name}"
	// bypasses templating entirely.
	FilenameTemplate string `json:"filenameTemplate"`

	// AutoRename picks the default conflict resolution: true renames the
	// colliding file on write, false overwrites.
	AutoRename bool `json:"autoRename"`
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		UngroupedDirectory: "Ungrouped",
		FilenameTemplate:   "{name}",
		AutoRename:         true,
	}
}

// LoadSettings reads a settings file, layering it over DefaultSettings so
// absent fields keep their defaults. A missing file is not an error; a
// malformed one is.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

// Load reads a collection snapshot from path and validates that every image
// carries a URL (the identity key the whole engine relies on).
func Load(path string) (Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Collection{}, fmt.Errorf("read collection %s: %w", path, err)
	}
	var col Collection
	if err := json.Unmarshal(data, &col); err != nil {
		return Collection{}, fmt.Errorf("parse collection %s: %w", path, err)
	}
	for gi, g := range col.Groups {
		for ii, img := range g.Images {
			if img.URL == "" {
				return Collection{}, fmt.Errorf("collection %s: group %q image %d: missing url", path, g.Name, ii)
			}
		}
		if g.Name == "" && g.Directory == "" {
			return Collection{}, fmt.Errorf("collection %s: group %d: missing name", path, gi)
		}
	}
	for ii, img := range col.Ungrouped {
		if img.URL == "" {
			return Collection{}, fmt.Errorf("collection %s: ungrouped image %d: missing url", path, ii)
		}
	}
	return col, nil
}
