package plan

import (
	"time"

	"github.com/forgo/imgstash/internal/collection"
	"github.com/forgo/imgstash/internal/filename"
)

// Download is one planned file write: fetch URL, store it under
// Directory/Filename. Directory is a forward-slash-joined relative path.
// HasConflict and WillRename are owned by DetectConflicts and subsequent
// user edits; every other field is immutable once Build emits the entry.
type Download struct {
	URL         string `json:"url"`
	Directory   string `json:"directory"`
	Filename    string `json:"filename"`
	GroupID     string `json:"group,omitempty"`
	HasConflict bool   `json:"conflict"`
	WillRename  bool   `json:"autoRename"`
}

// Scope selects which collected images a planning pass covers.
type Scope int

const (
	ScopeAll      Scope = iota // every image in the collection
	ScopeSelected              // only URLs present in the selected set
)

// Build turns a collection snapshot into a flat download plan. It is pure
// and deterministic: images are visited in stored order (groups first, in
// order, then ungrouped), filenames are uniquified per directory as they are
// claimed, and now is the single timestamp all template tokens resolve
// against.
//
// selected is consulted only under ScopeSelected. liveEdits maps a URL to an
// in-progress, unsaved filename edit; such an entry uses the edited value
// verbatim, bypassing templating and uniquification, so re-planning while
// the user types never rewrites the text under their cursor.
func Build(col collection.Collection, settings collection.Settings, scope Scope, selected map[string]struct{}, liveEdits map[string]string, now time.Time) []Download {
	b := &builder{
		settings:  settings,
		scope:     scope,
		selected:  selected,
		liveEdits: liveEdits,
		now:       now,
		claimed:   map[string]filename.ClaimSet{},
	}

	for _, g := range col.Groups {
		sub := g.Directory
		if sub == "" {
			sub = g.Name
		}
		b.visit(g.Images, g.ID, g.Name, sub)
	}

	ungroupedDir := settings.UngroupedDirectory
	if ungroupedDir == "" {
		ungroupedDir = "Ungrouped"
	}
	b.visit(col.Ungrouped, "", ungroupedDir, ungroupedDir)

	return b.out
}

type builder struct {
	settings  collection.Settings
	scope     Scope
	selected  map[string]struct{}
	liveEdits map[string]string
	now       time.Time
	claimed   map[string]filename.ClaimSet
	out       []Download
}

func (b *builder) visit(images []collection.Image, groupID, groupLabel, subdir string) {
	dir := joinDir(b.settings.DownloadDirectory, subdir)
	for _, img := range images {
		if b.scope == ScopeSelected {
			if _, ok := b.selected[img.URL]; !ok {
				continue
			}
		}
		b.out = append(b.out, Download{
			URL:       img.URL,
			Directory: dir,
			Filename:  b.filenameFor(img, dir, groupLabel),
			GroupID:   groupID,
			// Placeholders until DetectConflicts runs.
			HasConflict: false,
			WillRename:  true,
		})
	}
}

// filenameFor computes the filename for one image, honoring the precedence
// chain: live unsaved edit, then genuinely custom filename, then the
// resolved name (templated when a non-default template is configured).
func (b *builder) filenameFor(img collection.Image, dir, groupLabel string) string {
	if live, ok := b.liveEdits[img.URL]; ok {
		return live
	}

	name, ext := filename.Resolve(img.URL)
	generated := name + ext

	if img.CustomFilename != "" && img.CustomFilename != generated {
		// User intent wins verbatim. The name is claimed but never
		// rewritten; collisions between two customs are surfaced by
		// DetectConflicts instead.
		b.claimSet(dir).Claim(img.CustomFilename)
		return img.CustomFilename
	}

	candidate := generated
	if t := b.settings.FilenameTemplate; t != "" && t != filename.DefaultTemplate {
		candidate = filename.ApplyTemplate(t, filename.TemplateContext{
			Name:      name,
			Extension: ext,
			Index:     len(b.out) + 1,
			Group:     groupLabel,
		}, b.now)
	}
	return filename.Uniquify(candidate, b.claimSet(dir))
}

func (b *builder) claimSet(dir string) filename.ClaimSet {
	cs, ok := b.claimed[dir]
	if !ok {
		cs = filename.ClaimSet{}
		b.claimed[dir] = cs
	}
	return cs
}

// joinDir joins root and sub with a forward slash, omitting the root prefix
// entirely when root is empty.
func joinDir(root, sub string) string {
	switch {
	case root == "":
		return sub
	case sub == "":
		return root
	default:
		return root + "/" + sub
	}
}
