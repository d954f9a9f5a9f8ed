package plan

import "sort"

// RootDirKey is the tree key used for entries whose directory is the empty
// string (everything directly under the download root).
const RootDirKey = "(root)"

// Entry is one file inside a Tree directory. PlanIndex back-references the
// flat plan so an edit made through the tree can rewrite the single source
// of truth in place.
type Entry struct {
	Filename    string
	URL         string
	HasConflict bool
	WillRename  bool
	PlanIndex   int
}

// Tree groups a plan by exact directory string. Two paths that render the
// same collapse into one folder node on purpose: that is what the
// filesystem will do too.
type Tree map[string][]Entry

// Stats aggregates a Tree for the preview UI.
type Stats struct {
	Total         int // planned files
	Conflicts     int // entries sharing a full path with another
	WillOverwrite int // conflicted entries resolved as overwrite
}

// BuildTree groups a plan by directory, preserving per-directory entry order
// from the flat plan.
func BuildTree(downloads []Download) Tree {
	t := Tree{}
	for i, d := range downloads {
		key := d.Directory
		if key == "" {
			key = RootDirKey
		}
		t[key] = append(t[key], Entry{
			Filename:    d.Filename,
			URL:         d.URL,
			HasConflict: d.HasConflict,
			WillRename:  d.WillRename,
			PlanIndex:   i,
		})
	}
	return t
}

// SortedDirectories returns the tree's directory keys in lexicographic
// order, giving the preview a deterministic rendering order.
func SortedDirectories(t Tree) []string {
	dirs := make([]string, 0, len(t))
	for dir := range t {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// Aggregate computes plan-wide statistics from a Tree.
func Aggregate(t Tree) Stats {
	var s Stats
	for _, entries := range t {
		for _, e := range entries {
			s.Total++
			if e.HasConflict {
				s.Conflicts++
				if !e.WillRename {
					s.WillOverwrite++
				}
			}
		}
	}
	return s
}
