package core

import "github.com/Digital-Shane/treeview"

// DownloadMeta mirrors one plan entry onto its preview-tree node.
//
// Fields:
//   - PlanIndex: position of the entry in the flat plan; edits made through
//     the tree rewrite the plan at this index.
//   - Filename / URL: current planned name and its source.
//   - HasConflict / WillRename: collision state as of the last detector
//     pass, refreshed in place after every edit.
//
// Directory nodes carry no metadata; GetMeta returning nil identifies them.
type DownloadMeta struct {
	PlanIndex   int
	Filename    string
	URL         string
	HasConflict bool
	WillRename  bool
}

// GetMeta retrieves the *DownloadMeta attached to n, or nil when absent.
// Safe to call with a nil node.
func GetMeta(n *treeview.Node[treeview.FileInfo]) *DownloadMeta {
	if n == nil || n.Data().Extra == nil {
		return nil
	}
	if m, ok := n.Data().Extra["download"].(*DownloadMeta); ok {
		return m
	}
	return nil
}

// EnsureMeta returns the existing *DownloadMeta for n, creating and
// attaching a new instance if needed. The returned pointer is never nil.
func EnsureMeta(n *treeview.Node[treeview.FileInfo]) *DownloadMeta {
	if n.Data().Extra == nil {
		n.Data().Extra = map[string]any{}
	}
	if m, ok := n.Data().Extra["download"].(*DownloadMeta); ok {
		return m
	}
	m := &DownloadMeta{}
	n.Data().Extra["download"] = m
	return m
}
