package core

import (
	"os"
	"time"
)

// PlanFileInfo implements os.FileInfo for preview-tree nodes. Every node in
// the download preview is synthetic (nothing exists on disk until the
// executor runs), so size and mod time are placeholders.
type PlanFileInfo struct {
	name  string
	isDir bool
}

// NewDirInfo returns the FileInfo for a planned directory node.
func NewDirInfo(name string) *PlanFileInfo {
	return &PlanFileInfo{name: name, isDir: true}
}

// NewFileInfo returns the FileInfo for a planned file node.
func NewFileInfo(name string) *PlanFileInfo {
	return &PlanFileInfo{name: name}
}

func (p *PlanFileInfo) Name() string { return p.name }
func (p *PlanFileInfo) Size() int64  { return 0 }
func (p *PlanFileInfo) Mode() os.FileMode {
	if p.isDir {
		return os.ModeDir | 0755
	}
	return 0644
}
func (p *PlanFileInfo) ModTime() time.Time { return time.Time{} }
func (p *PlanFileInfo) IsDir() bool        { return p.isDir }
func (p *PlanFileInfo) Sys() any           { return nil }
