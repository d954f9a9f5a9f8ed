package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/forgo/imgstash/internal/plan"
)

// WriteManifest serializes a finalized plan as indented JSON: the hand-off
// format consumed by an external download executor, one entry per planned
// file write.
func WriteManifest(w io.Writer, downloads []plan.Download) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(downloads)
}

// writeManifest writes to path, or stdout when path is empty.
func writeManifest(path string, downloads []plan.Download) error {
	if path == "" {
		return WriteManifest(os.Stdout, downloads)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest %s: %w", path, err)
	}
	if err := WriteManifest(f, downloads); err != nil {
		f.Close()
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}
