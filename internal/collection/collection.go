package collection

import (
	"encoding/json"
	"fmt"
)

// Hint classifies how an ingested image was judged by the drop-ingestion
// collaborator. The set is closed: unmarshaling any other string is an
// error, so new classifications force a deliberate change here.
type Hint int

const (
	HintUnknown   Hint = iota // No classification recorded
	HintPrimary               // The main image of the dropped content
	HintDuplicate             // Same source URL as an already-collected image
	HintUIElement             // Icon, spacer or other page chrome
)

var hintNames = map[Hint]string{
	HintUnknown:   "unknown",
	HintPrimary:   "primary",
	HintDuplicate: "duplicate",
	HintUIElement: "ui-element",
}

func (h Hint) String() string {
	if s, ok := hintNames[h]; ok {
		return s
	}
	return fmt.Sprintf("Hint(%d)", int(h))
}

func (h Hint) MarshalJSON() ([]byte, error) {
	s, ok := hintNames[h]
	if !ok {
		return nil, fmt.Errorf("unknown hint value %d", int(h))
	}
	return json.Marshal(s)
}

func (h *Hint) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for v, name := range hintNames {
		if name == s {
			*h = v
			return nil
		}
	}
	return fmt.Errorf("unknown hint %q", s)
}

// Image is one collected image. URL is the stable identity key; everything
// else is optional. CustomFilename, when set, always wins over inference.
type Image struct {
	URL              string `json:"url"`
	CustomFilename   string `json:"customFilename,omitempty"`
	InferredFilename string `json:"inferredFilename,omitempty"`
	Extension        string `json:"extension,omitempty"`
	Hint             Hint   `json:"hint,omitempty"`
}

// Group is a named, ordered set of images. Directory, when non-empty,
// overrides Name as the export sub-directory.
type Group struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Directory string  `json:"directory,omitempty"`
	Images    []Image `json:"images"`
}

// Collection is a snapshot of everything the user has gathered: the named
// groups in their stored order, plus the ungrouped pool. The planning engine
// only ever reads it.
type Collection struct {
	Groups    []Group `json:"groups"`
	Ungrouped []Image `json:"ungrouped"`
}
