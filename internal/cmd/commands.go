package cmd

import (
	"fmt"

	"github.com/forgo/imgstash/internal/collection"
)

// PlanCommand plans the entire collection: every group in stored order,
// then the ungrouped pool.
var PlanCommand = CommandConfig{}

// UngroupedCommand plans only the images not assigned to any group.
var UngroupedCommand = CommandConfig{
	filter: func(col collection.Collection) (collection.Collection, error) {
		col.Groups = nil
		return col, nil
	},
}

// GroupCommand plans a single group, matched by name or id.
func GroupCommand(name string) CommandConfig {
	return CommandConfig{
		filter: func(col collection.Collection) (collection.Collection, error) {
			for _, g := range col.Groups {
				if g.Name == name || g.ID == name {
					return collection.Collection{Groups: []collection.Group{g}}, nil
				}
			}
			return collection.Collection{}, fmt.Errorf("no group named %q", name)
		},
	}
}
