package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/forgo/imgstash/internal/cmd"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	helpKeywords := []string{"help", "--help", "-h"}

	// Handle help command
	if slices.Contains(helpKeywords, command) {
		printUsage()
		return
	}

	var cfg cmd.CommandConfig
	needsGroupName := false
	switch command {
	case "plan":
		cfg = cmd.PlanCommand
	case "ungrouped":
		cfg = cmd.UngroupedCommand
	case "group":
		needsGroupName = true
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	args := os.Args[2:]
	if needsGroupName {
		name, rest, ok := groupArgs(args)
		if !ok {
			fmt.Println("Usage: imgstash group <name> [flags]")
			os.Exit(1)
		}
		cfg = cmd.GroupCommand(name)
		args = rest
	}

	// Parse flags for the command
	flags := flag.NewFlagSet(command, flag.ExitOnError)
	instant := flags.Bool("i", false, "Emit the manifest immediately without interactive preview")
	flags.BoolVar(instant, "instant", false, "Emit the manifest immediately without interactive preview")
	collectionPath := flags.String("c", "collection.json", "Path to the collection snapshot")
	settingsPath := flags.String("s", "settings.json", "Path to the settings file (defaults apply when missing)")
	outputPath := flags.String("o", "", "Manifest output path (default stdout)")
	selectPath := flags.String("select", "", "File of URLs (one per line) restricting the plan to a selection")

	if err := flags.Parse(args); err != nil {
		fmt.Printf("Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	cfg.InstantMode = *instant
	cfg.CollectionPath = *collectionPath
	cfg.SettingsPath = *settingsPath
	cfg.OutputPath = *outputPath
	cfg.SelectPath = *selectPath

	if err := cmd.RunCommand(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// groupArgs pulls the group name out of the arguments before flag parsing.
// Stdlib flag stops at the first positional argument, so leaving the name for
// flags.Arg(0) would silently drop any flags written after it
// ("imgstash group Trip -i"). The name must immediately follow the
// subcommand.
func groupArgs(args []string) (name string, rest []string, ok bool) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", args, false
	}
	return args[0], args[1:], true
}

func printUsage() {
	fmt.Println(`imgstash - plan image collection exports

Usage:
  imgstash <command> [flags]

Commands:
  plan        Plan the entire collection (groups, then ungrouped)
  group NAME  Plan a single group, matched by name or id
  ungrouped   Plan only images not assigned to any group
  help        Show this help

Flags:
  -i, --instant   Emit the manifest without the interactive preview
  -c PATH         Collection snapshot (default collection.json)
  -s PATH         Settings file (default settings.json)
  -o PATH         Manifest output path (default stdout)
  -select PATH    Restrict the plan to the URLs listed in PATH

The interactive preview shows the planned folder tree. Navigate with the
arrow keys, rename an entry with e, flip a conflict between auto-rename and
overwrite with o, and confirm with d to emit the download manifest.`)
}
