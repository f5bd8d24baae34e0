package main

import (
	"log"
	"os"

	"github.com/alexflint/go-arg"
)

// Args defines the command-line arguments with subcommands
type Args struct {
	Config         string `arg:"-c,--config" help:"TOML config file overriding the built-in settings"`
	Dir            string `arg:"-C,--dir" help:"Project root that roots and output paths are relative to (default: current directory)"`
	TokenEstimator string `arg:"--token-estimator" help:"Token count estimator to use: 'simple' (size/4) or 'tiktoken'" default:"simple"`
	Verbose        bool   `arg:"-v,--verbose" help:"Log skipped directories"`

	Collect *CollectCmd `arg:"subcommand:collect" help:"Concatenate the first match of each target file"`
	Dump    *DumpCmd    `arg:"subcommand:dump" help:"Concatenate every file under the roots, oldest first"`
	Tree    *TreeCmd    `arg:"subcommand:tree" help:"Print the project folder tree"`
}

func (Args) Description() string {
	return "gather walks project folders and prints a tree or concatenates files into one text file\n"
}

// CollectCmd contains the arguments for the 'collect' subcommand
type CollectCmd struct {
	Output    string   `arg:"-o,--output" help:"Output file (default: collected_files.txt)"`
	Roots     []string `arg:"-r,--root,separate" help:"Search root, searched in order (repeatable)"`
	Exclude   []string `arg:"-x,--exclude,separate" help:"Directory name or glob to skip (repeatable)"`
	Clipboard bool     `arg:"--clipboard" help:"Also copy the output to the clipboard"`
	Targets   []string `arg:"positional" help:"File names to collect"`
}

// DumpCmd contains the arguments for the 'dump' subcommand
type DumpCmd struct {
	Output    string   `arg:"-o,--output" help:"Output file (default: vulkan_files.txt)"`
	Roots     []string `arg:"-r,--root,separate" help:"Root to dump (repeatable)"`
	Include   []string `arg:"-i,--include,separate" help:"Only files whose root-relative path matches this glob (repeatable)"`
	Exclude   []string `arg:"-x,--exclude,separate" help:"Directory name or glob to skip (repeatable)"`
	Clipboard bool     `arg:"--clipboard" help:"Also copy the output to the clipboard"`
}

// TreeCmd contains the arguments for the 'tree' subcommand
type TreeCmd struct {
	Exclude   []string `arg:"-x,--exclude,separate" help:"Directory name or glob to skip (repeatable, replaces the defaults)"`
	Gitignore bool     `arg:"--gitignore" help:"Also skip paths ignored by .gitignore"`
	Root      string   `arg:"positional" help:"Folder to print (default: .)"`
}

// main is our entrypoint: parse args and run the application
func main() {
	var args Args
	parser := arg.MustParse(&args)

	// If no subcommand is specified, show help
	if args.Collect == nil && args.Dump == nil && args.Tree == nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	app, err := BuildApp(&args, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
