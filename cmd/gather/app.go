package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/hayeah/gather"
	"github.com/hayeah/gather/internal/metrics"
)

// App wires the parsed arguments to a gather.Session.
type App struct {
	Args     *Args
	Config   *gather.Config
	Logger   *slog.Logger
	Stdout   io.Writer
	Reporter *gather.Reporter
	Metrics  *metrics.OutputMetrics
}

// Run dispatches to the selected subcommand.
func (app *App) Run() error {
	defer app.Metrics.Wait()

	app.applyOverrides()
	if err := app.Config.Validate(); err != nil {
		return err
	}

	session := &gather.Session{
		Reporter: app.Reporter,
		Logger:   app.Logger,
		Metrics:  app.Metrics,
	}

	switch {
	case app.Args.Collect != nil:
		return app.runCollect(session)
	case app.Args.Dump != nil:
		return app.runDump(session)
	case app.Args.Tree != nil:
		return app.runTree(session)
	default:
		return fmt.Errorf("no subcommand given")
	}
}

// applyOverrides replaces config values with the ones given on the command line.
func (app *App) applyOverrides() {
	cfg := app.Config
	if cmd := app.Args.Collect; cmd != nil {
		if cmd.Output != "" {
			cfg.Collect.Output = cmd.Output
		}
		if len(cmd.Roots) > 0 {
			cfg.Collect.Roots = cmd.Roots
		}
		if len(cmd.Exclude) > 0 {
			cfg.Collect.Exclude = cmd.Exclude
		}
		if len(cmd.Targets) > 0 {
			cfg.Collect.Targets = cmd.Targets
		}
	}
	if cmd := app.Args.Dump; cmd != nil {
		if cmd.Output != "" {
			cfg.Dump.Output = cmd.Output
		}
		if len(cmd.Roots) > 0 {
			cfg.Dump.Roots = cmd.Roots
		}
		if len(cmd.Include) > 0 {
			cfg.Dump.Include = cmd.Include
		}
		if len(cmd.Exclude) > 0 {
			cfg.Dump.Exclude = cmd.Exclude
		}
	}
	if cmd := app.Args.Tree; cmd != nil {
		if cmd.Root != "" {
			cfg.Tree.Root = cmd.Root
		}
		if len(cmd.Exclude) > 0 {
			cfg.Tree.Exclude = cmd.Exclude
		}
		if cmd.Gitignore {
			cfg.Tree.Gitignore = true
		}
	}
}

func (app *App) runCollect(s *gather.Session) error {
	cfg := app.Config.Collect
	req := cfg.Request()
	req.Roots = app.resolveAll(cfg.Roots)
	outPath := app.resolve(cfg.Output)

	projectRoot, err := filepath.Abs(app.dir())
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}
	app.Reporter.Printf("Searching in project root: %s\n", projectRoot)

	found := 0
	err = app.writeOutput(outPath, app.Args.Collect.Clipboard, func(w io.Writer) error {
		matches, err := s.Collect(w, req)
		for _, m := range matches {
			if m.Found {
				found++
			}
		}
		return err
	})
	if err != nil {
		return err
	}

	app.Reporter.Printf("\nDone!\n")
	app.Reporter.Printf("Collected content written to: %s\n", outPath)
	app.Reporter.Printf("Total files found: %d of %d\n", found, len(req.Targets))
	app.printSummary()
	return nil
}

func (app *App) runDump(s *gather.Session) error {
	cfg := app.Config.Dump
	roots := cfg.Roots
	cfg.Roots = app.resolveAll(roots)
	outPath := app.resolve(cfg.Output)
	cfg.Output = outPath

	err := app.writeOutput(outPath, app.Args.Dump.Clipboard, func(w io.Writer) error {
		_, err := s.Dump(w, app.dir(), cfg)
		return err
	})
	if err != nil {
		return err
	}

	app.Reporter.Printf("\nDone!\n")
	app.Reporter.Printf("All files from %v written to: %s\n", roots, outPath)
	app.printSummary()
	return nil
}

func (app *App) runTree(s *gather.Session) error {
	cfg := app.Config.Tree
	cfg.Root = app.resolve(cfg.Root)
	return s.Tree(app.Stdout, cfg)
}

// writeOutput truncates path and passes it to fn. With toClipboard the same
// bytes are also copied to the system clipboard.
func (app *App) writeOutput(path string, toClipboard bool, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	var w io.Writer = f
	var buf bytes.Buffer
	if toClipboard {
		w = io.MultiWriter(f, &buf)
	}

	if err := fn(w); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if toClipboard {
		if err := clipboard.WriteAll(buf.String()); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		app.Reporter.Println("Output copied to clipboard")
	}
	return nil
}

func (app *App) printSummary() {
	fmt.Fprintln(app.Stdout)
	metrics.PrintSummary(app.Stdout, app.Metrics, metrics.TermWidth())
}

// dir is the project root that relative roots and outputs are joined to.
func (app *App) dir() string {
	if app.Args.Dir == "" {
		return "."
	}
	return app.Args.Dir
}

func (app *App) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(app.dir(), path)
}

func (app *App) resolveAll(paths []string) []string {
	resolved := make([]string, len(paths))
	for i, p := range paths {
		resolved[i] = app.resolve(p)
	}
	return resolved
}
