// Package main provides the scrub CLI.
//
// Usage:
//
//	scrub clean data.csv -recipe recipe.yaml -o out.csv   # Batch cleaning
//	scrub inspect data.csv                                # Profile a dataset
//	scrub shell                                           # Interactive session
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/akhildatla/scrub/pkg/clean"
	"github.com/akhildatla/scrub/pkg/dataset"
	"github.com/akhildatla/scrub/pkg/export"
	"github.com/akhildatla/scrub/pkg/loader"
	"github.com/akhildatla/scrub/pkg/recipe"
	"github.com/akhildatla/scrub/pkg/shell"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return printUsage()
	}

	cmd := os.Args[1]

	switch cmd {
	case "clean":
		return cleanCommand(os.Args[2:])
	case "inspect":
		return inspectCommand(os.Args[2:])
	case "shell":
		return shellCommand(os.Args[2:])
	case "version":
		fmt.Printf("scrub version %s\n", version)
		if commit != "none" {
			fmt.Printf("  commit: %s\n", commit)
		}
		if date != "unknown" {
			fmt.Printf("  built:  %s\n", date)
		}
		return nil
	case "help", "-h", "--help":
		return printUsage()
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func cleanCommand(args []string) error {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)
	recipePath := fs.String("recipe", "", "recipe file (YAML)")
	output := fs.String("o", "", "output file (default: input with a .clean suffix)")
	sheet := fs.String("sheet", "", "Excel sheet name (default: first sheet)")
	verbose := fs.Bool("v", false, "verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: scrub clean <file> -recipe recipe.yaml [-o output]")
	}
	if *recipePath == "" {
		return fmt.Errorf("a recipe file is required: -recipe recipe.yaml")
	}

	inputPath := fs.Arg(0)
	outputPath := *output
	if outputPath == "" {
		ext := filepath.Ext(inputPath)
		outputPath = strings.TrimSuffix(inputPath, ext) + ".clean" + ext
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ops, err := recipe.ParseFile(*recipePath)
	if err != nil {
		return fmt.Errorf("reading recipe: %w", err)
	}
	logger.Debug("recipe parsed", "path", *recipePath, "operations", len(ops))

	ds, err := loadDataset(inputPath, *sheet)
	if err != nil {
		return fmt.Errorf("loading %s: %w", inputPath, err)
	}
	logger.Debug("dataset loaded", "path", inputPath, "rows", ds.NRows(), "columns", ds.NCols())

	result, log, err := clean.Run(ds, ops)
	if err != nil {
		return fmt.Errorf("cleaning: %w", err)
	}

	failures := 0
	for i, e := range log {
		if e.Failed {
			failures++
			logger.Warn("operation failed", "step", i+1, "kind", e.Kind.String(), "detail", e.Summary)
			continue
		}
		logger.Debug("operation applied",
			"step", i+1, "kind", e.Kind.String(), "summary", e.Summary,
			"rows_before", e.RowsBefore, "rows_after", e.RowsAfter)
		for _, note := range e.Notes {
			logger.Debug("note", "step", i+1, "detail", note)
		}
	}

	if err := saveDataset(outputPath, result); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	fmt.Printf("Cleaned %s: %d -> %d rows, %d operations (%d failed)\n",
		inputPath, ds.NRows(), result.NRows(), len(log), failures)
	fmt.Printf("Output: %s\n", outputPath)
	return nil
}

func inspectCommand(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	sheet := fs.String("sheet", "", "Excel sheet name (default: first sheet)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: scrub inspect <file>")
	}

	inputPath := fs.Arg(0)
	ds, err := loadDataset(inputPath, *sheet)
	if err != nil {
		return fmt.Errorf("loading %s: %w", inputPath, err)
	}

	p := ds.Profile()
	fmt.Printf("%s: %d rows, %d columns, %d missing cells\n",
		inputPath, p.Rows, len(p.ColumnStats), p.MissingCells)
	for _, c := range p.ColumnStats {
		fmt.Printf("  %-20s %-8s %d missing\n", c.Name, c.Type, c.Missing)
	}
	return nil
}

func shellCommand(args []string) error {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	input := fs.String("load", "", "dataset to load on startup")
	sheet := fs.String("sheet", "", "Excel sheet name (default: first sheet)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	in := io.Reader(os.Stdin)
	if *input != "" {
		line := "load " + *input
		if *sheet != "" {
			line += " " + *sheet
		}
		in = io.MultiReader(strings.NewReader(line+"\n"), os.Stdin)
	}

	shell.New().Start(in, os.Stdout)
	return nil
}

// loadDataset routes a path to the matching loader by extension.
func loadDataset(path, sheet string) (*dataset.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loader.LoadCSV(path)
	case ".json":
		return loader.LoadJSON(path)
	case ".parquet":
		return loader.LoadParquet(path)
	case ".xlsx":
		return loader.LoadExcel(path, sheet)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}

// saveDataset routes a path to the matching writer by extension.
func saveDataset(path string, ds *dataset.Dataset) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return export.WriteCSVFile(path, ds)
	case ".json":
		return export.WriteJSONFile(path, ds)
	case ".xlsx":
		return export.WriteExcel(path, ds)
	default:
		return fmt.Errorf("unsupported output type: %s", path)
	}
}

func printUsage() error {
	fmt.Println(`scrub - selective cleaning for tabular data

Usage:
  scrub <command> [arguments]

Commands:
  clean <file>      Apply a cleaning recipe and write the result
  inspect <file>    Profile a dataset (types, missing cells)
  shell             Start an interactive cleaning session
  version           Print version information
  help              Show this help message

Clean Options:
  -recipe <file>    Recipe file (YAML, required)
  -o <file>         Output file (default: input with a .clean suffix)
  -sheet <name>     Excel sheet to read (default: first sheet)
  -v                Verbose output

Inspect Options:
  -sheet <name>     Excel sheet to read (default: first sheet)

Shell Options:
  -load <file>      Dataset to load on startup
  -sheet <name>     Excel sheet to read (default: first sheet)

Supported formats: CSV, JSON, Parquet (read only), Excel (.xlsx)

Examples:
  scrub inspect data.csv
  scrub clean data.csv -recipe recipe.yaml -o data.clean.csv
  scrub clean survey.xlsx -sheet responses -recipe recipe.yaml -o survey.csv
  scrub shell -load data.csv`)
	return nil
}
