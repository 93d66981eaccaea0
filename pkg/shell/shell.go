// Package shell provides the interactive cleaning loop: load a dataset,
// apply operations one at a time, inspect the result, and save. All state
// lives in the Shell value, so concurrent shells never share anything.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/akhildatla/scrub/pkg/clean"
	"github.com/akhildatla/scrub/pkg/dataset"
	"github.com/akhildatla/scrub/pkg/export"
	"github.com/akhildatla/scrub/pkg/loader"
)

const prompt = "scrub> "

// Shell is an interactive cleaning session over one dataset.
type Shell struct {
	session *clean.Session
	applied []clean.Op
	history []string
	done    bool
}

// New creates a shell with no dataset loaded.
func New() *Shell {
	return &Shell{}
}

// Start runs the command loop until quit or end of input.
func (sh *Shell) Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, "scrub interactive shell")
	fmt.Fprintln(out, "Type 'help' for available commands, 'quit' to exit")
	fmt.Fprintln(out)

	for !sh.done {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			break
		}
		sh.handleCommand(scanner.Text(), out)
	}
}

func (sh *Shell) handleCommand(line string, out io.Writer) {
	trimmed := strings.TrimSpace(line)
	parts := strings.Fields(trimmed)
	if len(parts) == 0 {
		return
	}
	sh.history = append(sh.history, trimmed)

	switch parts[0] {
	case "quit", "exit", "q":
		fmt.Fprintln(out, "Goodbye!")
		sh.done = true

	case "help", "h", "?":
		sh.printHelp(out)

	case "load":
		if len(parts) < 2 {
			fmt.Fprintln(out, "Usage: load <path> [sheet]")
			return
		}
		sheet := ""
		if len(parts) > 2 {
			sheet = parts[2]
		}
		sh.load(parts[1], sheet, out)

	case "show":
		n := 10
		if len(parts) > 1 {
			v, err := strconv.Atoi(parts[1])
			if err != nil || v < 1 {
				fmt.Fprintln(out, "Usage: show [rows]")
				return
			}
			n = v
		}
		sh.show(n, out)

	case "profile":
		sh.profile(out)

	case "dedupe":
		sh.apply(clean.Op{
			Kind:    clean.RemoveDuplicates,
			Columns: columnScope(parts[1:]),
		}, out)

	case "missing":
		if len(parts) < 2 {
			fmt.Fprintln(out, "Usage: missing <method> [constant] [columns...]")
			return
		}
		method, err := clean.ParseMissingMethod(parts[1])
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		op := clean.Op{Kind: clean.HandleMissing, Method: method}
		rest := parts[2:]
		if method == clean.FillConstant {
			if len(rest) == 0 {
				fmt.Fprintln(out, "Usage: missing fill_constant <value> [columns...]")
				return
			}
			op.Constant = rest[0]
			rest = rest[1:]
		}
		op.Columns = columnScope(rest)
		sh.apply(op, out)

	case "text":
		if len(parts) < 2 {
			fmt.Fprintln(out, "Usage: text <step[,step...]> [columns...]")
			return
		}
		var steps []clean.TextStep
		for _, name := range strings.Split(parts[1], ",") {
			step, err := clean.ParseTextStep(name)
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				return
			}
			steps = append(steps, step)
		}
		sh.apply(clean.Op{
			Kind:    clean.StandardizeText,
			Steps:   steps,
			Columns: columnScope(parts[2:]),
		}, out)

	case "dates":
		op := clean.Op{Kind: clean.NormalizeDates}
		if len(parts) > 1 {
			op.Format = parts[1]
		}
		sh.apply(op, out)

	case "outliers":
		if len(parts) < 2 {
			fmt.Fprintln(out, "Usage: outliers <iqr|zscore> [columns...]")
			return
		}
		method, err := clean.ParseOutlierMethod(parts[1])
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		sh.apply(clean.Op{
			Kind:     clean.RemoveOutliers,
			Outliers: method,
			Columns:  columnScope(parts[2:]),
		}, out)

	case "trim":
		sh.apply(clean.Op{
			Kind:    clean.TrimWhitespace,
			Columns: columnScope(parts[1:]),
		}, out)

	case "dropempty":
		sh.apply(clean.Op{Kind: clean.RemoveEmptyRows}, out)

	case "convert":
		if len(parts) < 3 {
			fmt.Fprintln(out, "Usage: convert <numeric|text|date> <columns...>")
			return
		}
		target, err := clean.ParseTargetType(parts[1])
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		sh.apply(clean.Op{
			Kind:    clean.ConvertTypes,
			Target:  target,
			Columns: clean.Columns(parts[2:]...),
		}, out)

	case "log":
		sh.printLog(out)

	case "undo":
		sh.undo(out)

	case "reset":
		if sh.session == nil {
			fmt.Fprintln(out, "No dataset loaded")
			return
		}
		sh.session.Reset()
		sh.applied = nil
		fmt.Fprintln(out, "Reverted to the original dataset")

	case "save":
		if len(parts) < 2 {
			fmt.Fprintln(out, "Usage: save <path>")
			return
		}
		sh.save(parts[1], out)

	case "history":
		for i, cmd := range sh.history {
			fmt.Fprintf(out, "%3d: %s\n", i+1, cmd)
		}

	default:
		fmt.Fprintf(out, "Unknown command %q. Type 'help' for a list.\n", parts[0])
	}
}

// columnScope maps command arguments to a column scope: no arguments means
// every applicable column.
func columnScope(args []string) clean.ColumnSet {
	if len(args) == 0 {
		return clean.AllColumns()
	}
	return clean.Columns(args...)
}

func (sh *Shell) load(path, sheet string, out io.Writer) {
	var (
		ds  *dataset.Dataset
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		ds, err = loader.LoadCSV(path)
	case ".json":
		ds, err = loader.LoadJSON(path)
	case ".parquet":
		ds, err = loader.LoadParquet(path)
	case ".xlsx":
		ds, err = loader.LoadExcel(path, sheet)
	default:
		fmt.Fprintf(out, "Unsupported file type: %s\n", path)
		return
	}
	if err != nil {
		fmt.Fprintf(out, "Error loading %s: %v\n", path, err)
		return
	}

	session, err := clean.NewSession(ds)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	sh.session = session
	sh.applied = nil
	fmt.Fprintf(out, "Loaded %s (%d rows, %d columns)\n", path, ds.NRows(), ds.NCols())
}

func (sh *Shell) apply(op clean.Op, out io.Writer) {
	if sh.session == nil {
		fmt.Fprintln(out, "No dataset loaded. Use: load <path>")
		return
	}
	entry := sh.session.Apply(op)
	if entry.Failed {
		fmt.Fprintf(out, "Error: %s\n", entry.Summary)
		return
	}
	sh.applied = append(sh.applied, op)
	fmt.Fprintf(out, "%s (%d -> %d rows)\n", entry.Summary, entry.RowsBefore, entry.RowsAfter)
	for _, note := range entry.Notes {
		fmt.Fprintf(out, "  note: %s\n", note)
	}
}

// undo replays every operation but the last against the original snapshot.
func (sh *Shell) undo(out io.Writer) {
	if sh.session == nil {
		fmt.Fprintln(out, "No dataset loaded")
		return
	}
	if len(sh.applied) == 0 {
		fmt.Fprintln(out, "Nothing to undo")
		return
	}
	ops := sh.applied[:len(sh.applied)-1]
	sh.session.Reset()
	for _, op := range ops {
		sh.session.Apply(op)
	}
	sh.applied = ops
	fmt.Fprintf(out, "Undid last operation (%d remain)\n", len(ops))
}

func (sh *Shell) show(n int, out io.Writer) {
	if sh.session == nil {
		fmt.Fprintln(out, "No dataset loaded")
		return
	}
	ds := sh.session.Dataset()
	names := ds.ColumnNames()
	fmt.Fprintf(out, "id\t%s\n", strings.Join(names, "\t"))

	series := ds.Frame().Series
	rows := ds.NRows()
	if rows > n {
		rows = n
	}
	for i := 0; i < rows; i++ {
		cells := make([]string, len(series))
		for ci, s := range series {
			cells[ci] = dataset.FormatCell(s, i)
		}
		fmt.Fprintf(out, "%d\t%s\n", ds.ID(i), strings.Join(cells, "\t"))
	}
	if ds.NRows() > n {
		fmt.Fprintf(out, "... %d more rows\n", ds.NRows()-n)
	}
}

func (sh *Shell) profile(out io.Writer) {
	if sh.session == nil {
		fmt.Fprintln(out, "No dataset loaded")
		return
	}
	p := sh.session.Dataset().Profile()
	fmt.Fprintf(out, "%d rows, %d columns, %d missing cells\n", p.Rows, len(p.ColumnStats), p.MissingCells)
	for _, c := range p.ColumnStats {
		fmt.Fprintf(out, "  %s: %s, %d missing\n", c.Name, c.Type, c.Missing)
	}
}

func (sh *Shell) printLog(out io.Writer) {
	if sh.session == nil {
		fmt.Fprintln(out, "No dataset loaded")
		return
	}
	log := sh.session.Log()
	if len(log) == 0 {
		fmt.Fprintln(out, "No operations applied")
		return
	}
	for i, e := range log {
		status := ""
		if e.Failed {
			status = " [failed]"
		}
		fmt.Fprintf(out, "%3d: %s%s (%d -> %d rows)\n", i+1, e.Summary, status, e.RowsBefore, e.RowsAfter)
	}
}

func (sh *Shell) save(path string, out io.Writer) {
	if sh.session == nil {
		fmt.Fprintln(out, "No dataset loaded")
		return
	}
	ds := sh.session.Dataset()
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		err = export.WriteCSVFile(path, ds)
	case ".json":
		err = export.WriteJSONFile(path, ds)
	case ".xlsx":
		err = export.WriteExcel(path, ds)
	default:
		fmt.Fprintf(out, "Unsupported file type: %s\n", path)
		return
	}
	if err != nil {
		fmt.Fprintf(out, "Error saving %s: %v\n", path, err)
		return
	}
	fmt.Fprintf(out, "Saved %s (%d rows, %d columns)\n", path, ds.NRows(), ds.NCols())
}

func (sh *Shell) printHelp(out io.Writer) {
	help := `
Commands:
  help, h, ?                Show this help message
  quit, exit, q             Exit the shell
  load <path> [sheet]       Load a CSV, JSON, Parquet, or Excel file
  show [rows]               Print the first rows of the current dataset
  profile                   Summarize columns, types, and missing cells
  dedupe [columns...]       Remove duplicate rows
  missing <method> [args]   Handle missing values (drop, fill_mean, ...)
  text <steps> [columns...] Standardize text (trim,lowercase,...)
  dates [format]            Normalize date columns (strftime format)
  outliers <iqr|zscore>     Remove outlier rows
  trim [columns...]         Trim whitespace
  dropempty                 Remove fully empty rows
  convert <type> <cols...>  Convert column types (numeric, text, date)
  log                       Show the change log
  undo                      Revert the last operation
  reset                     Revert to the original dataset
  save <path>               Write the current dataset to a file
  history                   Show command history
`
	fmt.Fprint(out, help)
}
