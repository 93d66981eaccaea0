package clean

import (
	"fmt"

	"github.com/akhildatla/scrub/pkg/dataset"
)

// LogEntry records one applied (or failed) operation for before/after
// reporting. Entries are append-only and ordered by application.
type LogEntry struct {
	Kind       Kind
	Summary    string
	RowsBefore int
	RowsAfter  int
	Notes      []string
	Failed     bool
}

// validate rejects input shapes the engine cannot operate on. These are the
// only errors that halt a whole batch.
func validate(ds *dataset.Dataset) error {
	if ds == nil {
		return ErrNilDataset
	}
	if ds.NCols() == 0 {
		return fmt.Errorf("%w: zero columns", ErrEmptyDataset)
	}
	if ds.NRows() == 0 {
		return fmt.Errorf("%w: zero rows", ErrEmptyDataset)
	}
	return nil
}

// Apply runs a single operation against a dataset snapshot and returns the
// next snapshot plus its log entry. The input dataset is never modified.
//
// Errors from Apply are either input-shape errors or operation failures; cell
// level problems (bad parses, inapplicable columns) never surface here — they
// degrade the cell or skip the column and show up in the entry's notes.
func Apply(ds *dataset.Dataset, op Op) (*dataset.Dataset, LogEntry, error) {
	if err := validate(ds); err != nil {
		return nil, LogEntry{}, err
	}

	var (
		result  *dataset.Dataset
		summary string
		notes   []string
		err     error
	)
	switch op.Kind {
	case RemoveDuplicates:
		result, summary, notes, err = removeDuplicates(ds, op)
	case HandleMissing:
		result, summary, notes, err = handleMissing(ds, op)
	case StandardizeText:
		result, summary, notes, err = standardizeText(ds, op)
	case NormalizeDates:
		result, summary, notes, err = normalizeDates(ds, op)
	case RemoveOutliers:
		result, summary, notes, err = removeOutliers(ds, op)
	case TrimWhitespace:
		result, summary, notes, err = trimWhitespace(ds, op)
	case RemoveEmptyRows:
		result, summary, notes, err = removeEmptyRows(ds, op)
	case ConvertTypes:
		result, summary, notes, err = convertTypes(ds, op)
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownKind, op.Kind)
	}
	if err != nil {
		return nil, LogEntry{}, err
	}

	entry := LogEntry{
		Kind:       op.Kind,
		Summary:    summary,
		RowsBefore: ds.NRows(),
		RowsAfter:  result.NRows(),
		Notes:      notes,
	}
	return result, entry, nil
}

// Run applies an ordered list of operations. Operations execute strictly
// sequentially: each observes the dataset state the previous one produced.
// A failing operation is isolated — its failure is recorded in the log, the
// dataset stays as it was before that operation, and the remaining operations
// still run. Only input-shape errors halt the batch.
func Run(ds *dataset.Dataset, ops []Op) (*dataset.Dataset, []LogEntry, error) {
	if err := validate(ds); err != nil {
		return nil, nil, err
	}

	cur := ds
	log := make([]LogEntry, 0, len(ops))
	for _, op := range ops {
		next, entry, err := Apply(cur, op)
		if err != nil {
			log = append(log, LogEntry{
				Kind:       op.Kind,
				Summary:    fmt.Sprintf("operation failed: %v", err),
				RowsBefore: cur.NRows(),
				RowsAfter:  cur.NRows(),
				Failed:     true,
			})
			continue
		}
		log = append(log, entry)
		cur = next
	}
	return cur, log, nil
}

// Session is caller-owned cleaning state: the current dataset snapshot, the
// original snapshot for before/after comparison, and the accumulated change
// log. There is no shared or process-wide state — concurrent sessions each
// own their dataset and log.
type Session struct {
	original *dataset.Dataset
	current  *dataset.Dataset
	log      []LogEntry
}

// NewSession starts a session over a dataset snapshot.
func NewSession(ds *dataset.Dataset) (*Session, error) {
	if err := validate(ds); err != nil {
		return nil, err
	}
	return &Session{original: ds, current: ds}, nil
}

// Apply runs one operation against the session's current snapshot. Failures
// are recorded in the log and leave the snapshot unchanged; the returned
// entry describes what happened either way.
func (s *Session) Apply(op Op) LogEntry {
	next, entry, err := Apply(s.current, op)
	if err != nil {
		entry = LogEntry{
			Kind:       op.Kind,
			Summary:    fmt.Sprintf("operation failed: %v", err),
			RowsBefore: s.current.NRows(),
			RowsAfter:  s.current.NRows(),
			Failed:     true,
		}
	} else {
		s.current = next
	}
	s.log = append(s.log, entry)
	return entry
}

// Dataset returns the current snapshot.
func (s *Session) Dataset() *dataset.Dataset {
	return s.current
}

// Original returns the snapshot the session started from.
func (s *Session) Original() *dataset.Dataset {
	return s.original
}

// Log returns the change log in application order.
func (s *Session) Log() []LogEntry {
	out := make([]LogEntry, len(s.log))
	copy(out, s.log)
	return out
}

// Reset discards all applied operations and the change log.
func (s *Session) Reset() {
	s.current = s.original
	s.log = nil
}
