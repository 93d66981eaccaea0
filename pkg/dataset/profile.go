package dataset

// ColumnProfile summarizes one column for before/after reporting.
type ColumnProfile struct {
	Name    string
	Type    ColumnType
	Missing int
}

// Profile summarizes a dataset: the counts a caller needs to render a
// before/after comparison view.
type Profile struct {
	Rows         int
	Columns      int
	MissingCells int
	ColumnStats  []ColumnProfile
}

// Profile computes row, column, and missing-value counts.
func (d *Dataset) Profile() Profile {
	p := Profile{
		Rows:        d.NRows(),
		Columns:     d.NCols(),
		ColumnStats: make([]ColumnProfile, 0, d.NCols()),
	}
	for _, s := range d.frame.Series {
		cp := ColumnProfile{Name: s.Name(), Type: TypeOf(s)}
		n := s.NRows()
		for i := 0; i < n; i++ {
			if IsMissing(s, i) {
				cp.Missing++
			}
		}
		p.MissingCells += cp.Missing
		p.ColumnStats = append(p.ColumnStats, cp)
	}
	return p
}
