package trace

import (
	"context"
	"io"
	"time"
)

// Table returns ctx's Store flattened into a RecordTable, or false if ctx
// carries no Store (nothing has been traced on this context yet).
func Table(ctx context.Context) (RecordTable, bool) {
	s, ok := storeFromContextReadOnly(ctx)
	if !ok {
		return RecordTable{}, false
	}

	return buildRecordTable(s), true
}

// Print renders ctx's Store as a table to w. It is a no-op if ctx carries no
// Store (nothing has been traced on this context yet).
func Print(ctx context.Context, w io.Writer) {
	rt, ok := Table(ctx)
	if !ok {
		return
	}

	Render(w, rt)
}

// SubTable returns the RecordTable rooted at the first node anywhere in
// ctx's Store whose published label matches label, or false if no node
// under that label has been recorded yet.
func SubTable(ctx context.Context, label string) (RecordTable, bool) {
	s, ok := storeFromContextReadOnly(ctx)
	if !ok {
		return RecordTable{}, false
	}

	idx, ok := findByLabel(s, 0, label)
	if !ok {
		return RecordTable{}, false
	}

	var records []Record
	var root time.Duration
	for _, childIdx := range s.nodes[idx].children {
		root += walk(s, childIdx, 0, &records)
	}

	for i := range records {
		if root > 0 {
			records[i].Percent = 100 * float64(records[i].Interval) / float64(root)
		} else {
			records[i].Percent = -1
		}
	}

	return RecordTable{Records: records, RootInterval: root}, true
}

// PrintLabel renders the sub-table rooted at label to w, returning
// ErrLocationNotPublished if no node under that label has been recorded.
func PrintLabel(ctx context.Context, w io.Writer, label string) error {
	rt, ok := SubTable(ctx, label)
	if !ok {
		return ErrLocationNotPublished
	}

	Render(w, rt)

	return nil
}

func findByLabel(s *Store, idx int, label string) (int, bool) {
	n := &s.nodes[idx]

	if loc, ok := globalRegistry.lookup(n.key); ok && n.count > 0 && loc.Label == label {
		return idx, true
	}

	for _, ci := range n.children {
		if found, ok := findByLabel(s, ci, label); ok {
			return found, true
		}
	}

	return 0, false
}
