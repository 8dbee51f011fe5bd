package trace

import "time"

// Record is one row of a RecordTable: either a node's own interval, or the
// synthetic "other" row capturing time spent in a node but not attributed
// to any of its children.
type Record struct {
	// Location is the call site this row reports on. It is the zero
	// Location (Label == "" && AnonymousID == 0 is still possible for a
	// real site, so callers should use Other to distinguish) for Other
	// rows, which report time with no call site of their own.
	Location Location
	// Other is true for a synthetic residual row: time the parent node
	// accumulated that none of its children accounted for.
	Other bool
	// Depth is this row's nesting depth in the rendered tree, root's
	// direct children starting at 0.
	Depth int
	// Count is how many times this node's interval was credited.
	Count int
	// Interval is the total wall-clock time credited to this node.
	Interval time.Duration
	// Percent is 100*Interval/root interval, or -1 if the root interval is
	// zero (avoids a divide-by-zero; render.go blanks the column instead).
	Percent float64
	// Memory is the most recent memory snapshot taken at this node, zero
	// if WithMemory was never used here.
	Memory Memory
}

// RecordTable is a flattened, depth-annotated view of one Store's call
// tree, in DFS pre-order.
type RecordTable struct {
	Records []Record
	// RootInterval is the sum of the top-level nodes' intervals, the
	// denominator Percent is computed against.
	RootInterval time.Duration
}

// ParallelRecordTable aggregates the RecordTable of every Store the
// aggregator currently knows about, one entry per goroutine lineage that
// has called Root.
type ParallelRecordTable struct {
	Tables map[string]RecordTable
}

// buildRecordTable walks s's tree and flattens it into a RecordTable.
//
// A node with Count == 0 was never itself credited by a Point call (it
// exists only because a Scope passed through it, or because a sibling
// later claimed the slot): it is skipped, its children are flattened at
// the SAME depth as it would have occupied, and its children's combined
// interval is returned to the caller so a parent that DID get credited can
// compute its own "other" residual correctly.
//
// A node with Count > 0 emits its own Record at depth, then its children
// at depth+1; if it has any children, an additional Other Record at
// depth+1 reports node.interval minus the sum of its children's intervals
// (time spent in the node that no child accounted for).
func buildRecordTable(s *Store) RecordTable {
	var records []Record

	var root time.Duration
	for _, childIdx := range s.nodes[0].children {
		root += walk(s, childIdx, 0, &records)
	}

	for i := range records {
		if root > 0 {
			records[i].Percent = 100 * float64(records[i].Interval) / float64(root)
		} else {
			records[i].Percent = -1
		}
	}

	return RecordTable{Records: records, RootInterval: root}
}

func walk(s *Store, idx, depth int, out *[]Record) time.Duration {
	n := &s.nodes[idx]

	if n.count == 0 {
		var childSum time.Duration
		for _, ci := range n.children {
			childSum += walk(s, ci, depth, out)
		}

		return childSum
	}

	loc, ok := globalRegistry.lookup(n.key)
	if !ok {
		loc = &Location{}
	}

	*out = append(*out, Record{
		Location: displayLocation(loc),
		Depth:    depth,
		Count:    n.count,
		Interval: n.interval,
		Memory:   n.memory,
	})

	var childSum time.Duration
	for _, ci := range n.children {
		childSum += walk(s, ci, depth+1, out)
	}

	if len(n.children) > 0 {
		*out = append(*out, Record{
			Other:    true,
			Depth:    depth + 1,
			Count:    1,
			Interval: n.interval - childSum,
		})
	}

	return n.interval
}

func displayLocation(loc *Location) Location {
	if GetAnonymous() {
		return Location{AnonymousID: loc.AnonymousID}
	}

	return *loc
}
