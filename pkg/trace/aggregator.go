package trace

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// aggregator tracks every Store created by Root or lazily by Scope/Point, so
// a process can build a
// ParallelRecordTable spanning all goroutine lineages that have traced
// anything, without any lineage needing to know about the others.
type aggregator struct {
	mu     sync.Mutex
	stores map[string]*Store
	nextID atomic.Uint64
}

var globalAggregator = &aggregator{stores: make(map[string]*Store)}

// register records s under a freshly minted synthetic thread id and returns
// it. Called once per Store: by Root, and by storeFromContext when it
// creates a Store lazily.
func (a *aggregator) register(s *Store) string {
	id := fmt.Sprintf("thread-%d", a.nextID.Add(1))

	a.mu.Lock()
	a.stores[id] = s
	a.mu.Unlock()

	return id
}

func (a *aggregator) snapshot() map[string]*Store {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make(map[string]*Store, len(a.stores))
	for id, s := range a.stores {
		out[id] = s
	}

	return out
}

func (a *aggregator) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.stores)
}

// StoreCount returns the number of Stores registered with the aggregator
// since the process started (by Root, or created lazily by Scope/Point on a
// context carrying none); ClearAll empties Stores but does not unregister
// them. Exposed for self-observability (internal/traceobs).
func StoreCount() int {
	return globalAggregator.count()
}

// ParallelTable builds a ParallelRecordTable covering every Store currently
// registered with the aggregator since the process started (see StoreCount);
// Stores emptied by ClearAll appear with no records.
func ParallelTable() ParallelRecordTable {
	stores := globalAggregator.snapshot()

	tables := make(map[string]RecordTable, len(stores))
	for id, s := range stores {
		tables[id] = buildRecordTable(s)
	}

	return ParallelRecordTable{Tables: tables}
}

// ClearAll resets every registered Store to its initial empty state and
// clears the Location registry's published entries. Intended for test
// isolation between independent runs in the same process. Stores stay
// registered. Calling it while any Store is concurrently being traced is
// undefined: a Store has no internal synchronization (see Root), and
// registry.reset describes the registry's side of the hazard.
func ClearAll() {
	for _, s := range globalAggregator.snapshot() {
		s.clear()
	}

	globalRegistry.reset()
}
