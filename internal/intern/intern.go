// Package intern deduplicates identifier strings behind compact integer
// handles. Task and backend identifiers repeat on every poll cycle, so the
// stores key their maps by interned IDs instead of copies of the raw strings.
package intern

import "sync"

// ID is a compact handle for an interned string. IDs are dense small
// integers assigned in interning order and stay valid for the lifetime
// of the table.
type ID uint32

// None is the zero ID. It is reserved for the empty string and doubles
// as the "no selection" sentinel in filters.
const None ID = 0

// Table is a process-lifetime string pool. Interning the same string
// twice returns the same ID. The table never evicts: identifier
// cardinality is bounded by the tracked population, not by poll
// frequency, so unbounded growth is not a concern in practice.
type Table struct {
	mu   sync.RWMutex
	ids  map[string]ID
	strs []string
}

// NewTable returns an empty table with None pre-assigned to "".
func NewTable() *Table {
	return &Table{
		ids:  map[string]ID{"": None},
		strs: []string{""},
	}
}

// Intern returns the ID for s, assigning a new one on first sight.
// Interning the empty string returns None.
func (t *Table) Intern(s string) ID {
	t.mu.RLock()
	id, ok := t.ids[s]
	t.mu.RUnlock()
	if ok {
		return id
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// Re-check under the write lock; another goroutine may have won.
	if id, ok := t.ids[s]; ok {
		return id
	}
	id = ID(len(t.strs))
	t.ids[s] = id
	t.strs = append(t.strs, s)
	return id
}

// Resolve returns the string for id, or "" if id was never assigned.
func (t *Table) Resolve(id ID) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(id) >= len(t.strs) {
		return ""
	}
	return t.strs[id]
}

// Len reports the number of distinct strings in the table, including
// the reserved empty string.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.strs)
}
