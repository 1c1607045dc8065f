package srs

import (
	"sort"
	"time"
)

// DefaultMinNew is the number of queue slots reserved for new items.
const DefaultMinNew = 5

// QueueOptions tunes queue composition.
type QueueOptions struct {
	// MinNew is the number of slots held back from due items so that new
	// material keeps flowing. Negative values are treated as 0.
	MinNew int
}

// DefaultQueueOptions returns the standard composition policy.
func DefaultQueueOptions() QueueOptions {
	return QueueOptions{MinNew: DefaultMinNew}
}

// Queue is an ordered study queue: due reviews first, then new items.
type Queue struct {
	Due []string
	New []string
}

// IDs returns the queue in presentation order.
func (q Queue) IDs() []string {
	ids := make([]string, 0, len(q.Due)+len(q.New))
	ids = append(ids, q.Due...)
	return append(ids, q.New...)
}

// Len returns the total number of queued items.
func (q Queue) Len() int {
	return len(q.Due) + len(q.New)
}

// BuildQueue selects at most limit items out of itemIDs.
//
// Items with a state that is due are ranked by Priority, highest first, ties
// broken by identifier. They may take up to limit-MinNew slots. Items without
// any state are new; they fill every remaining slot in the order they appear
// in itemIDs. Items with a state that is not yet due are never returned.
// Identifiers with a state but absent from itemIDs are ignored.
func BuildQueue(itemIDs []string, states map[string]State, limit int, now time.Time, opts QueueOptions) Queue {
	var q Queue
	if limit <= 0 {
		return q
	}
	minNew := max(0, opts.MinNew)

	type dueItem struct {
		id       string
		priority float64
	}
	var due []dueItem
	var fresh []string

	seen := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		st, ok := states[id]
		if !ok {
			fresh = append(fresh, id)
			continue
		}
		if st.IsDue(now) {
			due = append(due, dueItem{id: id, priority: st.Priority(now)})
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].priority != due[j].priority {
			return due[i].priority > due[j].priority
		}
		return due[i].id < due[j].id
	})

	dueBudget := min(len(due), max(0, limit-minNew))
	for _, d := range due[:dueBudget] {
		q.Due = append(q.Due, d.id)
	}

	// Due items never take the reserved slots, so this is at least minNew.
	newBudget := min(len(fresh), limit-len(q.Due))
	q.New = append(q.New, fresh[:newBudget]...)
	return q
}
