// Package history keeps the most recent generation results of a session.
package history

import (
	"slices"
	"sync"
)

// DefaultCapacity is the number of entries a History keeps by default.
const DefaultCapacity = 10

// Entry is one remembered result.
type Entry struct {
	Password string `json:"password"`
	Strength int    `json:"strength"`
}

// History is a bounded, most-recent-first list of entries.
type History struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
}

// New creates a History holding at most capacity entries.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity}
}

// Push records a batch. The batch keeps its own order and goes in front of
// older entries; anything past capacity is dropped.
func (h *History) Push(batch ...Entry) {
	if len(batch) == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	merged := make([]Entry, 0, len(batch)+len(h.entries))
	merged = append(merged, batch...)
	merged = append(merged, h.entries...)
	if len(merged) > h.capacity {
		merged = merged[:h.capacity]
	}
	h.entries = merged
}

// Items returns a copy of the entries, most recent first.
func (h *History) Items() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.entries == nil {
		return []Entry{}
	}
	return slices.Clone(h.entries)
}

// Cap returns the most entries the History keeps.
func (h *History) Cap() int { return h.capacity }

// Clear drops every entry.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}
