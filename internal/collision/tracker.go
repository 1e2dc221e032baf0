// Package collision detects repeated record identifiers in a stream.
package collision

import (
	"github.com/arloliu/biostream/errs"
	"github.com/arloliu/biostream/internal/hash"
)

// Tracker remembers the identifiers it has seen by their xxHash64
// fingerprint. The first name seen for each fingerprint is kept so that a
// fingerprint collision between two different names is not mistaken for a
// duplicate; colliding names move to an exact overflow set.
//
// Note: Tracker is NOT thread-safe.
type Tracker struct {
	names        map[uint64]string   // fingerprint → first name seen
	overflow     map[string]struct{} // names whose fingerprint was taken by another name
	duplicates   []string            // repeated names, in order of first repetition
	reported     map[string]struct{}
	count        int
	hasCollision bool
	fingerprint  func([]byte) uint64
}

// NewTracker creates a new identifier tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:       make(map[uint64]string),
		overflow:    make(map[string]struct{}),
		reported:    make(map[string]struct{}),
		fingerprint: hash.ID,
	}
}

// Track records name and reports errs.ErrDuplicateID if it was seen
// before. Empty names are rejected with errs.ErrInvalidID.
func (t *Tracker) Track(name []byte) error {
	if len(name) == 0 {
		return errs.ErrInvalidID
	}
	t.count++

	h := t.fingerprint(name)
	existing, exists := t.names[h]
	if !exists {
		t.names[h] = string(name)
		return nil
	}
	if existing == string(name) {
		return t.duplicate(existing)
	}

	// Different name, same fingerprint.
	t.hasCollision = true
	if _, seen := t.overflow[string(name)]; seen {
		return t.duplicate(string(name))
	}
	t.overflow[string(name)] = struct{}{}

	return nil
}

func (t *Tracker) duplicate(name string) error {
	if _, ok := t.reported[name]; !ok {
		t.reported[name] = struct{}{}
		t.duplicates = append(t.duplicates, name)
	}

	return errs.ErrDuplicateID
}

// HasCollision returns true if two different names shared a fingerprint.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Duplicates returns the repeated names, each listed once, in the order in
// which they were first repeated.
func (t *Tracker) Duplicates() []string {
	return t.duplicates
}

// Count returns the number of names tracked, repetitions included.
func (t *Tracker) Count() int {
	return t.count
}

// Unique returns the number of distinct names tracked.
func (t *Tracker) Unique() int {
	return len(t.names) + len(t.overflow)
}

// Reset clears all tracked names and collision state.
func (t *Tracker) Reset() {
	clear(t.names)
	clear(t.overflow)
	clear(t.reported)
	t.duplicates = t.duplicates[:0]
	t.count = 0
	t.hasCollision = false
}
