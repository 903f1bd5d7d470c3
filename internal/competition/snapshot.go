package competition

import (
	"sort"
	"strings"
)

// Key identifies a competition across runs
func (r *Record) Key() string {
	return strings.ToLower(r.Name) + "|" + r.Gender
}

// Snapshot represents the competitions listed at a point in time
type Snapshot struct {
	Competitions map[string]*Record `json:"competitions"` // keyed by Record.Key
	UpdatedAt    string             `json:"updated_at"`   // RFC3339 timestamp
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Competitions: make(map[string]*Record),
	}
}

// CreateSnapshot creates a snapshot from a list of records
func CreateSnapshot(records []*Record, updatedAt string) *Snapshot {
	snap := NewSnapshot()
	snap.UpdatedAt = updatedAt
	for _, r := range records {
		snap.Competitions[r.Key()] = r
	}
	return snap
}

// DiffResult contains the results of comparing a run against a snapshot
type DiffResult struct {
	New     []*Record // in document order
	Removed []*Record // sorted by name
}

// Diff compares the current records against a previous snapshot. A nil
// previous snapshot makes every record new.
func Diff(previous *Snapshot, current []*Record) *DiffResult {
	result := &DiffResult{
		New:     make([]*Record, 0),
		Removed: make([]*Record, 0),
	}

	if previous == nil {
		previous = NewSnapshot()
	}

	seen := make(map[string]bool, len(current))
	for _, r := range current {
		key := r.Key()
		seen[key] = true
		if _, exists := previous.Competitions[key]; !exists {
			result.New = append(result.New, r)
		}
	}

	for key, r := range previous.Competitions {
		if !seen[key] {
			result.Removed = append(result.Removed, r)
		}
	}
	sort.Slice(result.Removed, func(i, j int) bool {
		if result.Removed[i].Name != result.Removed[j].Name {
			return result.Removed[i].Name < result.Removed[j].Name
		}
		return result.Removed[i].Gender < result.Removed[j].Gender
	})

	return result
}
