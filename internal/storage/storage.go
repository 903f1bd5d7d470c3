package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pfrederiksen/fbref-comps/internal/competition"
)

// Storage handles persistence of competition snapshots
type Storage struct {
	dataDir string
	now     func() time.Time
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
		now:     time.Now,
	}, nil
}

// Dir returns the data directory after ~ expansion
func (s *Storage) Dir() string {
	return s.dataDir
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// snapshotPath returns the path to the snapshot file of a table
func (s *Storage) snapshotPath(tableID string) string {
	name := unsafeChars.ReplaceAllString(tableID, "_")
	if name == "" {
		return filepath.Join(s.dataDir, "snapshot.json")
	}
	return filepath.Join(s.dataDir, fmt.Sprintf("snapshot_%s.json", name))
}

// LoadSnapshot loads the snapshot of a table. A missing file yields an
// empty snapshot.
func (s *Storage) LoadSnapshot(tableID string) (*competition.Snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath(tableID))
	if err != nil {
		if os.IsNotExist(err) {
			return competition.NewSnapshot(), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot competition.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if snapshot.Competitions == nil {
		snapshot.Competitions = make(map[string]*competition.Record)
	}

	return &snapshot, nil
}

// SaveSnapshot writes the snapshot of a table, stamping UpdatedAt
func (s *Storage) SaveSnapshot(snapshot *competition.Snapshot, tableID string) error {
	snapshot.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(s.snapshotPath(tableID), data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// SaveRecords creates and saves a snapshot from a list of records
func (s *Storage) SaveRecords(records []*competition.Record, tableID string) error {
	return s.SaveSnapshot(competition.CreateSnapshot(records, ""), tableID)
}
