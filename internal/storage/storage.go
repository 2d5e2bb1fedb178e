package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	filePrefix = "mcc_data_"
	fileSuffix = ".json"
)

// ErrNoSnapshots is returned by Latest when the directory holds no snapshot.
var ErrNoSnapshots = errors.New("no snapshots found")

// Storage handles snapshot files in one directory.
type Storage struct {
	dataDir string
}

// New creates a Storage for dataDir, creating the directory if needed.
// A leading "~/" is expanded to the user's home directory.
func New(dataDir string) (*Storage, error) {
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
	}, nil
}

// Dir returns the directory snapshots are written to.
func (s *Storage) Dir() string {
	return s.dataDir
}

// SnapshotPath returns the file name used for a snapshot taken at t.
func (s *Storage) SnapshotPath(t time.Time) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("%s%d%s", filePrefix, t.Unix(), fileSuffix))
}

// Save writes v as a snapshot taken at t and returns the file path.
func (s *Storage) Save(v any, t time.Time) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}

	path := s.SnapshotPath(t)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("writing snapshot: %w", err)
	}

	return path, nil
}

// Load decodes the snapshot at path into v.
func Load(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing snapshot %s: %w", path, err)
	}

	return nil
}

// Latest returns the path of the snapshot with the newest timestamp.
func (s *Storage) Latest() (string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dataDir, filePrefix+"*"+fileSuffix))
	if err != nil {
		return "", fmt.Errorf("listing snapshots: %w", err)
	}

	var (
		latest   string
		latestTS int64 = -1
	)
	for _, path := range matches {
		ts, ok := snapshotTimestamp(path)
		if !ok {
			continue
		}
		if ts > latestTS {
			latest, latestTS = path, ts
		}
	}

	if latest == "" {
		return "", fmt.Errorf("%w in %s", ErrNoSnapshots, s.dataDir)
	}
	return latest, nil
}

// snapshotTimestamp extracts the unix time embedded in a snapshot file name.
func snapshotTimestamp(path string) (int64, bool) {
	name := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(path), filePrefix), fileSuffix)
	ts, err := strconv.ParseInt(name, 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}

// TakenAt returns the time encoded in a snapshot file name.
func TakenAt(path string) (time.Time, bool) {
	ts, ok := snapshotTimestamp(path)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(ts, 0), true
}
