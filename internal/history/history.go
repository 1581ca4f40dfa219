package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

var Buckets = struct {
	Metadata  []byte
	Downloads []byte
}{
	Metadata:  []byte("__metadata__"),
	Downloads: []byte("downloads"),
}

var MetadataKeys = struct {
	Version []byte
}{
	Version: []byte("version"),
}

const currentVersion = 1

// Database file defaults
const (
	DefaultFileName = "history.db"
	FileMode        = 0600
	OpenTimeout     = time.Second
)

var ErrNotFound = errors.New("history record not found")

// Outcome of a recorded download
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
	OutcomeStopped   Outcome = "stopped"
)

// Record is one finished download
type Record struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Title      string    `json:"title,omitempty"`
	Quality    string    `json:"quality"`
	Format     string    `json:"format"`
	Playlist   bool      `json:"playlist,omitempty"`
	OutputDir  string    `json:"output_dir"`
	Files      []string  `json:"files,omitempty"`
	Outcome    Outcome   `json:"outcome"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Store is a bbolt backed history. Keys are UUIDv7 strings so iteration order
// matches insertion time.
type Store struct {
	db *bbolt.DB
}

// DefaultPath returns the history database path under the user config dir
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "yt-downloader", DefaultFileName), nil
}

// Open opens or creates the database at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	db, err := bbolt.Open(path, FileMode, &bbolt.Options{Timeout: OpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		metadata, err := tx.CreateBucketIfNotExists(Buckets.Metadata)
		if err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(Buckets.Downloads); err != nil {
			return err
		}
		versionBytes, err := json.Marshal(currentVersion)
		if err != nil {
			return err
		}
		return metadata.Put(MetadataKeys.Version, versionBytes)
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Add stores rec, assigning an ID when it has none
func (s *Store) Add(rec *Record) error {
	if rec.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		rec.ID = id.String()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(Buckets.Downloads).Put([]byte(rec.ID), data)
	})
}

// Get returns a single record
func (s *Store) Get(id string) (*Record, error) {
	var rec *Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(Buckets.Downloads).Get([]byte(id))
		if v == nil {
			return ErrNotFound
		}
		rec = &Record{}
		return json.Unmarshal(v, rec)
	})
	return rec, err
}

// List returns up to limit records, newest first. limit <= 0 returns all.
func (s *Store) List(limit int) (records []*Record, err error) {
	err = s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(Buckets.Downloads).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			records = append(records, &rec)
			if limit > 0 && len(records) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes a single record
func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(Buckets.Downloads).Delete([]byte(id))
	})
}

// Clear removes every record
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(Buckets.Downloads); err != nil {
			return err
		}
		_, err := tx.CreateBucket(Buckets.Downloads)
		return err
	})
}
