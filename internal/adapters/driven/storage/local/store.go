// Package local provides the on-device fallback report store.
//
// Every report is kept in one JSON file named after a fixed storage key,
// mapping primary key to {id, data, created_at}. The store is a safety net:
// the report gateway writes to it before any remote backend and tolerates
// its failures.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driven"
	"github.com/custodia-labs/walkthrough/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ReportStore = (*Store)(nil)

// StorageKey names the file holding every locally saved report.
const StorageKey = "inspection_reports"

// entry is the on-disk shape of one report.
type entry struct {
	ID        string          `json:"id"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

// embeddedKeys are the fields of the payload the store reads.
type embeddedKeys struct {
	ShortID string `json:"shortId"`
	UserID  string `json:"userId"`
}

// Store is a file-backed implementation of driven.ReportStore.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a local store in dir.
// If dir is empty, defaults to ~/.walkthrough/data.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".walkthrough", "data")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{path: filepath.Join(dir, StorageKey+".json")}, nil
}

// Name identifies the backend.
func (s *Store) Name() string {
	return "local"
}

// Path returns the storage file path.
func (s *Store) Path() string {
	return s.path
}

// Save inserts or replaces a report. The original creation time is kept on update.
func (s *Store) Save(_ context.Context, record *domain.ReportRecord) (*domain.ReportRecord, error) {
	if record.ID == "" {
		return nil, fmt.Errorf("%w: report id is required", domain.ErrInvalidInput)
	}
	if !json.Valid(record.Data) {
		return nil, fmt.Errorf("%w: report payload is not JSON", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, err
	}

	e := entry{ID: record.ID, Data: append(json.RawMessage(nil), record.Data...), CreatedAt: record.CreatedAt}
	if existing, ok := entries[record.ID]; ok && !existing.CreatedAt.IsZero() {
		e.CreatedAt = existing.CreatedAt
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	entries[record.ID] = e

	if err := s.write(entries); err != nil {
		return nil, err
	}
	return toRecord(e), nil
}

// Get retrieves a report by primary key.
func (s *Store) Get(_ context.Context, id string) (*domain.ReportRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, err
	}
	e, ok := entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return toRecord(e), nil
}

// GetByShortID scans every report for one whose payload embeds shortID.
func (s *Store) GetByShortID(_ context.Context, shortID string) (*domain.ReportRecord, error) {
	if shortID == "" {
		return nil, domain.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, err
	}
	for id := range entries {
		rec := toRecord(entries[id])
		if rec.ShortID == shortID {
			return rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Delete removes a report by primary key.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := entries[id]; !ok {
		return nil
	}
	delete(entries, id)
	return s.write(entries)
}

// List returns reports, newest first.
func (s *Store) List(_ context.Context, userID string) ([]domain.ReportRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, err
	}
	out := make([]domain.ReportRecord, 0, len(entries))
	for id := range entries {
		rec := toRecord(entries[id])
		if userID != "" && rec.UserID != userID {
			continue
		}
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// read loads the storage file (caller must hold lock). A missing file is empty.
func (s *Store) read() (map[string]entry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]entry), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	entries := make(map[string]entry)
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.path, err)
	}
	return entries, nil
}

// write replaces the storage file atomically (caller must hold lock).
func (s *Store) write(entries map[string]entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding reports: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), StorageKey+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing reports: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

func toRecord(e entry) *domain.ReportRecord {
	rec := &domain.ReportRecord{
		ID:        e.ID,
		Data:      append([]byte(nil), e.Data...),
		CreatedAt: e.CreatedAt,
	}
	var keys embeddedKeys
	if err := json.Unmarshal(e.Data, &keys); err != nil {
		logger.Debug("local report %s has unreadable payload: %v", e.ID, err)
		return rec
	}
	rec.ShortID = keys.ShortID
	rec.UserID = keys.UserID
	return rec
}
