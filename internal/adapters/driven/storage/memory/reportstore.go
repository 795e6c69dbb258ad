package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driven"
)

// Ensure ReportStore implements the interface.
var _ driven.ReportStore = (*ReportStore)(nil)

// ReportStore is an in-memory implementation of driven.ReportStore.
// SaveErr and GetErr inject backend failures for gateway tests.
type ReportStore struct {
	mu      sync.RWMutex
	name    string
	records map[string]domain.ReportRecord

	// SaveErr, when set, is returned by Save.
	SaveErr error

	// GetErr, when set, is returned by Get and GetByShortID.
	GetErr error

	// AssignID, when set, replaces the ID the caller chose, as a server-side default would.
	AssignID func() string

	saves int
}

// NewReportStore creates a new in-memory report store.
func NewReportStore(name string) *ReportStore {
	if name == "" {
		name = "memory"
	}
	return &ReportStore{
		name:    name,
		records: make(map[string]domain.ReportRecord),
	}
}

// Name identifies the backend.
func (s *ReportStore) Name() string {
	return s.name
}

// Save stores or replaces a record.
func (s *ReportStore) Save(_ context.Context, record *domain.ReportRecord) (*domain.ReportRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.SaveErr != nil {
		return nil, s.SaveErr
	}
	rec := *record
	rec.Data = append([]byte(nil), record.Data...)
	if s.AssignID != nil {
		rec.ID = s.AssignID()
	}
	if existing, ok := s.records[rec.ID]; ok {
		rec.CreatedAt = existing.CreatedAt
	} else if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	s.records[rec.ID] = rec
	out := rec
	return &out, nil
}

// Get retrieves a record by primary key.
func (s *ReportStore) Get(_ context.Context, id string) (*domain.ReportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	rec, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// GetByShortID retrieves a record by short key.
func (s *ReportStore) GetByShortID(_ context.Context, shortID string) (*domain.ReportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	for id := range s.records {
		if s.records[id].ShortID == shortID {
			rec := s.records[id]
			return &rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns records, newest first.
func (s *ReportStore) List(_ context.Context, userID string) ([]domain.ReportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ReportRecord
	for id := range s.records {
		if userID == "" || s.records[id].UserID == userID {
			out = append(out, s.records[id])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Delete removes a record by primary key.
func (s *ReportStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// SaveCount returns how many times Save was called, including failed calls.
func (s *ReportStore) SaveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
