package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driven"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driving"
	"github.com/custodia-labs/walkthrough/internal/logger"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService saves reports to a local fallback store and to each configured
// remote store in order. Remote permission and schema failures degrade to the
// local copy; every other remote failure fails the save.
type ReportService struct {
	local   driven.ReportStore
	remotes []driven.ReportStore
	ids     driven.IDGenerator
	users   driven.CurrentUserProvider
}

// NewReportService creates a new report service.
// users may be nil, in which case reports are saved anonymously.
func NewReportService(
	local driven.ReportStore,
	ids driven.IDGenerator,
	users driven.CurrentUserProvider,
	remotes ...driven.ReportStore,
) *ReportService {
	return &ReportService{
		local:   local,
		remotes: remotes,
		ids:     ids,
		users:   users,
	}
}

// HasRemote reports whether a remote store is configured.
func (s *ReportService) HasRemote() bool {
	return len(s.remotes) > 0
}

// Save stores the profile locally and then remotely.
func (s *ReportService) Save(ctx context.Context, profile domain.InspectionProfile) (*domain.SaveResult, error) {
	profile = profile.Clone()
	if profile.SavedReportID == "" {
		profile.SavedReportID = s.ids.NewID()
	}
	if profile.ShortID == "" {
		profile.ShortID = s.ids.NewShortID()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	if user := s.currentUser(ctx); user != nil {
		profile.UserID = user.ID
	}

	record, err := encodeRecord(profile)
	if err != nil {
		return nil, err
	}

	s.saveLocal(ctx, record)

	result := &domain.SaveResult{ID: record.ID, ShortID: record.ShortID}
	if !s.HasRemote() {
		return result, nil
	}

	for _, remote := range s.remotes {
		confirmed, err := remote.Save(ctx, record)
		if err != nil {
			if domain.IsRecoverableRemote(err) {
				warning := fmt.Sprintf("%s: %v (report kept locally)", remote.Name(), err)
				logger.Warn("save report %s: %s", record.ID, warning)
				result.Warnings = append(result.Warnings, warning)
				continue
			}
			return nil, fmt.Errorf("save report to %s: %w", remote.Name(), err)
		}
		result.Remote = true
		if confirmed == nil {
			continue
		}
		if confirmed.ID != "" {
			result.ID = confirmed.ID
		}
		if confirmed.ShortID != "" {
			result.ShortID = confirmed.ShortID
		}
	}

	// The backend's keys win. Re-key the local copy so it is stored once.
	if result.ID != record.ID || result.ShortID != record.ShortID {
		profile.SavedReportID = result.ID
		profile.ShortID = result.ShortID
		if updated, err := encodeRecord(profile); err == nil {
			s.rekeyLocal(ctx, record.ID, updated)
		}
	}
	return result, nil
}

// rekeyLocal writes record to the local store and drops the entry saved
// under oldID. The old entry is kept when the write fails.
func (s *ReportService) rekeyLocal(ctx context.Context, oldID string, record *domain.ReportRecord) {
	if s.local == nil {
		return
	}
	if _, err := s.local.Save(ctx, record); err != nil {
		logger.Warn("save report %s to %s: %v", record.ID, s.local.Name(), err)
		return
	}
	if oldID == record.ID {
		return
	}
	if err := s.local.Delete(ctx, oldID); err != nil {
		logger.Warn("remove superseded report %s from %s: %v", oldID, s.local.Name(), err)
	}
}

// Load retrieves a report by primary key or short key, trying each remote
// store before the local store.
func (s *ReportService) Load(ctx context.Context, key string) (*domain.InspectionProfile, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, fmt.Errorf("%w: empty report key", domain.ErrInvalidInput)
	}
	primary := domain.IsPrimaryKey(key)

	for _, remote := range s.remotes {
		if profile, ok := s.lookup(ctx, remote, key, primary); ok {
			return profile, true, nil
		}
	}
	if s.local != nil {
		if profile, ok := s.lookup(ctx, s.local, key, primary); ok {
			return profile, true, nil
		}
	}
	return nil, false, nil
}

// List returns reports from the local store, newest first.
func (s *ReportService) List(ctx context.Context) ([]domain.ReportSummary, error) {
	if s.local == nil {
		return nil, nil
	}
	records, err := s.local.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	summaries := make([]domain.ReportSummary, 0, len(records))
	for i := range records {
		profile, err := decodeRecord(&records[i])
		if err != nil {
			logger.Warn("skip report %s: %v", records[i].ID, err)
			continue
		}
		summaries = append(summaries, domain.ReportSummary{
			ID:        profile.SavedReportID,
			ShortID:   profile.ShortID,
			Address:   profile.Address,
			Progress:  profile.Progress(),
			CreatedAt: records[i].CreatedAt,
		})
	}
	return summaries, nil
}

// lookup reads one store. Misses, errors and undecodable payloads all count as
// a miss so the next store gets a chance.
func (s *ReportService) lookup(
	ctx context.Context,
	store driven.ReportStore,
	key string,
	primary bool,
) (*domain.InspectionProfile, bool) {
	var (
		record *domain.ReportRecord
		err    error
	)
	if primary {
		record, err = store.Get(ctx, key)
	} else {
		record, err = store.GetByShortID(ctx, key)
	}
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("load report %s from %s: %v", key, store.Name(), err)
		}
		return nil, false
	}
	profile, err := decodeRecord(record)
	if err != nil {
		logger.Warn("load report %s from %s: %v", key, store.Name(), err)
		return nil, false
	}
	logger.Debug("loaded report %s from %s", key, store.Name())
	return profile, true
}

func (s *ReportService) saveLocal(ctx context.Context, record *domain.ReportRecord) {
	if s.local == nil {
		return
	}
	if _, err := s.local.Save(ctx, record); err != nil {
		logger.Warn("save report %s to %s: %v", record.ID, s.local.Name(), err)
	}
}

func (s *ReportService) currentUser(ctx context.Context) *domain.User {
	if s.users == nil {
		return nil
	}
	user, err := s.users.CurrentUser(ctx)
	if err != nil {
		logger.Warn("resolve current user: %v", err)
		return nil
	}
	return user
}

// encodeRecord serialises the profile with its keys embedded.
func encodeRecord(profile domain.InspectionProfile) (*domain.ReportRecord, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return &domain.ReportRecord{
		ID:        profile.SavedReportID,
		ShortID:   profile.ShortID,
		UserID:    profile.UserID,
		Data:      data,
		CreatedAt: profile.CreatedAt,
	}, nil
}

// decodeRecord deserialises a payload. Keys held by the record take precedence
// over the ones embedded in the payload.
func decodeRecord(record *domain.ReportRecord) (*domain.InspectionProfile, error) {
	var profile domain.InspectionProfile
	if err := json.Unmarshal(record.Data, &profile); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	profile.SavedReportID = record.ID
	profile.ShortID = record.ShortID
	profile.UserID = record.UserID
	return &profile, nil
}
