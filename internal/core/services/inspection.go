package services

import (
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driven"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driving"
)

// Ensure InspectionService implements the interface.
var _ driving.InspectionService = (*InspectionService)(nil)

// InspectionService holds the inspection being walked. It is the single writer
// of that document: every mutation runs under the lock and swaps in the snapshot
// returned by the domain operation.
type InspectionService struct {
	mu      sync.RWMutex
	ids     driven.IDGenerator
	current *domain.InspectionProfile
}

// NewInspectionService creates an inspection service with no inspection loaded.
func NewInspectionService(ids driven.IDGenerator) *InspectionService {
	return &InspectionService{ids: ids}
}

// Start begins a new inspection.
func (s *InspectionService) Start(profile domain.InspectionProfile) (*domain.InspectionProfile, error) {
	profile = profile.Clone()
	profile.ID = s.ids.NewID()
	profile.SavedReportID = ""
	profile.ShortID = ""
	profile.CreatedAt = time.Now().UTC()
	for i := range profile.Sections {
		s.assignSectionIDs(&profile.Sections[i])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &profile
	out := profile.Clone()
	return &out, nil
}

// Hydrate replaces the current inspection with a loaded one.
func (s *InspectionService) Hydrate(profile domain.InspectionProfile) {
	profile = profile.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &profile
}

// Current returns a copy of the current inspection.
func (s *InspectionService) Current() (*domain.InspectionProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, domain.ErrNoInspection
	}
	out := s.current.Clone()
	return &out, nil
}

// SetItemStatus sets an item's status.
func (s *InspectionService) SetItemStatus(sectionID, itemID string, status domain.ItemStatus) error {
	return s.apply(func(p domain.InspectionProfile) (domain.InspectionProfile, error) {
		return p.SetItemStatus(sectionID, itemID, status)
	})
}

// SetItemOption sets an item's selected option.
func (s *InspectionService) SetItemOption(sectionID, itemID, option string) error {
	return s.apply(func(p domain.InspectionProfile) (domain.InspectionProfile, error) {
		return p.SetItemOption(sectionID, itemID, option)
	})
}

// SetItemNotes replaces an item's notes.
func (s *InspectionService) SetItemNotes(sectionID, itemID, text string) error {
	return s.apply(func(p domain.InspectionProfile) (domain.InspectionProfile, error) {
		return p.SetItemNotes(sectionID, itemID, text, domain.NotesReplace)
	})
}

// AppendAnalysis appends a machine-generated note.
func (s *InspectionService) AppendAnalysis(sectionID, itemID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return s.apply(func(p domain.InspectionProfile) (domain.InspectionProfile, error) {
		return p.SetItemNotes(sectionID, itemID, text, domain.NotesAppendAnalysis)
	})
}

// SetItemVisibility hides or restores an item.
func (s *InspectionService) SetItemVisibility(sectionID, itemID string, hidden bool) error {
	return s.apply(func(p domain.InspectionProfile) (domain.InspectionProfile, error) {
		return p.SetItemVisibility(sectionID, itemID, hidden)
	})
}

// ShowAllHidden restores every hidden item in a section.
func (s *InspectionService) ShowAllHidden(sectionID string) error {
	return s.apply(func(p domain.InspectionProfile) (domain.InspectionProfile, error) {
		return p.ShowAllHidden(sectionID)
	})
}

// AddPhoto appends an item photo or sets the section cover.
func (s *InspectionService) AddPhoto(sectionID, itemID, image string) error {
	return s.apply(func(p domain.InspectionProfile) (domain.InspectionProfile, error) {
		return p.AddPhoto(sectionID, itemID, image)
	})
}

// RemovePhoto removes an item photo by position.
func (s *InspectionService) RemovePhoto(sectionID, itemID string, index int) error {
	return s.apply(func(p domain.InspectionProfile) (domain.InspectionProfile, error) {
		return p.RemovePhoto(sectionID, itemID, index)
	})
}

// AppendSection adds a section with fresh identifiers.
func (s *InspectionService) AppendSection(section domain.ChecklistSection) (*domain.ChecklistSection, error) {
	section.ID = ""
	section.Items = append([]domain.ChecklistItem(nil), section.Items...)
	for i := range section.Items {
		section.Items[i].ID = ""
	}
	s.assignSectionIDs(&section)

	var added domain.ChecklistSection
	err := s.apply(func(p domain.InspectionProfile) (domain.InspectionProfile, error) {
		out := p.AppendSection(section)
		added = out.Sections[len(out.Sections)-1]
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// AddItems appends items with the given labels. Blank labels are skipped.
func (s *InspectionService) AddItems(sectionID string, labels []string) ([]domain.ChecklistItem, error) {
	items := make([]domain.ChecklistItem, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		items = append(items, domain.ChecklistItem{
			ID:     s.ids.NewID(),
			Label:  label,
			Status: domain.ItemStatusUntouched,
		})
	}
	err := s.apply(func(p domain.InspectionProfile) (domain.InspectionProfile, error) {
		return p.AppendItems(sectionID, items)
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Progress returns the completion percentage.
func (s *InspectionService) Progress() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return 0, domain.ErrNoInspection
	}
	return s.current.Progress(), nil
}

// Summary returns statistics over visible items.
func (s *InspectionService) Summary() (domain.SummaryCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.SummaryCounts{}, domain.ErrNoInspection
	}
	return s.current.Summary(), nil
}

// apply runs op against the current profile and keeps the result on success.
func (s *InspectionService) apply(op func(domain.InspectionProfile) (domain.InspectionProfile, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.ErrNoInspection
	}
	next, err := op(*s.current)
	if err != nil {
		return err
	}
	s.current = &next
	return nil
}

// assignSectionIDs fills in missing section and item identifiers and
// normalises statuses.
func (s *InspectionService) assignSectionIDs(section *domain.ChecklistSection) {
	if section.ID == "" {
		section.ID = s.ids.NewID()
	}
	for i := range section.Items {
		if section.Items[i].ID == "" {
			section.Items[i].ID = s.ids.NewID()
		}
		if section.Items[i].Status == "" {
			section.Items[i].Status = domain.ItemStatusUntouched
		}
	}
	section.Status = domain.DeriveSectionStatus(section.Items)
}
