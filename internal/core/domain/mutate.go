package domain

import "fmt"

// NotesMode selects how SetItemNotes writes to an item's notes.
type NotesMode int

const (
	// NotesReplace overwrites the notes. Used for user input.
	NotesReplace NotesMode = iota

	// NotesAppendAnalysis appends a machine-generated line prefixed with "AI Note: ".
	NotesAppendAnalysis
)

// analysisPrefix marks appended machine-generated notes.
const analysisPrefix = "AI Note: "

// The operations below never modify the receiver. Each returns a new profile;
// on a missing section or item the receiver is returned unchanged together with
// ErrSectionNotFound or ErrItemNotFound.

// SetItemStatus sets an item's status and recomputes the containing section's status.
func (p InspectionProfile) SetItemStatus(sectionID, itemID string, status ItemStatus) (InspectionProfile, error) {
	if !status.IsValid() {
		return p, fmt.Errorf("%w: item status %q", ErrInvalidInput, status)
	}
	return p.updateItem(sectionID, itemID, func(it *ChecklistItem) {
		it.Status = status
	})
}

// SetItemOption sets the selected option. Membership in Options is not checked.
func (p InspectionProfile) SetItemOption(sectionID, itemID, option string) (InspectionProfile, error) {
	return p.updateItem(sectionID, itemID, func(it *ChecklistItem) {
		it.SelectedOption = option
	})
}

// SetItemNotes writes an item's notes using the given mode.
func (p InspectionProfile) SetItemNotes(sectionID, itemID, text string, mode NotesMode) (InspectionProfile, error) {
	return p.updateItem(sectionID, itemID, func(it *ChecklistItem) {
		if mode == NotesAppendAnalysis {
			it.Notes = AppendAnalysisNote(it.Notes, text)
			return
		}
		it.Notes = text
	})
}

// AppendAnalysisNote returns prior notes followed by a new "AI Note:" line,
// or just text when there are no prior notes.
func AppendAnalysisNote(prior, text string) string {
	if prior == "" {
		return text
	}
	return prior + "\n" + analysisPrefix + text
}

// SetItemVisibility hides or restores an item. Status, notes and photos are kept.
func (p InspectionProfile) SetItemVisibility(sectionID, itemID string, hidden bool) (InspectionProfile, error) {
	return p.updateItem(sectionID, itemID, func(it *ChecklistItem) {
		it.IsHidden = hidden
	})
}

// ShowAllHidden restores every hidden item in one section.
func (p InspectionProfile) ShowAllHidden(sectionID string) (InspectionProfile, error) {
	return p.updateSection(sectionID, func(s *ChecklistSection) error {
		for i := range s.Items {
			s.Items[i].IsHidden = false
		}
		return nil
	})
}

// AddPhoto appends image to an item's photos. With an empty itemID it replaces
// the section's cover photo instead.
func (p InspectionProfile) AddPhoto(sectionID, itemID, image string) (InspectionProfile, error) {
	if itemID == "" {
		return p.updateSection(sectionID, func(s *ChecklistSection) error {
			s.PhotoURL = image
			return nil
		})
	}
	return p.updateItem(sectionID, itemID, func(it *ChecklistItem) {
		it.Photos = append(it.Photos, image)
	})
}

// RemovePhoto removes an item photo by position. An out-of-range index is a no-op.
func (p InspectionProfile) RemovePhoto(sectionID, itemID string, index int) (InspectionProfile, error) {
	return p.updateItem(sectionID, itemID, func(it *ChecklistItem) {
		if index < 0 || index >= len(it.Photos) {
			return
		}
		it.Photos = append(it.Photos[:index], it.Photos[index+1:]...)
	})
}

// AppendSection adds a section at the end. The caller assigns identifiers.
func (p InspectionProfile) AppendSection(section ChecklistSection) InspectionProfile {
	out := p.Clone()
	section = section.clone()
	for i := range section.Items {
		if section.Items[i].Status == "" {
			section.Items[i].Status = ItemStatusUntouched
		}
	}
	section.Status = DeriveSectionStatus(section.Items)
	out.Sections = append(out.Sections, section)
	return out
}

// AppendItems adds items at the end of a section. The caller assigns identifiers.
func (p InspectionProfile) AppendItems(sectionID string, items []ChecklistItem) (InspectionProfile, error) {
	return p.updateSection(sectionID, func(s *ChecklistSection) error {
		for _, it := range items {
			it = it.clone()
			if it.Status == "" {
				it.Status = ItemStatusUntouched
			}
			s.Items = append(s.Items, it)
		}
		return nil
	})
}

// updateSection applies fn to a copy of the section and re-derives its status.
func (p InspectionProfile) updateSection(sectionID string, fn func(*ChecklistSection) error) (InspectionProfile, error) {
	if _, ok := p.Section(sectionID); !ok {
		return p, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}
	out := p.Clone()
	section, _ := out.Section(sectionID)
	if err := fn(section); err != nil {
		return p, err
	}
	section.Status = DeriveSectionStatus(section.Items)
	return out, nil
}

// updateItem applies fn to a copy of the item and re-derives its section's status.
func (p InspectionProfile) updateItem(sectionID, itemID string, fn func(*ChecklistItem)) (InspectionProfile, error) {
	return p.updateSection(sectionID, func(s *ChecklistSection) error {
		for i := range s.Items {
			if s.Items[i].ID == itemID {
				fn(&s.Items[i])
				return nil
			}
		}
		return fmt.Errorf("%w: %s/%s", ErrItemNotFound, sectionID, itemID)
	})
}
