package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

// ReportInput names a saved report.
type ReportInput struct {
	Key           string `json:"key" jsonschema:"the report's primary key or short key"`
	IncludeHidden bool   `json:"include_hidden,omitempty" jsonschema:"include items hidden as not applicable"`
}

// ItemStatusInput is the input schema for the set_item_status tool.
type ItemStatusInput struct {
	Key     string `json:"key" jsonschema:"the report's primary key or short key"`
	Section string `json:"section" jsonschema:"section id or title"`
	Item    string `json:"item" jsonschema:"item id or label"`
	Status  string `json:"status" jsonschema:"one of untouched, pass, info, attention, moderate, dangerous"`
}

// ItemNotesInput is the input schema for the set_item_notes tool.
type ItemNotesInput struct {
	Key     string `json:"key" jsonschema:"the report's primary key or short key"`
	Section string `json:"section" jsonschema:"section id or title"`
	Item    string `json:"item" jsonschema:"item id or label"`
	Notes   string `json:"notes" jsonschema:"replacement notes for the item"`
}

// ReportOutput is a report as returned to the assistant.
type ReportOutput struct {
	ID            string               `json:"id"`
	ShortID       string               `json:"short_id,omitempty"`
	Address       string               `json:"address"`
	PropertyType  string               `json:"property_type,omitempty"`
	InspectorName string               `json:"inspector_name,omitempty"`
	Progress      int                  `json:"progress"`
	Summary       domain.SummaryCounts `json:"summary"`
	Sections      []SectionOutput      `json:"sections"`
}

// SectionOutput is one checklist section.
type SectionOutput struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Status string       `json:"status"`
	Hidden int          `json:"hidden,omitempty"`
	Items  []ItemOutput `json:"items"`
}

// ItemOutput is one checklist item.
type ItemOutput struct {
	ID             string   `json:"id"`
	Label          string   `json:"label"`
	Status         string   `json:"status"`
	Notes          string   `json:"notes,omitempty"`
	SelectedOption string   `json:"selected_option,omitempty"`
	Options        []string `json:"options,omitempty"`
	Photos         int      `json:"photos,omitempty"`
	Hidden         bool     `json:"hidden,omitempty"`
}

// ProgressOutput is the output schema for report_progress and the edit tools.
type ProgressOutput struct {
	Key      string               `json:"key"`
	Progress int                  `json:"progress"`
	Summary  domain.SummaryCounts `json:"summary"`
	Remote   bool                 `json:"remote,omitempty"`
	Warnings []string             `json:"warnings,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_report",
		Description: "Get a saved inspection report with its sections and items",
	}, s.handleGetReport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_item_status",
		Description: "Set the status of a checklist item and save the report",
	}, s.handleSetItemStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_item_notes",
		Description: "Replace the notes of a checklist item and save the report",
	}, s.handleSetItemNotes)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "report_progress",
		Description: "Get completion percentage and status counts of a report",
	}, s.handleReportProgress)
}

// handleGetReport handles the get_report tool invocation.
func (s *Server) handleGetReport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReportInput,
) (*mcp.CallToolResult, ReportOutput, error) {
	profile, err := s.load(ctx, input.Key)
	if err != nil {
		return nil, ReportOutput{}, err
	}
	return nil, reportOutput(profile, input.IncludeHidden), nil
}

// handleReportProgress handles the report_progress tool invocation.
func (s *Server) handleReportProgress(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReportInput,
) (*mcp.CallToolResult, ProgressOutput, error) {
	profile, err := s.load(ctx, input.Key)
	if err != nil {
		return nil, ProgressOutput{}, err
	}
	return nil, ProgressOutput{
		Key:      reportKey(profile),
		Progress: profile.Progress(),
		Summary:  profile.Summary(),
	}, nil
}

// handleSetItemStatus handles the set_item_status tool invocation.
func (s *Server) handleSetItemStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ItemStatusInput,
) (*mcp.CallToolResult, ProgressOutput, error) {
	status := domain.ItemStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	if !status.IsValid() {
		return nil, ProgressOutput{}, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, input.Status)
	}
	out, err := s.edit(ctx, input.Key, input.Section, input.Item, func(sectionID, itemID string) error {
		return s.ports.Inspection.SetItemStatus(sectionID, itemID, status)
	})
	return nil, out, err
}

// handleSetItemNotes handles the set_item_notes tool invocation.
func (s *Server) handleSetItemNotes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ItemNotesInput,
) (*mcp.CallToolResult, ProgressOutput, error) {
	out, err := s.edit(ctx, input.Key, input.Section, input.Item, func(sectionID, itemID string) error {
		return s.ports.Inspection.SetItemNotes(sectionID, itemID, input.Notes)
	})
	return nil, out, err
}

// load retrieves a report and turns a miss into domain.ErrNotFound.
func (s *Server) load(ctx context.Context, key string) (*domain.InspectionProfile, error) {
	profile, found, err := s.ports.Report.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading report: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("report %q %w", key, domain.ErrNotFound)
	}
	return profile, nil
}

// edit loads a report into the inspection service, applies apply to the
// resolved item and saves the result.
func (s *Server) edit(
	ctx context.Context,
	key, sectionRef, itemRef string,
	apply func(sectionID, itemID string) error,
) (ProgressOutput, error) {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	profile, err := s.load(ctx, key)
	if err != nil {
		return ProgressOutput{}, err
	}
	sectionID, itemID, err := resolveItem(profile, sectionRef, itemRef)
	if err != nil {
		return ProgressOutput{}, err
	}

	s.ports.Inspection.Hydrate(*profile)
	if err := apply(sectionID, itemID); err != nil {
		return ProgressOutput{}, err
	}
	updated, err := s.ports.Inspection.Current()
	if err != nil {
		return ProgressOutput{}, err
	}
	result, err := s.ports.Report.Save(ctx, *updated)
	if err != nil {
		return ProgressOutput{}, fmt.Errorf("saving report: %w", err)
	}

	return ProgressOutput{
		Key:      result.ShortID,
		Progress: updated.Progress(),
		Summary:  updated.Summary(),
		Remote:   result.Remote,
		Warnings: result.Warnings,
	}, nil
}

// resolveItem finds a section by ID or title and an item by ID or label.
func resolveItem(p *domain.InspectionProfile, sectionRef, itemRef string) (sectionID, itemID string, err error) {
	var section *domain.ChecklistSection
	for i := range p.Sections {
		s := &p.Sections[i]
		if s.ID == sectionRef || strings.EqualFold(s.Title, sectionRef) {
			section = s
			break
		}
	}
	if section == nil {
		return "", "", fmt.Errorf("%w: %s", domain.ErrSectionNotFound, sectionRef)
	}
	for i := range section.Items {
		it := &section.Items[i]
		if it.ID == itemRef || strings.EqualFold(it.Label, itemRef) {
			return section.ID, it.ID, nil
		}
	}
	return "", "", fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemRef)
}

func reportKey(p *domain.InspectionProfile) string {
	if p.ShortID != "" {
		return p.ShortID
	}
	return p.SavedReportID
}

func reportOutput(p *domain.InspectionProfile, includeHidden bool) ReportOutput {
	out := ReportOutput{
		ID:            p.SavedReportID,
		ShortID:       p.ShortID,
		Address:       p.Address,
		PropertyType:  p.PropertyType,
		InspectorName: p.InspectorName,
		Progress:      p.Progress(),
		Summary:       p.Summary(),
		Sections:      make([]SectionOutput, 0, len(p.Sections)),
	}
	for si := range p.Sections {
		s := &p.Sections[si]
		section := SectionOutput{
			ID:     s.ID,
			Title:  s.Title,
			Status: s.Status.String(),
			Items:  []ItemOutput{},
		}
		if !includeHidden {
			section.Hidden = s.HiddenCount()
		}
		for ii := range s.Items {
			it := &s.Items[ii]
			if it.IsHidden && !includeHidden {
				continue
			}
			section.Items = append(section.Items, ItemOutput{
				ID:             it.ID,
				Label:          it.Label,
				Status:         it.Status.String(),
				Notes:          it.Notes,
				SelectedOption: it.SelectedOption,
				Options:        it.Options,
				Photos:         len(it.Photos),
				Hidden:         it.IsHidden,
			})
		}
		out.Sections = append(out.Sections, section)
	}
	return out
}
