package driving

import (
	"context"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

// GenerationService drafts checklist content and analyses photos with an LLM.
// Responses that cannot be parsed degrade to empty or default results.
type GenerationService interface {
	// Available reports whether an LLM is configured.
	Available() bool

	// GenerateChecklist drafts sections for a property.
	// Falls back to domain.DefaultChecklist when the response is unusable.
	GenerateChecklist(ctx context.Context, profile domain.InspectionProfile) ([]domain.ChecklistSection, error)

	// GenerateSection drafts one additional section on a topic.
	// Returns nil when the response is unusable.
	GenerateSection(ctx context.Context, profile domain.InspectionProfile, topic string) (*domain.ChecklistSection, error)

	// SuggestItems proposes extra items for a section.
	SuggestItems(ctx context.Context, section domain.ChecklistSection) ([]domain.ChecklistItem, error)

	// AnalyzePhoto describes what a photo shows about an item.
	AnalyzePhoto(ctx context.Context, req PhotoAnalysisRequest) (string, error)
}

// PhotoAnalysisRequest is a photo together with the checklist line it documents.
type PhotoAnalysisRequest struct {
	SectionTitle string
	ItemLabel    string
	MediaType    string
	Data         []byte
}
