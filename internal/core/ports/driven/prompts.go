package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptChecklist drafts a full checklist for a property.
	// The template expects a %s placeholder for the property description.
	PromptChecklist = "checklist"

	// PromptSection drafts one additional section.
	// The template expects %s (property description) and %s (topic) placeholders.
	PromptSection = "section"

	// PromptSuggestItems proposes extra items for an existing section.
	// The template expects %s (section title) and %s (existing item labels) placeholders.
	PromptSuggestItems = "suggest_items"

	// PromptPhotoAnalysis describes defects visible in an inspection photo.
	// The template expects %s (section title) and %s (item label) placeholders.
	PromptPhotoAnalysis = "photo_analysis"
)
