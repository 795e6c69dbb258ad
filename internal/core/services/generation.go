package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driven"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driving"
	"github.com/custodia-labs/walkthrough/internal/logger"
)

// Ensure GenerationService implements the interface.
var _ driving.GenerationService = (*GenerationService)(nil)

const (
	// DefaultGenerationInterval is the sustained spacing between LLM requests.
	DefaultGenerationInterval = 500 * time.Millisecond

	// DefaultGenerationBurst is how many LLM requests may be made back to back.
	DefaultGenerationBurst = 3

	checklistMaxTokens = 4096
	sectionMaxTokens   = 1024
	suggestMaxTokens   = 512
	photoMaxTokens     = 300
)

// GenerationService drafts checklist content with an LLM. Requests are
// throttled so a burst of UI actions cannot flood the provider.
type GenerationService struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	ids     driven.IDGenerator
	limiter *rate.Limiter
}

// NewGenerationService creates a new generation service.
// llm may be nil, in which case every generation call returns domain.ErrLLMUnavailable.
func NewGenerationService(llm driven.LLMService, prompts driven.PromptStore, ids driven.IDGenerator) *GenerationService {
	return &GenerationService{
		llm:     llm,
		prompts: prompts,
		ids:     ids,
		limiter: rate.NewLimiter(rate.Every(DefaultGenerationInterval), DefaultGenerationBurst),
	}
}

// SetRateLimit replaces the request throttle.
func (s *GenerationService) SetRateLimit(interval time.Duration, burst int) {
	s.limiter = rate.NewLimiter(rate.Every(interval), burst)
}

// Available reports whether an LLM is configured.
func (s *GenerationService) Available() bool {
	return s.llm != nil
}

// GenerateChecklist drafts the sections of a new inspection.
func (s *GenerationService) GenerateChecklist(
	ctx context.Context,
	profile domain.InspectionProfile,
) ([]domain.ChecklistSection, error) {
	raw, err := s.generate(ctx, driven.PromptChecklist, driven.GenerateOptions{
		MaxTokens:   checklistMaxTokens,
		Temperature: 0.2,
		JSON:        true,
	}, DescribeProperty(profile))
	if err != nil {
		return nil, err
	}

	drafts := parseSections(raw)
	if len(drafts) == 0 {
		logger.Warn("checklist response could not be parsed, using the built-in checklist")
		return domain.DefaultChecklist(s.ids.NewID), nil
	}
	sections := make([]domain.ChecklistSection, 0, len(drafts))
	for i := range drafts {
		sections = append(sections, s.toSection(drafts[i]))
	}
	return sections, nil
}

// GenerateSection drafts one section about topic.
func (s *GenerationService) GenerateSection(
	ctx context.Context,
	profile domain.InspectionProfile,
	topic string,
) (*domain.ChecklistSection, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: empty section topic", domain.ErrInvalidInput)
	}
	raw, err := s.generate(ctx, driven.PromptSection, driven.GenerateOptions{
		MaxTokens:   sectionMaxTokens,
		Temperature: 0.3,
		JSON:        true,
	}, DescribeProperty(profile), topic)
	if err != nil {
		return nil, err
	}

	drafts := parseSections(raw)
	if len(drafts) == 0 {
		logger.Debug("section response could not be parsed: %q", raw)
		return nil, nil
	}
	section := s.toSection(drafts[0])
	return &section, nil
}

// SuggestItems proposes extra items for a section. Labels the section already
// has are dropped.
func (s *GenerationService) SuggestItems(
	ctx context.Context,
	section domain.ChecklistSection,
) ([]domain.ChecklistItem, error) {
	var existing strings.Builder
	seen := make(map[string]bool, len(section.Items))
	for i := range section.Items {
		fmt.Fprintf(&existing, "- %s\n", section.Items[i].Label)
		seen[strings.ToLower(section.Items[i].Label)] = true
	}

	raw, err := s.generate(ctx, driven.PromptSuggestItems, driven.GenerateOptions{
		MaxTokens:   suggestMaxTokens,
		Temperature: 0.4,
	}, section.Title, existing.String())
	if err != nil {
		return nil, err
	}

	var items []domain.ChecklistItem
	for _, draft := range parseItems(raw) {
		key := strings.ToLower(draft.Label)
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, s.toItem(draft))
	}
	return items, nil
}

// AnalyzePhoto describes what a photo shows about an item.
func (s *GenerationService) AnalyzePhoto(ctx context.Context, req driving.PhotoAnalysisRequest) (string, error) {
	if len(req.Data) == 0 {
		return "", fmt.Errorf("%w: empty photo", domain.ErrInvalidInput)
	}
	mediaType := req.MediaType
	if mediaType == "" {
		mediaType = http.DetectContentType(req.Data)
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("%w: unsupported photo type %s", domain.ErrInvalidInput, mediaType)
	}

	raw, err := s.generate(ctx, driven.PromptPhotoAnalysis, driven.GenerateOptions{
		MaxTokens:   photoMaxTokens,
		Temperature: 0.2,
		Images:      []driven.Image{{MediaType: mediaType, Data: req.Data}},
	}, req.SectionTitle, req.ItemLabel)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(stripFences(raw)), nil
}

// generate fills a prompt template and calls the LLM once the throttle allows.
func (s *GenerationService) generate(
	ctx context.Context,
	promptName string,
	opts driven.GenerateOptions,
	args ...any,
) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}
	tmpl, err := s.prompts.Load(promptName)
	if err != nil {
		return "", fmt.Errorf("load %s prompt: %w", promptName, err)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	logger.Debug("generation: %s via %s", promptName, s.llm.ModelName())
	raw, err := s.llm.Generate(ctx, fmt.Sprintf(tmpl, args...), opts)
	if err != nil {
		return "", fmt.Errorf("%s: %w", promptName, err)
	}
	return raw, nil
}

func (s *GenerationService) toSection(draft draftSection) domain.ChecklistSection {
	section := domain.ChecklistSection{
		ID:          s.ids.NewID(),
		Title:       strings.TrimSpace(draft.Title),
		Description: strings.TrimSpace(draft.Description),
		IconName:    strings.TrimSpace(draft.Icon),
		Items:       make([]domain.ChecklistItem, 0, len(draft.Items)),
	}
	for _, d := range draft.Items {
		if strings.TrimSpace(d.Label) == "" {
			continue
		}
		section.Items = append(section.Items, s.toItem(d))
	}
	section.Status = domain.DeriveSectionStatus(section.Items)
	return section
}

func (s *GenerationService) toItem(draft draftItem) domain.ChecklistItem {
	return domain.ChecklistItem{
		ID:      s.ids.NewID(),
		Label:   strings.TrimSpace(draft.Label),
		Status:  domain.ItemStatusUntouched,
		Options: draft.Options,
	}
}

// DescribeProperty renders the property fields of a profile as prompt input.
func DescribeProperty(p domain.InspectionProfile) string {
	var b strings.Builder
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}
	number := func(label string, value int) {
		if value > 0 {
			line(label, strconv.Itoa(value))
		}
	}

	line("Address", p.Address)
	line("Property type", p.PropertyType)
	number("Floors", p.Floors)
	number("Bedrooms", p.Bedrooms)
	number("Bathrooms", p.Baths)
	number("Square feet", p.SquareFeet)
	number("Year built", p.YearBuilt)
	line("Weather", p.Weather)
	line("Gas", p.GasType)
	line("Sewer", p.SewerType)
	line("Water", p.WaterType)
	line("Electric panel", p.ElectricPanel)
	line("Generator", p.Generator)

	if b.Len() == 0 {
		return "No property details were provided."
	}
	return strings.TrimRight(b.String(), "\n")
}

// draftSection is a section as an LLM returns it.
type draftSection struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Items       []draftItem `json:"items"`
}

// draftItem is an item as an LLM returns it: either a bare label or an object.
type draftItem struct {
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

func (d *draftItem) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &d.Label)
	}
	type plain draftItem
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*d = draftItem(p)
	return nil
}

// parseSections accepts an array of sections, a single section object or an
// object wrapping a "sections" array. Sections without a title are dropped.
func parseSections(raw string) []draftSection {
	body := extractJSON(raw)
	if body == "" {
		return nil
	}

	var drafts []draftSection
	if body[0] == '[' {
		if err := json.Unmarshal([]byte(body), &drafts); err != nil {
			logger.Debug("parse sections: %v", err)
			return nil
		}
	} else {
		var wrapper struct {
			Sections []draftSection `json:"sections"`
		}
		if err := json.Unmarshal([]byte(body), &wrapper); err == nil && len(wrapper.Sections) > 0 {
			drafts = wrapper.Sections
		} else {
			var single draftSection
			if err := json.Unmarshal([]byte(body), &single); err != nil {
				logger.Debug("parse section: %v", err)
				return nil
			}
			drafts = []draftSection{single}
		}
	}

	out := drafts[:0]
	for i := range drafts {
		if strings.TrimSpace(drafts[i].Title) != "" {
			out = append(out, drafts[i])
		}
	}
	return out
}

// parseItems accepts a JSON array of labels or item objects, an object
// wrapping an "items" array, or free text with one item per line.
func parseItems(raw string) []draftItem {
	var (
		drafts []draftItem
		parsed bool
	)
	body := extractJSON(raw)
	switch {
	case body != "" && body[0] == '[':
		parsed = json.Unmarshal([]byte(body), &drafts) == nil
	case body != "" && body[0] == '{':
		var wrapper struct {
			Items []draftItem `json:"items"`
		}
		if err := json.Unmarshal([]byte(body), &wrapper); err == nil {
			drafts, parsed = wrapper.Items, true
		}
	}
	if !parsed {
		drafts = parseLines(stripFences(raw))
	}

	out := drafts[:0]
	for _, d := range drafts {
		d.Label = strings.TrimSpace(d.Label)
		if d.Label != "" {
			out = append(out, d)
		}
	}
	return out
}

// parseLines reads one item per line, dropping list markers.
func parseLines(text string) []draftItem {
	var items []draftItem
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•")
		line = trimNumbering(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		items = append(items, draftItem{Label: line})
	}
	return items
}

// trimNumbering removes a leading "1." or "1)" list marker.
func trimNumbering(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return strings.TrimSpace(line[i+1:])
	}
	return line
}

// stripFences removes a surrounding markdown code fence.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = ""
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

// extractJSON returns the outermost JSON array or object in raw, or "" when
// there is none.
func extractJSON(raw string) string {
	s := stripFences(raw)
	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return ""
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return ""
	}
	return s[start : end+1]
}
