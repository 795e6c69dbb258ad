// Package checklist provides the view for walking the current inspection.
package checklist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driving"
)

// mode is what the keyboard is currently driving.
type mode int

const (
	modeBrowse mode = iota
	modeNotes
	modeTopic
)

// View walks the sections and items of the current inspection.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	inspection driving.InspectionService
	report     driving.ReportService
	generation driving.GenerationService
	ctx        context.Context

	profile    *domain.InspectionProfile
	section    int
	items      *list.ItemList
	notes      *input.Field
	topic      *input.Field
	statusBar  *status.Bar
	mode       mode
	saving     bool
	generating bool

	width  int
	height int
}

// NewView creates a new checklist view. generation may be nil.
func NewView(
	s *styles.Styles,
	inspection driving.InspectionService,
	report driving.ReportService,
	generation driving.GenerationService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	return &View{
		styles:     s,
		keymap:     km,
		inspection: inspection,
		report:     report,
		generation: generation,
		ctx:        context.Background(),
		items:      list.NewItemList(s),
		notes:      input.NewField(s, "Notes", "observations for this item"),
		topic:      input.NewField(s, "New section", "e.g. Pool and spa"),
		statusBar:  status.NewBar(s, km),
		width:      80,
		height:     24,
	}
}

// WithContext sets the context used for saves and generation.
func (v *View) WithContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the current inspection from the inspection service.
func (v *View) Init() tea.Cmd {
	v.mode = modeBrowse
	v.section = 0
	v.items.Reset()
	v.statusBar.Clear()
	v.refresh()
	return nil
}

// refresh re-reads the inspection snapshot and rebuilds the item list.
func (v *View) refresh() {
	current, err := v.inspection.Current()
	if err != nil {
		v.profile = nil
		v.items.SetItems(nil)
		v.fail(err)
		return
	}
	v.profile = current
	if v.section >= len(current.Sections) {
		v.section = len(current.Sections) - 1
	}
	if v.section < 0 {
		v.section = 0
	}
	if s := v.currentSection(); s != nil {
		v.items.SetItems(s.Items)
	} else {
		v.items.SetItems(nil)
	}
	v.statusBar.SetProgress(current.Progress())
}

func (v *View) currentSection() *domain.ChecklistSection {
	if v.profile == nil || v.section >= len(v.profile.Sections) {
		return nil
	}
	return &v.profile.Sections[v.section]
}

func (v *View) fail(err error) {
	v.statusBar.SetState(status.StateError)
	v.statusBar.SetMessage(err.Error())
}

func (v *View) notice(state status.State, msg string) {
	v.statusBar.SetState(state)
	v.statusBar.SetMessage(msg)
}

// Update handles messages for the checklist view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ReportSaved:
		v.saving = false
		v.handleSaved(msg)
		return v, nil

	case messages.SectionGenerated:
		v.generating = false
		v.handleSectionGenerated(msg)
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case modeNotes:
			return v.handleNotesKeys(msg)
		case modeTopic:
			return v.handleTopicKeys(msg)
		default:
			return v.handleBrowseKeys(msg)
		}
	}
	return v, nil
}

//nolint:gocyclo // one branch per binding
func (v *View) handleBrowseKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case keymap.Matches(k, v.keymap.Up), keymap.Matches(k, v.keymap.Down):
		v.items, _ = v.items.Update(msg)
		return v, nil
	case keymap.Matches(k, v.keymap.NextSection):
		v.moveSection(1)
		return v, nil
	case keymap.Matches(k, v.keymap.PrevSection):
		v.moveSection(-1)
		return v, nil
	case keymap.Matches(k, v.keymap.Save):
		return v, v.save()
	case keymap.Matches(k, v.keymap.ToggleHidden):
		v.items.SetShowHidden(!v.items.ShowHidden())
		return v, nil
	case keymap.Matches(k, v.keymap.ShowAllHidden):
		if s := v.currentSection(); s != nil {
			v.apply(v.inspection.ShowAllHidden(s.ID))
		}
		return v, nil
	case keymap.Matches(k, v.keymap.AddSection):
		if v.generation == nil || !v.generation.Available() {
			v.fail(domain.ErrLLMUnavailable)
			return v, nil
		}
		v.mode = modeTopic
		v.topic.Reset()
		v.notice(status.StateEditing, "New section topic")
		return v, v.topic.Focus()
	}

	s, item := v.currentSection(), v.items.SelectedItem()
	if s == nil || item == nil {
		return v, nil
	}

	if st, ok := v.keymap.StatusFor(k); ok {
		v.apply(v.inspection.SetItemStatus(s.ID, item.ID, st))
		if st.IsAnswered() {
			v.items.MoveDown()
		}
		return v, nil
	}

	switch {
	case keymap.Matches(k, v.keymap.Notes), keymap.Matches(k, v.keymap.Select):
		v.mode = modeNotes
		v.notes.SetValue(item.Notes)
		v.notice(status.StateEditing, "Editing notes for "+item.Label)
		return v, v.notes.Focus()
	case keymap.Matches(k, v.keymap.Hide):
		v.apply(v.inspection.SetItemVisibility(s.ID, item.ID, !item.IsHidden))
	case keymap.Matches(k, v.keymap.CycleOption):
		if next, ok := nextOption(item); ok {
			v.apply(v.inspection.SetItemOption(s.ID, item.ID, next))
		}
	}
	return v, nil
}

// nextOption returns the option after the selected one, wrapping around.
func nextOption(item *domain.ChecklistItem) (string, bool) {
	if len(item.Options) == 0 {
		return "", false
	}
	for i, o := range item.Options {
		if o == item.SelectedOption {
			return item.Options[(i+1)%len(item.Options)], true
		}
	}
	return item.Options[0], true
}

func (v *View) handleNotesKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.closeInput(v.notes)
		return v, nil
	case "enter":
		s, item := v.currentSection(), v.items.SelectedItem()
		text := v.notes.Value()
		v.closeInput(v.notes)
		if s != nil && item != nil {
			v.apply(v.inspection.SetItemNotes(s.ID, item.ID, text))
		}
		return v, nil
	}
	var cmd tea.Cmd
	v.notes, cmd = v.notes.Update(msg)
	return v, cmd
}

func (v *View) handleTopicKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.closeInput(v.topic)
		return v, nil
	case "enter":
		topic := strings.TrimSpace(v.topic.Value())
		v.closeInput(v.topic)
		if topic == "" || v.profile == nil {
			return v, nil
		}
		return v, v.generateSection(*v.profile, topic)
	}
	var cmd tea.Cmd
	v.topic, cmd = v.topic.Update(msg)
	return v, cmd
}

func (v *View) closeInput(f *input.Field) {
	f.Blur()
	f.Reset()
	v.mode = modeBrowse
	v.statusBar.SetState(status.StateReady)
	v.statusBar.SetMessage("")
}

// apply refreshes after a mutation and surfaces its error.
func (v *View) apply(err error) {
	v.refresh()
	if err != nil {
		v.fail(err)
	}
}

func (v *View) moveSection(delta int) {
	if v.profile == nil {
		return
	}
	next := v.section + delta
	if next < 0 || next >= len(v.profile.Sections) {
		return
	}
	v.section = next
	v.items.Reset()
	v.refresh()
}

func (v *View) save() tea.Cmd {
	if v.saving || v.profile == nil {
		return nil
	}
	if v.report == nil {
		v.fail(errors.New("report service not available"))
		return nil
	}
	v.saving = true
	v.notice(status.StateSaving, "")
	profile := *v.profile
	ctx := v.ctx
	report := v.report
	return func() tea.Msg {
		result, err := report.Save(ctx, profile)
		return messages.ReportSaved{Result: result, Err: err}
	}
}

func (v *View) handleSaved(msg messages.ReportSaved) {
	if msg.Err != nil {
		v.fail(fmt.Errorf("save failed: %w", msg.Err))
		return
	}
	if msg.Result == nil {
		return
	}

	// Keep the keys so later saves update the same report.
	if current, err := v.inspection.Current(); err == nil {
		current.SavedReportID = msg.Result.ID
		current.ShortID = msg.Result.ShortID
		v.inspection.Hydrate(*current)
	}
	v.refresh()

	where := "this device"
	if msg.Result.Remote {
		where = "the remote store"
	}
	text := fmt.Sprintf("Saved to %s as %s", where, msg.Result.ShortID)
	if len(msg.Result.Warnings) > 0 {
		v.notice(status.StateWarning, text+" ("+strings.Join(msg.Result.Warnings, "; ")+")")
		return
	}
	v.notice(status.StateSaved, text)
}

func (v *View) generateSection(profile domain.InspectionProfile, topic string) tea.Cmd {
	v.generating = true
	v.notice(status.StateGenerating, "")
	ctx := v.ctx
	gen := v.generation
	return func() tea.Msg {
		section, err := gen.GenerateSection(ctx, profile, topic)
		return messages.SectionGenerated{Section: section, Err: err}
	}
}

func (v *View) handleSectionGenerated(msg messages.SectionGenerated) {
	if msg.Err != nil {
		v.fail(msg.Err)
		return
	}
	if msg.Section == nil {
		v.notice(status.StateWarning, "The response could not be used as a section")
		return
	}
	added, err := v.inspection.AppendSection(*msg.Section)
	if err != nil {
		v.fail(err)
		return
	}
	v.refresh()
	if v.profile != nil {
		v.section = len(v.profile.Sections) - 1
		v.items.Reset()
		v.refresh()
	}
	v.notice(status.StateReady, fmt.Sprintf("Added %q", added.Title))
}

// View renders the checklist.
func (v *View) View() string {
	var b strings.Builder

	if v.profile == nil {
		b.WriteString(v.styles.Title.Render("Inspection"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("No inspection is open. Start one from the menu."))
		b.WriteString("\n\n")
		b.WriteString(v.statusBar.View())
		return b.String()
	}

	header := v.profile.Address
	if v.profile.ShortID != "" {
		header += "  " + v.styles.Muted.Render("#"+v.profile.ShortID)
	}
	b.WriteString(v.styles.Title.Render("Inspection: ") + v.styles.Normal.Render(header))
	b.WriteString("\n\n")
	b.WriteString(v.renderTabs())
	b.WriteString("\n\n")

	if s := v.currentSection(); s != nil {
		sum := s.Summary()
		line := fmt.Sprintf("%s  %d items · %d passed · %d issues · %d info · %d remaining",
			s.Title, sum.Total, sum.Passed, sum.Issues, sum.Info, sum.Remaining)
		if hidden := s.HiddenCount(); hidden > 0 {
			line += fmt.Sprintf(" · %d hidden", hidden)
		}
		b.WriteString(v.styles.Subtitle.Render(line))
		b.WriteString("\n")
		if s.Description != "" {
			b.WriteString(v.styles.Muted.Render(s.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(v.items.View())
	} else {
		b.WriteString(v.styles.Muted.Render("This inspection has no sections."))
	}
	b.WriteString("\n\n")

	switch v.mode {
	case modeNotes:
		b.WriteString(v.notes.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] save notes  [esc] cancel"))
		b.WriteString("\n")
	case modeTopic:
		b.WriteString(v.topic.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] draft section  [esc] cancel"))
		b.WriteString("\n")
	}

	b.WriteString(v.statusBar.View())
	return b.String()
}

func (v *View) renderTabs() string {
	tabs := make([]string, 0, len(v.profile.Sections))
	for i := range v.profile.Sections {
		s := &v.profile.Sections[i]
		if i == v.section {
			tabs = append(tabs, v.styles.ActiveTab.Render(s.Title))
			continue
		}
		tabs = append(tabs, v.styles.SectionStatus(s.Status).Render(s.Title))
	}
	return strings.Join(tabs, v.styles.Muted.Render(" | "))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.items.SetDimensions(width, height-12)
	v.notes.SetWidth(width - 4)
	v.topic.SetWidth(width - 4)
	v.statusBar.SetWidth(width)
}

// Profile returns the displayed snapshot.
func (v *View) Profile() *domain.InspectionProfile {
	return v.profile
}

// Section returns the index of the displayed section.
func (v *View) Section() int {
	return v.section
}

// StatusBar exposes the status bar for inspection in tests.
func (v *View) StatusBar() *status.Bar {
	return v.statusBar
}

// Editing reports whether a text input has the keyboard.
func (v *View) Editing() bool {
	return v.mode != modeBrowse
}
