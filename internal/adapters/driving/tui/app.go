package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/views/checklist"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/views/newinspection"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/views/reports"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// reportsView lists saved reports.
	reportsView *reports.View

	// newInspectionView collects property details.
	newInspectionView *newinspection.View

	// checklistView walks the open inspection.
	checklistView *checklist.View

	// settingsView is the settings configuration view component.
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// starting is set while a new inspection is being drafted.
	starting bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:             ports,
		ctx:               context.Background(),
		styles:            s,
		menuView:          menu.NewView(s),
		reportsView:       reports.NewView(s, ports.Report),
		newInspectionView: newinspection.NewView(s),
		checklistView:     checklist.NewView(s, ports.Inspection, ports.Report, ports.Generation),
		settingsView:      settings.NewView(s, ports.Settings),
		currentView:       messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.reportsView.WithContext(ctx)
	a.checklistView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("walkthrough - Property Inspection"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.reportsView.SetDimensions(msg.Width, msg.Height)
		a.newInspectionView.SetDimensions(msg.Width, msg.Height)
		a.checklistView.SetDimensions(msg.Width, msg.Height)
		a.settingsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Forward key messages to active view
		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewReports:
			a.reportsView, cmd = a.reportsView.Update(msg)
			return a, cmd

		case messages.ViewNewInspection:
			if a.starting {
				return a, nil
			}
			a.newInspectionView, cmd = a.newInspectionView.Update(msg)
			return a, cmd

		case messages.ViewChecklist:
			a.checklistView, cmd = a.checklistView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil

		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
			return a, cmd
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		a.err = nil
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewReports:
			a.applySettings()
			return a, a.reportsView.Init()
		case messages.ViewNewInspection:
			a.applySettings()
			a.newInspectionView.Reset()
			return a, a.newInspectionView.Init()
		case messages.ViewChecklist:
			return a, a.checklistView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.ReportsLoaded:
		a.reportsView, cmd = a.reportsView.Update(msg)
		return a, cmd

	case messages.ReportSelected:
		return a, a.openReport(msg.Key)

	case messages.ReportOpened:
		switch {
		case msg.Err != nil:
			a.err = fmt.Errorf("open %s: %w", msg.Key, msg.Err)
			return a, nil
		case !msg.Found:
			a.err = fmt.Errorf("report %s not found", msg.Key)
			return a, nil
		}
		a.ports.Inspection.Hydrate(*msg.Profile)
		return a, a.enterChecklist()

	case messages.InspectionRequested:
		a.starting = true
		a.err = nil
		return a, a.draftChecklist(msg.Profile)

	case messages.ChecklistGenerated:
		sections := msg.Sections
		if msg.Err != nil || len(sections) == 0 {
			if msg.Err != nil {
				logger.Warn("checklist generation failed, using the built-in checklist: %v", msg.Err)
			}
			sections = builtinChecklist()
		}
		profile := msg.Profile
		profile.Sections = sections
		return a, a.startInspection(profile)

	case messages.InspectionStarted:
		a.starting = false
		if msg.Err != nil {
			a.err = fmt.Errorf("start inspection: %w", msg.Err)
			return a, nil
		}
		return a, a.enterChecklist()

	case messages.ReportSaved, messages.SectionGenerated:
		a.checklistView, cmd = a.checklistView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit

	case messages.SettingsLoaded, messages.SettingsSaved:
		// Forward to settings view
		if a.currentView == messages.ViewSettings {
			a.settingsView, cmd = a.settingsView.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewReports:
		a.reportsView, cmd = a.reportsView.Update(msg)
	case messages.ViewNewInspection:
		a.newInspectionView, cmd = a.newInspectionView.Update(msg)
	case messages.ViewChecklist:
		a.checklistView, cmd = a.checklistView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// applySettings pushes user preferences into the views that use them.
func (a *App) applySettings() {
	if a.ports.Settings == nil {
		return
	}
	s, err := a.ports.Settings.Get()
	if err != nil {
		logger.Warn("failed to load settings: %v", err)
		return
	}
	a.newInspectionView.SetInspector(s.InspectorName)
	a.reportsView.SetShareParam(s.Share.Param)
}

// enterChecklist switches to the checklist of the inspection just opened.
func (a *App) enterChecklist() tea.Cmd {
	a.menuView.SetResumable(true)
	a.currentView = messages.ViewChecklist
	return a.checklistView.Init()
}

// openReport loads a saved report by either key.
func (a *App) openReport(key string) tea.Cmd {
	ctx := a.ctx
	report := a.ports.Report
	return func() tea.Msg {
		profile, found, err := report.Load(ctx, key)
		return messages.ReportOpened{Key: key, Profile: profile, Found: found, Err: err}
	}
}

// draftChecklist asks the LLM for sections when one is configured.
func (a *App) draftChecklist(profile domain.InspectionProfile) tea.Cmd {
	if !a.ports.generationAvailable() {
		return func() tea.Msg {
			return messages.ChecklistGenerated{Profile: profile, Sections: builtinChecklist()}
		}
	}
	ctx := a.ctx
	generation := a.ports.Generation
	return func() tea.Msg {
		sections, err := generation.GenerateChecklist(ctx, profile)
		return messages.ChecklistGenerated{Profile: profile, Sections: sections, Err: err}
	}
}

// startInspection hands the drafted profile to the inspection service.
func (a *App) startInspection(profile domain.InspectionProfile) tea.Cmd {
	inspection := a.ports.Inspection
	return func() tea.Msg {
		started, err := inspection.Start(profile)
		return messages.InspectionStarted{Profile: started, Err: err}
	}
}

// builtinChecklist returns the default sections. Identifiers are assigned
// when the inspection starts.
func builtinChecklist() []domain.ChecklistSection {
	return domain.DefaultChecklist(func() string { return "" })
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var out string
	switch a.currentView {
	case messages.ViewMenu:
		out = a.menuView.View()
	case messages.ViewReports:
		out = a.reportsView.View()
	case messages.ViewNewInspection:
		out = a.newInspectionView.View()
		if a.starting {
			out += "\n\n" + a.styles.Muted.Render("Drafting checklist...")
		}
	case messages.ViewChecklist:
		out = a.checklistView.View()
	case messages.ViewSettings:
		out = a.settingsView.View()
	case messages.ViewHelp:
		out = a.viewHelp()
	default:
		out = a.menuView.View()
	}

	if a.err != nil {
		out += "\n\n" + a.styles.Error.Render("Error: "+a.err.Error())
	}
	return out
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Checklist:
  j/k, ↑/↓    Move between items
  tab/⇧tab    Next/previous section
  p i a m d   Pass, info, attention, moderate, dangerous
  u           Reset status
  o           Cycle option
  n, enter    Edit notes
  x           Hide or restore item
  H           Show hidden items
  R           Restore all hidden items in section
  +           Draft a new section (LLM)
  s           Save report

Saved reports:
  j/k, ↑/↓    Navigate reports
  enter       Open report
  /           Open by short key or share link
  r           Refresh

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// Starting reports whether a new inspection is being drafted.
func (a *App) Starting() bool {
	return a.starting
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.reportsView.SetDimensions(width, height)
	a.newInspectionView.SetDimensions(width, height)
	a.checklistView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
