// Package reports provides the saved reports view for the TUI.
package reports

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driving"
)

// View lists reports from the local store and opens them by selection,
// key or shared link.
type View struct {
	styles        *styles.Styles
	reportService driving.ReportService
	ctx           context.Context

	reports    []domain.ReportSummary
	selected   int
	keyInput   *input.Field
	shareParam string
	loading    bool
	err        error

	width  int
	height int
}

// NewView creates a new reports view.
func NewView(s *styles.Styles, reportService driving.ReportService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		reportService: reportService,
		ctx:           context.Background(),
		keyInput:      input.NewField(s, "Open", "report key or shared link"),
		shareParam:    domain.DefaultShareParam,
		width:         80,
		height:        24,
	}
}

// WithContext sets the context used for loading.
func (v *View) WithContext(ctx context.Context) {
	v.ctx = ctx
}

// SetShareParam sets the query parameter read from shared links.
func (v *View) SetShareParam(param string) {
	if param != "" {
		v.shareParam = param
	}
}

// Init loads the report listing.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	v.keyInput.Blur()
	v.keyInput.Reset()
	return v.loadReports()
}

func (v *View) loadReports() tea.Cmd {
	return func() tea.Msg {
		if v.reportService == nil {
			return messages.ReportsLoaded{Err: fmt.Errorf("report service not available")}
		}
		list, err := v.reportService.List(v.ctx)
		return messages.ReportsLoaded{Reports: list, Err: err}
	}
}

// Update handles messages for the reports view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ReportsLoaded:
		v.loading = false
		v.err = msg.Err
		v.reports = msg.Reports
		if v.selected >= len(v.reports) {
			v.selected = 0
		}
		return v, nil

	case tea.KeyMsg:
		if v.keyInput.Focused() {
			return v.handleInputKeys(msg)
		}
		return v.handleListKeys(msg)
	}
	return v, nil
}

func (v *View) handleListKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.reports)-1 {
			v.selected++
		}
	case "r":
		return v, v.Init()
	case "/", "o":
		return v, v.keyInput.Focus()
	case "enter":
		if len(v.reports) == 0 {
			return v, nil
		}
		r := v.reports[v.selected]
		key := r.ShortID
		if key == "" {
			key = r.ID
		}
		return v, selectReport(key)
	}
	return v, nil
}

func (v *View) handleInputKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.keyInput.Blur()
		v.keyInput.Reset()
		return v, nil
	case "enter":
		key, ok := domain.ParseShareURL(v.keyInput.Value(), v.shareParam)
		if !ok {
			v.err = fmt.Errorf("no report key in %q", v.keyInput.Value())
			return v, nil
		}
		v.keyInput.Blur()
		v.keyInput.Reset()
		return v, selectReport(key)
	}
	var cmd tea.Cmd
	v.keyInput, cmd = v.keyInput.Update(msg)
	return v, cmd
}

func selectReport(key string) tea.Cmd {
	return func() tea.Msg { return messages.ReportSelected{Key: key} }
}

// View renders the report listing.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Saved Reports"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case len(v.reports) == 0:
		b.WriteString(v.styles.Muted.Render("No reports saved on this device."))
	default:
		maxRows := v.height - 10
		if maxRows < 1 {
			maxRows = 1
		}
		start := 0
		if v.selected >= maxRows {
			start = v.selected - maxRows + 1
		}
		end := start + maxRows
		if end > len(v.reports) {
			end = len(v.reports)
		}
		for i := start; i < end; i++ {
			b.WriteString(v.renderRow(i, &v.reports[i]))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.keyInput.Focused() {
		b.WriteString(v.keyInput.View())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[enter] open  [esc] cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] open  [/] open by key or link  [r] refresh  [esc] back"))
	}
	return b.String()
}

func (v *View) renderRow(i int, r *domain.ReportSummary) string {
	indicator := "  "
	if i == v.selected {
		indicator = "> "
	}
	address := r.Address
	if address == "" {
		address = "(no address)"
	}
	maxLen := v.width - 34
	if maxLen < 10 {
		maxLen = 10
	}
	if len(address) > maxLen {
		address = address[:maxLen-3] + "..."
	}
	line := fmt.Sprintf("%s%-*s %3d%%  %s", indicator, maxLen, address, r.Progress, r.CreatedAt.Format("2006-01-02"))
	if i == v.selected {
		return v.styles.Selected.Render(line)
	}
	return v.styles.Normal.Render(line) + v.styles.Muted.Render("  "+r.ShortID)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.keyInput.SetWidth(width - 4)
}

// Reports returns the loaded listing.
func (v *View) Reports() []domain.ReportSummary {
	return v.reports
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
