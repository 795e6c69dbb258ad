// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

// ItemList displays the items of one checklist section in a navigable list.
// Hidden items are left out unless ShowHidden is set.
type ItemList struct {
	items      []domain.ChecklistItem
	rows       []int // indexes into items for the displayed rows
	showHidden bool
	selected   int
	styles     *styles.Styles
	width      int
	height     int
}

// NewItemList creates a new item list component.
func NewItemList(s *styles.Styles) *ItemList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ItemList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the item list.
func (l *ItemList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *ItemList) Update(msg tea.Msg) (*ItemList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the item list.
func (l *ItemList) View() string {
	if len(l.rows) == 0 {
		if len(l.items) > 0 {
			return l.styles.Muted.Render("All items are hidden")
		}
		return l.styles.Muted.Render("No items")
	}

	// Each item takes up to two lines (label and notes)
	visibleCount := l.height / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.rows) {
		end = len(l.rows)
	}

	lines := make([]string, 0, (end-start)*2)
	for row := start; row < end; row++ {
		lines = append(lines, l.renderItem(row, &l.items[l.rows[row]]))
	}
	return strings.Join(lines, "\n")
}

// renderItem formats a single checklist item with its badge and details.
func (l *ItemList) renderItem(row int, item *domain.ChecklistItem) string {
	indicator := "  "
	if row == l.selected {
		indicator = "> "
	}

	label := item.Label
	maxLabelLen := l.width - 16
	if maxLabelLen < 10 {
		maxLabelLen = 10
	}
	if len(label) > maxLabelLen {
		label = label[:maxLabelLen-3] + "..."
	}

	badge := l.styles.Status(item.Status).Render(styles.StatusBadge(item.Status))
	labelStyle := l.styles.Normal
	if row == l.selected {
		labelStyle = l.styles.Selected
	}
	if item.IsHidden {
		labelStyle = l.styles.Muted
		label += " (hidden)"
	}
	line := indicator + badge + " " + labelStyle.Render(label)

	var details []string
	if item.SelectedOption != "" {
		details = append(details, item.SelectedOption)
	} else if len(item.Options) > 0 {
		details = append(details, strings.Join(item.Options, "/"))
	}
	if n := len(item.Photos); n > 0 {
		details = append(details, fmt.Sprintf("%d photo(s)", n))
	}
	if item.Notes != "" {
		notes := strings.ReplaceAll(item.Notes, "\n", " ")
		maxNotesLen := l.width - 12
		if maxNotesLen < 20 {
			maxNotesLen = 20
		}
		if len(notes) > maxNotesLen {
			notes = notes[:maxNotesLen-3] + "..."
		}
		details = append(details, notes)
	}
	if len(details) > 0 {
		line += "\n" + l.styles.Muted.Render("         "+strings.Join(details, " · "))
	}
	return line
}

// SetItems replaces the displayed items, keeping the selection where possible.
func (l *ItemList) SetItems(items []domain.ChecklistItem) {
	l.items = items
	l.rebuild()
}

// SetShowHidden toggles whether hidden items are listed.
func (l *ItemList) SetShowHidden(show bool) {
	l.showHidden = show
	l.rebuild()
}

// ShowHidden reports whether hidden items are listed.
func (l *ItemList) ShowHidden() bool {
	return l.showHidden
}

func (l *ItemList) rebuild() {
	l.rows = l.rows[:0]
	for i := range l.items {
		if l.showHidden || !l.items[i].IsHidden {
			l.rows = append(l.rows, i)
		}
	}
	if l.selected >= len(l.rows) {
		l.selected = len(l.rows) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Selected returns the index of the selected row.
func (l *ItemList) Selected() int {
	return l.selected
}

// SetSelected sets the selected row.
func (l *ItemList) SetSelected(row int) {
	if row >= 0 && row < len(l.rows) {
		l.selected = row
	}
}

// SelectedItem returns the currently selected item, or nil if none.
func (l *ItemList) SelectedItem() *domain.ChecklistItem {
	if len(l.rows) == 0 || l.selected < 0 || l.selected >= len(l.rows) {
		return nil
	}
	return &l.items[l.rows[l.selected]]
}

// MoveUp moves selection up.
func (l *ItemList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *ItemList) MoveDown() {
	if l.selected < len(l.rows)-1 {
		l.selected++
	}
}

// Reset moves the selection to the first row.
func (l *ItemList) Reset() {
	l.selected = 0
}

// SetDimensions sets the component dimensions.
func (l *ItemList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of displayed rows.
func (l *ItemList) Count() int {
	return len(l.rows)
}

// IsEmpty returns whether no rows are displayed.
func (l *ItemList) IsEmpty() bool {
	return len(l.rows) == 0
}
