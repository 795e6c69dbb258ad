// Package newinspection provides the property details form that starts an inspection.
package newinspection

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/walkthrough/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

// Field indexes into the form.
const (
	FieldAddress = iota
	FieldPropertyType
	FieldFloors
	FieldBedrooms
	FieldBaths
	FieldSquareFeet
	FieldYearBuilt
	FieldWeather
	FieldOutsideTemp
	FieldInsideTemp
	FieldInspector
	fieldCount
)

// View is the property details form.
type View struct {
	styles    *styles.Styles
	fields    []*input.Field
	focused   int
	inspector string
	err       error
	width     int
	height    int
}

// NewView creates a new form.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	fields := make([]*input.Field, fieldCount)
	fields[FieldAddress] = input.NewField(s, "Address", "12 Elm St, Springfield")
	fields[FieldPropertyType] = input.NewField(s, "Property type", "single family")
	fields[FieldFloors] = input.NewField(s, "Floors", "2")
	fields[FieldBedrooms] = input.NewField(s, "Bedrooms", "3")
	fields[FieldBaths] = input.NewField(s, "Baths", "2")
	fields[FieldSquareFeet] = input.NewField(s, "Square feet", "1800")
	fields[FieldYearBuilt] = input.NewField(s, "Year built", "1978")
	fields[FieldWeather] = input.NewField(s, "Weather", "clear")
	fields[FieldOutsideTemp] = input.NewField(s, "Outside temp", "65F")
	fields[FieldInsideTemp] = input.NewField(s, "Inside temp", "70F")
	fields[FieldInspector] = input.NewField(s, "Inspector", "")

	return &View{
		styles: s,
		fields: fields,
		width:  80,
		height: 24,
	}
}

// SetInspector sets the inspector name prefilled on a reset form.
func (v *View) SetInspector(name string) {
	v.inspector = name
}

// Reset clears the form and focuses the address.
func (v *View) Reset() {
	for _, f := range v.fields {
		f.Reset()
		f.Blur()
	}
	v.fields[FieldInspector].SetValue(v.inspector)
	v.focused = FieldAddress
	v.err = nil
}

// Init focuses the first field.
func (v *View) Init() tea.Cmd {
	return v.fields[v.focused].Focus()
}

// Update handles messages for the form.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		case "tab", "down":
			return v, v.moveFocus(1)
		case "shift+tab", "up":
			return v, v.moveFocus(-1)
		case "ctrl+s":
			return v, v.submit()
		case "enter":
			if v.focused == fieldCount-1 {
				return v, v.submit()
			}
			return v, v.moveFocus(1)
		}
		var cmd tea.Cmd
		v.fields[v.focused], cmd = v.fields[v.focused].Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) moveFocus(delta int) tea.Cmd {
	next := v.focused + delta
	if next < 0 || next >= fieldCount {
		return nil
	}
	v.fields[v.focused].Blur()
	v.focused = next
	return v.fields[v.focused].Focus()
}

func (v *View) submit() tea.Cmd {
	profile, err := v.Profile()
	if err != nil {
		v.err = err
		return nil
	}
	v.err = nil
	return func() tea.Msg { return messages.InspectionRequested{Profile: profile} }
}

// Profile builds the property description from the form.
func (v *View) Profile() (domain.InspectionProfile, error) {
	value := func(i int) string { return strings.TrimSpace(v.fields[i].Value()) }

	p := domain.InspectionProfile{
		Address:       value(FieldAddress),
		PropertyType:  value(FieldPropertyType),
		Weather:       value(FieldWeather),
		OutsideTemp:   value(FieldOutsideTemp),
		InsideTemp:    value(FieldInsideTemp),
		InspectorName: value(FieldInspector),
	}
	if p.Address == "" {
		return p, errors.New("address is required")
	}

	numbers := []struct {
		field int
		dst   *int
	}{
		{FieldFloors, &p.Floors},
		{FieldBedrooms, &p.Bedrooms},
		{FieldBaths, &p.Baths},
		{FieldSquareFeet, &p.SquareFeet},
		{FieldYearBuilt, &p.YearBuilt},
	}
	for _, n := range numbers {
		raw := value(n.field)
		if raw == "" {
			continue
		}
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return p, fmt.Errorf("%s must be a whole number", strings.ToLower(v.fields[n.field].Label()))
		}
		*n.dst = parsed
	}
	return p, nil
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("New Inspection"))
	b.WriteString("\n\n")

	for _, f := range v.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(v.styles.Help.Render("[tab/↓] next  [shift+tab/↑] previous  [ctrl+s] start  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	for _, f := range v.fields {
		f.SetWidth(width / 2)
	}
}

// Focused returns the index of the focused field.
func (v *View) Focused() int {
	return v.focused
}

// Err returns the last validation error.
func (v *View) Err() error {
	return v.err
}
