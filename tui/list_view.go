// tui/list_view.go
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yackko/neo-analyzer/types"
)

// ListModel shows bodies in a table; enter toggles the detail pane for the
// selected row.
type ListModel struct {
	Title       string
	Bodies      []types.Body
	table       table.Model
	showDetails bool
}

// NewListModel builds the table for bodies.
func NewListModel(title string, bodies []types.Body) ListModel {
	columns := []table.Column{
		{Title: "NAME", Width: 28},
		{Title: "KIND", Width: 9},
		{Title: "DIAMETER (km)", Width: 14},
		{Title: "MASS (kg)", Width: 12},
		{Title: "GRAVITY (m/s^2)", Width: 16},
	}
	rows := make([]table.Row, 0, len(bodies))
	for _, b := range bodies {
		rows = append(rows, bodyRow(b))
	}

	height := len(rows) + 2
	if height > 15 {
		height = 15
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = HeaderStyle
	s.Selected = SelectedStyle
	t.SetStyles(s)

	return ListModel{Title: title, Bodies: bodies, table: t}
}

func bodyRow(b types.Body) table.Row {
	attrs := b.Attributes()
	gravity := "undefined"
	if g, err := b.SurfaceGravity(); err == nil {
		gravity = fmt.Sprintf("%.4g", g)
	}
	return table.Row{
		attrs.Name,
		b.Kind(),
		fmt.Sprintf("%.4g", attrs.DiameterKm),
		fmt.Sprintf("%.4g", attrs.MassKg),
		gravity,
	}
}

// Init is a required method for tea.Model.
func (m ListModel) Init() tea.Cmd {
	return nil
}

// Update is a required method for tea.Model.
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.showDetails = !m.showDetails
			return m, nil
		case "esc":
			m.showDetails = false
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the body under the cursor, if any.
func (m ListModel) Selected() (types.Body, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.Bodies) {
		return nil, false
	}
	return m.Bodies[i], true
}

// View is a required method for tea.Model.
func (m ListModel) View() string {
	if len(m.Bodies) == 0 {
		return ErrorStyle.Render("No bodies to display.") + "\n"
	}
	var sb strings.Builder
	if m.Title != "" {
		sb.WriteString(TitleStyle.Render(m.Title))
		sb.WriteString("\n")
	}
	sb.WriteString(BlurredStyle.Render(m.table.View()))
	sb.WriteString("\n")
	if m.showDetails {
		if b, ok := m.Selected(); ok {
			lines := make([]string, 0, len(b.Info()))
			for _, f := range b.Info() {
				lines = append(lines, f.String())
			}
			sb.WriteString(FocusedStyle.Render(strings.Join(lines, "\n")))
			sb.WriteString("\n")
		}
	}
	sb.WriteString(HelpStyle.Render("↑/↓ move • enter details • esc close • q quit"))
	sb.WriteString("\n")
	return sb.String()
}
