package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yackko/neo-analyzer/types"
)

func testBodies(t *testing.T) []types.Body {
	t.Helper()
	earth, err := types.NewPlanet("Earth", 12742, 5.97237e24)
	if err != nil {
		t.Fatal(err)
	}
	rock := types.NewAsteroid(types.AsteroidObservation{
		ID:                  "3727181",
		Name:                "(2015 RC)",
		MinDiameterKm:       0.0367,
		MaxDiameterKm:       0.082,
		CloseApproachDate:   "2024-03-15",
		RelativeVelocityKmS: 19.48,
	})
	return []types.Body{earth, rock}
}

func TestListModel_View(t *testing.T) {
	m := NewListModel("Bodies", testBodies(t))
	view := m.View()
	for _, want := range []string{"Bodies", "Earth", "(2015 RC)", "planet", "asteroid"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if strings.Contains(view, "Escape Velocity") {
		t.Error("details shown before enter was pressed")
	}
}

func TestListModel_DetailsToggle(t *testing.T) {
	var model tea.Model = NewListModel("", testBodies(t))

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(model.View(), "Escape Velocity") {
		t.Error("enter did not show details of the selected planet")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	if !strings.Contains(model.View(), "Impact Energy") {
		t.Error("moving down did not select the asteroid")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if strings.Contains(model.View(), "Impact Energy") {
		t.Error("esc did not close details")
	}
}

func TestListModel_Quit(t *testing.T) {
	m := NewListModel("", testBodies(t))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestListModel_Empty(t *testing.T) {
	m := NewListModel("", nil)
	if !strings.Contains(m.View(), "No bodies") {
		t.Errorf("View() = %q", m.View())
	}
	if _, ok := m.Selected(); ok {
		t.Error("Selected() on empty model reported a body")
	}
}
