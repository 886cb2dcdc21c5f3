// Package tui renders the food catalog dashboard in the terminal. All
// state lives in a dashboard.Controller; the model here only keeps what
// the widgets need (cursor, form inputs, status line).
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yeremiapane/food-catalog/dashboard"
	"github.com/yeremiapane/food-catalog/models"
)

type Model struct {
	ctrl *dashboard.Controller

	addForm  foodForm
	editForm foodForm

	cursor  int
	loading bool
	spinner spinner.Model
	help    help.Model

	status    string
	statusErr bool

	width  int
	height int
}

func New(ctrl *dashboard.Controller) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		ctrl:     ctrl,
		addForm:  newFoodForm("New food", "Add food"),
		editForm: newFoodForm("Edit food", "Save changes"),
		loading:  true,
		spinner:  s,
		help:     help.New(),
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadFoods(m.ctrl))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case foodsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setError("could not load foods", msg.err)
		}
		m.clampCursor()
		return m, nil

	case foodAddedMsg:
		if msg.err != nil {
			m.setError("could not add food", msg.err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("%s added", msg.food.Name))
		return m, nil

	case foodUpdatedMsg:
		if msg.err != nil {
			m.setError("could not update food", msg.err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("%s updated", msg.food.Name))
		return m, nil

	case foodDeletedMsg:
		if msg.err != nil {
			m.setError("could not delete food", msg.err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("food #%d deleted", msg.id))
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// The edit modal is drawn on top when both are open, so it gets the keys.
	if m.ctrl.IsEditModalOpen() {
		action, cmd := m.editForm.update(msg)
		switch action {
		case formCancel:
			m.ctrl.ToggleEditModal()
		case formSubmit:
			draft, ok := m.editForm.draft()
			if !ok {
				return m, nil
			}
			m.ctrl.ToggleEditModal()
			return m, updateFood(m.ctrl, draft)
		}
		return m, cmd
	}

	if m.ctrl.IsModalOpen() {
		action, cmd := m.addForm.update(msg)
		switch action {
		case formCancel:
			m.ctrl.ToggleModal()
		case formSubmit:
			draft, ok := m.addForm.draft()
			if !ok {
				return m, nil
			}
			m.ctrl.ToggleModal()
			return m, addFood(m.ctrl, draft)
		}
		return m, cmd
	}

	foods := m.ctrl.Foods()

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(foods)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.New):
		m.ctrl.ToggleModal()
		return m, m.addForm.reset()

	case key.Matches(msg, keys.Edit):
		if len(foods) == 0 {
			return m, nil
		}
		food := foods[m.cursor]
		m.ctrl.HandleEditFood(food)
		return m, m.editForm.fill(food)

	case key.Matches(msg, keys.Delete):
		if len(foods) == 0 {
			return m, nil
		}
		return m, deleteFood(m.ctrl, foods[m.cursor].ID)

	case key.Matches(msg, keys.Reload):
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, loadFoods(m.ctrl))
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(renderHeader(m.width - 4))
	b.WriteString("\n\n")

	switch {
	case m.ctrl.IsEditModalOpen():
		b.WriteString(m.editForm.view())
		b.WriteString("\n" + m.help.View(formKeys))
		return docStyle.Render(b.String())
	case m.ctrl.IsModalOpen():
		b.WriteString(m.addForm.view())
		b.WriteString("\n" + m.help.View(formKeys))
		return docStyle.Render(b.String())
	}

	if m.loading {
		b.WriteString(m.spinner.View() + " Loading foods...\n")
	}

	foods := m.ctrl.Foods()
	if len(foods) == 0 && !m.loading {
		b.WriteString(dimStyle.Render("No foods yet. Press n to add one.") + "\n")
	}
	for i, food := range foods {
		b.WriteString(renderFood(food, m.width-4, i == m.cursor))
		b.WriteString("\n")
	}

	if m.status != "" {
		style := successStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString("\n" + style.Render(m.status) + "\n")
	}

	b.WriteString("\n" + m.help.View(keys))
	return docStyle.Render(b.String())
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(prefix string, err error) {
	if errors.Is(err, dashboard.ErrClosed) {
		return
	}
	m.status = fmt.Sprintf("%s: %v", prefix, err)
	m.statusErr = true
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Foods())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func loadFoods(ctrl *dashboard.Controller) tea.Cmd {
	return func() tea.Msg {
		return foodsLoadedMsg{err: ctrl.Load(context.Background())}
	}
}

func addFood(ctrl *dashboard.Controller, draft models.FoodDraft) tea.Cmd {
	return func() tea.Msg {
		food, err := ctrl.HandleAddFood(context.Background(), draft)
		return foodAddedMsg{food: food, err: err}
	}
}

func updateFood(ctrl *dashboard.Controller, draft models.FoodDraft) tea.Cmd {
	return func() tea.Msg {
		food, err := ctrl.HandleUpdateFood(context.Background(), draft)
		return foodUpdatedMsg{food: food, err: err}
	}
}

func deleteFood(ctrl *dashboard.Controller, id uint) tea.Cmd {
	return func() tea.Msg {
		return foodDeletedMsg{id: id, err: ctrl.HandleDeleteFood(context.Background(), id)}
	}
}
