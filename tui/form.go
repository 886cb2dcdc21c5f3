package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yeremiapane/food-catalog/models"
)

const (
	fieldImage = iota
	fieldName
	fieldPrice
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldImage:       "Image URL",
	fieldName:        "Name",
	fieldPrice:       "Price",
	fieldDescription: "Description",
}

type formAction int

const (
	formNone formAction = iota
	formSubmit
	formCancel
)

// foodForm backs both the add and the edit modal.
type foodForm struct {
	title  string
	submit string
	inputs []textinput.Model
	focus  int
	err    string
}

func newFoodForm(title, submit string) foodForm {
	f := foodForm{
		title:  title,
		submit: submit,
		inputs: make([]textinput.Model, fieldCount),
	}
	placeholders := [fieldCount]string{
		fieldImage:       "https://...",
		fieldName:        "Ex: Moda Italiana",
		fieldPrice:       "Ex: 19.90",
		fieldDescription: "Description",
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 512
		ti.Width = 48
		f.inputs[i] = ti
	}
	f.inputs[fieldPrice].CharLimit = 16
	return f
}

// reset clears every field and focuses the first one.
func (f *foodForm) reset() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.err = ""
	return f.focusAt(0)
}

// fill loads food into the fields.
func (f *foodForm) fill(food models.Food) tea.Cmd {
	f.inputs[fieldImage].SetValue(food.Image)
	f.inputs[fieldName].SetValue(food.Name)
	f.inputs[fieldPrice].SetValue(food.Price.String())
	f.inputs[fieldDescription].SetValue(food.Description)
	f.err = ""
	return f.focusAt(0)
}

func (f *foodForm) focusAt(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	return f.inputs[f.focus].Focus()
}

// update handles one key press and reports whether the user submitted or
// cancelled the form.
func (f *foodForm) update(msg tea.KeyMsg) (formAction, tea.Cmd) {
	switch {
	case key.Matches(msg, formKeys.Cancel):
		return formCancel, nil
	case key.Matches(msg, formKeys.Submit):
		return formSubmit, nil
	case key.Matches(msg, formKeys.Next):
		return formNone, f.focusAt(f.focus + 1)
	case key.Matches(msg, formKeys.Prev):
		return formNone, f.focusAt(f.focus - 1)
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return formNone, cmd
}

// draft validates the fields and builds a draft carrying all four of them.
func (f *foodForm) draft() (models.FoodDraft, bool) {
	d := models.NewFoodDraft(
		strings.TrimSpace(f.inputs[fieldName].Value()),
		strings.TrimSpace(f.inputs[fieldDescription].Value()),
		strings.TrimSpace(f.inputs[fieldPrice].Value()),
		strings.TrimSpace(f.inputs[fieldImage].Value()),
	)
	if *d.Name == "" {
		f.err = models.ErrNameRequired.Error()
		return d, false
	}
	if _, err := d.ParsePrice(); err != nil || *d.Price == "" {
		f.err = models.ErrInvalidPrice.Error()
		return d, false
	}
	f.err = ""
	return d, true
}

func (f foodForm) view() string {
	var b strings.Builder
	b.WriteString(modalTitleStyle.Render(f.title))
	b.WriteString("\n")
	for i, in := range f.inputs {
		label := fieldLabels[i]
		if i == f.focus {
			label = nameStyle.Render(label)
		} else {
			label = dimStyle.Render(label)
		}
		b.WriteString(label + "\n" + in.View() + "\n\n")
	}
	b.WriteString(triggerStyle.Render(f.submit))
	if f.err != "" {
		b.WriteString("  " + errorStyle.Render(f.err))
	}
	return modalStyle.Render(b.String())
}
