package tui

import "github.com/yeremiapane/food-catalog/models"

// Results of the controller handlers, delivered back to Update.

type foodsLoadedMsg struct{ err error }

type foodAddedMsg struct {
	food models.Food
	err  error
}

type foodUpdatedMsg struct {
	food models.Food
	err  error
}

type foodDeletedMsg struct {
	id  uint
	err error
}
