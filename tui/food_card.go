package tui

import (
	"fmt"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/yeremiapane/food-catalog/models"
	"github.com/yeremiapane/food-catalog/utils"
)

const minCardWidth = 24

func renderFood(food models.Food, width int, selected bool) string {
	if width < minCardWidth {
		width = minCardWidth
	}
	inner := width - 4 // border + padding

	availability := availableStyle.Render("● available")
	if !food.Available {
		availability = unavailableStyle.Render("○ unavailable")
	}

	body := fmt.Sprintf("%s  %s\n%s\n%s\n%s",
		nameStyle.Render(truncate.StringWithTail(food.Name, uint(inner/2), "…")),
		dimStyle.Render(fmt.Sprintf("#%d", food.ID)),
		wordwrap.String(food.Description, inner),
		priceStyle.Render(utils.FormatPrice(food.Price))+"  "+availability,
		dimStyle.Render(truncate.StringWithTail(food.Image, uint(inner), "…")),
	)

	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	return style.Width(width - 2).Render(body)
}
