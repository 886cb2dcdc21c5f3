package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

var (
	ErrInvalidPrice = errors.New("price must be a non-negative number")
	ErrNameRequired = errors.New("name is required")
)

// Food is a persisted catalog entry. The id is assigned by the server.
type Food struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string          `gorm:"type:varchar(512)" json:"image"`
	Available   bool            `gorm:"not null" json:"available"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

// FoodInput is the body accepted by create and replace requests.
// decimal.Decimal decodes both 35 and "35".
type FoodInput struct {
	ID          uint            `json:"id,omitempty"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Available   bool            `json:"available"`
}

// Validate checks the fields binding tags cannot express.
func (in FoodInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrNameRequired
	}
	if in.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// ToFood copies the input onto a Food with the given id.
func (in FoodInput) ToFood(id uint) Food {
	return Food{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Available:   in.Available,
	}
}

// FoodDraft is what the add and edit forms submit. A nil field was not
// supplied by the form; price is still the text the user typed.
type FoodDraft struct {
	Name        *string
	Description *string
	Price       *string
	Image       *string
}

// NewFoodDraft builds a draft with every field present.
func NewFoodDraft(name, description, price, image string) FoodDraft {
	return FoodDraft{
		Name:        &name,
		Description: &description,
		Price:       &price,
		Image:       &image,
	}
}

// ParsePrice coerces the entered price text. A draft without a price
// yields zero.
func (d FoodDraft) ParsePrice() (decimal.Decimal, error) {
	if d.Price == nil {
		return decimal.Zero, nil
	}
	p, err := decimal.NewFromString(strings.TrimSpace(*d.Price))
	if err != nil || p.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return p, nil
}

// NewFoodInput turns a draft into a creation body.
func (d FoodDraft) NewFoodInput(available bool) (FoodInput, error) {
	price, err := d.ParsePrice()
	if err != nil {
		return FoodInput{}, err
	}
	in := FoodInput{Price: price, Available: available}
	if d.Name != nil {
		in.Name = *d.Name
	}
	if d.Description != nil {
		in.Description = *d.Description
	}
	if d.Image != nil {
		in.Image = *d.Image
	}
	return in, nil
}

// MergeInto overlays the draft onto target. Draft fields win on every key
// they carry; id and availability always come from target.
func (d FoodDraft) MergeInto(target Food) (FoodInput, error) {
	in := FoodInput{
		ID:          target.ID,
		Name:        target.Name,
		Description: target.Description,
		Price:       target.Price,
		Image:       target.Image,
		Available:   target.Available,
	}
	if d.Price != nil {
		price, err := d.ParsePrice()
		if err != nil {
			return FoodInput{}, err
		}
		in.Price = price
	}
	if d.Name != nil {
		in.Name = *d.Name
	}
	if d.Description != nil {
		in.Description = *d.Description
	}
	if d.Image != nil {
		in.Image = *d.Image
	}
	return in, nil
}
