package database

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/food-catalog/models"
	"github.com/yeremiapane/food-catalog/utils"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type seedFile struct {
	Foods []seedFood `yaml:"foods"`
}

type seedFood struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Image       string `yaml:"image"`
	Available   *bool  `yaml:"available"`
}

// LoadSeed parses a YAML seed file of the form:
//
//	foods:
//	  - name: Ao molho
//	    price: "19.90"
func LoadSeed(path string) ([]models.Food, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sf seedFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}

	foods := make([]models.Food, 0, len(sf.Foods))
	for i, f := range sf.Foods {
		price := decimal.Zero
		if f.Price != "" {
			price, err = decimal.NewFromString(f.Price)
			if err != nil {
				return nil, fmt.Errorf("seed food %d (%s): invalid price %q", i, f.Name, f.Price)
			}
		}
		available := true
		if f.Available != nil {
			available = *f.Available
		}
		foods = append(foods, models.Food{
			Name:        f.Name,
			Description: f.Description,
			Price:       price,
			Image:       f.Image,
			Available:   available,
		})
	}
	return foods, nil
}

// Seed inserts foods only when the table is empty, so restarting the
// server does not duplicate the catalog.
func Seed(db *gorm.DB, foods []models.Food) error {
	var count int64
	if err := db.Model(&models.Food{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 || len(foods) == 0 {
		return nil
	}
	if err := db.Create(&foods).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Seeded %d foods", len(foods))
	return nil
}
