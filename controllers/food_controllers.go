package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-catalog/models"
	"github.com/yeremiapane/food-catalog/utils"
	"gorm.io/gorm"
)

var (
	errInvalidFoodID = errors.New("invalid food id")
	errFoodNotFound  = errors.New("food not found")
)

type FoodController struct {
	DB *gorm.DB
}

func NewFoodController(db *gorm.DB) *FoodController {
	return &FoodController{DB: db}
}

// GetAllFoods returns the whole catalog in insertion order.
func (fc *FoodController) GetAllFoods(c *gin.Context) {
	foods := []models.Food{}
	if err := fc.DB.Order("id").Find(&foods).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

// GetFoodByID
func (fc *FoodController) GetFoodByID(c *gin.Context) {
	id, ok := foodID(c)
	if !ok {
		return
	}

	food, ok := fc.findFood(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, food)
}

// CreateFood stores a new food and answers with the server-assigned id.
func (fc *FoodController) CreateFood(c *gin.Context) {
	var body models.FoodInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := body.Validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	food := body.ToFood(0)
	if err := fc.DB.Create(&food).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.WithField("food_id", food.ID).Info("Food created")
	c.JSON(http.StatusCreated, food)
}

// UpdateFood replaces every field of an existing food. The id in the path
// wins over any id in the body.
func (fc *FoodController) UpdateFood(c *gin.Context) {
	id, ok := foodID(c)
	if !ok {
		return
	}

	var body models.FoodInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := body.Validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	existing, ok := fc.findFood(c, id)
	if !ok {
		return
	}

	food := body.ToFood(existing.ID)
	food.CreatedAt = existing.CreatedAt
	if err := fc.DB.Save(&food).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.WithField("food_id", food.ID).Info("Food updated")
	c.JSON(http.StatusOK, food)
}

// DeleteFood
func (fc *FoodController) DeleteFood(c *gin.Context) {
	id, ok := foodID(c)
	if !ok {
		return
	}

	result := fc.DB.Delete(&models.Food{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errFoodNotFound)
		return
	}

	utils.InfoLogger.WithField("food_id", id).Info("Food deleted")
	c.JSON(http.StatusOK, gin.H{})
}

func (fc *FoodController) findFood(c *gin.Context, id uint) (models.Food, bool) {
	var food models.Food
	err := fc.DB.First(&food, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondError(c, http.StatusNotFound, errFoodNotFound)
		return food, false
	case err != nil:
		utils.RespondError(c, http.StatusInternalServerError, err)
		return food, false
	}
	return food, true
}

func foodID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("food_id"), 10, 32)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, errInvalidFoodID)
		return 0, false
	}
	return uint(id), true
}
