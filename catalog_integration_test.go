package main

import (
	"context"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/food-catalog/dashboard"
	"github.com/yeremiapane/food-catalog/database"
	"github.com/yeremiapane/food-catalog/models"
	"github.com/yeremiapane/food-catalog/router"
	"github.com/yeremiapane/food-catalog/services"
	"github.com/yeremiapane/food-catalog/utils"
)

var testSecret = []byte("integration-secret")

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	os.Exit(m.Run())
}

// setupTestServer runs the foods API on an in-memory database seeded with
// one pizza, with write routes behind JWT auth.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db, []models.Food{
		{Name: "Pizza", Description: "Cheese", Price: decimal.NewFromInt(30), Image: "pizza.png", Available: true},
	}))

	srv := httptest.NewServer(router.SetupRouter(db, router.Options{JWTSecret: testSecret}))
	t.Cleanup(srv.Close)
	return srv
}

func newService(t *testing.T, srv *httptest.Server, withToken bool) *services.FoodsService {
	t.Helper()
	cfg := services.FoodsConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}
	if withToken {
		token, err := utils.GenerateToken(testSecret, "admin", time.Hour)
		require.NoError(t, err)
		cfg.Token = token
	}
	return services.NewFoodsService(cfg)
}

// TestDashboardEndToEnd walks the dashboard through load, create, edit and
// delete against the real server:
// 1. load -> [Pizza]
// 2. add Burger -> appended with server id
// 3. edit Pizza price 30 -> 35, Burger untouched
// 4. delete Burger
// 5. a fresh load agrees with local state
func TestDashboardEndToEnd(t *testing.T) {
	srv := setupTestServer(t)
	ctx := context.Background()

	ctrl := dashboard.NewController(newService(t, srv, true))
	defer ctrl.Close()

	require.NoError(t, ctrl.Load(ctx))
	foods := ctrl.Foods()
	require.Len(t, foods, 1)
	pizza := foods[0]
	assert.Equal(t, "Pizza", pizza.Name)

	burger, err := ctrl.HandleAddFood(ctx, models.NewFoodDraft("Burger", "Beef", "19.90", "burger.png"))
	require.NoError(t, err)
	assert.NotZero(t, burger.ID)
	assert.True(t, burger.Available)
	foods = ctrl.Foods()
	require.Len(t, foods, 2)
	assert.Equal(t, burger.ID, foods[1].ID)

	ctrl.HandleEditFood(pizza)
	price := "35"
	updated, err := ctrl.HandleUpdateFood(ctx, models.FoodDraft{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, pizza.ID, updated.ID)
	assert.Equal(t, "Pizza", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(35)))

	foods = ctrl.Foods()
	require.Len(t, foods, 2)
	assert.Equal(t, updated, foods[0])
	assert.Equal(t, burger, foods[1])

	require.NoError(t, ctrl.HandleDeleteFood(ctx, burger.ID))
	require.Len(t, ctrl.Foods(), 1)

	fresh := dashboard.NewController(newService(t, srv, false))
	defer fresh.Close()
	require.NoError(t, fresh.Load(ctx))
	require.Len(t, fresh.Foods(), 1)
	assert.Equal(t, pizza.ID, fresh.Foods()[0].ID)
	assert.True(t, fresh.Foods()[0].Price.Equal(decimal.NewFromInt(35)))
}

func TestDashboard_StaleEditingTarget(t *testing.T) {
	srv := setupTestServer(t)
	ctx := context.Background()

	ctrl := dashboard.NewController(newService(t, srv, true))
	defer ctrl.Close()
	require.NoError(t, ctrl.Load(ctx))

	pizza := ctrl.Foods()[0]
	ctrl.HandleEditFood(pizza)
	require.NoError(t, ctrl.HandleDeleteFood(ctx, pizza.ID))

	name := "Ghost"
	_, err := ctrl.HandleUpdateFood(ctx, models.FoodDraft{Name: &name})
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Empty(t, ctrl.Foods())
}

func TestDashboard_WritesRequireToken(t *testing.T) {
	srv := setupTestServer(t)
	ctx := context.Background()

	ctrl := dashboard.NewController(newService(t, srv, false))
	defer ctrl.Close()
	require.NoError(t, ctrl.Load(ctx), "reads are public")

	_, err := ctrl.HandleAddFood(ctx, models.NewFoodDraft("Burger", "", "10", ""))
	var apiErr *services.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.Len(t, ctrl.Foods(), 1)

	err = ctrl.HandleDeleteFood(ctx, ctrl.Foods()[0].ID)
	require.Error(t, err)
	assert.Len(t, ctrl.Foods(), 1)
}
