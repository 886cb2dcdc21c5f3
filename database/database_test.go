package database

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/food-catalog/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestLoadSeed(t *testing.T) {
	foods, err := LoadSeed(filepath.Join("testdata", "foods.yaml"))
	require.NoError(t, err)
	require.Len(t, foods, 3)

	assert.Equal(t, "Ao molho", foods[0].Name)
	assert.Equal(t, "19.9", foods[0].Price.String())
	assert.True(t, foods[0].Available)
	assert.False(t, foods[1].Available)
}

func TestLoadSeed_InvalidPrice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("foods:\n  - name: x\n    price: cheap\n"), 0o644))

	_, err := LoadSeed(path)
	assert.Error(t, err)
}

func TestSeed_OnlyWhenEmpty(t *testing.T) {
	db := setupTestDB(t)
	foods, err := LoadSeed(filepath.Join("testdata", "foods.yaml"))
	require.NoError(t, err)

	require.NoError(t, Seed(db, foods))
	require.NoError(t, Seed(db, foods))

	var stored []models.Food
	require.NoError(t, db.Order("id").Find(&stored).Error)
	require.Len(t, stored, 3)
	assert.Equal(t, "Veggie", stored[1].Name)
	assert.False(t, stored[1].Available)
	assert.NotZero(t, stored[2].ID)
}
