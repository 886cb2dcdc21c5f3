package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/food-catalog/models"
	"github.com/yeremiapane/food-catalog/router"
	"github.com/yeremiapane/food-catalog/utils"
)

func setupRouter(t *testing.T, opts router.Options) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Food{}))
	return router.SetupRouter(db, opts)
}

func serve(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := setupRouter(t, router.Options{})

	w := serve(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := setupRouter(t, router.Options{Registry: reg})

	serve(r, http.MethodGet, "/foods", "", "")
	w := serve(r, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "foods_http_requests_total")
}

func TestWriteRoutesRequireToken(t *testing.T) {
	secret := []byte("router-secret")
	r := setupRouter(t, router.Options{JWTSecret: secret})
	body := `{"name":"Pizza","description":"Cheese","price":30,"image":"p.png","available":true}`

	w := serve(r, http.MethodPost, "/foods", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/foods", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	token, err := utils.GenerateToken(secret, "admin", time.Minute)
	require.NoError(t, err)
	w = serve(r, http.MethodPost, "/foods", body, token)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = serve(r, http.MethodDelete, "/foods/1", "", "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWriteRoutesOpenWithoutSecret(t *testing.T) {
	r := setupRouter(t, router.Options{})

	w := serve(r, http.MethodPost, "/foods", `{"name":"Soup","price":"12.50"}`, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"price":12.5`)
}
