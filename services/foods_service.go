package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yeremiapane/food-catalog/models"
	"github.com/yeremiapane/food-catalog/utils"
)

// ErrNotFound matches any APIError with status 404.
var ErrNotFound = errors.New("food not found")

// APIError is a non-2xx answer from the foods API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("foods api: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// FoodsConfig holds the connection settings for the /foods resource.
type FoodsConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// FoodsService talks to a REST /foods resource.
type FoodsService struct {
	config     FoodsConfig
	httpClient *http.Client
}

func NewFoodsService(cfg FoodsConfig) *FoodsService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &FoodsService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// CheckHealth pings GET /health.
func (fs *FoodsService) CheckHealth(ctx context.Context) error {
	return fs.do(ctx, http.MethodGet, "/health", nil, nil)
}

// List fetches the full collection.
func (fs *FoodsService) List(ctx context.Context) ([]models.Food, error) {
	var foods []models.Food
	if err := fs.do(ctx, http.MethodGet, "/foods", nil, &foods); err != nil {
		return nil, err
	}
	return foods, nil
}

// Create posts a new food and returns the server's representation.
func (fs *FoodsService) Create(ctx context.Context, in models.FoodInput) (models.Food, error) {
	var food models.Food
	err := fs.do(ctx, http.MethodPost, "/foods", in, &food)
	return food, err
}

// Replace puts in over the food with the given id.
func (fs *FoodsService) Replace(ctx context.Context, id uint, in models.FoodInput) (models.Food, error) {
	var food models.Food
	err := fs.do(ctx, http.MethodPut, fmt.Sprintf("/foods/%d", id), in, &food)
	return food, err
}

// Delete removes the food with the given id.
func (fs *FoodsService) Delete(ctx context.Context, id uint) error {
	return fs.do(ctx, http.MethodDelete, fmt.Sprintf("/foods/%d", id), nil, nil)
}

func (fs *FoodsService) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("error marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fs.config.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if fs.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+fs.config.Token)
	}

	utils.InfoLogger.Debugf("foods api request: %s %s", method, path)

	resp, err := fs.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw, resp.Status)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("error unmarshaling response: %w", err)
	}
	return nil
}

// errorMessage pulls "message" out of the server's error envelope and
// falls back to the raw body or the status text.
func errorMessage(raw []byte, status string) string {
	var envelope utils.JSONResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		return msg
	}
	return status
}
