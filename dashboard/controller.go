// Package dashboard owns the food catalog screen's state: the list of foods,
// the food being edited and which modals are open. Every mutation goes
// through a Controller handler, which makes at most one API call and then
// reconciles the local list with what the server answered.
package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/food-catalog/models"
	"github.com/yeremiapane/food-catalog/utils"
)

var (
	// ErrNoEditingTarget is returned by HandleUpdateFood when no food was
	// loaded into the edit modal.
	ErrNoEditingTarget = errors.New("no food is being edited")
	// ErrClosed is returned once the controller has been torn down.
	ErrClosed = errors.New("dashboard controller closed")
)

// FoodsAPI is the remote /foods resource.
type FoodsAPI interface {
	List(ctx context.Context) ([]models.Food, error)
	Create(ctx context.Context, in models.FoodInput) (models.Food, error)
	Replace(ctx context.Context, id uint, in models.FoodInput) (models.Food, error)
	Delete(ctx context.Context, id uint) error
}

type Controller struct {
	api FoodsAPI

	// ctx is canceled by Close; every request derives from it.
	ctx    context.Context
	cancel context.CancelFunc

	mu              sync.Mutex
	closed          bool
	foods           []models.Food
	editingFood     *models.Food
	isModalOpen     bool
	isEditModalOpen bool
}

func NewController(api FoodsAPI) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		api:    api,
		ctx:    ctx,
		cancel: cancel,
		foods:  []models.Food{},
	}
}

// Close cancels in-flight requests. Handlers that complete afterwards leave
// the state untouched and return ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cancel()
}

// Load fetches the whole catalog and replaces the local list with it. On
// failure the list keeps its previous contents.
func (c *Controller) Load(ctx context.Context) error {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	foods, err := c.api.List(ctx)
	if err != nil {
		return c.fail("load foods", err, nil)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if foods == nil {
		foods = []models.Food{}
	}
	c.foods = foods
	utils.InfoLogger.WithField("count", len(foods)).Info("Foods loaded")
	return nil
}

// HandleAddFood creates draft as an available food and appends the
// server's representation to the list.
func (c *Controller) HandleAddFood(ctx context.Context, draft models.FoodDraft) (models.Food, error) {
	in, err := draft.NewFoodInput(true)
	if err != nil {
		return models.Food{}, c.fail("add food", err, nil)
	}

	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	food, err := c.api.Create(ctx, in)
	if err != nil {
		return models.Food{}, c.fail("add food", err, nil)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return models.Food{}, ErrClosed
	}
	c.foods = append(c.foods, food)
	utils.InfoLogger.WithField("food_id", food.ID).Info("Food added")
	return food, nil
}

// HandleUpdateFood replaces the editing target with the target merged with
// draft, then swaps the matching list entry in place. If that entry was
// removed locally while the request was in flight, it is not put back.
func (c *Controller) HandleUpdateFood(ctx context.Context, draft models.FoodDraft) (models.Food, error) {
	c.mu.Lock()
	if c.editingFood == nil {
		c.mu.Unlock()
		return models.Food{}, c.fail("update food", ErrNoEditingTarget, nil)
	}
	target := *c.editingFood
	c.mu.Unlock()

	fields := logrus.Fields{"food_id": target.ID}

	in, err := draft.MergeInto(target)
	if err != nil {
		return models.Food{}, c.fail("update food", err, fields)
	}

	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	food, err := c.api.Replace(ctx, target.ID, in)
	if err != nil {
		return models.Food{}, c.fail("update food", err, fields)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return models.Food{}, ErrClosed
	}
	for i := range c.foods {
		if c.foods[i].ID == food.ID {
			c.foods[i] = food
			break
		}
	}
	utils.InfoLogger.WithFields(fields).Info("Food updated")
	return food, nil
}

// HandleDeleteFood deletes the food remotely and then drops every local
// entry with that id. A failed request leaves the list as it was.
func (c *Controller) HandleDeleteFood(ctx context.Context, id uint) error {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	fields := logrus.Fields{"food_id": id}
	if err := c.api.Delete(ctx, id); err != nil {
		return c.fail("delete food", err, fields)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	filtered := make([]models.Food, 0, len(c.foods))
	for _, f := range c.foods {
		if f.ID != id {
			filtered = append(filtered, f)
		}
	}
	c.foods = filtered
	utils.InfoLogger.WithFields(fields).Info("Food deleted")
	return nil
}

func (c *Controller) ToggleModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isModalOpen = !c.isModalOpen
}

func (c *Controller) ToggleEditModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isEditModalOpen = !c.isEditModalOpen
}

// HandleEditFood loads food into the edit modal and opens it.
func (c *Controller) HandleEditFood(food models.Food) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editingFood = &food
	c.isEditModalOpen = true
}

// Foods returns a copy of the current list.
func (c *Controller) Foods() []models.Food {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Food, len(c.foods))
	copy(out, c.foods)
	return out
}

// EditingFood returns the food loaded into the edit modal, if any.
func (c *Controller) EditingFood() (models.Food, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editingFood == nil {
		return models.Food{}, false
	}
	return *c.editingFood, true
}

func (c *Controller) IsModalOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isModalOpen
}

func (c *Controller) IsEditModalOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isEditModalOpen
}

// requestContext ties ctx to the controller's lifetime.
func (c *Controller) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(c.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (c *Controller) fail(op string, err error, fields logrus.Fields) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}
	utils.ErrorLogger.WithFields(fields).WithError(err).Errorf("%s failed", op)
	return err
}
