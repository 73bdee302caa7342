package service

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vbonduro/pantry/internal/domain"
)

// IngredientInput is the raw data for one delivery of stock.
type IngredientInput struct {
	Name         string
	Quantity     float64
	Unit         domain.Unit
	BestBefore   time.Time
	PricePerUnit decimal.Decimal
}

// RecipeInput describes a recipe together with all of its requirements so it
// can be validated before it becomes visible in the cookbook.
type RecipeInput struct {
	Name              string
	Description       string
	PreparationMethod string
	Servings          int
	Requirements      []domain.Requirement
}

// RecipeCheck is the outcome of matching one recipe against current stock.
type RecipeCheck struct {
	Recipe     *domain.Recipe
	CanMake    bool
	Shortfalls []domain.Shortfall
}

// Pantry serializes access to one inventory and one cookbook. Mutations take
// the write lock; lookups and matching share the read lock. Values handed
// back to callers are copies, never pointers into the collections.
type Pantry struct {
	mu        sync.RWMutex
	inventory *domain.Inventory
	cookbook  *domain.Cookbook
	logger    *slog.Logger
}

func NewPantry(inventory *domain.Inventory, cookbook *domain.Cookbook, logger *slog.Logger) *Pantry {
	return &Pantry{
		inventory: inventory,
		cookbook:  cookbook,
		logger:    logger,
	}
}

// AddIngredient stores new stock, merging it into an existing record of the
// same name, and returns the record as it stands afterwards.
func (p *Pantry) AddIngredient(in IngredientInput) (*domain.Ingredient, error) {
	ing, err := domain.NewIngredient(in.Name, in.Quantity, in.Unit, in.BestBefore, in.PricePerUnit)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	existing, err := p.inventory.FindByName(ing.Name)
	if err != nil {
		return nil, err
	}
	if err := p.inventory.Add(ing); err != nil {
		p.logger.Warn("ingredient rejected", "name", ing.Name, "unit", ing.Unit.String(), "error", err)
		return nil, fmt.Errorf("failed to add ingredient: %w", err)
	}

	stored, err := p.inventory.FindByName(ing.Name)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		p.logger.Info("ingredient added",
			"id", stored.ID.String(),
			"name", stored.Name,
			"quantity", stored.Quantity,
			"unit", stored.Unit.String(),
		)
	} else {
		p.logger.Info("ingredient merged",
			"id", stored.ID.String(),
			"name", stored.Name,
			"added_quantity", ing.Quantity,
			"added_unit", ing.Unit.String(),
			"quantity", stored.Quantity,
			"unit", stored.Unit.String(),
			"best_before", stored.BestBefore.Format(time.DateOnly),
		)
	}
	return stored, nil
}

// RemoveQuantity consumes stock. It reports false when the ingredient is not
// stocked at all.
func (p *Pantry) RemoveQuantity(name string, qty float64, unit domain.Unit) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ok, err := p.inventory.RemoveQuantity(name, qty, unit)
	if err != nil {
		return false, fmt.Errorf("failed to remove quantity: %w", err)
	}
	if !ok {
		p.logger.Debug("remove skipped, ingredient not stocked", "name", name)
		return false, nil
	}
	p.logger.Info("quantity removed", "name", name, "quantity", qty, "unit", unit.String())
	return true, nil
}

func (p *Pantry) FindIngredient(name string) (*domain.Ingredient, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.inventory.FindByName(name)
}

func (p *Pantry) ListIngredients() []domain.Ingredient {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.inventory.AllSortedByName()
}

func (p *Pantry) ExpiringBefore(date time.Time) ([]domain.Ingredient, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.inventory.ExpiringBefore(date)
}

// StockValue sums quantity times price per unit over every record.
func (p *Pantry) StockValue() decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()

	total := decimal.Zero
	for _, ing := range p.inventory.AllSortedByName() {
		total = total.Add(ing.PricePerUnit.Mul(decimal.NewFromFloat(ing.Quantity)))
	}
	return total
}

// AddRecipe builds the recipe with every requirement before inserting it, so
// a failed requirement leaves the cookbook untouched.
func (p *Pantry) AddRecipe(in RecipeInput) (*domain.Recipe, error) {
	r, err := domain.NewRecipe(in.Name, in.Description, in.PreparationMethod, in.Servings)
	if err != nil {
		return nil, err
	}
	for _, req := range in.Requirements {
		if err := r.AddRequirement(req.Name, req.Quantity, req.Unit); err != nil {
			return nil, err
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.cookbook.Add(r); err != nil {
		return nil, fmt.Errorf("failed to add recipe: %w", err)
	}
	p.logger.Info("recipe added", "name", r.Name, "id", r.ID.String(), "requirements", len(in.Requirements))
	return r, nil
}

func (p *Pantry) FindRecipe(name string) (*domain.Recipe, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cookbook.FindByName(name)
}

func (p *Pantry) ListRecipes() []*domain.Recipe {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cookbook.All()
}

func (p *Pantry) RemoveRecipe(name string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ok, err := p.cookbook.Remove(name)
	if err != nil {
		return false, err
	}
	if ok {
		p.logger.Info("recipe removed", "name", name)
	}
	return ok, nil
}

// CheckRecipe matches the named recipe against current stock. It returns nil
// when the cookbook has no such recipe.
func (p *Pantry) CheckRecipe(name string) (*RecipeCheck, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	r, err := p.cookbook.FindByName(name)
	if err != nil || r == nil {
		return nil, err
	}
	shortfalls := r.Shortfalls(p.inventory)
	return &RecipeCheck{
		Recipe:     r,
		CanMake:    len(shortfalls) == 0,
		Shortfalls: shortfalls,
	}, nil
}

func (p *Pantry) RecipesCanBeMade() ([]*domain.Recipe, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.cookbook.CanBeMade(p.inventory)
}

func (p *Pantry) RecipesCannotBeMade() ([]*domain.Recipe, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.cookbook.CannotBeMade(p.inventory)
}
