package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingredient is one stock record. Name comparison is case-insensitive but the
// original casing is kept for display.
type Ingredient struct {
	ID           uuid.UUID
	Name         string
	Quantity     float64
	Unit         Unit
	BestBefore   time.Time
	PricePerUnit decimal.Decimal
}

// NewIngredient trims name, truncates bestBefore to a calendar date and
// validates every field.
func NewIngredient(name string, quantity float64, unit Unit, bestBefore time.Time, pricePerUnit decimal.Decimal) (*Ingredient, error) {
	ing := &Ingredient{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Quantity:     quantity,
		Unit:         unit,
		BestBefore:   Date(bestBefore),
		PricePerUnit: pricePerUnit,
	}
	if err := ing.Validate(); err != nil {
		return nil, err
	}
	return ing, nil
}

// Validate checks the invariants every stored ingredient must satisfy.
func (i *Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return invalidArgument("ingredient name cannot be empty")
	}
	if !validQuantity(i.Quantity) {
		return invalidArgument("quantity of %q must be positive, got %v", i.Name, i.Quantity)
	}
	if !i.Unit.Valid() {
		return invalidArgument("unit of %q cannot be empty", i.Name)
	}
	if math.IsInf(i.BaseQuantity(), 0) {
		return invalidArgument("quantity of %q is out of range, got %v %s", i.Name, i.Quantity, i.Unit)
	}
	if i.BestBefore.IsZero() {
		return invalidArgument("best-before date of %q cannot be empty", i.Name)
	}
	if !i.PricePerUnit.IsPositive() {
		return invalidArgument("price of %q must be positive, got %s", i.Name, i.PricePerUnit)
	}
	return nil
}

// BaseQuantity is the stored quantity in the base unit of its category.
func (i *Ingredient) BaseQuantity() float64 {
	return i.Unit.ToBase(i.Quantity)
}

// Date strips the clock from t, keeping its calendar day in UTC.
func Date(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
