package domain

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PricePolicy decides the price per unit of a stock record after a merge.
type PricePolicy int

const (
	// PriceMean takes the arithmetic mean of the two prices, ignoring how much
	// stock each side contributed.
	PriceMean PricePolicy = iota
	// PriceWeighted weights each price by its quantity after rescaling the
	// incoming price to the persistent unit.
	PriceWeighted
)

func (p PricePolicy) String() string {
	switch p {
	case PriceMean:
		return "mean"
	case PriceWeighted:
		return "weighted"
	default:
		return "unknown"
	}
}

var two = decimal.NewFromInt(2)

func (p PricePolicy) merge(existing, incoming *Ingredient) decimal.Decimal {
	if p != PriceWeighted {
		return existing.PricePerUnit.Add(incoming.PricePerUnit).Div(two)
	}
	ratio := decimal.NewFromFloat(existing.Unit.ToBase(1)).Div(decimal.NewFromFloat(incoming.Unit.ToBase(1)))
	incomingPrice := incoming.PricePerUnit.Mul(ratio)
	existingQty := decimal.NewFromFloat(existing.Quantity)
	incomingQty := decimal.NewFromFloat(existing.Unit.FromBase(incoming.BaseQuantity()))
	total := existingQty.Mul(existing.PricePerUnit).Add(incomingQty.Mul(incomingPrice))
	return total.Div(existingQty.Add(incomingQty))
}

type Option func(*Inventory)

// WithPricePolicy selects how prices combine when stock is merged.
func WithPricePolicy(p PricePolicy) Option {
	return func(inv *Inventory) { inv.pricing = p }
}

type stockRecord struct {
	ingredient Ingredient
	seq        uint64
}

// Inventory holds at most one stock record per ingredient name. The unit of
// the first record inserted under a name is kept for the lifetime of that
// record; later additions are converted into it.
//
// Inventory is not safe for concurrent use.
type Inventory struct {
	records map[string]*stockRecord
	nextSeq uint64
	pricing PricePolicy
}

func NewInventory(opts ...Option) *Inventory {
	inv := &Inventory{records: make(map[string]*stockRecord)}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

func (inv *Inventory) PricePolicy() PricePolicy {
	return inv.pricing
}

// Add inserts a copy of ing, or merges it into the existing record with the
// same name. On merge the quantity is summed in the persistent unit, the
// earlier best-before date wins and the price is combined by the inventory's
// PricePolicy.
func (inv *Inventory) Add(ing *Ingredient) error {
	if ing == nil {
		return invalidArgument("ingredient cannot be nil")
	}
	if err := ing.Validate(); err != nil {
		return err
	}

	key := nameKey(ing.Name)
	rec, ok := inv.records[key]
	if !ok {
		stored := *ing
		stored.Name = strings.TrimSpace(stored.Name)
		stored.BestBefore = Date(stored.BestBefore)
		inv.records[key] = &stockRecord{ingredient: stored, seq: inv.nextSeq}
		inv.nextSeq++
		return nil
	}

	existing := &rec.ingredient
	if !existing.Unit.CompatibleWith(ing.Unit) {
		return &IncompatibleUnitsError{Subject: existing.Name, From: existing.Unit, To: ing.Unit}
	}

	total := existing.BaseQuantity() + ing.BaseQuantity()
	if math.IsInf(total, 0) {
		return invalidArgument("merged quantity of %q is out of range", existing.Name)
	}

	price := inv.pricing.merge(existing, ing)
	existing.Quantity = existing.Unit.FromBase(total)
	if bb := Date(ing.BestBefore); bb.Before(existing.BestBefore) {
		existing.BestBefore = bb
	}
	existing.PricePerUnit = price
	return nil
}

// RemoveQuantity takes qty of unit out of the named record. It returns false
// when no record exists. Asking for as much as is stored, or more, removes the
// record entirely; the excess is not reported as an error.
func (inv *Inventory) RemoveQuantity(name string, qty float64, unit Unit) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, invalidArgument("ingredient name cannot be empty")
	}
	if !validQuantity(qty) {
		return false, invalidArgument("quantity to remove must be positive, got %v", qty)
	}
	if !unit.Valid() {
		return false, invalidArgument("unit cannot be empty")
	}

	key := nameKey(name)
	rec, ok := inv.records[key]
	if !ok {
		return false, nil
	}

	stored := &rec.ingredient
	if !stored.Unit.CompatibleWith(unit) {
		return false, &IncompatibleUnitsError{Subject: stored.Name, From: stored.Unit, To: unit}
	}

	current := stored.BaseQuantity()
	requested := unit.ToBase(qty)
	if requested >= current {
		delete(inv.records, key)
		return true, nil
	}

	remaining := stored.Unit.FromBase(current - requested)
	if remaining <= 0 {
		delete(inv.records, key)
		return true, nil
	}
	stored.Quantity = remaining
	return true, nil
}

// FindByName returns a copy of the named record, or nil when there is none.
func (inv *Inventory) FindByName(name string) (*Ingredient, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalidArgument("ingredient name cannot be empty")
	}
	rec, ok := inv.records[nameKey(name)]
	if !ok {
		return nil, nil
	}
	ing := rec.ingredient
	return &ing, nil
}

func (inv *Inventory) lookup(key string) (*Ingredient, bool) {
	rec, ok := inv.records[key]
	if !ok {
		return nil, false
	}
	return &rec.ingredient, true
}

func (inv *Inventory) Len() int {
	return len(inv.records)
}

// AllSortedByName returns a snapshot of every record ordered by name, ignoring
// case. Records whose names compare equal keep insertion order.
func (inv *Inventory) AllSortedByName() []Ingredient {
	recs := inv.snapshot()
	slices.SortStableFunc(recs, func(a, b stockRecord) int {
		if c := cmp.Compare(nameKey(a.ingredient.Name), nameKey(b.ingredient.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	return ingredientsOf(recs)
}

// ExpiringBefore returns the records whose best-before date is strictly
// before date, earliest first. Equal dates are ordered by name.
func (inv *Inventory) ExpiringBefore(date time.Time) ([]Ingredient, error) {
	if date.IsZero() {
		return nil, invalidArgument("date cannot be empty")
	}
	cutoff := Date(date)

	var recs []stockRecord
	for _, rec := range inv.records {
		if rec.ingredient.BestBefore.Before(cutoff) {
			recs = append(recs, *rec)
		}
	}
	slices.SortFunc(recs, func(a, b stockRecord) int {
		if c := a.ingredient.BestBefore.Compare(b.ingredient.BestBefore); c != 0 {
			return c
		}
		if c := cmp.Compare(nameKey(a.ingredient.Name), nameKey(b.ingredient.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	return ingredientsOf(recs), nil
}

func (inv *Inventory) snapshot() []stockRecord {
	recs := make([]stockRecord, 0, len(inv.records))
	for _, rec := range inv.records {
		recs = append(recs, *rec)
	}
	return recs
}

func ingredientsOf(recs []stockRecord) []Ingredient {
	out := make([]Ingredient, len(recs))
	for i, rec := range recs {
		out[i] = rec.ingredient
	}
	return out
}
