package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Cookbook holds recipes keyed by name, ignoring case. Unlike ingredients,
// a recipe with a name already present is rejected rather than merged.
// Recipes are copied on the way in and on the way out, so renaming a
// returned recipe never changes the cookbook.
type Cookbook struct {
	recipes map[string]*Recipe
}

func NewCookbook() *Cookbook {
	return &Cookbook{recipes: make(map[string]*Recipe)}
}

func (c *Cookbook) Add(r *Recipe) error {
	if r == nil {
		return invalidArgument("recipe cannot be nil")
	}
	if strings.TrimSpace(r.Name) == "" {
		return invalidArgument("recipe name cannot be empty")
	}
	key := nameKey(r.Name)
	if _, exists := c.recipes[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateRecipe, r.Name)
	}
	c.recipes[key] = r.Clone()
	return nil
}

// FindByName returns a copy of the named recipe, or nil when there is none.
func (c *Cookbook) FindByName(name string) (*Recipe, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalidArgument("recipe name cannot be empty")
	}
	r, ok := c.recipes[nameKey(name)]
	if !ok {
		return nil, nil
	}
	return r.Clone(), nil
}

func (c *Cookbook) Contains(name string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, invalidArgument("recipe name cannot be empty")
	}
	_, ok := c.recipes[nameKey(name)]
	return ok, nil
}

// Remove deletes the named recipe and reports whether it existed.
func (c *Cookbook) Remove(name string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, invalidArgument("recipe name cannot be empty")
	}
	key := nameKey(name)
	if _, ok := c.recipes[key]; !ok {
		return false, nil
	}
	delete(c.recipes, key)
	return true, nil
}

func (c *Cookbook) Len() int {
	return len(c.recipes)
}

// All returns a copy of every recipe ordered by name.
func (c *Cookbook) All() []*Recipe {
	out := make([]*Recipe, 0, len(c.recipes))
	for _, r := range c.recipes {
		out = append(out, r.Clone())
	}
	sortRecipes(out)
	return out
}

// Partition splits the cookbook into recipes that inv can and cannot
// satisfy. Each recipe lands in exactly one of the two slices.
func (c *Cookbook) Partition(inv *Inventory) (can, cannot []*Recipe, err error) {
	if inv == nil {
		return nil, nil, invalidArgument("inventory cannot be nil")
	}
	can = make([]*Recipe, 0, len(c.recipes))
	cannot = make([]*Recipe, 0, len(c.recipes))
	for _, r := range c.All() {
		if r.CanBeMadeFrom(inv) {
			can = append(can, r)
		} else {
			cannot = append(cannot, r)
		}
	}
	return can, cannot, nil
}

func (c *Cookbook) CanBeMade(inv *Inventory) ([]*Recipe, error) {
	can, _, err := c.Partition(inv)
	return can, err
}

func (c *Cookbook) CannotBeMade(inv *Inventory) ([]*Recipe, error) {
	_, cannot, err := c.Partition(inv)
	return cannot, err
}

func sortRecipes(rs []*Recipe) {
	slices.SortFunc(rs, func(a, b *Recipe) int {
		return cmp.Compare(nameKey(a.Name), nameKey(b.Name))
	})
}
