package domain

import (
	"cmp"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Requirement is the amount of one ingredient a recipe needs.
type Requirement struct {
	Name     string
	Quantity float64
	Unit     Unit
}

// ShortfallReason explains why a requirement is not met.
type ShortfallReason int

const (
	ShortfallMissing ShortfallReason = iota + 1
	ShortfallIncompatible
	ShortfallInsufficient
)

func (r ShortfallReason) String() string {
	switch r {
	case ShortfallMissing:
		return "not in stock"
	case ShortfallIncompatible:
		return "stocked in an incompatible unit"
	case ShortfallInsufficient:
		return "not enough in stock"
	default:
		return "unknown"
	}
}

// Shortfall describes one unmet requirement. Missing is the amount still
// needed, expressed in the requirement's unit.
type Shortfall struct {
	Requirement Requirement
	Reason      ShortfallReason
	Missing     float64
}

type Recipe struct {
	ID                uuid.UUID
	Name              string
	Description       string
	PreparationMethod string
	Servings          int

	requirements map[string]Requirement
}

func NewRecipe(name, description, preparationMethod string, servings int) (*Recipe, error) {
	r := &Recipe{ID: uuid.New(), requirements: make(map[string]Requirement)}
	if err := r.setName(name); err != nil {
		return nil, err
	}
	if err := r.SetDescription(description); err != nil {
		return nil, err
	}
	if err := r.SetPreparationMethod(preparationMethod); err != nil {
		return nil, err
	}
	if err := r.SetServings(servings); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Recipe) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalidArgument("recipe name cannot be empty")
	}
	r.Name = name
	return nil
}

func (r *Recipe) SetDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return invalidArgument("recipe description cannot be empty")
	}
	r.Description = description
	return nil
}

func (r *Recipe) SetPreparationMethod(method string) error {
	method = strings.TrimSpace(method)
	if method == "" {
		return invalidArgument("preparation method cannot be empty")
	}
	r.PreparationMethod = method
	return nil
}

func (r *Recipe) SetServings(servings int) error {
	if servings <= 0 {
		return invalidArgument("servings must be positive, got %d", servings)
	}
	r.Servings = servings
	return nil
}

// AddRequirement records that the recipe needs qty of unit of the named
// ingredient. A second requirement for the same name replaces the first.
func (r *Recipe) AddRequirement(name string, qty float64, unit Unit) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalidArgument("ingredient name cannot be empty")
	}
	if !validQuantity(qty) {
		return invalidArgument("quantity of %q must be positive, got %v", name, qty)
	}
	if !unit.Valid() {
		return invalidArgument("unit of %q cannot be empty", name)
	}
	if r.requirements == nil {
		r.requirements = make(map[string]Requirement)
	}
	r.requirements[nameKey(name)] = Requirement{Name: name, Quantity: qty, Unit: unit}
	return nil
}

// Requirements returns the recipe's requirements ordered by ingredient name.
func (r *Recipe) Requirements() []Requirement {
	out := make([]Requirement, 0, len(r.requirements))
	for _, req := range r.requirements {
		out = append(out, req)
	}
	slices.SortFunc(out, func(a, b Requirement) int {
		return cmp.Compare(nameKey(a.Name), nameKey(b.Name))
	})
	return out
}

// SameAs reports whether both recipes carry the same name, ignoring case.
func (r *Recipe) SameAs(other *Recipe) bool {
	return other != nil && nameKey(r.Name) == nameKey(other.Name)
}

// Clone returns a deep copy that shares no state with r.
func (r *Recipe) Clone() *Recipe {
	c := *r
	c.requirements = make(map[string]Requirement, len(r.requirements))
	for k, v := range r.requirements {
		c.requirements[k] = v
	}
	return &c
}

// CanBeMadeFrom reports whether inv holds enough of every required
// ingredient in a compatible unit. It stops at the first unmet requirement
// and never modifies inv. A nil inventory is treated as empty.
func (r *Recipe) CanBeMadeFrom(inv *Inventory) bool {
	for key, req := range r.requirements {
		if _, ok := check(inv, key, req); !ok {
			return false
		}
	}
	return true
}

// Shortfalls lists every requirement inv cannot satisfy, ordered by
// ingredient name. An empty result means the recipe can be made.
func (r *Recipe) Shortfalls(inv *Inventory) []Shortfall {
	var out []Shortfall
	for _, req := range r.Requirements() {
		if s, ok := check(inv, nameKey(req.Name), req); !ok {
			out = append(out, s)
		}
	}
	return out
}

func check(inv *Inventory, key string, req Requirement) (Shortfall, bool) {
	if inv == nil {
		return Shortfall{Requirement: req, Reason: ShortfallMissing, Missing: req.Quantity}, false
	}
	stock, ok := inv.lookup(key)
	if !ok {
		return Shortfall{Requirement: req, Reason: ShortfallMissing, Missing: req.Quantity}, false
	}
	if !stock.Unit.CompatibleWith(req.Unit) {
		return Shortfall{Requirement: req, Reason: ShortfallIncompatible, Missing: req.Quantity}, false
	}
	required := req.Unit.ToBase(req.Quantity)
	available := stock.BaseQuantity()
	if available < required {
		return Shortfall{
			Requirement: req,
			Reason:      ShortfallInsufficient,
			Missing:     req.Unit.FromBase(required - available),
		}, false
	}
	return Shortfall{}, true
}
