package domain

import (
	"fmt"
	"math"
	"strings"
)

// Category partitions units into groups that can be converted between.
type Category int

const (
	Mass Category = iota + 1
	Volume
	Count
)

func (c Category) String() string {
	switch c {
	case Mass:
		return "mass"
	case Volume:
		return "volume"
	case Count:
		return "count"
	default:
		return "unknown"
	}
}

// Unit is one of a closed set of measurement units. The zero value is not a
// unit and fails Valid.
type Unit int

const (
	Gram Unit = iota + 1
	Kilogram
	Deciliter
	Liter
	Piece
)

type unitDef struct {
	abbreviation string
	name         string
	category     Category
	factorToBase float64
}

// Bases are gram, deciliter and piece. All factors are integers so that
// conversions within a category do not drift.
var unitTable = [...]unitDef{
	Gram:      {abbreviation: "g", name: "gram", category: Mass, factorToBase: 1},
	Kilogram:  {abbreviation: "kg", name: "kilogram", category: Mass, factorToBase: 1000},
	Deciliter: {abbreviation: "dl", name: "deciliter", category: Volume, factorToBase: 1},
	Liter:     {abbreviation: "L", name: "liter", category: Volume, factorToBase: 10},
	Piece:     {abbreviation: "pcs", name: "piece", category: Count, factorToBase: 1},
}

var unitAliases = map[string]Unit{
	"g":         Gram,
	"gram":      Gram,
	"grams":     Gram,
	"kg":        Kilogram,
	"kilogram":  Kilogram,
	"kilograms": Kilogram,
	"dl":        Deciliter,
	"deciliter": Deciliter,
	"l":         Liter,
	"liter":     Liter,
	"liters":    Liter,
	"pcs":       Piece,
	"piece":     Piece,
	"pieces":    Piece,
}

// Units lists every unit in declaration order.
func Units() []Unit {
	return []Unit{Gram, Kilogram, Deciliter, Liter, Piece}
}

// ParseUnit resolves an abbreviation or unit name, ignoring case and
// surrounding whitespace.
func ParseUnit(s string) (Unit, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return 0, invalidArgument("unit cannot be empty")
	}
	u, ok := unitAliases[key]
	if !ok {
		return 0, invalidArgument("unknown unit %q", s)
	}
	return u, nil
}

func (u Unit) Valid() bool {
	return u >= Gram && u <= Piece
}

func (u Unit) def() unitDef {
	if !u.Valid() {
		return unitDef{}
	}
	return unitTable[u]
}

func (u Unit) Abbreviation() string { return u.def().abbreviation }

func (u Unit) Name() string { return u.def().name }

func (u Unit) Category() Category { return u.def().category }

func (u Unit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return u.def().abbreviation
}

// CompatibleWith reports whether u and other belong to the same category.
func (u Unit) CompatibleWith(other Unit) bool {
	return u.Valid() && other.Valid() && u.Category() == other.Category()
}

// ToBase converts qty expressed in u into the category's base unit.
func (u Unit) ToBase(qty float64) float64 {
	return qty * u.def().factorToBase
}

// FromBase converts qty expressed in the category's base unit into u.
func (u Unit) FromBase(qty float64) float64 {
	return qty / u.def().factorToBase
}

// Convert expresses qty in from as an amount of to. No rounding is applied.
func Convert(qty float64, from, to Unit) (float64, error) {
	if !from.Valid() || !to.Valid() {
		return 0, invalidArgument("unit cannot be empty")
	}
	if !from.CompatibleWith(to) {
		return 0, &IncompatibleUnitsError{From: from, To: to}
	}
	return to.FromBase(from.ToBase(qty)), nil
}

func validQuantity(q float64) bool {
	return q > 0 && !math.IsInf(q, 0) && !math.IsNaN(q)
}
