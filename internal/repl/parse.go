package repl

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vbonduro/pantry/internal/domain"
	"github.com/vbonduro/pantry/internal/service"
)

// splitFields splits a line of the form "a | b | c" and trims every field.
func splitFields(line string) []string {
	parts := strings.Split(line, "|")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		fields = append(fields, strings.TrimSpace(p))
	}
	return fields
}

// ParseQuantity reads an amount followed by a unit, e.g. "500 g", "1.5kg",
// "1e3 g" or "12 pieces".
func ParseQuantity(s string) (float64, domain.Unit, error) {
	s = strings.TrimSpace(s)
	idx := numericPrefix(s)
	if idx == 0 || strings.TrimSpace(s[idx:]) == "" {
		return 0, 0, fmt.Errorf("quantity %q must be a number followed by a unit", s)
	}

	qty, err := strconv.ParseFloat(s[:idx], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid amount in %q: %w", s, err)
	}
	if qty <= 0 {
		return 0, 0, fmt.Errorf("amount in %q must be positive", s)
	}

	unit, err := domain.ParseUnit(s[idx:])
	if err != nil {
		return 0, 0, err
	}
	return qty, unit, nil
}

// numericPrefix returns the length of the leading decimal number in s,
// exponent included. An "e" without digits after it is left for the unit.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
		i++
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// ParseIngredientLine parses "name | quantity unit | best-before | price".
func ParseIngredientLine(line, dateLayout string) (service.IngredientInput, error) {
	fields := splitFields(line)
	if len(fields) != 4 {
		return service.IngredientInput{}, fmt.Errorf("expected name | quantity unit | best-before | price, got %d fields", len(fields))
	}

	qty, unit, err := ParseQuantity(fields[1])
	if err != nil {
		return service.IngredientInput{}, err
	}
	bestBefore, err := time.Parse(dateLayout, fields[2])
	if err != nil {
		return service.IngredientInput{}, fmt.Errorf("invalid date %q, expected layout %s", fields[2], dateLayout)
	}
	price, err := decimal.NewFromString(fields[3])
	if err != nil {
		return service.IngredientInput{}, fmt.Errorf("invalid price %q: %w", fields[3], err)
	}

	return service.IngredientInput{
		Name:         fields[0],
		Quantity:     qty,
		Unit:         unit,
		BestBefore:   bestBefore,
		PricePerUnit: price,
	}, nil
}

// ParseRequirementLine parses "name | quantity unit".
func ParseRequirementLine(line string) (domain.Requirement, error) {
	fields := splitFields(line)
	if len(fields) != 2 {
		return domain.Requirement{}, fmt.Errorf("expected name | quantity unit, got %d fields", len(fields))
	}
	qty, unit, err := ParseQuantity(fields[1])
	if err != nil {
		return domain.Requirement{}, err
	}
	return domain.Requirement{Name: fields[0], Quantity: qty, Unit: unit}, nil
}

// ParseRecipeLine parses "name | description | method | servings".
func ParseRecipeLine(line string) (service.RecipeInput, error) {
	fields := splitFields(line)
	if len(fields) != 4 {
		return service.RecipeInput{}, fmt.Errorf("expected name | description | method | servings, got %d fields", len(fields))
	}
	servings, err := strconv.Atoi(fields[3])
	if err != nil {
		return service.RecipeInput{}, fmt.Errorf("invalid servings %q", fields[3])
	}
	return service.RecipeInput{
		Name:              fields[0],
		Description:       fields[1],
		PreparationMethod: fields[2],
		Servings:          servings,
	}, nil
}
