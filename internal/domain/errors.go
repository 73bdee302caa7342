package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for empty names, non-positive quantities
	// or prices, and missing units or dates.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIncompatibleUnits is returned when two quantities from different
	// unit categories would have to be compared or combined.
	ErrIncompatibleUnits = errors.New("incompatible units")

	// ErrDuplicateRecipe is returned when a cookbook already holds a recipe
	// with the same name.
	ErrDuplicateRecipe = errors.New("recipe already exists")
)

// IncompatibleUnitsError carries the two units that could not be reconciled.
// It matches ErrIncompatibleUnits under errors.Is.
type IncompatibleUnitsError struct {
	Subject string
	From    Unit
	To      Unit
}

func (e *IncompatibleUnitsError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("incompatible units: %s (%s) and %s (%s)", e.From, e.From.Category(), e.To, e.To.Category())
	}
	return fmt.Sprintf("incompatible units for %q: %s (%s) and %s (%s)", e.Subject, e.From, e.From.Category(), e.To, e.To.Category())
}

func (e *IncompatibleUnitsError) Is(target error) bool {
	return target == ErrIncompatibleUnits
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
