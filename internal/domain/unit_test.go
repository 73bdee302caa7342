package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitCategories(t *testing.T) {
	assert.Equal(t, Mass, Gram.Category())
	assert.Equal(t, Mass, Kilogram.Category())
	assert.Equal(t, Volume, Deciliter.Category())
	assert.Equal(t, Volume, Liter.Category())
	assert.Equal(t, Count, Piece.Category())
}

func TestUnitCompatibleWith(t *testing.T) {
	assert.True(t, Gram.CompatibleWith(Kilogram))
	assert.True(t, Liter.CompatibleWith(Deciliter))
	assert.True(t, Piece.CompatibleWith(Piece))
	assert.False(t, Gram.CompatibleWith(Liter))
	assert.False(t, Piece.CompatibleWith(Kilogram))
	assert.False(t, Unit(0).CompatibleWith(Unit(0)))
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		qty  float64
		from Unit
		to   Unit
		want float64
	}{
		{name: "kilogram to gram", qty: 1.5, from: Kilogram, to: Gram, want: 1500},
		{name: "gram to kilogram", qty: 250, from: Gram, to: Kilogram, want: 0.25},
		{name: "liter to deciliter", qty: 2, from: Liter, to: Deciliter, want: 20},
		{name: "deciliter to liter", qty: 3, from: Deciliter, to: Liter, want: 0.3},
		{name: "same unit", qty: 7, from: Piece, to: Piece, want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.qty, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestConvertIncompatible(t *testing.T) {
	_, err := Convert(1, Gram, Liter)
	require.ErrorIs(t, err, ErrIncompatibleUnits)

	var uerr *IncompatibleUnitsError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, Gram, uerr.From)
	assert.Equal(t, Liter, uerr.To)
}

func TestConvertInvalidUnit(t *testing.T) {
	_, err := Convert(1, Unit(0), Gram)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUnitRoundTrip(t *testing.T) {
	for _, u := range Units() {
		for _, q := range []float64{0.001, 0.1, 1, 2.2, 12, 1500, 123456.789} {
			assert.InDelta(t, q, u.FromBase(u.ToBase(q)), 1e-9*q, "unit %s qty %v", u, q)
		}
	}
}

func TestParseUnit(t *testing.T) {
	tests := map[string]Unit{
		"g":         Gram,
		" GRAM ":    Gram,
		"kg":        Kilogram,
		"Kilogram":  Kilogram,
		"dl":        Deciliter,
		"deciliter": Deciliter,
		"L":         Liter,
		"liter":     Liter,
		"pcs":       Piece,
		"pieces":    Piece,
	}
	for in, want := range tests {
		got, err := ParseUnit(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseUnit("cup")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ParseUnit("  ")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUnitString(t *testing.T) {
	assert.Equal(t, "L", Liter.String())
	assert.Equal(t, "pcs", Piece.String())
	assert.Equal(t, "kilogram", Kilogram.Name())
	assert.Equal(t, "Unit(0)", Unit(0).String())
	assert.Equal(t, "volume", Liter.Category().String())
}
