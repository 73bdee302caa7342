package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vbonduro/pantry/internal/domain"
)

// SeedSamples stocks a small starter inventory relative to today and adds
// two recipes that use it.
func (p *Pantry) SeedSamples(today time.Time) error {
	stock := []IngredientInput{
		{Name: "Milk", Quantity: 2, Unit: domain.Liter, BestBefore: today.AddDate(0, 0, 5), PricePerUnit: decimal.NewFromInt(20)},
		{Name: "Bread", Quantity: 1, Unit: domain.Piece, BestBefore: today.AddDate(0, 0, 2), PricePerUnit: decimal.NewFromInt(25)},
		{Name: "Eggs", Quantity: 12, Unit: domain.Piece, BestBefore: today.AddDate(0, 0, 10), PricePerUnit: decimal.NewFromInt(3)},
		{Name: "Cheese", Quantity: 0.5, Unit: domain.Kilogram, BestBefore: today.AddDate(0, 0, 15), PricePerUnit: decimal.NewFromInt(50)},
		{Name: "Flour", Quantity: 1, Unit: domain.Kilogram, BestBefore: today.AddDate(0, 0, 30), PricePerUnit: decimal.NewFromInt(15)},
		{Name: "Sugar", Quantity: 0.5, Unit: domain.Kilogram, BestBefore: today.AddDate(1, 0, 0), PricePerUnit: decimal.NewFromInt(10)},
	}
	for _, in := range stock {
		if _, err := p.AddIngredient(in); err != nil {
			return fmt.Errorf("failed to seed %s: %w", in.Name, err)
		}
	}

	recipes := []RecipeInput{
		{
			Name:              "Pancakes",
			Description:       "Fluffy pancakes",
			PreparationMethod: "Mix ingredients and cook on a skillet.",
			Servings:          4,
			Requirements: []domain.Requirement{
				{Name: "Flour", Quantity: 200, Unit: domain.Gram},
				{Name: "Milk", Quantity: 3, Unit: domain.Deciliter},
				{Name: "Eggs", Quantity: 2, Unit: domain.Piece},
				{Name: "Sugar", Quantity: 50, Unit: domain.Gram},
			},
		},
		{
			Name:              "Omelette",
			Description:       "Simple omelette",
			PreparationMethod: "Beat eggs and cook on a pan.",
			Servings:          2,
			Requirements: []domain.Requirement{
				{Name: "Eggs", Quantity: 3, Unit: domain.Piece},
				{Name: "Cheese", Quantity: 50, Unit: domain.Gram},
				{Name: "Milk", Quantity: 0.5, Unit: domain.Deciliter},
			},
		},
	}
	for _, in := range recipes {
		if _, err := p.AddRecipe(in); err != nil {
			return fmt.Errorf("failed to seed recipe %s: %w", in.Name, err)
		}
	}

	p.logger.Info("sample data loaded", "ingredients", len(stock), "recipes", len(recipes))
	return nil
}
