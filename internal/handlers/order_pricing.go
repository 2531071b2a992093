package handlers

import (
	"github.com/shopspring/decimal"

	"shopapi/internal/models"
)

// orderTotal sums the snapshotted line prices and rounds to 2 decimal
// places, half away from zero. The total is computed once at placement and
// never recomputed, even if product prices change later.
func orderTotal(products []models.OrderProduct) float64 {
	sum := decimal.Zero
	for _, p := range products {
		sum = sum.Add(decimal.NewFromFloat(p.Price))
	}

	total, _ := sum.Round(2).Float64()
	return total
}

// snapshotProduct freezes the purchasable state of a product into an order
// line.
func snapshotProduct(p models.Product) models.OrderProduct {
	return models.OrderProduct{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
	}
}
