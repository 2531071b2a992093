package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopapi/internal/models"
)

func TestOrderTotalSumsSnapshotPrices(t *testing.T) {
	products := []models.OrderProduct{
		{Name: "Iphone 15", Price: 199.99},
		{Name: "Samsung Galaxy S23", Price: 150.00},
		{Name: "Motorola Edge 40", Price: 179.89},
	}

	if got := orderTotal(products); got != 529.88 {
		t.Fatalf("expected total 529.88, got %v", got)
	}
}

func TestOrderTotalAvoidsFloatDrift(t *testing.T) {
	products := []models.OrderProduct{
		{Price: 0.1},
		{Price: 0.2},
	}

	if got := orderTotal(products); got != 0.3 {
		t.Fatalf("expected total 0.3, got %v", got)
	}
}

func TestOrderTotalRoundsHalfUp(t *testing.T) {
	products := []models.OrderProduct{
		{Price: 10.555},
	}

	if got := orderTotal(products); got != 10.56 {
		t.Fatalf("expected half-up rounding to 10.56, got %v", got)
	}
}

func TestOrderTotalEmpty(t *testing.T) {
	if got := orderTotal(nil); got != 0 {
		t.Fatalf("expected 0 total for no products, got %v", got)
	}
}

func TestSnapshotProductFreezesNameAndPrice(t *testing.T) {
	product := models.Product{
		ID:    primitive.NewObjectID(),
		Name:  "Razer Viper",
		Price: 49.99,
		Stock: 3,
	}

	snapshot := snapshotProduct(product)
	if snapshot.ProductID != product.ID {
		t.Fatal("expected snapshot to reference the product id")
	}
	if snapshot.Name != product.Name || snapshot.Price != product.Price {
		t.Fatalf("expected name and price to be copied, got %+v", snapshot)
	}
}
