package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopapi/internal/models"
)

type seedProduct struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
}

// seedCatalog is the static catalog the seeder routes load.
var seedCatalog = []seedProduct{
	{Name: "Iphone 15", Description: "The best smartphone in the world", Price: 199.99, Stock: 12, Category: "smartphone"},
	{Name: "Samsung Galaxy S23", Description: "The best smartphone in the world", Price: 150.00, Stock: 12, Category: "smartphone"},
	{Name: "Motorola Edge 40", Description: "The best smartphone in the world", Price: 179.89, Stock: 12, Category: "smartphone"},
	{Name: "Samsung Odyssey G9", Description: "The best monitor in the world", Price: 299.99, Stock: 12, Category: "monitor"},
	{Name: "LG UltraGear", Description: "The best monitor in the world", Price: 199.99, Stock: 12, Category: "monitor"},
	{Name: "Acer Predator", Description: "The best monitor in the world", Price: 150.00, Stock: 12, Category: "monitor"},
	{Name: "Razer BlackWidow V3", Description: "The best keyboard in the world", Price: 99.99, Stock: 12, Category: "keyboard"},
	{Name: "Corsair K70", Description: "The best keyboard in the world", Price: 79.99, Stock: 12, Category: "keyboard"},
	{Name: "Logitech G Pro", Description: "The best keyboard in the world", Price: 59.99, Stock: 12, Category: "keyboard"},
	{Name: "Razer Viper", Description: "The best mouse in the world", Price: 49.99, Stock: 12, Category: "mouse"},
	{Name: "Logitech G502 Pro", Description: "The best mouse in the world", Price: 39.99, Stock: 12, Category: "mouse"},
	{Name: "SteelSeries Rival 3", Description: "The best mouse in the world", Price: 29.99, Stock: 12, Category: "mouse"},
}

/*
GET /categories/seeder
- inserts the distinct category names from the static catalog
- existing names are left untouched
*/
func SeedCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /categories/seeder"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		opts := options.Update().SetUpsert(true)
		for _, name := range seedCategoryNames() {
			_, err := db.Collection("categories").UpdateOne(
				ctx,
				bson.M{"name": name},
				bson.M{"$setOnInsert": bson.M{
					"name":      name,
					"createdAt": time.Now(),
				}},
				opts,
			)
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "categories seeded"})
	}
}

/*
GET /products/seeder
- upserts the static catalog by product name
- description, price and stock are refreshed; name and category stay fixed
- requires the categories seeder to have run first
*/
func SeedProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/seeder"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		categories, err := loadCategoriesByName(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		opts := options.Update().SetUpsert(true)
		for _, item := range seedCatalog {
			category, ok := categories[item.Category]
			if !ok {
				respondWithError(c, http.StatusBadRequest, route,
					fmt.Sprintf("category %q does not exist, run the categories seeder first", item.Category))
				return
			}

			_, err := db.Collection("products").UpdateOne(
				ctx,
				bson.M{"name": item.Name},
				bson.M{
					"$set": bson.M{
						"description": item.Description,
						"price":       item.Price,
						"stock":       item.Stock,
					},
					"$setOnInsert": bson.M{
						"name": item.Name,
						"category": models.ProductCategory{
							ID:   category.ID,
							Name: category.Name,
						},
						"createdAt": time.Now(),
					},
				},
				opts,
			)
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "products seeded"})
	}
}

func seedCategoryNames() []string {
	seen := make(map[string]struct{}, len(seedCatalog))
	names := make([]string, 0, len(seedCatalog))
	for _, item := range seedCatalog {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		names = append(names, item.Category)
	}
	return names
}

func loadCategoriesByName(ctx context.Context, db *mongo.Database) (map[string]models.Category, error) {
	cursor, err := db.Collection("categories").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}

	byName := make(map[string]models.Category, len(categories))
	for _, category := range categories {
		byName[category.Name] = category
	}
	return byName, nil
}
