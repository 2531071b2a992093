package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"shopapi/internal/config"
	"shopapi/internal/database"
	"shopapi/internal/handlers"
	"shopapi/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureCategoryIndexes(db); err != nil {
		log.Printf("category index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}

	secret := config.AppEnv.JWTSecret

	r := gin.Default()
	r.Static("/public", "./public")

	r.POST("/auth/signin", handlers.SignIn(db, secret, config.AppEnv.AccessTokenTTL))
	r.POST("/auth/signup", handlers.SignUp(db))

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/seeder", handlers.SeedProducts(db))
	r.GET("/products/:id", handlers.GetProduct(db))
	r.PUT("/products/:id", middleware.AdminGuard(secret), handlers.UpdateProduct(db))

	r.GET("/categories", handlers.GetCategories(db))
	r.GET("/categories/seeder", handlers.SeedCategories(db))

	orders := r.Group("/orders")
	orders.Use(middleware.AuthGuard(secret))
	{
		orders.POST("", handlers.CreateOrder(db))
		orders.GET("/:id", handlers.GetOrder(db))
		orders.DELETE("/:id", handlers.DeleteOrder(db))
	}

	users := r.Group("/users")
	{
		users.GET("", middleware.AdminGuard(secret), handlers.GetUsers(db))
		users.GET("/:id", middleware.AuthGuard(secret), handlers.GetUser(db))
		users.PUT("/:id", middleware.AuthGuard(secret), handlers.UpdateUser(db))
		users.DELETE("/:id", middleware.AuthGuard(secret), handlers.DeleteUser(db))
	}

	r.POST("/files/uploadImage/:id", middleware.AdminGuard(secret), handlers.UploadImage(db, config.AppEnv.UploadDir))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
