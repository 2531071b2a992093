package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shopapi/internal/models"
)

type orderProductRequest struct {
	ID string `json:"id" binding:"required"`
}

type createOrderRequest struct {
	UserID   string                `json:"userId" binding:"required"`
	Products []orderProductRequest `json:"products" binding:"required,min=1,dive"`
}

// stockDecrement builds the conditional update for buying one unit. The
// filter matches only while at least one unit remains, so two concurrent
// orders for the last unit cannot both commit and stock never goes negative.
func stockDecrement(productID primitive.ObjectID) (filter, update bson.M) {
	filter = bson.M{"_id": productID, "stock": bson.M{"$gte": 1}}
	update = bson.M{"$inc": bson.M{"stock": -1}}
	return filter, update
}

type productNotFoundError struct {
	ProductID primitive.ObjectID
}

func (e productNotFoundError) Error() string {
	return "product not found"
}

type outOfStockError struct {
	ProductID primitive.ObjectID
}

func (e outOfStockError) Error() string {
	return "product out of stock"
}

// CreateOrder places an order: buyer lookup, per-product validation,
// conditional stock decrement and the order insert all commit or roll back
// together. Each line buys exactly one unit regardless of any quantity the
// client sends.
func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		userID, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid userId")
			return
		}

		productIDs := make([]primitive.ObjectID, 0, len(req.Products))
		for _, item := range req.Products {
			productID, err := primitive.ObjectIDFromHex(item.ID)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid productId")
				return
			}
			productIDs = append(productIDs, productID)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "user not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		order := models.Order{
			UserID: userID,
			Date:   time.Now(),
		}

		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			snapshots := make([]models.OrderProduct, 0, len(productIDs))

			for _, productID := range productIDs {
				var product models.Product
				err := db.Collection("products").FindOne(sessCtx, bson.M{"_id": productID}).Decode(&product)
				if err == mongo.ErrNoDocuments {
					return nil, productNotFoundError{ProductID: productID}
				}
				if err != nil {
					return nil, err
				}

				filter, update := stockDecrement(productID)
				res, err := db.Collection("products").UpdateOne(sessCtx, filter, update)
				if err != nil {
					return nil, err
				}
				if res.MatchedCount == 0 {
					return nil, outOfStockError{ProductID: productID}
				}

				snapshots = append(snapshots, snapshotProduct(product))
			}

			order.Detail = models.OrderDetail{
				Price:    orderTotal(snapshots),
				Products: snapshots,
			}

			res, err := db.Collection("orders").InsertOne(sessCtx, order)
			if err != nil {
				return nil, err
			}
			if id, ok := res.InsertedID.(primitive.ObjectID); ok {
				order.ID = id
			}
			return nil, nil
		})
		if err != nil {
			var notFoundErr productNotFoundError
			if errors.As(err, &notFoundErr) {
				c.JSON(http.StatusNotFound, gin.H{
					"error":     "product not found",
					"productId": notFoundErr.ProductID.Hex(),
				})
				return
			}
			var stockErr outOfStockError
			if errors.As(err, &stockErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "product out of stock",
					"productId": stockErr.ProductID.Hex(),
				})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[ORDER] [INFO] order created for user:", userID.Hex())
		c.JSON(http.StatusCreated, order)
	}
}

func GetOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// DeleteOrder removes the order and its embedded detail. Stock decremented
// at placement is deliberately not restored.
func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOneAndDelete(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[ORDER] [INFO] order deleted:", orderID.Hex())
		c.JSON(http.StatusOK, order)
	}
}
