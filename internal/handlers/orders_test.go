package handlers

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestStockDecrementIsConditional(t *testing.T) {
	productID := primitive.NewObjectID()
	filter, update := stockDecrement(productID)

	if filter["_id"] != productID {
		t.Fatalf("expected filter on product id, got %v", filter["_id"])
	}
	if !reflect.DeepEqual(filter["stock"], bson.M{"$gte": 1}) {
		t.Fatalf("expected decrement to require stock >= 1, got %v", filter["stock"])
	}
	if !reflect.DeepEqual(update, bson.M{"$inc": bson.M{"stock": -1}}) {
		t.Fatalf("expected decrement by exactly 1, got %v", update)
	}
}

func getOrderRecorder(mt *mtest.T) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/orders/:id", GetOrder(mt.DB))

	req := httptest.NewRequest("GET", "/orders/"+primitive.NewObjectID().Hex(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetOrderNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("absent order is 404", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".orders", mtest.FirstBatch))

		w := getOrderRecorder(mt)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for absent order, got %d body=%s", w.Code, w.Body.String())
		}
	})
}

func TestGetOrderDBErrorIsNot404(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("server error is 500", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Message: "interrupted at shutdown",
			Name:    "InterruptedAtShutdown",
		}))

		w := getOrderRecorder(mt)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500 when the lookup fails, got %d body=%s", w.Code, w.Body.String())
		}
	})
}

func TestGetOrderFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("existing order is returned", func(mt *mtest.T) {
		orderID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".orders", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: orderID},
			{Key: "userId", Value: primitive.NewObjectID()},
			{Key: "detail", Value: bson.D{
				{Key: "price", Value: 529.88},
				{Key: "products", Value: bson.A{}},
			}},
		}))

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.GET("/orders/:id", GetOrder(mt.DB))

		req := httptest.NewRequest("GET", "/orders/"+orderID.Hex(), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
	})
}

func TestGetOrderInvalidID(t *testing.T) {
	// No database call happens for a malformed id, so a nil database is safe.
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/orders/:id", GetOrder(&mongo.Database{}))

	req := httptest.NewRequest("GET", "/orders/not-a-hex-id", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", w.Code)
	}
}
