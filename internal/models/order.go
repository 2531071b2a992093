package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderProduct is the per-line snapshot of a purchased product. Name and
// price are copied at placement time and never recomputed afterwards.
type OrderProduct struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
}

// OrderDetail is the priced, itemized snapshot attached to an order.
type OrderDetail struct {
	Price    float64        `bson:"price" json:"price"`
	Products []OrderProduct `bson:"products" json:"products"`
}

// Order defines the persisted order document. Each order exclusively owns
// its detail; the detail references products without owning them.
type Order struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Date   time.Time          `bson:"date" json:"date"`
	Detail OrderDetail        `bson:"detail" json:"detail"`
}
