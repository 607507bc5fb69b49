package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// ProjectUpdate is the patch shape accepted on PUT. It deliberately has no
// userId field: ownership is immutable and anything the client sends for it
// is discarded before the update reaches the store.
type ProjectUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}
