package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Farm is a physical site owning robots, eggs and notifications. The core
// services only ever read farms; creation and mutation happen elsewhere.
type Farm struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	PhotoURL  string             `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`
	Latitude  float64            `bson:"latitude" json:"latitude"`
	Longitude float64            `bson:"longitude" json:"longitude"`
	UserID    primitive.ObjectID `bson:"user_id,omitempty" json:"userId,omitempty"`
}
