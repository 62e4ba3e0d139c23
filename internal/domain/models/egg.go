package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Egg is a single detected egg observation. Timestamp is set once at
// registration; Picked only ever transitions false to true.
type Egg struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FarmID    primitive.ObjectID `bson:"farm_id" json:"farmId"`
	CoordX    float64            `bson:"coord_x" json:"coordX"`
	CoordY    float64            `bson:"coord_y" json:"coordY"`
	Picked    bool               `bson:"picked" json:"picked"`
	Broken    bool               `bson:"broken" json:"broken"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// RegisterEggRequest is the payload a robot sends when it detects an egg.
// Pointer fields distinguish "absent" from zero values during binding.
type RegisterEggRequest struct {
	CoordX *float64 `json:"coordX" binding:"required"`
	CoordY *float64 `json:"coordY" binding:"required"`
	Broken *bool    `json:"broken" binding:"required"`
}

// PickEggsRequest optionally bounds the batch pick transition in time.
type PickEggsRequest struct {
	Before *time.Time `json:"before"`
}

// EggFilter narrows an egg listing. Nil fields are not applied; set fields
// combine with logical AND.
type EggFilter struct {
	Picked *bool
	// Date restricts to eggs created on this calendar day. Only the date part
	// is significant.
	Date *time.Time
}
