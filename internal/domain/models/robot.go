package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RobotStatus describes the operational state of a field robot.
type RobotStatus string

const (
	RobotStatusActive      RobotStatus = "ACTIVE"
	RobotStatusInactive    RobotStatus = "INACTIVE"
	RobotStatusMaintenance RobotStatus = "MAINTENANCE"
)

// Robot is a field device reporting egg and notification observations.
// FarmID is nil for robots that have not been assigned to a farm yet; such
// robots cannot report anything.
type Robot struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PurchaseDate time.Time           `bson:"purchase_date" json:"purchaseDate"`
	FarmID       *primitive.ObjectID `bson:"farm_id,omitempty" json:"farmId,omitempty"`
	Status       RobotStatus         `bson:"status" json:"status"`
}
