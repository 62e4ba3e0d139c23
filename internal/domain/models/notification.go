package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationSeverity grades how urgent a robot notification is.
type NotificationSeverity string

const (
	SeverityInfo     NotificationSeverity = "INFO"
	SeverityWarning  NotificationSeverity = "WARNING"
	SeverityCritical NotificationSeverity = "CRITICAL"
)

// Notification is an immutable message emitted by a robot, owned by the
// robot's farm at creation time.
type Notification struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	FarmID    primitive.ObjectID   `bson:"farm_id" json:"farmId"`
	Timestamp time.Time            `bson:"timestamp" json:"timestamp"`
	Severity  NotificationSeverity `bson:"severity" json:"severity"`
	Message   string               `bson:"message" json:"message"`
	PhotoURL  string               `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`
}

// RegisterNotificationRequest is the multipart form a robot posts. The image
// part travels separately.
type RegisterNotificationRequest struct {
	Message  string               `form:"message" binding:"required,max=1000"`
	Severity NotificationSeverity `form:"severity" binding:"required,oneof=INFO WARNING CRITICAL"`
}

// PageRequest describes a page of results to fetch.
type PageRequest struct {
	Page      int
	Size      int
	SortField string
	Desc      bool
}

// NotificationPage is one page of notifications plus pagination metadata.
type NotificationPage struct {
	Content       []Notification `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
}
