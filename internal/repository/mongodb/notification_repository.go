package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/egguard/egguard-backend/internal/domain/models"
)

// NotificationRepository defines the notification persistence operations the
// services depend on.
type NotificationRepository interface {
	InsertNotification(ctx context.Context, notification models.Notification) (models.Notification, error)
	FindNotificationsByFarm(ctx context.Context, farmID primitive.ObjectID, page models.PageRequest) (models.NotificationPage, error)
}

// InsertNotification persists a notification and returns it with the assigned id.
func (s *Store) InsertNotification(ctx context.Context, notification models.Notification) (models.Notification, error) {
	result, err := s.db.Collection(notificationsCollection).InsertOne(ctx, notification)
	if err != nil {
		return models.Notification{}, fmt.Errorf("failed to insert notification: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		notification.ID = id
	}
	return notification, nil
}

// FindNotificationsByFarm returns one page of the farm's notifications sorted
// by the requested field, plus total-count metadata.
func (s *Store) FindNotificationsByFarm(ctx context.Context, farmID primitive.ObjectID, page models.PageRequest) (models.NotificationPage, error) {
	collection := s.db.Collection(notificationsCollection)
	query := bson.M{"farm_id": farmID}

	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		return models.NotificationPage{}, fmt.Errorf("failed to count notifications: %w", err)
	}

	direction := 1
	if page.Desc {
		direction = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: page.SortField, Value: direction}}).
		SetSkip(int64(page.Page) * int64(page.Size)).
		SetLimit(int64(page.Size))

	cursor, err := collection.Find(ctx, query, opts)
	if err != nil {
		return models.NotificationPage{}, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer cursor.Close(ctx)

	notifications := make([]models.Notification, 0, page.Size)
	if err := cursor.All(ctx, &notifications); err != nil {
		return models.NotificationPage{}, fmt.Errorf("failed to decode notifications: %w", err)
	}

	totalPages := 0
	if page.Size > 0 {
		totalPages = int((total + int64(page.Size) - 1) / int64(page.Size))
	}

	return models.NotificationPage{
		Content:       notifications,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}
