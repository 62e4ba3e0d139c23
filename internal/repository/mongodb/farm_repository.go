package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/egguard/egguard-backend/internal/domain/models"
)

// FarmRepository defines the farm read operations the services depend on.
type FarmRepository interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	FindAll(ctx context.Context) ([]models.Farm, error)
}

// Exists reports whether a farm with the given id is stored.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := s.db.Collection(farmsCollection).CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to count farms: %w", err)
	}
	return count > 0, nil
}

// FindAll returns every stored farm. Used by the daily report job.
func (s *Store) FindAll(ctx context.Context) ([]models.Farm, error) {
	cursor, err := s.db.Collection(farmsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query farms: %w", err)
	}
	defer cursor.Close(ctx)

	var farms []models.Farm
	if err := cursor.All(ctx, &farms); err != nil {
		return nil, fmt.Errorf("failed to decode farms: %w", err)
	}
	return farms, nil
}
