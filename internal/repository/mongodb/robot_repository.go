package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/egguard/egguard-backend/internal/domain/models"
)

// RobotRepository defines the robot read operations the services depend on.
type RobotRepository interface {
	// FindRobotByID returns nil without error when no robot matches.
	FindRobotByID(ctx context.Context, id primitive.ObjectID) (*models.Robot, error)
}

// FindRobotByID looks up a single robot by id.
func (s *Store) FindRobotByID(ctx context.Context, id primitive.ObjectID) (*models.Robot, error) {
	var robot models.Robot
	err := s.db.Collection(robotsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&robot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find robot %s: %w", id.Hex(), err)
	}
	return &robot, nil
}
