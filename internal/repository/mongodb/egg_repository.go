package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/egguard/egguard-backend/internal/domain/models"
)

// EggRepository defines the egg persistence operations the services depend on.
type EggRepository interface {
	FindEggs(ctx context.Context, farmID primitive.ObjectID, filter models.EggFilter) ([]models.Egg, error)
	FindUnpickedEggs(ctx context.Context, farmID primitive.ObjectID) ([]models.Egg, error)
	FindPickedEggsBetween(ctx context.Context, farmID primitive.ObjectID, from, to time.Time) ([]models.Egg, error)
	InsertEgg(ctx context.Context, egg models.Egg) (models.Egg, error)
	MarkEggsPickedBefore(ctx context.Context, farmID primitive.ObjectID, before time.Time) (int64, error)
}

// FindEggs returns the farm's eggs matching the filter. Nil filter fields are
// ignored; set fields combine with AND. The date filter covers the calendar
// day [00:00:00, next day) of the given date.
func (s *Store) FindEggs(ctx context.Context, farmID primitive.ObjectID, filter models.EggFilter) ([]models.Egg, error) {
	query := bson.M{"farm_id": farmID}
	if filter.Picked != nil {
		query["picked"] = *filter.Picked
	}
	if filter.Date != nil {
		start := startOfDay(*filter.Date)
		query["timestamp"] = bson.M{"$gte": start, "$lt": start.Add(24 * time.Hour)}
	}

	return s.queryEggs(ctx, query)
}

// FindUnpickedEggs returns all currently unpicked eggs of the farm.
func (s *Store) FindUnpickedEggs(ctx context.Context, farmID primitive.ObjectID) ([]models.Egg, error) {
	return s.queryEggs(ctx, bson.M{"farm_id": farmID, "picked": false})
}

// FindPickedEggsBetween returns picked eggs whose timestamp lies in the closed
// interval [from, to].
func (s *Store) FindPickedEggsBetween(ctx context.Context, farmID primitive.ObjectID, from, to time.Time) ([]models.Egg, error) {
	query := bson.M{
		"farm_id":   farmID,
		"picked":    true,
		"timestamp": bson.M{"$gte": from, "$lte": to},
	}
	return s.queryEggs(ctx, query)
}

// InsertEgg persists a new egg and returns it with the assigned id.
func (s *Store) InsertEgg(ctx context.Context, egg models.Egg) (models.Egg, error) {
	result, err := s.db.Collection(eggsCollection).InsertOne(ctx, egg)
	if err != nil {
		return models.Egg{}, fmt.Errorf("failed to insert egg: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		egg.ID = id
	}
	return egg, nil
}

// MarkEggsPickedBefore flips picked to true on every unpicked egg of the farm
// created strictly before the given instant. Returns the number of eggs
// transitioned; zero is not an error.
func (s *Store) MarkEggsPickedBefore(ctx context.Context, farmID primitive.ObjectID, before time.Time) (int64, error) {
	result, err := s.db.Collection(eggsCollection).UpdateMany(ctx,
		bson.M{
			"farm_id":   farmID,
			"picked":    false,
			"timestamp": bson.M{"$lt": before},
		},
		bson.M{"$set": bson.M{"picked": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark eggs picked: %w", err)
	}
	return result.ModifiedCount, nil
}

func (s *Store) queryEggs(ctx context.Context, query bson.M) ([]models.Egg, error) {
	cursor, err := s.db.Collection(eggsCollection).Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query eggs: %w", err)
	}
	defer cursor.Close(ctx)

	var eggs []models.Egg
	if err := cursor.All(ctx, &eggs); err != nil {
		return nil, fmt.Errorf("failed to decode eggs: %w", err)
	}
	return eggs, nil
}

// startOfDay truncates t to midnight in its own location. The day window is
// built without timezone conversion on purpose.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
