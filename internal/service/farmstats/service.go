package farmstats

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/egguard/egguard-backend/internal/domain/apperr"
	"github.com/egguard/egguard-backend/internal/domain/models"
	"github.com/egguard/egguard-backend/internal/repository/mongodb"
)

// Service computes picked-egg statistics for a farm over a date window.
type Service interface {
	// GetFarmStats aggregates picked eggs over the closed calendar interval
	// [from, to]. Only the date part of from/to is significant.
	GetFarmStats(ctx context.Context, farmID primitive.ObjectID, from, to time.Time) (*models.FarmStats, error)
}

type service struct {
	eggs   mongodb.EggRepository
	farms  mongodb.FarmRepository
	logger *zap.Logger
}

// NewService wires a new stats service instance.
func NewService(eggs mongodb.EggRepository, farms mongodb.FarmRepository, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{eggs: eggs, farms: farms, logger: logger}
}

func (s *service) GetFarmStats(ctx context.Context, farmID primitive.ObjectID, from, to time.Time) (*models.FarmStats, error) {
	from = truncateToDay(from)
	to = truncateToDay(to)

	if from.After(to) {
		return nil, apperr.InvalidState("the dates range can't be negative")
	}

	exists, err := s.farms.Exists(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("farm not found with id: %s", farmID.Hex())
	}

	// Closed window with a second-granularity upper bound.
	windowEnd := to.Add(24*time.Hour - time.Second)

	pickedEggs, err := s.eggs.FindPickedEggsBetween(ctx, farmID, from, windowEnd)
	if err != nil {
		return nil, err
	}

	totalPicked := int64(len(pickedEggs))

	var pickedBroken int64
	for _, egg := range pickedEggs {
		if egg.Broken {
			pickedBroken++
		}
	}
	pickedNotBroken := totalPicked - pickedBroken

	daysBetween := int64(to.Sub(from)/(24*time.Hour)) + 1

	var avgNotBrokenPerDay, avgBrokenPerDay int64
	if daysBetween > 0 {
		avgNotBrokenPerDay = pickedNotBroken / daysBetween
		avgBrokenPerDay = pickedBroken / daysBetween
	}

	brokenPercentage := 0.0
	if totalPicked > 0 {
		brokenPercentage = float64(pickedBroken) * 100 / float64(totalPicked)
		brokenPercentage = math.Round(brokenPercentage*100) / 100
	}

	s.logger.Debug("farm stats computed",
		zap.String("farm_id", farmID.Hex()),
		zap.Int64("total_picked", totalPicked),
		zap.Int64("days", daysBetween))

	return &models.FarmStats{
		TotalPickedEggs:                  totalPicked,
		AverageNotBrokenEggsPickedPerDay: avgNotBrokenPerDay,
		AverageBrokenEggsPickedPerDay:    avgBrokenPerDay,
		BrokenEggsPercentage:             brokenPercentage,
	}, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
