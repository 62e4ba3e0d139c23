package egg

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/egguard/egguard-backend/internal/domain/apperr"
	"github.com/egguard/egguard-backend/internal/domain/models"
	"github.com/egguard/egguard-backend/internal/repository/mongodb"
	"github.com/egguard/egguard-backend/pkg/geo"
)

// Service exposes the egg registration and lifecycle policy.
type Service interface {
	// Register persists a new egg observation for the robot's farm, unless an
	// unpicked egg with the same broken state already exists within the
	// duplicate distance threshold.
	Register(ctx context.Context, robotID primitive.ObjectID, req models.RegisterEggRequest) (*models.Egg, error)
	// ListByFarm returns the farm's eggs, optionally filtered by picked state
	// and/or creation day. Filters combine with AND.
	ListByFarm(ctx context.Context, farmID primitive.ObjectID, filter models.EggFilter) ([]models.Egg, error)
	// MarkPicked flips every unpicked egg of the farm created strictly before
	// the given instant to picked. A nil before means "now". An empty
	// selection is a no-op, not an error.
	MarkPicked(ctx context.Context, farmID primitive.ObjectID, before *time.Time) error
}

type service struct {
	eggs      mongodb.EggRepository
	robots    mongodb.RobotRepository
	farms     mongodb.FarmRepository
	threshold float64
	logger    *zap.Logger

	// farmLocks serializes the duplicate scan-then-insert per farm so two
	// concurrent registrations cannot both pass the check for the same
	// position. Farms never contend with each other.
	farmLocks sync.Map
}

// NewService wires a new egg service instance. threshold is the duplicate
// distance threshold in egg coordinate units.
func NewService(eggs mongodb.EggRepository, robots mongodb.RobotRepository, farms mongodb.FarmRepository, threshold float64, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		eggs:      eggs,
		robots:    robots,
		farms:     farms,
		threshold: threshold,
		logger:    logger,
	}
}

func (s *service) Register(ctx context.Context, robotID primitive.ObjectID, req models.RegisterEggRequest) (*models.Egg, error) {
	robot, err := s.robots.FindRobotByID(ctx, robotID)
	if err != nil {
		return nil, err
	}
	if robot == nil {
		return nil, apperr.NotFound("robot not found with id: %s", robotID.Hex())
	}
	if robot.FarmID == nil {
		return nil, apperr.InvalidState("robot with id %s is not associated with any farm", robotID.Hex())
	}
	farmID := *robot.FarmID

	unlock := s.lockFarm(farmID)
	defer unlock()

	unpicked, err := s.eggs.FindUnpickedEggs(ctx, farmID)
	if err != nil {
		return nil, err
	}

	for _, existing := range unpicked {
		if s.isDuplicate(existing, req) {
			s.logger.Info("duplicate egg observation rejected",
				zap.String("farm_id", farmID.Hex()),
				zap.String("existing_egg_id", existing.ID.Hex()))
			return nil, apperr.Duplicate("an egg already exists at this location with the same status")
		}
	}

	egg := models.Egg{
		FarmID:    farmID,
		CoordX:    *req.CoordX,
		CoordY:    *req.CoordY,
		Broken:    *req.Broken,
		Picked:    false,
		Timestamp: time.Now().UTC(),
	}

	saved, err := s.eggs.InsertEgg(ctx, egg)
	if err != nil {
		return nil, err
	}

	s.logger.Info("egg registered",
		zap.String("egg_id", saved.ID.Hex()),
		zap.String("farm_id", farmID.Hex()),
		zap.Bool("broken", saved.Broken))

	return &saved, nil
}

// isDuplicate reports whether an existing unpicked egg and a new observation
// represent the same egg: within the distance threshold and in the same
// broken state.
func (s *service) isDuplicate(existing models.Egg, req models.RegisterEggRequest) bool {
	distance := geo.Distance(existing.CoordX, existing.CoordY, *req.CoordX, *req.CoordY)
	return distance <= s.threshold && existing.Broken == *req.Broken
}

func (s *service) ListByFarm(ctx context.Context, farmID primitive.ObjectID, filter models.EggFilter) ([]models.Egg, error) {
	exists, err := s.farms.Exists(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("farm not found with id: %s", farmID.Hex())
	}

	return s.eggs.FindEggs(ctx, farmID, filter)
}

func (s *service) MarkPicked(ctx context.Context, farmID primitive.ObjectID, before *time.Time) error {
	exists, err := s.farms.Exists(ctx, farmID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("farm not found with id: %s", farmID.Hex())
	}

	cutoff := time.Now().UTC()
	if before != nil {
		cutoff = *before
	}

	unlock := s.lockFarm(farmID)
	defer unlock()

	picked, err := s.eggs.MarkEggsPickedBefore(ctx, farmID, cutoff)
	if err != nil {
		return err
	}

	s.logger.Info("eggs marked as picked",
		zap.String("farm_id", farmID.Hex()),
		zap.Int64("count", picked),
		zap.Time("before", cutoff))

	return nil
}

func (s *service) lockFarm(farmID primitive.ObjectID) func() {
	value, _ := s.farmLocks.LoadOrStore(farmID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
