package notification

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/egguard/egguard-backend/internal/domain/apperr"
	"github.com/egguard/egguard-backend/internal/domain/models"
	"github.com/egguard/egguard-backend/internal/repository/mongodb"
	"github.com/egguard/egguard-backend/pkg/clients/alerts"
	"github.com/egguard/egguard-backend/pkg/clients/imagestore"
)

// Image carries the raw bytes of an optional notification photo.
type Image struct {
	Data        []byte
	ContentType string
}

// Service exposes notification registration and retrieval.
type Service interface {
	// Register persists a notification for the robot's farm. When image is
	// non-nil its bytes are uploaded first; an upload failure aborts the
	// registration without persisting anything.
	Register(ctx context.Context, robotID primitive.ObjectID, req models.RegisterNotificationRequest, image *Image) (*models.Notification, error)
	// ListByFarm returns one page of the farm's notifications.
	ListByFarm(ctx context.Context, farmID primitive.ObjectID, page models.PageRequest) (*models.NotificationPage, error)
}

type service struct {
	notifications mongodb.NotificationRepository
	robots        mongodb.RobotRepository
	farms         mongodb.FarmRepository
	uploader      imagestore.Uploader
	notifier      alerts.Notifier
	logger        *zap.Logger
}

// NewService wires a new notification service instance. uploader may be nil
// when no image store is configured; notifier may be nil when critical-alert
// forwarding is disabled.
func NewService(notifications mongodb.NotificationRepository, robots mongodb.RobotRepository, farms mongodb.FarmRepository, uploader imagestore.Uploader, notifier alerts.Notifier, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		notifications: notifications,
		robots:        robots,
		farms:         farms,
		uploader:      uploader,
		notifier:      notifier,
		logger:        logger,
	}
}

func (s *service) Register(ctx context.Context, robotID primitive.ObjectID, req models.RegisterNotificationRequest, image *Image) (*models.Notification, error) {
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

	var photoURL string
	if image != nil && len(image.Data) > 0 {
		if s.uploader == nil {
			return nil, apperr.UploadFailed(nil, "image storage is not configured")
		}
		photoURL, err = s.uploader.UploadImage(ctx, image.Data, image.ContentType)
		if err != nil {
			s.logger.Error("failed to upload notification image", zap.Error(err))
			return nil, apperr.UploadFailed(err, "failed to store the notification image")
		}
	}

	notification := models.Notification{
		FarmID:    *robot.FarmID,
		Timestamp: time.Now().UTC(),
		Severity:  req.Severity,
		Message:   req.Message,
		PhotoURL:  photoURL,
	}

	saved, err := s.notifications.InsertNotification(ctx, notification)
	if err != nil {
		return nil, err
	}

	s.logger.Info("notification registered",
		zap.String("notification_id", saved.ID.Hex()),
		zap.String("farm_id", saved.FarmID.Hex()),
		zap.String("severity", string(saved.Severity)))

	if saved.Severity == models.SeverityCritical && s.notifier != nil {
		// Best effort: a webhook outage must not fail the registration.
		if err := s.notifier.SendAlert(ctx, saved); err != nil {
			s.logger.Warn("failed to forward critical alert", zap.Error(err))
		}
	}

	return &saved, nil
}

func (s *service) ListByFarm(ctx context.Context, farmID primitive.ObjectID, page models.PageRequest) (*models.NotificationPage, error) {
	exists, err := s.farms.Exists(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("farm not found with id: %s", farmID.Hex())
	}

	result, err := s.notifications.FindNotificationsByFarm(ctx, farmID, page)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
