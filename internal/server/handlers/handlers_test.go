package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/egguard/egguard-backend/internal/domain/models"
	notifsvc "github.com/egguard/egguard-backend/internal/service/notification"
)

// Stub services shared by the handler tests.

type stubEggService struct {
	registered *models.Egg
	eggs       []models.Egg
	err        error

	gotRobotID primitive.ObjectID
	gotFarmID  primitive.ObjectID
	gotFilter  models.EggFilter
	gotBefore  *time.Time
}

func (s *stubEggService) Register(_ context.Context, robotID primitive.ObjectID, _ models.RegisterEggRequest) (*models.Egg, error) {
	s.gotRobotID = robotID
	if s.err != nil {
		return nil, s.err
	}
	return s.registered, nil
}

func (s *stubEggService) ListByFarm(_ context.Context, farmID primitive.ObjectID, filter models.EggFilter) ([]models.Egg, error) {
	s.gotFarmID = farmID
	s.gotFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return s.eggs, nil
}

func (s *stubEggService) MarkPicked(_ context.Context, farmID primitive.ObjectID, before *time.Time) error {
	s.gotFarmID = farmID
	s.gotBefore = before
	return s.err
}

type stubStatsService struct {
	stats *models.FarmStats
	err   error

	gotFarmID primitive.ObjectID
	gotFrom   time.Time
	gotTo     time.Time
}

func (s *stubStatsService) GetFarmStats(_ context.Context, farmID primitive.ObjectID, from, to time.Time) (*models.FarmStats, error) {
	s.gotFarmID = farmID
	s.gotFrom = from
	s.gotTo = to
	if s.err != nil {
		return nil, s.err
	}
	return s.stats, nil
}

type stubNotificationService struct {
	registered *models.Notification
	page       *models.NotificationPage
	err        error

	gotRequest models.RegisterNotificationRequest
	gotImage   *notifsvc.Image
	gotPage    models.PageRequest
}

func (s *stubNotificationService) Register(_ context.Context, _ primitive.ObjectID, req models.RegisterNotificationRequest, image *notifsvc.Image) (*models.Notification, error) {
	s.gotRequest = req
	s.gotImage = image
	if s.err != nil {
		return nil, s.err
	}
	return s.registered, nil
}

func (s *stubNotificationService) ListByFarm(_ context.Context, _ primitive.ObjectID, page models.PageRequest) (*models.NotificationPage, error) {
	s.gotPage = page
	if s.err != nil {
		return nil, s.err
	}
	return s.page, nil
}

func newTestRouter(eggs *EggHandler, farms *FarmHandler, notifications *NotificationHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	if eggs != nil {
		r.POST("/api/v1/robots/:robot_id/eggs", eggs.Register)
		r.GET("/api/v1/farms/:farm_id/eggs", eggs.ListByFarm)
		r.PATCH("/api/v1/farms/:farm_id/eggs/picked", eggs.MarkPicked)
	}
	if farms != nil {
		r.GET("/api/v1/farms/:farm_id/stats", farms.GetStats)
	}
	if notifications != nil {
		r.POST("/api/v1/robots/:robot_id/notifications", notifications.Register)
		r.GET("/api/v1/farms/:farm_id/notifications", notifications.ListByFarm)
	}
	return r
}
