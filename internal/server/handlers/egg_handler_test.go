package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/egguard/egguard-backend/internal/domain/apperr"
	"github.com/egguard/egguard-backend/internal/domain/models"
)

func TestEggRegisterCreated(t *testing.T) {
	svc := &stubEggService{registered: &models.Egg{
		ID:        primitive.NewObjectID(),
		FarmID:    primitive.NewObjectID(),
		CoordX:    10,
		CoordY:    20,
		Timestamp: time.Now().UTC(),
	}}
	r := newTestRouter(NewEggHandler(svc, nil), nil, nil)

	robotID := primitive.NewObjectID()
	body := `{"coordX": 10.0, "coordY": 20.0, "broken": false}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/robots/"+robotID.Hex()+"/eggs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, robotID, svc.gotRobotID)

	var egg models.Egg
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &egg))
	assert.Equal(t, svc.registered.ID, egg.ID)
}

func TestEggRegisterDuplicateIsConflict(t *testing.T) {
	svc := &stubEggService{err: apperr.Duplicate("an egg already exists at this location with the same status")}
	r := newTestRouter(NewEggHandler(svc, nil), nil, nil)

	body := `{"coordX": 10.0, "coordY": 20.0, "broken": false}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/robots/"+primitive.NewObjectID().Hex()+"/eggs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestEggRegisterUnknownRobotIsNotFound(t *testing.T) {
	svc := &stubEggService{err: apperr.NotFound("robot not found")}
	r := newTestRouter(NewEggHandler(svc, nil), nil, nil)

	body := `{"coordX": 10.0, "coordY": 20.0, "broken": false}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/robots/"+primitive.NewObjectID().Hex()+"/eggs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEggRegisterMissingFieldsIsBadRequest(t *testing.T) {
	svc := &stubEggService{}
	r := newTestRouter(NewEggHandler(svc, nil), nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/robots/"+primitive.NewObjectID().Hex()+"/eggs", strings.NewReader(`{"coordX": 10.0}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEggRegisterMalformedRobotIDIsBadRequest(t *testing.T) {
	svc := &stubEggService{}
	r := newTestRouter(NewEggHandler(svc, nil), nil, nil)

	body := `{"coordX": 10.0, "coordY": 20.0, "broken": false}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/robots/not-an-id/eggs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEggListParsesFilters(t *testing.T) {
	svc := &stubEggService{eggs: []models.Egg{{ID: primitive.NewObjectID()}}}
	r := newTestRouter(NewEggHandler(svc, nil), nil, nil)

	farmID := primitive.NewObjectID()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/farms/"+farmID.Hex()+"/eggs?picked=true&date=2026-03-14", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, farmID, svc.gotFarmID)
	require.NotNil(t, svc.gotFilter.Picked)
	assert.True(t, *svc.gotFilter.Picked)
	require.NotNil(t, svc.gotFilter.Date)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), *svc.gotFilter.Date)
}

func TestEggListInvalidPickedIsBadRequest(t *testing.T) {
	svc := &stubEggService{}
	r := newTestRouter(NewEggHandler(svc, nil), nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/farms/"+primitive.NewObjectID().Hex()+"/eggs?picked=maybe", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEggListEmptyResultIsEmptyArray(t *testing.T) {
	svc := &stubEggService{}
	r := newTestRouter(NewEggHandler(svc, nil), nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/farms/"+primitive.NewObjectID().Hex()+"/eggs", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestEggMarkPickedWithBody(t *testing.T) {
	svc := &stubEggService{}
	r := newTestRouter(NewEggHandler(svc, nil), nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/farms/"+primitive.NewObjectID().Hex()+"/eggs/picked",
		strings.NewReader(`{"before": "2026-03-14T12:00:00Z"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	require.NotNil(t, svc.gotBefore)
	assert.Equal(t, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), svc.gotBefore.UTC())
}

func TestEggMarkPickedWithoutBodyDefaultsToNow(t *testing.T) {
	svc := &stubEggService{}
	r := newTestRouter(NewEggHandler(svc, nil), nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/farms/"+primitive.NewObjectID().Hex()+"/eggs/picked", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.gotBefore)
}

func TestEggMarkPickedUnknownFarmIsNotFound(t *testing.T) {
	svc := &stubEggService{err: apperr.NotFound("farm not found")}
	r := newTestRouter(NewEggHandler(svc, nil), nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/farms/"+primitive.NewObjectID().Hex()+"/eggs/picked", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
