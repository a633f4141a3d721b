package check_availability_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers/check_availability"
	"github.com/m04kA/SMC-VenueService/internal/domain"
)

type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) IsHallAvailable(ctx context.Context, hallID int64, date time.Time, shift domain.Shift, excludeID *int64) (bool, error) {
	args := m.Called(ctx, hallID, date, shift, excludeID)
	return args.Bool(0), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newRouter(svc *MockAvailabilityService) *mux.Router {
	h := check_availability.NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/halls/{hallId}/availability", h.Handle).Methods(http.MethodGet)
	return r
}

func TestHandle_Available(t *testing.T) {
	svc := new(MockAvailabilityService)
	svc.On("IsHallAvailable", mock.Anything, int64(1), mock.Anything, domain.ShiftEvening, (*int64)(nil)).Return(true, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/halls/1/availability?date=2026-10-20&shift=evening", nil)
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp check_availability.AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.HallID)
	assert.Equal(t, "2026-10-20", resp.Date)
	assert.Equal(t, "evening", resp.Shift)
	assert.True(t, resp.Available)
}

func TestHandle_ExcludeBookingID(t *testing.T) {
	svc := new(MockAvailabilityService)
	svc.On("IsHallAvailable", mock.Anything, int64(1), mock.Anything, domain.ShiftEvening, mock.MatchedBy(func(id *int64) bool {
		return id != nil && *id == 101
	})).Return(true, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/halls/1/availability?date=2026-10-20&shift=evening&excludeBookingId=101", nil)
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_BadDate(t *testing.T) {
	svc := new(MockAvailabilityService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/halls/1/availability?date=20-10-2026&shift=evening", nil)
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
	svc.AssertNotCalled(t, "IsHallAvailable", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_BadShift(t *testing.T) {
	svc := new(MockAvailabilityService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/halls/1/availability?date=2026-10-20&shift=night", nil)
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
