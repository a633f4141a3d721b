package availability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/availability"
	"github.com/m04kA/SMC-VenueService/pkg/ptr"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CountActiveBySlot(ctx context.Context, hallID int64, date time.Time, shift domain.Shift, excludeID *int64) (int, error) {
	args := m.Called(ctx, hallID, date, shift, excludeID)
	return args.Int(0), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestIsHallAvailable(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := availability.NewService(repo, nopLogger{})

	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	repo.On("CountActiveBySlot", mock.Anything, int64(1), date, domain.ShiftEvening, (*int64)(nil)).Return(0, nil)
	repo.On("CountActiveBySlot", mock.Anything, int64(2), date, domain.ShiftEvening, (*int64)(nil)).Return(1, nil)

	free, err := svc.IsHallAvailable(context.Background(), 1, date, domain.ShiftEvening, nil)
	require.NoError(t, err)
	assert.True(t, free)

	taken, err := svc.IsHallAvailable(context.Background(), 2, date, domain.ShiftEvening, nil)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestIsHallAvailable_ExcludesBooking(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := availability.NewService(repo, nopLogger{})

	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	repo.On("CountActiveBySlot", mock.Anything, int64(1), date, domain.ShiftEvening, ptr.Ptr(int64(101))).Return(0, nil)

	free, err := svc.IsHallAvailable(context.Background(), 1, date, domain.ShiftEvening, ptr.Ptr(int64(101)))
	require.NoError(t, err)
	assert.True(t, free)
}

func TestIsHallAvailable_InvalidInput(t *testing.T) {
	svc := availability.NewService(new(MockBookingRepository), nopLogger{})

	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	_, err := svc.IsHallAvailable(context.Background(), 0, date, domain.ShiftEvening, nil)
	assert.ErrorIs(t, err, availability.ErrInvalidInput)

	_, err = svc.IsHallAvailable(context.Background(), 1, time.Time{}, domain.ShiftEvening, nil)
	assert.ErrorIs(t, err, availability.ErrInvalidInput)

	_, err = svc.IsHallAvailable(context.Background(), 1, date, domain.Shift("night"), nil)
	assert.ErrorIs(t, err, availability.ErrInvalidInput)
}
