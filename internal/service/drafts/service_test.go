package drafts_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/infra/draftstore"
	"github.com/m04kA/SMC-VenueService/internal/service/drafts"
)

type MockDraftStore struct {
	mock.Mock
}

func (m *MockDraftStore) Save(ctx context.Context, draft *domain.BookingDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftStore) Get(ctx context.Context, token string) (*domain.BookingDraft, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDraft), args.Error(1)
}

func (m *MockDraftStore) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestCreate_AssignsToken(t *testing.T) {
	store := new(MockDraftStore)
	svc := drafts.NewService(store, nopLogger{})

	store.On("Save", mock.Anything, mock.Anything).Return(nil)

	created, err := svc.Create(context.Background(), &domain.BookingDraft{HallID: 1})
	require.NoError(t, err)

	assert.NotEmpty(t, created.Token)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestGet_NotFound(t *testing.T) {
	store := new(MockDraftStore)
	svc := drafts.NewService(store, nopLogger{})

	store.On("Get", mock.Anything, "gone").Return(nil, draftstore.ErrDraftNotFound)

	_, err := svc.Get(context.Background(), "gone")
	assert.ErrorIs(t, err, drafts.ErrDraftNotFound)
}

func TestUpdate_PreservesCreatedAt(t *testing.T) {
	store := new(MockDraftStore)
	svc := drafts.NewService(store, nopLogger{})

	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.On("Get", mock.Anything, "tok").Return(&domain.BookingDraft{Token: "tok", CreatedAt: createdAt}, nil)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.Update(context.Background(), "tok", &domain.BookingDraft{HallID: 2})
	require.NoError(t, err)

	assert.Equal(t, "tok", updated.Token)
	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.Equal(t, int64(2), updated.HallID)
}

func TestUpdate_NotFound(t *testing.T) {
	store := new(MockDraftStore)
	svc := drafts.NewService(store, nopLogger{})

	store.On("Get", mock.Anything, "gone").Return(nil, draftstore.ErrDraftNotFound)

	_, err := svc.Update(context.Background(), "gone", &domain.BookingDraft{})
	assert.ErrorIs(t, err, drafts.ErrDraftNotFound)
}
