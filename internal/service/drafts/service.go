package drafts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/infra/draftstore"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("drafts: invalid input data")

	// ErrDraftNotFound возвращается, когда черновик не найден или истек
	ErrDraftNotFound = errors.New("drafts: draft not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("drafts: internal error")
)

// Service черновики публичного визарда бронирования. Каждый шаг визарда
// дописывает поля в черновик по opaque-токену; создание бронирования
// потребляет черновик.
type Service struct {
	store  DraftStore
	logger Logger
}

// NewService создает новый экземпляр сервиса черновиков
func NewService(store DraftStore, logger Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Create заводит новый черновик и возвращает его токен
func (s *Service) Create(ctx context.Context, draft *domain.BookingDraft) (*domain.BookingDraft, error) {
	if draft == nil {
		return nil, fmt.Errorf("%w: draft is required", ErrInvalidInput)
	}

	now := time.Now()
	draft.Token = uuid.NewString()
	draft.CreatedAt = now
	draft.UpdatedAt = now

	if err := s.store.Save(ctx, draft); err != nil {
		s.logger.Error("Create: failed to save draft: %v", err)
		return nil, fmt.Errorf("%w: failed to save draft: %v", ErrInternal, err)
	}

	s.logger.Info("Create: draft token=%s created", draft.Token)
	return draft, nil
}

// Get возвращает черновик по токену
func (s *Service) Get(ctx context.Context, token string) (*domain.BookingDraft, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	draft, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, draftstore.ErrDraftNotFound) {
			return nil, ErrDraftNotFound
		}
		s.logger.Error("Get: failed to get draft token=%s: %v", token, err)
		return nil, fmt.Errorf("%w: failed to get draft: %v", ErrInternal, err)
	}

	return draft, nil
}

// Update перезаписывает черновик по токену, продлевая TTL.
// Визард шлет полное состояние черновика на каждом шаге.
func (s *Service) Update(ctx context.Context, token string, draft *domain.BookingDraft) (*domain.BookingDraft, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}
	if draft == nil {
		return nil, fmt.Errorf("%w: draft is required", ErrInvalidInput)
	}

	existing, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, draftstore.ErrDraftNotFound) {
			return nil, ErrDraftNotFound
		}
		s.logger.Error("Update: failed to get draft token=%s: %v", token, err)
		return nil, fmt.Errorf("%w: failed to get draft: %v", ErrInternal, err)
	}

	draft.Token = token
	draft.CreatedAt = existing.CreatedAt
	draft.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, draft); err != nil {
		s.logger.Error("Update: failed to save draft token=%s: %v", token, err)
		return nil, fmt.Errorf("%w: failed to save draft: %v", ErrInternal, err)
	}

	return draft, nil
}

// Delete удаляет черновик по токену
func (s *Service) Delete(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	if err := s.store.Delete(ctx, token); err != nil {
		s.logger.Error("Delete: failed to delete draft token=%s: %v", token, err)
		return fmt.Errorf("%w: failed to delete draft: %v", ErrInternal, err)
	}

	return nil
}
