package draftstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

var (
	// ErrDraftNotFound возвращается, когда черновик не найден или истек его TTL
	ErrDraftNotFound = errors.New("draftstore: draft not found")

	// ErrStore возвращается при ошибках обращения к Redis
	ErrStore = errors.New("draftstore: storage error")
)

const keyPrefix = "booking_draft:"

// Store хранилище черновиков бронирований визарда.
// Черновик живет в Redis под opaque-токеном с TTL - замена серверной
// сессии оригинального многошагового визарда.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает новое хранилище черновиков
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Save сохраняет черновик под его токеном, обновляя TTL
func (s *Store) Save(ctx context.Context, draft *domain.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal draft: %v", ErrStore, err)
	}

	if err := s.client.Set(ctx, keyPrefix+draft.Token, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: failed to set draft: %v", ErrStore, err)
	}

	return nil
}

// Get читает черновик по токену
func (s *Store) Get(ctx context.Context, token string) (*domain.BookingDraft, error) {
	data, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get draft: %v", ErrStore, err)
	}

	var draft domain.BookingDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal draft: %v", ErrStore, err)
	}

	return &draft, nil
}

// Delete удаляет черновик (после успешного создания бронирования)
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("%w: failed to delete draft: %v", ErrStore, err)
	}
	return nil
}
