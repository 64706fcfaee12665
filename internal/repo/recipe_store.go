// Package repo implements the local persistence layer for recipe records,
// backed by GORM. This file provides the RecipeStore, the single source of
// truth for cached recipe details and favourite flags.
//
// Reads are reactive: GetByID, Favourites, and All return live channels that
// re-emit the current query result whenever the store changes, mirroring the
// behavior of an observable database query. Writes (Save,
// UpdateFavouriteStatus, Delete) wake every open stream.
//
// Error semantics: writes propagate the raw gorm error; classification into
// the failure taxonomy happens in the service layer. Stream queries that
// fail mid-subscription are logged and skipped rather than terminating the
// stream, since SQLite read errors are not actionable by subscribers.
package repo

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist. It aliases
// gorm.ErrRecordNotFound for convenience across the service layer.
var ErrNotFound = gorm.ErrRecordNotFound

// RecipeStore persists recipe records and notifies subscribers on change.
// Safe for concurrent use.
type RecipeStore struct {
	db *gorm.DB

	mu      sync.Mutex
	nextSub int
	subs    map[int]chan struct{}
}

// NewRecipeStore wraps an opened (and migrated) database handle.
func NewRecipeStore(db *gorm.DB) *RecipeStore {
	return &RecipeStore{
		db:   db,
		subs: make(map[int]chan struct{}),
	}
}

// GetByID returns a live stream of the record for id: the current state is
// emitted immediately, then again after every store change. A nil element
// means no record exists for id. The channel closes when ctx is done.
func (s *RecipeStore) GetByID(ctx context.Context, id int64) <-chan *domain.RecipeRecord {
	return stream(ctx, s, func(ctx context.Context) (*domain.RecipeRecord, error) {
		var rec domain.RecipeRecord
		err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &rec, nil
	})
}

// Favourites returns a live stream of all records with favourite = true,
// ordered by id for deterministic emissions.
func (s *RecipeStore) Favourites(ctx context.Context) <-chan []domain.RecipeRecord {
	return stream(ctx, s, func(ctx context.Context) ([]domain.RecipeRecord, error) {
		var out []domain.RecipeRecord
		err := s.db.WithContext(ctx).
			Where("favourite = ?", true).
			Order("id asc").
			Find(&out).Error
		return out, err
	})
}

// All returns a live stream over every stored record, ordered by most
// recently updated first. It backs the read-only history projection.
func (s *RecipeStore) All(ctx context.Context) <-chan []domain.RecipeRecord {
	return stream(ctx, s, func(ctx context.Context) ([]domain.RecipeRecord, error) {
		var out []domain.RecipeRecord
		err := s.db.WithContext(ctx).
			Order("updated_at desc, id asc").
			Find(&out).Error
		return out, err
	})
}

// Save upserts rec by id, replacing any existing row in full, and wakes all
// subscribers on success.
func (s *RecipeStore) Save(ctx context.Context, rec domain.RecipeRecord) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// UpdateFavouriteStatus flips the favourite flag for id. Updating a missing
// id is a no-op: no error, no notification.
func (s *RecipeStore) UpdateFavouriteStatus(ctx context.Context, id int64, isFavourite bool) error {
	res := s.db.WithContext(ctx).
		Model(&domain.RecipeRecord{}).
		Where("id = ?", id).
		Update("favourite", isFavourite)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		s.notify()
	}
	return nil
}

// Delete removes the record matching rec's id and wakes subscribers when a
// row was actually deleted.
func (s *RecipeStore) Delete(ctx context.Context, rec domain.RecipeRecord) error {
	res := s.db.WithContext(ctx).Delete(&domain.RecipeRecord{}, "id = ?", rec.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		s.notify()
	}
	return nil
}

// subscribe registers a wake channel. The channel is buffered so notify
// can coalesce bursts without blocking writers.
func (s *RecipeStore) subscribe() (int, chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch
	return id, ch
}

func (s *RecipeStore) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

// notify wakes every subscriber without blocking; a subscriber with a wake
// already pending coalesces into a single re-query.
func (s *RecipeStore) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// stream runs query once up front and again on every store notification,
// sending each result to the returned channel. It stops (closing the
// channel and releasing the subscription) when ctx is done.
func stream[T any](ctx context.Context, s *RecipeStore, query func(context.Context) (T, error)) <-chan T {
	out := make(chan T)
	subID, wake := s.subscribe()

	go func() {
		defer close(out)
		defer s.unsubscribe(subID)

		for {
			v, err := query(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Warn().Err(err).Msg("recipe store stream query failed")
			} else {
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-wake:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
