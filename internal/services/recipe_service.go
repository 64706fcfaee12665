// Package services implements the business logic of the recipe backend.
//
// This file contains the RecipeService, the repository core that unifies the
// remote recipe API and the local store behind one read/write contract:
// reads are served from the store, a cache miss triggers exactly one remote
// fetch-and-fill, and failures from any layer (transport, codec, storage)
// surface as a single domain.Failure channel. Nothing below this layer
// leaks raw errors to callers.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-recipe-backend/internal/codec"
	"github.com/tbourn/go-recipe-backend/internal/domain"
)

// RecipeStore is the local persistence contract required by RecipeService.
// Channel-returning reads are live streams that re-emit on every store
// change and close when ctx is done.
type RecipeStore interface {
	GetByID(ctx context.Context, id int64) <-chan *domain.RecipeRecord
	Favourites(ctx context.Context) <-chan []domain.RecipeRecord
	All(ctx context.Context) <-chan []domain.RecipeRecord
	Save(ctx context.Context, rec domain.RecipeRecord) error
	UpdateFavouriteStatus(ctx context.Context, id int64, isFavourite bool) error
}

// RemoteDataSource is the remote API contract required by RecipeService.
type RemoteDataSource interface {
	Search(ctx context.Context, query string) (domain.SearchResponse, domain.Failure)
	GetDetails(ctx context.Context, recipeID int64) (domain.RecipeDetail, domain.Failure)
}

// RecipeService orchestrates the store and the remote data source.
//
// Concurrency model: one goroutine per subscription, cancelled through the
// subscription's context. The service holds no mutable state of its own;
// the store is the single source of truth, so two concurrent misses for the
// same id may both fetch and both save (last write wins) — an accepted race
// rather than a single-flight guarantee.
type RecipeService struct {
	Store  RecipeStore
	Remote RemoteDataSource

	// Now stamps updated_at on cache fill; defaults to time.Now.
	Now func() time.Time
}

// NewRecipeService wires a service over the given store and remote client.
func NewRecipeService(store RecipeStore, rds RemoteDataSource) *RecipeService {
	return &RecipeService{Store: store, Remote: rds, Now: time.Now}
}

// SearchRecipes performs exactly one live remote search per call. Search
// results are never cached. The returned channel carries a single terminal
// result (the remote listing mapped in API order, or the mapped failure)
// and is closed immediately after.
func (s *RecipeService) SearchRecipes(ctx context.Context, query string) <-chan domain.Result[[]domain.SearchResult] {
	out := make(chan domain.Result[[]domain.SearchResult], 1)

	go func() {
		defer close(out)

		resp, f := s.Remote.Search(ctx, query)
		var res domain.Result[[]domain.SearchResult]
		if f != nil {
			log.Debug().Err(f).Str("query", query).Msg("recipe search failed")
			res = domain.Err[[]domain.SearchResult](f)
		} else {
			res = domain.Ok(resp.Results)
		}

		select {
		case out <- res:
		case <-ctx.Done():
		}
	}()

	return out
}

// FetchRecipeDetail returns a live stream of the detail for recipeID,
// driven by the store's GetByID stream.
//
// Per store emission: a present record is decoded and emitted (decode
// failure surfaces as ParseFailure); an absent record triggers at most one
// remote fetch-and-fill for the lifetime of the subscription. On fill, the
// fetched detail is emitted directly and the subsequent save wakes the
// store stream, whose next emission re-decodes the now-present record.
// A failing save emits StorageFailure.IO; a failing fetch propagates the
// mapped failure as-is. No store write happens after ctx is done.
func (s *RecipeService) FetchRecipeDetail(ctx context.Context, recipeID int64) <-chan domain.Result[domain.RecipeDetail] {
	out := make(chan domain.Result[domain.RecipeDetail])

	go func() {
		defer close(out)

		records := s.Store.GetByID(ctx, recipeID)
		fetched := false

		for {
			select {
			case <-ctx.Done():
				return
			case rec, ok := <-records:
				if !ok {
					return
				}

				var res domain.Result[domain.RecipeDetail]
				if rec != nil {
					res = decodeRecord(*rec)
				} else {
					if fetched {
						// The single fill attempt for this subscription is
						// spent; only a store change can move things along.
						continue
					}
					fetched = true
					res = s.fillFromRemote(ctx, recipeID)
					if ctx.Err() != nil {
						return
					}
				}

				select {
				case out <- res:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// SetFavouriteRecipe flips the favourite flag for recipeID. Subscribers of
// FetchRecipeDetail and FavouriteRecipes observe the change through the
// store's own notification, not a repository-level push.
func (s *RecipeService) SetFavouriteRecipe(ctx context.Context, recipeID int64, isFavourite bool) error {
	return s.Store.UpdateFavouriteStatus(ctx, recipeID, isFavourite)
}

// FavouriteRecipes returns a live stream over all favourite records, each
// emission decoding every record with first-failure-wins semantics: one
// corrupt record fails the whole emission, never a partial list.
func (s *RecipeService) FavouriteRecipes(ctx context.Context) <-chan domain.Result[[]domain.RecipeDetail] {
	return decodeListStream(ctx, s.Store.Favourites(ctx))
}

// RecipeHistory returns a live stream over every stored record (most
// recently updated first), decoded with the same all-or-nothing semantics
// as FavouriteRecipes. It is a read-only projection over the store.
func (s *RecipeService) RecipeHistory(ctx context.Context) <-chan domain.Result[[]domain.RecipeDetail] {
	return decodeListStream(ctx, s.Store.All(ctx))
}

// fillFromRemote performs the single cache-fill for a miss: fetch, encode,
// persist, and return the fetched detail. The detail is returned even
// though favourite is reported as false (the stored default), matching what
// the follow-up store emission will decode.
func (s *RecipeService) fillFromRemote(ctx context.Context, recipeID int64) domain.Result[domain.RecipeDetail] {
	detail, f := s.Remote.GetDetails(ctx, recipeID)
	if f != nil {
		log.Debug().Err(f).Int64("recipe_id", recipeID).Msg("recipe detail fetch failed")
		return domain.Err[domain.RecipeDetail](f)
	}

	instructions, err := codec.EncodeInstructions(detail.AnalyzedInstructions)
	if err != nil {
		return domain.Err[domain.RecipeDetail](domain.ParseJSON)
	}
	ingredients, err := codec.EncodeIngredients(detail.ExtendedIngredients)
	if err != nil {
		return domain.Err[domain.RecipeDetail](domain.ParseJSON)
	}

	if ctx.Err() != nil {
		// Cancelled mid-fill: the subscription is gone, do not write.
		return domain.Err[domain.RecipeDetail](domain.UnknownUnspecified)
	}

	rec := domain.NewRecipeRecord(detail, instructions, ingredients, s.now())
	if err := s.Store.Save(ctx, rec); err != nil {
		log.Warn().Err(err).Int64("recipe_id", recipeID).Msg("recipe detail could not be cached")
		return domain.Err[domain.RecipeDetail](domain.StorageIO)
	}

	fav := rec.Favourite
	detail.Favourite = &fav
	return domain.Ok(detail)
}

func (s *RecipeService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// decodeListStream maps a stream of stored records to a stream of decoded
// detail lists, one Result per store emission.
func decodeListStream(ctx context.Context, records <-chan []domain.RecipeRecord) <-chan domain.Result[[]domain.RecipeDetail] {
	out := make(chan domain.Result[[]domain.RecipeDetail])

	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case recs, ok := <-records:
				if !ok {
					return
				}

				results := make([]domain.Result[domain.RecipeDetail], 0, len(recs))
				for _, rec := range recs {
					results = append(results, decodeRecord(rec))
				}

				select {
				case out <- domain.Sequence(results):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// decodeRecord reassembles a stored record into a domain detail, surfacing
// any blob corruption as ParseFailure.
func decodeRecord(rec domain.RecipeRecord) domain.Result[domain.RecipeDetail] {
	instructions, f := codec.DecodeInstructions(rec.AnalyzedInstructions)
	if f != nil {
		return domain.Err[domain.RecipeDetail](f)
	}
	ingredients, f := codec.DecodeIngredients(rec.ExtendedIngredients)
	if f != nil {
		return domain.Err[domain.RecipeDetail](f)
	}
	return domain.Ok(rec.ToRecipeDetail(instructions, ingredients))
}
