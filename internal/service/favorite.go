package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/msomdec/bazaar/internal/domain"
)

// FavoriteService maintains the saved-items ledger. The ledger lives in its
// own record, independent of the session, so saved items survive sign-out;
// toggling does require being signed in.
type FavoriteService struct {
	store    domain.Store
	listings *ListingService
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(store domain.Store, listings *ListingService) *FavoriteService {
	return &FavoriteService{store: store, listings: listings}
}

// Toggle flips the saved state of a listing and reports the new state. It
// fails with domain.ErrAuthRequired when no session is active. The listing's
// saved counter is kept in step when the listing still exists; ledger entries
// for since-deleted listings are tolerated.
func (s *FavoriteService) Toggle(ctx context.Context, category domain.Category, id string) (bool, error) {
	if !category.Valid() {
		return false, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, category)
	}
	session, err := s.store.GetSession(ctx)
	if err != nil {
		return false, err
	}
	if session == nil {
		return false, domain.ErrAuthRequired
	}

	favorites, err := s.store.LoadFavorites(ctx)
	if err != nil {
		return false, err
	}

	key := domain.FavoriteKey(category, id)
	_, saved := favorites[key]
	delta := 1
	if saved {
		delete(favorites, key)
		delta = -1
	} else {
		favorites[key] = domain.FavoriteEntry{
			ID:       id,
			Category: category,
			AddedAt:  nowUTC(),
		}
	}

	if err := s.store.SaveFavorites(ctx, favorites); err != nil {
		return false, err
	}

	if _, err := s.listings.AdjustSaves(ctx, category, id, delta); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}

	return !saved, nil
}

// IsSaved reports whether a listing is in the ledger.
func (s *FavoriteService) IsSaved(ctx context.Context, category domain.Category, id string) (bool, error) {
	favorites, err := s.store.LoadFavorites(ctx)
	if err != nil {
		return false, err
	}
	_, saved := favorites[domain.FavoriteKey(category, id)]
	return saved, nil
}

// List returns every ledger entry, most recently added first.
func (s *FavoriteService) List(ctx context.Context) ([]domain.FavoriteEntry, error) {
	favorites, err := s.store.LoadFavorites(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.FavoriteEntry, 0, len(favorites))
	for _, entry := range favorites {
		entries = append(entries, entry)
	}
	sortFavorites(entries)
	return entries, nil
}

// sortFavorites orders entries newest first. The ledger key breaks timestamp
// ties so the order is deterministic despite map iteration.
func sortFavorites(entries []domain.FavoriteEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AddedAt.Equal(entries[j].AddedAt) {
			return domain.FavoriteKey(entries[i].Category, entries[i].ID) < domain.FavoriteKey(entries[j].Category, entries[j].ID)
		}
		return entries[i].AddedAt.After(entries[j].AddedAt)
	})
}
