package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/bazaar/internal/domain"
)

// ListingService handles listing CRUD and validation. All reads operate on
// fresh snapshots from the store; mutations re-load the latest snapshot
// immediately before writing so same-turn updates are not lost.
type ListingService struct {
	store domain.Store
}

// NewListingService creates a new ListingService.
func NewListingService(store domain.Store) *ListingService {
	return &ListingService{store: store}
}

// Create validates and persists a new listing. The repository assigns the
// id, creation time, and counters; the listing is prepended to its category
// so every view sees newest-first order. The category is immutable after
// creation.
func (s *ListingService) Create(ctx context.Context, listing domain.Listing) (*domain.Listing, error) {
	if err := validateListing(listing); err != nil {
		return nil, err
	}

	listing.ID = listing.Category.IDPrefix() + uuid.NewString()
	listing.DateAdded = nowUTC()
	listing.Views = 0
	listing.SavesCount = 0
	if listing.OwnerEmail == "" {
		listing.OwnerEmail = domain.OwnerAnonymous
	}

	doc, err := s.store.LoadListings(ctx)
	if err != nil {
		return nil, err
	}
	items := doc.ByCategory(listing.Category)
	*items = append([]domain.Listing{listing}, *items...)

	if err := s.store.SaveListings(ctx, doc); err != nil {
		return nil, fmt.Errorf("save listing: %w", err)
	}
	return &listing, nil
}

// FindByID returns the listing with the given id within a category.
func (s *ListingService) FindByID(ctx context.Context, category domain.Category, id string) (*domain.Listing, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, category)
	}
	doc, err := s.store.LoadListings(ctx)
	if err != nil {
		return nil, err
	}
	items := *doc.ByCategory(category)
	for i := range items {
		if items[i].ID == id {
			l := items[i]
			return &l, nil
		}
	}
	return nil, domain.ErrNotFound
}

// IncrementViews adds one detail-page view to a listing and returns the
// updated record. Each call increments by exactly one.
func (s *ListingService) IncrementViews(ctx context.Context, category domain.Category, id string) (*domain.Listing, error) {
	return s.update(ctx, category, id, func(l *domain.Listing) {
		l.Views++
	})
}

// AdjustSaves moves a listing's saved counter by delta, flooring at zero.
// Unknown ids are reported as domain.ErrNotFound; the favorites ledger may
// legitimately reference listings that no longer exist.
func (s *ListingService) AdjustSaves(ctx context.Context, category domain.Category, id string, delta int) (*domain.Listing, error) {
	return s.update(ctx, category, id, func(l *domain.Listing) {
		l.SavesCount += delta
		if l.SavesCount < 0 {
			l.SavesCount = 0
		}
	})
}

// ListAll returns every listing in a category, newest first.
func (s *ListingService) ListAll(ctx context.Context, category domain.Category) ([]domain.Listing, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, category)
	}
	doc, err := s.store.LoadListings(ctx)
	if err != nil {
		return nil, err
	}
	return *doc.ByCategory(category), nil
}

// ListFeatured returns the curated listings shown on the landing page:
// featured homes first, then featured cars.
func (s *ListingService) ListFeatured(ctx context.Context) ([]domain.Listing, error) {
	doc, err := s.store.LoadListings(ctx)
	if err != nil {
		return nil, err
	}
	var featured []domain.Listing
	for _, l := range doc.Homes {
		if l.Featured {
			featured = append(featured, l)
		}
	}
	for _, l := range doc.Cars {
		if l.Featured {
			featured = append(featured, l)
		}
	}
	return featured, nil
}

// ListByOwner returns all listings posted by the given account, homes before
// cars, newest first within each category.
func (s *ListingService) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Listing, error) {
	doc, err := s.store.LoadListings(ctx)
	if err != nil {
		return nil, err
	}
	var mine []domain.Listing
	for _, l := range doc.Homes {
		if l.OwnerEmail == ownerEmail {
			mine = append(mine, l)
		}
	}
	for _, l := range doc.Cars {
		if l.OwnerEmail == ownerEmail {
			mine = append(mine, l)
		}
	}
	return mine, nil
}

// Delete removes a listing. Only the owner may delete it; anyone else gets
// domain.ErrAuthRequired.
func (s *ListingService) Delete(ctx context.Context, category domain.Category, id, requesterEmail string) error {
	if !category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, category)
	}
	doc, err := s.store.LoadListings(ctx)
	if err != nil {
		return err
	}
	items := doc.ByCategory(category)
	for i := range *items {
		if (*items)[i].ID != id {
			continue
		}
		if (*items)[i].OwnerEmail != requesterEmail {
			return domain.ErrAuthRequired
		}
		*items = append((*items)[:i], (*items)[i+1:]...)
		return s.store.SaveListings(ctx, doc)
	}
	return domain.ErrNotFound
}

// update re-loads the latest snapshot, applies fn to the matching listing,
// and writes the whole document back.
func (s *ListingService) update(ctx context.Context, category domain.Category, id string, fn func(*domain.Listing)) (*domain.Listing, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, category)
	}
	doc, err := s.store.LoadListings(ctx)
	if err != nil {
		return nil, err
	}
	items := *doc.ByCategory(category)
	for i := range items {
		if items[i].ID != id {
			continue
		}
		fn(&items[i])
		if err := s.store.SaveListings(ctx, doc); err != nil {
			return nil, err
		}
		l := items[i]
		return &l, nil
	}
	return nil, domain.ErrNotFound
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

func validateListing(l domain.Listing) error {
	if !l.Category.Valid() {
		return fmt.Errorf("%w: category must be %q or %q", domain.ErrValidation, domain.CategoryHome, domain.CategoryCar)
	}
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(l.City) == "" {
		return fmt.Errorf("%w: city is required", domain.ErrValidation)
	}
	if l.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	return nil
}
