package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/msomdec/bazaar/internal/domain"
	"github.com/msomdec/bazaar/internal/service"
)

func newTestListingService(t *testing.T) *service.ListingService {
	t.Helper()
	return service.NewListingService(newTestStore(t))
}

func carListing() domain.Listing {
	return domain.Listing{
		Category:     domain.CategoryCar,
		Title:        "Honda Civic 2018",
		City:         "Kabul",
		Price:        15000,
		Description:  "Clean title.",
		ContactPhone: "+93700000009",
		Make:         "Honda",
		Model:        "Civic",
		Year:         2018,
		Mileage:      60000,
		FuelType:     "petrol",
	}
}

func TestListingService_Create_AssignsRepositoryFields(t *testing.T) {
	listings := newTestListingService(t)
	ctx := context.Background()

	created, err := listings.Create(ctx, carListing())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !strings.HasPrefix(created.ID, "c_") {
		t.Fatalf("expected c_ id prefix, got %q", created.ID)
	}
	if created.DateAdded.IsZero() {
		t.Fatal("expected dateAdded to be set")
	}
	if created.Views != 0 || created.SavesCount != 0 {
		t.Fatalf("expected zeroed counters, got views=%d saves=%d", created.Views, created.SavesCount)
	}
	if created.OwnerEmail != domain.OwnerAnonymous {
		t.Fatalf("expected anonymous owner without session, got %q", created.OwnerEmail)
	}

	// The stored record matches the input except for the assigned fields.
	got, err := listings.FindByID(ctx, domain.CategoryCar, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	want := carListing()
	want.ID = created.ID
	want.DateAdded = created.DateAdded
	want.OwnerEmail = domain.OwnerAnonymous
	if *got != want {
		t.Fatalf("stored listing mismatch:\n got %+v\nwant %+v", *got, want)
	}
}

func TestListingService_Create_UniqueIDs(t *testing.T) {
	listings := newTestListingService(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for range 20 {
		created, err := listings.Create(ctx, carListing())
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if seen[created.ID] {
			t.Fatalf("duplicate id %q", created.ID)
		}
		seen[created.ID] = true
	}
}

func TestListingService_Create_Validation(t *testing.T) {
	listings := newTestListingService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*domain.Listing)
	}{
		{"missing title", func(l *domain.Listing) { l.Title = "  " }},
		{"missing city", func(l *domain.Listing) { l.City = "" }},
		{"negative price", func(l *domain.Listing) { l.Price = -1 }},
		{"unknown category", func(l *domain.Listing) { l.Category = "boat" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := carListing()
			tc.mutate(&l)
			if _, err := listings.Create(ctx, l); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestListingService_ListAll_NewestFirst(t *testing.T) {
	listings := newTestListingService(t)
	ctx := context.Background()

	first, err := listings.Create(ctx, carListing())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := listings.Create(ctx, carListing())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := listings.ListAll(ctx, domain.CategoryCar)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	// Newest first: second, first, then the seed car.
	if len(all) != 3 {
		t.Fatalf("expected 3 cars, got %d", len(all))
	}
	if all[0].ID != second.ID || all[1].ID != first.ID || all[2].ID != "c_seed_1" {
		t.Fatalf("unexpected order: %s, %s, %s", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestListingService_FindByID_NotFound(t *testing.T) {
	listings := newTestListingService(t)

	_, err := listings.FindByID(context.Background(), domain.CategoryHome, "h_missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListingService_IncrementViews(t *testing.T) {
	listings := newTestListingService(t)
	ctx := context.Background()

	created, err := listings.Create(ctx, carListing())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// N sequential calls increase views by exactly N.
	for i := 1; i <= 5; i++ {
		got, err := listings.IncrementViews(ctx, domain.CategoryCar, created.ID)
		if err != nil {
			t.Fatalf("IncrementViews #%d: %v", i, err)
		}
		if got.Views != i {
			t.Fatalf("expected views=%d, got %d", i, got.Views)
		}
	}

	_, err = listings.IncrementViews(ctx, domain.CategoryCar, "c_missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListingService_Delete(t *testing.T) {
	listings := newTestListingService(t)
	ctx := context.Background()

	l := carListing()
	l.OwnerEmail = "owner@example.com"
	created, err := listings.Create(ctx, l)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := listings.Delete(ctx, domain.CategoryCar, created.ID, "intruder@example.com"); !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired for non-owner, got %v", err)
	}

	if err := listings.Delete(ctx, domain.CategoryCar, created.ID, "owner@example.com"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := listings.FindByID(ctx, domain.CategoryCar, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected listing to be gone, got %v", err)
	}

	if err := listings.Delete(ctx, domain.CategoryCar, "c_missing", "owner@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListingService_ListFeatured(t *testing.T) {
	listings := newTestListingService(t)
	ctx := context.Background()

	plain := carListing()
	if _, err := listings.Create(ctx, plain); err != nil {
		t.Fatalf("Create: %v", err)
	}
	promoted := carListing()
	promoted.Featured = true
	created, err := listings.Create(ctx, promoted)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	featured, err := listings.ListFeatured(ctx)
	if err != nil {
		t.Fatalf("ListFeatured: %v", err)
	}
	// Seed home, then featured cars (seed car and the promoted one).
	if len(featured) != 3 {
		t.Fatalf("expected 3 featured listings, got %d", len(featured))
	}
	if featured[0].ID != "h_seed_1" {
		t.Fatalf("expected featured homes first, got %s", featured[0].ID)
	}
	if featured[1].ID != created.ID || featured[2].ID != "c_seed_1" {
		t.Fatalf("unexpected featured cars: %s, %s", featured[1].ID, featured[2].ID)
	}
}

func TestListingService_ListByOwner(t *testing.T) {
	listings := newTestListingService(t)
	ctx := context.Background()

	home := domain.Listing{
		Category: domain.CategoryHome, Title: "My flat", City: "Kabul", Price: 40000,
		PropertyType: "Apartment", Bedrooms: 2, Bathrooms: 1, OwnerEmail: "me@example.com",
	}
	if _, err := listings.Create(ctx, home); err != nil {
		t.Fatalf("Create home: %v", err)
	}
	car := carListing()
	car.OwnerEmail = "me@example.com"
	if _, err := listings.Create(ctx, car); err != nil {
		t.Fatalf("Create car: %v", err)
	}
	other := carListing()
	other.OwnerEmail = "other@example.com"
	if _, err := listings.Create(ctx, other); err != nil {
		t.Fatalf("Create other: %v", err)
	}

	mine, err := listings.ListByOwner(ctx, "me@example.com")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 own listings, got %d", len(mine))
	}
	if mine[0].Category != domain.CategoryHome || mine[1].Category != domain.CategoryCar {
		t.Fatalf("expected homes before cars, got %s then %s", mine[0].Category, mine[1].Category)
	}
}
