package service_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/msomdec/bazaar/internal/domain"
	"github.com/msomdec/bazaar/internal/service"
)

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func sampleHomes() []domain.Listing {
	return []domain.Listing{
		{ID: "h1", Category: domain.CategoryHome, Title: "Sunny 3BR Apartment — Karte 3", City: "Kabul",
			PropertyType: "Apartment", Bedrooms: 3, Bathrooms: 2, Price: 52000,
			Description: "Renovated kitchen, balcony, near market.", DateAdded: day(3)},
		{ID: "h2", Category: domain.CategoryHome, Title: "Family house with garden", City: "Herat",
			PropertyType: "House", Bedrooms: 5, Bathrooms: 3, Price: 90000,
			Description: "Quiet street.", DateAdded: day(2)},
		{ID: "h3", Category: domain.CategoryHome, Title: "Compact studio", City: "Kabul",
			PropertyType: "Apartment", Bedrooms: 1, Bathrooms: 1, Price: 30000,
			Description: "Near university.", DateAdded: day(1)},
	}
}

func sampleCars() []domain.Listing {
	return []domain.Listing{
		{ID: "c1", Category: domain.CategoryCar, Title: "Toyota Corolla 2014 — Good condition", City: "Kabul",
			Make: "Toyota", Model: "Corolla", Year: 2014, Price: 9800,
			Description: "Well maintained, single owner.", DateAdded: day(3)},
		{ID: "c2", Category: domain.CategoryCar, Title: "City runabout", City: "Mazar",
			Make: "Suzuki", Model: "Alto", Year: 2019, Price: 6500,
			Description: "Low mileage.", DateAdded: day(2)},
	}
}

func ids(listings []domain.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func TestQuery_IdentityIsNoOp(t *testing.T) {
	homes := sampleHomes()
	got := service.Query(homes, domain.FilterCriteria{}, domain.SortDefault)
	if !reflect.DeepEqual(got, homes) {
		t.Fatalf("expected unchanged list, got %v", ids(got))
	}
}

func TestQuery_Idempotent(t *testing.T) {
	homes := sampleHomes()
	criteria := domain.FilterCriteria{City: "Kabul"}

	once := service.Query(homes, criteria, domain.SortPriceAsc)
	twice := service.Query(once, criteria, domain.SortPriceAsc)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected idempotent query: %v vs %v", ids(once), ids(twice))
	}
}

func TestQuery_DoesNotMutateInput(t *testing.T) {
	homes := sampleHomes()
	before := ids(homes)

	service.Query(homes, domain.FilterCriteria{}, domain.SortPriceAsc)
	if !reflect.DeepEqual(ids(homes), before) {
		t.Fatalf("input order changed: %v", ids(homes))
	}
}

func TestQuery_MaxPrice(t *testing.T) {
	homes := sampleHomes()[:1] // the 52000 seed-style home

	got := service.Query(homes, domain.FilterCriteria{MaxPrice: 50000}, domain.SortDefault)
	if len(got) != 0 {
		t.Fatalf("expected no homes under 50000, got %v", ids(got))
	}

	got = service.Query(homes, domain.FilterCriteria{MaxPrice: 52000}, domain.SortDefault)
	if len(got) != 1 {
		t.Fatalf("expected the 52000 home at maxPrice 52000, got %v", ids(got))
	}
}

func TestQuery_CityExactMatch(t *testing.T) {
	got := service.Query(sampleHomes(), domain.FilterCriteria{City: "Kabul"}, domain.SortDefault)
	if !reflect.DeepEqual(ids(got), []string{"h1", "h3"}) {
		t.Fatalf("expected Kabul homes h1,h3 in order, got %v", ids(got))
	}

	got = service.Query(sampleHomes(), domain.FilterCriteria{City: "kabul"}, domain.SortDefault)
	if len(got) != 0 {
		t.Fatalf("city match is exact, got %v", ids(got))
	}
}

func TestQuery_FreeText(t *testing.T) {
	cars := sampleCars()

	got := service.Query(cars, domain.FilterCriteria{Query: "corolla"}, domain.SortDefault)
	if !reflect.DeepEqual(ids(got), []string{"c1"}) {
		t.Fatalf("expected corolla to match c1, got %v", ids(got))
	}

	got = service.Query(cars, domain.FilterCriteria{Query: "honda"}, domain.SortDefault)
	if len(got) != 0 {
		t.Fatalf("expected honda to match nothing, got %v", ids(got))
	}

	// The year is part of a vehicle's searchable text.
	got = service.Query(cars, domain.FilterCriteria{Query: "2019"}, domain.SortDefault)
	if !reflect.DeepEqual(ids(got), []string{"c2"}) {
		t.Fatalf("expected 2019 to match c2, got %v", ids(got))
	}

	// Home searches include the property type.
	homes := service.Query(sampleHomes(), domain.FilterCriteria{Query: "APARTMENT"}, domain.SortDefault)
	if !reflect.DeepEqual(ids(homes), []string{"h1", "h3"}) {
		t.Fatalf("expected apartment to match h1,h3, got %v", ids(homes))
	}
}

func TestQuery_MakeModelSubstring(t *testing.T) {
	cars := sampleCars()

	got := service.Query(cars, domain.FilterCriteria{Make: "toy"}, domain.SortDefault)
	if !reflect.DeepEqual(ids(got), []string{"c1"}) {
		t.Fatalf("expected make substring to match c1, got %v", ids(got))
	}

	got = service.Query(cars, domain.FilterCriteria{Model: "ALT"}, domain.SortDefault)
	if !reflect.DeepEqual(ids(got), []string{"c2"}) {
		t.Fatalf("expected model substring to match c2, got %v", ids(got))
	}
}

func TestQuery_MinimumThresholds(t *testing.T) {
	got := service.Query(sampleHomes(), domain.FilterCriteria{MinBedrooms: 3, MinBathrooms: 2}, domain.SortDefault)
	if !reflect.DeepEqual(ids(got), []string{"h1", "h2"}) {
		t.Fatalf("expected h1,h2 with >=3 beds and >=2 baths, got %v", ids(got))
	}

	cars := service.Query(sampleCars(), domain.FilterCriteria{MinYear: 2015}, domain.SortDefault)
	if !reflect.DeepEqual(ids(cars), []string{"c2"}) {
		t.Fatalf("expected minYear to keep c2, got %v", ids(cars))
	}
}

func TestQuery_PriceSortAndStability(t *testing.T) {
	homes := sampleHomes()

	asc := service.Query(homes, domain.FilterCriteria{}, domain.SortPriceAsc)
	if !reflect.DeepEqual(ids(asc), []string{"h3", "h1", "h2"}) {
		t.Fatalf("price_asc order wrong: %v", ids(asc))
	}

	// With unique prices, descending is ascending reversed.
	desc := service.Query(homes, domain.FilterCriteria{}, domain.SortPriceDesc)
	if !reflect.DeepEqual(ids(desc), []string{"h2", "h1", "h3"}) {
		t.Fatalf("price_desc order wrong: %v", ids(desc))
	}

	// Equal prices keep their insertion order.
	tied := []domain.Listing{
		{ID: "a", Category: domain.CategoryHome, Price: 100},
		{ID: "b", Category: domain.CategoryHome, Price: 100},
		{ID: "c", Category: domain.CategoryHome, Price: 50},
	}
	got := service.Query(tied, domain.FilterCriteria{}, domain.SortPriceAsc)
	if !reflect.DeepEqual(ids(got), []string{"c", "a", "b"}) {
		t.Fatalf("expected stable sort to keep a before b, got %v", ids(got))
	}
}

func TestQuery_DateSort(t *testing.T) {
	listings := []domain.Listing{
		{ID: "old", Category: domain.CategoryHome, DateAdded: day(1)},
		{ID: "new", Category: domain.CategoryHome, DateAdded: day(5)},
		{ID: "undated", Category: domain.CategoryHome}, // missing date sorts as epoch
	}

	newest := service.Query(listings, domain.FilterCriteria{}, domain.SortDateNew)
	if !reflect.DeepEqual(ids(newest), []string{"new", "old", "undated"}) {
		t.Fatalf("date_new order wrong: %v", ids(newest))
	}

	oldest := service.Query(listings, domain.FilterCriteria{}, domain.SortDateOld)
	if !reflect.DeepEqual(ids(oldest), []string{"undated", "old", "new"}) {
		t.Fatalf("date_old order wrong: %v", ids(oldest))
	}
}

func TestQuery_CriteriaCombine(t *testing.T) {
	got := service.Query(sampleHomes(), domain.FilterCriteria{
		City:         "Kabul",
		PropertyType: "Apartment",
		MaxPrice:     40000,
	}, domain.SortDefault)
	if !reflect.DeepEqual(ids(got), []string{"h3"}) {
		t.Fatalf("expected combined criteria to keep only h3, got %v", ids(got))
	}
}
