package sqlite

import (
	"context"

	"github.com/msomdec/bazaar/internal/domain"
)

// Demo account created alongside the seed listings on first run.
const (
	DemoEmail    = "demo@bazaar.af"
	DemoPassword = "demo123"
)

func (s *Store) seedListings() *domain.ListingsDocument {
	now := s.now().UTC()
	return &domain.ListingsDocument{
		Homes: []domain.Listing{{
			ID:              "h_seed_1",
			Category:        domain.CategoryHome,
			Title:           "Sunny 3BR Apartment — Karte 3",
			City:            "Kabul",
			PropertyType:    "Apartment",
			Bedrooms:        3,
			Bathrooms:       2,
			Price:           52000,
			Description:     "Renovated kitchen, balcony, near market.",
			ImageRef:        "https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?q=80&w=1200&auto=format&fit=crop",
			ContactPhone:    "+93700000001",
			ContactWhatsapp: "+93700000001",
			Featured:        true,
			OwnerEmail:      "seed@local",
			DateAdded:       now,
		}},
		Cars: []domain.Listing{{
			ID:              "c_seed_1",
			Category:        domain.CategoryCar,
			Title:           "Toyota Corolla 2014 — Good condition",
			City:            "Kabul",
			Make:            "Toyota",
			Model:           "Corolla",
			Year:            2014,
			Price:           9800,
			Description:     "Well maintained, single owner.",
			ImageRef:        "https://images.unsplash.com/photo-1542362567-b07e54358753?q=80&w=1200&auto=format&fit=crop",
			ContactPhone:    "+93700000002",
			ContactWhatsapp: "+93700000002",
			Featured:        true,
			OwnerEmail:      "seed@local",
			DateAdded:       now,
		}},
	}
}

// seed writes the default listings document and, when no users exist yet,
// the demo account. It returns the seeded document.
func (s *Store) seed(ctx context.Context) (*domain.ListingsDocument, error) {
	doc := s.seedListings()
	if err := s.SaveListings(ctx, doc); err != nil {
		return nil, err
	}

	users, err := s.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		demo := domain.User{
			Email:    DemoEmail,
			Password: DemoPassword,
			Name:     "Demo User",
			JoinedAt: s.now().UTC(),
		}
		if err := s.SaveUsers(ctx, []domain.User{demo}); err != nil {
			return nil, err
		}
	}

	return doc, nil
}
