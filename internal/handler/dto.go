package handler

import (
	"time"

	"github.com/msomdec/bazaar/internal/domain"
)

// ListingDTO is the JSON representation of a listing.
type ListingDTO struct {
	ID           string `json:"id"`
	Category     string `json:"category"`
	Title        string `json:"title"`
	City         string `json:"city"`
	Price        int    `json:"price"`
	Description  string `json:"description"`
	Image        string `json:"image,omitempty"`
	Phone        string `json:"phone"`
	Whatsapp     string `json:"whatsapp,omitempty"`
	Featured     bool   `json:"featured"`
	OwnerEmail   string `json:"ownerEmail"`
	DateAdded    string `json:"dateAdded"`
	Views        int    `json:"views"`
	SavesCount   int    `json:"savesCount"`
	PropertyType string `json:"propertyType,omitempty"`
	Bedrooms     int    `json:"bedrooms,omitempty"`
	Bathrooms    int    `json:"bathrooms,omitempty"`
	AreaSqFt     int    `json:"areaSqFt,omitempty"`
	Make         string `json:"make,omitempty"`
	Model        string `json:"model,omitempty"`
	Year         int    `json:"year,omitempty"`
	Mileage      int    `json:"mileage,omitempty"`
	FuelType     string `json:"fuelType,omitempty"`
}

func toListingDTO(l domain.Listing) ListingDTO {
	return ListingDTO{
		ID:           l.ID,
		Category:     string(l.Category),
		Title:        l.Title,
		City:         l.City,
		Price:        l.Price,
		Description:  l.Description,
		Image:        l.ImageRef,
		Phone:        l.ContactPhone,
		Whatsapp:     l.ContactWhatsapp,
		Featured:     l.Featured,
		OwnerEmail:   l.OwnerEmail,
		DateAdded:    l.DateAdded.Format(time.RFC3339),
		Views:        l.Views,
		SavesCount:   l.SavesCount,
		PropertyType: l.PropertyType,
		Bedrooms:     l.Bedrooms,
		Bathrooms:    l.Bathrooms,
		AreaSqFt:     l.AreaSqFt,
		Make:         l.Make,
		Model:        l.Model,
		Year:         l.Year,
		Mileage:      l.Mileage,
		FuelType:     l.FuelType,
	}
}

func toListingDTOs(listings []domain.Listing) []ListingDTO {
	dtos := make([]ListingDTO, len(listings))
	for i, l := range listings {
		dtos[i] = toListingDTO(l)
	}
	return dtos
}

// UserDTO is the JSON representation of a user. The stored credential never
// leaves the core.
type UserDTO struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	JoinedAt string `json:"joinedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		Email:    u.Email,
		Name:     u.Name,
		JoinedAt: u.JoinedAt.Format(time.RFC3339),
	}
}

// SessionDTO is the JSON representation of the active session.
type SessionDTO struct {
	Email    string `json:"email"`
	IssuedAt string `json:"issuedAt"`
}

func toSessionDTO(s *domain.Session) SessionDTO {
	return SessionDTO{
		Email:    s.Email,
		IssuedAt: s.IssuedAt.Format(time.RFC3339),
	}
}

// FavoriteDTO is the JSON representation of a saved-items ledger entry.
type FavoriteDTO struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	AddedAt  string `json:"addedAt"`
}

func toFavoriteDTOs(entries []domain.FavoriteEntry) []FavoriteDTO {
	dtos := make([]FavoriteDTO, len(entries))
	for i, e := range entries {
		dtos[i] = FavoriteDTO{
			ID:       e.ID,
			Category: string(e.Category),
			AddedAt:  e.AddedAt.Format(time.RFC3339),
		}
	}
	return dtos
}
