package domain

import "time"

// Category is the explicit discriminant of a listing. It is set once at
// creation and never inferred from which optional fields happen to be present.
type Category string

const (
	CategoryHome Category = "home"
	CategoryCar  Category = "car"
)

// Valid reports whether c is one of the known listing categories.
func (c Category) Valid() bool {
	return c == CategoryHome || c == CategoryCar
}

// IDPrefix returns the conventional id prefix for the category ("h_"/"c_").
// The prefix is a readability aid only; Category is the source of truth.
func (c Category) IDPrefix() string {
	if c == CategoryHome {
		return "h_"
	}
	return "c_"
}

// Listing is a home or vehicle advertisement. Common fields are always set;
// the home and vehicle field groups are populated according to Category.
type Listing struct {
	ID              string    `json:"id"`
	Category        Category  `json:"category"`
	Title           string    `json:"title"`
	City            string    `json:"city"`
	Price           int       `json:"price"`
	Description     string    `json:"description"`
	ImageRef        string    `json:"image,omitempty"`
	ContactPhone    string    `json:"phone"`
	ContactWhatsapp string    `json:"whatsapp,omitempty"`
	Featured        bool      `json:"featured"`
	OwnerEmail      string    `json:"ownerEmail"`
	DateAdded       time.Time `json:"dateAdded"`
	Views           int       `json:"views"`
	SavesCount      int       `json:"savesCount,omitempty"`

	// Home fields.
	PropertyType string `json:"propertyType,omitempty"`
	Bedrooms     int    `json:"bedrooms,omitempty"`
	Bathrooms    int    `json:"bathrooms,omitempty"`
	AreaSqFt     int    `json:"areaSqFt,omitempty"`

	// Vehicle fields.
	Make     string `json:"make,omitempty"`
	Model    string `json:"model,omitempty"`
	Year     int    `json:"year,omitempty"`
	Mileage  int    `json:"mileage,omitempty"`
	FuelType string `json:"fuelType,omitempty"`
}

// OwnerAnonymous is the owner email recorded for listings created without a
// signed-in session.
const OwnerAnonymous = "anonymous"

// FilterCriteria narrows a listing set. Zero-valued fields impose no
// constraint.
type FilterCriteria struct {
	City         string // exact match
	PropertyType string // exact match, home listings
	Make         string // case-insensitive substring, vehicle listings
	Model        string // case-insensitive substring, vehicle listings
	MaxPrice     int    // price <= MaxPrice
	MinBedrooms  int    // home listings
	MinBathrooms int    // home listings
	MinYear      int    // vehicle listings
	Query        string // case-insensitive free-text search
}

// SortKey selects the ordering of a query result. The zero value keeps
// repository order (newest first).
type SortKey string

const (
	SortDefault   SortKey = ""
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortDateNew   SortKey = "date_new"
	SortDateOld   SortKey = "date_old"
)
