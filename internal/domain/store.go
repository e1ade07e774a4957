package domain

import "context"

// ListingsDocument is the full persisted listing state: one slice per
// category, newest first.
type ListingsDocument struct {
	Homes []Listing `json:"homes"`
	Cars  []Listing `json:"cars"`
}

// ByCategory returns a pointer to the slice holding the given category.
func (d *ListingsDocument) ByCategory(c Category) *[]Listing {
	if c == CategoryHome {
		return &d.Homes
	}
	return &d.Cars
}

// Store is the persistence boundary. It reads and writes whole records:
// the listings document, the user list, the session singleton, and the
// favorites ledger. Implementations must surface failed writes as errors
// wrapping ErrStorage and must recover from corrupt stored data by treating
// it as absent (reseeding where a seed is defined).
//
// The store is an explicit handle injected into services so tests can run
// against isolated instances. Each implementation owns its own schema setup,
// keeping the backend swappable.
type Store interface {
	// LoadListings returns the listings document, seeding the default
	// document (and the demo user) on first run.
	LoadListings(ctx context.Context) (*ListingsDocument, error)
	SaveListings(ctx context.Context, doc *ListingsDocument) error

	LoadUsers(ctx context.Context) ([]User, error)
	SaveUsers(ctx context.Context, users []User) error

	// GetSession returns nil when no session is active.
	GetSession(ctx context.Context) (*Session, error)
	SetSession(ctx context.Context, email string) (*Session, error)
	ClearSession(ctx context.Context) error

	LoadFavorites(ctx context.Context) (map[string]FavoriteEntry, error)
	SaveFavorites(ctx context.Context, favorites map[string]FavoriteEntry) error

	Migrate(ctx context.Context) error
	Close() error
}
