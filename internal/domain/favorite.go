package domain

import (
	"fmt"
	"time"
)

// FavoriteEntry marks a listing as saved. The ledger is keyed independently
// of the session so saved items survive sign-out.
type FavoriteEntry struct {
	ID       string    `json:"id"`
	Category Category  `json:"type"`
	AddedAt  time.Time `json:"timestamp"`
}

// FavoriteKey is the ledger key for a (category, id) pair.
func FavoriteKey(category Category, id string) string {
	return fmt.Sprintf("%s_%s", category, id)
}
