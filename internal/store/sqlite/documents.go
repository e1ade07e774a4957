package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/msomdec/bazaar/internal/domain"
)

// Storage keys, carried over from the original client store so existing
// exports remain readable.
const (
	keyListings  = "bazaar_v2_data_v1"
	keyUsers     = "bazaar_v2_users_v1"
	keySession   = "bazaar_v2_session_v1"
	keyFavorites = "bazaar_v2_favorites_v1"
)

// get returns the raw document for key, or (nil, nil) when absent.
func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM documents WHERE key = ?", key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrStorage, key, err)
	}
	return value, nil
}

// put replaces the whole document for key in one statement.
func (s *Store) put(ctx context.Context, key string, doc any) error {
	value, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrStorage, key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrStorage, key, err)
	}
	return nil
}

func (s *Store) delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE key = ?", key); err != nil {
		return fmt.Errorf("%w: delete %s: %v", domain.ErrStorage, key, err)
	}
	return nil
}

// LoadListings returns the listings document. On first run (or when the
// stored document is corrupt) it seeds the default document and the demo
// user, then returns the seeded state. Reseeding on corrupt data is the
// documented recovery policy, not a best-effort guess.
func (s *Store) LoadListings(ctx context.Context) (*domain.ListingsDocument, error) {
	raw, err := s.get(ctx, keyListings)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		doc := &domain.ListingsDocument{}
		if err := json.Unmarshal(raw, doc); err == nil {
			return doc, nil
		}
		slog.Warn("listings document corrupt, reseeding", "key", keyListings)
	}
	return s.seed(ctx)
}

// SaveListings overwrites the listings document.
func (s *Store) SaveListings(ctx context.Context, doc *domain.ListingsDocument) error {
	return s.put(ctx, keyListings, doc)
}

// LoadUsers returns the stored user list, empty when absent. Corrupt data is
// treated as absent.
func (s *Store) LoadUsers(ctx context.Context) ([]domain.User, error) {
	raw, err := s.get(ctx, keyUsers)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []domain.User{}, nil
	}
	var users []domain.User
	if err := json.Unmarshal(raw, &users); err != nil {
		slog.Warn("users document corrupt, treating as empty", "key", keyUsers)
		return []domain.User{}, nil
	}
	return users, nil
}

// SaveUsers overwrites the user list.
func (s *Store) SaveUsers(ctx context.Context, users []domain.User) error {
	return s.put(ctx, keyUsers, users)
}

// GetSession returns the active session, or nil when anonymous. A corrupt
// session record is cleared and reported as anonymous.
func (s *Store) GetSession(ctx context.Context) (*domain.Session, error) {
	raw, err := s.get(ctx, keySession)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	session := &domain.Session{}
	if err := json.Unmarshal(raw, session); err != nil {
		slog.Warn("session record corrupt, clearing", "key", keySession)
		if err := s.delete(ctx, keySession); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return session, nil
}

// SetSession replaces the session singleton with one for the given email.
func (s *Store) SetSession(ctx context.Context, email string) (*domain.Session, error) {
	session := &domain.Session{Email: email, IssuedAt: s.now().UTC()}
	if err := s.put(ctx, keySession, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ClearSession removes the session record. Clearing an absent session is a
// no-op.
func (s *Store) ClearSession(ctx context.Context) error {
	return s.delete(ctx, keySession)
}

// LoadFavorites returns the favorites ledger, empty when absent or corrupt.
func (s *Store) LoadFavorites(ctx context.Context) (map[string]domain.FavoriteEntry, error) {
	raw, err := s.get(ctx, keyFavorites)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return map[string]domain.FavoriteEntry{}, nil
	}
	favorites := map[string]domain.FavoriteEntry{}
	if err := json.Unmarshal(raw, &favorites); err != nil {
		slog.Warn("favorites ledger corrupt, treating as empty", "key", keyFavorites)
		return map[string]domain.FavoriteEntry{}, nil
	}
	return favorites, nil
}

// SaveFavorites overwrites the favorites ledger.
func (s *Store) SaveFavorites(ctx context.Context, favorites map[string]domain.FavoriteEntry) error {
	return s.put(ctx, keyFavorites, favorites)
}
