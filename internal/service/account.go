package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/bazaar/internal/domain"
)

const minPasswordLength = 6

// AccountService handles sign-up, sign-in, and the session singleton.
// Credential comparison goes through the injected CredentialVerifier; the
// persisted session record is the source of truth for who is signed in,
// while the signed token exists only so the HTTP layer can carry the
// identity in a cookie.
type AccountService struct {
	store     domain.Store
	verifier  CredentialVerifier
	jwtSecret []byte
}

// NewAccountService creates a new AccountService.
func NewAccountService(store domain.Store, verifier CredentialVerifier, jwtSecret string) *AccountService {
	return &AccountService{
		store:     store,
		verifier:  verifier,
		jwtSecret: []byte(jwtSecret),
	}
}

// SignUp creates a new account and establishes a session for it. The email
// is normalized to lower case and must be unused; the default display name is
// the local part of the email.
func (s *AccountService) SignUp(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrWeakPassword, minPasswordLength)
	}

	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, "", err
	}
	for _, u := range users {
		if normalizeEmail(u.Email) == email {
			return nil, "", domain.ErrDuplicateAccount
		}
	}

	stored, err := s.verifier.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user := domain.User{
		Email:    email,
		Password: stored,
		Name:     email[:strings.Index(email, "@")],
		JoinedAt: nowUTC(),
	}
	if err := s.store.SaveUsers(ctx, append(users, user)); err != nil {
		return nil, "", fmt.Errorf("save users: %w", err)
	}

	token, err := s.establishSession(ctx, email)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// SignIn verifies credentials with a linear scan over all accounts and
// establishes a session on success. The email match is case-insensitive, the
// password check is whatever the verifier says it is.
func (s *AccountService) SignIn(ctx context.Context, email, password string) (*domain.Session, string, error) {
	email = normalizeEmail(email)

	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, "", err
	}
	for _, u := range users {
		if normalizeEmail(u.Email) == email && s.verifier.Verify(u.Password, password) {
			token, err := s.establishSession(ctx, email)
			if err != nil {
				return nil, "", err
			}
			session, err := s.store.GetSession(ctx)
			if err != nil {
				return nil, "", err
			}
			return session, token, nil
		}
	}
	return nil, "", domain.ErrInvalidCredentials
}

// SignOut clears the session. Signing out while anonymous is a no-op.
func (s *AccountService) SignOut(ctx context.Context) error {
	return s.store.ClearSession(ctx)
}

// CurrentSession returns the active session, or nil when anonymous.
func (s *AccountService) CurrentSession(ctx context.Context) (*domain.Session, error) {
	return s.store.GetSession(ctx)
}

// ValidateToken parses a session token and returns the email it was issued
// for. The caller still has to check the token against the current session.
func (s *AccountService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", domain.ErrAuthRequired
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", domain.ErrAuthRequired
	}

	email, err := claims.GetSubject()
	if err != nil || email == "" {
		return "", domain.ErrAuthRequired
	}
	return email, nil
}

func (s *AccountService) establishSession(ctx context.Context, email string) (string, error) {
	session, err := s.store.SetSession(ctx, email)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": session.Email,
		"iat": now.Unix(),
		"exp": now.Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
