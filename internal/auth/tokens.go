package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/brasaviva/restaurant-api/internal/models"
)

// ErrTokenNotFound is returned when a refresh token is unknown, expired or
// already rotated away.
var ErrTokenNotFound = errors.New("refresh token not found")

// TokenStore persists refresh tokens by their SHA-256 hash. Only the hash
// ever leaves this package's callers; the raw value goes to the client.
type TokenStore interface {
	Store(ctx context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error
	Lookup(ctx context.Context, tokenHash string) (uuid.UUID, error)
	Revoke(ctx context.Context, tokenHash string) error
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	store      TokenStore
}

func NewService(secret string, accessTTL, refreshTTL time.Duration, store TokenStore) *Service {
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		store:      store,
	}
}

// Issue signs a short-lived access JWT and mints a fresh opaque refresh
// token for the user, storing only the refresh token's hash.
func (s *Service) Issue(ctx context.Context, user *models.User) (TokenPair, error) {
	exp := time.Now().UTC().Add(s.accessTTL)

	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return TokenPair{}, err
	}

	raw, err := randomHex(48)
	if err != nil {
		return TokenPair{}, err
	}

	if err := s.store.Store(ctx, HashToken(raw), user.ID, s.refreshTTL); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  signed,
		RefreshToken: raw,
		ExpiresAt:    exp,
	}, nil
}

// Rotate validates a raw refresh token, revokes it and returns the owning
// user id. The caller issues a new pair; a replayed token fails the lookup.
func (s *Service) Rotate(ctx context.Context, raw string) (uuid.UUID, error) {
	hash := HashToken(raw)

	userID, err := s.store.Lookup(ctx, hash)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.store.Revoke(ctx, hash); err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}

// Revoke invalidates a raw refresh token. Unknown tokens are not an error.
func (s *Service) Revoke(ctx context.Context, raw string) error {
	return s.store.Revoke(ctx, HashToken(raw))
}

// HashToken maps a raw refresh token to the hex SHA-256 digest used as its
// storage key.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
