package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"slotbook/backend/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Denylist remembers revoked tokens until their natural expiry.
type Denylist interface {
	Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
}

// Service issues, refreshes and revokes the HS256 bearer tokens that
// identify hosts. Possession of a valid, non-revoked token is the only
// credential owner-scoped operations accept.
type Service struct {
	users    store.UserRepository
	denylist Denylist
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewService(users store.UserRepository, denylist Denylist, secret string, tokenTTL time.Duration) *Service {
	return &Service{
		users:    users,
		denylist: denylist,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

type Token struct {
	Value     string
	ExpiresAt time.Time
}

func (s *Service) Login(ctx context.Context, email, password string) (Token, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Token{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return Token{}, ErrInvalidCredentials
	}
	if err != nil {
		return Token{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Token{}, ErrInvalidCredentials
	}

	return s.issue(user.ID)
}

// Authenticate validates a bearer token and returns the host it
// identifies.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (uuid.UUID, error) {
	hostID, _, err := s.parse(tokenString)
	if err != nil {
		return uuid.Nil, err
	}
	revoked, err := s.denylist.IsRevoked(ctx, HashToken(tokenString))
	if err != nil {
		return uuid.Nil, err
	}
	if revoked {
		return uuid.Nil, ErrInvalidToken
	}
	return hostID, nil
}

// Refresh exchanges a valid token for a fresh one and revokes the old
// one so it cannot be replayed.
func (s *Service) Refresh(ctx context.Context, tokenString string) (Token, error) {
	hostID, expiresAt, err := s.parse(tokenString)
	if err != nil {
		return Token{}, err
	}
	revoked, err := s.denylist.IsRevoked(ctx, HashToken(tokenString))
	if err != nil {
		return Token{}, err
	}
	if revoked {
		return Token{}, ErrInvalidToken
	}

	fresh, err := s.issue(hostID)
	if err != nil {
		return Token{}, err
	}
	if err := s.denylist.Revoke(ctx, HashToken(tokenString), expiresAt.Sub(s.now().UTC())); err != nil {
		return Token{}, err
	}
	return fresh, nil
}

// Logout revokes the presented token until it would have expired anyway.
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	_, expiresAt, err := s.parse(tokenString)
	if err != nil {
		return err
	}
	return s.denylist.Revoke(ctx, HashToken(tokenString), expiresAt.Sub(s.now().UTC()))
}

func (s *Service) issue(hostID uuid.UUID) (Token, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"sub": hostID.String(),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, ExpiresAt: expiresAt}, nil
}

func (s *Service) parse(tokenString string) (uuid.UUID, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, time.Time{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, time.Time{}, ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return uuid.Nil, time.Time{}, ErrInvalidToken
	}
	hostID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, time.Time{}, ErrInvalidToken
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return uuid.Nil, time.Time{}, ErrInvalidToken
	}
	return hostID, time.Unix(int64(exp), 0).UTC(), nil
}

// HashToken computes the SHA-256 hex digest under which a token is
// denylisted, so raw tokens never reach the denylist store.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
