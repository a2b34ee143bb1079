package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SAP-F-2025/collaboration-service/internal/models"
)

// TokenValidity is the fixed lifetime of an identity token. Tokens are never
// refreshed in place; a new one is issued on login or registration.
const TokenValidity = 7 * 24 * time.Hour

// ErrInvalidToken covers every verification failure: bad signature, expiry,
// malformed payload. Verification fails closed and is purely local (no
// network I/O), so callers never need a timeout around it.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of an identity token.
type Claims struct {
	FullName  string           `json:"name"`
	Role      models.UserRole  `json:"role"`
	Workspace models.Workspace `json:"workspace"`
	jwt.RegisteredClaims
}

// Identity is the verified interpretation of a token, as consumed by the
// authorization gate. The role is carried as issued; normalization happens
// at check time.
type Identity struct {
	UserID    string
	FullName  string
	Role      models.UserRole
	Workspace models.Workspace
}

// TokenManager signs and verifies identity tokens with a shared HMAC secret.
type TokenManager struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{
		secret:   []byte(secret),
		validity: TokenValidity,
		now:      time.Now,
	}
}

// Issue produces a signed token for the given user.
func (tm *TokenManager) Issue(user *models.User) (string, error) {
	now := tm.now()
	claims := Claims{
		FullName:  user.FullName,
		Role:      user.Role,
		Workspace: user.Workspace,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.validity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the carried identity.
// Any failure maps to ErrInvalidToken so callers cannot accidentally treat a
// partially parsed token as authenticated.
func (tm *TokenManager) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return tm.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UserID:    claims.Subject,
		FullName:  claims.FullName,
		Role:      claims.Role,
		Workspace: claims.Workspace,
	}, nil
}
