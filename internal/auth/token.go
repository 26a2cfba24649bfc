package auth

import (
	"errors"
	"fmt"
	"time"

	"auction-engine/internal/auctionerrors"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the caller's privilege level
type Role string

const (
	RoleAdmin Role = "admin"
	RoleTeam  Role = "team"
)

// Claims carried by every auction token
type Claims struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
	TeamID string `json:"team_id,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller resolved from a token
type Identity struct {
	UserID string
	Role   Role
	TeamID string
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Issuer signs and parses HS256 tokens with a shared secret
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// GenerateToken issues a token for the given identity.
func (i *Issuer) GenerateToken(id Identity) (string, error) {
	if id.Role == RoleTeam && id.TeamID == "" {
		return "", errors.New("team token requires a team id")
	}
	now := time.Now()
	claims := Claims{
		UserID: id.UserID,
		Role:   id.Role,
		TeamID: id.TeamID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// ParseToken validates a token and returns the identity it carries.
func (i *Issuer) ParseToken(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", auctionerrors.ErrUnauthorized, err)
	}
	if !token.Valid {
		return Identity{}, auctionerrors.ErrUnauthorized
	}
	switch claims.Role {
	case RoleAdmin, RoleTeam:
	default:
		return Identity{}, fmt.Errorf("%w: unknown role %q", auctionerrors.ErrUnauthorized, claims.Role)
	}
	return Identity{UserID: claims.UserID, Role: claims.Role, TeamID: claims.TeamID}, nil
}
