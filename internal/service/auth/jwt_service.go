package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for managing session tokens.
//
// Tokens carry no expiry claim: a token stays cryptographically valid until
// it is removed from the user's stored token list by logout or logout-all.
// ValidateToken therefore only establishes signature validity; callers must
// additionally confirm the exact token string is still in the user's list.
type JWTService interface {
	// GenerateToken creates a signed token bound to the user's ID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies the token's signature and extracts the claims.
	// Returns ErrInvalidToken for malformed, tampered or foreign tokens.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the custom claims structure for session tokens.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Standard registered JWT claims. There is no expiry by design.
	Subject  string    `json:"sub,omitempty"`
	IssuedAt time.Time `json:"iat,omitempty"`
	ID       string    `json:"jti,omitempty"`
}
