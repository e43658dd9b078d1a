package auth

import (
	"context"
	"time"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the user.
	GenerateToken(ctx context.Context, userID int64, username string) (string, error)

	// ValidateToken validates an access token and extracts its claims.
	// Expired tokens yield ErrExpiredToken; every other failure, including a
	// wrong issuer or audience, yields ErrInvalidToken or ErrWrongTokenType.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed JWT refresh token for the user.
	// Refresh tokens have a longer lifetime and are only accepted by
	// ValidateRefreshToken.
	GenerateRefreshToken(ctx context.Context, userID int64, username string) (string, error)

	// ValidateRefreshToken validates a refresh token and extracts its claims.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)

	// AccessTokenLifetime reports how long newly issued access tokens live.
	AccessTokenLifetime() time.Duration
}

// Claims is the validated content of a token.
type Claims struct {
	// UserID is the id of the user the token was issued for (the "sub" claim).
	UserID int64

	// Username is carried in the "unique_name" claim.
	Username string

	// TokenType is "access" or "refresh".
	TokenType string

	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
