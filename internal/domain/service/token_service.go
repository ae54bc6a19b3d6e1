package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// TokenKind distinguishes access tokens from refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Verification failures. Callers collapse them into a single unauthorized outcome.
var (
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenKindMismatch     = errors.New("token kind mismatch")
)

// AccessClaims is the identity embedded in an access token.
type AccessClaims struct {
	AccountID uuid.UUID
	Email     string
	MobileNo  string
}

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	Email    string    `json:"email,omitempty"`
	MobileNo string    `json:"mobileNo,omitempty"`
	Type     TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// AccountID parses the subject claim.
func (c *Claims) AccountID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, errors.Wrap(ErrTokenMalformed, "subject is not an account id")
	}

	return id, nil
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// IssueAccessToken signs a short-lived access token.
	IssueAccessToken(claims AccessClaims) (string, error)

	// IssueRefreshToken signs a long-lived refresh token bound to the account.
	IssueRefreshToken(accountID uuid.UUID) (string, error)

	// Verify checks signature, expiry and kind, and returns the decoded claims.
	Verify(token string, kind TokenKind) (*Claims, error)

	// AccessTokenTTL returns the configured lifetime of access tokens.
	AccessTokenTTL() time.Duration

	// RefreshTokenTTL returns the configured lifetime of refresh tokens.
	RefreshTokenTTL() time.Duration
}
