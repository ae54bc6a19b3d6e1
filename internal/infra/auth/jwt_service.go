// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"bazaar/config"
	"bazaar/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  []byte        // Secret key for signing access tokens.
	refreshSecret []byte        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
	now           func() time.Time
}

// NewJWTService is the constructor for jwtService.
// Both secrets must be set and differ so one kind can never verify as the other.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.SecretKey.Access == cfg.SecretKey.Refresh {
		return nil, errors.New("access and refresh secrets must differ")
	}

	accessTTL, refreshTTL := 15*time.Minute, 7*24*time.Hour
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.RefreshTokenTTL > 0 {
			refreshTTL = cfg.Auth.RefreshTokenTTL
		}
	}

	return &jwtService{
		accessSecret:  []byte(cfg.SecretKey.Access),
		refreshSecret: []byte(cfg.SecretKey.Refresh),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}, nil
}

// IssueAccessToken signs an access token carrying the account identity.
func (s *jwtService) IssueAccessToken(claims service.AccessClaims) (string, error) {
	return s.sign(&service.Claims{
		Email:            claims.Email,
		MobileNo:         claims.MobileNo,
		Type:             service.TokenKindAccess,
		RegisteredClaims: s.registered(claims.AccountID, s.accessTTL),
	}, s.accessSecret)
}

// IssueRefreshToken signs a refresh token that only carries the subject.
func (s *jwtService) IssueRefreshToken(accountID uuid.UUID) (string, error) {
	return s.sign(&service.Claims{
		Type:             service.TokenKindRefresh,
		RegisteredClaims: s.registered(accountID, s.refreshTTL),
	}, s.refreshSecret)
}

// Verify parses the token with the secret of the expected kind.
func (s *jwtService) Verify(tokenString string, kind service.TokenKind) (*service.Claims, error) {
	var secret []byte
	switch kind {
	case service.TokenKindAccess:
		secret = s.accessSecret
	case service.TokenKindRefresh:
		secret = s.refreshSecret
	default:
		return nil, errors.Wrapf(service.ErrTokenKindMismatch, "unknown token kind %q", kind)
	}

	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, mapJWTError(err)
	}

	if claims.Type != kind {
		return nil, errors.Wrapf(service.ErrTokenKindMismatch, "expected %s token, got %q", kind, claims.Type)
	}
	if _, err := claims.AccountID(); err != nil {
		return nil, err
	}

	return claims, nil
}

// AccessTokenTTL returns the configured duration for access tokens.
func (s *jwtService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}

// RefreshTokenTTL returns the configured duration for refresh tokens.
func (s *jwtService) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}

func (s *jwtService) registered(accountID uuid.UUID, ttl time.Duration) jwt.RegisteredClaims {
	now := s.now()

	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   accountID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (s *jwtService) sign(claims *service.Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// mapJWTError collapses the jwt library errors into the domain verification errors.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return errors.Wrap(service.ErrTokenExpired, err.Error())
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return errors.Wrap(service.ErrTokenSignatureInvalid, err.Error())
	default:
		return errors.Wrap(service.ErrTokenMalformed, err.Error())
	}
}
