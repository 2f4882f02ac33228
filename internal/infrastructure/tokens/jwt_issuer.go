package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/campuscred/campuscred/internal/domain/auth"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the JWT payload of every CampusCred token
type Claims struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

type jwtIssuer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewJWTIssuer creates an HS256 TokenIssuer
func NewJWTIssuer(settings *config.AuthSettings) (auth.TokenIssuer, error) {
	if len(settings.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 bytes")
	}
	return &jwtIssuer{
		secret: []byte(settings.JWTSecret),
		issuer: settings.Issuer,
		now:    time.Now,
	}, nil
}

func (i *jwtIssuer) Issue(profile *profiles.Profile, purpose string, ttl time.Duration) (string, *auth.Identity, error) {
	now := i.now().UTC()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Email:   profile.Email,
		Role:    profile.Role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Subject:   profile.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, identityFromClaims(&claims), nil
}

func (i *jwtIssuer) Parse(token, purpose string) (*auth.Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("token expired: %w", apperr.ErrUnauthorized)
		}
		return nil, fmt.Errorf("invalid token: %w", apperr.ErrUnauthorized)
	}

	if claims.Purpose != purpose {
		return nil, fmt.Errorf("token issued for %q, not %q: %w", claims.Purpose, purpose, apperr.ErrUnauthorized)
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, fmt.Errorf("token missing subject or id: %w", apperr.ErrUnauthorized)
	}

	return identityFromClaims(&claims), nil
}

func identityFromClaims(c *Claims) *auth.Identity {
	identity := &auth.Identity{
		ProfileID: c.Subject,
		Email:     c.Email,
		Role:      c.Role,
		Purpose:   c.Purpose,
		TokenID:   c.ID,
	}
	if c.ExpiresAt != nil {
		identity.ExpiresAt = c.ExpiresAt.Time
	}
	return identity
}
