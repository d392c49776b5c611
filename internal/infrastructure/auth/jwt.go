package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/registers/backend/internal/infrastructure/config"
)

// RoleMaintainRefData is the authority required for register mutations
const RoleMaintainRefData = "ROLE_MAINTAIN_REF_DATA"

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrInvalidClaims    = errors.New("invalid token claims")
)

// Claims represents the bearer token claims the register service cares
// about. Authorities carry the granted roles.
type Claims struct {
	jwt.RegisteredClaims
	Username    string   `json:"user_name,omitempty"`
	ClientID    string   `json:"client_id,omitempty"`
	Authorities []string `json:"authorities,omitempty"`
}

// HasAuthority reports whether the token grants the given authority
func (c *Claims) HasAuthority(authority string) bool {
	for _, a := range c.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// Principal returns the acting identity for audit purposes: the username
// when present, otherwise the client id.
func (c *Claims) Principal() string {
	if c.Username != "" {
		return c.Username
	}
	return c.ClientID
}

// JWTService validates bearer tokens on secure endpoints. It can also mint
// tokens, which the test and local tooling use.
type JWTService struct {
	secret     []byte
	issuer     string
	expiration time.Duration
}

// DefaultTokenExpiration is the lifetime of tokens minted by GenerateToken
const DefaultTokenExpiration = time.Hour

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		expiration: DefaultTokenExpiration,
	}
}

// GenerateToken mints a signed token carrying the given identity and
// authorities
func (s *JWTService) GenerateToken(username, clientID string, authorities []string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username:    username,
		ClientID:    clientID,
		Authorities: authorities,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses and validates a bearer token string
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		default:
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
