package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/coursia/authkit/account"
)

const segmentCount = 3

// Config controls token issuance and verification.
type Config struct {
	TTL    time.Duration
	Secret []byte
	Issuer string
}

// Claims is the decoded payload of a session token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies session tokens with a single HMAC key.
type Manager struct {
	config Config
}

// NewManager validates cfg and returns a ready Manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.TTL <= 0 {
		return nil, errors.New("token TTL must be > 0")
	}
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token secret required")
	}
	return &Manager{config: cfg}, nil
}

// Issue signs a token for u expiring TTL from now. The token has no side
// effects; it is not registered anywhere.
func (m *Manager) Issue(u *account.User) (string, error) {
	if u == nil || u.ID == "" {
		return "", errors.New("user with ID required")
	}

	now := time.Now()
	claims := Claims{
		Email: u.Email,
		Role:  string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.config.Issuer,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.config.Secret)
}

// Parse verifies signature, shape, and expiry and returns the claims.
func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	if strings.Count(tokenStr, ".") != segmentCount-1 {
		return nil, jwt.ErrTokenMalformed
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}

	parsed, err := jwt.NewParser(options...).ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return m.config.Secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Validate reports whether tokenStr is a well-formed, correctly signed token
// whose expiry is strictly in the future. It fails closed: any input that
// does not split into exactly three segments, does not decode, or has
// expired yields false. It never returns an error and never panics.
func (m *Manager) Validate(tokenStr string) bool {
	if tokenStr == "" {
		return false
	}
	_, err := m.Parse(tokenStr)
	return err == nil
}
