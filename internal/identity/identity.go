// Package identity issues and verifies the bearer tokens that tie a request
// to a user, and carries that pairing as a Session.
package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuerName = "goldbook-api"

var (
	// ErrInvalidToken is returned for tokens that fail signature, expiry or claim checks.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrNoSession is returned when an operation needs a signed-in user.
	ErrNoSession = errors.New("no user session")
)

// Session is the identity a single request or CLI run acts as.
// Token may be empty for callers that only touch the local store.
type Session struct {
	UserID string
	Token  string
}

// Valid reports whether the session names a user.
func (s Session) Valid() bool {
	return s.UserID != ""
}

// Claims represents the claims in the JWT
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Issuer signs and validates HS256 access tokens.
type Issuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewIssuer creates an Issuer. A non-positive ttl defaults to 24h.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{key: []byte(secret), ttl: ttl, now: time.Now}
}

// Generate returns a signed access token for the user.
func (i *Issuer) Generate(userID, email string) (string, error) {
	if userID == "" {
		return "", ErrNoSession
	}
	now := i.now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuerName,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Validate parses tokenString and returns its claims.
func (i *Issuer) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.key, nil
	}, jwt.WithIssuer(issuerName), jwt.WithTimeFunc(i.now))

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Session validates tokenString and returns the session it grants.
func (i *Issuer) Session(tokenString string) (Session, error) {
	claims, err := i.Validate(tokenString)
	if err != nil {
		return Session{}, err
	}
	return Session{UserID: claims.UserID, Token: tokenString}, nil
}
