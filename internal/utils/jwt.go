package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the serialized JWT string. Exp is the UTC
// expiration time, or the zero time when the token was issued without an
// expiry (TTL of zero).
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time; zero when no expiry is set
}

// Claims holds the identity extracted from a verified access token.
// The email is embedded for convenience only; the subject id is the
// authoritative identity.
type Claims struct {
	UserID string // the "sub" claim, the user's opaque id
	Email  string // the "email" claim
}

// ErrTokenInvalid is returned by ParseAccessToken for every verification
// failure: malformed token, bad signature or expired token. The subtypes
// are deliberately collapsed so handlers cannot leak which check failed.
var ErrTokenInvalid = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a user. It embeds the
// subject id (sub), the email and the issued-at time. When ttlMin is
// positive an exp claim is added; with ttlMin of zero the token never
// expires, which matches the historical behavior of this service and is
// only acceptable with a strong signing secret.
func NewAccessToken(secret, userID, email string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
	}
	var exp time.Time
	if ttlMin > 0 {
		exp = now.Add(time.Duration(ttlMin) * time.Minute)
		claims["exp"] = exp.Unix()
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies a raw token string against the signing secret
// and returns the embedded identity. The signing method is pinned to HMAC
// so a token signed with "none" or an asymmetric scheme is rejected.
// Verification is stateless: given the same secret, any replica produces
// the same result.
func ParseAccessToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}
	sub, _ := mc["sub"].(string)
	if sub == "" {
		return Claims{}, ErrTokenInvalid
	}
	email, _ := mc["email"].(string)
	return Claims{UserID: sub, Email: email}, nil
}
