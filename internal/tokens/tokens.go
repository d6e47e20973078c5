package tokens

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenDuration is the validity window of an access token.
const AccessTokenDuration = 10 * time.Minute

// refreshTokenBytes yields 64 base64url symbols per token.
const refreshTokenBytes = 48

// ErrInvalidToken covers every access-token failure: bad signature,
// malformed payload, or expiry. Callers must not distinguish between them.
var ErrInvalidToken = errors.New("invalid token")

type accessClaims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user"`
}

// Issuer mints and verifies access tokens signed with a process-wide secret.
type Issuer struct {
	secret []byte
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// IssueAccess returns a signed HS256 token carrying the user id, valid for
// AccessTokenDuration.
func (i *Issuer) IssueAccess(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenDuration)),
		},
		UserID: userID,
	})
	return token.SignedString(i.secret)
}

// VerifyAccess checks signature and expiry (no leeway) and returns the user
// id the token was issued for.
func (i *Issuer) VerifyAccess(tokenString string) (int64, error) {
	claims := &accessClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

// IssueRefresh generates an opaque random refresh token. It carries no
// payload; the token -> user mapping lives only in the session cache.
func IssueRefresh() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
