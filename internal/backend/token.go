package backend

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	apperrors "peoplectl/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// TokenMinter creates and verifies the HS256 access tokens the backend hands
// out on login.
type TokenMinter struct {
	secret []byte
	expiry time.Duration
}

func NewTokenMinter(secret string, expiry time.Duration) *TokenMinter {
	return &TokenMinter{secret: []byte(secret), expiry: expiry}
}

// Mint signs an access token for username.
func (tm *TokenMinter) Mint(username string) (string, error) {
	claims := jwtlib.MapClaims{
		"sub": username,
		"exp": NowTimeFunc().Add(tm.expiry).Unix(),
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)

	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", apperrors.Wrapf(err, "[TokenMinter Mint] signing token")
	}
	return signed, nil
}

// Verify checks the signature and expiry of rawToken and returns the subject.
func (tm *TokenMinter) Verify(rawToken string) (string, error) {
	token, err := jwtlib.Parse(rawToken, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return tm.secret, nil
	}, jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }))
	if err != nil || !token.Valid {
		return "", apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return "", apperrors.ErrInvalidToken
	}
	subject, _ := claims["sub"].(string)
	if subject == "" {
		return "", apperrors.ErrInvalidToken
	}
	return subject, nil
}

// bcrypt rejects inputs over 72 bytes; longer passwords are truncated the
// same way on signup and login so they keep matching.
func truncatePassword(password string) string {
	if len(password) > 72 {
		return password[:72]
	}
	return password
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(truncatePassword(password)), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(truncatePassword(password)))
	return err == nil
}
