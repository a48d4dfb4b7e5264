// Package session implements the server-side view of the browser session:
// a signed cookie carrying the secret the client presented at login, with a
// fixed expiry. There is no revocation list; expiry is purely time-based.
package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cofre/internal/common"
)

// CookieName identifies the session cookie.
const CookieName = "cofre_session"

// Claims includes the registered claims plus the secret presented at login.
// Identity is re-derived from the secret on every authenticated request.
type Claims struct {
	jwt.RegisteredClaims
	Secret string `json:"sec"`
}

// Manager creates, reads and destroys session cookies. The cookie value is
// an HS256 JWT signed with the configured session key.
type Manager struct {
	key []byte
	ttl time.Duration
}

func NewManager(key string, ttl time.Duration) *Manager {
	return &Manager{key: []byte(key), ttl: ttl}
}

// Create marks the session authenticated by setting a signed cookie bound
// to the matched secret, expiring ttl from now.
func (m *Manager) Create(w http.ResponseWriter, secret string) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
		},
		Secret: secret,
	})

	value, err := token.SignedString(m.key)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read returns the secret bound to the request's session. It returns
// common.ErrNoSession when no cookie is present and common.ErrInvalidSession
// when the cookie is expired, tampered with, or otherwise unusable.
func (m *Manager) Read(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", common.ErrNoSession
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return m.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", common.ErrInvalidSession
	}

	return claims.Secret, nil
}

// Destroy clears the session cookie.
func (m *Manager) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
