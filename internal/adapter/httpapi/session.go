package httpapi

import (
	"crypto/subtle"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

// CookieName is the session cookie set after a successful PIN check
const CookieName = "auth_token"

type session struct {
	ID       uuid.UUID
	IssuedAt int64
}

// SessionManager checks the access PIN and issues signed session cookies
type SessionManager struct {
	pin    string
	maxAge time.Duration
	secure bool
	codec  *securecookie.SecureCookie
	now    func() time.Time
}

// NewSessionManager creates a session manager for the given PIN.
// An empty secret generates a random signing key, so sessions do not
// survive a restart.
func NewSessionManager(pin, secret string, maxAge time.Duration, secure bool) (*SessionManager, error) {
	key := []byte(secret)
	if secret == "" {
		key = securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, fmt.Errorf("failed to generate session key")
		}
		log.Println("SESSION_SECRET not set, sessions will reset on restart")
	}
	if pin == "" {
		log.Println("ACCESS_PIN not set, every login attempt will be rejected")
	}

	codec := securecookie.New(key, nil)
	codec.MaxAge(int(maxAge.Seconds()))

	return &SessionManager{
		pin:    pin,
		maxAge: maxAge,
		secure: secure,
		codec:  codec,
		now:    time.Now,
	}, nil
}

// Login compares pin with the configured PIN and sets the session cookie on match
func (m *SessionManager) Login(w http.ResponseWriter, pin string) bool {
	if m.pin == "" || subtle.ConstantTimeCompare([]byte(pin), []byte(m.pin)) != 1 {
		return false
	}

	value, err := m.codec.Encode(CookieName, session{ID: uuid.New(), IssuedAt: m.now().Unix()})
	if err != nil {
		log.Printf("failed to encode session: %v", err)
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return true
}

// Logout clears the session cookie
func (m *SessionManager) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
	})
}

// Authenticated reports whether r carries a valid session cookie
func (m *SessionManager) Authenticated(r *http.Request) bool {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}

	var s session
	if err := m.codec.Decode(CookieName, cookie.Value, &s); err != nil {
		return false
	}
	return s.ID != uuid.Nil
}

// exemptPath reports whether path is reachable without a session
func exemptPath(path string) bool {
	switch path {
	case "/login", "/api/auth", "/api/health", "/favicon.ico":
		return true
	}
	for _, prefix := range []string{"/assets/", "/static/", "/login/"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Middleware rejects unauthenticated requests. API calls get 401,
// page requests are redirected to the login page.
func (m *SessionManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if exemptPath(r.URL.Path) || m.Authenticated(r) {
			next.ServeHTTP(w, r)
			return
		}

		if strings.HasPrefix(r.URL.Path, "/api/") {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		http.Redirect(w, r, "/login", http.StatusFound)
	})
}
