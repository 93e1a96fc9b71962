package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/vaultpass/passgen-go/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "passgen_session"

// Sessions resolves session tokens against a store. Sessions are only
// created through Ensure, so requests that never produce history never
// allocate one.
type Sessions struct {
	store  *session.Store
	secret string
	expiry time.Duration
}

// NewSessions creates a Sessions issuing tokens valid for expiry.
func NewSessions(store *session.Store, secret string, expiry time.Duration) *Sessions {
	return &Sessions{store: store, secret: secret, expiry: expiry}
}

// Store returns the underlying session store.
func (s *Sessions) Store() *session.Store { return s.store }

// Middleware attaches the caller's live session, if any, to the request
// context. The token is taken from the session cookie, falling back to a
// Bearer Authorization header. Tokens past half their lifetime are
// re-issued so an active session outlives its first token.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, claims := s.lookup(r)
		if sess != nil {
			if claims.ExpiresAt != nil && time.Until(claims.ExpiresAt.Time) < s.expiry/2 {
				if err := s.issue(w, sess); err != nil {
					writeJSONError(w, http.StatusInternalServerError, "internal server error")
					return
				}
			}
			r = r.WithContext(context.WithValue(r.Context(), sessionKey, sess))
		}
		next.ServeHTTP(w, r)
	})
}

// Ensure returns the request's session, creating one and sending its token
// when there is none.
func (s *Sessions) Ensure(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	if sess, ok := SessionFromContext(r.Context()); ok {
		return sess, nil
	}
	sess := s.store.Create()
	if err := s.issue(w, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Sessions) issue(w http.ResponseWriter, sess *session.Session) error {
	token, err := session.IssueToken(sess.ID, s.secret, s.expiry)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.expiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	w.Header().Set("X-Session-Token", token)
	return nil
}

func (s *Sessions) lookup(r *http.Request) (*session.Session, *session.Claims) {
	var tokens []string
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		tokens = append(tokens, c.Value)
	}
	if t, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found && t != "" {
		tokens = append(tokens, t)
	}

	for _, token := range tokens {
		claims, err := session.ParseToken(token, s.secret)
		if err != nil {
			continue
		}
		if sess, err := s.store.Get(claims.SessionID); err == nil {
			return sess, claims
		}
	}
	return nil, nil
}

// SessionFromContext returns the session attached by Sessions.Middleware or Ensure.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*session.Session)
	return sess, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
