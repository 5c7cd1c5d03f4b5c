// Package middleware содержит HTTP middleware для сервиса аренды жилья.
package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/dkravets/renthub-system/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

const (
	sessionCookieName = "session_token"
	sessionCookieTTL  = 365 * 24 * time.Hour
)

// SessionMiddleware связывает HTTP-запросы с сеансами по подписанному cookie.
type SessionMiddleware struct {
	secretKey []byte
	store     *session.Store
}

// NewSessionMiddleware создаёт новый экземпляр SessionMiddleware с указанным
// секретным ключом и хранилищем сеансов.
func NewSessionMiddleware(secret string, store *session.Store) *SessionMiddleware {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("default-secret-key")
		}
	}

	return &SessionMiddleware{
		secretKey: key,
		store:     store,
	}
}

// Middleware находит сеанс по cookie и добавляет его в контекст запроса.
// При отсутствии или порче cookie создаётся новый сеанс и выставляется
// свежий cookie: анонимный посетитель тоже работает в рамках сеанса.
func (m *SessionMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *session.Session

		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			if id, ok := m.parseCookie(cookie.Value); ok {
				sess, _ = m.store.Get(id)
			}
		}

		if sess == nil {
			sess = m.store.Create()
			m.SetSessionCookie(w, sess.ID())
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePrivileged пропускает запрос только при привилегированном сеансе.
func (m *SessionMiddleware) RequirePrivileged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := GetSessionFromContext(r.Context())
		if !ok || !sess.IsPrivileged() {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SetSessionCookie устанавливает cookie для указанного идентификатора сеанса.
func (m *SessionMiddleware) SetSessionCookie(w http.ResponseWriter, id string) {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    m.signID(id),
		Path:     "/",
		Expires:  time.Now().Add(sessionCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	http.SetCookie(w, cookie)
}

func (m *SessionMiddleware) signID(id string) string {
	mac := hmac.New(sha256.New, m.secretKey)
	mac.Write([]byte(id))
	signature := mac.Sum(nil)
	return id + "." + hex.EncodeToString(signature)
}

func (m *SessionMiddleware) parseCookie(cookieValue string) (string, bool) {
	idx := strings.LastIndex(cookieValue, ".")
	if idx < 0 {
		return "", false
	}

	id := cookieValue[:idx]
	signature := cookieValue[idx+1:]

	mac := hmac.New(sha256.New, m.secretKey)
	mac.Write([]byte(id))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return "", false
	}

	return id, true
}

// GetSessionFromContext извлекает сеанс из контекста запроса.
func GetSessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*session.Session)
	return s, ok
}
