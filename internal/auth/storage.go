package auth

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/alexedwards/scs/v2"

	"github.com/joestump/jobs-portal/internal/guard"
)

// ErrMalformedValue is returned when a stored value is not a string.
var ErrMalformedValue = errors.New("malformed stored value")

// RequestStorage hands out the browser-scoped store belonging to a request.
type RequestStorage interface {
	ForRequest(r *http.Request) guard.Storage
}

// SessionStorage reads keys from the visitor's scs session.
// The session must have been loaded by (*scs.SessionManager).LoadAndSave.
type SessionStorage struct {
	sessions *scs.SessionManager
}

// NewSessionStorage creates a SessionStorage.
func NewSessionStorage(sm *scs.SessionManager) *SessionStorage {
	return &SessionStorage{sessions: sm}
}

func (s *SessionStorage) ForRequest(r *http.Request) guard.Storage {
	return sessionItems{sessions: s.sessions, r: r}
}

type sessionItems struct {
	sessions *scs.SessionManager
	r        *http.Request
}

func (s sessionItems) GetItem(key string) (value string, ok bool, err error) {
	// scs panics when the session was never loaded into the request context.
	defer func() {
		if rec := recover(); rec != nil {
			value, ok, err = "", false, fmt.Errorf("session unavailable: %v", rec)
		}
	}()

	ctx := s.r.Context()
	if !s.sessions.Exists(ctx, key) {
		return "", false, nil
	}
	v, isString := s.sessions.Get(ctx, key).(string)
	if !isString {
		return "", false, fmt.Errorf("%w: session key %q", ErrMalformedValue, key)
	}
	return v, true, nil
}

// CookieStorage reads keys from plain browser cookies of the same name.
// Values are URL-unescaped.
type CookieStorage struct{}

func (CookieStorage) ForRequest(r *http.Request) guard.Storage {
	return cookieItems{r: r}
}

type cookieItems struct {
	r *http.Request
}

func (c cookieItems) GetItem(key string) (string, bool, error) {
	ck, err := c.r.Cookie(key)
	if errors.Is(err, http.ErrNoCookie) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	v, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return "", false, fmt.Errorf("%w: cookie %q: %v", ErrMalformedValue, key, err)
	}
	return v, true, nil
}
