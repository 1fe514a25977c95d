// Package notice provides the transient notifications shown after a form
// action. Notices survive one redirect in a cookie and are cleared on read.
package notice

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/requestmeta"
)

// CookieName is the flash cookie.
const CookieName = "wedding_flash"

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notice references a catalog entry; the copy is resolved at render time.
type Notice struct {
	Kind Kind   `json:"kind"`
	Key  string `json:"key"`
}

func Success(key string) Notice {
	return Notice{Kind: KindSuccess, Key: key}
}

func Error(key string) Notice {
	return Notice{Kind: KindError, Key: key}
}

func (n Notice) Title() string {
	return Text(n.Key + ".title")
}

func (n Notice) Description() string {
	return Text(n.Key + ".description")
}

func (n Notice) Destructive() bool {
	return n.Kind == KindError
}

// Write stores n for the next page render.
func Write(w http.ResponseWriter, r *http.Request, n Notice) {
	normalized, ok := normalize(n)
	if !ok {
		return
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClear returns the pending notice, if any, and expires the cookie.
func ReadAndClear(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	return decode(cookie.Value)
}

func decode(raw string) (Notice, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Notice{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Notice{}, false
	}
	var n Notice
	if err := json.Unmarshal(decoded, &n); err != nil {
		return Notice{}, false
	}
	return normalize(n)
}

func normalize(n Notice) (Notice, bool) {
	n.Key = strings.TrimSpace(n.Key)
	if n.Key == "" {
		return Notice{}, false
	}
	switch n.Kind {
	case KindSuccess, KindError:
		return n, true
	default:
		return Notice{}, false
	}
}
