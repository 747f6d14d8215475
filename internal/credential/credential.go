// Package credential reads and issues the board id a client presents.
package credential

import (
	"net/http"
	"time"
)

const (
	CookieName = "board_id"
	HeaderName = "X-Board-ID"
	QueryParam = "board"
)

// FromRequest returns the board id presented by the client, looking at the
// cookie, then the header, then the query string.
func FromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if id := r.Header.Get(HeaderName); id != "" {
		return id
	}
	return r.URL.Query().Get(QueryParam)
}

// SetCookie stores boardID in the client's board cookie for one day.
func SetCookie(w http.ResponseWriter, boardID string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    boardID,
		Path:     "/",
		MaxAge:   int(24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
