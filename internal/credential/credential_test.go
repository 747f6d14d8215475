package credential

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		target string
		cookie string
		header string
		want   string
	}{
		{name: "none", target: "/", want: ""},
		{name: "query", target: "/?board=q1", want: "q1"},
		{name: "header", target: "/", header: "h1", want: "h1"},
		{name: "cookie", target: "/", cookie: "c1", want: "c1"},
		{name: "header beats query", target: "/?board=q1", header: "h1", want: "h1"},
		{name: "cookie beats header", target: "/?board=q1", cookie: "c1", header: "h1", want: "c1"},
		{name: "empty cookie falls through", target: "/", cookie: "", header: "h1", want: "h1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				r.Header.Set(HeaderName, tt.header)
			}
			if got := FromRequest(r); got != tt.want {
				t.Errorf("FromRequest = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetCookie(t *testing.T) {
	w := httptest.NewRecorder()
	SetCookie(w, "b1", true)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName || c.Value != "b1" {
		t.Errorf("cookie = %s=%s, want %s=b1", c.Name, c.Value, CookieName)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode || c.Path != "/" {
		t.Errorf("cookie attributes = %+v", c)
	}
	if c.MaxAge != 86400 {
		t.Errorf("MaxAge = %d, want 86400", c.MaxAge)
	}
}
