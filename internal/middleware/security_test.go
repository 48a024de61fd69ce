package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecureHeaders(t *testing.T) {
	for _, hsts := range []bool{false, true} {
		inner, _ := okHandler()
		rr := httptest.NewRecorder()
		SecureHeaders(hsts)(inner).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		h := rr.Header()
		for key, want := range map[string]string{
			"X-Content-Type-Options": "nosniff",
			"X-Frame-Options":        "DENY",
			"Referrer-Policy":        "strict-origin-when-cross-origin",
		} {
			if got := h.Get(key); got != want {
				t.Errorf("%s: got %q, want %q", key, got, want)
			}
		}
		if got := h.Get("Strict-Transport-Security") != ""; got != hsts {
			t.Errorf("HSTS present=%v, want %v", got, hsts)
		}
	}
}
