package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHSTS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := HSTS(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Strict-Transport-Security"); got != "max-age=31536000; includeSubDomains" {
		t.Errorf("unexpected HSTS header: %q", got)
	}
}

func TestIsHostAllowed(t *testing.T) {
	tests := []struct {
		name         string
		host         string
		allowedHosts []string
		want         bool
	}{
		{
			name:         "empty list allows everything",
			host:         "anything.com",
			allowedHosts: nil,
			want:         true,
		},
		{
			name:         "exact match",
			host:         "example.com",
			allowedHosts: []string{"example.com"},
			want:         true,
		},
		{
			name:         "match ignoring request port",
			host:         "example.com:8443",
			allowedHosts: []string{"example.com"},
			want:         true,
		},
		{
			name:         "match ignoring allowed port",
			host:         "example.com",
			allowedHosts: []string{"example.com:443"},
			want:         true,
		},
		{
			name:         "case insensitive",
			host:         "Example.COM",
			allowedHosts: []string{"example.com"},
			want:         true,
		},
		{
			name:         "no match",
			host:         "evil.com",
			allowedHosts: []string{"example.com"},
			want:         false,
		},
		{
			name:         "subdomain mismatch",
			host:         "sub.example.com",
			allowedHosts: []string{"example.com"},
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsHostAllowed(tt.host, tt.allowedHosts)
			if got != tt.want {
				t.Errorf("IsHostAllowed(%q, %v) = %v, want %v", tt.host, tt.allowedHosts, got, tt.want)
			}
		})
	}
}
