package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evebuzz/evebuzz/pkg/session"
	"github.com/stretchr/testify/assert"
)

func TestPropagateSession(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		wantSession bool
		wantToken   string
	}{
		{"bearer token", "Bearer abc123", true, "abc123"},
		{"scheme is case-insensitive", "bearer abc123", true, "abc123"},
		{"missing header", "", false, ""},
		{"basic credentials", "Basic dXNlcjpwYXNz", false, ""},
		{"empty bearer", "Bearer ", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// given
			var got session.Session
			var gotErr error
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, gotErr = session.Current(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})
			req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			// when
			propagateSession(next).ServeHTTP(w, req)

			// then
			assert.Equal(t, http.StatusNoContent, w.Code)
			if tt.wantSession {
				assert.NoError(t, gotErr)
				assert.Equal(t, tt.wantToken, got.Token)
			} else {
				assert.ErrorIs(t, gotErr, session.ErrNoSession)
			}
		})
	}
}
