package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	assert.Equal(t, "abc", FromContext(WithRequestID(context.Background(), "abc")))
	assert.Equal(t, "", FromContext(context.Background()))
	assert.Equal(t, "", FromContext(context.WithValue(context.Background(), RequestIDKey, 42)))
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"no header", "", false},
		{"valid header", "req-2025.01_07", true},
		{"too long", strings.Repeat("a", 65), false},
		{"log injection", "abc\nlevel=ERROR", false},
		{"spaces", "a b", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured string
			h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured = FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, captured, rec.Header().Get(RequestIDHeader))
			if tt.keep {
				assert.Equal(t, tt.incoming, captured)
				return
			}
			_, err := uuid.Parse(captured)
			require.NoError(t, err)
		})
	}
}
