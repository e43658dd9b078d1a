package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasktrack-api/internal/api/shared"
	"github.com/stretchr/testify/require"
)

// newTestRouter mounts routes under /api and attaches the given caller to
// every request, standing in for the auth middleware.
func newTestRouter(userID int64, routes func(r chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", routes)

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if userID != 0 {
			req = req.WithContext(shared.WithIdentity(req.Context(), shared.Identity{
				UserID:        userID,
				Username:      "caller",
				Authenticated: true,
			}))
		}
		r.ServeHTTP(w, req)
	})
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body shared.ErrorResponse
	decodeBody(t, rec, &body)
	return body.Error
}

func int64Ptr(v int64) *int64 { return &v }
