package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tasktrack-api/internal/api/shared"
	"github.com/phrazzld/tasktrack-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()

	var traceID string
	var hasLogger bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		hasLogger = logger.FromContextOrDefault(r.Context(), nil) != nil
		shared.RespondWithError(w, r, http.StatusNotFound, "nope")
	})

	rec := httptest.NewRecorder()
	TraceMiddleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	require.NotEmpty(t, traceID)
	assert.True(t, hasLogger)
	assert.Equal(t, traceID, rec.Header().Get(shared.TraceIDHeader))
	assert.Contains(t, rec.Body.String(), traceID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
