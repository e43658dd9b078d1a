package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasktrack-api/internal/api/shared"
	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/platform/logger"
)

// getUserIDFromContext returns the caller's id as resolved by the auth
// middleware. An unauthenticated request yields 0, which owns nothing.
func getUserIDFromContext(r *http.Request) int64 {
	return shared.IdentityFromContext(r.Context()).UserID
}

// parseID parses a positive int64 identifier.
func parseID(name, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.NewValidationError(name, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer", domain.ErrInvalidID)
	}
	return id, nil
}

// getPathID extracts a positive integer id from the chi URL parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	return parseID(paramName, chi.URLParam(r, paramName))
}

// handleUserIDAndPathID extracts the caller id and a path id, writing a 400
// response and returning ok=false when the path id is malformed.
func handleUserIDAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (int64, int64, bool) {
	if log == nil {
		log = logger.FromContext(r.Context())
	}

	pathID, err := getPathID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return 0, 0, false
	}

	return getUserIDFromContext(r), pathID, true
}

// decodeRequest decodes and validates the JSON body into v, writing a 400
// response and returning false on failure.
func decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		if errors.Is(err, domain.ErrInvalidTaskStatus) {
			HandleAPIError(w, r, err, "")
			return false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}
