package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stylecast/wardrobe/internal/logger"
	"github.com/stylecast/wardrobe/internal/repository"
	"github.com/stylecast/wardrobe/internal/service"
	"github.com/stylecast/wardrobe/internal/validation"
)

const maxBodyBytes = 1 << 20

const (
	typeInsufficientWardrobe = "insufficient_wardrobe"
	typeRateLimitExceeded    = "rate_limit_exceeded"
	typeNotFound             = "not_found"
)

type errorResponse struct {
	Error   string `json:"error"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// decodeJSON reads a JSON object body of at most maxBodyBytes into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// errorWriter maps service errors to JSON error responses. Unknown errors are
// logged and hidden behind a generic 500 unless debug is set.
type errorWriter struct {
	debug bool
}

func (e errorWriter) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *validation.Error
	var insufficient *service.InsufficientWardrobeError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Message})

	case errors.As(err, &insufficient):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   insufficient.Error(),
			Type:    typeInsufficientWardrobe,
			Message: "Please add more items to your wardrobe before requesting recommendations.",
		})

	case errors.Is(err, service.ErrRateLimitExceeded):
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Error:   "Daily rate limit exceeded",
			Type:    typeRateLimitExceeded,
			Message: "You have reached your daily recommendation limit. Please try again tomorrow.",
		})

	case errors.Is(err, repository.ErrTripNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Trip not found", Type: typeNotFound})

	case errors.Is(err, repository.ErrInteractionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Interaction not found", Type: typeNotFound})

	case errors.Is(err, repository.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "User not found", Type: typeNotFound})

	default:
		logger.FromContext(r.Context()).Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		message := "Internal server error"
		if e.debug {
			message = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: message})
	}
}
