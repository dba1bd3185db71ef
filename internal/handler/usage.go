package handler

import (
	"net/http"

	"github.com/stylecast/wardrobe/internal/ctxkeys"
	"github.com/stylecast/wardrobe/internal/service"
)

type UsageHandler struct {
	errorWriter
	rateLimitService *service.RateLimitService
}

func NewUsageHandler(rateLimitService *service.RateLimitService, debug bool) *UsageHandler {
	return &UsageHandler{
		errorWriter:      errorWriter{debug: debug},
		rateLimitService: rateLimitService,
	}
}

// Usage reports today's recommendation quota for the caller.
func (h *UsageHandler) Usage(w http.ResponseWriter, r *http.Request) {
	usage, err := h.rateLimitService.Usage(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, usage)
}
