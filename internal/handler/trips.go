package handler

import (
	"errors"
	"net/http"

	"github.com/stylecast/wardrobe/internal/ctxkeys"
	"github.com/stylecast/wardrobe/internal/repository"
	"github.com/stylecast/wardrobe/internal/service"
)

type TripsHandler struct {
	errorWriter
	tripsService *service.TripsService
}

func NewTripsHandler(tripsService *service.TripsService, debug bool) *TripsHandler {
	return &TripsHandler{
		errorWriter:  errorWriter{debug: debug},
		tripsService: tripsService,
	}
}

// Latest returns the user's most recent trip.
func (h *TripsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	trip, err := h.tripsService.MostRecent(r.Context(), ctxkeys.UserID(r.Context()))
	if errors.Is(err, repository.ErrTripNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:   "No trip found",
			Type:    typeNotFound,
			Message: "You don't have any trips yet.",
		})
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (h *TripsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.tripsService.Delete(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("tripId")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Trip deleted successfully"})
}
