package handler

import (
	"net/http"

	"github.com/stylecast/wardrobe/internal/ctxkeys"
	"github.com/stylecast/wardrobe/internal/service"
	"github.com/stylecast/wardrobe/internal/validation"
)

type InteractionsHandler struct {
	errorWriter
	interactionsService *service.InteractionsService
}

func NewInteractionsHandler(interactionsService *service.InteractionsService, debug bool) *InteractionsHandler {
	return &InteractionsHandler{
		errorWriter:         errorWriter{debug: debug},
		interactionsService: interactionsService,
	}
}

type feedbackRequest struct {
	Feedback *int `json:"feedback"`
}

func (h *InteractionsHandler) List(w http.ResponseWriter, r *http.Request) {
	interactions, err := h.interactionsService.All(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if len(interactions) == 0 {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:   "No interactions found",
			Type:    typeNotFound,
			Message: "You don't have any interactions yet.",
		})
		return
	}
	writeJSON(w, http.StatusOK, interactions)
}

func (h *InteractionsHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	feedback, err := validation.ValidateFeedback(req.Feedback)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	err = h.interactionsService.UpdateFeedback(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"), feedback)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Feedback updated successfully"})
}

func (h *InteractionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.interactionsService.Delete(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Interaction deleted successfully"})
}
