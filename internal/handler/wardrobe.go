package handler

import (
	"net/http"
	"strings"

	"github.com/stylecast/wardrobe/internal/ctxkeys"
	"github.com/stylecast/wardrobe/internal/model"
	"github.com/stylecast/wardrobe/internal/service"
	"github.com/stylecast/wardrobe/internal/validation"
)

type WardrobeHandler struct {
	errorWriter
	wardrobeService *service.WardrobeService
}

func NewWardrobeHandler(wardrobeService *service.WardrobeService, debug bool) *WardrobeHandler {
	return &WardrobeHandler{
		errorWriter:     errorWriter{debug: debug},
		wardrobeService: wardrobeService,
	}
}

type addItemRequest struct {
	Description *string `json:"description"`
}

type addItemResponse struct {
	ItemID      string `json:"itemId"`
	Description string `json:"description"`
}

type itemsResponse struct {
	Items []*model.WardrobeItem `json:"items"`
}

func (h *WardrobeHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Description == nil || strings.TrimSpace(*req.Description) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing description"})
		return
	}

	description, err := validation.ValidateDescription(*req.Description)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	item, err := h.wardrobeService.Add(r.Context(), ctxkeys.UserID(r.Context()), description)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, addItemResponse{ItemID: item.ItemID, Description: item.Description})
}

func (h *WardrobeHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.wardrobeService.List(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []*model.WardrobeItem{}
	}
	writeJSON(w, http.StatusOK, itemsResponse{Items: items})
}

func (h *WardrobeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.wardrobeService.Delete(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("itemId")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Item deleted successfully"})
}
