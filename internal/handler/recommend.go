package handler

import (
	"net/http"
	"strings"

	"github.com/stylecast/wardrobe/internal/ctxkeys"
	"github.com/stylecast/wardrobe/internal/logger"
	"github.com/stylecast/wardrobe/internal/model"
	"github.com/stylecast/wardrobe/internal/service"
	"github.com/stylecast/wardrobe/internal/validation"
)

type RecommendHandler struct {
	errorWriter
	recommendations *service.RecommendationsService
	interactions    *service.InteractionsService
	trips           *service.TripsService
	text            *service.TextTransformationsService
}

func NewRecommendHandler(
	recommendations *service.RecommendationsService,
	interactions *service.InteractionsService,
	trips *service.TripsService,
	text *service.TextTransformationsService,
	debug bool,
) *RecommendHandler {
	return &RecommendHandler{
		errorWriter:     errorWriter{debug: debug},
		recommendations: recommendations,
		interactions:    interactions,
		trips:           trips,
		text:            text,
	}
}

type situationRequest struct {
	Situation *string `json:"situation"`
}

type outfitResponse struct {
	Outfit        map[string]any `json:"outfit"`
	InteractionID string         `json:"interaction_id"`
}

type purchaseResponse struct {
	ItemToBuy     map[string]any `json:"item_to_buy"`
	InteractionID string         `json:"interaction_id"`
}

type packResponse struct {
	TripID      string            `json:"trip_id"`
	Description string            `json:"description"`
	PackingList model.PackingList `json:"packing_list"`
}

// situation reads and validates the request's situation. It writes the 400
// response itself and returns ok=false when the request is unusable.
func (h *RecommendHandler) situation(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req situationRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Situation == nil || strings.TrimSpace(*req.Situation) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing situation in request"})
		return "", false
	}

	situation, err := validation.ValidateSituation(*req.Situation)
	if err != nil {
		h.writeError(w, r, err)
		return "", false
	}
	return situation, true
}

func (h *RecommendHandler) Wear(w http.ResponseWriter, r *http.Request) {
	situation, ok := h.situation(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	userID := ctxkeys.UserID(ctx)

	outfit, err := h.recommendations.Outfit(ctx, userID, situation)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	interactionID, err := h.interactions.SaveRecommendation(ctx, userID, situation, outfit, "")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, outfitResponse{Outfit: outfit, InteractionID: interactionID})
}

// WearForTrip recommends an outfit from the items packed for a trip.
func (h *RecommendHandler) WearForTrip(w http.ResponseWriter, r *http.Request) {
	situation, ok := h.situation(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	userID := ctxkeys.UserID(ctx)
	tripID := r.PathValue("tripId")

	trip, err := h.trips.ByID(ctx, userID, tripID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	outfit, err := h.recommendations.OutfitForTrip(ctx, userID, trip, situation)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	interactionID, err := h.interactions.SaveRecommendation(ctx, userID, situation, outfit, trip.TripID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, outfitResponse{Outfit: outfit, InteractionID: interactionID})
}

func (h *RecommendHandler) Buy(w http.ResponseWriter, r *http.Request) {
	situation, ok := h.situation(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	userID := ctxkeys.UserID(ctx)

	item, err := h.recommendations.Purchase(ctx, userID, situation)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	interactionID, err := h.interactions.SavePurchaseRecommendation(ctx, userID, situation, item)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, purchaseResponse{ItemToBuy: item, InteractionID: interactionID})
}

// Pack recommends a packing list, titles the trip and saves both the trip and
// a trip interaction.
func (h *RecommendHandler) Pack(w http.ResponseWriter, r *http.Request) {
	situation, ok := h.situation(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	userID := ctxkeys.UserID(ctx)

	packingList, err := h.recommendations.Packing(ctx, userID, situation)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	title, err := h.text.TripTitle(ctx, situation, userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if title == "" {
		logger.FromContext(ctx).Warn("trip title missing, using situation")
		title = situation
	}

	trip, err := h.trips.Save(ctx, userID, title, packingList)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err := h.interactions.SaveTrip(ctx, userID, title, packingList, trip.TripID); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, packResponse{
		TripID:      trip.TripID,
		Description: trip.Description,
		PackingList: trip.PackingList,
	})
}
