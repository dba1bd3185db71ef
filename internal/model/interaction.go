package model

import (
	"time"
)

const (
	InteractionOutfit   = "outfit_recommendation"
	InteractionPurchase = "purchase_recommendation"
	InteractionTrip     = "trip"
)

const (
	FeedbackNegative = 0
	FeedbackPositive = 1
)

type Interaction struct {
	UserID         string         `dynamodbav:"userId" json:"userId"`
	InteractionID  string         `dynamodbav:"interactionId" json:"interactionId"`
	Type           string         `dynamodbav:"type" json:"type"`
	Situation      string         `dynamodbav:"situation,omitempty" json:"situation,omitempty"`
	Description    string         `dynamodbav:"description,omitempty" json:"description,omitempty"`
	Recommendation map[string]any `dynamodbav:"recommendation" json:"recommendation"`
	TripID         string         `dynamodbav:"tripId,omitempty" json:"tripId,omitempty"`
	Feedback       *int           `dynamodbav:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt      time.Time      `dynamodbav:"createdAt" json:"createdAt"`
}
