package model

import (
	"time"
)

// PackingList maps a category (tops, bottoms, shoes, outerwear, accessories) to item names.
type PackingList map[string]any

type Trip struct {
	UserID      string      `dynamodbav:"userId" json:"userId"`
	TripID      string      `dynamodbav:"tripId" json:"tripId"`
	Description string      `dynamodbav:"description" json:"description"`
	PackingList PackingList `dynamodbav:"packingList" json:"packingList"`
	CreatedAt   time.Time   `dynamodbav:"createdAt" json:"createdAt"`
}
