package model

import (
	"time"
)

type WardrobeItem struct {
	UserID      string    `dynamodbav:"userId" json:"userId"`
	ItemID      string    `dynamodbav:"itemId" json:"itemId"`
	Description string    `dynamodbav:"description" json:"description"`
	CreatedAt   time.Time `dynamodbav:"createdAt" json:"createdAt"`
}
