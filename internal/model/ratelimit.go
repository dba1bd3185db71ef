package model

import (
	"time"
)

// RateLimit counts a user's LLM calls for one UTC calendar day.
type RateLimit struct {
	UserID    string    `dynamodbav:"userId" json:"userId"`
	Date      string    `dynamodbav:"date" json:"date"`
	Count     int       `dynamodbav:"count" json:"count"`
	CreatedAt time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

type Usage struct {
	Date      string `json:"date"`
	Count     int    `json:"count"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
}
