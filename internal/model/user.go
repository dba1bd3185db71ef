package model

import (
	"time"
)

// User is created on the first successful OAuth callback and never deleted.
type User struct {
	ID        string    `dynamodbav:"userId" json:"userId"`
	Email     string    `dynamodbav:"email" json:"email"`
	Name      string    `dynamodbav:"name,omitempty" json:"name,omitempty"`
	CreatedAt time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// Identity is what the OAuth provider vouches for after a successful exchange.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// Claims are the verified contents of a session token.
type Claims struct {
	Subject   string
	Email     string
	Name      string
	ExpiresAt time.Time
}
