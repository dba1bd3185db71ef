package model

import (
	"time"
)

// idLayout keeps a fixed fraction width so ids sort lexicographically in time order.
const idLayout = "2006-01-02T15:04:05.000000Z"

const (
	PrefixItem     = "item"
	PrefixTrip     = "trip"
	PrefixOutfit   = "rec"
	PrefixPurchase = "buy"
)

// NewID builds a time-prefixed id such as "trip_2025-01-02T15:04:05.123456Z".
// Two writes in the same microsecond get the same id.
func NewID(prefix string, t time.Time) string {
	return prefix + "_" + t.UTC().Format(idLayout)
}
