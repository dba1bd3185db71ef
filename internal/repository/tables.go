package repository

import (
	"github.com/stylecast/wardrobe/internal/config"
	"github.com/stylecast/wardrobe/internal/storage"
)

// Tables holds the environment-scoped schema of every table the API uses.
type Tables struct {
	Users        storage.Table
	Wardrobe     storage.Table
	Trips        storage.Table
	Interactions storage.Table
	RateLimits   storage.Table
}

func NewTables(cfg *config.Config) Tables {
	return Tables{
		Users:        storage.Table{Name: cfg.TableName("users"), PartitionKey: "userId"},
		Wardrobe:     storage.Table{Name: cfg.TableName("wardrobe-items"), PartitionKey: "userId", SortKey: "itemId"},
		Trips:        storage.Table{Name: cfg.TableName("trips"), PartitionKey: "userId", SortKey: "tripId"},
		Interactions: storage.Table{Name: cfg.TableName("interactions"), PartitionKey: "userId", SortKey: "interactionId"},
		RateLimits:   storage.Table{Name: cfg.TableName("rate-limits"), PartitionKey: "userId", SortKey: "date"},
	}
}

func (t Tables) All() []storage.Table {
	return []storage.Table{t.Users, t.Wardrobe, t.Trips, t.Interactions, t.RateLimits}
}
