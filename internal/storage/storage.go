package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cfg "github.com/stylecast/wardrobe/internal/config"
)

var (
	// ErrConditionFailed reports a conditional write whose condition did not hold:
	// Create on an existing key, Update.MustExist on a missing item, or an Update.Below bound reached.
	ErrConditionFailed = errors.New("condition check failed")
	ErrUnknownTable    = errors.New("unknown table")
	ErrMissingKey      = errors.New("item is missing key attribute")
)

// Error wraps every failure coming out of a Store.
type Error struct {
	Op    string
	Table string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Table describes a key-value table. SortKey is empty for partition-only tables.
type Table struct {
	Name         string
	PartitionKey string
	SortKey      string
}

// Key holds the partition (and sort) key attribute values of one item.
type Key map[string]any

// Update describes a single atomic item update.
type Update struct {
	Set   map[string]any // attributes to assign
	Add   map[string]int // atomic numeric deltas, missing attributes count as 0
	Below map[string]int // condition: attribute exists and is strictly below the bound
	// MustExist makes the update fail with ErrConditionFailed instead of creating the item.
	MustExist bool
}

// Query selects all items of one partition, ordered by sort key.
type Query struct {
	Value      any
	Descending bool
	Limit      int32
}

// Store is the key-value client every repository goes through.
// Items are structs tagged with `dynamodbav` or plain maps.
type Store interface {
	Put(ctx context.Context, table string, item any) error
	// Create writes item only if no item with the same key exists.
	Create(ctx context.Context, table string, item any) error
	// Get decodes the item into out and reports whether it was found.
	Get(ctx context.Context, table string, key Key, out any) (bool, error)
	Update(ctx context.Context, table string, key Key, u Update) error
	// Delete succeeds when the item is already gone.
	Delete(ctx context.Context, table string, key Key) error
	// Query decodes the matching items into out, which must point to a slice.
	Query(ctx context.Context, table string, q Query, out any) error
}

// New creates the store selected by STORE_DRIVER.
// DynamoDB works with AWS or DynamoDB Local (DYNAMODB_ENDPOINT); memory is for local development and tests.
func New(ctx context.Context, c *cfg.Config, tables ...Table) (Store, error) {
	switch c.StoreDriver {
	case cfg.StoreDriverMemory:
		slog.Info("initializing memory store", "tables", len(tables))
		return NewMemoryStore(tables...), nil
	case cfg.StoreDriverDynamoDB, "":
		slog.Info("initializing DynamoDB store",
			"region", c.AWSRegion,
			"endpoint", c.DynamoDBEndpoint,
			"create_tables", c.DynamoDBCreateTables,
		)
		return NewDynamoStore(ctx, DynamoConfig{
			Region:       c.AWSRegion,
			AccessKey:    c.AWSAccessKeyID,
			SecretKey:    c.AWSSecretAccessKey,
			Endpoint:     c.DynamoDBEndpoint,
			CreateTables: c.DynamoDBCreateTables,
		}, tables...)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", c.StoreDriver)
	}
}

func tableIndex(tables []Table) map[string]Table {
	idx := make(map[string]Table, len(tables))
	for _, t := range tables {
		idx[t.Name] = t
	}
	return idx
}

func (t Table) keyNames() []string {
	if t.SortKey == "" {
		return []string{t.PartitionKey}
	}
	return []string{t.PartitionKey, t.SortKey}
}
