package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// dynamoAPI is the subset of *dynamodb.Client the store uses.
type dynamoAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// DynamoStore implements Store on Amazon DynamoDB or any compatible endpoint.
type DynamoStore struct {
	client dynamoAPI
	tables map[string]Table
}

// DynamoConfig holds configuration for the DynamoDB store
type DynamoConfig struct {
	Region       string
	AccessKey    string
	SecretKey    string
	Endpoint     string // Optional: DynamoDB Local, LocalStack, etc.
	CreateTables bool   // create missing tables on startup
}

// NewDynamoStore creates a DynamoDB-backed store for the given tables
func NewDynamoStore(ctx context.Context, cfg DynamoConfig, tables ...Table) (*DynamoStore, error) {
	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(cfg.Region))

	// Add static credentials if provided
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *dynamodb.Client
	if cfg.Endpoint != "" {
		client = dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	} else {
		client = dynamodb.NewFromConfig(awsCfg)
	}

	store := newDynamoStore(client, tables...)

	if cfg.CreateTables {
		if err := store.ensureTables(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure tables exist: %w", err)
		}
	}

	return store, nil
}

func newDynamoStore(client dynamoAPI, tables ...Table) *DynamoStore {
	return &DynamoStore{client: client, tables: tableIndex(tables)}
}

// ensureTables creates every missing table with on-demand billing and waits until it is active
func (s *DynamoStore) ensureTables(ctx context.Context) error {
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := s.tables[name]
		_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(t.Name)})
		if err == nil {
			continue
		}
		if !isAPIError(err, "ResourceNotFoundException") {
			return fmt.Errorf("describe table %q: %w", t.Name, err)
		}

		attrs := []types.AttributeDefinition{{
			AttributeName: aws.String(t.PartitionKey),
			AttributeType: types.ScalarAttributeTypeS,
		}}
		schema := []types.KeySchemaElement{{
			AttributeName: aws.String(t.PartitionKey),
			KeyType:       types.KeyTypeHash,
		}}
		if t.SortKey != "" {
			attrs = append(attrs, types.AttributeDefinition{
				AttributeName: aws.String(t.SortKey),
				AttributeType: types.ScalarAttributeTypeS,
			})
			schema = append(schema, types.KeySchemaElement{
				AttributeName: aws.String(t.SortKey),
				KeyType:       types.KeyTypeRange,
			})
		}

		_, err = s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
			TableName:            aws.String(t.Name),
			AttributeDefinitions: attrs,
			KeySchema:            schema,
			BillingMode:          types.BillingModePayPerRequest,
		})
		if err != nil {
			return fmt.Errorf("table %q does not exist and could not be created: %w", t.Name, err)
		}

		waiter := dynamodb.NewTableExistsWaiter(s.client)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(t.Name)}, 2*time.Minute); err != nil {
			return fmt.Errorf("wait for table %q: %w", t.Name, err)
		}

		slog.Info("created DynamoDB table", "table", t.Name)
	}
	return nil
}

func (s *DynamoStore) Put(ctx context.Context, table string, item any) error {
	return s.put(ctx, "put", table, item, false)
}

func (s *DynamoStore) Create(ctx context.Context, table string, item any) error {
	return s.put(ctx, "create", table, item, true)
}

func (s *DynamoStore) put(ctx context.Context, op, table string, item any, ifAbsent bool) error {
	t, err := s.table(table)
	if err != nil {
		return &Error{Op: op, Table: table, Err: err}
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return &Error{Op: op, Table: table, Err: fmt.Errorf("marshal item: %w", err)}
	}

	in := &dynamodb.PutItemInput{
		TableName: aws.String(t.Name),
		Item:      av,
	}
	if ifAbsent {
		expr, err := expression.NewBuilder().
			WithCondition(expression.AttributeNotExists(expression.Name(t.PartitionKey))).
			Build()
		if err != nil {
			return &Error{Op: op, Table: table, Err: fmt.Errorf("build condition: %w", err)}
		}
		in.ConditionExpression = expr.Condition()
		in.ExpressionAttributeNames = expr.Names()
	}

	if _, err := s.client.PutItem(ctx, in); err != nil {
		return &Error{Op: op, Table: table, Err: translate(err)}
	}
	return nil
}

func (s *DynamoStore) Get(ctx context.Context, table string, key Key, out any) (bool, error) {
	t, err := s.table(table)
	if err != nil {
		return false, &Error{Op: "get", Table: table, Err: err}
	}

	k, err := attributevalue.MarshalMap(map[string]any(key))
	if err != nil {
		return false, &Error{Op: "get", Table: table, Err: fmt.Errorf("marshal key: %w", err)}
	}

	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(t.Name),
		Key:            k,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, &Error{Op: "get", Table: table, Err: translate(err)}
	}
	if len(resp.Item) == 0 {
		return false, nil
	}

	if err := attributevalue.UnmarshalMap(resp.Item, out); err != nil {
		return false, &Error{Op: "get", Table: table, Err: fmt.Errorf("unmarshal item: %w", err)}
	}
	return true, nil
}

func (s *DynamoStore) Update(ctx context.Context, table string, key Key, u Update) error {
	t, err := s.table(table)
	if err != nil {
		return &Error{Op: "update", Table: table, Err: err}
	}

	k, err := attributevalue.MarshalMap(map[string]any(key))
	if err != nil {
		return &Error{Op: "update", Table: table, Err: fmt.Errorf("marshal key: %w", err)}
	}

	expr, err := buildUpdate(t, u)
	if err != nil {
		return &Error{Op: "update", Table: table, Err: err}
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.Name),
		Key:                       k,
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return &Error{Op: "update", Table: table, Err: translate(err)}
	}
	return nil
}

// buildUpdate turns an Update into SET/ADD clauses plus an optional condition.
// Attributes are visited in sorted order so the expression is deterministic.
func buildUpdate(t Table, u Update) (expression.Expression, error) {
	if len(u.Set) == 0 && len(u.Add) == 0 {
		return expression.Expression{}, errors.New("update has no changes")
	}

	var upd expression.UpdateBuilder
	for _, name := range sortedKeys(u.Set) {
		upd = upd.Set(expression.Name(name), expression.Value(u.Set[name]))
	}
	for _, name := range sortedKeys(u.Add) {
		upd = upd.Add(expression.Name(name), expression.Value(u.Add[name]))
	}

	var conds []expression.ConditionBuilder
	if u.MustExist {
		conds = append(conds, expression.AttributeExists(expression.Name(t.PartitionKey)))
	}
	for _, name := range sortedKeys(u.Below) {
		conds = append(conds, expression.Name(name).LessThan(expression.Value(u.Below[name])))
	}

	b := expression.NewBuilder().WithUpdate(upd)
	switch len(conds) {
	case 0:
	case 1:
		b = b.WithCondition(conds[0])
	default:
		b = b.WithCondition(expression.And(conds[0], conds[1], conds[2:]...))
	}

	expr, err := b.Build()
	if err != nil {
		return expression.Expression{}, fmt.Errorf("build update expression: %w", err)
	}
	return expr, nil
}

func (s *DynamoStore) Delete(ctx context.Context, table string, key Key) error {
	t, err := s.table(table)
	if err != nil {
		return &Error{Op: "delete", Table: table, Err: err}
	}

	k, err := attributevalue.MarshalMap(map[string]any(key))
	if err != nil {
		return &Error{Op: "delete", Table: table, Err: fmt.Errorf("marshal key: %w", err)}
	}

	_, err = s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(t.Name),
		Key:       k,
	})
	if err != nil {
		return &Error{Op: "delete", Table: table, Err: translate(err)}
	}
	return nil
}

func (s *DynamoStore) Query(ctx context.Context, table string, q Query, out any) error {
	t, err := s.table(table)
	if err != nil {
		return &Error{Op: "query", Table: table, Err: err}
	}

	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key(t.PartitionKey).Equal(expression.Value(q.Value))).
		Build()
	if err != nil {
		return &Error{Op: "query", Table: table, Err: fmt.Errorf("build key condition: %w", err)}
	}

	in := &dynamodb.QueryInput{
		TableName:                 aws.String(t.Name),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(!q.Descending),
	}
	if q.Limit > 0 {
		in.Limit = aws.Int32(q.Limit)
	}

	var items []map[string]types.AttributeValue
	for {
		resp, err := s.client.Query(ctx, in)
		if err != nil {
			return &Error{Op: "query", Table: table, Err: translate(err)}
		}
		items = append(items, resp.Items...)

		if len(resp.LastEvaluatedKey) == 0 {
			break
		}
		if q.Limit > 0 && int32(len(items)) >= q.Limit {
			break
		}
		in.ExclusiveStartKey = resp.LastEvaluatedKey
	}

	if q.Limit > 0 && int32(len(items)) > q.Limit {
		items = items[:q.Limit]
	}

	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return &Error{Op: "query", Table: table, Err: fmt.Errorf("unmarshal items: %w", err)}
	}
	return nil
}

func (s *DynamoStore) table(name string) (Table, error) {
	t, ok := s.tables[name]
	if !ok {
		return Table{}, ErrUnknownTable
	}
	return t, nil
}

// translate maps a failed DynamoDB condition onto ErrConditionFailed, keeping the cause.
func translate(err error) error {
	if isAPIError(err, "ConditionalCheckFailedException") {
		return fmt.Errorf("%w: %w", ErrConditionFailed, err)
	}
	return err
}

func isAPIError(err error, code string) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == code
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
