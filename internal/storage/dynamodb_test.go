package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo records inputs and returns canned outputs.
type fakeDynamo struct {
	putIn    *dynamodb.PutItemInput
	updateIn *dynamodb.UpdateItemInput
	queryIns []*dynamodb.QueryInput
	err      error

	getOut    *dynamodb.GetItemOutput
	queryOuts []*dynamodb.QueryOutput
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putIn = in
	return &dynamodb.PutItemOutput{}, f.err
}

func (f *fakeDynamo) GetItem(_ context.Context, _ *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.getOut, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updateIn = in
	return &dynamodb.UpdateItemOutput{}, f.err
}

func (f *fakeDynamo) DeleteItem(_ context.Context, _ *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	return &dynamodb.DeleteItemOutput{}, f.err
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	cp := *in
	f.queryIns = append(f.queryIns, &cp)
	out := f.queryOuts[0]
	f.queryOuts = f.queryOuts[1:]
	return out, nil
}

func (f *fakeDynamo) DescribeTable(_ context.Context, _ *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return &dynamodb.DescribeTableOutput{}, nil
}

func (f *fakeDynamo) CreateTable(_ context.Context, _ *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	return &dynamodb.CreateTableOutput{}, nil
}

func TestDynamoStore_Create(t *testing.T) {
	fake := &fakeDynamo{}
	s := newDynamoStore(fake, notesTable)

	require.NoError(t, s.Create(context.Background(), notesTable.Name, note{UserID: "u1", NoteID: "n1"}))

	require.NotNil(t, fake.putIn.ConditionExpression)
	assert.Contains(t, *fake.putIn.ConditionExpression, "attribute_not_exists")
	assert.Contains(t, fake.putIn.ExpressionAttributeNames, "#0")
	assert.Equal(t, "userId", fake.putIn.ExpressionAttributeNames["#0"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "n1"}, fake.putIn.Item["noteId"])
}

func TestDynamoStore_ConditionFailure(t *testing.T) {
	fake := &fakeDynamo{err: &types.ConditionalCheckFailedException{Message: aws.String("nope")}}
	s := newDynamoStore(fake, countersTable)

	err := s.Update(context.Background(), countersTable.Name, Key{"userId": "u1", "date": "2025-01-01"}, Update{
		Add:   map[string]int{"count": 1},
		Below: map[string]int{"count": 10},
	})

	assert.ErrorIs(t, err, ErrConditionFailed)
	var ccf *types.ConditionalCheckFailedException
	assert.True(t, errors.As(err, &ccf))
	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "update", storeErr.Op)
}

func TestBuildUpdate(t *testing.T) {
	t.Run("Add with bound produces ADD and a condition", func(t *testing.T) {
		expr, err := buildUpdate(countersTable, Update{
			Add:   map[string]int{"count": 1},
			Below: map[string]int{"count": 10},
		})
		require.NoError(t, err)

		require.NotNil(t, expr.Update())
		assert.Contains(t, *expr.Update(), "ADD")
		require.NotNil(t, expr.Condition())
		assert.Contains(t, *expr.Condition(), "<")
		assert.Contains(t, expr.Values(), ":0")
		assert.Contains(t, expr.Values(), ":1")
	})

	t.Run("MustExist adds attribute_exists on the partition key", func(t *testing.T) {
		expr, err := buildUpdate(notesTable, Update{
			Set:       map[string]any{"feedback": 1},
			MustExist: true,
		})
		require.NoError(t, err)

		require.NotNil(t, expr.Condition())
		assert.Contains(t, *expr.Condition(), "attribute_exists")
		assert.Contains(t, *expr.Update(), "SET")
	})

	t.Run("No changes is an error", func(t *testing.T) {
		_, err := buildUpdate(notesTable, Update{MustExist: true})
		assert.Error(t, err)
	})
}

func TestDynamoStore_Get(t *testing.T) {
	t.Run("Empty item is not found", func(t *testing.T) {
		s := newDynamoStore(&fakeDynamo{getOut: &dynamodb.GetItemOutput{}}, notesTable)
		var got note
		found, err := s.Get(context.Background(), notesTable.Name, Key{"userId": "u1", "noteId": "n1"}, &got)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Backend failure is a store error", func(t *testing.T) {
		s := newDynamoStore(&fakeDynamo{err: errors.New("connection refused")}, notesTable)
		var got note
		_, err := s.Get(context.Background(), notesTable.Name, Key{"userId": "u1", "noteId": "n1"}, &got)
		var storeErr *Error
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, notesTable.Name, storeErr.Table)
	})
}

func TestDynamoStore_QueryPaginates(t *testing.T) {
	page := func(ids ...string) []map[string]types.AttributeValue {
		var items []map[string]types.AttributeValue
		for _, id := range ids {
			items = append(items, map[string]types.AttributeValue{
				"userId": &types.AttributeValueMemberS{Value: "u1"},
				"noteId": &types.AttributeValueMemberS{Value: id},
			})
		}
		return items
	}
	fake := &fakeDynamo{queryOuts: []*dynamodb.QueryOutput{
		{Items: page("n3", "n2"), LastEvaluatedKey: map[string]types.AttributeValue{"noteId": &types.AttributeValueMemberS{Value: "n2"}}},
		{Items: page("n1")},
	}}
	s := newDynamoStore(fake, notesTable)

	var notes []note
	require.NoError(t, s.Query(context.Background(), notesTable.Name, Query{Value: "u1", Descending: true}, &notes))

	assert.Equal(t, []string{"n3", "n2", "n1"}, noteIDs(notes))
	require.Len(t, fake.queryIns, 2)
	assert.False(t, *fake.queryIns[0].ScanIndexForward)
	assert.NotNil(t, fake.queryIns[1].ExclusiveStartKey)
}
