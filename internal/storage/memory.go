package storage

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type memItem = map[string]types.AttributeValue

// MemoryStore implements Store in process memory with the same condition and
// ordering semantics as DynamoStore. Sort keys are compared as strings.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string]Table
	data   map[string]map[string]map[string]memItem // table -> partition -> sort -> item
}

func NewMemoryStore(tables ...Table) *MemoryStore {
	data := make(map[string]map[string]map[string]memItem, len(tables))
	for _, t := range tables {
		data[t.Name] = map[string]map[string]memItem{}
	}
	return &MemoryStore{tables: tableIndex(tables), data: data}
}

func (s *MemoryStore) Put(ctx context.Context, table string, item any) error {
	return s.put("put", table, item, false)
}

func (s *MemoryStore) Create(ctx context.Context, table string, item any) error {
	return s.put("create", table, item, true)
}

func (s *MemoryStore) put(op, table string, item any, ifAbsent bool) error {
	t, ok := s.tables[table]
	if !ok {
		return &Error{Op: op, Table: table, Err: ErrUnknownTable}
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return &Error{Op: op, Table: table, Err: fmt.Errorf("marshal item: %w", err)}
	}
	pk, sk, err := keyStrings(t, av)
	if err != nil {
		return &Error{Op: op, Table: table, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	part := s.data[table][pk]
	if part == nil {
		part = map[string]memItem{}
		s.data[table][pk] = part
	}
	if _, exists := part[sk]; exists && ifAbsent {
		return &Error{Op: op, Table: table, Err: ErrConditionFailed}
	}
	part[sk] = av
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, table string, key Key, out any) (bool, error) {
	t, ok := s.tables[table]
	if !ok {
		return false, &Error{Op: "get", Table: table, Err: ErrUnknownTable}
	}
	pk, sk, err := s.key(t, key)
	if err != nil {
		return false, &Error{Op: "get", Table: table, Err: err}
	}

	s.mu.Lock()
	item, found := s.data[table][pk][sk]
	s.mu.Unlock()
	if !found {
		return false, nil
	}

	if err := attributevalue.UnmarshalMap(item, out); err != nil {
		return false, &Error{Op: "get", Table: table, Err: fmt.Errorf("unmarshal item: %w", err)}
	}
	return true, nil
}

func (s *MemoryStore) Update(ctx context.Context, table string, key Key, u Update) error {
	t, ok := s.tables[table]
	if !ok {
		return &Error{Op: "update", Table: table, Err: ErrUnknownTable}
	}
	if len(u.Set) == 0 && len(u.Add) == 0 {
		return &Error{Op: "update", Table: table, Err: fmt.Errorf("update has no changes")}
	}
	keyAV, err := attributevalue.MarshalMap(map[string]any(key))
	if err != nil {
		return &Error{Op: "update", Table: table, Err: fmt.Errorf("marshal key: %w", err)}
	}
	pk, sk, err := keyStrings(t, keyAV)
	if err != nil {
		return &Error{Op: "update", Table: table, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.data[table][pk][sk]
	if u.MustExist && !exists {
		return &Error{Op: "update", Table: table, Err: ErrConditionFailed}
	}
	for name, bound := range u.Below {
		n, ok, err := number(current[name])
		if err != nil {
			return &Error{Op: "update", Table: table, Err: err}
		}
		if !ok || n >= int64(bound) {
			return &Error{Op: "update", Table: table, Err: ErrConditionFailed}
		}
	}

	next := make(memItem, len(current)+len(keyAV)+len(u.Set)+len(u.Add))
	maps.Copy(next, current)
	maps.Copy(next, keyAV)
	for name, value := range u.Set {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return &Error{Op: "update", Table: table, Err: fmt.Errorf("marshal %s: %w", name, err)}
		}
		next[name] = av
	}
	for name, delta := range u.Add {
		n, _, err := number(next[name])
		if err != nil {
			return &Error{Op: "update", Table: table, Err: err}
		}
		next[name] = &types.AttributeValueMemberN{Value: strconv.FormatInt(n+int64(delta), 10)}
	}

	part := s.data[table][pk]
	if part == nil {
		part = map[string]memItem{}
		s.data[table][pk] = part
	}
	part[sk] = next
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, table string, key Key) error {
	t, ok := s.tables[table]
	if !ok {
		return &Error{Op: "delete", Table: table, Err: ErrUnknownTable}
	}
	pk, sk, err := s.key(t, key)
	if err != nil {
		return &Error{Op: "delete", Table: table, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data[table][pk], sk)
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, table string, q Query, out any) error {
	if _, ok := s.tables[table]; !ok {
		return &Error{Op: "query", Table: table, Err: ErrUnknownTable}
	}
	pkAV, err := attributevalue.Marshal(q.Value)
	if err != nil {
		return &Error{Op: "query", Table: table, Err: fmt.Errorf("marshal key: %w", err)}
	}
	pk, err := scalarString(pkAV)
	if err != nil {
		return &Error{Op: "query", Table: table, Err: err}
	}

	s.mu.Lock()
	part := s.data[table][pk]
	sortKeys := make([]string, 0, len(part))
	for sk := range part {
		sortKeys = append(sortKeys, sk)
	}
	if q.Descending {
		sort.Sort(sort.Reverse(sort.StringSlice(sortKeys)))
	} else {
		sort.Strings(sortKeys)
	}
	if q.Limit > 0 && int(q.Limit) < len(sortKeys) {
		sortKeys = sortKeys[:q.Limit]
	}
	items := make([]memItem, 0, len(sortKeys))
	for _, sk := range sortKeys {
		items = append(items, part[sk])
	}
	s.mu.Unlock()

	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return &Error{Op: "query", Table: table, Err: fmt.Errorf("unmarshal items: %w", err)}
	}
	return nil
}

func (s *MemoryStore) key(t Table, key Key) (string, string, error) {
	av, err := attributevalue.MarshalMap(map[string]any(key))
	if err != nil {
		return "", "", fmt.Errorf("marshal key: %w", err)
	}
	return keyStrings(t, av)
}

func keyStrings(t Table, av memItem) (string, string, error) {
	var parts [2]string
	for i, name := range t.keyNames() {
		v, ok := av[name]
		if !ok {
			return "", "", fmt.Errorf("%w %q", ErrMissingKey, name)
		}
		str, err := scalarString(v)
		if err != nil {
			return "", "", fmt.Errorf("key %q: %w", name, err)
		}
		parts[i] = str
	}
	return parts[0], parts[1], nil
}

func scalarString(v types.AttributeValue) (string, error) {
	switch v := v.(type) {
	case *types.AttributeValueMemberS:
		return v.Value, nil
	case *types.AttributeValueMemberN:
		return v.Value, nil
	default:
		return "", fmt.Errorf("unsupported key type %T", v)
	}
}

// number reads a numeric attribute; ok is false when the attribute is absent.
func number(v types.AttributeValue) (int64, bool, error) {
	if v == nil {
		return 0, false, nil
	}
	n, isNum := v.(*types.AttributeValueMemberN)
	if !isNum {
		return 0, false, fmt.Errorf("attribute is %T, not a number", v)
	}
	i, err := strconv.ParseInt(n.Value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse number %q: %w", n.Value, err)
	}
	return i, true, nil
}
