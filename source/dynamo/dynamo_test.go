package dynamo

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/dataprovider/record"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDDBClient serves pre-built scan pages keyed by the start key id.
type mockDDBClient struct {
	pages  []*dynamodb.ScanOutput
	inputs []*dynamodb.ScanInput
	err    error
}

func (m *mockDDBClient) Scan(_ context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	m.inputs = append(m.inputs, params)
	if m.err != nil {
		return nil, m.err
	}
	idx := 0
	if params.ExclusiveStartKey != nil {
		var n int
		for i, p := range m.pages {
			if p.LastEvaluatedKey != nil && p.LastEvaluatedKey["id"].(*types.AttributeValueMemberS).Value ==
				params.ExclusiveStartKey["id"].(*types.AttributeValueMemberS).Value {
				n = i + 1
			}
		}
		idx = n
	}
	return m.pages[idx], nil
}

func item(id, name string, age string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id":   &types.AttributeValueMemberS{Value: id},
		"name": &types.AttributeValueMemberS{Value: name},
		"age":  &types.AttributeValueMemberN{Value: age},
	}
}

func TestLoad_Paginates(t *testing.T) {
	client := &mockDDBClient{
		pages: []*dynamodb.ScanOutput{
			{
				Items:            []map[string]types.AttributeValue{item("1", "Ana", "30"), item("2", "Ben", "25")},
				LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "2"}},
			},
			{
				Items: []map[string]types.AttributeValue{item("3", "Andrea", "41")},
			},
		},
	}

	docs, err := Load(context.Background(), client, "people", func(in *dynamodb.ScanInput) {
		in.ProjectionExpression = aws.String("id, #n, age")
	})
	require.NoError(t, err)
	require.Len(t, docs, 3)

	name, _ := docs[2]["name"].AsString()
	assert.Equal(t, "Andrea", name)

	require.Len(t, client.inputs, 2)
	assert.Equal(t, "people", *client.inputs[0].TableName)
	assert.Equal(t, "id, #n, age", *client.inputs[0].ProjectionExpression)
	assert.NotNil(t, client.inputs[1].ExclusiveStartKey)
}

func TestLoad_Error(t *testing.T) {
	client := &mockDDBClient{err: errors.New("throttled")}

	_, err := Load(context.Background(), client, "people")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "people")
}

func TestFromAttributeValue(t *testing.T) {
	tests := []struct {
		name   string
		av     types.AttributeValue
		want   record.Value
		wantOK bool
	}{
		{name: "string", av: &types.AttributeValueMemberS{Value: "Ana"}, want: record.String("Ana"), wantOK: true},
		{name: "integer", av: &types.AttributeValueMemberN{Value: "42"}, want: record.Int(42), wantOK: true},
		{name: "decimal", av: &types.AttributeValueMemberN{Value: "1.25"}, want: record.Decimal(decimal.RequireFromString("1.25")), wantOK: true},
		{name: "bool", av: &types.AttributeValueMemberBOOL{Value: true}, want: record.Bool(true), wantOK: true},
		{name: "null", av: &types.AttributeValueMemberNULL{Value: true}, want: record.Null(), wantOK: true},
		{name: "list skipped", av: &types.AttributeValueMemberL{}, wantOK: false},
		{name: "binary skipped", av: &types.AttributeValueMemberB{Value: []byte("x")}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := FromAttributeValue(tt.av)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want.Key(), got.Key())
			}
		})
	}
}

func TestFromItem_BadNumber(t *testing.T) {
	_, err := FromItem(map[string]types.AttributeValue{
		"age": &types.AttributeValueMemberN{Value: "forty"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"age"`)
}
