// Package dynamo loads documents from a DynamoDB table scan.
//
// Scalar attributes map to record values: S to string, N to int or decimal,
// BOOL to bool and NULL to null. Sets, lists, maps and binary attributes are
// not filterable and are skipped.
package dynamo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/dataprovider/record"
	"github.com/shopspring/decimal"
)

// Client is the interface for DynamoDB operations.
type Client interface {
	dynamodb.ScanAPIClient
}

var _ Client = (*dynamodb.Client)(nil)

// Load scans table and converts every item to a document.
// optFns can narrow the scan, for example with a projection or filter expression.
func Load(ctx context.Context, client Client, table string, optFns ...func(*dynamodb.ScanInput)) ([]record.Document, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(table),
	}
	for _, fn := range optFns {
		fn(input)
	}

	var docs []record.Document

	paginator := dynamodb.NewScanPaginator(client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan %q: %w", table, err)
		}
		for _, item := range page.Items {
			doc, err := FromItem(item)
			if err != nil {
				return nil, fmt.Errorf("scan %q: %w", table, err)
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// FromItem converts a DynamoDB item to a document.
func FromItem(item map[string]types.AttributeValue) (record.Document, error) {
	doc := make(record.Document, len(item))
	for name, av := range item {
		v, ok, err := FromAttributeValue(av)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		if ok {
			doc[name] = v
		}
	}
	return doc, nil
}

// FromAttributeValue converts a scalar attribute. ok is false for
// attribute types that have no record kind.
func FromAttributeValue(av types.AttributeValue) (v record.Value, ok bool, err error) {
	switch x := av.(type) {
	case *types.AttributeValueMemberS:
		return record.String(x.Value), true, nil
	case *types.AttributeValueMemberN:
		if i, err := strconv.ParseInt(x.Value, 10, 64); err == nil {
			return record.Int(i), true, nil
		}
		d, err := decimal.NewFromString(x.Value)
		if err != nil {
			return record.Value{}, false, err
		}
		return record.Decimal(d), true, nil
	case *types.AttributeValueMemberBOOL:
		return record.Bool(x.Value), true, nil
	case *types.AttributeValueMemberNULL:
		return record.Null(), true, nil
	default:
		return record.Value{}, false, nil
	}
}
