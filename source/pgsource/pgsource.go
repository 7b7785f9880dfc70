// Package pgsource loads documents from PostgreSQL query results.
package pgsource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/dataprovider/record"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Querier is satisfied by *pgx.Conn, *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ErrUnsupportedNumeric is returned for NaN and infinite numeric values.
var ErrUnsupportedNumeric = errors.New("numeric value is not finite")

// Load runs sql and converts every row to a document keyed by column name.
func Load(ctx context.Context, q Querier, sql string, args ...any) ([]record.Document, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	docs, err := pgx.CollectRows(rows, RowToDocument)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// RowToDocument is a pgx.RowToFunc that converts the current row.
func RowToDocument(row pgx.CollectableRow) (record.Document, error) {
	values, err := row.Values()
	if err != nil {
		return nil, err
	}

	fields := row.FieldDescriptions()
	doc := make(record.Document, len(fields))
	for i, fd := range fields {
		v, err := FromValue(values[i], fd.DataTypeOID)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", fd.Name, err)
		}
		doc[fd.Name] = v
	}
	return doc, nil
}

// FromValue converts a decoded pgx value of the given type OID.
func FromValue(v any, oid uint32) (record.Value, error) {
	switch x := v.(type) {
	case nil:
		return record.Null(), nil
	case time.Time:
		if oid == pgtype.DateOID {
			return record.DateOf(x), nil
		}
		return record.DateTime(x), nil
	case pgtype.Numeric:
		return fromNumeric(x)
	case [16]byte:
		return record.String(uuid.UUID(x).String()), nil
	default:
		return record.FromAny(v)
	}
}

func fromNumeric(n pgtype.Numeric) (record.Value, error) {
	if !n.Valid {
		return record.Null(), nil
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return record.Value{}, ErrUnsupportedNumeric
	}
	return record.Decimal(decimal.NewFromBigInt(n.Int, n.Exp)), nil
}
