// Package sqlsource loads documents through any database/sql driver.
//
// Column values are mapped by the declared database type: DATE columns become
// dates, DATETIME and TIMESTAMP columns date-times and DECIMAL or NUMERIC
// columns decimals. Everything else goes through record.FromAny.
package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/dataprovider/dateutil"
	"github.com/hupe1980/dataprovider/record"
	"github.com/shopspring/decimal"
)

// Queryer is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Load runs query and converts every row to a document keyed by column name.
func Load(ctx context.Context, db Queryer, query string, args ...any) ([]record.Document, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	var docs []record.Document
	for rows.Next() {
		raw := make([]any, len(cols))
		dest := make([]any, len(cols))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		doc := make(record.Document, len(cols))
		for i, col := range cols {
			v, err := FromColumn(raw[i], col.DatabaseTypeName())
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", col.Name(), err)
			}
			doc[col.Name()] = v
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// FromColumn converts a scanned value of a column with the given declared type.
func FromColumn(v any, dbType string) (record.Value, error) {
	if v == nil {
		return record.Null(), nil
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}

	if i := strings.IndexByte(dbType, '('); i > -1 {
		dbType = dbType[:i]
	}

	switch strings.ToUpper(strings.TrimSpace(dbType)) {
	case "DATE":
		switch x := v.(type) {
		case time.Time:
			return record.DateOf(x), nil
		case string:
			t, err := dateutil.ParseDate(x)
			if err != nil {
				return record.Value{}, err
			}
			return record.DateOf(t), nil
		}
	case "DATETIME", "TIMESTAMP":
		if s, ok := v.(string); ok {
			t, err := dateutil.ParseDateTime(s)
			if err != nil {
				return record.Value{}, err
			}
			return record.DateTime(t), nil
		}
	case "DECIMAL", "NUMERIC":
		switch x := v.(type) {
		case string:
			d, err := decimal.NewFromString(x)
			if err != nil {
				return record.Value{}, err
			}
			return record.Decimal(d), nil
		case float64:
			return record.Decimal(decimal.NewFromFloat(x)), nil
		case int64:
			return record.Decimal(decimal.NewFromInt(x)), nil
		}
	}
	return record.FromAny(v)
}
