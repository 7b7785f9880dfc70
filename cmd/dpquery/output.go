package main

import (
	"github.com/hupe1980/dataprovider/dateutil"
	"github.com/hupe1980/dataprovider/record"
)

func plainDocument(d record.Document) map[string]any {
	out := make(map[string]any, len(d))
	for k, v := range d {
		out[k] = plainValue(v)
	}
	return out
}

func plainValue(v record.Value) any {
	switch v.Kind {
	case record.KindString:
		s, _ := v.AsString()
		return s
	case record.KindInt:
		return v.I64
	case record.KindFloat:
		return v.F64
	case record.KindDecimal:
		d, _ := v.AsDecimal()
		return d.String()
	case record.KindDate:
		t, _ := v.AsTime()
		return dateutil.FormatDate(t)
	case record.KindDateTime:
		t, _ := v.AsTime()
		return dateutil.FormatDateTime(t)
	case record.KindBool:
		return v.B
	default:
		return nil
	}
}
