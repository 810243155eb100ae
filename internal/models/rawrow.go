package models

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
)

// Value is a scalar cell of an export row.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
}

func Null() Value              { return Value{Kind: KindNull} }
func String(s string) Value    { return Value{Kind: KindString, Str: s} }
func Number(f float64) Value   { return Value{Kind: KindNumber, Num: f} }
func (v Value) IsNull() bool   { return v.Kind == KindNull }
func (v Value) IsNumber() bool { return v.Kind == KindNumber }
func (v Value) IsString() bool { return v.Kind == KindString }

// Text returns the trimmed textual form of the value. Numbers are printed
// without trailing zeros. ok is false for null and blank values.
func (v Value) Text() (string, bool) {
	var s string
	switch v.Kind {
	case KindString:
		s = strings.TrimSpace(v.Str)
	case KindNumber:
		s = strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
	return s, s != ""
}

// ValueOf converts a parsed JSON element into a Value. Booleans and nested
// structures are kept as their raw text.
func ValueOf(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.Number:
		return Number(r.Num)
	case gjson.String:
		return String(r.Str)
	case gjson.True, gjson.False:
		return String(r.Raw)
	}
	if r.Raw == "" {
		return Null()
	}
	return String(r.Raw)
}

type Field struct {
	Key   string
	Value Value
}

// RawRow is a schema-less export row. Keys keep the order in which the
// export produced them; that order is the tie-break for ambiguous columns.
type RawRow struct {
	fields []Field
	pos    map[string]int
}

func NewRawRow(fields ...Field) RawRow {
	var r RawRow
	for _, f := range fields {
		r.Set(f.Key, f.Value)
	}
	return r
}

// Set stores v under key. A repeated key keeps its first position.
func (r *RawRow) Set(key string, v Value) {
	if r.pos == nil {
		r.pos = make(map[string]int)
	}
	if i, ok := r.pos[key]; ok {
		r.fields[i].Value = v
		return
	}
	r.pos[key] = len(r.fields)
	r.fields = append(r.fields, Field{Key: key, Value: v})
}

func (r RawRow) Get(key string) (Value, bool) {
	i, ok := r.pos[key]
	if !ok {
		return Null(), false
	}
	return r.fields[i].Value, true
}

func (r RawRow) Keys() []string {
	out := make([]string, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.Key
	}
	return out
}

func (r RawRow) Fields() []Field { return r.fields }
func (r RawRow) Len() int        { return len(r.fields) }

// RawRowOf builds a row from a parsed JSON element. Anything other than an
// object yields an empty row.
func RawRowOf(res gjson.Result) RawRow {
	var r RawRow
	if !res.IsObject() {
		return r
	}
	res.ForEach(func(k, v gjson.Result) bool {
		r.Set(k.String(), ValueOf(v))
		return true
	})
	return r
}
