package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind discriminates the Value union.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTable
)

// Value is a tagged union over the scalar field types plus Table, the only
// structured value a Section may hold.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	t    *Table
}

func StringValue(s string) Value  { return Value{kind: KindString, s: s} }
func IntValue(i int64) Value      { return Value{kind: KindInt, i: i} }
func FloatValue(f float64) Value  { return Value{kind: KindFloat, f: f} }
func BoolValue(b bool) Value      { return Value{kind: KindBool, b: b} }
func TableValue(t *Table) Value   { return Value{kind: KindTable, t: t} }

func (v Value) Kind() Kind      { return v.kind }
func (v Value) String() string  { return v.s }
func (v Value) Int() int64      { return v.i }
func (v Value) Float() float64  { return v.f }
func (v Value) Bool() bool      { return v.b }
func (v Value) Table() *Table   { return v.t }

// Display renders the scalar form used by the console projection. Tables are
// rendered separately and report a placeholder here.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTable:
		return fmt.Sprintf("[table, %d rows]", len(v.t.Rows))
	}
	return ""
}

// MarshalJSON emits the lossless form: scalars as themselves, tables as an
// array of objects keyed by header name, headers in declaration order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.s)
	case KindInt:
		return json.Marshal(v.i)
	case KindFloat:
		return json.Marshal(v.f)
	case KindBool:
		return json.Marshal(v.b)
	case KindTable:
		return v.t.MarshalJSON()
	}
	return nil, fmt.Errorf("unknown value kind %d", v.kind)
}

// Table is an ordered grid: fixed headers, rows with exactly one cell per
// header.
type Table struct {
	Headers []string
	Rows    [][]Value
}

// NewTable returns an empty table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// AddRow appends a row, padding short rows with empty strings and clipping
// long ones so every row matches the header count.
func (t *Table) AddRow(cells ...Value) {
	row := make([]Value, len(t.Headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = StringValue("")
		}
	}
	t.Rows = append(t.Rows, row)
}

// AddStringRow is AddRow for the common all-string case.
func (t *Table) AddStringRow(cells ...string) {
	values := make([]Value, len(cells))
	for i, c := range cells {
		values[i] = StringValue(c)
	}
	t.AddRow(values...)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// MarshalJSON emits the table as an array of header-keyed objects.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for ri, row := range t.Rows {
		if ri > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for ci, header := range t.Headers {
			if ci > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(header)
			if err != nil {
				return nil, err
			}
			val, err := row[ci].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
