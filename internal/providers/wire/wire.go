// Package wire decodes loosely-typed provider payloads into typed values with
// documented defaults. Providers drift between numbers and numeric strings, use
// placeholders such as "" or "-" for missing values, and occasionally send an
// element of the wrong shape inside an otherwise valid list.
package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var null = []byte("null")

// Int is an integer that may arrive as a number, a numeric string, an empty
// string, a placeholder or null. Unparseable input decodes to an invalid zero.
type Int struct {
	Value int
	Valid bool
}

// UnmarshalJSON never fails; unusable input leaves the Int invalid.
func (i *Int) UnmarshalJSON(b []byte) error {
	*i = Int{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, null) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		*i = ParseInt(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil || math.Abs(f) >= math.MaxInt32 {
		return nil
	}
	*i = Int{Value: int(f), Valid: true}
	return nil
}

// Or returns the value, or def when invalid.
func (i Int) Or(def int) int {
	if !i.Valid {
		return def
	}
	return i.Value
}

// Ptr returns a pointer to the value, or nil when invalid.
func (i Int) Ptr() *int {
	if !i.Valid {
		return nil
	}
	v := i.Value
	return &v
}

// ParseInt parses s as an integer, tolerating surrounding whitespace, a leading
// '+', decimal forms like "4.0" and ordinal suffixes like "5th".
func ParseInt(s string) Int {
	s = strings.TrimPrefix(strings.TrimSpace(s), "+")
	if s == "" {
		return Int{}
	}
	if n, err := strconv.Atoi(s); err == nil {
		return Int{Value: n, Valid: true}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) && math.Abs(f) < math.MaxInt32 {
		return Int{Value: int(f), Valid: true}
	}
	digits := leadingDigits(s)
	if digits == "" {
		return Int{}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Int{}
	}
	return Int{Value: n, Valid: true}
}

func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}

// Float is a float that may arrive as a number or numeric string.
type Float struct {
	Value float64
	Valid bool
}

// UnmarshalJSON never fails; unusable input leaves the Float invalid.
func (f *Float) UnmarshalJSON(b []byte) error {
	*f = Float{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, null) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		*f = ParseFloat(s)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*f = Float{Value: v, Valid: true}
	return nil
}

// Or returns the value, or def when invalid.
func (f Float) Or(def float64) float64 {
	if !f.Valid {
		return def
	}
	return f.Value
}

// Ptr returns a pointer to the value, or nil when invalid.
func (f Float) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// ParseFloat parses s, accepting a leading '.' (".500") and '+'.
func ParseFloat(s string) Float {
	s = strings.TrimPrefix(strings.TrimSpace(s), "+")
	if s == "" || s == "-" || s == "--" {
		return Float{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Float{}
	}
	return Float{Value: v, Valid: true}
}

// String is text that may arrive as a JSON string, number or boolean.
// Null and objects decode to the empty string.
type String string

// UnmarshalJSON never fails.
func (s *String) UnmarshalJSON(b []byte) error {
	*s = ""
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, null) {
		return nil
	}
	switch b[0] {
	case '"':
		var v string
		if err := json.Unmarshal(b, &v); err == nil {
			*s = String(strings.TrimSpace(v))
		}
	case '{', '[':
	default:
		*s = String(b)
	}
	return nil
}

// String returns the text.
func (s String) String() string {
	return string(s)
}

// Bool is a boolean that may arrive as true/false, "true"/"false", "1"/"0" or "yes"/"no".
type Bool bool

// UnmarshalJSON never fails; unknown values decode to false.
func (v *Bool) UnmarshalJSON(b []byte) error {
	*v = false
	raw := strings.ToLower(strings.Trim(strings.TrimSpace(string(b)), `"`))
	switch raw {
	case "true", "1", "yes", "y":
		*v = true
	}
	return nil
}

// Decode unmarshals a whole payload into v. Syntax errors are returned; type
// mismatches on individual fields are tolerated because encoding/json still
// fills every field it can, and the mismatched fields keep their zero value.
func Decode(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return nil
	}
	return err
}

// DecodeEach decodes every element of raw into T independently. Elements that
// fail to decode are skipped and counted.
func DecodeEach[T any](raw []json.RawMessage) (items []T, skipped int) {
	items = make([]T, 0, len(raw))
	for _, msg := range raw {
		var item T
		if err := json.Unmarshal(msg, &item); err != nil {
			skipped++
			continue
		}
		items = append(items, item)
	}
	return items, skipped
}

// List is a JSON array whose elements decode independently. A value that is
// not an array (object, string, null) decodes to an empty list.
type List[T any] struct {
	Items   []T
	Skipped int
}

// UnmarshalJSON never fails.
func (l *List[T]) UnmarshalJSON(b []byte) error {
	*l = List[T]{}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	l.Items, l.Skipped = DecodeEach[T](raw)
	return nil
}
