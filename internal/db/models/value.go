package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ValueKind enumerates the scalar shapes a setting value may take.
type ValueKind uint8

const (
	// KindString is a string setting value.
	KindString ValueKind = iota
	// KindBool is a boolean setting value.
	KindBool
	// KindNumber is a numeric setting value.
	KindNumber
)

// ErrUnsupportedValue is returned when a setting value is not a string,
// boolean or number.
var ErrUnsupportedValue = errors.New("setting value must be a string, boolean or number")

// Value is a tagged union over the scalar shapes settings actually use.
// It serializes to and from a bare JSON scalar, both on the wire and in the
// settings table.
type Value struct {
	Kind ValueKind
	Str  string
	Bool bool
	Num  float64
}

// StringValue creates a string Value.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// BoolValue creates a boolean Value.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// NumberValue creates a numeric Value.
func NumberValue(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

// MarshalJSON encodes the value as a bare JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindBool:
		return json.Marshal(v.Bool) //nolint: wrapcheck
	case KindNumber:
		return json.Marshal(v.Num) //nolint: wrapcheck
	default:
		return json.Marshal(v.Str) //nolint: wrapcheck
	}
}

// UnmarshalJSON decodes a bare JSON scalar into the value.
// Anything that is not a string, boolean or number is rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return err //nolint: wrapcheck
	}

	switch s := probe.(type) {
	case string:
		*v = StringValue(s)
	case bool:
		*v = BoolValue(s)
	case float64:
		*v = NumberValue(s)
	default:
		return ErrUnsupportedValue
	}

	return nil
}

// Value implements driver.Valuer, storing the JSON scalar as text.
func (v Value) Value() (driver.Value, error) {
	out, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}

	return string(out), nil
}

// Scan implements sql.Scanner.
func (v *Value) Scan(src any) error {
	var raw []byte

	switch s := src.(type) {
	case []byte:
		raw = s
	case string:
		raw = []byte(s)
	case nil:
		*v = StringValue("")
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Value", src) //nolint:goerr113
	}

	return v.UnmarshalJSON(raw)
}

// String returns the string form of the value for display purposes.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		if v.Bool {
			return "true"
		}

		return "false"
	case KindNumber:
		out, _ := json.Marshal(v.Num)
		return string(out)
	default:
		return v.Str
	}
}
