package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// StringList stores an ordered list of strings as a JSON array in a single
// text column, portable across the supported gorm engines.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}

	out, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return string(out), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}

	var raw []byte

	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src) //nolint:goerr113
	}

	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return errors.Join(errors.New("malformed string list column"), err) //nolint:goerr113
	}

	*l = out

	return nil
}

// Contains reports whether item is present in the list.
func (l StringList) Contains(item string) bool {
	for _, s := range l {
		if s == item {
			return true
		}
	}

	return false
}

// Without returns a copy of the list with every occurrence of item removed.
// The order of the remaining entries is preserved.
func (l StringList) Without(item string) StringList {
	out := make(StringList, 0, len(l))

	for _, s := range l {
		if s != item {
			out = append(out, s)
		}
	}

	return out
}
