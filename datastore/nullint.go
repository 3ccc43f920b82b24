package datastore

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// NullInt64 is an optional integer column such as a foreign key or an age.
//
// HTML forms post select and number inputs as strings, so in addition to JSON
// numbers it accepts numeric strings, and treats "" like null.
type NullInt64 struct {
	Int64 int64
	Valid bool
}

// Int returns a valid NullInt64 holding v.
func Int(v int64) NullInt64 {
	return NullInt64{Int64: v, Valid: true}
}

func (n NullInt64) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}

	return []byte(strconv.FormatInt(n.Int64, 10)), nil
}

func (n *NullInt64) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = NullInt64{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*n = NullInt64{}
			return nil
		}
		b = []byte(s)
	}
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s", b)
	}
	*n = Int(v)

	return nil
}

// Scan implements sql.Scanner.
func (n *NullInt64) Scan(src any) error {
	var v sql.NullInt64
	if err := v.Scan(src); err != nil {
		return err
	}
	*n = NullInt64{Int64: v.Int64, Valid: v.Valid}

	return nil
}

// Value implements driver.Valuer.
func (n NullInt64) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}

	return n.Int64, nil
}
