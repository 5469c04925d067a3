package schema

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONArray stores an ordered list of strings as JSON text.
type JSONArray []string

// Value implements driver.Valuer. A nil list is stored as "[]".
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return "[]", nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (j *JSONArray) Scan(value any) error {
	if value == nil {
		*j = make(JSONArray, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONArray source %T", value)
	}
	if len(bytes) == 0 {
		*j = make(JSONArray, 0)
		return nil
	}

	var out []string
	if err := json.Unmarshal(bytes, &out); err != nil {
		return err
	}
	if out == nil {
		out = make([]string, 0)
	}
	*j = out
	return nil
}
