// Package jsonutil coerces loosely typed values out of LLM JSON replies.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// FlexibleStringValue renders a raw JSON value as a string. Models asked for
// string fields occasionally type-flip them ("subject": 42); the draft is
// still usable, so scalars are coerced instead of rejected. Null and empty
// values become "". Anything non-scalar comes back as its raw text.
func FlexibleStringValue(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}

	var value any
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return string(trimmed)
	}

	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return string(trimmed)
	}
}
