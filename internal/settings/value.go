package settings

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Decode turns a stored string into its semantic value per the declared
// type tag. This is the single decode step for the whole application;
// consumers receive typed values and never branch on the tag themselves.
//
//   boolean -> true exactly when the stored string is "true"
//   number  -> float64 via strconv.ParseFloat
//   json    -> any via encoding/json
//   string  -> the raw string (also the fallback for unknown tags)
//
// A decode error never escapes past GetValue; callers of Decode that need
// the error (update validation) get it here.
func Decode(typeTag, raw string) (any, error) {
	switch typeTag {
	case TypeBoolean:
		return raw == "true", nil
	case TypeNumber:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", raw)
		}
		return f, nil
	case TypeJSON:
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("invalid json: %v", err)
		}
		return v, nil
	default:
		return raw, nil
	}
}

// Encode is the inverse used by the update endpoint: it turns a decoded
// JSON body value back into the stored string encoding for its tag.
func Encode(typeTag string, v any) (string, error) {
	switch typeTag {
	case TypeBoolean:
		b, ok := v.(bool)
		if !ok {
			if s, ok := v.(string); ok {
				return s, nil // already encoded
			}
			return "", fmt.Errorf("expected boolean")
		}
		return strconv.FormatBool(b), nil
	case TypeNumber:
		switch n := v.(type) {
		case float64:
			return strconv.FormatFloat(n, 'f', -1, 64), nil
		case string:
			return n, nil
		default:
			return "", fmt.Errorf("expected number")
		}
	case TypeJSON:
		if s, ok := v.(string); ok {
			return s, nil
		}
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("expected string")
		}
		return s, nil
	}
}

// stringsFromJSON coerces a decoded json value into a string slice,
// dropping non-string elements. Used by the grouped views.
func stringsFromJSON(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
