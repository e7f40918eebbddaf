package fieldcodec

import (
	"fmt"
	"strconv"
	"time"
)

// Record is one row of values conforming to a schema, in schema order.
type Record struct {
	Values []any `json:"values" yaml:"values" msgpack:"values" bson:"values"`
}

// NewRecord returns a record holding the given values.
func NewRecord(values ...any) Record {
	return Record{Values: values}
}

// Len returns the number of values.
func (r Record) Len() int {
	return len(r.Values)
}

// Clone implements Cloner[Record].
// Byte slices and nested slices and maps are copied so the clone shares no
// mutable state with the receiver.
func (r Record) Clone() Record {
	if r.Values == nil {
		return Record{}
	}
	values := make([]any, len(r.Values))
	for i, v := range r.Values {
		values[i] = cloneValue(v)
	}
	return Record{Values: values}
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case []byte:
		if x == nil {
			return x
		}
		b := make([]byte, len(x))
		copy(b, x)
		return b
	case []any:
		if x == nil {
			return x
		}
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		if x == nil {
			return x
		}
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// FormatValue renders a field value as text.
// Nil renders as the empty string.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
