package catalog

import (
	"math"
	"strconv"

	"github.com/spf13/cast"

	"github.com/brightline/catalogd/internal/domain"
)

// TypedValue is an attribute value together with the type tag captured at
// assignment time. The tag is recomputed on every update so it can never
// go stale relative to the stored value.
type TypedValue struct {
	Value string
	Type  string
}

// DetectValue derives the typed representation of a raw attribute value.
// JSON decoding hands numbers over as float64, so whole floats are tagged
// as integers.
func DetectValue(v interface{}) TypedValue {
	switch t := v.(type) {
	case nil:
		return TypedValue{Value: "", Type: domain.AttrTypeString}
	case bool:
		return TypedValue{Value: strconv.FormatBool(t), Type: domain.AttrTypeBoolean}
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypedValue{Value: cast.ToString(v), Type: domain.AttrTypeInteger}
	case float32, float64:
		f := cast.ToFloat64(v)
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return TypedValue{Value: strconv.FormatInt(int64(f), 10), Type: domain.AttrTypeInteger}
		}
		return TypedValue{Value: cast.ToString(v), Type: domain.AttrTypeDouble}
	default:
		return TypedValue{Value: cast.ToString(v), Type: domain.AttrTypeString}
	}
}
