package instant

import (
	"encoding/json"
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/zapponejosh/rawtime/internal/calendar"
)

// Operand is anything arithmetic and comparisons accept: an Instant or a
// plain number of seconds.
type Operand interface {
	Rawtime() float64
}

// Scalar is a number of seconds used as an operand.
type Scalar float64

// Rawtime returns the scalar itself.
func (s Scalar) Rawtime() float64 {
	return float64(s)
}

// Number wraps any integer or float as a Scalar operand.
func Number[T constraints.Integer | constraints.Float](v T) Scalar {
	return Scalar(v)
}

// AsOperand accepts an Instant, a Scalar or a Go number. Anything else is an
// ErrUnsupportedOperand.
func AsOperand(v any) (Operand, error) {
	switch o := v.(type) {
	case Instant:
		return o, nil
	case *Instant:
		if o != nil {
			return *o, nil
		}
	case Operand:
		return o, nil
	default:
		if s, ok := scalarOf(v); ok {
			return s, nil
		}
	}
	return nil, calendar.NewError(calendar.ErrUnsupportedOperand, "AsOperand", v,
		fmt.Sprintf("type %T", v), "use an Instant or a number of seconds")
}

func scalarOf(v any) (Scalar, bool) {
	switch n := v.(type) {
	case Scalar:
		return n, true
	case float64:
		return Number(n), true
	case float32:
		return Number(n), true
	case int:
		return Number(n), true
	case int8:
		return Number(n), true
	case int16:
		return Number(n), true
	case int32:
		return Number(n), true
	case int64:
		return Number(n), true
	case uint:
		return Number(n), true
	case uint8:
		return Number(n), true
	case uint16:
		return Number(n), true
	case uint32:
		return Number(n), true
	case uint64:
		return Number(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return Number(f), true
	}
	return 0, false
}
