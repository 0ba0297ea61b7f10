package instant

import (
	"fmt"
	"math"

	"github.com/zapponejosh/rawtime/internal/calendar"
)

// Arithmetic works on rawtime values. Results keep the receiver's drift and
// floors; a result that is not finite or lies beyond calendar.MaxSeconds is
// an ErrInvalidField.

// Add returns i + o.
func (i Instant) Add(o Operand) (Instant, error) {
	return i.derive("Add", i.rawtime+o.Rawtime())
}

// Subtract returns i - o.
func (i Instant) Subtract(o Operand) (Instant, error) {
	return i.derive("Subtract", i.rawtime-o.Rawtime())
}

// Multiply returns i * o.
func (i Instant) Multiply(o Operand) (Instant, error) {
	return i.derive("Multiply", i.rawtime*o.Rawtime())
}

// Divide returns i / o.
func (i Instant) Divide(o Operand) (Instant, error) {
	d := o.Rawtime()
	if d == 0 {
		return Instant{}, divisionByZero("Divide", i)
	}
	return i.derive("Divide", i.rawtime/d)
}

// FloorDivide returns floor(i / o).
func (i Instant) FloorDivide(o Operand) (Instant, error) {
	d := o.Rawtime()
	if d == 0 {
		return Instant{}, divisionByZero("FloorDivide", i)
	}
	return i.derive("FloorDivide", math.Floor(i.rawtime/d))
}

// Power returns i raised to o.
func (i Instant) Power(o Operand) (Instant, error) {
	return i.derive("Power", math.Pow(i.rawtime, o.Rawtime()))
}

// Modulo returns i mod o as a plain number. The result takes the sign of o.
func (i Instant) Modulo(o Operand) (float64, error) {
	d := o.Rawtime()
	if d == 0 {
		return 0, divisionByZero("Modulo", i)
	}
	r := math.Mod(i.rawtime, d)
	if r != 0 && (r < 0) != (d < 0) {
		r += d
	}
	return r + 0, nil
}

func (i Instant) derive(op string, raw float64) (Instant, error) {
	if !isFinite(raw) {
		return Instant{}, calendar.NewError(calendar.ErrInvalidField, op, raw,
			fmt.Sprintf("rawtime %v", i.rawtime), "the result is not a finite number of seconds")
	}
	res := Instant{rawtime: raw, drift: i.drift, floors: i.floors}
	if err := res.checkRange(op); err != nil {
		return Instant{}, err
	}
	return res, nil
}

func divisionByZero(op string, i Instant) error {
	return calendar.NewError(calendar.ErrDivisionByZero, op, 0,
		fmt.Sprintf("rawtime %v", i.rawtime), "use a non-zero divisor")
}

// =============================================================================
// Comparisons
// =============================================================================

// Compare returns -1, 0 or +1 as i is before, equal to or after o.
func (i Instant) Compare(o Operand) int {
	b := o.Rawtime()
	switch {
	case i.rawtime < b:
		return -1
	case i.rawtime > b:
		return 1
	}
	return 0
}

// Equals reports whether i and o have the same rawtime.
func (i Instant) Equals(o Operand) bool { return i.rawtime == o.Rawtime() }

// NotEquals reports whether i and o differ.
func (i Instant) NotEquals(o Operand) bool { return i.rawtime != o.Rawtime() }

// GreaterThan reports i > o.
func (i Instant) GreaterThan(o Operand) bool { return i.rawtime > o.Rawtime() }

// GreaterOrEqual reports i >= o.
func (i Instant) GreaterOrEqual(o Operand) bool { return i.rawtime >= o.Rawtime() }

// LessThan reports i < o.
func (i Instant) LessThan(o Operand) bool { return i.rawtime < o.Rawtime() }

// LessOrEqual reports i <= o.
func (i Instant) LessOrEqual(o Operand) bool { return i.rawtime <= o.Rawtime() }

// =============================================================================
// Named operations
// =============================================================================

// Op names an arithmetic or comparison operation for callers that pick the
// operation at run time (the CLI and the HTTP API).
type Op string

const (
	OpAdd            Op = "add"
	OpSubtract       Op = "sub"
	OpMultiply       Op = "mul"
	OpDivide         Op = "div"
	OpFloorDivide    Op = "floordiv"
	OpModulo         Op = "mod"
	OpPower          Op = "pow"
	OpEquals         Op = "eq"
	OpNotEquals      Op = "ne"
	OpGreaterThan    Op = "gt"
	OpGreaterOrEqual Op = "ge"
	OpLessThan       Op = "lt"
	OpLessOrEqual    Op = "le"
)

// Ops lists every named operation.
var Ops = []Op{
	OpAdd, OpSubtract, OpMultiply, OpDivide, OpFloorDivide, OpModulo, OpPower,
	OpEquals, OpNotEquals, OpGreaterThan, OpGreaterOrEqual, OpLessThan, OpLessOrEqual,
}

// Result is the outcome of Eval. Exactly one of Instant, Number or Bool is
// meaningful, selected by Type.
type Result struct {
	Type    ResultType
	Instant Instant
	Number  float64
	Bool    bool
}

// ResultType tells which field of a Result holds the value.
type ResultType int

const (
	ResultInstant ResultType = iota
	ResultNumber
	ResultBool
)

// Eval applies op to i and v. v goes through AsOperand, so unsupported
// values fail with ErrUnsupportedOperand; unknown ops with ErrInvalidField.
func (i Instant) Eval(op Op, v any) (Result, error) {
	o, err := AsOperand(v)
	if err != nil {
		return Result{}, err
	}

	var (
		res Instant
		n   float64
	)
	switch op {
	case OpAdd:
		res, err = i.Add(o)
	case OpSubtract:
		res, err = i.Subtract(o)
	case OpMultiply:
		res, err = i.Multiply(o)
	case OpDivide:
		res, err = i.Divide(o)
	case OpFloorDivide:
		res, err = i.FloorDivide(o)
	case OpPower:
		res, err = i.Power(o)
	case OpModulo:
		n, err = i.Modulo(o)
		return Result{Type: ResultNumber, Number: n}, err
	case OpEquals:
		return Result{Type: ResultBool, Bool: i.Equals(o)}, nil
	case OpNotEquals:
		return Result{Type: ResultBool, Bool: i.NotEquals(o)}, nil
	case OpGreaterThan:
		return Result{Type: ResultBool, Bool: i.GreaterThan(o)}, nil
	case OpGreaterOrEqual:
		return Result{Type: ResultBool, Bool: i.GreaterOrEqual(o)}, nil
	case OpLessThan:
		return Result{Type: ResultBool, Bool: i.LessThan(o)}, nil
	case OpLessOrEqual:
		return Result{Type: ResultBool, Bool: i.LessOrEqual(o)}, nil
	default:
		return Result{}, calendar.NewError(calendar.ErrInvalidField, "Eval", string(op), "",
			fmt.Sprintf("use one of %v", Ops))
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Type: ResultInstant, Instant: res}, nil
}

// ParseOp validates an operation name.
func ParseOp(s string) (Op, error) {
	for _, op := range Ops {
		if string(op) == s {
			return op, nil
		}
	}
	return "", calendar.NewError(calendar.ErrInvalidField, "ParseOp", s, "",
		fmt.Sprintf("use one of %v", Ops))
}
