package replay

import (
	"math"
	"strconv"
	"strings"
)

type ValueKind int

const (
	ValueLiteral ValueKind = iota
	ValueScalar
	ValueVector2
	ValueVector3
	ValueQuaternion
	ValueColor3
	ValueColor4
	ValueObject
)

func (k ValueKind) String() string {
	switch k {
	case ValueLiteral:
		return "literal"
	case ValueScalar:
		return "scalar"
	case ValueVector2:
		return "vector2"
	case ValueVector3:
		return "vector3"
	case ValueQuaternion:
		return "quaternion"
	case ValueColor3:
		return "color3"
	case ValueColor4:
		return "color4"
	case ValueObject:
		return "object"
	default:
		return "value(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is the new value carried by a property-change event. Build one with
// the constructor matching its shape; the zero Value is an empty literal.
type Value struct {
	kind       ValueKind
	components [4]float64
	literal    string
	object     ObjectRef
}

func Scalar(v float64) Value {
	return Value{kind: ValueScalar, components: [4]float64{v}}
}

func Vector2(x, y float64) Value {
	return Value{kind: ValueVector2, components: [4]float64{x, y}}
}

func Vector3(x, y, z float64) Value {
	return Value{kind: ValueVector3, components: [4]float64{x, y, z}}
}

func Quaternion(x, y, z, w float64) Value {
	return Value{kind: ValueQuaternion, components: [4]float64{x, y, z, w}}
}

func Color3(r, g, b float64) Value {
	return Value{kind: ValueColor3, components: [4]float64{r, g, b}}
}

func Color4(r, g, b, a float64) Value {
	return Value{kind: ValueColor4, components: [4]float64{r, g, b, a}}
}

func Object(ref ObjectRef) Value {
	return Value{kind: ValueObject, object: ref}
}

// Literal is emitted verbatim, without quoting.
func Literal(s string) Value {
	return Value{kind: ValueLiteral, literal: s}
}

func Bool(b bool) Value {
	return Literal(strconv.FormatBool(b))
}

func (v Value) Kind() ValueKind {
	return v.kind
}

// Components returns the numeric components in constructor order.
func (v Value) Components() []float64 {
	switch v.kind {
	case ValueScalar:
		return v.components[:1]
	case ValueVector2:
		return v.components[:2]
	case ValueVector3, ValueColor3:
		return v.components[:3]
	case ValueQuaternion, ValueColor4:
		return v.components[:4]
	default:
		return nil
	}
}

func (v Value) Object() (ObjectRef, bool) {
	return v.object, v.kind == ValueObject
}

func (v Value) Text() string {
	return v.literal
}

// formatNumber renders a float the way a script engine prints a number.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	if f == 0 {
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

func joinNumbers(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatNumber(v)
	}
	return strings.Join(parts, ", ")
}
