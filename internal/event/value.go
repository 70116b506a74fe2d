package event

import (
	"fmt"
	"strconv"
	"strings"

	"replayrec/internal/replay"
)

type shape struct {
	kind   replay.ValueKind
	marker string
	fields []string
}

// shapes are tried in order, the first whose marker field is present wins.
// A quaternion also carries x, y and z, so it must come before vector3.
var shapes = []shape{
	{kind: replay.ValueQuaternion, marker: "w", fields: []string{"x", "y", "z", "w"}},
	{kind: replay.ValueVector3, marker: "z", fields: []string{"x", "y", "z"}},
	{kind: replay.ValueVector2, marker: "y", fields: []string{"x", "y"}},
	{kind: replay.ValueColor4, marker: "a", fields: []string{"r", "g", "b", "a"}},
	{kind: replay.ValueColor3, marker: "b", fields: []string{"r", "g", "b"}},
}

var typeTags = map[string]replay.ValueKind{
	"literal":    replay.ValueLiteral,
	"scalar":     replay.ValueScalar,
	"vector2":    replay.ValueVector2,
	"vector3":    replay.ValueVector3,
	"quaternion": replay.ValueQuaternion,
	"color3":     replay.ValueColor3,
	"color4":     replay.ValueColor4,
	"object":     replay.ValueObject,
}

func ValueFrom(v any) (replay.Value, error) {
	switch t := v.(type) {
	case nil:
		return replay.Value{}, fmt.Errorf("%w: value is required", ErrInvalidEvent)
	case bool:
		return replay.Bool(t), nil
	case string:
		return replay.Literal(t), nil
	case map[string]any:
		return valueFromMap(t)
	}
	if n, ok := number(v); ok {
		return replay.Scalar(n), nil
	}
	return replay.Value{}, fmt.Errorf("%w: unsupported value %T", ErrInvalidEvent, v)
}

func valueFromMap(m map[string]any) (replay.Value, error) {
	if tag, ok := m["type"]; ok {
		name, ok := tag.(string)
		if !ok {
			return replay.Value{}, fmt.Errorf("%w: value type must be a string", ErrInvalidEvent)
		}
		kind, ok := typeTags[strings.ToLower(name)]
		if !ok {
			return replay.Value{}, fmt.Errorf("%w: unknown value type %q", ErrInvalidEvent, name)
		}
		return tagged(kind, m)
	}

	for _, s := range shapes {
		if _, ok := m[s.marker]; ok {
			return build(s, m)
		}
	}
	if _, ok := m["className"]; ok {
		ref, err := objectFromMap(m)
		if err != nil {
			return replay.Value{}, err
		}
		return replay.Object(ref), nil
	}

	return replay.Value{}, fmt.Errorf("%w: unrecognised value shape", ErrInvalidEvent)
}

func tagged(kind replay.ValueKind, m map[string]any) (replay.Value, error) {
	switch kind {
	case replay.ValueObject:
		ref, err := objectFromMap(m)
		if err != nil {
			return replay.Value{}, err
		}
		return replay.Object(ref), nil
	case replay.ValueLiteral:
		raw, ok := m["value"]
		if !ok || raw == nil {
			return replay.Value{}, fmt.Errorf("%w: literal needs a value", ErrInvalidEvent)
		}
		switch t := raw.(type) {
		case string:
			return replay.Literal(t), nil
		case bool:
			return replay.Bool(t), nil
		}
		if n, ok := number(raw); ok {
			return replay.Literal(strconv.FormatFloat(n, 'f', -1, 64)), nil
		}
		return replay.Value{}, fmt.Errorf("%w: literal value must be a scalar", ErrInvalidEvent)
	case replay.ValueScalar:
		n, ok := number(m["value"])
		if !ok {
			return replay.Value{}, fmt.Errorf("%w: scalar value must be a number", ErrInvalidEvent)
		}
		return replay.Scalar(n), nil
	}

	for _, s := range shapes {
		if s.kind == kind {
			return build(s, m)
		}
	}
	return replay.Value{}, fmt.Errorf("%w: unsupported value type %v", ErrInvalidEvent, kind)
}

func build(s shape, m map[string]any) (replay.Value, error) {
	c := make([]float64, len(s.fields))
	for i, field := range s.fields {
		n, ok := number(m[field])
		if !ok {
			return replay.Value{}, fmt.Errorf("%w: %v needs a numeric %s", ErrInvalidEvent, s.kind, field)
		}
		c[i] = n
	}

	switch s.kind {
	case replay.ValueQuaternion:
		return replay.Quaternion(c[0], c[1], c[2], c[3]), nil
	case replay.ValueVector3:
		return replay.Vector3(c[0], c[1], c[2]), nil
	case replay.ValueVector2:
		return replay.Vector2(c[0], c[1]), nil
	case replay.ValueColor4:
		return replay.Color4(c[0], c[1], c[2], c[3]), nil
	default:
		return replay.Color3(c[0], c[1], c[2]), nil
	}
}
