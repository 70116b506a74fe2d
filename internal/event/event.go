// Package event decodes recorded inspector edits into replay events.
package event

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"replayrec/internal/replay"
)

var (
	ErrInvalidEvent = errors.New("invalid property-change event")
	ErrInvalidYAML  = errors.New("invalid YAML in event log")
)

// Raw is the wire shape of a property-change event. Object is a mapping with
// className, id, uniqueId and kind, or a plain string expression. Value is a
// number, string, boolean or mapping.
type Raw struct {
	Object   any    `yaml:"object" json:"object"`
	Property string `yaml:"property" json:"property"`
	Value    any    `yaml:"value" json:"value"`
}

func DecodeFile(path string) ([]replay.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	events, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return events, nil
}

// Decode reads a YAML or JSON sequence of events.
func Decode(r io.Reader) ([]replay.Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading event log: %w", err)
	}

	var raws []Raw
	if err := yaml.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	events := make([]replay.Event, 0, len(raws))
	for i, raw := range raws {
		e, err := Convert(raw)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, e)
	}
	return events, nil
}

func Convert(raw Raw) (replay.Event, error) {
	property := strings.TrimSpace(raw.Property)
	if property == "" {
		return replay.Event{}, fmt.Errorf("%w: property is required", ErrInvalidEvent)
	}

	object, err := ObjectFrom(raw.Object)
	if err != nil {
		return replay.Event{}, fmt.Errorf("object: %w", err)
	}

	value, err := ValueFrom(raw.Value)
	if err != nil {
		return replay.Event{}, fmt.Errorf("value: %w", err)
	}

	return replay.Event{Object: object, Property: property, Value: value}, nil
}

func ObjectFrom(v any) (replay.ObjectRef, error) {
	switch t := v.(type) {
	case nil:
		return replay.ObjectRef{}, fmt.Errorf("%w: object is required", ErrInvalidEvent)
	case string:
		if strings.TrimSpace(t) == "" {
			return replay.ObjectRef{}, fmt.Errorf("%w: object is required", ErrInvalidEvent)
		}
		return replay.ObjectRef{ID: t}, nil
	case map[string]any:
		return objectFromMap(t)
	default:
		return replay.ObjectRef{}, fmt.Errorf("%w: unsupported object %T", ErrInvalidEvent, v)
	}
}

func objectFromMap(m map[string]any) (replay.ObjectRef, error) {
	className, err := optionalString(m, "className")
	if err != nil {
		return replay.ObjectRef{}, err
	}
	id, err := optionalString(m, "id")
	if err != nil {
		return replay.ObjectRef{}, err
	}
	if className == "" && id == "" {
		return replay.ObjectRef{}, fmt.Errorf("%w: object needs a className or an id", ErrInvalidEvent)
	}

	ref := replay.ObjectRef{
		Kind:      ClassifyKind(className),
		ClassName: className,
		ID:        id,
	}

	if raw, ok := m["uniqueId"]; ok && raw != nil {
		n, ok := integer(raw)
		if !ok {
			return replay.ObjectRef{}, fmt.Errorf("%w: uniqueId must be an integer", ErrInvalidEvent)
		}
		ref.UniqueID = n
	}

	kind, err := optionalString(m, "kind")
	if err != nil {
		return replay.ObjectRef{}, err
	}
	if kind != "" {
		parsed, err := replay.ParseKind(kind)
		if err != nil {
			return replay.ObjectRef{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
		}
		ref.Kind = parsed
	}

	return ref, nil
}

// ClassifyKind maps an engine class name onto the kind used for scene lookups.
func ClassifyKind(className string) replay.Kind {
	folded := strings.ToLower(className)
	switch {
	case folded == "scene":
		return replay.KindScene
	case strings.Contains(folded, "camera"):
		return replay.KindCamera
	case strings.Contains(folded, "mesh"):
		return replay.KindMesh
	case strings.Contains(folded, "light"):
		return replay.KindLight
	case folded == "transformnode":
		return replay.KindTransformNode
	case folded == "skeleton":
		return replay.KindSkeleton
	case strings.Contains(folded, "material"):
		return replay.KindMaterial
	default:
		return replay.KindOther
	}
}

func optionalString(m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return "", nil
	}
	t, ok := raw.(string)
	if !ok {
		// Unquoted numbers have already lost their source text (007, 0x1F, 1.0).
		return "", fmt.Errorf("%w: %s must be a string, quote numeric values", ErrInvalidEvent, key)
	}
	return t, nil
}

// maxExactInt is the largest integer a float64 holds exactly.
const maxExactInt = 1 << 53

func integer(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case uint64:
		if t > math.MaxInt64 {
			return 0, false
		}
		return int64(t), true
	case float64:
		if t != math.Trunc(t) || math.Abs(t) > maxExactInt {
			return 0, false
		}
		return int64(t), true
	default:
		return 0, false
	}
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}
