// Package replay turns inspector property edits into a script that replays them.
package replay

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

const (
	DefaultNamespace = "BABYLON"
	DefaultFilename  = "pseudo-code.txt"

	// Header opens every export.
	Header = "// Code generated by babylon.js Inspector\r\n" +
		"// Please keep in mind to define the 'scene' variable before using that code\r\n\r\n"

	lineBreak = "\r\n"
)

// Event reports that object.property was set to value.
type Event struct {
	Object   ObjectRef
	Property string
	Value    Value
}

// Sink receives an export. It stands in for the host download mechanism.
type Sink interface {
	Save(ctx context.Context, filename string, content []byte) error
}

type SinkFunc func(ctx context.Context, filename string, content []byte) error

func (f SinkFunc) Save(ctx context.Context, filename string, content []byte) error {
	return f(ctx, filename, content)
}

type Options struct {
	// Namespace prefixes constructor calls, BABYLON when empty.
	Namespace string
	// Filename names the exported file, pseudo-code.txt when empty.
	Filename string
	Logger   zerolog.Logger
}

// Recorder accumulates one statement per edit. It is not safe for concurrent
// use. The zero value records with the default options and a disabled logger.
type Recorder struct {
	namespace string
	filename  string
	log       zerolog.Logger

	lines []string

	hasLast      bool
	lastObject   ObjectRef
	lastProperty string
}

func New(opts Options) *Recorder {
	return &Recorder{
		namespace: opts.Namespace,
		filename:  opts.Filename,
		log:       opts.Logger,
	}
}

func (r *Recorder) Reset() {
	r.lines = []string{}
	r.hasLast = false
	r.lastObject = ObjectRef{}
	r.lastProperty = ""
}

func (r *Recorder) Record(e Event) {
	if r.hasLast && r.lastObject == e.Object && r.lastProperty == e.Property && len(r.lines) > 0 {
		r.lines = r.lines[:len(r.lines)-1]
		r.log.Debug().Str("property", e.Property).Msg("collapsing repeated edit")
	}

	value := r.renderValue(e.Value)
	target := r.renderReference(e.Object)
	line := target + "." + e.Property + " = " + value + ";"
	r.lines = append(r.lines, line)

	r.hasLast = true
	r.lastObject = e.Object
	r.lastProperty = e.Property

	r.log.Trace().Str("line", line).Int("lines", len(r.lines)).Msg("recorded edit")
}

func (r *Recorder) Len() int {
	return len(r.lines)
}

func (r *Recorder) Lines() []string {
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Content returns the export text: the header followed by every statement.
func (r *Recorder) Content() string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString(strings.Join(r.lines, lineBreak))
	return b.String()
}

func (r *Recorder) Export(ctx context.Context, sink Sink) error {
	filename := r.Filename()
	if err := sink.Save(ctx, filename, []byte(r.Content())); err != nil {
		return fmt.Errorf("exporting %s: %w", filename, err)
	}
	r.log.Info().Str("file", filename).Int("lines", len(r.lines)).Msg("exported recording")
	return nil
}

func (r *Recorder) Filename() string {
	if r.filename == "" {
		return DefaultFilename
	}
	return r.filename
}

func (r *Recorder) ns() string {
	if r.namespace == "" {
		return DefaultNamespace
	}
	return r.namespace
}

func (r *Recorder) renderValue(v Value) string {
	switch v.kind {
	case ValueQuaternion:
		return r.construct("Quaternion", v.Components())
	case ValueVector3:
		return r.construct("Vector3", v.Components())
	case ValueVector2:
		return r.construct("Vector2", v.Components())
	case ValueColor4:
		return r.construct("Color4", v.Components())
	case ValueColor3:
		return r.construct("Color3", v.Components())
	case ValueObject:
		return r.renderReference(v.object)
	case ValueScalar:
		return formatNumber(v.components[0])
	default:
		return v.literal
	}
}

func (r *Recorder) construct(class string, components []float64) string {
	return "new " + r.ns() + "." + class + "(" + joinNumbers(components) + ")"
}

// renderReference returns an expression that evaluates, against a scene
// variable, to the referenced object.
func (r *Recorder) renderReference(o ObjectRef) string {
	if o.ClassName == "" {
		return o.ID
	}
	if o.ID == "" {
		return "new " + r.ns() + "." + o.ClassName + "()"
	}
	if o.Kind == KindScene {
		return "scene"
	}

	switch o.Kind {
	case KindCamera:
		return lookup("getCameraByID", o.ID)
	case KindMesh:
		return lookup("getMeshByID", o.ID)
	case KindLight:
		return lookup("getLightByID", o.ID)
	case KindTransformNode:
		return lookup("getTransformNodeByID", o.ID)
	case KindSkeleton:
		return lookup("getSkeletonById", o.ID)
	case KindMaterial:
		return lookup("getMaterialByID", o.ID)
	}

	folded := strings.ToLower(o.ClassName)
	r.log.Warn().Str("class", o.ClassName).Str("id", o.ID).Msg("no scene lookup for class, emitting class name")
	return folded
}

func lookup(accessor, id string) string {
	return fmt.Sprintf("scene.%s(%q)", accessor, id)
}
