package replay

import (
	"fmt"
	"strings"
)

// Kind classifies an engine object for indirect-reference rendering.
type Kind int

const (
	KindOther Kind = iota
	KindScene
	KindCamera
	KindMesh
	KindLight
	KindTransformNode
	KindSkeleton
	KindMaterial
)

var kindNames = map[Kind]string{
	KindOther:         "other",
	KindScene:         "scene",
	KindCamera:        "camera",
	KindMesh:          "mesh",
	KindLight:         "light",
	KindTransformNode: "transformnode",
	KindSkeleton:      "skeleton",
	KindMaterial:      "material",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for kind, name := range kindNames {
		if name == key {
			return kind, nil
		}
	}
	return KindOther, fmt.Errorf("unknown object kind: %q", s)
}

// ObjectRef identifies an engine object. References are compared by value,
// UniqueID tells apart id-less instances of the same class.
type ObjectRef struct {
	Kind      Kind
	ClassName string
	ID        string
	UniqueID  int64
}
