// Package validate reports edits whose generated statements will not replay
// faithfully.
package validate

import (
	"fmt"
	"math"
	"regexp"

	"replayrec/internal/replay"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeInvalidProperty     = "invalid_property"
	codeUnresolvedReference = "unresolved_reference"
	codeConstructedInstance = "constructed_instance"
	codeNonFiniteValue      = "non_finite_value"
)

var propertyPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	Index    int
	Property string
}

type Report struct {
	Issues []Issue
}

func (r *Report) Count(severity Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}

func Run(events []replay.Event) *Report {
	issues := make([]Issue, 0)
	for i, e := range events {
		issues = append(issues, validateProperty(i, e)...)
		issues = append(issues, validateTarget(i, e)...)
		issues = append(issues, validateValue(i, e)...)
	}
	return &Report{Issues: issues}
}

func validateProperty(index int, e replay.Event) []Issue {
	if propertyPattern.MatchString(e.Property) {
		return nil
	}
	return []Issue{{
		Severity: SeverityError,
		Code:     codeInvalidProperty,
		Message:  fmt.Sprintf("property %q is not an assignable member path", e.Property),
		Index:    index,
		Property: e.Property,
	}}
}

func validateTarget(index int, e replay.Event) []Issue {
	o := e.Object
	var issues []Issue
	if issue, ok := unresolved(index, e.Property, o, "target"); ok {
		issues = append(issues, issue)
	}
	if o.ClassName != "" && o.ID == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeConstructedInstance,
			Message:  fmt.Sprintf("target %s has no id, the statement edits a freshly constructed instance", o.ClassName),
			Index:    index,
			Property: e.Property,
		})
	}
	return issues
}

func validateValue(index int, e replay.Event) []Issue {
	if ref, ok := e.Value.Object(); ok {
		if issue, ok := unresolved(index, e.Property, ref, "value"); ok {
			return []Issue{issue}
		}
		return nil
	}
	for _, c := range e.Value.Components() {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return []Issue{{
				Severity: SeverityWarn,
				Code:     codeNonFiniteValue,
				Message:  fmt.Sprintf("%v value has a non-finite component", e.Value.Kind()),
				Index:    index,
				Property: e.Property,
			}}
		}
	}
	return nil
}

// unresolved flags references that render as a bare class name because no
// scene lookup exists for their kind.
func unresolved(index int, property string, o replay.ObjectRef, role string) (Issue, bool) {
	if o.ClassName == "" || o.ID == "" || o.Kind != replay.KindOther {
		return Issue{}, false
	}
	return Issue{
		Severity: SeverityError,
		Code:     codeUnresolvedReference,
		Message:  fmt.Sprintf("%s %s %q has no scene lookup and renders as its class name", role, o.ClassName, o.ID),
		Index:    index,
		Property: property,
	}, true
}
