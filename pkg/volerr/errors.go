// Package volerr defines the error taxonomy shared by every pipeline stage.
package volerr

import "fmt"

// ParseError reports malformed JSON or a missing required key on a record line.
type ParseError struct {
	LineNo int
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.LineNo, e.Detail)
}

// DuplicateId reports that the same record id appeared twice in a stream.
type DuplicateId struct {
	ID string
}

func (e *DuplicateId) Error() string {
	return fmt.Sprintf("duplicate id %q", e.ID)
}

// UnresolvedReference reports a child/source/target id that never resolved to a record.
type UnresolvedReference struct {
	FromID string
	ToID   string
}

func (e *UnresolvedReference) Error() string {
	return fmt.Sprintf("unresolved reference from %q to %q", e.FromID, e.ToID)
}

// UnknownKind reports a record type that is neither a native entity kind nor a
// registered custom component.
type UnknownKind struct {
	Type string
}

func (e *UnknownKind) Error() string {
	return fmt.Sprintf("unknown kind %q", e.Type)
}

// ArityError reports a cardinality violation, e.g. a box with != 1 child.
type ArityError struct {
	ID     string
	Detail string
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("arity error on %q: %s", e.ID, e.Detail)
}

// CustomComponentError wraps a failure raised by a custom component factory.
type CustomComponentError struct {
	Name  string
	Cause error
}

func (e *CustomComponentError) Error() string {
	return fmt.Sprintf("custom component %q failed: %v", e.Name, e.Cause)
}

func (e *CustomComponentError) Unwrap() error {
	return e.Cause
}

// OverConstrained reports that the constraint solver could not satisfy every
// required constraint simultaneously.
type OverConstrained struct {
	Constraints []string
}

func (e *OverConstrained) Error() string {
	return fmt.Sprintf("over-constrained: conflicting required constraints %v", e.Constraints)
}

// RenderError wraps a failure reported by the downstream render sink.
type RenderError struct {
	Detail string
	Cause  error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Detail, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Detail)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
