package format

import (
	"errors"
	"fmt"
)

// Sentinel errors for format selection and rendering.
var (
	ErrUnknownFormat      = errors.New("unknown output format")
	ErrAmbiguousFormat    = errors.New("ambiguous output format")
	ErrUnsupportedElement = errors.New("unsupported element")
)

// UnsupportedElementError names an element that strict mode refused.
type UnsupportedElementError struct {
	// Kind is the element's tag name.
	Kind string
	// Markup is the element serialized as HTML.
	Markup string
}

func (e *UnsupportedElementError) Error() string {
	return fmt.Sprintf("unsupported element %s: %s", e.Kind, e.Markup)
}

// Is makes errors.Is(err, ErrUnsupportedElement) match.
func (e *UnsupportedElementError) Is(target error) bool {
	return target == ErrUnsupportedElement
}
