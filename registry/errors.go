package registry

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when no source declares the searched name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("type %q not found in any registered source", e.Name)
}

// AmbiguousError is returned when a simple name matches types declared by
// more than one source and no source declares it as a fully-qualified name.
type AmbiguousError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("type %q is ambiguous, candidates: %s", e.Name, strings.Join(e.Candidates, ", "))
}
