package resolver

import (
	"fmt"

	"github.com/vk/avrotype/registry"
)

type (
	// NotFoundError is returned when no type source declares a name.
	NotFoundError = registry.NotFoundError
	// AmbiguousError is returned when a simple name matches more than one
	// registered type.
	AmbiguousError = registry.AmbiguousError
)

// InstantiationError is returned when a resolved type has no way to build a
// default instance, e.g. interfaces, functions and channels.
type InstantiationError struct {
	Type   string
	Reason string
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("cannot instantiate %s: %s", e.Type, e.Reason)
}
