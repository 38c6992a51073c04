package app

import (
	"github.com/vk/avrotype/modules/wellknown"
	"github.com/vk/avrotype/registry"
)

// Module is a bundled type source that loads itself into a registry.
type Module interface {
	Register(r *registry.Registry)
}

// bundledModules is the definitive list of type sources compiled into the
// avrotype binary, by the name configuration refers to them with.
var bundledModules = map[string]Module{
	wellknown.Name: &wellknown.Module{},
}

// defaultModules are loaded when the configuration does not list any.
var defaultModules = []string{wellknown.Name}
