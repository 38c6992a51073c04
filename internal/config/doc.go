// Package config defines the format-agnostic configuration model for the
// application and the Loader interface used to read it.
//
// The `config.Model` decides which type sources are loaded into the
// registry, which of them is searched first, and which aliases apply.
// Concrete loaders, such as the HCL one, live in separate packages.
package config
