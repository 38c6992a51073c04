// Package app contains the core application logic. It wires configuration,
// type sources, the registry and the resolver together, and runs the
// schema report, decoupled from any specific entrypoint like a CLI.
package app
