// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for file discovery, parsing, and translating
// the decoded blocks into the format-agnostic config.Model.
package hcl
