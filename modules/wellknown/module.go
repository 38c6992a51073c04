// Package wellknown provides a type source for standard library and common
// third-party types that schemas frequently name, such as timestamps,
// durations, UUIDs and arbitrary precision numbers.
package wellknown

import (
	"encoding/json"
	"math/big"
	"net"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/vk/avrotype/registry"
	"github.com/zclconf/go-cty/cty"
)

// Name is the source name the module is loaded under.
const Name = "wellknown"

// Module loads the wellknown source into a registry.
type Module struct{}

// Register loads the module's source into r.
func (m *Module) Register(r *registry.Registry) {
	r.Load(New())
}

// New builds the wellknown source.
func New() *registry.Module {
	src := registry.NewModule(Name)

	registry.Register[time.Time](src, "time.Time", registry.WithConstructor(func() any { return new(time.Time) }))
	registry.Register[time.Duration](src, "time.Duration")
	registry.Register[time.Location](src, "time.Location", registry.WithConstructor(func() any { return new(time.Location) }))

	registry.Register[uuid.UUID](src, "uuid.UUID", registry.WithConstructor(func() any { return new(uuid.UUID) }))

	registry.Register[big.Int](src, "big.Int", registry.WithConstructor(func() any { return new(big.Int) }))
	registry.Register[big.Rat](src, "big.Rat", registry.WithConstructor(func() any { return new(big.Rat) }))
	registry.Register[big.Float](src, "big.Float", registry.WithConstructor(func() any { return new(big.Float) }))

	registry.Register[json.RawMessage](src, "json.RawMessage", registry.WithConstructor(func() any { return json.RawMessage("null") }))
	registry.Register[json.Number](src, "json.Number", registry.WithConstructor(func() any { return json.Number("0") }))

	registry.Register[net.IP](src, "net.IP", registry.WithConstructor(func() any { return net.IPv4(0, 0, 0, 0) }))
	registry.Register[url.URL](src, "url.URL")

	// Values coming from HCL configuration.
	registry.Register[cty.Value](src, "cty.Value", registry.WithConstructor(func() any { return cty.NilVal }))
	registry.Register[cty.Type](src, "cty.Type", registry.WithConstructor(func() any { return cty.DynamicPseudoType }))

	return src
}
