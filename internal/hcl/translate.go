package hcl

import (
	"context"
	"fmt"

	"github.com/vk/avrotype/internal/config"
	"github.com/vk/avrotype/internal/ctxlog"
	"github.com/vk/avrotype/internal/typename"
)

// translate converts the blocks decoded from one file into a partial model.
// Alias names and targets are normalized so they match the keys the
// registry is searched with.
func (l *Loader) translate(ctx context.Context, root *fileRoot) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := config.NewModel()

	if root.Resolver != nil {
		model.PreferredModule = root.Resolver.PreferredModule
		for _, name := range root.Resolver.Modules {
			if name == "" {
				return nil, fmt.Errorf("resolver block lists an empty module name")
			}
			if model.HasModule(name) {
				return nil, fmt.Errorf("module '%s' listed more than once", name)
			}
			model.Modules = append(model.Modules, name)
		}
	}

	for _, a := range root.Aliases {
		from := typename.Normalize(a.Name)
		to := typename.Normalize(a.Target)
		if from == "" || to == "" {
			return nil, fmt.Errorf("alias %q must have a name and a target", a.Name)
		}
		if from == to {
			return nil, fmt.Errorf("alias '%s' refers to itself", from)
		}
		if _, exists := model.Aliases[from]; exists {
			return nil, fmt.Errorf("alias '%s' declared more than once", from)
		}
		logger.Debug("Translated alias.", "from", from, "to", to)
		model.Aliases[from] = to
	}
	return model, nil
}
