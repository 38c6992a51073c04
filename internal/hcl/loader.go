package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/avrotype/internal/config"
	"github.com/vk/avrotype/internal/ctxlog"
	"github.com/vk/avrotype/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Resolver *resolverBlock `hcl:"resolver,block"`
	Aliases  []*aliasBlock  `hcl:"alias,block"`
	Remain   hcl.Body       `hcl:",remain"`
}

// resolverBlock is the `resolver` block.
type resolverBlock struct {
	PreferredModule string   `hcl:"preferred_module,optional"`
	Modules         []string `hcl:"modules,optional"`
}

// aliasBlock is an `alias "<name>"` block.
type aliasBlock struct {
	Name   string `hcl:"name,label"`
	Target string `hcl:"target"`
}

// Load parses every .hcl file found under paths and merges them into a single
// model. Paths that do not exist are skipped.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := fsutil.CollectFiles(paths, true, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	model := config.NewModel()
	parser := hclparse.NewParser()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		part, err := l.translate(ctx, &root)
		if err != nil {
			return nil, fmt.Errorf("in HCL file %s: %w", file, err)
		}
		if err := model.Merge(part); err != nil {
			return nil, fmt.Errorf("in HCL file %s: %w", file, err)
		}
	}

	logger.Debug("HCL loading complete.", "modules", len(model.Modules), "aliases", len(model.Aliases), "preferred", model.PreferredModule)
	return model, nil
}
