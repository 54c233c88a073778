package registry

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/tomeview/internal/ctxlog"
	"github.com/vk/tomeview/internal/fsutil"
	"github.com/vk/tomeview/internal/schema"
)

// ManifestExtension is the file extension topic manifests use.
const ManifestExtension = ".hcl"

// LoadManifestsRecursively parses every manifest under path (a directory or
// a single file) and registers the topic types they declare.
func (r *Registry) LoadManifestsRecursively(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading topic manifests...", "path", path)

	filePaths, err := fsutil.FindFilesByExtension(path, ManifestExtension)
	if err != nil {
		logger.Error("Failed to walk manifest path", "path", path, "error", err)
		return fmt.Errorf("failed to find manifests in %s: %w", path, err)
	}

	if len(filePaths) == 0 {
		logger.Warn("No topic manifests found in path", "path", path)
		return nil
	}

	logger.Debug("Found manifests to load", "files", filePaths)

	parser := hclparse.NewParser()
	loaded := 0
	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		types, diags := schema.ParseManifest(ctx, hclFile, filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to process topic manifest %s: %w", filePath, diags)
		}
		for _, t := range types {
			if err := r.Register(t); err != nil {
				return err
			}
		}
		loaded += len(types)
		logger.Debug("Successfully loaded topic types from manifest", "file", filePath, "types", len(types))
	}

	logger.Info("Registry loaded successfully.", "topic_types_loaded", loaded)
	return nil
}
