// Package registry lists speech model files present in the local cache dir.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"whisperd/internal/common/fsutil"
	"whisperd/pkg/types"
)

// LoadDir scans a directory for ggml model files (*.bin) and builds a model
// list from filenames. ID is the full filename; Path is absolute. An empty
// dir argument yields an empty list.
func LoadDir(dir string) ([]types.Model, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, nil
	}
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []types.Model
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".bin") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		models = append(models, types.Model{
			ID:        name,
			Name:      name,
			Path:      filepath.Join(abs, name),
			SizeBytes: info.Size(),
		})
	}
	return models, nil
}
