package discovery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"wtr/internal/domain"
)

// Manifest is the generator's description of a test run
type Manifest struct {
	GeneratedAt string            `json:"generated_at,omitempty"`
	Target      string            `json:"target,omitempty"`
	Cases       []domain.TestCase `json:"cases"`
}

// LoadManifest reads the generator manifest. Categories are normalized,
// nameless cases get positional names, and case code is loaded from
// referenced files relative to the manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	baseDir := filepath.Dir(path)
	for i := range manifest.Cases {
		c := &manifest.Cases[i]
		if c.Name == "" {
			c.Name = fmt.Sprintf("case-%d", i+1)
		}
		c.Category = domain.ParseCategory(string(c.Category))

		if c.Code == "" && c.File != "" {
			file := c.File
			if !filepath.IsAbs(file) {
				file = filepath.Join(baseDir, file)
			}
			content, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("failed to read case file %s: %w", c.File, err)
			}
			c.Code = string(content)
		}
	}
	return &manifest, nil
}

// ManifestExists reports whether a manifest file is present at path.
func ManifestExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
