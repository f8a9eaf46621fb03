package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// GetPath retrieves a value from the configuration using a dot-notation path.
func (c *Config) GetPath(path string) (any, error) {
	// Convert to map for generic traversal
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return getValue(m, path)
}

func getValue(m map[string]any, path string) (any, error) {
	parts := strings.Split(path, ".")
	var current any = m

	for _, part := range parts {
		if part == "" {
			continue
		}

		m, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("path %q breaks at %q (not a map)", path, part)
		}

		val, exists := m[part]
		if !exists {
			return nil, fmt.Errorf("path %q: key %q not found", path, part)
		}
		current = val
	}

	return current, nil
}

// SetPath modifies a configuration value at the specified path. The edit is
// applied to the raw file text so ${VAR} placeholders survive on disk. The
// candidate is validated before anything is written; when persist is false
// validation is the only effect.
func (c *Config) SetPath(path, value string, persist bool) error {
	if c.Path == "" {
		return fmt.Errorf("no valid configuration source found")
	}

	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fmt.Errorf("no valid configuration source found")
	}

	target, err := findNode(root.Content[0], path, true)
	if err != nil {
		return fmt.Errorf("failed to navigate/create path %q: %w", path, err)
	}

	target.Kind = yaml.ScalarNode
	target.Value = value
	target.Tag = guessTag(value)
	target.Content = nil

	candidate, err := yaml.Marshal(&root)
	if err != nil {
		return err
	}

	if err := validateCandidate(candidate); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if !persist {
		return nil
	}

	if err := c.persistCandidate(candidate); err != nil {
		return err
	}

	return c.refreshManifest()
}

func findNode(node *yaml.Node, path string, create bool) (*yaml.Node, error) {
	parts := strings.Split(path, ".")
	current := node

	for _, part := range parts {
		if current.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("not a mapping node")
		}

		found := false
		for i := 0; i < len(current.Content); i += 2 {
			keyNode := current.Content[i]
			if keyNode.Value == part {
				current = current.Content[i+1]
				found = true
				break
			}
		}

		if !found {
			if create {
				// Add new key-value pair to mapping
				keyNode := &yaml.Node{
					Kind:  yaml.ScalarNode,
					Tag:   "!!str",
					Value: part,
				}
				valueNode := &yaml.Node{
					Kind: yaml.MappingNode, // Default to mapping if we have more parts
					Tag:  "!!map",
				}
				// If this is the last part, it will be overwritten by the value anyway
				current.Content = append(current.Content, keyNode, valueNode)
				current = valueNode
			} else {
				return nil, fmt.Errorf("key %q not found", part)
			}
		}
	}

	return current, nil
}

func guessTag(v string) string {
	if v == "true" || v == "false" {
		return "!!bool"
	}
	// Check for integer
	isDigit := true
	for i, c := range v {
		if i == 0 && c == '-' {
			continue
		}
		if c < '0' || c > '9' {
			isDigit = false
			break
		}
	}
	if isDigit && v != "" && v != "-" {
		return "!!int"
	}
	return "!!str"
}

// validateCandidate runs the candidate file content through the same
// interpolation, defaulting, and validation steps as Load.
func validateCandidate(candidate []byte) error {
	interpolated := interpolateEnv(string(candidate))

	var cfg Config
	if err := yaml.Unmarshal([]byte(interpolated), &cfg); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyConfigDefaults(&cfg)
	return validate(&cfg)
}

// persistCandidate writes the candidate, keeping a .bak of the original and
// preserving the file mode.
func (c *Config) persistCandidate(candidate []byte) error {
	original, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read original config file: %w", err)
	}

	mode := os.FileMode(0644)
	if info, statErr := os.Stat(c.Path); statErr == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(c.Path+".bak", original, mode); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	if err := os.WriteFile(c.Path, candidate, mode); err != nil {
		return fmt.Errorf("failed to persist config change: %w", err)
	}

	return nil
}

// refreshManifest regenerates the .checksums manifest after an authorized
// edit so a locked configuration stays loadable. A missing manifest means
// the directory is not locked and there is nothing to refresh.
func (c *Config) refreshManifest() error {
	dir := filepath.Dir(c.Path)

	manifest, err := LoadChecksums(dir)
	if err != nil {
		return nil
	}

	files := make([]string, 0, len(manifest.Hashes))
	for name := range manifest.Hashes {
		files = append(files, name)
	}
	sort.Strings(files)

	if err := GenerateChecksums(dir, files); err != nil {
		return fmt.Errorf("failed to refresh checksums: %w", err)
	}

	return nil
}
