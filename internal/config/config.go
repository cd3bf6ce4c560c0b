// ABOUTME: Configuration for the scribble store and CLI.
// ABOUTME: YAML file under the XDG config directory with sensible defaults.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Tag backends.
const (
	BackendSymlink  = "symlink"
	BackendHardLink = "hardlink"
	BackendKV       = "kv"
)

// Config holds store and CLI settings.
type Config struct {
	// Root is the store directory holding objects/ and tags/.
	Root string `yaml:"root"`

	// TagBackend selects how tag associations are persisted.
	TagBackend string `yaml:"tag_backend"`

	// StrictTags refuses to tag ids with no stored object (default: true).
	StrictTags bool `yaml:"strict_tags"`

	// ListLimit is the default number of entries shown by list.
	ListLimit int `yaml:"list_limit"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Root:       DefaultRoot(),
		TagBackend: BackendSymlink,
		StrictTags: true,
		ListLimit:  20,
	}
}

// DefaultRoot is $SCRIBBLE_HOME, falling back to ~/.scribble.
func DefaultRoot() string {
	if root := os.Getenv("SCRIBBLE_HOME"); root != "" {
		return root
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".scribble")
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "scribble")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Validate checks the values a user may have edited by hand.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.New("root must be set")
	}
	switch c.TagBackend {
	case BackendSymlink, BackendHardLink, BackendKV:
	default:
		return fmt.Errorf("unknown tag_backend %q (want %s, %s or %s)",
			c.TagBackend, BackendSymlink, BackendHardLink, BackendKV)
	}
	if c.ListLimit < 0 {
		return fmt.Errorf("list_limit must not be negative, got %d", c.ListLimit)
	}
	return nil
}

// Load reads configuration from path, returning defaults if the file
// does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // Config path comes from XDG or the user
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfig loads configuration from the default path.
func LoadConfig() (*Config, error) {
	return Load(ConfigPath())
}

// Save writes configuration to path.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// SaveConfig writes configuration to the default path.
func SaveConfig(cfg *Config) error {
	return Save(ConfigPath(), cfg)
}

// Set assigns a single setting by its YAML key. The value is parsed the
// way it would be in the config file.
func (c *Config) Set(key, value string) error {
	switch key {
	case "root", "tag_backend", "strict_tags", "list_limit":
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	doc := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: key},
			{Kind: yaml.ScalarNode, Value: value},
		},
	}
	updated := *c
	if err := doc.Decode(&updated); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	*c = updated
	return nil
}

// Update sets a single key in the file at path. Only that key changes;
// keys the file leaves out stay out, so defaults such as $SCRIBBLE_HOME
// are never written back. Comments in the file are kept.
func Update(path, key, value string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}

	var encoded yaml.Node
	if err := encoded.Encode(cfg); err != nil {
		return err
	}
	typed := mappingValue(&encoded, key)
	if typed == nil {
		return fmt.Errorf("unknown setting %q", key)
	}

	var doc yaml.Node
	data, err := os.ReadFile(path) //nolint:gosec // Config path comes from XDG or the user
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return fmt.Errorf("parse %s: top level is not a mapping", path)
	}

	if existing := mappingValue(mapping, key); existing != nil {
		*existing = *typed
	} else {
		mapping.Content = append(mapping.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, typed)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o600)
}

// mappingValue returns the value node stored under key, or nil.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}
