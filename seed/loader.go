package seed

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

/* Loader manages hook declarations from a seed YAML file
 * Provides in-memory lookup before they are applied to a registry
 */

// Config represents the structure of the seed file
type Config struct {
	Hooks []HookConfig `yaml:"hooks"`
}

// HookConfig represents a single hook in the YAML file
type HookConfig struct {
	Slug        string         `yaml:"slug"`
	Description string         `yaml:"description"`
	Metadata    map[string]any `yaml:"metadata"`
}

// Loader holds the loaded hooks
type Loader struct {
	hooks map[string]*Hook
}

// NewLoader creates a new seed loader
func NewLoader() *Loader {
	return &Loader{
		hooks: make(map[string]*Hook),
	}
}

// Load reads and parses the seed file
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}
	return l.Parse(data)
}

// Parse validates and stores the hooks declared in data
func (l *Loader) Parse(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing seed YAML: %w", err)
	}

	for i, hc := range config.Hooks {
		h := newHook(hc)
		if err := h.Validate(); err != nil {
			return fmt.Errorf("validating hook #%d: %w", i+1, err)
		}
		if _, dup := l.hooks[h.Slug]; dup {
			return fmt.Errorf("validating hook #%d: slug %q declared twice", i+1, h.Slug)
		}
		l.hooks[h.Slug] = h
	}

	return nil
}

// Get retrieves a hook by its slug
func (l *Loader) Get(slug string) (*Hook, error) {
	h, exists := l.hooks[slug]
	if !exists {
		return nil, fmt.Errorf("seed hook not found: %s", slug)
	}
	return h, nil
}

// List returns all loaded hooks ordered by slug
func (l *Loader) List() []*Hook {
	hooks := make([]*Hook, 0, len(l.hooks))
	for _, h := range l.hooks {
		hooks = append(hooks, h)
	}
	sort.Slice(hooks, func(i, j int) bool { return hooks[i].Slug < hooks[j].Slug })
	return hooks
}

// Exists checks if a slug is declared
func (l *Loader) Exists(slug string) bool {
	_, exists := l.hooks[slug]
	return exists
}
