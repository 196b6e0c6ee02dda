package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/reorder/pkg/binding"
	"github.com/go-drift/reorder/pkg/dom"
	"github.com/go-drift/reorder/pkg/logging"
)

// File names LoadOptional looks for, in order.
const (
	YAMLFile = "reorder.yaml"
	TOMLFile = "reorder.toml"
)

// Config represents the optional reorder.yaml or reorder.toml configuration.
type Config struct {
	Title     string       `yaml:"title,omitempty" toml:"title"`
	Directive string       `yaml:"directive,omitempty" toml:"directive"`
	Log       LogConfig    `yaml:"log,omitempty" toml:"log"`
	Lists     []ListConfig `yaml:"lists,omitempty" toml:"lists"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty" toml:"level"`
}

// ListConfig describes one reorderable list.
type ListConfig struct {
	ID     string   `yaml:"id,omitempty" toml:"id"`
	Group  string   `yaml:"group,omitempty" toml:"group"`
	Handle string   `yaml:"handle,omitempty" toml:"handle"`
	Items  []string `yaml:"items" toml:"items"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	Source     string
	ModulePath string
	Title      string
	Directive  string
	LogLevel   zerolog.Level
	Lists      []ListConfig
}

// DefaultHandle is the handle selector used when a list names none.
const DefaultHandle = ".handle"

// DefaultLists is the demo content used when no lists are configured: two
// lists sharing a group so rows can travel between them, and one isolated.
func DefaultLists() []ListConfig {
	return []ListConfig{
		{ID: "todo", Group: "tasks", Handle: DefaultHandle, Items: []string{"write tests", "review patch", "update changelog"}},
		{ID: "done", Group: "tasks", Handle: DefaultHandle, Items: []string{"triage issues", "cut release"}},
		{ID: "fruit", Group: "fruit", Handle: DefaultHandle, Items: []string{"apple", "banana", "cherry", "date"}},
	}
}

// Load reads a configuration file, choosing the decoder by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (want .yaml or .toml)", filepath.Ext(path))
	}
	return &cfg, nil
}

// LoadOptional reads reorder.yaml or reorder.toml from dir if present. It
// returns the path it loaded, or "" when neither file exists.
func LoadOptional(dir string) (*Config, string, error) {
	for _, name := range []string{YAMLFile, TOMLFile} {
		path := filepath.Join(dir, name)
		cfg, err := Load(path)
		if err == nil {
			return cfg, path, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", err
		}
	}
	return &Config{}, "", nil
}

// Resolve loads the optional configuration in dir and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, source, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return resolve(dir, source, cfg)
}

// ResolveFile loads an explicit configuration file and resolves defaults
// relative to the file's directory.
func ResolveFile(path string) (*Resolved, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return resolve(filepath.Dir(path), path, cfg)
}

func resolve(dir, source string, cfg *Config) (*Resolved, error) {
	modPath := modulePath(dir)

	title := strings.TrimSpace(cfg.Title)
	if title == "" {
		title = defaultTitle(modPath, dir)
	}

	directive := strings.TrimSpace(cfg.Directive)
	if directive == "" {
		directive = binding.DefaultName
	}
	if strings.ContainsAny(directive, " \t\r\n") {
		return nil, fmt.Errorf("directive name cannot contain whitespace (got %q)", directive)
	}

	level := zerolog.InfoLevel
	if raw := strings.TrimSpace(cfg.Log.Level); raw != "" {
		lvl, ok := logging.ParseLevel(raw)
		if !ok {
			return nil, fmt.Errorf("log.level: unknown level %q", raw)
		}
		level = lvl
	}

	lists := cfg.Lists
	if len(lists) == 0 {
		lists = DefaultLists()
	}
	lists, err := normalizeLists(lists)
	if err != nil {
		return nil, err
	}

	return &Resolved{
		Root:       dir,
		Source:     source,
		ModulePath: modPath,
		Title:      title,
		Directive:  directive,
		LogLevel:   level,
		Lists:      lists,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod. It
// falls back to the current directory outside a Go module.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for dir := start; ; {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

// modulePath returns the module path declared by dir/go.mod, or "".
func modulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

func defaultTitle(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		if modName, _, ok := module.SplitPathVersion(modulePath); ok {
			parts := strings.Split(modName, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "reorder"
	}
	return base
}

func normalizeLists(in []ListConfig) ([]ListConfig, error) {
	out := make([]ListConfig, 0, len(in))
	seen := make(map[string]bool, len(in))
	for i, l := range in {
		l.ID = strings.TrimSpace(l.ID)
		if l.ID == "" {
			l.ID = fmt.Sprintf("list-%d", i)
		}
		if seen[l.ID] {
			return nil, fmt.Errorf("lists[%d]: duplicate id %q", i, l.ID)
		}
		seen[l.ID] = true

		l.Group = strings.TrimSpace(l.Group)
		l.Handle = strings.TrimSpace(l.Handle)
		if l.Handle == "" {
			l.Handle = DefaultHandle
		}
		if _, err := dom.ParseSelector(l.Handle); err != nil {
			return nil, fmt.Errorf("lists[%d].handle: %w", i, err)
		}

		if len(l.Items) == 0 {
			return nil, fmt.Errorf("lists[%d] (%s): no items", i, l.ID)
		}
		items := make([]string, len(l.Items))
		for j, item := range l.Items {
			item = strings.TrimSpace(item)
			if item == "" {
				return nil, fmt.Errorf("lists[%d].items[%d]: empty item", i, j)
			}
			if slices.Contains(items[:j], item) {
				return nil, fmt.Errorf("lists[%d].items[%d]: duplicate item %q", i, j, item)
			}
			items[j] = item
		}
		l.Items = items
		out = append(out, l)
	}
	return out, nil
}
