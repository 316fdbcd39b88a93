package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spf13/viper"
)

// View is a saved search: query text plus the tag scope and root it runs
// against.
type View struct {
	Query string   `yaml:"query"          json:"query"`
	Tags  []string `yaml:"tags,omitempty" json:"tags"`
	Root  string   `yaml:"root,omitempty" json:"root"`
}

type Config struct {
	DefaultRoot       string          `yaml:"default_root"       json:"default_root"`
	Workers           int             `yaml:"workers"            json:"workers"`
	QueueCap          int             `yaml:"queue_cap"          json:"queue_cap"`
	MaxResults        int             `yaml:"max_results"        json:"max_results"`
	ResultsPerTick    int             `yaml:"results_per_tick"   json:"results_per_tick"`
	ResultBuffer      int             `yaml:"result_buffer"      json:"result_buffer"`
	IgnoredExtensions []string        `yaml:"ignored_extensions" json:"ignored_extensions"`
	SkipDirs          []string        `yaml:"skip_dirs"          json:"skip_dirs"`
	FolderColor       string          `yaml:"folder_color"       json:"folder_color"`
	MaxRecent         int             `yaml:"max_recent"         json:"max_recent"`
	Favorites         []string        `yaml:"favorites"          json:"favorites"`
	Views             map[string]View `yaml:"views"              json:"views"`
	ViewOrder         []string        `yaml:"view_order"         json:"view_order"`
}

const (
	defaultQueueCap       = 512
	defaultMaxResults     = 256
	defaultResultsPerTick = 10
	defaultResultBuffer   = 64
	defaultMaxRecent      = 50
	defaultFolderColor    = "#E5C07B"
)

var defaultSkipDirs = []string{".git", "node_modules", "target"}

func (cfg *Config) ensureDefaults() {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.QueueCap <= 0 {
		cfg.QueueCap = defaultQueueCap
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.ResultsPerTick <= 0 {
		cfg.ResultsPerTick = defaultResultsPerTick
	}
	if cfg.ResultBuffer <= 0 {
		cfg.ResultBuffer = defaultResultBuffer
	}
	if cfg.MaxRecent <= 0 {
		cfg.MaxRecent = defaultMaxRecent
	}
	if strings.TrimSpace(cfg.FolderColor) == "" {
		cfg.FolderColor = defaultFolderColor
	}
	if cfg.SkipDirs == nil {
		cfg.SkipDirs = append([]string(nil), defaultSkipDirs...)
	}
	if cfg.Views == nil {
		cfg.Views = make(map[string]View)
	}

	normalized := cfg.IgnoredExtensions[:0]
	for _, ext := range cfg.IgnoredExtensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext == "" {
			continue
		}
		normalized = append(normalized, ext)
	}
	cfg.IgnoredExtensions = normalized
}

// ValidateColor accepts lipgloss-style hex notation ('#RGB' or '#RRGGBB').
// An empty value is valid; defaults fill it in.
func ValidateColor(color string) error {
	c := strings.TrimSpace(color)
	if c == "" {
		return nil
	}

	valid := strings.HasPrefix(c, "#") && (len(c) == 4 || len(c) == 7)
	if valid {
		for _, r := range c[1:] {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				valid = false
				break
			}
		}
	}
	if !valid {
		return fmt.Errorf("invalid folder color: %q. Please use hex notation such as %q.", color, defaultFolderColor)
	}

	return nil
}

func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ensureDefaults()

	if err := ValidateColor(cfg.FolderColor); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return GetConfigPath(homeDir)
}

func (cfg *Config) syncViper() {
	viper.Set("default_root", cfg.DefaultRoot)
	viper.Set("workers", cfg.Workers)
	viper.Set("queue_cap", cfg.QueueCap)
	viper.Set("max_results", cfg.MaxResults)
	viper.Set("results_per_tick", cfg.ResultsPerTick)
	viper.Set("result_buffer", cfg.ResultBuffer)
	viper.Set("folder_color", cfg.FolderColor)
	viper.Set("max_recent", cfg.MaxRecent)
	if cfg.IgnoredExtensions == nil {
		viper.Set("ignored_extensions", []string{})
	} else {
		viper.Set("ignored_extensions", append([]string(nil), cfg.IgnoredExtensions...))
	}
	if cfg.SkipDirs == nil {
		viper.Set("skip_dirs", []string{})
	} else {
		viper.Set("skip_dirs", append([]string(nil), cfg.SkipDirs...))
	}
	if cfg.Favorites == nil {
		viper.Set("favorites", []string{})
	} else {
		viper.Set("favorites", append([]string(nil), cfg.Favorites...))
	}
}

func (cfg *Config) Save() error {
	if err := ValidateColor(cfg.FolderColor); err != nil {
		return err
	}

	cfg.syncViper()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

func (cfg *Config) HasFavorite(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	for _, fav := range cfg.Favorites {
		if fav == abs {
			return true
		}
	}
	return false
}

func (cfg *Config) AddFavorite(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("favorite target: %w", err)
	}

	for _, fav := range cfg.Favorites {
		if fav == abs {
			return fmt.Errorf("favorite %q already exists", abs)
		}
	}

	cfg.Favorites = append(cfg.Favorites, abs)
	return cfg.Save()
}

func (cfg *Config) RemoveFavorite(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	for i, fav := range cfg.Favorites {
		if fav == abs {
			cfg.Favorites = append(cfg.Favorites[:i], cfg.Favorites[i+1:]...)
			return cfg.Save()
		}
	}

	return fmt.Errorf("favorite %q does not exist", abs)
}

// ToggleFavorite reports whether the path ended up favorited.
func (cfg *Config) ToggleFavorite(path string) (bool, error) {
	if cfg.HasFavorite(path) {
		return false, cfg.RemoveFavorite(path)
	}

	return true, cfg.AddFavorite(path)
}

func (cfg *Config) AddView(name string, view View) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("view name cannot be empty")
	}

	if cfg.Views == nil {
		cfg.Views = make(map[string]View)
	}

	cfg.Views[name] = view
	cfg.ViewOrder = appendViewOrder(cfg.ViewOrder, name)

	return cfg.Save()
}

func (cfg *Config) RemoveView(name string) error {
	if cfg.Views == nil {
		return fmt.Errorf("no views are configured")
	}

	if _, ok := cfg.Views[name]; !ok {
		return fmt.Errorf("view %q does not exist", name)
	}

	delete(cfg.Views, name)
	cfg.ViewOrder = removeFromOrder(cfg.ViewOrder, name)

	return cfg.Save()
}

func (cfg *Config) GetView(name string) (View, bool) {
	view, ok := cfg.Views[name]
	return view, ok
}

// ViewNames lists views in their configured order, with any stragglers not in
// ViewOrder appended alphabetically.
func (cfg *Config) ViewNames() []string {
	names := make([]string, 0, len(cfg.Views))
	seen := make(map[string]struct{}, len(cfg.Views))

	for _, name := range cfg.ViewOrder {
		if _, ok := cfg.Views[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	var rest []string
	for name := range cfg.Views {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(names, rest...)
}

func (cfg *Config) SetViewOrder(order []string) error {
	deduped := make([]string, 0, len(order))
	seen := make(map[string]struct{}, len(order))

	for _, name := range order {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}

		if _, exists := seen[trimmed]; exists {
			continue
		}

		seen[trimmed] = struct{}{}
		deduped = append(deduped, trimmed)
	}

	cfg.ViewOrder = deduped
	return cfg.Save()
}

func appendViewOrder(order []string, name string) []string {
	filtered := removeFromOrder(order, name)
	return append(filtered, name)
}

func removeFromOrder(order []string, target string) []string {
	if len(order) == 0 {
		return order
	}

	filtered := order[:0]
	for _, name := range order {
		if name == target {
			continue
		}
		filtered = append(filtered, name)
	}

	return filtered
}
