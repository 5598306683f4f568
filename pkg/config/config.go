// Package config loads the optional pullrefresh.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/pullrefresh/pkg/pull"
)

// FileName is the project configuration file looked up by LoadOptional.
const FileName = "pullrefresh.yaml"

const (
	defaultPageSize  = 20
	defaultPages     = 3
	defaultLoadDelay = 800 * time.Millisecond
	defaultLogLevel  = "info"
)

// Config represents the optional pullrefresh.yaml configuration.
type Config struct {
	Pull PullConfig `yaml:"pull"`
	Demo DemoConfig `yaml:"demo"`
	Log  LogConfig  `yaml:"log"`
}

// PullConfig mirrors pull.Config. Zero values mean "use the host default".
type PullConfig struct {
	FooterHeight float64 `yaml:"footer_height,omitempty"`
	PullDistance float64 `yaml:"pull_distance,omitempty"`
	MaxShowTime  string  `yaml:"max_show_time,omitempty"`
}

// DemoConfig configures the terminal demo feed.
type DemoConfig struct {
	Title     string `yaml:"title,omitempty"`
	PageSize  int    `yaml:"page_size,omitempty"`
	Pages     int    `yaml:"pages,omitempty"`
	LoadDelay string `yaml:"load_delay,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	Pull       pull.Config
	Title      string
	PageSize   int
	Pages      int
	LoadDelay  time.Duration
	LogLevel   string
}

// LoadOptional reads pullrefresh.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	return Parse(data)
}

// Parse decodes a pullrefresh.yaml document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// ToPull converts the pull section into a pull.Config. Zero fields are
// left for pull.Config.WithDefaults.
func (c PullConfig) ToPull() (pull.Config, error) {
	var out pull.Config
	if c.FooterHeight < 0 {
		return out, fmt.Errorf("pull.footer_height must be positive, got %v", c.FooterHeight)
	}
	if c.PullDistance < 0 {
		return out, fmt.Errorf("pull.pull_distance must be positive, got %v", c.PullDistance)
	}
	maxShow, err := parseDuration("pull.max_show_time", c.MaxShowTime)
	if err != nil {
		return out, err
	}
	out.FooterHeight = c.FooterHeight
	out.PullDistance = c.PullDistance
	out.MaxShowTime = maxShow
	return out, nil
}

// Resolve loads pullrefresh.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(dir)
}

// Resolve applies defaults to an already loaded configuration.
func (cfg *Config) Resolve(dir string) (*Resolved, error) {
	pullCfg, err := cfg.Pull.ToPull()
	if err != nil {
		return nil, err
	}

	if cfg.Demo.PageSize < 0 {
		return nil, fmt.Errorf("demo.page_size must be positive, got %d", cfg.Demo.PageSize)
	}
	if cfg.Demo.Pages < 0 {
		return nil, fmt.Errorf("demo.pages must be positive, got %d", cfg.Demo.Pages)
	}
	loadDelay, err := parseDuration("demo.load_delay", cfg.Demo.LoadDelay)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Demo.LoadDelay) == "" {
		loadDelay = defaultLoadDelay
	}

	modulePath := modulePath(dir)
	title := strings.TrimSpace(cfg.Demo.Title)
	if title == "" {
		title = defaultTitle(modulePath, dir)
	}

	level := strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if level == "" {
		level = defaultLogLevel
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		Pull:       pullCfg,
		Title:      title,
		PageSize:   orDefault(cfg.Demo.PageSize, defaultPageSize),
		Pages:      orDefault(cfg.Demo.Pages, defaultPages),
		LoadDelay:  loadDelay,
		LogLevel:   level,
	}, nil
}

// Default returns the resolved defaults for dir without reading any file.
func Default(dir string) *Resolved {
	r, _ := (&Config{}).Resolve(dir)
	return r
}

// FindProjectRoot walks up from the current directory to find go.mod or
// pullrefresh.yaml. Outside any project it returns the current directory.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := start
	for {
		for _, name := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

func parseDuration(field, value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", field, value)
	}
	return d, nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func modulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

func defaultTitle(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "pullrefresh"
	}
	return base
}
