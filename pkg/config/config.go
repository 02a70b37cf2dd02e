// Package config resolves the optional streamwidget.yaml project file.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/streamwidget/pkg/bridge"
	"github.com/go-drift/streamwidget/pkg/errors"
)

// FileName is the configuration file looked up in the project root.
const FileName = "streamwidget.yaml"

// ModeEnv overrides the configured mode when set.
const ModeEnv = "STREAMWIDGET_MODE"

// Config represents the optional streamwidget.yaml configuration.
type Config struct {
	App  AppConfig `yaml:"app"`
	Mode string    `yaml:"mode,omitempty"`
	Log  LogConfig `yaml:"log"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	Mode       bridge.Mode
	LogLevel   slog.Level
}

// LoadOptional reads streamwidget.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &errors.Error{Op: "config.load", Kind: errors.KindConfig,
			Err: fmt.Errorf("failed to parse %s: %w", FileName, err)}
	}

	return &cfg, nil
}

// Resolve loads streamwidget.yaml (if present) and resolves defaults. A
// missing go.mod is not an error; the directory name is used instead.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	modeName := strings.TrimSpace(cfg.Mode)
	if env := strings.TrimSpace(os.Getenv(ModeEnv)); env != "" {
		modeName = env
	}
	mode := bridge.Development
	if modeName != "" {
		mode, err = bridge.ParseMode(modeName)
		if err != nil {
			return nil, &errors.Error{Op: "config.resolve", Kind: errors.KindConfig, Err: err}
		}
	}

	level := slog.LevelInfo
	if name := strings.TrimSpace(cfg.Log.Level); name != "" {
		if err := level.UnmarshalText([]byte(name)); err != nil {
			return nil, &errors.Error{Op: "config.resolve", Kind: errors.KindConfig,
				Err: fmt.Errorf("invalid log level %q: %w", name, err)}
		}
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		AppName:    appName,
		Mode:       mode,
		LogLevel:   level,
	}, nil
}

// Logger returns a text logger writing to w at the resolved level, tagged
// with the app name.
func (r *Resolved) Logger(w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: r.LogLevel})
	return slog.New(handler).With(slog.String("app", r.AppName))
}

// BridgeOptions returns the factory options matching this configuration.
func (r *Resolved) BridgeOptions(logger *slog.Logger) []bridge.Option {
	opts := []bridge.Option{bridge.WithMode(r.Mode)}
	if logger != nil {
		opts = append(opts, bridge.WithLogger(logger))
	}
	return opts
}

// FindProjectRoot walks up from start to find go.mod.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		modName, _, ok := module.SplitPathVersion(modulePath)
		if ok {
			parts := strings.Split(modName, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "streamwidget_app"
	}
	return base
}
