package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"c0/internal/trace"
)

// Emit selects the artifact written by `c0 build`.
type Emit string

const (
	EmitBinary Emit = "binary" // msgpack .o0
	EmitText   Emit = "text"   // listing .s0
)

// Ext is the output file extension for the emit kind.
func (e Emit) Ext() string {
	if e == EmitText {
		return ".s0"
	}
	return ".o0"
}

func ParseEmit(s string) (Emit, error) {
	switch Emit(strings.ToLower(strings.TrimSpace(s))) {
	case EmitBinary:
		return EmitBinary, nil
	case EmitText:
		return EmitText, nil
	}
	return "", fmt.Errorf("%w: emit %q (expected: binary|text)", ErrInvalidConfig, s)
}

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the decoded c0.toml. Zero values are replaced by defaults.
type Config struct {
	Build BuildConfig `toml:"build"`
	Trace TraceConfig `toml:"trace"`

	// Path is the manifest the config came from; empty for defaults.
	Path string `toml:"-"`
}

type BuildConfig struct {
	OutDir string `toml:"out_dir"`
	Emit   Emit   `toml:"emit"`
	Jobs   int    `toml:"jobs"`
	Cache  bool   `toml:"cache"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// Default is the configuration used when no c0.toml exists.
func Default() Config {
	return Config{
		Build: BuildConfig{
			OutDir: "build",
			Emit:   EmitBinary,
			Jobs:   0, // GOMAXPROCS
			Cache:  true,
		},
		Trace: TraceConfig{
			Level:  "off",
			Output: "-",
		},
	}
}

// LoadConfig decodes the manifest at path over the defaults. Relative
// out_dir values are resolved against the manifest directory.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: %w: unknown key %s", path, ErrInvalidConfig, undecoded[0])
	}
	if meta.IsDefined("build", "emit") {
		if cfg.Build.Emit, err = ParseEmit(string(cfg.Build.Emit)); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if cfg.Build.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: %w: [build].jobs must not be negative", path, ErrInvalidConfig)
	}
	if meta.IsDefined("trace", "level") {
		if _, err := trace.ParseLevel(cfg.Trace.Level); err != nil {
			return Config{}, fmt.Errorf("%s: %w: %v", path, ErrInvalidConfig, err)
		}
	}
	if strings.TrimSpace(cfg.Build.OutDir) == "" {
		cfg.Build.OutDir = Default().Build.OutDir
	}
	if !filepath.IsAbs(cfg.Build.OutDir) {
		cfg.Build.OutDir = filepath.Join(filepath.Dir(path), cfg.Build.OutDir)
	}
	cfg.Path = path
	return cfg, nil
}

// Discover loads c0.toml found from startDir upwards, or the defaults when
// there is none. An explicit path skips the search and must exist.
func Discover(startDir, explicit string) (Config, error) {
	if explicit != "" {
		return LoadConfig(explicit)
	}
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return LoadConfig(path)
}
