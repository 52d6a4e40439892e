package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the configuration file searched for by Find.
const FileName = "fern.toml"

// Config is the decoded fern.toml. Zero-valued fields mean "not set".
type Config struct {
	Path        string      `toml:"-"`
	Diagnostics Diagnostics `toml:"diagnostics"`
	Parse       Parse       `toml:"parse"`
	Check       Check       `toml:"check"`
}

type Diagnostics struct {
	Max     int    `toml:"max"`     // 0 — без ограничений
	Color   string `toml:"color"`   // auto|on|off
	Context int    `toml:"context"` // строк контекста в pretty-выводе
	Format  string `toml:"format"`  // pretty|json
}

type Parse struct {
	Format string `toml:"format"`
}

type Check struct {
	Jobs       int      `toml:"jobs"`
	Extensions []string `toml:"extensions"`
	Cache      bool     `toml:"cache"`
}

// Default returns the built-in settings used when no fern.toml is found.
func Default() Config {
	return Config{
		Diagnostics: Diagnostics{Max: 100, Color: "auto", Context: 2, Format: "pretty"},
		Parse:       Parse{Format: "sexpr"},
		Check:       Check{Extensions: []string{".fern"}},
	}
}

// ErrUnknownKey is wrapped by Load when fern.toml contains keys it does not know.
var ErrUnknownKey = errors.New("unknown key")

// Find walks up from startDir looking for fern.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over Default(); keys absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Resolve loads explicit when it is set, otherwise the nearest fern.toml above
// startDir, otherwise Default().
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) validate() error {
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("invalid [diagnostics].max %d: must be >= 0", c.Diagnostics.Max)
	}
	if c.Diagnostics.Context < 0 {
		return fmt.Errorf("invalid [diagnostics].context %d: must be >= 0", c.Diagnostics.Context)
	}
	switch c.Diagnostics.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid [diagnostics].color %q: want auto, on or off", c.Diagnostics.Color)
	}
	switch c.Diagnostics.Format {
	case "pretty", "json":
	default:
		return fmt.Errorf("invalid [diagnostics].format %q: want pretty or json", c.Diagnostics.Format)
	}
	switch c.Parse.Format {
	case "sexpr", "tree", "json", "msgpack":
	default:
		return fmt.Errorf("invalid [parse].format %q", c.Parse.Format)
	}
	if c.Check.Jobs < 0 {
		return fmt.Errorf("invalid [check].jobs %d: must be >= 0", c.Check.Jobs)
	}
	for _, ext := range c.Check.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("invalid [check].extensions entry %q: must start with '.'", ext)
		}
	}
	return nil
}
