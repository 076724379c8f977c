// Package config handles global qref configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the global qref configuration. It is built once at
// startup and passed by reference; nothing mutates it afterwards.
type Config struct {
	// Cache controls the local page store and its refresh behavior.
	Cache CacheConfig `toml:"cache"`

	// Style maps page line roles to display attributes.
	Style StyleConfig `toml:"style"`
}

// CacheConfig controls the local page store and its refresh behavior.
type CacheConfig struct {
	// Dir is the cache directory. Empty means the user cache directory
	// (e.g. ~/.cache/qref). Overridden by $QREF_CACHE_DIR.
	Dir string `toml:"dir"`

	// ArchiveURL is the remote page archive (gzip-compressed tar).
	ArchiveURL string `toml:"archive_url"`

	// MaxAgeHours is the cache age beyond which a refresh is recommended.
	MaxAgeHours int `toml:"max_age_hours"`

	// AutoUpdate refreshes a stale cache automatically before lookup.
	// When disabled, a stale cache only produces a warning.
	AutoUpdate bool `toml:"auto_update"`

	// CustomPagesDir is an optional directory of user-authored override
	// pages, consulted before the cache.
	CustomPagesDir string `toml:"custom_pages_dir"`
}

// StyleConfig maps page line roles to display attributes.
type StyleConfig struct {
	Title              Style `toml:"title"`
	Description        Style `toml:"description"`
	ExampleDescription Style `toml:"example_description"`
	ExampleCode        Style `toml:"example_code"`
	Placeholder        Style `toml:"placeholder"`
	InlineCode         Style `toml:"inline_code"`
}

// Style is a single role's display attributes. Color accepts ANSI codes
// ("0" to "255") or hex colors ("#RRGGBB"); empty means the terminal default.
type Style struct {
	Color     string `toml:"color"`
	Bold      bool   `toml:"bold"`
	Underline bool   `toml:"underline"`
	Italic    bool   `toml:"italic"`
}

// DefaultArchiveURL is the conventional page archive location.
const DefaultArchiveURL = "https://tldr.sh/assets/tldr-pages.tar.gz"

// DefaultMaxAgeHours is 30 days, matching the upstream page corpus cadence.
const DefaultMaxAgeHours = 30 * 24

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			ArchiveURL:  DefaultArchiveURL,
			MaxAgeHours: DefaultMaxAgeHours,
		},
		Style: StyleConfig{
			Title:              Style{Bold: true},
			Description:        Style{},
			ExampleDescription: Style{Color: "2"},
			ExampleCode:        Style{Color: "6"},
			Placeholder:        Style{Color: "6", Italic: true},
			InlineCode:         Style{Color: "6"},
		},
	}
}

// MaxAge returns the configured max cache age as a duration.
func (c *Config) MaxAge() time.Duration {
	hours := c.Cache.MaxAgeHours
	if hours <= 0 {
		hours = DefaultMaxAgeHours
	}
	return time.Duration(hours) * time.Hour
}

// CacheDir resolves the effective cache directory with precedence:
//  1. $QREF_CACHE_DIR (must exist and be a directory when set)
//  2. cache.dir from the config file
//  3. the user cache directory (e.g. ~/.cache/qref)
func (c *Config) CacheDir() (string, error) {
	if env := strings.TrimSpace(os.Getenv("QREF_CACHE_DIR")); env != "" {
		st, err := os.Stat(env)
		if err != nil || !st.IsDir() {
			return "", fmt.Errorf("$QREF_CACHE_DIR (%s) does not exist or is not a directory", env)
		}
		return env, nil
	}

	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}

	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user cache directory: %w", err)
	}
	return filepath.Join(base, "qref"), nil
}

// Load loads the configuration from the default location, merged over the
// built-in defaults. Returns the defaults if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path, merged over the
// built-in defaults.
func LoadFrom(path string) (*Config, error) {
	config := Default()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return config, nil
}

// DefaultPath returns the default config file path.
// Checks $QREF_CONFIG_DIR first, then ~/.config/qref/config.toml (XDG style),
// then falls back to the OS-specific location.
func DefaultPath() string {
	if dir := strings.TrimSpace(os.Getenv("QREF_CONFIG_DIR")); dir != "" {
		return filepath.Join(dir, "config.toml")
	}

	// Prefer XDG-style ~/.config/qref/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "qref", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "qref", "config.toml")
	}

	// Last resort fallback
	return filepath.Join(".", "config.toml")
}

// CreateDefault creates a default config file if it doesn't exist.
func CreateDefault() (string, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil // Already exists
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# qref configuration

[cache]
# Cache directory. Defaults to the user cache directory (~/.cache/qref).
# Also overridable with $QREF_CACHE_DIR.
# dir = "/path/to/cache"

# Page archive to download on update (gzip-compressed tar).
# archive_url = "` + DefaultArchiveURL + `"

# Cache age in hours beyond which a refresh is recommended.
# max_age_hours = 720

# Refresh a stale cache automatically before lookup.
# auto_update = false

# Directory of user-authored override pages, consulted before the cache.
# custom_pages_dir = "/path/to/pages"

# Styles accept ANSI color codes (0-255) or hex (#RRGGBB), plus
# bold/underline/italic flags.
# [style.title]
# bold = true
#
# [style.example_code]
# color = "6"
#
# [style.placeholder]
# color = "6"
# italic = true
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}

// LanguagePreferences returns the ordered language codes to try when looking
// for a page, most specific first, ending with "" (the default language).
//
// The override (from a --language flag) wins; otherwise the list is derived
// from $LANGUAGE (colon-separated) and $LANG, the usual POSIX locale
// variables. A regional code like "pt_BR" also yields its base "pt".
// English maps to the default page tree.
func LanguagePreferences(override string) []string {
	var raw []string
	if override != "" {
		raw = []string{override}
	} else {
		if v := os.Getenv("LANGUAGE"); v != "" {
			raw = append(raw, strings.Split(v, ":")...)
		}
		if v := os.Getenv("LANG"); v != "" {
			raw = append(raw, v)
		}
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(code string) {
		if code == "" || code == "en" {
			return
		}
		if _, ok := seen[code]; ok {
			return
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}

	for _, v := range raw {
		code := normalizeLocale(v)
		add(code)
		if base, _, ok := strings.Cut(code, "_"); ok && base != code {
			add(base)
		}
	}

	return append(out, "")
}

// normalizeLocale strips encoding/modifier suffixes ("pt_BR.UTF-8" -> "pt_BR")
// and ignores the C/POSIX locales.
func normalizeLocale(v string) string {
	v = strings.TrimSpace(v)
	if i := strings.IndexAny(v, ".@"); i >= 0 {
		v = v[:i]
	}
	if v == "C" || v == "POSIX" {
		return ""
	}
	return v
}
