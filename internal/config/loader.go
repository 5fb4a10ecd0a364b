package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file configuration.
const (
	EnvColumns        = "TETRIS_COLUMNS"
	EnvRows           = "TETRIS_ROWS"
	EnvTicksPerSecond = "TETRIS_TICKS_PER_SECOND"
	EnvLogLevel       = "TETRIS_LOG_LEVEL"
)

// LoadDotEnv reads KEY=VALUE pairs from the given files (default ".env") into
// the process environment. Variables already set win. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
	}
	return nil
}

// LoadTetris loads Tetris configuration.
// Search order: customPath -> ~/.arcade/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default.
// Values not present in the file keep their defaults; environment overrides are
// applied last and the result is validated.
func LoadTetris(customPath string) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()

	switch {
	case customPath != "":
		// Try custom path first
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
	case loadOptional(userConfigPath("tetris.yaml"), &cfg):
	case loadOptional(filepath.Join("configs", "tetris.yaml"), &cfg):
	default:
		// Use embedded default YAML
		if err := yaml.Unmarshal(defaultTetrisYAML, &cfg); err != nil {
			cfg = DefaultTetrisConfig() // Fallback to hardcoded if embed fails
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadOptional parses path into cfg, reporting whether it succeeded.
// Unreadable or malformed files are skipped so the next source can be tried.
func loadOptional(path string, cfg *TetrisConfig) bool {
	if path == "" {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	parsed := *cfg
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return false
	}
	*cfg = parsed
	return true
}

// applyEnv overrides configuration values from the environment.
func applyEnv(cfg *TetrisConfig) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvColumns, &cfg.Board.Columns},
		{EnvRows, &cfg.Board.Rows},
		{EnvTicksPerSecond, &cfg.Game.TicksPerSecond},
	}
	for _, e := range ints {
		raw, ok := os.LookupEnv(e.key)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, e.key, raw)
		}
		*e.dst = v
	}
	if lvl, ok := os.LookupEnv(EnvLogLevel); ok && lvl != "" {
		cfg.Log.Level = lvl
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
