package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"tubeclip/internal/mediapath"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths holds the filesystem locations tubeclip writes to.
type Paths struct {
	DatasetRoot string `toml:"dataset_root"`
	StateDir    string `toml:"state_dir"`
	LogDir      string `toml:"log_dir"`
	ExportDir   string `toml:"export_dir"`
}

// YouTube configures stream and caption retrieval.
type YouTube struct {
	YtdlpPath          string `toml:"ytdlp_path"`
	CaptionLanguage    string `toml:"caption_language"`
	EmbedURLs          bool   `toml:"embed_urls"`
	HTTPTimeoutSeconds int    `toml:"http_timeout_seconds"`
}

// FFmpeg names the media binaries and codecs.
type FFmpeg struct {
	FFmpegPath  string `toml:"ffmpeg_path"`
	FFprobePath string `toml:"ffprobe_path"`
	VideoCodec  string `toml:"video_codec"`
	AudioCodec  string `toml:"audio_codec"`
}

// Highlights configures caption-driven clip extraction.
type Highlights struct {
	Marker        string  `toml:"marker"`
	WindowSeconds float64 `toml:"window_seconds"`
	ClipExtension string  `toml:"clip_extension"`
	Workers       int     `toml:"workers"`
}

// Audio configures WAV conversion and segmenting.
type Audio struct {
	SampleRate     int `toml:"sample_rate"`
	Channels       int `toml:"channels"`
	SegmentSeconds int `toml:"segment_seconds"`
}

// Categories overrides the per-category directories under the dataset root.
type Categories struct {
	Podcast   string `toml:"podcast"`
	Interview string `toml:"interview"`
	Speech    string `toml:"speech"`
	Music     string `toml:"music"`
}

// Logging configures log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config is the root configuration document.
type Config struct {
	Paths      Paths      `toml:"paths"`
	YouTube    YouTube    `toml:"youtube"`
	FFmpeg     FFmpeg     `toml:"ffmpeg"`
	Highlights Highlights `toml:"highlights"`
	Audio      Audio      `toml:"audio"`
	Categories Categories `toml:"categories"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load reads configuration from path (or the default locations when path is
// empty), applies environment fallbacks and validates the result. It returns
// the resolved path and whether that file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// LoadEnvFile merges KEY=value pairs from a .env file into the process
// environment without overriding variables that are already set. A missing
// file is not an error. An empty path means ".env" in the working directory.
func LoadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(expanded); err != nil {
		return fmt.Errorf("load env file %s: %w", expanded, err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tubeclip.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state, log and export directories. The
// dataset root is created lazily per item.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir, c.Paths.ExportDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryPath returns the SQLite ledger location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// LockPath returns the run lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "tubeclip.lock")
}

// HTTPTimeout returns the stream client timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.YouTube.HTTPTimeoutSeconds) * time.Second
}

// Templates returns the category directory templates.
func (c *Config) Templates() mediapath.Templates {
	return mediapath.Templates{
		Podcast:   c.Categories.Podcast,
		Interview: c.Categories.Interview,
		Speech:    c.Categories.Speech,
		Music:     c.Categories.Music,
	}
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() (string, error) {
	var b strings.Builder
	encoder := toml.NewEncoder(&b)
	encoder.SetIndentTables(true)
	if err := encoder.Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return b.String(), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the tilde-aware path expansion used for config values.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
