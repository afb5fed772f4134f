package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	ModelsDir string `toml:"models_dir"`
	FramesDir string `toml:"frames_dir"`
	LogDir    string `toml:"log_dir"`
}

// Moderation contains hate-score thresholds and strike policy.
type Moderation struct {
	// ReviewPendingScore is the lowest score that sends a review to manual
	// review instead of publishing it.
	ReviewPendingScore int `toml:"review_pending_score"`
	// ReviewRejectScore is the lowest score that forbids a review outright.
	ReviewRejectScore int `toml:"review_reject_score"`
	NewsPendingScore  int `toml:"news_pending_score"`
	NewsRejectScore   int `toml:"news_reject_score"`
	// NewsBodyWeight multiplies the body score before the title score is
	// added. News bodies reach more readers before moderation catches up.
	NewsBodyWeight       int `toml:"news_body_weight"`
	StrikeValidityMonths int `toml:"strike_validity_months"`
	BanStrikeCount       int `toml:"ban_strike_count"`
}

// Analysis contains detector and classifier thresholds for frame analysis.
type Analysis struct {
	DetectorBinary     string  `toml:"detector_binary"`
	DetectorConfidence float64 `toml:"detector_confidence"`
	DetectorOverlap    float64 `toml:"detector_overlap"`
	// ActorThreshold is tunable because deployed model generations disagree
	// on the operating point (0.70 vs 0.75).
	ActorThreshold      float64  `toml:"actor_threshold"`
	HappyThreshold      float64  `toml:"happy_threshold"`
	SadThreshold        float64  `toml:"sad_threshold"`
	AngryThreshold      float64  `toml:"angry_threshold"`
	FrameExtensions     []string `toml:"frame_extensions"`
	Workers             int      `toml:"workers"`
	FrameTimeoutSeconds int      `toml:"frame_timeout_seconds"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	Strikes        bool   `toml:"strikes"`
	Bans           bool   `toml:"bans"`
	Analysis       bool   `toml:"analysis"`
	Errors         bool   `toml:"errors"`
}

// Sessions contains configuration for the session store used to force
// logouts when a user is banned.
type Sessions struct {
	Backend   string `toml:"backend"` // "memory" or "redis"
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
	KeyPrefix string `toml:"key_prefix"`
}

// Workflow contains daemon timing configuration.
type Workflow struct {
	QueuePollInterval  int `toml:"queue_poll_interval"`
	ErrorRetryInterval int `toml:"error_retry_interval"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for Moviesphere.
//
// Configuration sections by subsystem:
//   - Paths: data, model artifact, frame, and log directories
//   - Moderation: hate-score thresholds and strike/ban policy
//   - Analysis: detector binary and classifier thresholds
//   - Notifications: ntfy push notification settings
//   - Sessions: session store backend for forced logouts
//   - Workflow: analysis daemon polling intervals
//   - Logging: log format, level, and retention
type Config struct {
	Paths         Paths         `toml:"paths"`
	Moderation    Moderation    `toml:"moderation"`
	Analysis      Analysis      `toml:"analysis"`
	Notifications Notifications `toml:"notifications"`
	Sessions      Sessions      `toml:"sessions"`
	Workflow      Workflow      `toml:"workflow"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/moviesphere/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
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
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
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

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("moviesphere.toml")
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

// EnsureDirectories creates required directories for daemon operation.
// FramesDir is created on a best-effort basis so the daemon can run when
// frame storage is temporarily unavailable.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.FramesDir) != "" {
		_ = os.MkdirAll(c.Paths.FramesDir, 0o755)
	}
	return nil
}

// DatabasePath returns the SQLite database location inside the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "moviesphere.db")
}

// WriteSample writes the embedded sample configuration to path.
func WriteSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
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

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
