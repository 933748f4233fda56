// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when neither the environment nor a config file sets a value.
const (
	DefaultAppName            = "MindWise"
	DefaultAppVersion         = "0.1.0"
	DefaultPort               = 8080
	DefaultAnalysisTimeout    = 60 * time.Second
	DefaultResumeFetchTimeout = 30 * time.Second
	DefaultJobFetchTimeout    = 10 * time.Second
)

// Config represents the application configuration.
// Values come from the environment and may be overridden by an optional JSON file.
type Config struct {
	// Database
	DatabaseURL string `json:"database_url,omitempty"`

	// Remote model
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`
	GeminiModel  string `json:"gemini_model,omitempty"` // Overrides the standard tier model

	// HTTP
	Port           int      `json:"port,omitempty"`
	AllowedOrigins []string `json:"allowed_origins,omitempty"`

	// Application
	AppName    string `json:"app_name,omitempty"`
	AppVersion string `json:"app_version,omitempty"`
	Debug      bool   `json:"debug,omitempty"`

	// Per-call timeouts
	AnalysisTimeout    Duration `json:"analysis_timeout,omitempty"`
	ResumeFetchTimeout Duration `json:"resume_fetch_timeout,omitempty"`
	JobFetchTimeout    Duration `json:"job_fetch_timeout,omitempty"`
}

// Duration is a time.Duration that reads "30s" style strings from JSON.
type Duration struct {
	time.Duration
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Duration) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	if str == "" || str == "null" {
		return nil
	}
	parsed, err := time.ParseDuration(str)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", str, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Load builds the configuration from the environment, then overlays the JSON file at path
// when path is non-empty, then fills defaults.
func Load(path string) (*Config, error) {
	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		return nil, err
	}

	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		merged := fileCfg.MergeWithDefaults(*cfg)
		cfg = &merged
	}

	cfg.applyDefaults()
	return cfg, nil
}

// FromEnv reads configuration through lookup (os.LookupEnv in production).
// DATABASE_URL wins over the component variables user, password, host, port and dbname.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := &Config{
		DatabaseURL:    get("DATABASE_URL"),
		GeminiAPIKey:   get("GEMINI_API_KEY"),
		GeminiModel:    get("GEMINI_MODEL"),
		AllowedOrigins: SplitOrigins(get("ALLOWED_ORIGINS")),
		AppName:        get("APP_NAME"),
		AppVersion:     get("APP_VERSION"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = BuildDatabaseURL(get("user"), get("password"), get("host"), get("port"), get("dbname"))
	}

	if v := get("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if v := get("DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DEBUG: %v", err)
		}
		cfg.Debug = debug
	}

	durations := []struct {
		key    string
		target *Duration
	}{
		{"ANALYSIS_TIMEOUT", &cfg.AnalysisTimeout},
		{"RESUME_FETCH_TIMEOUT", &cfg.ResumeFetchTimeout},
		{"JOB_FETCH_TIMEOUT", &cfg.JobFetchTimeout},
	}
	for _, d := range durations {
		v := get(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %v", d.key, err)
		}
		d.target.Duration = parsed
	}

	return cfg, nil
}

// LoadFile loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.GeminiModel == "" {
		result.GeminiModel = defaults.GeminiModel
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}
	if result.AppName == "" {
		result.AppName = defaults.AppName
	}
	if result.AppVersion == "" {
		result.AppVersion = defaults.AppVersion
	}
	if result.AnalysisTimeout.Duration == 0 {
		result.AnalysisTimeout = defaults.AnalysisTimeout
	}
	if result.ResumeFetchTimeout.Duration == 0 {
		result.ResumeFetchTimeout = defaults.ResumeFetchTimeout
	}
	if result.JobFetchTimeout.Duration == 0 {
		result.JobFetchTimeout = defaults.JobFetchTimeout
	}

	// Bool fields: cannot distinguish unset from false, so either source enables debug
	result.Debug = result.Debug || defaults.Debug

	return result
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.AppName == "" {
		c.AppName = DefaultAppName
	}
	if c.AppVersion == "" {
		c.AppVersion = DefaultAppVersion
	}
	if c.AnalysisTimeout.Duration == 0 {
		c.AnalysisTimeout.Duration = DefaultAnalysisTimeout
	}
	if c.ResumeFetchTimeout.Duration == 0 {
		c.ResumeFetchTimeout.Duration = DefaultResumeFetchTimeout
	}
	if c.JobFetchTimeout.Duration == 0 {
		c.JobFetchTimeout.Duration = DefaultJobFetchTimeout
	}
}

// Validate checks the values needed to serve requests.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL (or user/password/host/port/dbname) is required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: GEMINI_API_KEY is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port out of range: %d", c.Port)
	}
	for name, d := range map[string]Duration{
		"analysis_timeout":     c.AnalysisTimeout,
		"resume_fetch_timeout": c.ResumeFetchTimeout,
		"job_fetch_timeout":    c.JobFetchTimeout,
	} {
		if d.Duration < 0 {
			return fmt.Errorf("config error: '%s' must be non-negative", name)
		}
	}
	return nil
}

// BuildDatabaseURL assembles a postgres URL from its components.
// Returns an empty string when the host or database name is missing.
func BuildDatabaseURL(user, password, host, port, dbname string) string {
	if host == "" || dbname == "" {
		return ""
	}
	if port != "" {
		host = host + ":" + port
	}
	u := &url.URL{
		Scheme: "postgres",
		Host:   host,
		Path:   "/" + dbname,
	}
	if user != "" {
		if password != "" {
			u.User = url.UserPassword(user, password)
		} else {
			u.User = url.User(user)
		}
	}
	return u.String()
}

// SplitOrigins parses a comma-separated origin list, dropping empty entries.
func SplitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
