// Package config handles configuration loading from files, defaults, and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/vaktiramazan/vakti/internal/notify"
	"github.com/vaktiramazan/vakti/internal/prayer"
)

// Config holds the application configuration.
type Config struct {
	Location      LocationConfig     `toml:"location"`
	Aladhan       AladhanConfig      `toml:"aladhan"`
	Notifications NotificationConfig `toml:"notifications"`
	LLM           LLMConfig          `toml:"llm"`
	Storage       StorageConfig      `toml:"storage"`
}

// LocationConfig holds the coordinates prayer times are computed for.
type LocationConfig struct {
	Name      string  `toml:"name"` // display label, e.g. "Lefkoşa"
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
}

// AladhanConfig holds Al Adhan API query options.
type AladhanConfig struct {
	BaseURL string `toml:"base_url"`
	// Method is the calculation method id; 13 is Diyanet İşleri Başkanlığı.
	Method int `toml:"method"`
	// CalendarMethod selects the Hijri calendar computation, e.g. "DIYANET".
	CalendarMethod string `toml:"calendar_method"`
}

// NotificationConfig mirrors notify.Prefs in TOML-friendly form.
type NotificationConfig struct {
	Imsak     bool `toml:"imsak"`
	Sunrise   bool `toml:"sunrise"`
	Noon      bool `toml:"noon"`
	Afternoon bool `toml:"afternoon"`
	Sunset    bool `toml:"sunset"`
	Night     bool `toml:"night"`

	SahurMinutesBeforeImsak int  `toml:"sahur_minutes_before_imsak"` // 0, 15, 30, 45, 60
	IftarEnabled            bool `toml:"iftar_enabled"`
	IftarMinutesBefore      int  `toml:"iftar_minutes_before"` // 0, 15, 30

	VerseOfDayEnabled bool `toml:"verse_of_day_enabled"`
	VerseOfDayHour    int  `toml:"verse_of_day_hour"`
	VerseOfDayMinute  int  `toml:"verse_of_day_minute"`
}

// LLMConfig holds LLM provider settings for the menu assistant.
type LLMConfig struct {
	Provider string `toml:"provider"` // "openai", "ollama"
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
}

// StorageConfig holds database and dataset paths.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
	// CacheDir holds cached Al Adhan month responses.
	CacheDir string `toml:"cache_dir"`
	// VersesPath optionally points at a full verse dataset; empty uses
	// the small bundled pool.
	VersesPath string `toml:"verses_path"`
}

// Default returns the default configuration.
func Default() *Config {
	p := notify.DefaultPrefs()
	return &Config{
		Location: LocationConfig{
			// Lefkoşa; overridden by config or env on first run.
			Name:      "Lefkoşa",
			Latitude:  35.1856,
			Longitude: 33.3823,
		},
		Aladhan: AladhanConfig{
			BaseURL:        "https://api.aladhan.com/v1",
			Method:         13,
			CalendarMethod: "DIYANET",
		},
		Notifications: NotificationConfig{
			Imsak:                   p.PrayerTimes[prayer.KeyImsak],
			Sunrise:                 p.PrayerTimes[prayer.KeySunrise],
			Noon:                    p.PrayerTimes[prayer.KeyNoon],
			Afternoon:               p.PrayerTimes[prayer.KeyAfternoon],
			Sunset:                  p.PrayerTimes[prayer.KeySunset],
			Night:                   p.PrayerTimes[prayer.KeyNight],
			SahurMinutesBeforeImsak: p.SahurMinutesBeforeImsak,
			IftarEnabled:            p.IftarEnabled,
			IftarMinutesBefore:      p.IftarMinutesBefore,
			VerseOfDayEnabled:       p.VerseOfDayEnabled,
			VerseOfDayHour:          p.VerseOfDayHour,
			VerseOfDayMinute:        p.VerseOfDayMinute,
		},
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
			BaseURL:  "http://localhost:11434",
		},
		Storage: StorageConfig{
			DBPath:   defaultDBPath(),
			CacheDir: defaultCacheDir(),
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vakti.db"
	}
	return filepath.Join(home, ".local", "share", "vakti", "vakti.db")
}

// defaultCacheDir returns the default cache directory.
func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vakti-cache"
	}
	return filepath.Join(home, ".cache", "vakti")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "vakti", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and
// env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path. It starts with
// defaults, overlays file config if it exists, then applies env overrides.
// A .env file in the working directory is read first so credentials like
// OPENAI_API_KEY can live next to the binary during development.
func LoadFrom(path string) (*Config, error) {
	_ = godotenv.Load() // missing .env is the normal case

	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Storage.CacheDir = expandPath(cfg.Storage.CacheDir)
	cfg.Storage.VersesPath = expandPath(cfg.Storage.VersesPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VAKTI_LOCATION_NAME"); v != "" {
		cfg.Location.Name = v
	}
	if v := os.Getenv("VAKTI_LATITUDE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Location.Latitude = f
		}
	}
	if v := os.Getenv("VAKTI_LONGITUDE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Location.Longitude = f
		}
	}

	if v := os.Getenv("VAKTI_ALADHAN_BASE_URL"); v != "" {
		cfg.Aladhan.BaseURL = v
	}
	if v := os.Getenv("VAKTI_ALADHAN_METHOD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Aladhan.Method = n
		}
	}

	if v := os.Getenv("VAKTI_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("VAKTI_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("VAKTI_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("VAKTI_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("VAKTI_CACHE_DIR"); v != "" {
		cfg.Storage.CacheDir = v
	}
	if v := os.Getenv("VAKTI_VERSES_PATH"); v != "" {
		cfg.Storage.VersesPath = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var (
	validSahurOffsets = map[int]bool{0: true, 15: true, 30: true, 45: true, 60: true}
	validIftarOffsets = map[int]bool{0: true, 15: true, 30: true}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("latitude out of range: %v", c.Location.Latitude)
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("longitude out of range: %v", c.Location.Longitude)
	}

	n := c.Notifications
	if !validSahurOffsets[n.SahurMinutesBeforeImsak] {
		return fmt.Errorf("sahur_minutes_before_imsak must be one of 0, 15, 30, 45, 60; got %d", n.SahurMinutesBeforeImsak)
	}
	if !validIftarOffsets[n.IftarMinutesBefore] {
		return fmt.Errorf("iftar_minutes_before must be one of 0, 15, 30; got %d", n.IftarMinutesBefore)
	}
	if n.VerseOfDayHour < 0 || n.VerseOfDayHour > 23 {
		return fmt.Errorf("verse_of_day_hour must be 0-23; got %d", n.VerseOfDayHour)
	}
	if n.VerseOfDayMinute < 0 || n.VerseOfDayMinute > 59 {
		return fmt.Errorf("verse_of_day_minute must be 0-59; got %d", n.VerseOfDayMinute)
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// Prefs converts the notification section to the scheduler's preference
// type.
func (c *Config) Prefs() notify.Prefs {
	n := c.Notifications
	return notify.Prefs{
		PrayerTimes: map[prayer.Key]bool{
			prayer.KeyImsak:     n.Imsak,
			prayer.KeySunrise:   n.Sunrise,
			prayer.KeyNoon:      n.Noon,
			prayer.KeyAfternoon: n.Afternoon,
			prayer.KeySunset:    n.Sunset,
			prayer.KeyNight:     n.Night,
		},
		SahurMinutesBeforeImsak: n.SahurMinutesBeforeImsak,
		IftarEnabled:            n.IftarEnabled,
		IftarMinutesBefore:      n.IftarMinutesBefore,
		VerseOfDayEnabled:       n.VerseOfDayEnabled,
		VerseOfDayHour:          n.VerseOfDayHour,
		VerseOfDayMinute:        n.VerseOfDayMinute,
	}
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
