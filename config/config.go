package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Standart qiymatlar
const (
	DefaultCacheSize   = 10
	DefaultConcurrency = 3
	DefaultModel       = "gemini-2.0-flash"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultTimeout     = 60 * time.Second
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "json"
)

// Duration TOML da "30s" ko'rinishidagi vaqt
type Duration struct {
	time.Duration
}

// UnmarshalText toml.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Telegram bo'limi
type Telegram struct {
	Token       string   `toml:"token"`
	CacheSize   *int     `toml:"cache_size"`
	Names       []string `toml:"names"`
	HTTPTimeout Duration `toml:"http_timeout"`
}

// Gemini bo'limi
type Gemini struct {
	Token       string   `toml:"token"`
	Personality string   `toml:"personality"`
	Model       string   `toml:"model"`
	Concurrency int      `toml:"concurrency"`
	Timeout     Duration `toml:"timeout"`
}

// Log bo'limi
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config ilovaning konfiguratsiyasi
type Config struct {
	Telegram Telegram `toml:"telegram"`
	Gemini   Gemini   `toml:"gemini"`
	Log      Log      `toml:"log"`
}

// CacheSize tarix hajmi (0 = tarix o'chirilgan)
func (c *Config) CacheSize() int {
	if c.Telegram.CacheSize == nil {
		return DefaultCacheSize
	}
	return *c.Telegram.CacheSize
}

// Load konfiguratsiyani yuklash: TOML fayl, keyin .env va environment
func Load(path string) (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	config := &Config{}
	if path != "" {
		if _, err := toml.DecodeFile(path, config); err != nil {
			return nil, fmt.Errorf("config faylini o'qib bo'lmadi %s: %w", path, err)
		}
	}

	if err := config.applyEnvOverrides(); err != nil {
		return nil, err
	}
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnvOverrides() error {
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		c.Telegram.Token = token
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Gemini.Token = key
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if raw := os.Getenv("CACHE_SIZE"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("CACHE_SIZE noto'g'ri formatda: %v", err)
		}
		c.Telegram.CacheSize = &parsed
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Gemini.Model == "" {
		c.Gemini.Model = DefaultModel
	}
	if c.Gemini.Concurrency == 0 {
		c.Gemini.Concurrency = DefaultConcurrency
	}
	if c.Gemini.Timeout.Duration == 0 {
		c.Gemini.Timeout.Duration = DefaultTimeout
	}
	if c.Telegram.HTTPTimeout.Duration == 0 {
		c.Telegram.HTTPTimeout.Duration = DefaultHTTPTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// Validate konfiguratsiyani tekshirish
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return errors.New("telegram.token (TELEGRAM_BOT_TOKEN) bo'sh")
	}
	if c.Gemini.Token == "" {
		return errors.New("gemini.token (GEMINI_API_KEY) bo'sh")
	}
	if c.CacheSize() < 0 {
		return fmt.Errorf("telegram.cache_size manfiy bo'lmasligi kerak: %d", c.CacheSize())
	}
	if c.Gemini.Concurrency < 1 {
		return fmt.Errorf("gemini.concurrency kamida 1 bo'lishi kerak: %d", c.Gemini.Concurrency)
	}
	return nil
}
