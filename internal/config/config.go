package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/username/honorary-calc/internal/calendar"
	"github.com/username/honorary-calc/internal/fare"
)

// EnvPrefix prefixes environment overrides, e.g. HONORARY_HTTP_PORT
const EnvPrefix = "HONORARY"

// Config represents application configuration
type Config struct {
	Fares    FaresConfig    `mapstructure:"fares"`
	Shifts   ShiftsConfig   `mapstructure:"shifts"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Log      LogConfig      `mapstructure:"log"`
	HTTP     HTTPConfig     `mapstructure:"http"`
}

// FareTableConfig represents one fare table.
// Rates may be written as numbers or strings ("49.50").
type FareTableConfig struct {
	DayFirstHour        float64 `mapstructure:"day_first_hour_fare"`
	DaySubsequentHour   float64 `mapstructure:"day_subsequent_hour_fare"`
	NightFirstHour      float64 `mapstructure:"night_first_hour_fare"`
	NightSubsequentHour float64 `mapstructure:"night_subsequent_hour_fare"`
}

// FaresConfig represents the business day and holiday tables
type FaresConfig struct {
	Normal  FareTableConfig `mapstructure:"normal"`
	Holiday FareTableConfig `mapstructure:"holiday"`
}

// ShiftsConfig represents the day/night boundaries (hours 0-24)
type ShiftsConfig struct {
	DayStart   int `mapstructure:"day_start"`
	NightStart int `mapstructure:"night_start"`
}

// CalendarConfig represents calendar configuration
type CalendarConfig struct {
	Type        string `mapstructure:"type"` // "computed" or "file"
	File        string `mapstructure:"file"` // For file type, table written by "calendar export"
	WindowStart string `mapstructure:"window_start"`
	WindowEnd   string `mapstructure:"window_end"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// HTTPConfig represents the API server configuration
type HTTPConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     string `mapstructure:"read_timeout"`
	WriteTimeout    string `mapstructure:"write_timeout"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout"`
	RateLimit       int    `mapstructure:"rate_limit"` // requests per minute per IP
}

func setDefaults(v *viper.Viper) {
	setTableDefaults(v, "fares.normal", fare.DefaultFares.Normal)
	setTableDefaults(v, "fares.holiday", fare.DefaultFares.Holiday)

	v.SetDefault("shifts.day_start", fare.DefaultShiftRule.DayStart)
	v.SetDefault("shifts.night_start", fare.DefaultShiftRule.NightStart)

	v.SetDefault("calendar.type", "computed")
	v.SetDefault("calendar.file", "")
	v.SetDefault("calendar.window_start", calendar.DefaultWindow.From.Format("2006-01-02"))
	v.SetDefault("calendar.window_end", calendar.DefaultWindow.To.Format("2006-01-02"))

	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", "5s")
	v.SetDefault("http.write_timeout", "5s")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("http.rate_limit", 100)
}

func setTableDefaults(v *viper.Viper, prefix string, t fare.Table) {
	v.SetDefault(prefix+".day_first_hour_fare", t.DayFirstHour)
	v.SetDefault(prefix+".day_subsequent_hour_fare", t.DaySubsequentHour)
	v.SetDefault(prefix+".night_first_hour_fare", t.NightFirstHour)
	v.SetDefault(prefix+".night_subsequent_hour_fare", t.NightSubsequentHour)
}

// Load loads configuration from file.
// With an empty configPath a missing config file is not an error and defaults apply.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.honorary-calc")
		v.AddConfigPath("/etc/honorary-calc")
	}

	// Read environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Fares.Fares().Validate(); err != nil {
		return fmt.Errorf("fares.%w", err)
	}

	if err := c.Shifts.ShiftRule().Validate(); err != nil {
		return fmt.Errorf("shifts: %w", err)
	}

	switch c.Calendar.Type {
	case "computed":
	case "file":
		if c.Calendar.File == "" {
			return fmt.Errorf("calendar.file is required for file type")
		}
	default:
		return fmt.Errorf("calendar.type must be 'computed' or 'file', got '%s'", c.Calendar.Type)
	}
	if _, err := c.Calendar.GetWindow(); err != nil {
		return err
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535")
	}
	if c.HTTP.RateLimit < 0 {
		return fmt.Errorf("http.rate_limit must not be negative")
	}

	return nil
}

// ToTable converts the configured rates
func (t FareTableConfig) ToTable() fare.Table {
	return fare.Table{
		DayFirstHour:        t.DayFirstHour,
		DaySubsequentHour:   t.DaySubsequentHour,
		NightFirstHour:      t.NightFirstHour,
		NightSubsequentHour: t.NightSubsequentHour,
	}
}

// Fares returns both configured tables
func (f FaresConfig) Fares() fare.Fares {
	return fare.Fares{
		Normal:  f.Normal.ToTable(),
		Holiday: f.Holiday.ToTable(),
	}
}

// ShiftRule returns the configured day/night boundaries
func (s ShiftsConfig) ShiftRule() fare.ShiftRule {
	return fare.ShiftRule{DayStart: s.DayStart, NightStart: s.NightStart}
}

// GetWindow returns the validity range of the business day table
func (c *CalendarConfig) GetWindow() (calendar.Window, error) {
	from, err := time.Parse("2006-01-02", c.WindowStart)
	if err != nil {
		return calendar.Window{}, fmt.Errorf("calendar.window_start: %w", err)
	}
	to, err := time.Parse("2006-01-02", c.WindowEnd)
	if err != nil {
		return calendar.Window{}, fmt.Errorf("calendar.window_end: %w", err)
	}
	if to.Before(from) {
		return calendar.Window{}, fmt.Errorf("calendar.window_end %s is before calendar.window_start %s", c.WindowEnd, c.WindowStart)
	}
	return calendar.Window{From: from, To: to}, nil
}

// GetReadTimeout returns the HTTP read timeout
func (c *HTTPConfig) GetReadTimeout() time.Duration {
	return parseDuration(c.ReadTimeout, 5*time.Second)
}

// GetWriteTimeout returns the HTTP write timeout
func (c *HTTPConfig) GetWriteTimeout() time.Duration {
	return parseDuration(c.WriteTimeout, 5*time.Second)
}

// GetShutdownTimeout returns the graceful shutdown timeout
func (c *HTTPConfig) GetShutdownTimeout() time.Duration {
	return parseDuration(c.ShutdownTimeout, 10*time.Second)
}

// Addr returns the listen address
func (c *HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	duration, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return duration
}
