package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"delhivery-tracker/internal/core/proxy"

	"github.com/spf13/viper"
)

// DefaultJournalFile is the tracking log file name used when TRACKING_LOG_FILE is unset.
const DefaultJournalFile = "tracking_log.txt"

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the diagnostics verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"warn"`

	// Delhivery holds the tracking API configuration.
	Delhivery DelhiveryConfig `mapstructure:",squash"`

	// Journal holds the tracking log file configuration.
	Journal JournalConfig `mapstructure:",squash"`

	// Display holds the timestamp presentation configuration.
	Display DisplayConfig `mapstructure:",squash"`

	// Proxy holds the optional outbound proxy.
	Proxy proxy.Settings `mapstructure:",squash"`
}

// DelhiveryConfig holds the endpoint and request identity for the tracking API.
type DelhiveryConfig struct {
	// APIURL is the base URL of the unified-tracking API.
	APIURL string `mapstructure:"DELHIVERY_API_URL" default:"https://dlv-api.delhivery.com" required:"true"`
	// SiteURL is the public website sent as Origin and Referer.
	SiteURL string `mapstructure:"DELHIVERY_SITE_URL" default:"https://www.delhivery.com" required:"true"`
	// UserAgent is the client identity string.
	UserAgent string `mapstructure:"DELHIVERY_USER_AGENT" default:"Mozilla/5.0"`
	// Timeout bounds the whole request.
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT" default:"10s" required:"true"`
}

// JournalConfig holds the location of the append-only tracking log.
type JournalConfig struct {
	// Path is the tracking log file. Empty means next to the executable.
	Path string `mapstructure:"TRACKING_LOG_FILE"`
}

// DisplayConfig holds the fixed zone used for displayed and logged timestamps.
type DisplayConfig struct {
	// UTCOffset is a fixed offset such as "+05:30".
	UTCOffset string `mapstructure:"DISPLAY_UTC_OFFSET" default:"+05:30"`
	// ZoneLabel is the zone name shown next to timestamps.
	ZoneLabel string `mapstructure:"DISPLAY_ZONE_LABEL" default:"IST" required:"true"`
}

var offsetPattern = regexp.MustCompile(`^([+-])(\d{2}):?(\d{2})$`)

// Location returns the fixed zone described by UTCOffset.
func (d DisplayConfig) Location() (*time.Location, error) {
	raw := strings.TrimSpace(d.UTCOffset)
	if raw == "" || strings.EqualFold(raw, "Z") || strings.EqualFold(raw, "UTC") {
		return time.FixedZone(d.ZoneLabel, 0), nil
	}

	m := offsetPattern.FindStringSubmatch(raw)
	if m == nil {
		return nil, fmt.Errorf("invalid DISPLAY_UTC_OFFSET %q: expected ±hh:mm", d.UTCOffset)
	}

	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	if hours > 14 || minutes > 59 {
		return nil, fmt.Errorf("invalid DISPLAY_UTC_OFFSET %q: out of range", d.UTCOffset)
	}

	seconds := hours*3600 + minutes*60
	if m[1] == "-" {
		seconds = -seconds
	}
	return time.FixedZone(d.ZoneLabel, seconds), nil
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if _, err := config.Display.Location(); err != nil {
		return nil, err
	}

	if config.Journal.Path == "" {
		config.Journal.Path = defaultJournalPath()
	}

	return &config, nil
}

// defaultJournalPath places the tracking log alongside the running executable.
func defaultJournalPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultJournalFile
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), DefaultJournalFile)
}

// processTags iterates over the struct fields, binds env keys and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("failed to bind %s: %w", key, err)
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && isZero(val.Field(i)) {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() <= 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
