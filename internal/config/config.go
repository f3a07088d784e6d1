package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"

	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/validator"
)

// Config holds all configuration for one extraction run. It is loaded once at
// startup and passed by value into each component constructor.
type Config struct {
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"logLevel"`
	API         struct {
		// BaseURL is the Webex CC data center URL, e.g. https://api.wxcc-us1.cisco.com
		BaseURL string `mapstructure:"baseURL" validate:"required,url"`
		// AccessToken is the OAuth2 bearer token for the search API.
		AccessToken string `mapstructure:"accessToken" validate:"required"`
		// OrgID is the organization ID; derived from the access token when unset.
		OrgID string `mapstructure:"orgID"`
		// QueryTimeout bounds each outbound search call. A timeout aborts the run.
		QueryTimeout time.Duration `mapstructure:"queryTimeout"`
	} `mapstructure:"api"`
	Database struct {
		// Path is the SQLite database file path.
		Path string `mapstructure:"path" validate:"required"`
	} `mapstructure:"database"`
	Extract struct {
		// DaysBack is the lookback window for all three extraction passes, in whole days.
		DaysBack int `mapstructure:"daysBack" validate:"required,gt=0"`
	} `mapstructure:"extract"`
}

// Validate checks that the loaded configuration is usable for a run.
func (c *Config) Validate() error {
	return validator.Validate(c)
}

// LoadConfig reads configuration from file or environment variables
func LoadConfig(path string) (*Config, error) {
	// Create new viper instance
	v := viper.New()

	// Set defaults
	v.SetDefault("environment", "development")
	v.SetDefault("logLevel", "info")
	v.SetDefault("api.queryTimeout", 30*time.Second)
	v.SetDefault("database.path", "webex_cc_data.db")
	v.SetDefault("extract.daysBack", 7)

	// Config file settings
	v.SetConfigName("default") // name of config file (without extension)
	v.SetConfigType("yaml")    // REQUIRED if the config file does not have the extension in the name

	// Add lookup paths
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath("$HOME/.daisi-wxcc-extractor")
	v.AddConfigPath("/etc/daisi-wxcc-extractor")

	// Try to read from config file
	if err := v.ReadInConfig(); err != nil {
		// It's ok if config file is not found, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Map environment variables to config fields
	bindEnvs(v, Config{})

	// Read directly from ENV for critical values
	if baseURL := os.Getenv("WXCC_BASE_URL"); baseURL != "" {
		v.Set("api.baseURL", baseURL)
	}
	if token := os.Getenv("WXCC_ACCESS_TOKEN"); token != "" {
		v.Set("api.accessToken", token)
	}
	if orgID := os.Getenv("WXCC_ORG_ID"); orgID != "" {
		v.Set("api.orgID", orgID)
	}
	if dbPath := os.Getenv("WXCC_DB_PATH"); dbPath != "" {
		v.Set("database.path", dbPath)
	}
	if lgLevel := os.Getenv("LOG_LEVEL"); lgLevel != "" {
		v.Set("logLevel", lgLevel)
	}

	// Unmarshal config
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// The org ID is encoded as the last underscore-separated segment of the
	// access token; derive it unless set explicitly.
	if config.API.OrgID == "" && config.API.AccessToken != "" {
		config.API.OrgID = deriveOrgID(config.API.AccessToken)
	}

	return &config, nil
}

// deriveOrgID extracts the organization ID from an access token.
func deriveOrgID(token string) string {
	parts := strings.Split(token, "_")
	return parts[len(parts)-1]
}

// bindEnvs recursively binds environment variables to config struct fields
func bindEnvs(v *viper.Viper, cfg interface{}, parts ...string) {
	ifv := reflect.ValueOf(cfg)
	ift := reflect.TypeOf(cfg)
	for i := 0; i < ift.NumField(); i++ {
		fieldVal := ifv.Field(i)
		fieldType := ift.Field(i)

		// Get the field tag value (mapstructure)
		tag := fieldType.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}

		// Build the env var path
		path := append(parts, tag)
		key := strings.Join(path, ".")

		// If it's a struct, recursively bind its fields
		if fieldType.Type.Kind() == reflect.Struct {
			bindEnvs(v, fieldVal.Interface(), path...)
			continue
		}

		// Bind the env var
		_ = v.BindEnv(key)
	}
}
