package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMongo  = "mongo"
	StorageBolt   = "bolt"
	StorageMemory = "memory"
)

type Config struct {
	Port           string
	StorageBackend string
	BoltPath       string
	SeedOnEmpty    bool

	Mongo  MongoConfig
	Report ReportConfig
	Log    LogConfig
}

type MongoConfig struct {
	URI      string
	Username string
	Password string
	Cluster  string
	AppName  string
	Database string
}

type ReportConfig struct {
	APIKey       string
	Model        string
	Timeout      time.Duration
	RateInterval time.Duration
	Retention    time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// ConnectionURI returns MONGO_URI when set, otherwise the Atlas SRV URI built
// from the credential parts.
func (m MongoConfig) ConnectionURI() string {
	if m.URI != "" {
		return m.URI
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=%s",
		m.Username, m.Password, m.Cluster, m.AppName)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8081")
	v.SetDefault("STORAGE_BACKEND", StorageBolt)
	v.SetDefault("BOLT_PATH", "kpi.db")
	v.SetDefault("SEED_ON_EMPTY", true)
	v.SetDefault("MONGO_DATABASE", "kpi_dashboard")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("REPORT_TIMEOUT", 60*time.Second)
	v.SetDefault("REPORT_RATE_INTERVAL", 2*time.Second)
	v.SetDefault("REPORT_RETENTION", time.Hour)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	// A missing .env is fine: the process environment is used as is.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	apiKey := v.GetString("API_KEY")
	if apiKey == "" {
		apiKey = v.GetString("GEMINI_API_KEY")
	}

	cfg := &Config{
		Port:           v.GetString("PORT"),
		StorageBackend: strings.ToLower(v.GetString("STORAGE_BACKEND")),
		BoltPath:       v.GetString("BOLT_PATH"),
		SeedOnEmpty:    v.GetBool("SEED_ON_EMPTY"),
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Username: v.GetString("MONGO_USERNAME"),
			Password: v.GetString("MONGO_PASSWORD"),
			Cluster:  v.GetString("MONGO_CLUSTER"),
			AppName:  v.GetString("MONGO_APP_NAME"),
			Database: v.GetString("MONGO_DATABASE"),
		},
		Report: ReportConfig{
			APIKey:       apiKey,
			Model:        v.GetString("GEMINI_MODEL"),
			Timeout:      v.GetDuration("REPORT_TIMEOUT"),
			RateInterval: v.GetDuration("REPORT_RATE_INTERVAL"),
			Retention:    v.GetDuration("REPORT_RETENTION"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageMongo:
		m := c.Mongo
		if m.URI == "" && (m.Username == "" || m.Password == "" || m.Cluster == "" || m.AppName == "") {
			return errors.New("mongo storage requires MONGO_URI or MONGO_USERNAME, MONGO_PASSWORD, MONGO_CLUSTER and MONGO_APP_NAME")
		}
	case StorageBolt:
		if c.BoltPath == "" {
			return errors.New("bolt storage requires BOLT_PATH")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.Report.Timeout <= 0 {
		return errors.New("REPORT_TIMEOUT must be positive")
	}
	return nil
}
