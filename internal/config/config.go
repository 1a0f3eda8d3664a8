package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverDynamoDB = "dynamodb"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

type Config struct {
	AppName string      `mapstructure:"app_name"`
	HTTP    HTTPConfig  `mapstructure:"http"`
	Store   StoreConfig `mapstructure:"store"`
	Log     LogConfig   `mapstructure:"log"`
}

type HTTPConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`

	// mongo
	MongoURI string `mapstructure:"mongo_uri"`

	// postgres / sqlite
	DSN string `mapstructure:"dsn"`

	// redis
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	// dynamodb
	DynamoEndpoint string `mapstructure:"dynamodb_endpoint"`
	AWSRegion      string `mapstructure:"aws_region"`
	TablePrefix    string `mapstructure:"table_prefix"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.HTTP.Port)
}

// env vars por key; la primera que esté seteada gana.
var envBindings = map[string][]string{
	"app_name":                {"APP_NAME"},
	"http.port":               {"PORT", "NODE_PORT"},
	"store.driver":            {"STORE_DRIVER"},
	"store.mongo_uri":         {"MONGODB_URI"},
	"store.dsn":               {"DB_DSN"},
	"store.redis_addr":        {"REDIS_ADDR"},
	"store.redis_password":    {"REDIS_PASSWORD"},
	"store.redis_db":          {"REDIS_DB"},
	"store.dynamodb_endpoint": {"DYNAMODB_ENDPOINT"},
	"store.aws_region":        {"AWS_REGION"},
	"store.table_prefix":      {"DYNAMODB_TABLE_PREFIX"},
	"log.level":               {"LOG_LEVEL"},
	"log.format":              {"LOG_FORMAT"},
}

// flag -> key
var flagBindings = map[string]string{
	"port":      "http.port",
	"store":     "store.driver",
	"log-level": "log.level",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "pets-mvc")
	v.SetDefault("http.port", 3000)
	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("store.driver", DriverMongo)
	v.SetDefault("store.mongo_uri", "mongodb://localhost/simpleMVCExample")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.aws_region", "us-west-2")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load: flags > env > archivo (opcional) > defaults.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	cfg, err := read(path, flags)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadHTTP resuelve igual que Load pero valida solo la sección http:
// el healthcheck no necesita que el store esté bien configurado.
func LoadHTTP(path string, flags *pflag.FlagSet) (HTTPConfig, error) {
	cfg, err := read(path, flags)
	if err != nil {
		return HTTPConfig{}, err
	}
	if err := cfg.HTTP.Validate(); err != nil {
		return HTTPConfig{}, err
	}
	return cfg.HTTP, nil
}

func read(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return Config{}, err
		}
	}

	if flags != nil {
		for name, key := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, err
				}
			}
		}
	}

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	return cfg, nil
}

func (h HTTPConfig) Validate() error {
	if h.Port <= 0 || h.Port > 65535 {
		return &ConfigError{Field: "http.port", Message: "must be between 1 and 65535"}
	}
	return nil
}

func (c Config) Validate() error {
	if err := c.HTTP.Validate(); err != nil {
		return err
	}

	switch c.Store.Driver {
	case DriverMongo:
		if strings.TrimSpace(c.Store.MongoURI) == "" {
			return &ConfigError{Field: "store.mongo_uri", Message: "required for mongo"}
		}
	case DriverPostgres, DriverSQLite:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return &ConfigError{Field: "store.dsn", Message: "required for " + c.Store.Driver}
		}
	case DriverRedis:
		if strings.TrimSpace(c.Store.RedisAddr) == "" {
			return &ConfigError{Field: "store.redis_addr", Message: "required for redis"}
		}
	case DriverDynamoDB, DriverMemory:
	default:
		return &ConfigError{Field: "store.driver", Message: fmt.Sprintf("unknown driver %q", c.Store.Driver)}
	}
	return nil
}

var ErrInvalidConfig = errors.New("invalid config")

type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }
