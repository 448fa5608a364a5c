package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Storage drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Auth providers
const (
	ProviderFirebase = "firebase"
	ProviderHMAC     = "hmac"
)

const defaultFirebaseJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Storage  StorageConfig  `toml:"storage"`
	Mongo    MongoConfig    `toml:"mongo"`
	Postgres PostgresConfig `toml:"postgres"`
	Auth     AuthConfig     `toml:"auth"`
	CORS     CORSConfig     `toml:"cors"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// StorageConfig выбор драйвера хранилища
type StorageConfig struct {
	Driver string `toml:"driver"`
	// Таймаут одной операции с хранилищем в секундах
	OperationTimeout int `toml:"operation_timeout"`
}

// MongoConfig параметры подключения к MongoDB
type MongoConfig struct {
	URI            string `toml:"uri"`
	Database       string `toml:"database"`
	ConnectTimeout int    `toml:"connect_timeout"`
	MaxPoolSize    uint64 `toml:"max_pool_size"`
}

// PostgresConfig параметры подключения к PostgreSQL
type PostgresConfig struct {
	DSNOverride     string `toml:"dsn"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	RunMigrations   bool   `toml:"run_migrations"`
}

// DSN возвращает строку подключения. Явно заданный dsn имеет приоритет.
func (c PostgresConfig) DSN() string {
	if c.DSNOverride != "" {
		return c.DSNOverride
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// AuthConfig параметры проверки bearer токенов
type AuthConfig struct {
	Provider string         `toml:"provider"`
	Timeout  int            `toml:"timeout"`
	Firebase FirebaseConfig `toml:"firebase"`
	HMAC     HMACConfig     `toml:"hmac"`
}

// VerifyTimeout возвращает таймаут проверки токена
func (c AuthConfig) VerifyTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// FirebaseConfig проверка ID токенов identity provider по JWKS
type FirebaseConfig struct {
	ProjectID       string `toml:"project_id"`
	JWKSURL         string `toml:"jwks_url"`
	RefreshInterval int    `toml:"refresh_interval"`
}

// HMACConfig проверка HS256 токенов (локальная разработка)
type HMACConfig struct {
	Secret   string `toml:"secret"`
	Issuer   string `toml:"issuer"`
	Audience string `toml:"audience"`
}

// CORSConfig разрешенные источники клиентского приложения
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig параметры Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        7050,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Storage: StorageConfig{
			Driver:           DriverMongo,
			OperationTimeout: 5,
		},
		Mongo: MongoConfig{
			URI:            "mongodb://localhost:27017",
			Database:       "carwash",
			ConnectTimeout: 10,
			MaxPoolSize:    50,
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "carwash",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			RunMigrations:   true,
		},
		Auth: AuthConfig{
			Provider: ProviderFirebase,
			Timeout:  5,
			Firebase: FirebaseConfig{
				JWKSURL:         defaultFirebaseJWKSURL,
				RefreshInterval: 3600,
			},
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "carwash-booking",
		},
	}
}

// Load читает TOML файл, применяет переменные окружения и валидирует результат.
// Отсутствующий файл не является ошибкой: используются значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

type lookupFunc func(key string) (string, bool)

// applyEnv переопределяет значения из переменных окружения CARWASH_*
func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("CARWASH_STORAGE_DRIVER", &c.Storage.Driver)
	str("CARWASH_MONGO_URI", &c.Mongo.URI)
	str("CARWASH_MONGO_DATABASE", &c.Mongo.Database)
	str("CARWASH_POSTGRES_DSN", &c.Postgres.DSNOverride)
	str("CARWASH_AUTH_PROVIDER", &c.Auth.Provider)
	str("CARWASH_FIREBASE_PROJECT_ID", &c.Auth.Firebase.ProjectID)
	str("CARWASH_AUTH_HMAC_SECRET", &c.Auth.HMAC.Secret)
	str("CARWASH_LOG_LEVEL", &c.Logs.Level)
	str("CARWASH_LOG_FILE", &c.Logs.File)

	if v, ok := lookup("CARWASH_HTTP_PORT"); ok && strings.TrimSpace(v) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: CARWASH_HTTP_PORT=%q", ErrInvalidEnv, v)
		}
		c.Server.HTTPPort = port
	}

	if v, ok := lookup("CARWASH_ALLOWED_ORIGIN"); ok && strings.TrimSpace(v) != "" {
		origins := make([]string, 0)
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORS.AllowedOrigins = origins
	}

	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return fmt.Errorf("%w: mongo.uri and mongo.database are required", ErrInvalidConfig)
		}
	case DriverPostgres:
		if c.Postgres.DSNOverride == "" && (c.Postgres.Host == "" || c.Postgres.DBName == "") {
			return fmt.Errorf("%w: postgres.dsn or postgres.host/dbname are required", ErrInvalidConfig)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	switch c.Auth.Provider {
	case ProviderFirebase:
		if c.Auth.Firebase.ProjectID == "" {
			return fmt.Errorf("%w: auth.firebase.project_id is required", ErrInvalidConfig)
		}
		if c.Auth.Firebase.JWKSURL == "" {
			return fmt.Errorf("%w: auth.firebase.jwks_url is required", ErrInvalidConfig)
		}
	case ProviderHMAC:
		if len(c.Auth.HMAC.Secret) < 32 {
			return fmt.Errorf("%w: auth.hmac.secret must be at least 32 bytes", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown auth.provider %q", ErrInvalidConfig, c.Auth.Provider)
	}

	if c.Auth.Timeout <= 0 {
		return fmt.Errorf("%w: auth.timeout must be positive", ErrInvalidConfig)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with '/'", ErrInvalidConfig)
	}

	return nil
}
