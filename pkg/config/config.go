package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Catalog      CatalogConfig
	CORS         CORSConfig
}

// Load reads RFLINK_* variables, resolves the database DSN and rejects
// settings the api cannot start with. Every problem is reported at once.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
		cfg.DB.DSN = cfg.Catalog.SQLitePath
	} else if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	cfg.CORS.AllowedOrigins = cleanOrigins(cfg.CORS.AllowedOrigins)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var err error
	if port, perr := strconv.Atoi(c.App.Port); perr != nil || port < 1 || port > 65535 {
		err = multierr.Append(err, fmt.Errorf("%s must be a TCP port, got %q", EnvPort, c.App.Port))
	}
	if c.Redis.URL == "" && c.Redis.Address == "" {
		err = multierr.Append(err, fmt.Errorf("either %s or %s is required", EnvRedisURL, EnvRedisAddr))
	}
	if c.Catalog.SnapshotTTL <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvSnapshotTTL))
	}
	if c.Catalog.CatalogTTL <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvCableTypesTTL))
	}
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func cleanOrigins(origins []string) []string {
	out := origins[:0]
	for _, origin := range origins {
		if origin = strings.TrimRight(strings.TrimSpace(origin), "/"); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}

type AppConfig struct {
	Env          string `envconfig:"RFLINK_APP_ENV" required:"true"`
	Port         string `envconfig:"RFLINK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RFLINK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RFLINK_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"RFLINK_LOG_FORMAT"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"RFLINK_DB_DSN"`
	Driver string `envconfig:"RFLINK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"RFLINK_DB_HOST"`
	LegacyPort     int    `envconfig:"RFLINK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"RFLINK_DB_USER"`
	LegacyPassword string `envconfig:"RFLINK_DB_PASSWORD"`
	LegacyName     string `envconfig:"RFLINK_DB_NAME"`
	LegacySSLMode  string `envconfig:"RFLINK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RFLINK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RFLINK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RFLINK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RFLINK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RFLINK_REDIS_URL"`
	Address      string        `envconfig:"RFLINK_REDIS_ADDR"`
	Password     string        `envconfig:"RFLINK_REDIS_PASSWORD"`
	DB           int           `envconfig:"RFLINK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RFLINK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RFLINK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RFLINK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RFLINK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RFLINK_REDIS_WRITE_TIMEOUT" default:"5s"`
	KeyPrefix    string        `envconfig:"RFLINK_REDIS_KEY_PREFIX" default:"rf"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"RFLINK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"RFLINK_AUTO_MIGRATE" default:"false"`
}

// CatalogConfig controls how product snapshots and the cable catalog are cached.
type CatalogConfig struct {
	SnapshotTTL time.Duration `envconfig:"RFLINK_CATALOG_SNAPSHOT_TTL" default:"10m"`
	CatalogTTL  time.Duration `envconfig:"RFLINK_CATALOG_CABLE_TYPES_TTL" default:"1h"`
	SQLitePath  string        `envconfig:"RFLINK_SQLITE_PATH" default:"rflink.db"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"RFLINK_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
