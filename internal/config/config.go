package config

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Service  *ServiceConfig  `validate:"required"`
	Redis    *RedisConfig    `validate:"required"`
	Postgres *PostgresConfig `validate:"required"`
	Logger   *LoggerConfig   `validate:"required"`
	Tracer   *TracerConfig   `validate:"required"`
	Auth     *AuthConfig     `validate:"required"`
	Socket   *SocketConfig   `validate:"required"`
}

type ServiceConfig struct {
	Name            string        `validate:"required"`
	Env             string        `validate:"required"`
	Addr            string        `validate:"required"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// RedisConfig is optional: an empty URL keeps presence process-local.
type RedisConfig struct {
	URL          string
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
	PingTimeout  time.Duration
	PresenceTTL  time.Duration `validate:"gt=0"`
}

type PostgresConfig struct {
	DSN             string `validate:"required"`
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration `validate:"gt=0"`
	AutoMigrate     bool
}

type LoggerConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json text"`
}

type TracerConfig struct {
	Enabled bool
	Address string `validate:"required_if=Enabled true"`
	// SampleRatio is the share of root traces kept. Child spans follow
	// their parent's decision.
	SampleRatio float64 `validate:"gte=0,lte=1"`
}

type AuthConfig struct {
	Secret   string `validate:"required_if=Required true"`
	Issuer   string
	TokenTTL time.Duration
	Required bool
}

// SocketConfig holds websocket transport parameters.
type SocketConfig struct {
	ReadLimit      int64         `validate:"gt=0"`
	WriteWait      time.Duration `validate:"gt=0"`
	PongWait       time.Duration `validate:"gt=0"`
	PingPeriod     time.Duration `validate:"gt=0,ltfield=PongWait"`
	SendBuffer     int           `validate:"gt=0"`
	AllowedOrigins []string
}

var validate = validator.New()

func (c *Config) Validate() error {
	return validate.Struct(c)
}
