package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env        string `env:"APP_ENV" env-default:"local"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info"`
	BcryptCost int    `env:"BCRYPT_COST" env-default:"12"`
	HTTP       HTTP
	Mongo      Mongo
	JWT        JWT
}

type HTTP struct {
	Port            string        `env:"PORT" env-default:"3001"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	AllowedOrigins  []string      `env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://localhost:3001,http://localhost:59494,http://127.0.0.1:59494,http://localhost:8080,http://127.0.0.1:8080,http://localhost:5000,http://127.0.0.1:5000"`
}

type Mongo struct {
	URI      string        `env:"MONGO_URI" env-required:"true"`
	Database string        `env:"DB_NAME" env-default:"inventory"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT" env-default:"5s"`
}

type JWT struct {
	Secret string        `env:"JWT_SECRET" env-required:"true"`
	TTL    time.Duration `env:"JWT_TTL" env-default:"1h"`
}

// LoadEnv loads variables from the given dotenv files (".env" when none are
// given) into the process environment. Missing files are not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, fmt.Errorf("bcrypt cost %d out of range", cfg.BcryptCost)
	}
	if cfg.JWT.TTL <= 0 {
		return nil, fmt.Errorf("jwt ttl must be positive")
	}
	return &cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.HTTP.Port
}
