package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// DataFile is the backing dataset file holding all users and events.
	DataFile string `env:"DATA_FILE, default=data/db.json"`

	// BcryptCost tunes the credential hashing cost. Zero means the bcrypt
	// default; tests lower it to keep hashing fast.
	BcryptCost int `env:"BCRYPT_COST, default=0"`

	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`

	Seed SeedConfig
}

// SeedConfig controls the accounts created at bootstrap when absent. Both
// are issued with defaultPasswordChanged=false, forcing a password change
// on first login.
type SeedConfig struct {
	AdminUsername string `env:"SEED_ADMIN_USERNAME, default=admin"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD, default=admin"`
	UserUsername  string `env:"SEED_USER_USERNAME,  default=user"`
	UserPassword  string `env:"SEED_USER_PASSWORD,  default=users"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
