package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string  `envconfig:"APP_ENV" default:"local"`
	Port         int     `envconfig:"PORT" default:"5000"`
	SentryDSN    string  `envconfig:"SENTRY_DSN"`
	AllowOrigins string  `envconfig:"ALLOW_ORIGINS" default:"*"`
	RateLimit    float64 `envconfig:"RATE_LIMIT" default:"20"`

	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT" default:"5432"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	Sweeper struct {
		Interval time.Duration `envconfig:"SWEEP_INTERVAL" default:"60s"`
		Timezone string        `envconfig:"CLUB_TIMEZONE" default:"Local"`
	}
	Upload struct {
		Dir            string `envconfig:"UPLOAD_DIR" default:"uploads"`
		MaxPosterBytes int64  `envconfig:"UPLOAD_MAX_POSTER_BYTES" default:"10485760"`
	}
	Auth struct {
		JWTSecret        string        `envconfig:"AUTH_JWT_SECRET"`
		TokenTTL         int           `envconfig:"AUTH_TOKEN_TTL" default:"3600"`
		HashPasswords    bool          `envconfig:"AUTH_HASH_PASSWORDS"`
		BcryptCost       int           `envconfig:"AUTH_BCRYPT_COST" default:"10"`
		MaxLoginAttempts int           `envconfig:"AUTH_MAX_LOGIN_ATTEMPTS" default:"0"`
		LockoutDuration  time.Duration `envconfig:"AUTH_LOCKOUT_DURATION" default:"15m"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}

// Origins splits ALLOW_ORIGINS into the list expected by the CORS middleware.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Location resolves CLUB_TIMEZONE. Showtimes are wall-clock values in this zone.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Sweeper.Timezone)
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load config error: invalid CLUB_TIMEZONE %q: %v", name, err)
	}
	return loc, nil
}

// TokenTTL returns AUTH_TOKEN_TTL as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTL) * time.Second
}
