package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

type Config struct {
	Port string `envconfig:"PORT" default:"5000"`

	// ACCESS_TOKEN_SECRET signs every token; it is read once at startup.
	TokenSecret string `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`

	StoreDriver        string `envconfig:"STORE_DRIVER" default:"mongo"`
	MongoURI           string `envconfig:"MONGO_URI"`
	MongoDatabase      string `envconfig:"MONGO_DATABASE" default:"doctors_portal"`
	BookingUniqueIndex bool   `envconfig:"BOOKING_UNIQUE_INDEX" default:"false"`

	PaymentSecretKey string `envconfig:"PAYMENT_SECRET_KEY"`
	TextbeltAPIKey   string `envconfig:"TEXTBELT_API_KEY"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
	LoginRate   float64  `envconfig:"LOGIN_RATE" default:"1"`
	LoginBurst  int      `envconfig:"LOGIN_BURST" default:"5"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.TokenSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET must not be empty")
	}
	switch c.StoreDriver {
	case "mongo":
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when STORE_DRIVER=mongo")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.LoginRate <= 0 || c.LoginBurst <= 0 {
		return fmt.Errorf("LOGIN_RATE and LOGIN_BURST must be positive")
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// Logger builds the process logger from LOG_LEVEL and LOG_PRETTY.
func (c Config) Logger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if c.LogPretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}
