package config

import (
	"log/slog"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type (
	Zrok struct {
		Enabled      bool   `env:"ZROK_ENABLED" envDefault:"false"`
		UseReserved  bool   `env:"ZROK_USE_RESERVED" envDefault:"false"`
		ReservedName string `env:"ZROK_RESERVED_NAME"`
	}

	Database struct {
		Path string `env:"DATABASE_PATH" envDefault:"cards.db"`
	}

	Search struct {
		MinLength       int    `env:"SEARCH_MIN_LENGTH" envDefault:"3"`
		TooShortMessage string `env:"SEARCH_TOO_SHORT_MESSAGE" envDefault:"Le mot n'est pas assez long"`
	}

	Client struct {
		BaseURL             string `env:"CARDS_API_URL" envDefault:"http://localhost:8080"`
		TimeoutMilliseconds int    `env:"CARDS_API_TIMEOUT_MILLISECONDS" envDefault:"10000"`
	}

	Config struct {
		Port               int        `env:"PORT" envDefault:"8080"`
		LogLevel           slog.Level `env:"LOG_LEVEL" envDefault:"info"`
		CORSAllowedOrigins []string   `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
		LiveQueriesEnabled bool       `env:"LIVE_QUERIES_ENABLED" envDefault:"true"`
		Database           Database
		Search             Search
		Zrok               Zrok
		Client             Client
	}
)

var (
	conf Config
	once = &sync.Once{}
)

// Get loads the configuration once from the environment, after merging an
// optional .env file.
func Get() Config {
	once.Do(func() {
		godotenv.Load()
		loaded, err := Parse()
		if err != nil {
			panic(err)
		}
		conf = loaded
	})

	return conf
}

// Parse reads the current environment without caching.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Client) Timeout() time.Duration {
	return time.Duration(c.TimeoutMilliseconds) * time.Millisecond
}
