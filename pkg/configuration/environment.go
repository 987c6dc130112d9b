package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/careops/staffhub/pkg/logging"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

// LoadEnv loads the given env files from the working directory, falling back
// to the module root (the nearest parent directory containing go.mod) so that
// tests run from package directories still pick up the repo-level .env files.
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if resolved, ok := resolveEnvFile(file); ok {
			existing = append(existing, resolved)
		}
	}

	if len(existing) == 0 {
		return 0, nil
	}

	return len(existing), godotenv.Load(existing...)
}

func resolveEnvFile(name string) (string, bool) {
	if fileExists(name) {
		return name, true
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if fileExists(filepath.Join(dir, "go.mod")) {
			candidate := filepath.Join(dir, name)
			if fileExists(candidate) {
				return candidate, true
			}
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

type DatabaseOptions struct {
	Opts     string `env:"-"`
	Name     string `env:"DB_NAME" envDefault:"staffhub"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type Configuration struct {
	Database DatabaseOptions

	MigrationsEnabled bool   `env:"MIGRATIONS_ENABLED" envDefault:"true"`
	ServerPort        int    `env:"PORT" envDefault:"8080"`
	SocketAddress     string `env:"-"`
	Origin            string `env:"ORIGIN" envDefault:"http://localhost:8080"`
	AllowedOrigins    string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`
	Environment       string `env:"GO_APP_ENV" envDefault:"development"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	LogPath           string `env:"LOG_PATH" envDefault:"./logs/app.log"`
	RequestIDHeader   string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`

	logger *logrus.Logger
	loaded []string
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		log.Println("no .env files found, using environment variables")
	}

	if err := env.Parse(c); err != nil {
		return err
	}
	if err := env.Parse(&c.Database); err != nil {
		return err
	}

	c.Database.Opts = c.Database.ConnectionString()
	c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	c.loaded = envFiles

	if c.Environment == Production {
		c.logger = logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
	} else {
		c.logger = logging.ConsoleLogger(c.LogrusLogLevel())
	}
	return nil
}

// Unload drops the cached state so a subsequent panic handler does not
// observe a half-loaded configuration.
func (c *Configuration) Unload() {
	c.logger = nil
	c.loaded = nil
}
