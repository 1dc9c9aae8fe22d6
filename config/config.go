// config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSessionSecret = "change-this-session-secret"
)

type Config struct {
	DBURL      string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort int

	StorageDriver     string
	SQLitePath        string
	MigrationsEnabled bool

	UploadDir       string
	UploadURLPrefix string
	MaxUploadSize   int64

	SessionSecret string
	SessionTTL    time.Duration
	AdminUsername string
	AdminPassword string

	LogEnv      string
	InitTimeout time.Duration
}

// LoadConfig reads envFiles (".env" when none given) and then the process
// environment. A missing .env file is not an error.
func LoadConfig(envFiles ...string) (*Config, error) {
	godotenv.Load(envFiles...)

	serverPort, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		serverPort = 8080
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbPort, err := strconv.Atoi(os.Getenv("DB_PORT"))
		if err != nil {
			dbPort = 5432
		}
		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), getEnv("DB_HOST", "localhost"), dbPort, os.Getenv("DB_NAME"))
	}

	parsedDBURL, err := url.Parse(dbURL)
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	dbPortParsed, _ := strconv.Atoi(parsedDBURL.Port())
	dbPassword, _ := parsedDBURL.User.Password()

	driver := strings.ToLower(getEnv("STORAGE_DRIVER", DriverPostgres))
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", driver)
	}

	maxUpload, err := strconv.ParseInt(getEnv("MAX_UPLOAD_SIZE", strconv.Itoa(50<<20)), 10, 64)
	if err != nil || maxUpload <= 0 {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE %q", os.Getenv("MAX_UPLOAD_SIZE"))
	}

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	initTimeout, err := time.ParseDuration(getEnv("INIT_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid INIT_TIMEOUT: %w", err)
	}

	return &Config{
		DBURL:      dbURL,
		DBHost:     parsedDBURL.Hostname(),
		DBPort:     dbPortParsed,
		DBUser:     parsedDBURL.User.Username(),
		DBPassword: dbPassword,
		DBName:     strings.TrimPrefix(parsedDBURL.Path, "/"),
		ServerPort: serverPort,

		StorageDriver:     driver,
		SQLitePath:        getEnv("SQLITE_PATH", "data/database.sqlite"),
		MigrationsEnabled: getEnv("MIGRATIONS_ENABLED", "true") != "false",

		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		UploadURLPrefix: getEnv("UPLOAD_URL_PREFIX", "/uploads"),
		MaxUploadSize:   maxUpload,

		SessionSecret: getEnv("SESSION_SECRET", defaultSessionSecret),
		SessionTTL:    sessionTTL,
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "F1003J"),

		LogEnv:      getEnv("LOG_ENV", "development"),
		InitTimeout: initTimeout,
	}, nil
}

// UsesDefaultSecret reports whether SESSION_SECRET was left unset.
func (c *Config) UsesDefaultSecret() bool {
	return c.SessionSecret == defaultSessionSecret
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
