package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	Port           string
	JWTSecret      string
	IdentitySecret string

	AdminSessionTTL        time.Duration
	BootstrapAdminUsername string
	BootstrapAdminPassword string

	CORSOrigins []string
	LogLevel    string
	LogFormat   string

	QueryTimeout    time.Duration
	DefaultPageSize int
	MaxPageSize     int

	// EnvFileErr is kept so the caller can log it once logging is up.
	EnvFileErr error
}

func Load() {
	envErr := godotenv.Load()

	AppEnv = Config{
		MongoURI:               getEnvOrDefault("MONGO_URI", ""),
		DBName:                 getEnvOrDefault("DB_NAME", "nakliyeci"),
		Port:                   getEnvOrDefault("PORT", "8080"),
		JWTSecret:              getEnvOrDefault("JWT_SECRET", ""),
		IdentitySecret:         getEnvOrDefault("IDENTITY_SECRET", ""),
		AdminSessionTTL:        getDurationEnv("ADMIN_SESSION_TTL", 60, time.Minute),
		BootstrapAdminUsername: getEnvOrDefault("ADMIN_BOOTSTRAP_USERNAME", ""),
		BootstrapAdminPassword: getEnvOrDefault("ADMIN_BOOTSTRAP_PASSWORD", ""),
		CORSOrigins:            getListEnv("CORS_ORIGINS", []string{"*"}),
		LogLevel:               getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:              getEnvOrDefault("LOG_FORMAT", "json"),
		QueryTimeout:           getDurationEnv("QUERY_TIMEOUT", 5, time.Second),
		DefaultPageSize:        getIntEnv("DEFAULT_PAGE_SIZE", 12),
		MaxPageSize:            getIntEnv("MAX_PAGE_SIZE", 100),
		EnvFileErr:             envErr,
	}
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	var problems []error
	if c.MongoURI == "" {
		problems = append(problems, errors.New("MONGO_URI is required"))
	}
	if c.JWTSecret == "" {
		problems = append(problems, errors.New("JWT_SECRET is required"))
	}
	switch {
	case c.IdentitySecret == "":
		problems = append(problems, errors.New("IDENTITY_SECRET is required"))
	case c.IdentitySecret == c.JWTSecret:
		problems = append(problems, errors.New("IDENTITY_SECRET must differ from JWT_SECRET"))
	}
	if c.DefaultPageSize > c.MaxPageSize {
		problems = append(problems, errors.New("DEFAULT_PAGE_SIZE cannot exceed MAX_PAGE_SIZE"))
	}
	return errors.Join(problems...)
}
