package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvLocal       = "local"
)

// Storage drivers understood by DatabaseConfig.Driver.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Env       string
	Host      string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Mongo    MongoConfig
	Postgres PostgresConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Swagger  SwaggerConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Driver  string
	Timeout time.Duration
}

// MongoConfig holds the document store connection settings.
type MongoConfig struct {
	URI       string
	AppName   string
	Database  string
	User      string
	Password  string
	TLSCAFile string
}

type PostgresConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// AuthConfig configures the bearer token gate. An empty secret leaves the API open.
type AuthConfig struct {
	JWTSecret string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	Credentials    bool
}

type SwaggerConfig struct {
	Title       string
	Version     string
	Description string
	Path        string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Host = v.GetString("APP_HOST")
	cfg.Port = v.GetInt("APP_PORT")
	cfg.APIPrefix = strings.TrimRight(v.GetString("API_PREFIX"), "/")

	cfg.Database = DatabaseConfig{
		Driver:  strings.ToLower(v.GetString("DB_DRIVER")),
		Timeout: parseDuration(v.GetString("DB_TIMEOUT"), 10*time.Second),
	}

	cfg.Mongo = MongoConfig{
		URI:       v.GetString("MONGODB_URI"),
		AppName:   v.GetString("MONGODB_APP_NAME"),
		Database:  v.GetString("MONGODB_DATABASE"),
		User:      v.GetString("MONGODB_USER"),
		Password:  v.GetString("MONGODB_PASSWORD"),
		TLSCAFile: v.GetString("MONGO_SSL_CRT_PATH"),
	}

	cfg.Postgres = PostgresConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Auth = AuthConfig{JWTSecret: strings.TrimSpace(v.GetString("AUTHENTICATION_JWT_SECRET"))}

	cfg.CORS = CORSConfig{
		AllowedOrigins: splitAndTrim(v.GetString("CORS_ORIGIN")),
		AllowedMethods: splitAndTrim(v.GetString("CORS_METHODS")),
		AllowedHeaders: splitAndTrim(v.GetString("CORS_ALLOWED_HEADERS")),
		Credentials:    v.GetBool("CORS_CREDENTIALS"),
	}

	cfg.Swagger = SwaggerConfig{
		Title:       v.GetString("SWAGGER_APP_NAME"),
		Version:     v.GetString("SWAGGER_APP_VERSION"),
		Description: v.GetString("SWAGGER_APP_DESCRIPTION"),
		Path:        strings.Trim(v.GetString("SWAGGER_APP_PATH"), "/"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("APP_HOST", "")
	v.SetDefault("APP_PORT", 3000)
	v.SetDefault("API_PREFIX", "")

	v.SetDefault("DB_DRIVER", DriverMongo)
	v.SetDefault("DB_TIMEOUT", "10s")

	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_APP_NAME", "educamedic-api")
	v.SetDefault("MONGODB_DATABASE", "educamedic")
	v.SetDefault("MONGODB_USER", "")
	v.SetDefault("MONGODB_PASSWORD", "")
	v.SetDefault("MONGO_SSL_CRT_PATH", "")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "educamedic")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("AUTHENTICATION_JWT_SECRET", "")

	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("CORS_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "Accept, Authorization, Authentication, Content-Type, If-None-Match, SourceType, X-Request-ID")
	v.SetDefault("CORS_CREDENTIALS", true)

	v.SetDefault("SWAGGER_APP_NAME", "Educamedic API")
	v.SetDefault("SWAGGER_APP_VERSION", "1.0")
	v.SetDefault("SWAGGER_APP_DESCRIPTION", "API for Educamedic project")
	v.SetDefault("SWAGGER_APP_PATH", "api")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// isMissingFile reports whether viper failed because .env is absent. With
// SetConfigFile viper returns the raw fs error instead of ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
