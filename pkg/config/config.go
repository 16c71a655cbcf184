package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Mailjet  MailjetConfig
	Redis    RedisConfig
	Upload   UploadConfig
	Admin    AdminSeedConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
	// AdminEmail receives contact-form notifications.
	AdminEmail string
}

type ServerConfig struct {
	Port           string
	AllowOrigins   []string
	RequestTimeout time.Duration
	BodyLimit      string
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	LogLevel        string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	SecretKey    string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

type MailjetConfig struct {
	MailjetBaseUrl           string
	MailjetBasicAuthUsername string
	MailjetBasicAuthPassword string
	MailjetSenderEmail       string
	MailjetSenderName        string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type UploadConfig struct {
	Dir       string
	URLPrefix string
	MaxSizeMB int64
}

type AdminSeedConfig struct {
	Email    string
	Password string
	FullName string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	jwtTTLHours, err := strconv.Atoi(getEnv("JWT_TTL_HOURS", "24"))
	if err != nil || jwtTTLHours <= 0 {
		return nil, errors.New("invalid jwt ttl hours")
	}

	maxUploadMB, err := strconv.ParseInt(getEnv("UPLOAD_MAX_SIZE_MB", "20"), 10, 64)
	if err != nil || maxUploadMB <= 0 {
		return nil, errors.New("invalid upload max size")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Krishi CMS"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			AdminEmail:  getEnv("APP_ADMIN_EMAIL", ""),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowOrigins:   splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
			RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
			BodyLimit:      getEnv("BODY_LIMIT", "25M"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "mysql"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "3306"),
			User:            getEnv("DB_USER", "root"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "krishi_cms"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			LogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 50),
			ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute,
		},
		JWT: JWTConfig{
			SecretKey:    getEnv("JWT_SECRET", ""),
			TTL:          time.Duration(jwtTTLHours) * time.Hour,
			CookieName:   getEnv("JWT_COOKIE_NAME", "token"),
			CookieSecure: getEnv("JWT_COOKIE_SECURE", "false") == "true",
		},
		Mailjet: MailjetConfig{
			MailjetBaseUrl:           getEnv("MAILJET_BASE_URL", "https://api.mailjet.com"),
			MailjetBasicAuthUsername: getEnv("MAILJET_BASIC_AUTH_USERNAME", ""),
			MailjetBasicAuthPassword: getEnv("MAILJET_BASIC_AUTH_PASSWORD", ""),
			MailjetSenderEmail:       getEnv("MAILJET_SENDER_EMAIL", ""),
			MailjetSenderName:        getEnv("MAILJET_SENDER_NAME", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", ""),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Upload: UploadConfig{
			Dir:       getEnv("UPLOAD_DIR", "uploads"),
			URLPrefix: getEnv("UPLOAD_URL_PREFIX", "/uploads"),
			MaxSizeMB: maxUploadMB,
		},
		Admin: AdminSeedConfig{
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
			FullName: getEnv("ADMIN_FULL_NAME", "Administrator"),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Driver != "mysql" && cfg.Database.Driver != "postgres" {
		return nil, errors.New("unsupported database driver")
	}

	return cfg, nil
}

// IsDevelopment reports whether raw errors may be echoed to clients.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// MailjetEnabled reports whether contact notifications can be sent.
func (c *Config) MailjetEnabled() bool {
	return c.Mailjet.MailjetBasicAuthUsername != "" && c.Mailjet.MailjetSenderEmail != "" && c.App.AdminEmail != ""
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultVal
	}

	return val
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
