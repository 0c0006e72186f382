package config

import "os"

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Gemini   GeminiConfig
	Postgres PostgresConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins string
}

type AuthConfig struct {
	JWTSecret      string
	JWTAlgorithm   string
	JWTAccessTTL   string
	CookieDomain   string
	CookiePath     string
	CookieSecure   string
	CookieSameSite string
	AdminUsername  string
	AdminPassword  string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:        getenv("PORT", "8080"),
			CORSOrigins: os.Getenv("CORS_ORIGINS"),
		},
		Auth: AuthConfig{
			JWTSecret:      os.Getenv("JWT_SECRET"),
			JWTAlgorithm:   getenv("JWT_ALGORITHM", "HS256"),
			JWTAccessTTL:   getenv("JWT_ACCESS_TTL", "24h"),
			CookieDomain:   os.Getenv("AUTH_COOKIE_DOMAIN"),
			CookiePath:     getenv("AUTH_COOKIE_PATH", "/"),
			CookieSecure:   os.Getenv("AUTH_COOKIE_SECURE"),
			CookieSameSite: os.Getenv("AUTH_COOKIE_SAMESITE"),
			AdminUsername:  os.Getenv("ADMIN_USERNAME"),
			AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getenv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
