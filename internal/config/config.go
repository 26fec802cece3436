package config

import (
	"os"
	"strings"
)

type Config struct {
	MongoURI string
	RedisURI string
	Port     string

	// TimeZone fixes every period boundary (day, week, month keys and all
	// cron schedules) to one named zone, regardless of host locale.
	TimeZone string

	// FirebaseCredentialsFile is the service-account JSON used by the FCM
	// client. Empty disables push delivery (drivers still run and commit).
	FirebaseCredentialsFile string

	// AdminKey protects manual trigger and maintenance endpoints.
	AdminKey string

	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS, comma separated
	Environment    string   // ENV: production, development, etc.
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	return &Config{
		MongoURI:                getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/walkzilla")),
		RedisURI:                getEnv("REDIS_URI", "redis://localhost:6379/0"),
		Port:                    getEnv("PORT", "8080"),
		TimeZone:                getEnv("TIME_ZONE", "Asia/Karachi"),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		AdminKey:                getEnv("ADMIN_API_KEY", ""),
		AllowedOrigins:          allowedOrigins,
		Environment:             env,
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
