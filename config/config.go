package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the process needs, resolved once at startup and
// passed by parameter from there on.
type Config struct {
	Port               string
	DatabaseURL        string
	DatabaseReplicaURL string

	JWTSecret string
	TokenTTL  time.Duration

	AllowedOrigins []string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load snapshots the environment and resolves the typed configuration.
func Load() Config {
	env := New()

	return Config{
		Port:               GetString(env, "PORT", "8080"),
		DatabaseURL:        GetString(env, "DATABASE_URL", ""),
		DatabaseReplicaURL: GetString(env, "DATABASE_REPLICA_URL", ""),
		JWTSecret:          GetString(env, "JWT_SECRET", ""),
		TokenTTL:           time.Duration(GetInt(env, "TOKEN_TTL_SECONDS", 86400)) * time.Second,
		AllowedOrigins:     splitList(GetString(env, "ACCEPTED_ORIGINS", "*")),
		ReadTimeout:        time.Duration(GetInt(env, "READ_TIMEOUT_SECONDS", 60)) * time.Second,
		WriteTimeout:       time.Duration(GetInt(env, "WRITE_TIMEOUT_SECONDS", 60)) * time.Second,
		IdleTimeout:        time.Duration(GetInt(env, "IDLE_TIMEOUT_SECONDS", 120)) * time.Second,
		ShutdownTimeout:    time.Duration(GetInt(env, "SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}
