package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// insecureDevSecret is the signing secret used when JWT_SECRET is unset or too
// short outside production. Development-only fallback; production refuses to
// sign with it and fails hard instead.
const insecureDevSecret = "insecure-dev-secret"

// MinSecretLength is the minimum accepted JWT_SECRET length.
const MinSecretLength = 16

// ErrSecretMissing is returned when running in production without a usable
// JWT_SECRET.
var ErrSecretMissing = errors.New("JWT_SECRET must be set to at least 16 characters in production")

type Config struct {
	Server      ServerConfig
	Environment string
}

type ServerConfig struct {
	Port int
}

func Load() *Config {
	// .env is optional; real env vars win either way
	_ = godotenv.Load(".env")

	serverPort, _ := strconv.Atoi(getEnv("SERVER_PORT", "8080"))

	return &Config{
		Server: ServerConfig{
			Port: serverPort,
		},
		Environment: getEnv("APP_ENV", "development"),
	}
}

// ResolveJWTSecret resolves the token signing secret from the environment on
// every call, so a secret fixed while the process is running takes effect
// without a restart. Outcomes: a JWT_SECRET of at least MinSecretLength
// characters is used as-is; otherwise the insecure development default outside
// production, or ErrSecretMissing in production.
func ResolveJWTSecret() (string, error) {
	if secret := os.Getenv("JWT_SECRET"); len(secret) >= MinSecretLength {
		return secret, nil
	}

	if getEnv("APP_ENV", "development") == "production" {
		return "", ErrSecretMissing
	}

	return insecureDevSecret, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
