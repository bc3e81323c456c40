package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime settings read from the environment. A single
// instance is built in main and handed to the router and services.
type Config struct {
	Port           string
	DBURL          string
	AllowedOrigins []string

	// Twilio is optional; booking confirmations are skipped when unset.
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

// Load reads configuration from environment variables. DB_URL and JWT_SECRET
// are required; everything else has a sensible default.
func Load() Config {
	// The token helpers in utils read JWT_SECRET and JWT_EXPIRY_HOURS from
	// the environment per request; fail fast here if they are unusable.
	must("JWT_SECRET")
	getenvInt("JWT_EXPIRY_HOURS", 24)

	cfg := Config{
		Port:             getenv("PORT", "8080"),
		DBURL:            must("DB_URL"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
	}

	origins := getenv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg
}

func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
