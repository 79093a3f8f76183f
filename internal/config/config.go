package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time is used for TTL durations
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Secrets (JWT signing key, Stripe keys) and
// collaborator endpoints all come from the environment; the loaded Config
// is passed into constructors rather than read through package globals.
type Config struct {
	Env                 string        // application environment (e.g. "dev", "prod")
	Port                string        // HTTP port to listen on
	DBUser              string        // database username
	DBPass              string        // database password (optional)
	DBHost              string        // database host address
	DBPort              string        // database port number
	DBName              string        // database name
	JWTSecret           string        // secret used to sign admin JWTs
	TokenTTLHours       int           // admin access token time-to-live in hours
	BcryptCost          int           // bcrypt cost for admin password hashing
	Currency            string        // ISO currency code used for all prices
	ClientBaseURL       string        // public site base URL for checkout redirects
	StripeSecretKey     string        // Stripe API secret key
	StripeWebhookSecret string        // Stripe webhook signing secret
	PendingHoldTTL      time.Duration // how long a pending reservation holds its dates
	BookingLockTTL      time.Duration // lifetime of the per-room booking lock
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message. Variables with a
// sensible default are optional.
func Load() Config {
	return Config{
		Env:                 must("APP_ENV"),
		Port:                must("APP_PORT"),
		DBUser:              must("DB_USER"),
		DBPass:              os.Getenv("DB_PASS"), // empty allowed
		DBHost:              must("DB_HOST"),
		DBPort:              must("DB_PORT"),
		DBName:              must("DB_NAME"),
		JWTSecret:           must("JWT_SECRET"),
		TokenTTLHours:       envInt("ADMIN_TOKEN_TTL_HOURS", 24),
		BcryptCost:          envInt("BCRYPT_COST", 12),
		Currency:            envStr("CURRENCY", "USD"),
		ClientBaseURL:       envStr("CLIENT_BASE_URL", "http://localhost:5000"),
		StripeSecretKey:     must("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: must("STRIPE_WEBHOOK_SECRET"),
		PendingHoldTTL:      envDur("PENDING_HOLD_TTL", 30*time.Minute),
		BookingLockTTL:      envDur("BOOKING_LOCK_TTL", 10*time.Second),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, v)
	}
	return d
}
