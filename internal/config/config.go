package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  The facility constants (slot count,
// waiting capacity, fee rate, vehicle id range) are fixed here at load
// time and never change while the process runs.
type Config struct {
	Env       string // application environment (e.g. "dev", "prod")
	Port      string // HTTP port to listen on
	JWTSecret string // secret used to sign JWTs

	AccessTTLMin   int // access token time-to-live in minutes
	RefreshTTLDays int // refresh token time-to-live in days
	BcryptCost     int // bcrypt cost for credential hashing

	OperatorEmail    string // login of the facility operator account
	OperatorPassword string // operator password (hashed in memory at startup)
	ViewerEmail      string // optional read-only account login
	ViewerPassword   string // optional read-only account password

	ParkingCapacity int   // number of slots, ids 1..N
	WaitingCapacity int   // waiting queue length
	FeePerHour      int64 // charge per started hour
	MaxVehicles     int   // valid vehicle ids are [0, MaxVehicles)
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The facility
// constants default to the numbers the lot has always run with.
func Load() Config {
	return Config{
		Env:       must("APP_ENV"),    // environment (dev/test/prod)
		Port:      must("APP_PORT"),   // port to bind the HTTP server
		JWTSecret: must("JWT_SECRET"), // secret used for signing JWTs

		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),   // TTL for access tokens in minutes
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"), // TTL for refresh tokens in days
		BcryptCost:     mustInt("BCRYPT_COST"),            // bcrypt cost factor

		// The operator account is mandatory; the viewer account is
		// optional and disabled when its variables are empty.
		OperatorEmail:    must("OPERATOR_EMAIL"),
		OperatorPassword: must("OPERATOR_PASSWORD"),
		ViewerEmail:      os.Getenv("VIEWER_EMAIL"),
		ViewerPassword:   os.Getenv("VIEWER_PASSWORD"),

		// Facility constants; the defaults are the numbers the lot has
		// always run with (10 slots, queue of 10, Rs 50 per started
		// hour, vehicle ids 0..99).
		ParkingCapacity: envInt("PARKING_CAPACITY", 10),
		WaitingCapacity: envInt("WAITING_CAPACITY", 10),
		FeePerHour:      int64(envInt("FEE_PER_HOUR", 50)),
		MaxVehicles:     envInt("MAX_VEHICLES", 100),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// envInt reads an optional integer variable, falling back to the given
// default when the variable is unset or malformed.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
