package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations
// and costs, bools for switches.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	BaseURL       string // externally reachable base URL (feeds, OG, hydration fetch)
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBHost        string // database host address
	DBPort        string // database port number
	DBName        string // database name
	JWTSecret     string // secret used to sign and verify session tokens
	SessionTTLMin int    // session token time-to-live in minutes
	BcryptCost    int    // bcrypt cost for password hashing
	CookiePrefix  string // session cookie name prefix (e.g. "folio_")
	CookieSecure  bool   // use the __Secure- cookie variant and the Secure flag

	// Media storage (S3-compatible). Bucket empty disables uploads.
	S3Bucket    string // object storage bucket
	S3Region    string // object storage region
	S3PublicURL string // base URL where uploaded objects are served

	// Optional bootstrap account created when the users table is empty.
	SeedAdminEmail    string // initial superadmin email
	SeedAdminPassword string // initial superadmin password
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:           must("APP_ENV"),                  // environment (dev/test/prod)
		Port:          must("APP_PORT"),                 // port to bind the HTTP server
		BaseURL:       getenv("BASE_URL", "http://localhost:8080"),
		DBUser:        must("DB_USER"),                  // database user
		DBPass:        os.Getenv("DB_PASS"),             // database password (empty allowed)
		DBHost:        must("DB_HOST"),                  // database host
		DBPort:        must("DB_PORT"),                  // database port
		DBName:        must("DB_NAME"),                  // database name
		JWTSecret:     must("JWT_SECRET"),               // secret for signing session tokens
		SessionTTLMin: mustInt("SESSION_TTL_MIN"),       // session lifetime in minutes
		BcryptCost:    mustInt("BCRYPT_COST"),           // bcrypt cost factor
		CookiePrefix:  getenv("COOKIE_PREFIX", "folio_"),
		CookieSecure:  envBool("COOKIE_SECURE", false),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Region:      getenv("S3_REGION", "us-east-1"),
		S3PublicURL:   os.Getenv("S3_PUBLIC_URL"),
		SeedAdminEmail:    os.Getenv("SEED_ADMIN_EMAIL"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
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
