// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the trip planner.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64

	// SessionTTL is how long an idle planner session is kept. Defaults to 2h.
	SessionTTL time.Duration

	Providers Providers
	Archive   Archive
	Events    Events
}

// Providers configures the third-party APIs the planner calls.
// Empty API keys disable the provider that needs them.
type Providers struct {
	UserAgent string

	NominatimURL string
	NominatimRPS float64

	FoursquareURL    string
	FoursquareAPIKey string
	OverpassURL      string
	PlacesRadiusM    int
	PlacesLimit      int

	PexelsURL     string
	PexelsAPIKey  string
	PhotosPerPage int

	WikipediaLang string
	WikipediaURL  string

	GeoNamesURL      string
	GeoNamesUsername string

	RestCountriesURL string

	Timeout time.Duration
}

// Archive configures the optional object-store archive of itinerary snapshots.
// Enabled only when Endpoint is set.
type Archive struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether an archive endpoint is configured.
func (a Archive) Enabled() bool { return a.Endpoint != "" }

// Events configures the optional Kafka topic of itinerary lifecycle events.
// Enabled only when Brokers is non-empty.
type Events struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether any broker is configured.
func (e Events) Enabled() bool { return len(e.Brokers) > 0 }

// LoadDotEnv reads KEY=VALUE pairs from the given files (".env" when none are
// given) into the process environment. Variables already set are not
// overridden. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var present []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			present = append(present, p)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("config.LoadDotEnv: %w", err)
	}
	return nil
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set or any
// values that fail to parse.
func Load() (Config, error) {
	var problems []string

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	cfg.MaxBodyBytes = int64(getInt("MAX_BODY_BYTES", 1<<20, &problems))
	cfg.SessionTTL = getDuration("SESSION_TTL", 2*time.Hour, &problems)

	cfg.Providers = loadProviders(&problems)

	cfg.Archive = Archive{
		Endpoint:  os.Getenv("MINIO_ENDPOINT"),
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		Bucket:    getEnv("MINIO_BUCKET", "itineraries"),
		UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
	}
	if cfg.Archive.Enabled() && (cfg.Archive.AccessKey == "" || cfg.Archive.SecretKey == "") {
		problems = append(problems, "MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when MINIO_ENDPOINT is set")
	}

	cfg.Events = Events{
		Brokers: splitCSV(os.Getenv("KAFKA_BROKERS")),
		Topic:   getEnv("KAFKA_TOPIC", "itinerary-events"),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// LoadProviders reads only the provider settings. Commands that never touch
// the database use it so DATABASE_URL is not required.
func LoadProviders() (Providers, error) {
	var problems []string
	p := loadProviders(&problems)
	if len(problems) > 0 {
		return Providers{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return p, nil
}

func loadProviders(problems *[]string) Providers {
	return Providers{
		UserAgent:        getEnv("USER_AGENT", "tripplanner/1.0"),
		NominatimURL:     getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		NominatimRPS:     getFloat("NOMINATIM_RPS", 1, problems),
		FoursquareURL:    getEnv("FOURSQUARE_URL", "https://api.foursquare.com/v3/places"),
		FoursquareAPIKey: os.Getenv("FOURSQUARE_API_KEY"),
		OverpassURL:      getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		PlacesRadiusM:    getInt("PLACES_RADIUS_M", 5000, problems),
		PlacesLimit:      getInt("PLACES_LIMIT", 15, problems),
		PexelsURL:        getEnv("PEXELS_URL", "https://api.pexels.com/v1"),
		PexelsAPIKey:     os.Getenv("PEXELS_API_KEY"),
		PhotosPerPage:    getInt("PHOTOS_PER_PAGE", 10, problems),
		WikipediaLang:    getEnv("WIKIPEDIA_LANG", "en"),
		WikipediaURL:     os.Getenv("WIKIPEDIA_URL"),
		GeoNamesURL:      getEnv("GEONAMES_URL", "http://api.geonames.org"),
		GeoNamesUsername: os.Getenv("GEONAMES_USERNAME"),
		RestCountriesURL: getEnv("RESTCOUNTRIES_URL", "https://restcountries.com/v3.1"),
		Timeout:          getDuration("PROVIDER_TIMEOUT", 10*time.Second, problems),
	}
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getInt parses key as a positive integer, recording a problem on bad input.
func getInt(key string, fallback int, problems *[]string) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		*problems = append(*problems, fmt.Sprintf("%s must be a positive integer, got %q", key, v))
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64, problems *[]string) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		*problems = append(*problems, fmt.Sprintf("%s must be a positive number, got %q", key, v))
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration, problems *[]string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		*problems = append(*problems, fmt.Sprintf("%s must be a positive duration, got %q", key, v))
		return fallback
	}
	return d
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
