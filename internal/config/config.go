package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Port              string
	DBPath            string
	JWTSecret         string  // empty disables read-API auth
	VerificationToken string  // bearer token expected on the Overland ingest endpoint
	HomeLatitude      float64 // optional home location for ignore_home filtering
	HomeLongitude     float64
	HomeRadiusMeters  float64
}

// Load reads configuration from the environment, with a .env file as
// fallback for local development.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/wayfinder.db"
	}

	token := os.Getenv("OVERLAND_VERIFICATION_TOKEN")
	if token == "" {
		token = "overlandtoken"
		log.Println("[config] OVERLAND_VERIFICATION_TOKEN not set, using default")
	}

	return &Config{
		Port:              port,
		DBPath:            dbPath,
		JWTSecret:         os.Getenv("JWT_SECRET"),
		VerificationToken: token,
		HomeLatitude:      envFloat("HOME_LATITUDE"),
		HomeLongitude:     envFloat("HOME_LONGITUDE"),
		HomeRadiusMeters:  envFloatDefault("HOME_RADIUS_METERS", 200),
	}
}

func envFloat(key string) float64 {
	return envFloatDefault(key, 0)
}

func envFloatDefault(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %v", key, raw, def)
		return def
	}
	return v
}
