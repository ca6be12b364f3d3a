package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port string

	DataDir      string
	UploadDir    string
	HospitalsCSV string
	ProvidersCSV string
	OrdersCSV    string

	RouteProvider    string
	ORSAPIKey        string
	GoogleMapsAPIKey string
	FEMANFHLURL      string
	OpenFEMAURL      string
	TerrainEnabled   bool
	OpenMeteoURL     string
	UpstreamTimeout  time.Duration

	DefaultAlpha   float64
	DefaultBeta    float64
	ScoringWorkers int

	RedisURL    string
	DatabaseURL string
	CacheTTL    time.Duration
}

// Load reads configuration from the environment. Callers load .env first.
func Load() Config {
	dataDir := Get("DATA_DIR", "data")

	return Config{
		Port: Get("PORT", "5000"),

		DataDir:      dataDir,
		UploadDir:    Get("UPLOAD_DIR", "uploads"),
		HospitalsCSV: Get("HOSPITALS_CSV", dataDir+"/hospitals.csv"),
		ProvidersCSV: Get("PROVIDERS_CSV", dataDir+"/providers.csv"),
		OrdersCSV:    Get("ORDERS_CSV", dataDir+"/orders.csv"),

		RouteProvider:    strings.ToLower(Get("ROUTE_PROVIDER", "ors")),
		ORSAPIKey:        strings.TrimSpace(os.Getenv("ORS_API_KEY")),
		GoogleMapsAPIKey: strings.TrimSpace(os.Getenv("GOOGLE_MAPS_API_KEY")),
		FEMANFHLURL:      Get("FEMA_NFHL_URL", "https://hazards.fema.gov/arcgis/rest/services/public/NFHL/MapServer/28/query"),
		OpenFEMAURL:      Get("OPENFEMA_URL", "https://www.fema.gov/api/open/v2"),
		TerrainEnabled:   GetBool("TERRAIN_ENABLED", true),
		OpenMeteoURL:     Get("OPEN_METEO_URL", "https://api.open-meteo.com/v1"),
		UpstreamTimeout:  GetDuration("UPSTREAM_TIMEOUT", 8*time.Second),

		DefaultAlpha:   GetFloat("DEFAULT_ALPHA", 0.6),
		DefaultBeta:    GetFloat("DEFAULT_BETA", 0.4),
		ScoringWorkers: GetInt("SCORING_WORKERS", 8),

		RedisURL:    strings.TrimSpace(os.Getenv("REDIS_URL")),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		CacheTTL:    GetDuration("CACHE_TTL", 24*time.Hour),
	}
}

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: invalid float key=%s value=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func GetInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid int key=%s value=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func GetBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: invalid bool key=%s value=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid duration key=%s value=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
