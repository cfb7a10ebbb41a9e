package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelvins/geocoder"
)

type AppConfig struct {
	YandexAPIKey string

	// Coordinates of the tracked location.
	Lat float64
	Lon float64

	// UpdateInterval controls how often the updater polls the API.
	UpdateInterval time.Duration

	// Language for condition texts, e.g. en_US or ru_RU.
	Language string

	// EntryName prefixes every sensor's display name; EntryID seeds the
	// unique ids and device grouping.
	EntryName string
	EntryID   string

	HTTPTimeout time.Duration
	Port        string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.YandexAPIKey = os.Getenv("YANDEX_API_KEY")
	if cfg.YandexAPIKey == "" {
		return nil, fmt.Errorf("YANDEX_API_KEY is required")
	}

	// Polling interval: default 60 minutes; the free API tier is 50 calls/day.
	intervalStr := getenvDefault("UPDATE_INTERVAL", "60m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid UPDATE_INTERVAL: %w", err)
	}
	cfg.UpdateInterval = interval

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.Language = getenvDefault("LANGUAGE", "en_US")
	cfg.EntryName = getenvDefault("ENTRY_NAME", "Yandex Weather")
	cfg.EntryID = getenvDefault("ENTRY_ID", uuid.NewString())
	cfg.Port = getenvDefault("PORT", "8080")

	lat, lon, err := loadLocation()
	if err != nil {
		return nil, err
	}
	cfg.Lat = lat
	cfg.Lon = lon

	return cfg, nil
}

// loadLocation resolves coordinates from LATITUDE/LONGITUDE, falling back to
// geocoding WEATHER_LOCATION_CITY when only a city is configured.
func loadLocation() (float64, float64, error) {
	latStr := os.Getenv("LATITUDE")
	lonStr := os.Getenv("LONGITUDE")
	if latStr != "" && lonStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid LATITUDE: %w", err)
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid LONGITUDE: %w", err)
		}
		return lat, lon, nil
	}

	city := os.Getenv("WEATHER_LOCATION_CITY")
	if city == "" {
		return 0, 0, fmt.Errorf("either LATITUDE/LONGITUDE or WEATHER_LOCATION_CITY must be set")
	}

	geocoder.ApiKey = os.Getenv("GEOCODER_API_KEY")
	if geocoder.ApiKey == "" {
		return 0, 0, fmt.Errorf("GEOCODER_API_KEY is required to resolve WEATHER_LOCATION_CITY")
	}

	address := geocoder.Address{
		City:    city,
		Country: os.Getenv("WEATHER_LOCATION_COUNTRY"),
	}
	location, err := geocoder.Geocoding(address)
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding %q failed: %w", city, err)
	}

	return location.Latitude, location.Longitude, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
