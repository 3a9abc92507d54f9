package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type AppConfig struct {
	Port               string
	LogLevel           string
	DatabasePath       string
	OutputDir          string
	MaxUploadSizeBytes int64

	// Historical exchange rate feed (ECB eurofxref history).
	ECBRatesURL      string
	RateFetchTimeout time.Duration

	// Flat TOB rate applied to the EUR amount of each grouped transaction.
	TOBRate decimal.Decimal

	ReportCacheExpiry  time.Duration
	ReportCacheCleanup time.Duration
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	maxUploadSizeBytesStr := getEnv("MAX_UPLOAD_SIZE_BYTES", "16777216")
	maxUploadSizeBytes, err := strconv.ParseInt(maxUploadSizeBytesStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_UPLOAD_SIZE_BYTES format '%s'. Using default 16MB. Error: %v", maxUploadSizeBytesStr, err)
		maxUploadSizeBytes = 16 * 1024 * 1024
	}

	rateFetchTimeoutStr := getEnv("RATE_FETCH_TIMEOUT", "30s")
	rateFetchTimeout, err := time.ParseDuration(rateFetchTimeoutStr)
	if err != nil {
		log.Printf("WARNING: Invalid RATE_FETCH_TIMEOUT format '%s'. Using default 30s. Error: %v", rateFetchTimeoutStr, err)
		rateFetchTimeout = 30 * time.Second
	}

	tobRateStr := getEnv("TOB_RATE", "0.0035")
	tobRate, err := decimal.NewFromString(tobRateStr)
	if err != nil || tobRate.IsNegative() {
		log.Printf("WARNING: Invalid TOB_RATE '%s'. Using default 0.0035. Error: %v", tobRateStr, err)
		tobRate = decimal.RequireFromString("0.0035")
	}

	reportCacheExpiryStr := getEnv("REPORT_CACHE_EXPIRY", "15m")
	reportCacheExpiry, err := time.ParseDuration(reportCacheExpiryStr)
	if err != nil {
		log.Printf("WARNING: Invalid REPORT_CACHE_EXPIRY format '%s'. Using default 15m. Error: %v", reportCacheExpiryStr, err)
		reportCacheExpiry = 15 * time.Minute
	}

	reportCacheCleanupStr := getEnv("REPORT_CACHE_CLEANUP", "30m")
	reportCacheCleanup, err := time.ParseDuration(reportCacheCleanupStr)
	if err != nil {
		log.Printf("WARNING: Invalid REPORT_CACHE_CLEANUP format '%s'. Using default 30m. Error: %v", reportCacheCleanupStr, err)
		reportCacheCleanup = 30 * time.Minute
	}

	Cfg = &AppConfig{
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatabasePath:       getEnv("DATABASE_PATH", "./tobfolio.db"),
		OutputDir:          getEnv("OUTPUT_DIR", "outputs"),
		MaxUploadSizeBytes: maxUploadSizeBytes,

		ECBRatesURL:      getEnv("ECB_RATES_URL", "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-hist.xml"),
		RateFetchTimeout: rateFetchTimeout,

		TOBRate: tobRate,

		ReportCacheExpiry:  reportCacheExpiry,
		ReportCacheCleanup: reportCacheCleanup,
	}

	if err := os.MkdirAll(Cfg.OutputDir, 0o755); err != nil {
		log.Fatalf("FATAL: Could not create output directory '%s': %v", Cfg.OutputDir, err)
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, OutputDir=%s, TOBRate=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath, Cfg.OutputDir, Cfg.TOBRate.String())
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}
