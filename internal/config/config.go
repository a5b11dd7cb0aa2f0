package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// CatalogConfig selects and tunes the remote content service. An empty or
// "placeholder" project ID leaves the catalog running on the local store.
type CatalogConfig struct {
	SanityProjectID  string
	SanityDataset    string
	SanityAPIVersion string
	SanityToken      string
	SanityUseCDN     bool
	RemoteTimeout    time.Duration
	LocalStorePath   string
	ArticleStorePath string
}

type Config struct {
	Port           string
	DatabaseURL    string
	JWTSecret      string
	JWTTTL         time.Duration
	GoogleAudience string
	AllowOrigins   []string

	Catalog CatalogConfig

	MinIOEndpoint      string
	MinIOAccessKey     string
	MinIOSecretKey     string
	MinIOUseSSL        bool
	MinIOBucketListing string
	MinIOPublicURL     string
	ListingImageMax    int64
	FFMPEGPath         string

	OpenAIAPIKey string
	OpenAIModel  string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	jwtTTL := 24 * time.Hour
	if v, err := time.ParseDuration(getenv("JWT_TTL", "24h")); err == nil && v > 0 {
		jwtTTL = v
	}

	remoteTimeout := 10 * time.Second
	if v, err := time.ParseDuration(getenv("SANITY_TIMEOUT", "10s")); err == nil && v > 0 {
		remoteTimeout = v
	}

	imageMax := int64(15 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("LISTING_IMAGE_MAX_BYTES", "15728640"), 10, 64); err == nil && v > 0 {
		imageMax = v
	}

	return Config{
		Port:           getenv("PORT", "8080"),
		DatabaseURL:    must("DATABASE_URL"),
		JWTSecret:      must("JWT_SECRET"),
		JWTTTL:         jwtTTL,
		GoogleAudience: getenv("GOOGLE_AUDIENCE", ""),
		AllowOrigins:   splitAndTrim(getenv("ALLOW_ORIGINS", "*")),

		Catalog: CatalogConfig{
			SanityProjectID:  getenv("SANITY_PROJECT_ID", ""),
			SanityDataset:    getenv("SANITY_DATASET", "production"),
			SanityAPIVersion: getenv("SANITY_API_VERSION", "2023-05-03"),
			SanityToken:      getenv("SANITY_API_TOKEN", ""),
			SanityUseCDN:     getenv("SANITY_USE_CDN", "true") == "true",
			RemoteTimeout:    remoteTimeout,
			LocalStorePath:   getenv("LOCAL_STORE_PATH", "data/local-properties.json"),
			ArticleStorePath: getenv("ARTICLE_STORE_PATH", "data/local-articles.json"),
		},

		MinIOEndpoint:      must("MINIO_ENDPOINT"),
		MinIOAccessKey:     must("MINIO_ACCESS_KEY"),
		MinIOSecretKey:     must("MINIO_SECRET_KEY"),
		MinIOUseSSL:        getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketListing: getenv("MINIO_BUCKET_LISTINGS", "property-listings"),
		MinIOPublicURL:     getenv("MINIO_PUBLIC_URL", ""),
		ListingImageMax:    imageMax,
		FFMPEGPath:         getenv("FFMPEG_PATH", "ffmpeg"),

		OpenAIAPIKey: getenv("OPENAI_API_KEY", ""),
		OpenAIModel:  getenv("OPENAI_MODEL", "gpt-4o-mini"),
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
