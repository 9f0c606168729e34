package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort       string
	StoreDriver    string // file | postgres | sqlite
	DBFile         string // JSON document path (file) or sqlite database path
	DatabaseDSN    string
	JWTSecret      string
	CORSOrigins    string
	FrontendOrigin string // base for table QR links, empty = request base URL
	UploadDir      string
	Timezone       string

	// LenientTransitions allows any status jump, including backwards.
	LenientTransitions bool

	AdminUsername string
	AdminPassword string
	KasirUsername string
	KasirPassword string
}

const defaultDSN = "host=localhost user=postgres password=postgres dbname=dipnfly port=5432 sslmode=disable"

func Load() *Config {
	// .env is optional; real deployments set variables directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] .env could not be read: %v", err)
	}

	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		StoreDriver:        strings.ToLower(getEnv("STORE_DRIVER", "file")),
		DBFile:             getEnv("DB_FILE", "./db.json"),
		DatabaseDSN:        getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		CORSOrigins:        getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		FrontendOrigin:     strings.TrimRight(strings.TrimSpace(getEnv("FRONTEND_ORIGIN", "")), "/"),
		UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),
		Timezone:           getEnv("TIMEZONE", "Asia/Jakarta"),
		LenientTransitions: getEnv("ORDER_LENIENT_TRANSITIONS", "false") == "true",
		AdminUsername:      getEnv("ADMIN_USERNAME", "admindipnfly"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", "dipnflymalang8"),
		KasirUsername:      getEnv("KASIR_USERNAME", "kasirdipnfly"),
		KasirPassword:      getEnv("KASIR_PASSWORD", "dipnflymalang88"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set, it is required for production.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters.")
	}
	switch cfg.StoreDriver {
	case "file", "postgres", "sqlite":
	default:
		log.Fatalf("[FATAL] invalid STORE_DRIVER: %q (file|postgres|sqlite)", cfg.StoreDriver)
	}
	if cfg.StoreDriver == "postgres" && cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN default value in use, set your own Postgres DSN for production.")
	}
	if cfg.AdminPassword == "dipnflymalang8" || cfg.KasirPassword == "dipnflymalang88" {
		log.Println("[WARN] default seeded passwords in use, set ADMIN_PASSWORD / KASIR_PASSWORD.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS default value in use, set your own domain for production.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
