package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port         string
	ProductsFile string
	CartsFile    string
	JournalDSN   string
	LogFile      string
	TemplatesDir string
	StaticDir    string

	// MutationsPerMinute caps write requests per client IP.
	MutationsPerMinute int
}

func Load() Config {
	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		ProductsFile: getEnv("PRODUCTS_FILE", "./data/products.json"),
		CartsFile:    getEnv("CARTS_FILE", "./data/carts.json"),
		JournalDSN:   getEnv("JOURNAL_DSN", "tiendajson.db"), // sqlite file in project root
		LogFile:      getEnv("LOG_FILE", "./tiendajson.log"),
		TemplatesDir: getEnv("TEMPLATES_DIR", "./web/templates"),
		StaticDir:    getEnv("STATIC_DIR", "./web/static"),

		MutationsPerMinute: getEnvInt("MUTATIONS_PER_MINUTE", 60),
	}
	log.Printf("[config] PORT=%s PRODUCTS_FILE=%s CARTS_FILE=%s JOURNAL_DSN=%s LOG_FILE=%s",
		cfg.Port, cfg.ProductsFile, cfg.CartsFile, cfg.JournalDSN, cfg.LogFile)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
