package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DatabaseURL     string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	TutorModel      string
}

// Load reads configuration from the environment, loading a local .env
// file first when one exists. Missing API keys are not fatal: the
// server falls back to demo mode, and a missing DB_URL selects the
// in-memory progress store.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] No .env file found, using environment variables")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DB_URL"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		TutorModel:      getEnv("TUTOR_MODEL", "gpt-4.1-mini"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
