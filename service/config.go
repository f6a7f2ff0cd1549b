package service

import (
	"os"
)

type Config struct {
	Environment string
	Port        string
	BaseURL     string
	DBPath      string

	OutputDir string
	DataDir   string

	LLM struct {
		BaseURL string
		Model   string
		APIKey  string
	}

	Gemini struct {
		APIKey string
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		DBPath:      getEnv("DB_PATH", "./db/adforge.db"),
		OutputDir:   getEnv("OUTPUT_DIR", "./output"),
		DataDir:     getEnv("DATA_DIR", "./data"),
	}

	// LLM (OpenAI-compatible chat completions)
	config.LLM.BaseURL = getEnv("LLM_BASE_URL", "https://api.openai.com/v1")
	config.LLM.Model = getEnv("LLM_MODEL", "gpt-4o-mini")
	config.LLM.APIKey = getEnv("LLM_API_KEY", "")

	// Gemini (base image generation)
	config.Gemini.APIKey = getEnv("GEMINI_API_KEY", "")

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
