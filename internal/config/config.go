package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Ai       AIConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	ActivityLogPath    string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	IndexDir          string
	MaxUploadSizeMB   int
	AllowedExtensions []string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini", "ollama" or "jina"
	EmbeddingModel    string
	LLMProvider       string // "ollama", "gemini" or "huggingface"
	LLMModel          string
	OllamaBaseURL     string
	GeminiAPIKey      string
	JinaAPIKey        string
	HuggingFaceAPIKey string
	ChunkSize         int
	ChunkOverlap      int
	RetrievalTopK     int
	PromptVariant     string // "default" or "strict"
}

type TracingConfig struct {
	Enabled      bool
	OTLPEndpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			ActivityLogPath:    getEnv("ACTIVITY_LOG_PATH", "activity.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Storage: StorageConfig{
			IndexDir:          getEnv("INDEX_DIR", "vectorstores"),
			MaxUploadSizeMB:   getEnvAsInt("MAX_UPLOAD_SIZE_MB", 25),
			AllowedExtensions: splitList(getEnv("ALLOWED_EXTENSIONS", ".pdf")),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			GeminiAPIKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			JinaAPIKey:        getEnv("JINA_API_KEY", ""),
			HuggingFaceAPIKey: getEnv("HUGGINGFACE_API_KEY", ""),
			ChunkSize:         getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap:      getEnvAsInt("CHUNK_OVERLAP", 200),
			RetrievalTopK:     getEnvAsInt("RETRIEVAL_TOP_K", 4),
			PromptVariant:     getEnv("PROMPT_VARIANT", "default"),
		},
		Tracing: TracingConfig{
			Enabled:      getEnvAsBool("OTEL_ENABLED", false),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

// Validate reports every startup-blocking misconfiguration at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Database.Connection == "" {
		problems = append(problems, "DB_CONNECTION_STRING is required")
	}
	if c.Storage.IndexDir == "" {
		problems = append(problems, "INDEX_DIR must not be empty")
	}
	if c.Ai.ChunkSize <= 0 {
		problems = append(problems, "CHUNK_SIZE must be positive")
	}
	if c.Ai.ChunkOverlap < 0 {
		problems = append(problems, "CHUNK_OVERLAP must not be negative")
	}
	if c.Ai.ChunkOverlap >= c.Ai.ChunkSize {
		problems = append(problems, "CHUNK_OVERLAP must be smaller than CHUNK_SIZE")
	}
	if c.Ai.RetrievalTopK <= 0 {
		problems = append(problems, "RETRIEVAL_TOP_K must be positive")
	}
	if v := c.Ai.PromptVariant; v != "default" && v != "strict" {
		problems = append(problems, fmt.Sprintf("PROMPT_VARIANT %q is not one of: default, strict", v))
	}
	if c.Ai.EmbeddingProvider == "gemini" && c.Ai.GeminiAPIKey == "" {
		problems = append(problems, "GOOGLE_GEMINI_API_KEY is required when EMBEDDING_PROVIDER=gemini")
	}
	if c.Ai.LLMProvider == "gemini" && c.Ai.GeminiAPIKey == "" {
		problems = append(problems, "GOOGLE_GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
	}
	if c.Ai.EmbeddingProvider == "jina" && c.Ai.JinaAPIKey == "" {
		problems = append(problems, "JINA_API_KEY is required when EMBEDDING_PROVIDER=jina")
	}
	if c.Ai.LLMProvider == "huggingface" && c.Ai.HuggingFaceAPIKey == "" {
		problems = append(problems, "HUGGINGFACE_API_KEY is required when LLM_PROVIDER=huggingface")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
