package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Encoder    EncoderConfig
	ElevenLabs ElevenLabsConfig
	RAG        RAGConfig
	Logger     LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// EncoderConfig points at the text-embedding service. The model must stay fixed:
// stored case embeddings are only comparable to query embeddings produced by the
// same model version.
type EncoderConfig struct {
	BaseURL    string
	Model      string
	Dimensions int
	Timeout    time.Duration
}

type ElevenLabsConfig struct {
	APIKey  string
	VoiceID string
	ModelID string
	Timeout time.Duration
}

type RAGConfig struct {
	TopK                int
	SimilarityThreshold float64
	// DefaultRiskScore is reported when a scam pattern matched but no numeric
	// similarity could be recovered for it.
	DefaultRiskScore int
	SearchTimeout    time.Duration
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env file is fine, environment variables are used directly (Docker/K8s)

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	encoderTimeout, _ := strconv.Atoi(getEnv("ENCODER_TIMEOUT", "10"))
	encoderDims, _ := strconv.Atoi(getEnv("ENCODER_DIMENSIONS", "384"))
	speechTimeout, _ := strconv.Atoi(getEnv("ELEVENLABS_TIMEOUT", "30"))
	ragTopK, _ := strconv.Atoi(getEnv("RAG_TOP_K", "3"))
	ragThreshold, _ := strconv.ParseFloat(getEnv("RAG_SIMILARITY_THRESHOLD", "0.5"), 64)
	ragDefaultRisk, _ := strconv.Atoi(getEnv("RAG_DEFAULT_RISK_SCORE", "75"))
	searchTimeout, _ := strconv.Atoi(getEnv("RAG_SEARCH_TIMEOUT", "5"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "callguard"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Encoder: EncoderConfig{
			BaseURL:    getEnv("ENCODER_BASE_URL", "http://localhost:8081"),
			Model:      getEnv("ENCODER_MODEL", "all-MiniLM-L6-v2"),
			Dimensions: encoderDims,
			Timeout:    time.Duration(encoderTimeout) * time.Second,
		},
		ElevenLabs: ElevenLabsConfig{
			APIKey:  getEnv("ELEVENLABS_API_KEY", ""),
			VoiceID: getEnv("ELEVENLABS_VOICE_ID", ""),
			ModelID: getEnv("ELEVENLABS_MODEL_ID", "eleven_monolingual_v1"),
			Timeout: time.Duration(speechTimeout) * time.Second,
		},
		RAG: RAGConfig{
			TopK:                ragTopK,
			SimilarityThreshold: ragThreshold,
			DefaultRiskScore:    ragDefaultRisk,
			SearchTimeout:       time.Duration(searchTimeout) * time.Second,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
