package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Slack    SlackConfig
	Google   GoogleConfig
	Luis     LuisConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	InboundTopic       string
	StateSigningSecret string
}

// DatabaseConfig selects the persistence backend. With a connection string
// set, users and bot installs live in postgres; otherwise they are JSON
// documents under DataDir. ConversationStore picks where suspended dialog
// state lives ("memory" or "redis").
type DatabaseConfig struct {
	Connection        string
	DataDir           string
	ConversationStore string
}

type SlackConfig struct {
	ClientId      string
	ClientSecret  string
	SigningSecret string
}

type GoogleConfig struct {
	ClientId     string
	ClientSecret string
	RedirectURL  string
}

type LuisConfig struct {
	EndpointURI string
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
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			InboundTopic:       getEnv("INBOUND_MESSAGE_TOPIC_NAME", "INBOUND_MESSAGE"),
			StateSigningSecret: getEnv("STATE_SIGNING_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection:        getEnv("DB_CONNECTION_STRING", ""),
			DataDir:           getEnv("DATA_DIR", ".data/db"),
			ConversationStore: getEnv("CONVERSATION_STORE", "memory"),
		},
		Slack: SlackConfig{
			ClientId:      getEnv("SLACK_CLIENT_ID", ""),
			ClientSecret:  getEnv("SLACK_CLIENT_SECRET", ""),
			SigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
		},
		Google: GoogleConfig{
			ClientId:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:3000/api/auth/google/callback"),
		},
		Luis: LuisConfig{
			EndpointURI: getEnv("LUIS_URI", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
