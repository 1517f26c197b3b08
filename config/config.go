package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBName    string
	JWTKey    string
	SaltRound int

	AIGenerateUrl string // AI test generation endpoint
	AIChatUrl     string // AI study-chat endpoint
	AIApiKey      string

	CheckoutApiUrl string // Hosted payment checkout session endpoint
	CheckoutApiKey string

	EmailSender string
	Password    string // SMTP Password

	MeetingTokenKey string // Secret for signing lecture meeting tokens
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		DBName:    getEnv("DB_NAME", "medmacs"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		AIGenerateUrl: getEnv("AI_GENERATE_URL", "https://ai.medmacs.com/generate-test"),
		AIChatUrl:     getEnv("AI_CHAT_URL", "https://ai.medmacs.com/chat"),
		AIApiKey:      getEnv("AI_API_KEY", ""),

		CheckoutApiUrl: getEnv("CHECKOUT_API_URL", "https://pay.medmacs.com/create-checkout"),
		CheckoutApiKey: getEnv("CHECKOUT_API_KEY", ""),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),

		MeetingTokenKey: getEnv("MEETING_TOKEN_KEY", "defaultSecret"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.AIApiKey == "" {
		log.Println("Warning: AI_API_KEY is empty. AI test generation will fail.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
