package config

import (
	"os"
	"time"
)

// Defaults that only matter when the corresponding env var is unset.
const (
	DefaultGraphAPIBase  = "https://graph.facebook.com/v17.0"
	DefaultVoiceflowBase = "https://general-runtime.voiceflow.com"
)

// Config holds application configuration. All values are read once at
// startup and treated as read-only afterwards.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// WhatsApp Business Cloud API
	WhatsAppToken string
	PhoneNumberID string

	// Messenger Send API
	PageAccessToken string

	// Meta webhook verification
	VerifyToken   string
	MetaAppSecret string

	// Respond.io custom channel
	RespondIoSecret string

	// Voiceflow runtime
	VoiceflowAPIKey    string
	VoiceflowVersionID string
	VoiceflowBaseURL   string
	VoiceflowTimeout   time.Duration

	GraphAPIBaseURL string
}

// Load reads configuration from environment variables. Missing optional
// values fall back to defaults and never abort startup.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		WhatsAppToken: getEnv("WHATSAPP_TOKEN", ""),
		PhoneNumberID: getEnv("PHONE_NUMBER_ID", ""),

		PageAccessToken: getEnv("PAGE_ACCESS_TOKEN", ""),

		VerifyToken:   getEnv("VERIFY_TOKEN", "voiceflow123"),
		MetaAppSecret: getEnv("META_APP_SECRET", ""),

		RespondIoSecret: getEnv("RESPONDIO_WEBHOOK_SECRET", ""),

		VoiceflowAPIKey:    getEnv("VOICEFLOW_API_KEY", ""),
		VoiceflowVersionID: getEnv("VOICEFLOW_VERSION_ID", ""),
		VoiceflowBaseURL:   getEnv("VOICEFLOW_BASE_URL", DefaultVoiceflowBase),
		VoiceflowTimeout:   getEnvAsDuration("VOICEFLOW_TIMEOUT", 15*time.Second),

		GraphAPIBaseURL: getEnv("GRAPH_API_BASE_URL", DefaultGraphAPIBase),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
