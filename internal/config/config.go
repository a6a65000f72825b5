package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Document store (DynamoDB)
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
	AppointmentsTable   string
	PrescriptionsTable  string
	PatientEmailIndex   string

	// Conversation cache
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	HistoryTTL    time.Duration

	// Generative endpoints
	GeminiAPIKey   string
	GeminiModelID  string
	BedrockModelID string
	LLMTimeout     time.Duration

	// Session auth
	PatientJWTSecret string

	// Audit store
	DatabaseURL string

	CORSAllowedOrigins []string

	// Clinic identity used by templates and the context prompt
	ClinicName     string
	ClinicLocation string
	ClinicPhone    string
	ClinicEmail    string
	ClinicHours    string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
		AppointmentsTable:   getEnv("APPOINTMENTS_TABLE", "appointments"),
		PrescriptionsTable:  getEnv("PRESCRIPTIONS_TABLE", "prescriptions"),
		PatientEmailIndex:   getEnv("PATIENT_EMAIL_INDEX", "patientEmail-index"),

		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
		HistoryTTL:    getEnvAsDuration("CHAT_HISTORY_TTL", 30*24*time.Hour),

		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModelID:  getEnv("GEMINI_MODEL_ID", "gemini-2.5-flash"),
		BedrockModelID: getEnv("BEDROCK_MODEL_ID", ""),
		LLMTimeout:     getEnvAsDuration("LLM_TIMEOUT", 15*time.Second),

		PatientJWTSecret: getEnv("PATIENT_JWT_SECRET", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "")),

		ClinicName:     getEnv("CLINIC_NAME", "Asiri Health Care"),
		ClinicLocation: getEnv("CLINIC_LOCATION", "Colombo 07"),
		ClinicPhone:    getEnv("CLINIC_PHONE", "+94779751397"),
		ClinicEmail:    getEnv("CLINIC_EMAIL", "info@asirihealthcare.com"),
		ClinicHours:    getEnv("CLINIC_HOURS", "Mon-Fri 8AM-6PM, Sat 9AM-2PM, Sun Closed"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
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

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
