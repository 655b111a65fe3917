package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	CronSecret       string
	GoogleClientID   string
	SupabaseURL      string
	SupabaseKey      string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded!")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")
	CronSecret = GetEnv("CRON_SECRET")
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")
	SupabaseURL = GetEnv("SUPABASE_PROJECT_URL")
	SupabaseKey = GetEnv("SUPABASE_SERVICE_KEY")
	OpenAIAPIKey = GetEnv("OPENAI_API_KEY")
	OpenAIBaseURL = GetEnv("OPENAI_BASE_URL", "https://api.openai.com/v1")

	mustWarn("JWT_SECRET", JWTSecret)
	mustWarn("JWT_REFRESH_SECRET", JWTRefreshSecret)
	mustWarn("CRON_SECRET", CronSecret)
}

func mustWarn(key, val string) {
	if val == "" {
		log.Printf("❌ %s is not set!", key)
	} else {
		log.Printf("✅ %s loaded.", key)
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
