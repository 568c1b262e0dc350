package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Google   GoogleConfig
	Stripe   StripeConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type GoogleConfig struct {
	ClientID string
	// SkipVerify replaces token verification with a fixed dev profile.
	// Never enable outside local development.
	SkipVerify bool
}

type StripeConfig struct {
	// Mode selects the _TEST or _LIVE key variants.
	Mode          string
	SecretKey     string
	WebhookSecret string
	PriceBasic    string
	PricePro      string
	PricePremium  string
	SuccessURL    string
	CancelURL     string
}

type AIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	clientURL := getEnv("CLIENT_URL", "http://localhost:5173")
	stripeMode := getEnv("STRIPE_MODE", "test")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			ClientURL:          clientURL,
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", clientURL),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Google: GoogleConfig{
			ClientID:   getEnv("GOOGLE_CLIENT_ID", ""),
			SkipVerify: getEnv("DEV_SKIP_GOOGLE_VERIFY", "") == "true",
		},
		Stripe: StripeConfig{
			Mode:          stripeMode,
			SecretKey:     pickEnv("STRIPE_SECRET_KEY", stripeMode),
			WebhookSecret: pickEnv("STRIPE_WEBHOOK_SECRET", stripeMode),
			PriceBasic:    pickEnv("STRIPE_PRICE_BASIC", stripeMode),
			PricePro:      pickEnv("STRIPE_PRICE_PRO", stripeMode),
			PricePremium:  pickEnv("STRIPE_PRICE_PREMIUM", stripeMode),
			SuccessURL:    getEnv("CHECKOUT_SUCCESS_URL", clientURL+"/billing/success"),
			CancelURL:     getEnv("CHECKOUT_CANCEL_URL", clientURL+"/billing/cancel"),
		},
		Ai: AIConfig{
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("LLM_MODEL", "gpt-4o-mini"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// pickEnv prefers the mode-suffixed variant (KEY_TEST / KEY_LIVE) and falls
// back to the bare key, so one .env can hold both Stripe environments.
func pickEnv(base, mode string) string {
	suffix := "_TEST"
	if mode == "live" {
		suffix = "_LIVE"
	}
	if v := os.Getenv(base + suffix); v != "" {
		return v
	}
	return os.Getenv(base)
}
