package config

import "os"

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Webhooks struct {
	ContentReviewSecret   string
	ContentGenerateSecret string
	BrandRulesSecret      string
}

type Config struct {
	LinkedinClientID     string
	LinkedinClientSecret string
	LinkedinRedirectURI  string
	FacebookClientID     string
	FacebookClientSecret string
	FacebookRedirectURI  string
	GenerationURL        string
	GenerationAPIKey     string
	PostgresURI          string
	RedisURI             string
	FrontendURL          string
	MaintenanceMode      bool
	Webhooks             Webhooks
	R2                   R2
	SecretKey            string
}

func LoadConfig() *Config {
	return &Config{
		LinkedinClientID:     getEnv("LINKEDIN_CLIENT_ID", ""),
		LinkedinClientSecret: getEnv("LINKEDIN_CLIENT_SECRET", ""),
		LinkedinRedirectURI:  getEnv("LINKEDIN_REDIRECT_URI", ""),
		FacebookClientID:     getEnv("FACEBOOK_CLIENT_ID", ""),
		FacebookClientSecret: getEnv("FACEBOOK_CLIENT_SECRET", ""),
		FacebookRedirectURI:  getEnv("FACEBOOK_REDIRECT_URI", ""),
		GenerationURL:        getEnv("GENERATION_URL", ""),
		GenerationAPIKey:     getEnv("GENERATION_API_KEY", ""),
		PostgresURI:          getEnv("POSTGRES_URI", ""),
		RedisURI:             getEnv("REDIS_URI", ""),
		FrontendURL:          getEnv("FRONTEND_URL", "http://localhost:5173"),
		MaintenanceMode:      getEnv("MAINTENANCE_MODE", "") == "true",
		Webhooks: Webhooks{
			ContentReviewSecret:   getEnv("WEBHOOK_CONTENT_REVIEW_SECRET", ""),
			ContentGenerateSecret: getEnv("WEBHOOK_CONTENT_GENERATE_SECRET", ""),
			BrandRulesSecret:      getEnv("WEBHOOK_BRAND_RULES_SECRET", ""),
		},
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
		SecretKey: getEnv("SECRET_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
