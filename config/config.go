package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

func LoadEnv() error {
	// Try to load .env file if it exists (for local development).
	// On production the environment variables are set directly.
	err := godotenv.Load()
	if err != nil {
		// .env file not found is not an error - it might be on production
		// Environment variables are already available in os.Getenv()
		return nil
	}
	return nil
}

// ValidateEnv checks that critical environment variables are set.
// Returns an error if any critical variable is missing. Optional
// integrations only log a warning: each one degrades independently and
// disables only its own feature, never the page.
func ValidateEnv() error {
	var missing []string

	// Critical variables - application cannot function without these
	if os.Getenv("JWT_SECRET") == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if os.Getenv("DATABASE_URL") == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("critical environment variables not set: %v", missing)
	}

	// Non-critical variables - log warnings but don't fail
	if key := os.Getenv("STRIPE_PUBLISHABLE_KEY"); key == "" {
		log.Println("WARNING: STRIPE_PUBLISHABLE_KEY not set - card checkout is disabled")
	}
	if os.Getenv("GA_MEASUREMENT_ID") == "" || os.Getenv("GA_API_SECRET") == "" {
		log.Println("WARNING: GA_MEASUREMENT_ID/GA_API_SECRET not set - Google Analytics events will be skipped")
	}
	if os.Getenv("FB_PIXEL_ID") == "" || os.Getenv("FB_ACCESS_TOKEN") == "" {
		log.Println("WARNING: FB_PIXEL_ID/FB_ACCESS_TOKEN not set - Meta Pixel events will be skipped")
	}
	if os.Getenv("TAWK_PROPERTY_ID") == "" {
		log.Println("WARNING: TAWK_PROPERTY_ID not set - live chat widget is disabled")
	}
	if os.Getenv("XRP_ADDRESS") == "" {
		log.Println("WARNING: XRP_ADDRESS not set - crypto checkout will show a placeholder address")
	}
	if os.Getenv("REDIS_ADDR") == "" {
		log.Println("WARNING: REDIS_ADDR not set - carts will persist to the database")
	}
	if os.Getenv("FIREBASE_STORAGE_BUCKET") == "" {
		log.Println("WARNING: FIREBASE_STORAGE_BUCKET not set - product image uploads will fail")
	}
	if os.Getenv("FRONTEND_URL") == "" {
		log.Println("WARNING: FRONTEND_URL not set - CORS may not work correctly")
	}
	if os.Getenv("SMTP_HOST") == "" || os.Getenv("SMTP_PORT") == "" || os.Getenv("SMTP_FROM") == "" {
		log.Println("WARNING: SMTP_HOST/SMTP_PORT/SMTP_FROM not set - subscriber emails will not be sent")
	}

	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
