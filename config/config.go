// Package config reads the service settings from a .env file and the environment.
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	DriverJSON     = "json"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Mail providers
const (
	MailLog      = "log"
	MailSendGrid = "sendgrid"
	MailPostmark = "postmark"
)

// Config holds every setting the server reads at start-up
type Config struct {
	Port      string
	JWTSecret string

	StoreDriver string
	DataFile    string
	MongoURI    string
	MongoDB     string
	PostgresDSN string

	MailProvider        string
	SendGridAPIKey      string
	PostmarkServerToken string
	EmailSender         string

	CORSOrigins []string
	SeedFile    string

	AdminEmail    string
	AdminPassword string

	PaymentKeyID    string
	PaymentCurrency string
	ShopName        string
}

// Load reads .env when present, then the environment
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}
	return FromEnv()
}

// FromEnv builds the config from the process environment only
func FromEnv() Config {
	return Config{
		Port:      getEnv("PORT", "8000"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", DriverJSON)),
		DataFile:    getEnv("DATA_FILE", "data.json"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "carx"),
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		MailProvider:        strings.ToLower(getEnv("MAIL_PROVIDER", MailLog)),
		SendGridAPIKey:      os.Getenv("SENDGRID_API_KEY"),
		PostmarkServerToken: os.Getenv("POSTMARK_SERVER_TOKEN"),
		EmailSender:         getEnv("EMAIL_SENDER", "no-reply@carx.local"),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		SeedFile:    os.Getenv("SEED_FILE"),

		AdminEmail:    strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		PaymentKeyID:    os.Getenv("PAYMENT_KEY_ID"),
		PaymentCurrency: getEnv("PAYMENT_CURRENCY", "INR"),
		ShopName:        getEnv("SHOP_NAME", "CarX"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
