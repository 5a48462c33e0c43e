package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	StripeSecretKey     string
	StripeWebhookSecret string

	SMTPHost     string
	SMTPPort     int
	SMTPFrom     string
	SMTPPassword string

	TwilioAccountSID          string
	TwilioAuthToken           string
	TwilioMessagingServiceSID string

	TransactionLogPath string

	// StoreBackend selects where structured records go: "postgres" or "bolt".
	StoreBackend string
	BoltPath     string

	DbUser     string
	DbPassword string
	DbHost     string
	DbName     string
	SSLMode    string
	DbPort     string

	Port int
}

func Load() (*Config, error) {
	// Load .env file (only in development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if smtpPort == 0 {
		smtpPort = 587
	}

	logPath := os.Getenv("TRANSACTION_LOG_PATH")
	if logPath == "" {
		logPath = "transactions.log"
	}

	backend := os.Getenv("STORE_BACKEND")
	if backend == "" {
		backend = "bolt"
	}

	boltPath := os.Getenv("BOLT_PATH")
	if boltPath == "" {
		boltPath = "payflow.db"
	}

	return &Config{
		StripeSecretKey:     os.Getenv("STRIPE_API_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     smtpPort,
		SMTPFrom:     os.Getenv("SMTP_FROM"),
		SMTPPassword: os.Getenv("GMAIL_PASS"),

		TwilioAccountSID:          os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:           os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioMessagingServiceSID: os.Getenv("TWILIO_MESSAGING_SERVICE_SID"),

		TransactionLogPath: logPath,

		StoreBackend: backend,
		BoltPath:     boltPath,

		DbUser:     os.Getenv("DB_USER"),
		DbPassword: os.Getenv("DB_PASSWORD"),
		DbHost:     os.Getenv("DB_HOST"),
		DbName:     os.Getenv("DB_NAME"),
		DbPort:     os.Getenv("DB_PORT"),
		SSLMode:    os.Getenv("SSL_MODE"),

		Port: port,
	}, nil
}
