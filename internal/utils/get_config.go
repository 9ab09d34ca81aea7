package utils

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	Port string `yaml:"PORT" env:"PORT"`

	// Database configuration
	DBUser     string `yaml:"DB_USER" env:"DB_USER"`
	DBName     string `yaml:"DB_NAME" env:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD" env:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT" env:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST" env:"DB_HOST"`

	// JWT session
	JWTSecret     string `yaml:"JWT_SECRET" env:"JWT_SECRET"`
	JWTTTLMinutes int    `yaml:"JWT_TTL_MINUTES" env:"JWT_TTL_MINUTES"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL" env:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST" env:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT" env:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME" env:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL" env:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD" env:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET" env:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION" env:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY" env:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY" env:"AWS_SECRET_KEY"`

	// Google sign-in
	GoogleClientID        string `yaml:"GOOGLE_CLIENT_ID" env:"GOOGLE_CLIENT_ID"`
	GoogleIOSClientID     string `yaml:"GOOGLE_IOS_CLIENT_ID" env:"GOOGLE_IOS_CLIENT_ID"`
	GoogleAndroidClientID string `yaml:"GOOGLE_ANDROID_CLIENT_ID" env:"GOOGLE_ANDROID_CLIENT_ID"`
	GoogleClientSecret    string `yaml:"GOOGLE_CLIENT_SECRET" env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL     string `yaml:"GOOGLE_REDIRECT_URL" env:"GOOGLE_REDIRECT_URL"`
	GoogleTokenInfoURL    string `yaml:"GOOGLE_TOKENINFO_URL" env:"GOOGLE_TOKENINFO_URL"`

	// Session store
	RedisAddr     string `yaml:"REDIS_ADDR" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"REDIS_DB" env:"REDIS_DB"`

	// Tips document store
	MongoURI      string `yaml:"MONGO_URI" env:"MONGO_URI"`
	MongoDatabase string `yaml:"MONGO_DATABASE" env:"MONGO_DATABASE"`

	// Reservations
	ReservationTTLHours int `yaml:"RESERVATION_TTL_HOURS" env:"RESERVATION_TTL_HOURS"`
}

var config Config

// LoadConfig reads config.yaml, then .env, then the process environment.
// Later sources win.
func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Warnf("Error reading YAML file: %s", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Warnf("Error parsing YAML file: %s", err)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("Error loading .env file: %s", err)
	}

	if err := env.Parse(&config); err != nil {
		log.Warnf("Error parsing environment: %s", err)
	}
}

// SetConfig replaces the loaded configuration. Used by tests and tools.
func SetConfig(c Config) {
	config = c
}

func GetConfig(key string) string {
	switch key {
	case "PORT":
		if config.Port == "" {
			return "8080"
		}
		return config.Port
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "APP_URL":
		return config.AppURL
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "GOOGLE_CLIENT_ID":
		return config.GoogleClientID
	case "GOOGLE_IOS_CLIENT_ID":
		return config.GoogleIOSClientID
	case "GOOGLE_ANDROID_CLIENT_ID":
		return config.GoogleAndroidClientID
	case "GOOGLE_CLIENT_SECRET":
		return config.GoogleClientSecret
	case "GOOGLE_REDIRECT_URL":
		return config.GoogleRedirectURL
	case "GOOGLE_TOKENINFO_URL":
		if config.GoogleTokenInfoURL == "" {
			return "https://oauth2.googleapis.com/tokeninfo"
		}
		return config.GoogleTokenInfoURL
	case "REDIS_ADDR":
		return config.RedisAddr
	case "REDIS_PASSWORD":
		return config.RedisPassword
	case "REDIS_DB":
		return strconv.Itoa(config.RedisDB)
	case "MONGO_URI":
		return config.MongoURI
	case "MONGO_DATABASE":
		if config.MongoDatabase == "" {
			return "foodsaver"
		}
		return config.MongoDatabase
	default:
		return ""
	}
}

func GetJWTTTL() time.Duration {
	if config.JWTTTLMinutes <= 0 {
		return 120 * time.Minute
	}
	return time.Duration(config.JWTTTLMinutes) * time.Minute
}

func GetReservationTTL() time.Duration {
	if config.ReservationTTLHours <= 0 {
		return 48 * time.Hour
	}
	return time.Duration(config.ReservationTTLHours) * time.Hour
}

// GetGoogleAudiences returns every configured Google client id. An ID token
// minted for any of them is accepted.
func GetGoogleAudiences() []string {
	var audiences []string
	for _, id := range []string{config.GoogleClientID, config.GoogleIOSClientID, config.GoogleAndroidClientID} {
		if id = strings.TrimSpace(id); id != "" {
			audiences = append(audiences, id)
		}
	}
	return audiences
}
