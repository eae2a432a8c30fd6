package app

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"
)

const (
	defaultPort     = "3000"
	defaultQRTTL    = 5 * time.Minute
	defaultTimeZone = "Asia/Seoul"
	connectRetries  = 5
)

type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	// AutoMigrate creates the tables on start when DB_AUTO_MIGRATE=true.
	AutoMigrate bool

	RedisAddr   string
	KafkaBroker string

	JWTSecret []byte
	QRSecret  []byte
	QRTTL     time.Duration
	Location  *time.Location
}

// LoadConfig reads the environment. Call godotenv.Load first to pick up .env.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        getenv("PORT", defaultPort),
		DBHost:      os.Getenv("DB_HOST"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBPort:      os.Getenv("DB_PORT"),
		DBSSLMode:   getenv("DB_SSLMODE", "disable"),
		AutoMigrate: os.Getenv("DB_AUTO_MIGRATE") == "true",
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		JWTSecret:   []byte(os.Getenv("JWT_SECRET")),
		QRTTL:       defaultQRTTL,
	}

	cfg.QRSecret = []byte(getenv("QR_SECRET", string(cfg.JWTSecret)))

	if raw := os.Getenv("QR_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("invalid QR_TTL %q", raw)
		}
		cfg.QRTTL = ttl
	}

	loc, err := time.LoadLocation(getenv("TZ_NAME", defaultTimeZone))
	if err != nil {
		return Config{}, fmt.Errorf("load TZ_NAME: %w", err)
	}
	cfg.Location = loc

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
