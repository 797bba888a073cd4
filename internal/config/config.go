package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends.
const (
	BackendDynamo = "dynamo"
	BackendMemory = "memory"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort        string
	AppEnv         string
	LogLevel       string
	StoreBackend   string
	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	SMTPHost       string
	SMTPPort       string
	SMTPFrom       string
	SMTPUsername   string
	SMTPPassword   string
	SNSRegion      string
	AllowedOrigins []string // CORS allowed origins

	PhoneCodeLifetime   time.Duration
	EmailTokenLifetime  time.Duration
	PhoneResendInterval time.Duration
	EmailResendInterval time.Duration
	BcryptCost          int
	DeliveryTimeout     time.Duration
	RateLimitRPS        int
	RateLimitBurst      int
	// TrustProxyHeaders keys the rate limiter on X-Forwarded-For / X-Real-Ip.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxyHeaders   bool
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Accounts         string
	ActivationTokens string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:        getEnv("APP_PORT", "3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		StoreBackend:   getEnv("STORE_BACKEND", BackendDynamo),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Accounts:         getEnv("DYNAMO_TABLE_ACCOUNTS", "accounts"),
			ActivationTokens: getEnv("DYNAMO_TABLE_ACTIVATION_TOKENS", "activation_tokens"),
		},
		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       getEnv("SMTP_PORT", "1025"),
		SMTPFrom:       getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SNSRegion:      getEnv("SNS_REGION", "us-east-1"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),

		PhoneCodeLifetime:   getEnvDuration("PHONE_CODE_LIFETIME", 5*time.Minute),
		EmailTokenLifetime:  getEnvDuration("EMAIL_TOKEN_LIFETIME", time.Hour),
		PhoneResendInterval: getEnvDuration("PHONE_RESEND_INTERVAL", time.Minute),
		EmailResendInterval: getEnvDuration("EMAIL_RESEND_INTERVAL", time.Minute),
		BcryptCost:          getEnvInt("BCRYPT_COST", 10),
		DeliveryTimeout:     getEnvDuration("DELIVERY_TIMEOUT", 10*time.Second),
		RateLimitRPS:        getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 10),
		TrustProxyHeaders:   getEnvBool("TRUST_PROXY_HEADERS", false),
	}
}

// Validate rejects token timing that would make the cool-down meaningless.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendDynamo, BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if err := checkTiming("phone", c.PhoneCodeLifetime, c.PhoneResendInterval); err != nil {
		return err
	}
	if err := checkTiming("email", c.EmailTokenLifetime, c.EmailResendInterval); err != nil {
		return err
	}
	if c.DeliveryTimeout <= 0 {
		return fmt.Errorf("DELIVERY_TIMEOUT must be positive")
	}
	return nil
}

func checkTiming(kind string, lifetime, resend time.Duration) error {
	if lifetime <= 0 {
		return fmt.Errorf("%s token lifetime must be positive", kind)
	}
	if resend < 0 || resend >= lifetime {
		return fmt.Errorf("%s resend interval must be in [0, %s)", kind, lifetime)
	}
	return nil
}

// IsProduction reports whether AppEnv names a production deployment.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
