package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type PaymentConfig struct {
	Env string `yaml:"env"`

	HTTPServer   `yaml:"http_server"`
	PaymentDB    `yaml:"payment_db"`
	LogConfig    `yaml:"log_config"`
	Razorpay     `yaml:"razorpay"`
	KafkaService `yaml:"kafka-service"`
	RedisService `yaml:"redis-service"`
	Auth         `yaml:"auth"`
	Scheduler    `yaml:"scheduler"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type PaymentDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type Razorpay struct {
	BaseURL       string `yaml:"base_url" env-default:"https://api.razorpay.com/v1"`
	KeyID         string `yaml:"key_id" env:"RAZORPAY_KEY_ID"`
	KeySecret     string `yaml:"key_secret" env:"RAZORPAY_KEY_SECRET"`
	WebhookSecret string `yaml:"webhook_secret" env:"RAZORPAY_WEBHOOK_SECRET"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"payment-events"`
}

type RedisService struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"`
}

type Auth struct {
	JWTSecret  string `yaml:"jwt_secret" env:"PAYMENT_JWT_SECRET"`
	AdminToken string `yaml:"admin_token" env:"PAYMENT_ADMIN_TOKEN"`
	// DemoUserID, when set, resolves every request to this identity at
	// startup instead of parsing bearer tokens. Local development only.
	DemoUserID string `yaml:"demo_user_id"`
}

type Scheduler struct {
	Enabled               bool    `yaml:"enabled" env-default:"true"`
	AutoReleaseDays       int     `yaml:"auto_release_days" env-default:"7"`
	LongHeldDays          int     `yaml:"long_held_days" env-default:"14"`
	FailedRetentionDays   int     `yaml:"failed_retention_days" env-default:"30"`
	LargePaymentThreshold float64 `yaml:"large_payment_threshold" env-default:"100000"`
}

func MustLoad() *PaymentConfig {

	// Processing env config variable and file
	configPath := os.Getenv("PAYMENT_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("PAYMENT_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg PaymentConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
