package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Email    EmailConfig
	Payment  PaymentConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type PaymentConfig struct {
	RazorpayKeyID  string
	RazorpaySecret string
	BaseURL        string
}

type BookingConfig struct {
	AdminFeePercent int
	PendingExpiry   time.Duration
	CancelCutoff    time.Duration
	MaxAdvanceDays  int
	SweepInterval   time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1")
	viper.SetDefault("ADMIN_FEE_PERCENT", 10)
	viper.SetDefault("PENDING_EXPIRY_MINUTES", 10)
	viper.SetDefault("CANCEL_CUTOFF_HOURS", 24)
	viper.SetDefault("MAX_ADVANCE_DAYS", 365)
	viper.SetDefault("SWEEP_INTERVAL_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Payment: PaymentConfig{
			RazorpayKeyID:  viper.GetString("RAZORPAY_KEY_ID"),
			RazorpaySecret: viper.GetString("RAZORPAY_SECRET"),
			BaseURL:        viper.GetString("RAZORPAY_BASE_URL"),
		},
		Booking: BookingConfig{
			AdminFeePercent: viper.GetInt("ADMIN_FEE_PERCENT"),
			PendingExpiry:   time.Duration(viper.GetInt("PENDING_EXPIRY_MINUTES")) * time.Minute,
			CancelCutoff:    time.Duration(viper.GetInt("CANCEL_CUTOFF_HOURS")) * time.Hour,
			MaxAdvanceDays:  viper.GetInt("MAX_ADVANCE_DAYS"),
			SweepInterval:   time.Duration(viper.GetInt("SWEEP_INTERVAL_SECONDS")) * time.Second,
		},
	}

	return config, nil
}
