package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Rabbit   *Rabbit
	Token    *Token
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type Rabbit struct {
	URL              string `env:"RABBIT_URL"`
	TrackingQueue    string `env:"RABBIT_TRACKING_QUEUE" envDefault:"courier.tracking"`
	PaymentQueue     string `env:"RABBIT_PAYMENT_QUEUE" envDefault:"payments.confirmed"`
	ConsumerPrefetch int    `env:"RABBIT_PREFETCH" envDefault:"16"`
}

type Token struct {
	SymmetricKey string `env:"TOKEN_SYMMETRIC_KEY"`
}

func NewConfig() (*Config, error) {
	// Missing .env is fine, real env vars still apply.
	_ = godotenv.Load()

	var db Database
	var http HTTP
	var rabbit Rabbit
	var token Token
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&rabbit.URL, "r", "", "RabbitMQ connection URL")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&rabbit)
	if err != nil {
		return nil, fmt.Errorf("error parsing rabbit config: %w", err)
	}
	err = env.Parse(&token)
	if err != nil {
		return nil, fmt.Errorf("error parsing token config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Rabbit:   &rabbit,
		Token:    &token,
		App:      &app,
	}

	return &config, nil
}
