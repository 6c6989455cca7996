package main

import (
	"flag"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/wurt83ow/lex-converter/internal/price"
)

// config хранит параметры запуска. Переменные окружения имеют приоритет над флагами.
type config struct {
	RunAddr      string        `env:"RUN_ADDR"`
	LogLevel     string        `env:"LOG_LEVEL"`
	DatabaseURI  string        `env:"DATABASE_URI"`
	PriceURL     string        `env:"PRICE_URL"`
	Currency     string        `env:"PRICE_CURRENCY"`
	CoinID       string        `env:"PRICE_COIN_ID"`
	PriceTimeout time.Duration `env:"PRICE_TIMEOUT"`
}

func parseFlags(args []string) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("skill", flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddr, "a", ":8080", "address and port to run server")
	fs.StringVar(&cfg.LogLevel, "l", "info", "log level")
	fs.StringVar(&cfg.DatabaseURI, "d", "", "database URI for the conversion journal")
	fs.StringVar(&cfg.PriceURL, "p", price.DefaultURL, "price ticker URL")
	fs.StringVar(&cfg.Currency, "c", price.DefaultCurrency, "fiat currency of the ticker quote")
	fs.StringVar(&cfg.CoinID, "i", price.DefaultCoinID, "coin id in the ticker response")
	fs.DurationVar(&cfg.PriceTimeout, "t", 0, "price request timeout, 0 disables it")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	// незаданные переменные окружения оставляют значения флагов как есть
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
