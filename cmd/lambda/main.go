// Команда lambda запускает тот же code hook внутри AWS Lambda.
package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/caarlos0/env/v11"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/wurt83ow/lex-converter/internal/dispatcher"
	"github.com/wurt83ow/lex-converter/internal/logger"
	"github.com/wurt83ow/lex-converter/internal/models"
	"github.com/wurt83ow/lex-converter/internal/price"
	"github.com/wurt83ow/lex-converter/internal/store/pg"
	"go.uber.org/zap"
)

// config повторяет переменные окружения cmd/skill; флагов у функции нет.
type config struct {
	LogLevel     string        `env:"LOG_LEVEL"`
	DatabaseURI  string        `env:"DATABASE_URI"`
	PriceURL     string        `env:"PRICE_URL"`
	Currency     string        `env:"PRICE_CURRENCY"`
	CoinID       string        `env:"PRICE_COIN_ID"`
	PriceTimeout time.Duration `env:"PRICE_TIMEOUT"`
}

func loadConfig() (config, error) {
	cfg := config{
		LogLevel: "info",
		PriceURL: price.DefaultURL,
		Currency: price.DefaultCurrency,
		CoinID:   price.DefaultCoinID,
	}
	err := env.Parse(&cfg)
	return cfg, err
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		panic(err)
	}

	prices := price.NewClient(cfg.PriceURL,
		price.WithCoin(cfg.CoinID),
		price.WithCurrency(cfg.Currency),
		price.WithTimeout(cfg.PriceTimeout),
	)
	opts := []dispatcher.Option{dispatcher.WithCurrency(prices.Currency())}

	// соединение живёт столько же, сколько контейнер функции
	if cfg.DatabaseURI != "" {
		conn, err := sql.Open("pgx", cfg.DatabaseURI)
		if err != nil {
			panic(err)
		}
		journal := pg.NewStore(conn)
		if err := journal.Bootstrap(context.Background()); err != nil {
			panic(err)
		}
		opts = append(opts, dispatcher.WithJournal(journal))
	}

	lambda.Start(newHandler(dispatcher.New(prices, opts...)))
}

// newHandler возвращает обработчик события Lex. Ошибки уходят в Lambda как есть.
func newHandler(d *dispatcher.Dispatcher) func(context.Context, models.Request) (models.Response, error) {
	return func(ctx context.Context, req models.Request) (models.Response, error) {
		resp, err := d.Dispatch(ctx, req)
		if err != nil {
			logger.Log.Error("cannot dispatch intent",
				zap.String("intent", req.CurrentIntent.Name),
				zap.String("function", os.Getenv("AWS_LAMBDA_FUNCTION_NAME")),
				zap.Error(err),
			)
		}
		return resp, err
	}
}
