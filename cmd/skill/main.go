// пакеты исполняемых приложений должны называться main
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/wurt83ow/lex-converter/internal/dispatcher"
	"github.com/wurt83ow/lex-converter/internal/logger"
	"github.com/wurt83ow/lex-converter/internal/price"
	"github.com/wurt83ow/lex-converter/internal/store/pg"
	"go.uber.org/zap"
)

func gzipMiddleware(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ow := w

		// проверяем, что клиент умеет получать от сервера сжатые данные в формате gzip
		acceptEncoding := r.Header.Get("Accept-Encoding")
		supportsGzip := strings.Contains(acceptEncoding, "gzip")
		if supportsGzip {
			cw := newCompressWriter(w)
			ow = cw
			// не забываем отправить клиенту все сжатые данные после завершения middleware
			defer cw.Close()
		}

		// проверяем, что клиент отправил серверу сжатые данные в формате gzip
		contentEncoding := r.Header.Get("Content-Encoding")
		sendsGzip := strings.Contains(contentEncoding, "gzip")
		if sendsGzip {
			cr, err := newCompressReader(r.Body)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			r.Body = cr
			defer cr.Close()
		}

		h.ServeHTTP(ow, r)
	}
}

// функция main вызывается автоматически при запуске приложения
func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		panic(err)
	}

	if err := run(cfg); err != nil {
		panic(err)
	}
}

func run(cfg config) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}

	prices := price.NewClient(cfg.PriceURL,
		price.WithCoin(cfg.CoinID),
		price.WithCurrency(cfg.Currency),
		price.WithTimeout(cfg.PriceTimeout),
	)
	opts := []dispatcher.Option{dispatcher.WithCurrency(prices.Currency())}

	// журнал конвертаций включается, только если задан адрес СУБД
	if cfg.DatabaseURI != "" {
		conn, err := sql.Open("pgx", cfg.DatabaseURI)
		if err != nil {
			return err
		}
		defer conn.Close()

		journal := pg.NewStore(conn)
		if err := journal.Bootstrap(context.Background()); err != nil {
			return err
		}
		opts = append(opts, dispatcher.WithJournal(journal))
	}

	appInstance := newApp(dispatcher.New(prices, opts...))

	logger.Log.Info("Running server", zap.String("address", cfg.RunAddr))
	// обернём хендлер webhook в middleware с логгированием и поддержкой gzip
	return http.ListenAndServe(cfg.RunAddr, logger.RequestLogger(gzipMiddleware(appInstance.webhook)))
}
