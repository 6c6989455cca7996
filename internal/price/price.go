// Package price получает текущий курс биткоина из API alternative.me.
package price

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/wurt83ow/lex-converter/internal/logger"
	"github.com/wurt83ow/lex-converter/internal/validator"
	"go.uber.org/zap"
)

const (
	DefaultURL      = "https://api.alternative.me/v2/ticker/bitcoin/?convert=CAD"
	DefaultCurrency = "CAD"
	// DefaultCoinID — идентификатор биткоина в ответе alternative.me
	DefaultCoinID = "1"
)

// ErrPriceNotFound возвращается, если в ответе нет цены для нужной монеты и валюты.
var ErrPriceNotFound = errors.New("price not found in ticker response")

// ticker повторяет нужную часть ответа /v2/ticker.
type ticker struct {
	Data map[string]struct {
		Quotes map[string]struct {
			Price json.RawMessage `json:"price"`
		} `json:"quotes"`
	} `json:"data"`
}

// Client запрашивает цену монеты в заданной валюте.
type Client struct {
	http     *resty.Client
	url      string
	coinID   string
	currency string
}

type Option func(*Client)

// WithCoin задаёт идентификатор монеты в ответе API.
func WithCoin(id string) Option {
	return func(c *Client) { c.coinID = id }
}

// WithCurrency задаёт валюту, в которой берётся цена.
func WithCurrency(currency string) Option {
	return func(c *Client) { c.currency = currency }
}

// WithTimeout ограничивает время запроса. Ноль означает отсутствие ограничения.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// NewClient возвращает клиент для тикера по адресу url.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		http:     resty.New(),
		url:      url,
		coinID:   DefaultCoinID,
		currency: DefaultCurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Currency возвращает валюту, в которой клиент получает цену.
func (c *Client) Currency() string {
	return c.currency
}

// Price возвращает текущую цену монеты. Нечисловая цена возвращается как NaN без ошибки.
func (c *Client) Price(ctx context.Context) (float64, error) {
	var t ticker
	resp, err := c.http.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(&t).
		Get(c.url)
	if err != nil {
		return 0, fmt.Errorf("request ticker: %w", err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("request ticker: unexpected status %s", resp.Status())
	}

	coin, ok := t.Data[c.coinID]
	if !ok {
		return 0, fmt.Errorf("coin %q: %w", c.coinID, ErrPriceNotFound)
	}
	quote, ok := coin.Quotes[c.currency]
	if !ok || len(quote.Price) == 0 {
		return 0, fmt.Errorf("coin %q currency %q: %w", c.coinID, c.currency, ErrPriceNotFound)
	}

	// цена может прийти и числом, и строкой
	raw := strings.Trim(string(quote.Price), `"`)
	p := validator.ParseFloat(raw)

	logger.Log.Debug("fetched price",
		zap.String("coin", c.coinID),
		zap.String("currency", c.currency),
		zap.Float64("price", p),
	)
	return p, nil
}
