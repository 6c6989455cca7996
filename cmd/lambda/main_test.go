package main

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wurt83ow/lex-converter/internal/dispatcher"
	"github.com/wurt83ow/lex-converter/internal/dispatcher/mocks"
	"github.com/wurt83ow/lex-converter/internal/models"
	"github.com/wurt83ow/lex-converter/internal/price"
)

func TestHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	prices := mocks.NewMockPriceSource(ctrl)
	prices.EXPECT().Price(gomock.Any()).Return(25000.0, nil)

	h := newHandler(dispatcher.New(prices))

	amount := "500"
	resp, err := h(context.Background(), models.Request{
		CurrentIntent:    models.Intent{Name: dispatcher.IntentConvertCAD, Slots: models.Slots{"cadAmount": &amount}},
		InvocationSource: models.SourceFulfillmentCodeHook,
	})
	require.NoError(t, err)

	action, ok := resp.DialogAction.(models.Close)
	require.True(t, ok)
	assert.Contains(t, action.Message.Content, "0.02 Bitcoins for your $500 dollars")

	_, err = h(context.Background(), models.Request{CurrentIntent: models.Intent{Name: "other"}})
	assert.ErrorIs(t, err, dispatcher.ErrUnsupportedIntent)
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, price.DefaultURL, cfg.PriceURL)
		assert.Equal(t, price.DefaultCurrency, cfg.Currency)
		assert.Equal(t, price.DefaultCoinID, cfg.CoinID)
		assert.Empty(t, cfg.DatabaseURI)
		assert.Zero(t, cfg.PriceTimeout)
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("PRICE_CURRENCY", "USD")
		t.Setenv("PRICE_TIMEOUT", "2s")
		t.Setenv("DATABASE_URI", "postgres://localhost/lex")

		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, "USD", cfg.Currency)
		assert.Equal(t, 2*time.Second, cfg.PriceTimeout)
		assert.Equal(t, "postgres://localhost/lex", cfg.DatabaseURI)
	})
}
