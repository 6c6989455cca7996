// Package dispatcher обрабатывает вызовы code hook'а для намерения convertCAD.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wurt83ow/lex-converter/internal/logger"
	"github.com/wurt83ow/lex-converter/internal/models"
	"github.com/wurt83ow/lex-converter/internal/store"
	"github.com/wurt83ow/lex-converter/internal/validator"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=mocks/mock_dispatcher.go -package=mocks github.com/wurt83ow/lex-converter/internal/dispatcher PriceSource,Journal

// IntentConvertCAD — единственное намерение, которое умеет обрабатывать бот.
const IntentConvertCAD = "convertCAD"

// ErrUnsupportedIntent возвращается для намерений, которых нет у бота.
var ErrUnsupportedIntent = errors.New("intent not supported")

var (
	// ErrMissingAmount возвращается, если к выполнению не заполнен слот с суммой.
	ErrMissingAmount = errors.New("amount slot is empty")
	// ErrZeroPrice возвращается, если источник цены вернул ноль.
	ErrZeroPrice = errors.New("bitcoin price is zero")
)

// PriceSource возвращает текущую цену биткоина.
type PriceSource interface {
	Price(ctx context.Context) (float64, error)
}

// Journal сохраняет выполненные конвертации.
type Journal interface {
	SaveConversion(ctx context.Context, c store.Conversion) error
}

// Dispatcher выбирает ответ Lex по фазе диалога.
type Dispatcher struct {
	prices   PriceSource
	journal  Journal
	currency string
	now      func() time.Time
}

type Option func(*Dispatcher)

// WithJournal включает запись выполненных конвертаций.
func WithJournal(j Journal) Option {
	return func(d *Dispatcher) { d.journal = j }
}

// WithCurrency задаёт валюту, которая попадает в журнал.
func WithCurrency(currency string) Option {
	return func(d *Dispatcher) { d.currency = currency }
}

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

func New(prices PriceSource, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		prices:   prices,
		currency: "CAD",
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch обрабатывает один вызов code hook'а.
func (d *Dispatcher) Dispatch(ctx context.Context, req models.Request) (models.Response, error) {
	logger.Log.Debug("dispatching intent",
		zap.String("intent", req.CurrentIntent.Name),
		zap.String("source", req.InvocationSource),
		zap.String("user", req.UserID),
	)

	switch req.CurrentIntent.Name {
	case IntentConvertCAD:
		return d.convertCAD(ctx, req)
	}
	return models.Response{}, fmt.Errorf("intent with name %q: %w", req.CurrentIntent.Name, ErrUnsupportedIntent)
}

func (d *Dispatcher) convertCAD(ctx context.Context, req models.Request) (models.Response, error) {
	return d.handle(ctx, req, models.PhaseOf(req.InvocationSource))
}

func (d *Dispatcher) handle(ctx context.Context, req models.Request, phase models.Phase) (models.Response, error) {
	slots := req.CurrentIntent.Slots
	birthday := slots[validator.SlotBirthday]
	amount := slots[validator.SlotCADAmount]

	switch phase {
	case models.PhaseValidating:
		res := validator.Validate(birthday, amount, d.now())
		if !res.IsValid {
			// очищаем неверный слот, чтобы Lex спросил его заново
			out := slots.Clone()
			out[res.ViolatedSlot] = nil
			return respond(req, models.ElicitSlot{
				IntentName:   req.CurrentIntent.Name,
				Slots:        out,
				SlotToElicit: res.ViolatedSlot,
				Message:      res.Message,
			}), nil
		}
		return respond(req, models.Delegate{Slots: slots}), nil

	case models.PhaseFulfilling:
		return d.fulfill(ctx, req, amount)
	}
	return models.Response{}, fmt.Errorf("unknown invocation source %q", req.InvocationSource)
}

func (d *Dispatcher) fulfill(ctx context.Context, req models.Request, amount *string) (models.Response, error) {
	if amount == nil {
		return models.Response{}, ErrMissingAmount
	}
	raw := *amount
	cad := validator.ParseFloat(raw)

	p, err := d.prices.Price(ctx)
	if err != nil {
		return models.Response{}, fmt.Errorf("get bitcoin price: %w", err)
	}
	if p == 0 {
		return models.Response{}, ErrZeroPrice
	}
	btc := Round(cad/p, 4)

	d.record(ctx, req, cad, p, btc)

	return respond(req, models.Close{
		FulfillmentState: models.FulfillmentStateFulfilled,
		Message: models.PlainText(fmt.Sprintf(
			"Thank you for your information; you can get %s Bitcoins for your $%s dollars.",
			FormatResult(btc), raw,
		)),
	}), nil
}

// record пишет конвертацию в журнал. Ошибка журнала не влияет на ответ пользователю.
func (d *Dispatcher) record(ctx context.Context, req models.Request, amount, price, result float64) {
	if d.journal == nil {
		return
	}
	err := d.journal.SaveConversion(ctx, store.Conversion{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Amount:    amount,
		Currency:  d.currency,
		Price:     price,
		Result:    result,
		CreatedAt: d.now(),
	})
	if err != nil {
		logger.Log.Warn("cannot save conversion", zap.String("user", req.UserID), zap.Error(err))
	}
}

func respond(req models.Request, action models.DialogAction) models.Response {
	attrs := req.SessionAttributes
	if attrs == nil {
		attrs = map[string]string{}
	}
	return models.Response{SessionAttributes: attrs, DialogAction: action}
}

// FormatResult печатает число в кратчайшей форме, у целых оставляя ".0": 2 → "2.0".
func FormatResult(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsNaN(v) || math.IsInf(v, 0) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// Round округляет v до places знаков после запятой.
func Round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
