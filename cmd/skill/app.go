package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wurt83ow/lex-converter/internal/dispatcher"
	"github.com/wurt83ow/lex-converter/internal/logger"
	"github.com/wurt83ow/lex-converter/internal/models"
	"go.uber.org/zap"
)

// intentDispatcher обрабатывает одно событие Lex.
type intentDispatcher interface {
	Dispatch(ctx context.Context, req models.Request) (models.Response, error)
}

// app инкапсулирует в себя все зависимости и логику приложения
type app struct {
	dispatcher intentDispatcher
}

// newApp принимает на вход внешние зависимости приложения и возвращает новый объект app
func newApp(d intentDispatcher) *app {
	return &app{dispatcher: d}
}

func (a *app) webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		logger.Log.Debug("got request with bad method", zap.String("method", r.Method))
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	logger.Log.Debug("decoding request")
	var req models.Request
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		logger.Log.Debug("cannot decode request JSON body", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp, err := a.dispatcher.Dispatch(ctx, req)
	if errors.Is(err, dispatcher.ErrUnsupportedIntent) {
		logger.Log.Debug("unsupported intent", zap.String("intent", req.CurrentIntent.Name))
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		logger.Log.Error("cannot dispatch intent", zap.String("intent", req.CurrentIntent.Name), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// сериализуем ответ сервера
	enc := json.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		logger.Log.Debug("error encoding response", zap.Error(err))
		return
	}
	logger.Log.Debug("sending HTTP 200 response", zap.String("action", resp.DialogAction.Type()))
}
