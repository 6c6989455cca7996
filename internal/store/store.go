package store

import (
	"context"
	"errors"
	"time"
)

// ErrConflict указывает на нарушение целостности данных при записи.
var ErrConflict = errors.New("data conflict")

// Store описывает журнал выполненных конвертаций.
type Store interface {
	// SaveConversion сохраняет итог одной выполненной конвертации.
	SaveConversion(ctx context.Context, c Conversion) error
}

// Conversion описывает одну выполненную конвертацию.
type Conversion struct {
	ID        string
	UserID    string
	Amount    float64
	Currency  string
	Price     float64
	Result    float64
	CreatedAt time.Time
}
