// Package validator проверяет значения слотов намерения convertCAD.
package validator

import (
	"math"
	"strconv"
	"time"

	"github.com/wurt83ow/lex-converter/internal/models"
)

const (
	SlotBirthday  = "birthday"
	SlotCADAmount = "cadAmount"

	// DateLayout — формат, в котором Lex передаёт слот AMAZON.DATE.
	DateLayout = "2006-01-02"

	MinAge = 18
)

const (
	msgTooYoung = "You should be at least 18 years old to use this service, " +
		"please provide a different date of birth."
	msgBadDate = "Please provide your date of birth in the YYYY-MM-DD format."
	msgAmount  = "The amount to convert should be greater than zero, " +
		"please provide a correct amount in dollars to convert."
)

// Validate проверяет дату рождения и сумму. Отсутствующий слот не проверяется.
// Возвращается только первое нарушение: дата рождения проверяется раньше суммы.
func Validate(birthday, amount *string, now time.Time) models.ValidationResult {
	if birthday != nil {
		born, err := time.Parse(DateLayout, *birthday)
		if err != nil {
			return models.Invalid(SlotBirthday, msgBadDate)
		}
		if Age(born, now) < MinAge {
			return models.Invalid(SlotBirthday, msgTooYoung)
		}
	}

	if amount != nil {
		// NaN не больше нуля, поэтому нечисловая сумма отклоняется этой же проверкой
		if v := ParseFloat(*amount); !(v > 0) {
			return models.Invalid(SlotCADAmount, msgAmount)
		}
	}

	return models.Valid()
}

// Age возвращает число полных лет, прошедших с born к моменту now.
func Age(born, now time.Time) int {
	years := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		years--
	}
	return years
}

// ParseFloat разбирает число и возвращает NaN вместо ошибки.
func ParseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
