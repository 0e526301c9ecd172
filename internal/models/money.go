package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Суммы хранятся в минимальных единицах валюты (центах), как int64.
// decimal используется только на границе: парсинг пользовательского ввода
// и форматирование для вывода.

var hundred = decimal.NewFromInt(100)

// ParseAmount converts a user-entered decimal amount ("12.50") into minor
// units (1250). Rejects negative amounts and more than two fraction digits.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount must not be negative: %s", s)
	}
	if d.Exponent() < -2 {
		return 0, fmt.Errorf("amount has more than two decimal places: %s", s)
	}
	return d.Mul(hundred).IntPart(), nil
}

// FormatAmount renders minor units as a decimal string: 1250 -> "12.50".
func FormatAmount(minor int64) string {
	return decimal.NewFromInt(minor).Div(hundred).StringFixed(2)
}
