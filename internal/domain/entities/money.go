package entities

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places kept for every currency amount.
const MoneyScale = 2

// RoundMoney rounds half-up (away from zero) to MoneyScale places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// ParseMoney parses a decimal string and rounds it to MoneyScale places.
func ParseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return RoundMoney(d), nil
}
