package shared

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places stored for currency amounts
const MoneyScale = 2

// RoundMoney rounds an amount to the stored currency precision
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// Amount is a currency value exposed to clients. It marshals as a quoted
// string with MoneyScale fraction digits, e.g. "30.00".
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d as an Amount
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// MarshalJSON implements json.Marshaler
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.StringFixed(MoneyScale) + `"`), nil
}

// UnmarshalJSON accepts a JSON string or number
func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}
