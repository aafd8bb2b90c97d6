// README: Common money value object used across modules.
package types

import "fmt"

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CNY builds a yuan-denominated amount; quotes on the platform are all CNY.
func CNY(amount int64) Money {
	return Money{Amount: amount, Currency: "CNY"}
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.Amount, m.Currency)
}
