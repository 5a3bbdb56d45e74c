package cache

import (
	"fmt"

	"golang.org/x/text/currency"
)

func currencyFromCode(code string) (currency.Unit, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	return unit, nil
}
