package utils

import (
	"fmt"
	"strings"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"ETB": "Br ",
}

// FormatMoney renders an amount in minor units, e.g. 6000 USD -> "$60.00"
func FormatMoney(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	major := amount / 100
	minor := amount % 100

	digits := fmt.Sprintf("%d", major)
	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	if sym, ok := currencySymbols[strings.ToUpper(currency)]; ok {
		return fmt.Sprintf("%s%s%s.%02d", sign, sym, b.String(), minor)
	}
	return fmt.Sprintf("%s%s.%02d %s", sign, b.String(), minor, strings.ToUpper(currency))
}
