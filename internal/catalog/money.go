package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

var currencySymbols = map[string]string{
	"gbp": "£",
	"eur": "€",
	"usd": "$",
}

// FormatAmount renders minor units as e.g. "£1,000.00".
func FormatAmount(minor int64, currency string) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}

	whole := strconv.FormatInt(minor/100, 10)
	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}
	number := fmt.Sprintf("%s.%02d", grouped.String(), minor%100)

	if symbol, ok := currencySymbols[strings.ToLower(currency)]; ok {
		return sign + symbol + number
	}
	return sign + number + " " + strings.ToUpper(currency)
}
