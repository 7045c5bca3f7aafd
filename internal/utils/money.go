package utils

import (
	"fmt"
)

// FormatMoney keeps consistent decimal formatting for fare fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatFare renders a journey cost with the currency prefix used on itineraries.
func FormatFare(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "$" + FormatMoney(amount)
}

// FormatMinutes renders a travel time in minutes as "1h 05m" or "35 min".
func FormatMinutes(minutes float64) string {
	total := int(minutes + 0.5)
	if total < 60 {
		return fmt.Sprintf("%d min", total)
	}
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}
