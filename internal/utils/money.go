package utils

import (
	"fmt"
	"strconv"
)

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatINR renders an amount in Rupees with Indian digit grouping
// (e.g. 125000 -> "Rs. 1,25,000").
func FormatINR(amount float64) string {
	n := int64(amount + 0.5)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return fmt.Sprintf("%sRs. %s", sign, groupIndian(n))
}

func groupIndian(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}
	// last three digits, then groups of two
	out := str[len(str)-3:]
	rest := str[:len(str)-3]
	for len(rest) > 2 {
		out = rest[len(rest)-2:] + "," + out
		rest = rest[:len(rest)-2]
	}
	return rest + "," + out
}
