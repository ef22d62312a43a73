package util

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNumber formats n with comma thousands separators.
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.WriteString(sign)
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatUSD renders an amount with two decimals and a USD suffix, grouping
// thousands from 1000 upward: 1234.56 -> "1,234.56 USD".
func FormatUSD(amount float64) string {
	str := fmt.Sprintf("%.2f", amount)
	intPart, decPart, _ := strings.Cut(str, ".")
	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || (whole < 1000 && whole > -1000) {
		return str + " USD"
	}
	return FormatNumber(whole) + "." + decPart + " USD"
}
