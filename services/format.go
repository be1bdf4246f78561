package services

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Date layouts used for storage and display.
const (
	StorageDateLayout = "2006-01-02"
	DisplayDateLayout = "02/01/2006"
)

// FormatINR formats an amount in Indian Rupee notation with two decimals.
// After the rightmost 3 digits, digits are grouped in pairs
// (e.g. ₹1,23,45,678.90).
func FormatINR(amount float64) string {
	return formatRupee(amount, 2)
}

// FormatRupees is FormatINR without paise, used in compact list views.
func FormatRupees(amount float64) string {
	return formatRupee(amount, 0)
}

func formatRupee(amount float64, places int32) string {
	d := decimal.NewFromFloat(CoerceNumber(amount)).Round(places)
	negative := d.IsNegative()
	raw := d.Abs().StringFixed(places)

	intPart, decPart, hasDec := strings.Cut(raw, ".")
	result := "₹" + applyIndianGrouping(intPart)
	if hasDec {
		result += "." + decPart
	}
	if negative {
		result = "-" + result
	}
	return result
}

// applyIndianGrouping inserts commas into an integer string: the last 3
// digits stay together, the rest are grouped in pairs from the right.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}
	return result
}

// FormatQty prints whole quantities without decimals and fractional ones
// with up to two.
func FormatQty(qty float64) string {
	qty = CoerceNumber(qty)
	if qty == math.Trunc(qty) {
		return strconv.FormatFloat(qty, 'f', 0, 64)
	}
	return strconv.FormatFloat(math.Round(qty*100)/100, 'f', -1, 64)
}

// FormatPercent prints a rate such as 12 -> "12%" and 2.5 -> "2.5%".
func FormatPercent(rate float64) string {
	return FormatQty(rate) + "%"
}

// DisplayDate converts a stored YYYY-MM-DD date to DD/MM/YYYY. Values that
// do not parse are returned unchanged.
func DisplayDate(stored string) string {
	t, err := time.Parse(StorageDateLayout, strings.TrimSpace(stored))
	if err != nil {
		return stored
	}
	return t.Format(DisplayDateLayout)
}

// NormalizeDate accepts YYYY-MM-DD (HTML date inputs) or DD/MM/YYYY and
// returns the storage form. Blank input stays blank; unparseable input is
// returned trimmed so the user sees what they typed.
func NormalizeDate(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}
	for _, layout := range []string{StorageDateLayout, DisplayDateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(StorageDateLayout)
		}
	}
	return s
}

// ParseAmount reads a numeric form value. Blank or malformed input counts
// as zero so that an incomplete row is "no charge" rather than an error.
func ParseAmount(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.TrimPrefix(s, "₹")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return CoerceNumber(v)
}
