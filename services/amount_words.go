package services

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

var crore = big.NewInt(10000000)

// AmountInWords renders an amount as the legal-tender phrase printed on
// quotations, e.g. "Indian Rupee Twenty Five Thousand Two Hundred only".
// The amount is rounded to whole rupees first; paise are not spelled out.
func AmountInWords(amount float64) string {
	rupees := decimal.NewFromFloat(CoerceNumber(amount)).Round(0).BigInt()
	return "Indian Rupee " + bigNumberToWords(rupees) + " only"
}

// bigNumberToWords extends NumberToWords past the int64 range by stacking
// Crore groups.
func bigNumberToWords(n *big.Int) string {
	if n.Sign() < 0 {
		return "Minus " + bigNumberToWords(new(big.Int).Neg(n))
	}
	if n.IsInt64() {
		return NumberToWords(n.Int64())
	}
	q, r := new(big.Int).QuoRem(n, crore, new(big.Int))
	words := bigNumberToWords(q) + " Crore"
	if r.Sign() != 0 {
		words += " " + NumberToWords(r.Int64())
	}
	return words
}

// NumberToWords spells n in English using Indian grouping
// (Hundred, Thousand, Lakh, Crore).
// Example: 2523000 -> "Twenty Five Lakh Twenty Three Thousand"
func NumberToWords(n int64) string {
	if n == 0 {
		return "Zero"
	}
	if n == math.MinInt64 {
		return bigNumberToWords(big.NewInt(n))
	}
	if n < 0 {
		return "Minus " + NumberToWords(-n)
	}
	return wordify(n)
}

func wordify(n int64) string {
	switch {
	case n < 20:
		return ones[n]
	case n < 100:
		return tens[n/10] + wordTail(n%10)
	case n < 1000:
		return ones[n/100] + " Hundred" + wordTail(n%100)
	case n < 100000:
		return wordify(n/1000) + " Thousand" + wordTail(n%1000)
	case n < 10000000:
		return wordify(n/100000) + " Lakh" + wordTail(n%100000)
	default:
		return wordify(n/10000000) + " Crore" + wordTail(n%10000000)
	}
}

func wordTail(rem int64) string {
	if rem == 0 {
		return ""
	}
	return " " + wordify(rem)
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
