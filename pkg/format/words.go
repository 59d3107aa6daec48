package format

import (
	"strings"

	"github.com/iwvelando/loan-amortization/pkg/constants"
)

const (
	crore    = 10_000_000
	lakh     = 100_000
	thousand = 1_000
)

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// NumberToWords spells out a whole amount using crore, lakh and thousand
// bands followed by the default currency word, e.g. 100000 is
// "One Lakh Rupees". Zero is "Zero".
func NumberToWords(amount uint64) string {
	return NumberToWordsWithCurrency(amount, constants.DefaultCurrencyWord)
}

// NumberToWordsWithCurrency is NumberToWords with a caller-chosen trailing
// currency word. An empty word omits it.
func NumberToWordsWithCurrency(amount uint64, currencyWord string) string {
	if amount == 0 {
		return "Zero"
	}

	words := regionalWords(amount)
	if currencyWord == "" {
		return words
	}
	return words + " " + currencyWord
}

// regionalWords names amount without a currency word. Counts of crore beyond
// 99 are themselves spelled with the regional bands ("One Lakh Crore").
func regionalWords(amount uint64) string {
	parts := make([]string, 0, 4)

	if c := amount / crore; c > 0 {
		parts = append(parts, regionalWords(c)+" Crore")
	}
	if l := (amount % crore) / lakh; l > 0 {
		parts = append(parts, belowHundred(l)+" Lakh")
	}
	if th := (amount % lakh) / thousand; th > 0 {
		parts = append(parts, belowHundred(th)+" Thousand")
	}
	if rest := amount % thousand; rest > 0 {
		parts = append(parts, belowThousand(rest))
	}

	return strings.Join(parts, " ")
}

func belowThousand(n uint64) string {
	if n < 100 {
		return belowHundred(n)
	}
	hundreds := ones[n/100] + " Hundred"
	if rest := n % 100; rest > 0 {
		return hundreds + " " + belowHundred(rest)
	}
	return hundreds
}

func belowHundred(n uint64) string {
	if n < 20 {
		return ones[n]
	}
	if unit := n % 10; unit > 0 {
		return tens[n/10] + " " + ones[unit]
	}
	return tens[n/10]
}
