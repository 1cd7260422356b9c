package ratematrix

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Placeholder is shown for cells without a displayable value
const Placeholder = "-"

// LetterWeight is the weight bracket used for letter envelopes
const LetterWeight = "Letter"

// FormatPercent formats a percentage with two decimals, e.g. "30.00%"
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

// FormatCurrency formats an amount with two decimals, e.g. "$12.50"
func FormatCurrency(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// WeightLabel returns the row label of a weight bracket.
// The literal "Letter" bracket is shown as is, anything else in pounds.
func WeightLabel(weight string) string {
	if weight == LetterWeight {
		return weight
	}
	return weight + " lbs"
}

// displayable applies the placeholder policy to a nullable value
func displayable(v decimal.NullDecimal, zeroIsPlaceholder bool) (decimal.Decimal, bool) {
	if !v.Valid {
		return decimal.Zero, false
	}
	if zeroIsPlaceholder && v.Decimal.IsZero() {
		return decimal.Zero, false
	}
	return v.Decimal, true
}

// titleFromKey turns a table key like "tier-discount" into "Tier Discount"
func titleFromKey(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "-", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
