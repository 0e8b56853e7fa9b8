// Package quantity renders (quantity, unit) pairs for report display.
//
// The display policy is fixed: sub-kilogram weights are shown in grams,
// kilogram weights at or above 1 keep two decimals, count units keep zero
// decimals when the quantity is exactly one. Every renderer in the
// application goes through this package so identical inputs always produce
// byte-identical strings.
package quantity

import (
	"fmt"
	"strings"
)

// kilogramsInGrams is the boundary at which gram totals switch to kilogram
// display in FormatGrams.
const kilogramsInGrams = 1000.0

// subGramKg is the kilogram value below which gram display keeps up to two
// decimal places so tiny quantities do not collapse to "0 gram".
const subGramKg = 0.001

// IsWeightUnit classifies a unit string, case-insensitively, as weight
// (kg, kilogram, gram) versus count (anything else).
func IsWeightUnit(unit string) bool {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "kg", "kilogram", "gram":
		return true
	}
	return false
}

// Format converts a raw (quantity, quantityInGrams, unit) triple into its
// display string.
//
// Weight rules: a kilogram quantity strictly between 0 and 1 is shown as its
// gram value ("500 gram"); below subGramKg the gram value keeps up to two
// decimals. Kilogram quantities at or above 1 keep two decimals with the
// original unit suffix ("2.00 kg"). Native gram quantities round to whole
// grams. Count rules: a quantity of exactly 1 drops the decimals and
// singularizes a trailing "s" on the unit; anything else keeps two decimals.
// An empty unit degrades to "0" rather than failing.
func Format(qty, grams float64, unit string) string {
	trimmed := strings.TrimSpace(unit)
	if trimmed == "" {
		return "0" + unit
	}

	switch strings.ToLower(trimmed) {
	case "kg", "kilogram":
		if qty > 0 && qty < 1 {
			if qty < subGramKg {
				return groupThousands(trimZeros(fixed(grams, 2))) + " gram"
			}
			return groupThousands(fixed(grams, 0)) + " gram"
		}
		return groupThousands(fixed(qty, 2)) + " " + trimmed
	case "gram":
		return groupThousands(fixed(qty, 0)) + " gram"
	}

	if qty == 1 {
		return "1 " + singularize(trimmed)
	}
	return groupThousands(fixed(qty, 2)) + " " + trimmed
}

// FormatGrams renders a pure gram total using the consolidator's total-unit
// rule: totals of a kilogram or more display as kilograms with two decimals,
// smaller totals stay in grams (with sub-gram precision preserved).
func FormatGrams(grams float64) string {
	if grams >= kilogramsInGrams {
		return groupThousands(fixed(grams/kilogramsInGrams, 2)) + " kilogram"
	}
	if grams > 0 && grams < 1 {
		return trimZeros(fixed(grams, 2)) + " gram"
	}
	return groupThousands(fixed(grams, 0)) + " gram"
}

func fixed(v float64, decimals int) string {
	return fmt.Sprintf("%.*f", decimals, v)
}

// trimZeros removes trailing fractional zeros ("0.50" -> "0.5").
func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func singularize(unit string) string {
	if len(unit) > 1 && strings.HasSuffix(strings.ToLower(unit), "s") {
		return unit[:len(unit)-1]
	}
	return unit
}

// groupThousands inserts comma separators into the integer part of a
// formatted number ("1500" -> "1,500").
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac := s, ""
	if i := strings.Index(s, "."); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	if len(intPart) <= 3 {
		return sign + intPart + frac
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + frac
}
