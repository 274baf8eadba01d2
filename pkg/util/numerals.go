package util

import (
	"strconv"
	"strings"
)

var arabicDigits = [10]rune{'٠', '١', '٢', '٣', '٤', '٥', '٦', '٧', '٨', '٩'}

// ToArabicNumerals renders n with Arabic-Indic digits, e.g. 123 -> "١٢٣".
func ToArabicNumerals(n int) string {
	s := strconv.Itoa(n)
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(arabicDigits[c-'0'])
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
