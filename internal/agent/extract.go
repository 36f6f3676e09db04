package agent

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyPriceRe = regexp.MustCompile(`₹\s*([\d,]+)`)
	barePriceRe     = regexp.MustCompile(`(\d{5,})`)
)

// ExtractPrice pulls a numeric price out of free text: first a
// currency-marked group, else the first standalone run of 5+ digits.
// Returns ok=false when no usable number is present; the caller
// degrades to "no numeric signal this round" rather than failing.
func ExtractPrice(text string) (int, bool) {
	if text == "" {
		return 0, false
	}
	if m := currencyPriceRe.FindStringSubmatch(text); m != nil {
		v, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err == nil && v > 0 {
			return v, true
		}
	}
	if m := barePriceRe.FindStringSubmatch(text); m != nil {
		v, err := strconv.Atoi(m[1])
		if err == nil && v > 0 {
			return v, true
		}
	}
	return 0, false
}
