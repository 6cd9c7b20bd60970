// internal/nlp/amount.go
package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyAmountPattern = regexp.MustCompile(`(\d+(?:\s+\d+)*)\s*(?:francs?|fcfa|f)\b`)
	bareAmountPattern     = regexp.MustCompile(`(\d+(?:\s+\d+)*)`)
	whitespacePattern     = regexp.MustCompile(`\s+`)
)

// amountStrategies are tried in order; the first success wins. The
// currency-tagged pattern comes first because command text often contains
// several numbers (a phone number and an amount) and the adjacent currency
// unit disambiguates which one is money.
var amountStrategies = []func(string) (int64, bool){
	currencyTaggedAmount,
	bareAmount,
}

// ExtractAmount scans text for a monetary quantity and returns it in the
// smallest currency unit. Internal whitespace inside the digit run is treated
// as a thousands separator and stripped before parsing.
func ExtractAmount(text string) (int64, bool) {
	lower := strings.ToLower(text)
	for _, strategy := range amountStrategies {
		if amount, ok := strategy(lower); ok {
			return amount, true
		}
	}
	return 0, false
}

func currencyTaggedAmount(lower string) (int64, bool) {
	return parseDigitRun(currencyAmountPattern, lower)
}

func bareAmount(lower string) (int64, bool) {
	return parseDigitRun(bareAmountPattern, lower)
}

func parseDigitRun(pattern *regexp.Regexp, lower string) (int64, bool) {
	m := pattern.FindStringSubmatch(lower)
	if m == nil {
		return 0, false
	}
	cleaned := whitespacePattern.ReplaceAllString(m[1], "")
	amount, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}
