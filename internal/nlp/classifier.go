// internal/nlp/classifier.go
package nlp

import (
	"regexp"
	"strings"
)

// Category is the classified intent of a user utterance.
type Category string

const (
	CategoryGreeting Category = "greeting"
	CategoryTime     Category = "time"
	CategoryBalance  Category = "balance"
	CategoryTransfer Category = "transfer"
	CategoryRecharge Category = "recharge"
	CategoryData     Category = "data"
	CategoryHistory  Category = "history"
	CategoryBonus    Category = "bonus"
	CategoryServices Category = "services"
	CategoryThanks   Category = "thanks"
	CategoryFarewell Category = "farewell"
	CategoryFallback Category = "fallback"
)

type rule struct {
	category Category
	pattern  *regexp.Regexp
}

// rules is the fixed priority list. Classification is first-match-wins in
// declaration order: an earlier, broader rule beats any later rule whose
// keywords also appear. Ambiguity between commands is resolved purely by
// position in this table, so reordering entries changes behavior.
var rules = []rule{
	{CategoryGreeting, regexp.MustCompile(`\b(hello|hi|hey|good morning|good evening)\b`)},
	{CategoryTime, regexp.MustCompile(`\b(time|clock|what time)\b`)},
	{CategoryBalance, regexp.MustCompile(`\b(balance|how much|money|my account)\b`)},
	{CategoryTransfer, regexp.MustCompile(`\b(send|transfer|pay|give)\b`)},
	{CategoryRecharge, regexp.MustCompile(`\b(recharge|airtime|credit|top.?up|call)\b`)},
	{CategoryData, regexp.MustCompile(`\b(internet|data|bundle|mb|gb)\b`)},
	{CategoryHistory, regexp.MustCompile(`\b(history|transactions?|recent|operations?)\b`)},
	{CategoryBonus, regexp.MustCompile(`\b(bonus|loyalty|reward|gift)\b`)},
	{CategoryServices, regexp.MustCompile(`\b(services?|help|menu|assistance)\b`)},
	{CategoryThanks, regexp.MustCompile(`\b(thanks|thank you)\b`)},
	{CategoryFarewell, regexp.MustCompile(`\b(bye|goodbye|see you)\b`)},
}

// Classify maps input text to a command category. It is a pure function: it
// lowercases the text, walks the rule table in order and returns the category
// of the first rule that matches, or CategoryFallback when none do.
func Classify(text string) Category {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.pattern.MatchString(lower) {
			return r.category
		}
	}
	return CategoryFallback
}
