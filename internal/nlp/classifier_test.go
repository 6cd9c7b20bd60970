// internal/nlp/classifier_test.go
package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Category
	}{
		{"greeting", "Hello there", CategoryGreeting},
		{"greeting phrase", "good morning everyone", CategoryGreeting},
		{"time", "what time is it", CategoryTime},
		{"balance", "what is my balance", CategoryBalance},
		{"balance phrase", "how much do I have left", CategoryBalance},
		{"transfer", "send 2000 to Marie", CategoryTransfer},
		{"transfer verb pay", "pay 500 to the shop", CategoryTransfer},
		{"recharge", "recharge my airtime with 1000", CategoryRecharge},
		{"data", "I want an internet bundle", CategoryData},
		{"history", "show me my recent transactions", CategoryHistory},
		{"bonus", "do I have a loyalty bonus", CategoryBonus},
		{"services", "what services do you offer", CategoryServices},
		{"thanks", "thanks a lot", CategoryThanks},
		{"farewell", "goodbye", CategoryFarewell},
		{"unknown", "what is the weather like today", CategoryFallback},
		{"empty", "", CategoryFallback},
		{"case insensitive", "SEND 2000 TO MARIE", CategoryTransfer},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.text))
		})
	}
}

// The rule table is ordered: when several rules match the same utterance, the
// earliest one wins.
func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Category
	}{
		{"greeting beats balance", "hello, what is my balance?", CategoryGreeting},
		{"balance beats transfer", "how much money can I send?", CategoryBalance},
		{"transfer beats recharge", "send credit to my brother", CategoryTransfer},
		{"recharge beats data", "top up my internet line", CategoryRecharge},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.text))
		})
	}
}
