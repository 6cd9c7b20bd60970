// internal/service/assistant_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mobivoice/internal/domain"
	"mobivoice/internal/fallback"
	"mobivoice/internal/ledger"
	"mobivoice/internal/metrics"
	"mobivoice/internal/nlp"
	"mobivoice/internal/util"
)

// Business rules. The richest prototype variant is canonical: minimums,
// maximum and fee tiers below apply regardless of what older variants did.
const (
	transferMinimum = 100
	transferMaximum = 500000
	rechargeMinimum = 500
	historyWindow   = 5
)

// transferFee returns the tiered fee charged on top of a transfer amount.
func transferFee(amount int64) int64 {
	switch {
	case amount <= 2500:
		return 100
	case amount <= 15000:
		return 200
	default:
		return 500
	}
}

// Outcome classifies how a command was resolved, used as a metrics label.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeRejected Outcome = "rejected"
	OutcomeFallback Outcome = "fallback"
)

// Result is the reply produced for one command.
type Result struct {
	Reply    string
	Category nlp.Category
	Outcome  Outcome
}

// Responder is the generative text collaborator invoked for unrecognized
// input.
type Responder interface {
	Respond(ctx context.Context, text string) (string, error)
}

// AssistantService defines the interface for command handling business logic.
type AssistantService interface {
	// Process classifies text, dispatches to the matching command handler and
	// returns the natural-language reply. Validation rejections are replies,
	// never errors; collaborator failures degrade to apology replies.
	Process(ctx context.Context, userID, text string) Result
	// Balances returns a read-only copy of the resolved account.
	Balances(userID string) *domain.Account
}

// assistantService implements the AssistantService interface.
type assistantService struct {
	ledger     *ledger.Ledger
	responder  Responder
	recognizer nlp.Recognizer // optional, may be nil
	metrics    *metrics.Metrics
	logger     *slog.Logger
	now        func() time.Time
}

// NewAssistantService creates a new instance of AssistantService.
func NewAssistantService(
	ldg *ledger.Ledger,
	responder Responder,
	recognizer nlp.Recognizer,
	m *metrics.Metrics,
	logger *slog.Logger,
) AssistantService {
	return &assistantService{
		ledger:     ldg,
		responder:  responder,
		recognizer: recognizer,
		metrics:    m,
		logger:     logger.With("component", "assistant"),
		now:        time.Now,
	}
}

func (s *assistantService) Process(ctx context.Context, userID, text string) Result {
	category := nlp.Classify(text)

	var reply string
	outcome := OutcomeSuccess

	switch category {
	case nlp.CategoryGreeting:
		reply = "Hello! I am your mobile money assistant. How can I help you today?"
	case nlp.CategoryTime:
		reply = fmt.Sprintf("It is %s hours %s minutes.", s.now().Format("15"), s.now().Format("04"))
	case nlp.CategoryBalance:
		reply = s.handleBalance(userID)
	case nlp.CategoryTransfer:
		reply, outcome = s.handleTransfer(ctx, userID, text)
	case nlp.CategoryRecharge:
		reply, outcome = s.handleRecharge(ctx, userID, text)
	case nlp.CategoryData:
		reply, outcome = s.handleDataPurchase(ctx, userID, text)
	case nlp.CategoryHistory:
		reply = s.handleHistory(userID)
	case nlp.CategoryBonus:
		reply, outcome = s.handleBonusRedemption(ctx, userID)
	case nlp.CategoryServices:
		reply = "Available services: check balance, send money, recharge airtime, buy internet, view history, redeem loyalty bonus."
	case nlp.CategoryThanks:
		reply = "My pleasure! Is there anything else I can do for you?"
	case nlp.CategoryFarewell:
		reply = "Goodbye! Thank you for using the assistant. See you soon!"
	default:
		reply = s.respondFallback(ctx, text)
		outcome = OutcomeFallback
	}

	s.metrics.Commands.WithLabelValues(string(category), string(outcome)).Inc()
	return Result{Reply: reply, Category: category, Outcome: outcome}
}

func (s *assistantService) Balances(userID string) *domain.Account {
	return s.ledger.Balances(userID)
}

func (s *assistantService) handleBalance(userID string) string {
	acc := s.ledger.Balances(userID)
	return fmt.Sprintf(
		"Here are your balances: main balance %d FCFA, airtime credit %d FCFA, internet %d MB, loyalty bonus %d FCFA.",
		acc.PrincipalBalance, acc.AirtimeCredit, acc.DataAllowanceMB, acc.LoyaltyBonus,
	)
}

// handleTransfer checks preconditions in a fixed order, each failure replying
// immediately: recipient, amount, minimum, maximum, sufficiency on the amount,
// then sufficiency on amount plus fee. The fee check runs only after the plain
// sufficiency check passed, making it a second validation gate.
func (s *assistantService) handleTransfer(ctx context.Context, userID, text string) (string, Outcome) {
	var entities []nlp.Entity
	if s.recognizer != nil && s.recognizer.Available() {
		entities = s.recognizer.Entities(text)
	}

	recipient, ok := nlp.ExtractRecipient(text, entities)
	if !ok {
		return "Who do you want to send money to? Give me a name or a phone number.", OutcomeRejected
	}

	amount, ok := nlp.ExtractAmount(text)
	if !ok {
		return fmt.Sprintf("How much do you want to send to %s?", recipient), OutcomeRejected
	}

	if amount < transferMinimum {
		return fmt.Sprintf("The minimum transfer amount is %d FCFA.", transferMinimum), OutcomeRejected
	}
	if amount > transferMaximum {
		return fmt.Sprintf("The maximum amount per transaction is %d FCFA.", transferMaximum), OutcomeRejected
	}

	fee := transferFee(amount)
	updated, tx, err := s.ledger.Transfer(ctx, userID, amount, fee, recipient)
	if err != nil {
		switch {
		case util.IsError(err, util.ErrInsufficientFunds):
			return s.insufficientBalanceReply(userID), OutcomeRejected
		case util.IsError(err, util.ErrInsufficientForFee):
			return fmt.Sprintf("Insufficient balance to cover the fee. Total needed: %d FCFA (fee: %d FCFA).", amount+fee, fee), OutcomeRejected
		default:
			s.logger.Error("transfer failed", "error", err, "user", userID)
			return "Sorry, I could not complete the transfer.", OutcomeRejected
		}
	}

	return fmt.Sprintf(
		"Transfer complete! %d FCFA sent to %s. Fee: %d FCFA. New balance: %d FCFA. Reference: %s.",
		tx.Amount, recipient, tx.Fee, updated.PrincipalBalance, tx.ID,
	), OutcomeSuccess
}

func (s *assistantService) handleRecharge(ctx context.Context, userID, text string) (string, Outcome) {
	amount, ok := nlp.ExtractAmount(text)
	if !ok {
		return "How much airtime credit do you want to recharge?", OutcomeRejected
	}

	if amount < rechargeMinimum {
		return fmt.Sprintf("The minimum recharge amount is %d FCFA.", rechargeMinimum), OutcomeRejected
	}

	updated, _, err := s.ledger.Recharge(ctx, userID, amount)
	if err != nil {
		if util.IsError(err, util.ErrInsufficientFunds) {
			return s.insufficientBalanceReply(userID), OutcomeRejected
		}
		s.logger.Error("recharge failed", "error", err, "user", userID)
		return "Sorry, I could not complete the recharge.", OutcomeRejected
	}

	return fmt.Sprintf(
		"Recharge complete! %d FCFA added to your airtime credit. New credit: %d FCFA. Remaining balance: %d FCFA.",
		amount, updated.AirtimeCredit, updated.PrincipalBalance,
	), OutcomeSuccess
}

func (s *assistantService) handleDataPurchase(ctx context.Context, userID, text string) (string, Outcome) {
	amount, ok := nlp.ExtractAmount(text)
	if !ok {
		return "Choose an internet bundle: " + bundleCatalogSummary() + ".", OutcomeRejected
	}

	bundle, ok := domain.BundleByPrice(amount)
	if !ok {
		return "No bundle at that price. Available amounts: " + bundlePriceList() + " FCFA.", OutcomeRejected
	}

	updated, _, err := s.ledger.PurchaseBundle(ctx, userID, bundle)
	if err != nil {
		if util.IsError(err, util.ErrInsufficientFunds) {
			return s.insufficientBalanceReply(userID), OutcomeRejected
		}
		s.logger.Error("data purchase failed", "error", err, "user", userID)
		return "Sorry, I could not complete the purchase.", OutcomeRejected
	}

	return fmt.Sprintf(
		"%s purchased! %d MB added. Total internet: %d MB. Remaining balance: %d FCFA.",
		bundle.Name, bundle.SizeMB, updated.DataAllowanceMB, updated.PrincipalBalance,
	), OutcomeSuccess
}

func (s *assistantService) handleHistory(userID string) string {
	txs := s.ledger.History(userID, historyWindow)
	if len(txs) == 0 {
		return "No transactions in your history."
	}

	entries := make([]string, len(txs))
	for i, tx := range txs {
		entries[i] = tx.CreatedAt.Format("02/01 at 15:04") + " - " + transactionSummary(tx)
	}
	return "Your recent transactions: " + strings.Join(entries, ". ") + "."
}

func (s *assistantService) handleBonusRedemption(ctx context.Context, userID string) (string, Outcome) {
	updated, tx, err := s.ledger.RedeemBonus(ctx, userID)
	if err != nil {
		if util.IsError(err, util.ErrNoBonusAvailable) {
			return "You have no loyalty bonus available at the moment.", OutcomeRejected
		}
		s.logger.Error("bonus redemption failed", "error", err, "user", userID)
		return "Sorry, I could not redeem your bonus.", OutcomeRejected
	}

	return fmt.Sprintf(
		"Loyalty bonus redeemed! %d FCFA credited to your account. New balance: %d FCFA.",
		tx.Amount, updated.PrincipalBalance,
	), OutcomeSuccess
}

// respondFallback delegates to the generative collaborator and degrades each
// typed failure to its own fixed apology, so the ledger is never involved and
// a slow or broken service costs at most the client timeout.
func (s *assistantService) respondFallback(ctx context.Context, text string) string {
	start := s.now()
	answer, err := s.responder.Respond(ctx, text)
	s.metrics.FallbackLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		switch {
		case util.IsError(err, fallback.ErrNoAnswer):
			s.metrics.FallbackRequests.WithLabelValues("no_answer").Inc()
			return "I did not understand your request."
		case util.IsError(err, fallback.ErrUnavailable):
			s.metrics.FallbackRequests.WithLabelValues("unavailable").Inc()
			s.logger.Warn("fallback responder unavailable", "error", err)
			return "The service is temporarily unavailable."
		default:
			s.metrics.FallbackRequests.WithLabelValues("error").Inc()
			s.logger.Error("fallback responder failed", "error", err)
			return "I could not process your request."
		}
	}

	s.metrics.FallbackRequests.WithLabelValues("success").Inc()
	return answer
}

func (s *assistantService) insufficientBalanceReply(userID string) string {
	acc := s.ledger.Balances(userID)
	return fmt.Sprintf("Insufficient balance. Your balance is %d FCFA.", acc.PrincipalBalance)
}

func transactionSummary(tx domain.Transaction) string {
	switch tx.Kind {
	case domain.TransactionKindTransfer:
		return fmt.Sprintf("Transfer %d FCFA to %s", tx.Amount, tx.Counterparty)
	case domain.TransactionKindRecharge:
		return fmt.Sprintf("Airtime recharge %d FCFA", tx.Amount)
	case domain.TransactionKindDataPurchase:
		return fmt.Sprintf("%s %d FCFA", tx.Bundle, tx.Amount)
	case domain.TransactionKindBonusRedemption:
		return fmt.Sprintf("Loyalty bonus %d FCFA", tx.Amount)
	default:
		return fmt.Sprintf("%s %d FCFA", tx.Kind, tx.Amount)
	}
}

func bundleCatalogSummary() string {
	parts := make([]string, len(domain.BundleCatalog))
	for i, b := range domain.BundleCatalog {
		parts[i] = fmt.Sprintf("%d FCFA for %s", b.Price, strings.TrimSuffix(b.Name, " bundle"))
	}
	return strings.Join(parts, ", ")
}

func bundlePriceList() string {
	parts := make([]string, len(domain.BundleCatalog))
	for i, b := range domain.BundleCatalog {
		parts[i] = fmt.Sprintf("%d", b.Price)
	}
	return strings.Join(parts, ", ")
}
