// internal/service/assistant_service_test.go
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mobivoice/internal/domain"
	"mobivoice/internal/fallback"
	"mobivoice/internal/ledger"
	"mobivoice/internal/metrics"
	"mobivoice/internal/repository/memory"
)

// MockResponder is a mock implementation of Responder.
type MockResponder struct {
	mock.Mock
}

func (m *MockResponder) Respond(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestService wires a service over an in-memory ledger seeded with the
// given principal balance on the default account.
func newTestService(t *testing.T, principal int64, responder Responder) (AssistantService, *ledger.Ledger) {
	t.Helper()

	acc := domain.NewDefaultAccount()
	acc.PrincipalBalance = principal

	store := memory.New()
	require.NoError(t, store.Save(context.Background(), map[string]*domain.Account{acc.UserID: acc}))

	ldg := ledger.New(context.Background(), store, testLogger())
	svc := NewAssistantService(ldg, responder, nil, metrics.New("test"), testLogger())
	return svc, ldg
}

func TestProcessGreeting(t *testing.T) {
	svc, _ := newTestService(t, 50000, new(MockResponder))

	result := svc.Process(context.Background(), domain.DefaultUserID, "Hello")
	assert.Equal(t, OutcomeSuccess, result.Outcome)
	assert.Contains(t, result.Reply, "mobile money assistant")
}

func TestProcessTime(t *testing.T) {
	svc, _ := newTestService(t, 50000, new(MockResponder))
	svc.(*assistantService).now = func() time.Time {
		return time.Date(2025, 6, 1, 14, 7, 0, 0, time.UTC)
	}

	result := svc.Process(context.Background(), domain.DefaultUserID, "what time is it")
	assert.Equal(t, "It is 14 hours 07 minutes.", result.Reply)
}

func TestProcessBalance(t *testing.T) {
	svc, _ := newTestService(t, 50000, new(MockResponder))

	result := svc.Process(context.Background(), domain.DefaultUserID, "what is my balance")
	assert.Contains(t, result.Reply, "main balance 50000 FCFA")
	assert.Contains(t, result.Reply, "airtime credit 2500 FCFA")
	assert.Contains(t, result.Reply, "internet 1024 MB")
	assert.Contains(t, result.Reply, "loyalty bonus 500 FCFA")
}

func TestProcessTransferSuccess(t *testing.T) {
	svc, _ := newTestService(t, 10000, new(MockResponder))

	result := svc.Process(context.Background(), domain.DefaultUserID, "send 3000 francs to 71234567")
	assert.Equal(t, OutcomeSuccess, result.Outcome)
	assert.Contains(t, result.Reply, "3000 FCFA sent to Number 71234567")
	assert.Contains(t, result.Reply, "Fee: 200 FCFA")
	assert.Contains(t, result.Reply, "New balance: 6800 FCFA")
}

func TestProcessTransferMissingRecipient(t *testing.T) {
	svc, ldg := newTestService(t, 10000, new(MockResponder))

	result := svc.Process(context.Background(), domain.DefaultUserID, "send 3000 francs")
	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.Contains(t, result.Reply, "Who do you want to send money to?")
	assert.Equal(t, int64(10000), ldg.Balances(domain.DefaultUserID).PrincipalBalance)
}

func TestProcessTransferMissingAmount(t *testing.T) {
	svc, _ := newTestService(t, 10000, new(MockResponder))

	result := svc.Process(context.Background(), domain.DefaultUserID, "transfer something to Marie")
	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.Contains(t, result.Reply, "How much do you want to send to Marie?")
}

func TestProcessTransferBelowMinimum(t *testing.T) {
	svc, _ := newTestService(t, 10000, new(MockResponder))

	result := svc.Process(context.Background(), domain.DefaultUserID, "send 50 francs to Marie")
	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.Contains(t, result.Reply, "minimum transfer amount is 100 FCFA")
}

func TestProcessTransferAboveMaximum(t *testing.T) {
	svc, _ := newTestService(t, 10000, new(MockResponder))

	result := svc.Process(context.Background(), domain.DefaultUserID, "send 600000 francs to Marie")
	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.Contains(t, result.Reply, "maximum amount per transaction is 500000 FCFA")
}

func TestProcessTransferInsufficientForFee(t *testing.T) {
	// 3000 covers the amount but not the 200 fee.
	svc, ldg := newTestService(t, 3000, new(MockResponder))

	result := svc.Process(context.Background(), domain.DefaultUserID, "send 3000 francs to Marie")
	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.Contains(t, result.Reply, "Total needed: 3200 FCFA (fee: 200 FCFA)")
	assert.Equal(t, int64(3000), ldg.Balances(domain.DefaultUserID).PrincipalBalance)
}

func TestProcessRechargeSuccess(t *testing.T) {
	svc, _ := newTestService(t, 10000, new(MockResponder))

	result := svc.Process(context.Background(), domain.DefaultUserID, "recharge 1500 francs of airtime")
	assert.Equal(t, OutcomeSuccess, result.Outcome)
	assert.Contains(t, result.Reply, "1500 FCFA added to your airtime credit")
	assert.Contains(t, result.Reply, "New credit: 4000 FCFA")
	assert.Contains(t, result.Reply, "Remaining balance: 8500 FCFA")
}

func TestProcessRechargeBelowMinimum(t *testing.T) {
	svc, _ := newTestService(t, 10000, new(MockResponder))

	result := svc.Process(context.Background(), domain.DefaultUserID, "recharge 300 francs of airtime")
	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.Contains(t, result.Reply, "minimum recharge amount is 500 FCFA")
}

func TestProcessRechargeInsufficientBalance(t *testing.T) {
	svc, ldg := newTestService(t, 400, new(MockResponder))

	result := svc.Process(context.Background(), domain.DefaultUserID, "recharge 500 francs of airtime")
	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.Contains(t, result.Reply, "Insufficient balance. Your balance is 400 FCFA.")
	assert.Equal(t, int64(400), ldg.Balances(domain.DefaultUserID).PrincipalBalance)
}

func TestProcessDataPurchaseSuccess(t *testing.T) {
	svc, _ := newTestService(t, 10000, new(MockResponder))

	result := svc.Process(context.Background(), domain.DefaultUserID, "buy internet for 1000 francs")
	assert.Equal(t, OutcomeSuccess, result.Outcome)
	assert.Contains(t, result.Reply, "500MB bundle purchased!")
	assert.Contains(t, result.Reply, "500 MB added")
	assert.Contains(t, result.Reply, "Remaining balance: 9000 FCFA")
}

func TestProcessDataPurchaseUnknownPrice(t *testing.T) {
	svc, ldg := newTestService(t, 10000, new(MockResponder))

	result := svc.Process(context.Background(), domain.DefaultUserID, "buy internet for 1500 francs")
	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.Contains(t, result.Reply, "No bundle at that price")
	assert.Contains(t, result.Reply, "500, 1000, 2000, 5000 FCFA")
	assert.Equal(t, int64(10000), ldg.Balances(domain.DefaultUserID).PrincipalBalance)
}

func TestProcessDataPurchaseNoAmount(t *testing.T) {
	svc, _ := newTestService(t, 10000, new(MockResponder))

	result := svc.Process(context.Background(), domain.DefaultUserID, "I want an internet bundle")
	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.Contains(t, result.Reply, "Choose an internet bundle")
}

func TestProcessHistory(t *testing.T) {
	svc, ldg := newTestService(t, 10000, new(MockResponder))

	result := svc.Process(context.Background(), domain.DefaultUserID, "show my history")
	assert.Equal(t, "No transactions in your history.", result.Reply)

	_, _, err := ldg.Transfer(context.Background(), domain.DefaultUserID, 1000, 100, "Marie")
	require.NoError(t, err)

	result = svc.Process(context.Background(), domain.DefaultUserID, "show my history")
	assert.Contains(t, result.Reply, "Your recent transactions:")
	assert.Contains(t, result.Reply, "Transfer 1000 FCFA to Marie")
}

func TestProcessBonusRedemption(t *testing.T) {
	svc, _ := newTestService(t, 10000, new(MockResponder))

	result := svc.Process(context.Background(), domain.DefaultUserID, "redeem my bonus")
	assert.Equal(t, OutcomeSuccess, result.Outcome)
	assert.Contains(t, result.Reply, "500 FCFA credited to your account")
	assert.Contains(t, result.Reply, "New balance: 10500 FCFA")

	result = svc.Process(context.Background(), domain.DefaultUserID, "redeem my bonus")
	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.Contains(t, result.Reply, "no loyalty bonus available")
}

func TestProcessFallbackSuccess(t *testing.T) {
	responder := new(MockResponder)
	responder.On("Respond", mock.Anything, "what is the weather like").
		Return("It is sunny in Ouagadougou.", nil)

	svc, _ := newTestService(t, 10000, responder)

	result := svc.Process(context.Background(), domain.DefaultUserID, "what is the weather like")
	assert.Equal(t, OutcomeFallback, result.Outcome)
	assert.Equal(t, "It is sunny in Ouagadougou.", result.Reply)
	responder.AssertExpectations(t)
}

func TestProcessFallbackFailures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"no answer", fallback.ErrNoAnswer, "I did not understand your request."},
		{"unavailable", fallback.ErrUnavailable, "The service is temporarily unavailable."},
		{"other error", errors.New("boom"), "I could not process your request."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			responder := new(MockResponder)
			responder.On("Respond", mock.Anything, mock.Anything).Return("", tc.err)

			svc, _ := newTestService(t, 10000, responder)

			result := svc.Process(context.Background(), domain.DefaultUserID, "what is the weather like")
			assert.Equal(t, OutcomeFallback, result.Outcome)
			assert.Equal(t, tc.expected, result.Reply)
		})
	}
}

func TestTransferFeeTiers(t *testing.T) {
	assert.Equal(t, int64(100), transferFee(100))
	assert.Equal(t, int64(100), transferFee(2500))
	assert.Equal(t, int64(200), transferFee(2501))
	assert.Equal(t, int64(200), transferFee(15000))
	assert.Equal(t, int64(500), transferFee(15001))
	assert.Equal(t, int64(500), transferFee(500000))
}
