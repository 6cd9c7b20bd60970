// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionKind defines the type of a balance-affecting operation.
type TransactionKind string

const (
	TransactionKindTransfer        TransactionKind = "transfer"
	TransactionKindRecharge        TransactionKind = "recharge"
	TransactionKindDataPurchase    TransactionKind = "data_purchase"
	TransactionKindBonusRedemption TransactionKind = "bonus_redemption"
)

// TransactionStatus defines the status of a transaction. Rejected attempts are
// never recorded, so every logged transaction is a success.
type TransactionStatus string

const TransactionStatusSuccess TransactionStatus = "success"

// Transaction is an immutable record of a completed ledger mutation.
type Transaction struct {
	ID           string            `json:"id"`
	Kind         TransactionKind   `json:"kind"`
	Amount       int64             `json:"amount"`
	Fee          int64             `json:"fee,omitempty"`          // transfers only
	Counterparty string            `json:"counterparty,omitempty"` // transfers only
	Bundle       string            `json:"bundle,omitempty"`       // data purchases only
	CreatedAt    time.Time         `json:"created_at"`
	Status       TransactionStatus `json:"status"`
}

// NewTransaction creates a transaction record with a short collision-negligible
// reference token, the same token quoted back to the user in replies.
func NewTransaction(kind TransactionKind, amount int64, at time.Time) Transaction {
	return Transaction{
		ID:        uuid.NewString()[:8],
		Kind:      kind,
		Amount:    amount,
		CreatedAt: at,
		Status:    TransactionStatusSuccess,
	}
}
