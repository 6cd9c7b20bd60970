// internal/domain/account.go
package domain

import "time"

// Account holds a user's monetary and service balances plus the transaction log.
// All monetary fields are non-negative integers in the smallest currency unit
// (FCFA has no fractional unit). Mutations go through the ledger only; the
// ledger guarantees no field is ever driven negative.
type Account struct {
	UserID           string        `json:"user_id"`
	Name             string        `json:"name"`
	Phone            string        `json:"phone"`
	PrincipalBalance int64         `json:"principal_balance"`
	AirtimeCredit    int64         `json:"airtime_credit"`
	DataAllowanceMB  int64         `json:"data_allowance_mb"`
	LoyaltyBonus     int64         `json:"loyalty_bonus"`
	Transactions     []Transaction `json:"transactions"`
	LastSeenAt       time.Time     `json:"last_seen_at"`
}

// DefaultUserID identifies the seeded account every unknown user id resolves to.
const DefaultUserID = "default"

// NewDefaultAccount returns the seeded account used when no snapshot can be
// loaded. Balances follow the richest prototype variant.
func NewDefaultAccount() *Account {
	return &Account{
		UserID:           DefaultUserID,
		Name:             "Client",
		Phone:            "74000000",
		PrincipalBalance: 50000,
		AirtimeCredit:    2500,
		DataAllowanceMB:  1024,
		LoyaltyBonus:     500,
		Transactions:     []Transaction{},
		LastSeenAt:       time.Now().UTC(),
	}
}

// Clone returns a deep copy so callers can read account state without holding
// the ledger lock.
func (a *Account) Clone() *Account {
	cp := *a
	cp.Transactions = make([]Transaction, len(a.Transactions))
	copy(cp.Transactions, a.Transactions)
	return &cp
}

// RecentTransactions returns at most limit entries from the tail of the log,
// preserving insertion order (oldest of the window first).
func (a *Account) RecentTransactions(limit int) []Transaction {
	if limit <= 0 || len(a.Transactions) == 0 {
		return nil
	}
	start := len(a.Transactions) - limit
	if start < 0 {
		start = 0
	}
	out := make([]Transaction, len(a.Transactions)-start)
	copy(out, a.Transactions[start:])
	return out
}
