// internal/ledger/ledger.go
package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"mobivoice/internal/domain"
	"mobivoice/internal/repository"
	"mobivoice/internal/util"
)

// Ledger holds every account in memory and is the only type allowed to mutate
// them. A single mutex serializes all access process-wide: each command is
// fully validated and applied before the next one touches the same state, so
// the check-then-act sequences inside each mutator cannot interleave.
//
// Every mutator validates completely before touching the account (fail
// closed); a rejected operation returns a typed error and leaves the account
// unchanged, and no partial mutation is ever visible. After a successful
// mutation the full account set is saved through the snapshot store; a save
// failure is logged and non-fatal, so the durable copy is best-effort.
type Ledger struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	store    repository.SnapshotStore
	logger   *slog.Logger
	now      func() time.Time
}

// New builds a ledger from the persisted snapshot. When the snapshot cannot
// be loaded, or holds no accounts, the ledger starts from one seeded default
// account.
func New(ctx context.Context, store repository.SnapshotStore, logger *slog.Logger) *Ledger {
	l := &Ledger{
		store:  store,
		logger: logger.With("component", "ledger"),
		now:    time.Now,
	}

	accounts, err := store.Load(ctx)
	if err != nil {
		l.logger.Warn("failed to load account snapshot, seeding default account", "error", err)
		accounts = nil
	}
	if len(accounts) == 0 {
		accounts = map[string]*domain.Account{
			domain.DefaultUserID: domain.NewDefaultAccount(),
		}
	}
	l.accounts = accounts
	return l
}

// resolve returns the account for userID, falling back to the default account
// when the identifier is unknown. Callers must hold l.mu.
func (l *Ledger) resolve(userID string) *domain.Account {
	if acc, ok := l.accounts[userID]; ok {
		return acc
	}
	acc, ok := l.accounts[domain.DefaultUserID]
	if !ok {
		acc = domain.NewDefaultAccount()
		l.accounts[domain.DefaultUserID] = acc
	}
	return acc
}

// Balances returns a copy of the resolved account for read-only use.
func (l *Ledger) Balances(userID string) *domain.Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resolve(userID).Clone()
}

// History returns at most limit transactions for the resolved account, oldest
// of the window first.
func (l *Ledger) History(userID string, limit int) []domain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resolve(userID).RecentTransactions(limit)
}

// Transfer debits amount plus fee from the principal balance and appends a
// transfer transaction. Sufficiency is checked against amount alone first and
// then against amount plus fee, so the fee acts as a second validation gate.
func (l *Ledger) Transfer(ctx context.Context, userID string, amount, fee int64, recipient string) (*domain.Account, domain.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc := l.resolve(userID)
	if amount <= 0 {
		return nil, domain.Transaction{}, util.ErrInvalidInput
	}
	if amount > acc.PrincipalBalance {
		return nil, domain.Transaction{}, util.ErrInsufficientFunds
	}
	if amount+fee > acc.PrincipalBalance {
		return nil, domain.Transaction{}, util.ErrInsufficientForFee
	}

	acc.PrincipalBalance -= amount + fee
	tx := domain.NewTransaction(domain.TransactionKindTransfer, amount, l.now().UTC())
	tx.Fee = fee
	tx.Counterparty = recipient
	acc.Transactions = append(acc.Transactions, tx)

	l.persist(ctx)
	return acc.Clone(), tx, nil
}

// Recharge moves amount from the principal balance to airtime credit.
func (l *Ledger) Recharge(ctx context.Context, userID string, amount int64) (*domain.Account, domain.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc := l.resolve(userID)
	if amount <= 0 {
		return nil, domain.Transaction{}, util.ErrInvalidInput
	}
	if amount > acc.PrincipalBalance {
		return nil, domain.Transaction{}, util.ErrInsufficientFunds
	}

	acc.PrincipalBalance -= amount
	acc.AirtimeCredit += amount
	tx := domain.NewTransaction(domain.TransactionKindRecharge, amount, l.now().UTC())
	acc.Transactions = append(acc.Transactions, tx)

	l.persist(ctx)
	return acc.Clone(), tx, nil
}

// PurchaseBundle debits the bundle price and credits its data allowance.
func (l *Ledger) PurchaseBundle(ctx context.Context, userID string, bundle domain.Bundle) (*domain.Account, domain.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc := l.resolve(userID)
	if bundle.Price > acc.PrincipalBalance {
		return nil, domain.Transaction{}, util.ErrInsufficientFunds
	}

	acc.PrincipalBalance -= bundle.Price
	acc.DataAllowanceMB += bundle.SizeMB
	tx := domain.NewTransaction(domain.TransactionKindDataPurchase, bundle.Price, l.now().UTC())
	tx.Bundle = bundle.Name
	acc.Transactions = append(acc.Transactions, tx)

	l.persist(ctx)
	return acc.Clone(), tx, nil
}

// RedeemBonus moves the whole loyalty bonus onto the principal balance. A
// second call in a row is rejected because the bonus is already zero; the
// bonus can never go negative.
func (l *Ledger) RedeemBonus(ctx context.Context, userID string) (*domain.Account, domain.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc := l.resolve(userID)
	if acc.LoyaltyBonus <= 0 {
		return nil, domain.Transaction{}, util.ErrNoBonusAvailable
	}

	bonus := acc.LoyaltyBonus
	acc.PrincipalBalance += bonus
	acc.LoyaltyBonus = 0
	tx := domain.NewTransaction(domain.TransactionKindBonusRedemption, bonus, l.now().UTC())
	acc.Transactions = append(acc.Transactions, tx)

	l.persist(ctx)
	return acc.Clone(), tx, nil
}

// persist saves the full account set through the snapshot store. Callers must
// hold l.mu. The in-memory mutation stands even when the save fails.
func (l *Ledger) persist(ctx context.Context) {
	if err := l.store.Save(ctx, l.accounts); err != nil {
		l.logger.Error("failed to save account snapshot", "error", err)
	}
}
