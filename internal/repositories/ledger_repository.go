package repositories

import (
	"context"
	"errors"

	"investplus/internal/models"
)

var (
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrDuplicateReference = errors.New("ledger reference already recorded")
)

// LedgerRepository defines the persistence operations behind the ledger
// service. WalletForUpdate must be called inside ExecuteInTransaction; it
// takes a row lock so racing mutations on the same user serialize.
type LedgerRepository interface {
	CreateWallet(ctx context.Context, w *models.Wallet) error
	WalletFor(ctx context.Context, userID uint) (*models.Wallet, error)
	WalletForUpdate(ctx context.Context, userID uint) (*models.Wallet, error)
	SaveWallet(ctx context.Context, w *models.Wallet) error

	// AppendEntry inserts one immutable entry. A reference collision
	// returns ErrDuplicateReference.
	AppendEntry(ctx context.Context, e *models.LedgerEntry) error
	EntriesFor(ctx context.Context, userID uint, limit, offset int) ([]models.LedgerEntry, int64, error)
	SumEntries(ctx context.Context, userID uint, wallet string) (float64, error)
	SumByType(ctx context.Context, userID uint, entryType string) (float64, error)

	ExecuteInTransaction(ctx context.Context, fn func(LedgerRepository) error) error
}
