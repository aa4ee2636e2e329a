package ledger_test

import (
	"context"
	"testing"

	"investplus/internal/models"
	"investplus/internal/repositories/repotest"
	"investplus/internal/services/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (ledger.Service, *repotest.Store) {
	t.Helper()
	store := repotest.NewStore()
	repo := store.Ledger()
	require.NoError(t, repo.CreateWallet(context.Background(), &models.Wallet{UserID: 1}))
	return ledger.NewService(repo, nil, ledger.Config{}, nil), store
}

func TestCredit(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	entry, err := svc.Credit(ctx, ledger.Operation{
		UserID:    1,
		Wallet:    models.WalletDeposit,
		Amount:    100,
		Type:      models.EntryRechargeCredit,
		Reference: "recharge:1",
	})
	require.NoError(t, err)
	assert.Equal(t, float64(100), entry.Amount)

	wallet, err := svc.BalanceFor(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, float64(100), wallet.DepositBalance)
	assert.Equal(t, float64(0), wallet.WithdrawableBalance)
}

func TestCreditRejectsDebitType(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Credit(context.Background(), ledger.Operation{
		UserID:    1,
		Wallet:    models.WalletDeposit,
		Amount:    100,
		Type:      models.EntryPurchaseDebit,
		Reference: "purchase:x",
	})
	assert.ErrorIs(t, err, ledger.ErrInvalidEntryType)
}

func TestDebitStoresNegativeAmount(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Credit(ctx, ledger.Operation{
		UserID: 1, Wallet: models.WalletDeposit, Amount: 500,
		Type: models.EntryRechargeCredit, Reference: "recharge:1",
	})
	require.NoError(t, err)

	entry, err := svc.Debit(ctx, ledger.Operation{
		UserID: 1, Wallet: models.WalletDeposit, Amount: 200,
		Type: models.EntryPurchaseDebit, Reference: "purchase:1",
	})
	require.NoError(t, err)
	assert.Equal(t, float64(-200), entry.Amount)

	wallet, err := svc.BalanceFor(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, float64(300), wallet.DepositBalance)
}

func TestDebitInsufficientFunds(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Debit(ctx, ledger.Operation{
		UserID: 1, Wallet: models.WalletDeposit, Amount: 50,
		Type: models.EntryPurchaseDebit, Reference: "purchase:1",
	})
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	// A failed debit must leave no trace.
	entries, total, err := svc.EntriesFor(ctx, 1, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Zero(t, total)
}

func TestWalletsAreIndependent(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Credit(ctx, ledger.Operation{
		UserID: 1, Wallet: models.WalletWithdrawable, Amount: 100,
		Type: models.EntryClaimCredit, Reference: "claim:1:2026-01-01",
	})
	require.NoError(t, err)

	// Withdrawable funds cannot cover a deposit-wallet debit.
	_, err = svc.Debit(ctx, ledger.Operation{
		UserID: 1, Wallet: models.WalletDeposit, Amount: 100,
		Type: models.EntryPurchaseDebit, Reference: "purchase:1",
	})
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
}

func TestDuplicateReference(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	op := ledger.Operation{
		UserID: 1, Wallet: models.WalletWithdrawable, Amount: 50,
		Type: models.EntrySignupCredit, Reference: "signup:1",
	}
	_, err := svc.Credit(ctx, op)
	require.NoError(t, err)

	_, err = svc.Credit(ctx, op)
	assert.ErrorIs(t, err, ledger.ErrDuplicateReference)

	// The replay must not double-post.
	wallet, err := svc.BalanceFor(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, float64(50), wallet.WithdrawableBalance)
}

func TestInvalidOperations(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		op   ledger.Operation
		want error
	}{
		{
			name: "zero amount",
			op: ledger.Operation{
				UserID: 1, Wallet: models.WalletDeposit, Amount: 0,
				Type: models.EntryRechargeCredit, Reference: "r:1",
			},
			want: ledger.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			op: ledger.Operation{
				UserID: 1, Wallet: models.WalletDeposit, Amount: -10,
				Type: models.EntryRechargeCredit, Reference: "r:2",
			},
			want: ledger.ErrInvalidAmount,
		},
		{
			name: "unknown wallet",
			op: ledger.Operation{
				UserID: 1, Wallet: "savings", Amount: 10,
				Type: models.EntryRechargeCredit, Reference: "r:3",
			},
			want: ledger.ErrInvalidWallet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Credit(ctx, tt.op)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// ApplyIn runs under the caller's deadline: an expired context must abort
// the mutation before it touches the wallet.
func TestApplyInHonorsCallerDeadline(t *testing.T) {
	svc, store := newService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ApplyIn(ctx, store.Ledger(), ledger.Operation{
		UserID: 1, Wallet: models.WalletDeposit, Amount: 100,
		Type: models.EntryRechargeCredit, Reference: "recharge:1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrTransient)

	wallet, err := svc.BalanceFor(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, wallet.DepositBalance)
}

func TestReconcile(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	ops := []ledger.Operation{
		{UserID: 1, Wallet: models.WalletDeposit, Amount: 1000, Type: models.EntryRechargeCredit, Reference: "recharge:1"},
		{UserID: 1, Wallet: models.WalletWithdrawable, Amount: 50, Type: models.EntrySignupCredit, Reference: "signup:1"},
	}
	for _, op := range ops {
		_, err := svc.Credit(ctx, op)
		require.NoError(t, err)
	}
	_, err := svc.Debit(ctx, ledger.Operation{
		UserID: 1, Wallet: models.WalletDeposit, Amount: 400,
		Type: models.EntryPurchaseDebit, Reference: "purchase:1",
	})
	require.NoError(t, err)

	report, err := svc.Reconcile(ctx, 1)
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.Equal(t, float64(600), report.DepositBalance)
	assert.Equal(t, float64(600), report.DepositLedgerSum)
	assert.Equal(t, float64(50), report.WithdrawableBalance)
	assert.Equal(t, float64(50), report.WithdrawableSum)
}
