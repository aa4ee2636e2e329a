package user_test

import (
	"context"
	"testing"

	"investplus/internal/models"
	"investplus/internal/repositories/repotest"
	"investplus/internal/services/ledger"
	"investplus/internal/services/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (user.Service, ledger.Service, *repotest.Store, *models.User) {
	t.Helper()
	ctx := context.Background()
	store := repotest.NewStore()

	u := &models.User{Name: "Asha", Mobile: "9876543210", Password: "x"}
	require.NoError(t, store.Users().Create(ctx, u))
	require.NoError(t, store.Ledger().CreateWallet(ctx, &models.Wallet{UserID: u.ID}))

	ledgerSvc := ledger.NewService(store.Ledger(), nil, ledger.Config{}, nil)
	svc := user.NewService(store.Users(), store.Ledger(), ledgerSvc)
	return svc, ledgerSvc, store, u
}

func TestSummary(t *testing.T) {
	svc, ledgerSvc, _, u := setup(t)
	ctx := context.Background()

	ops := []ledger.Operation{
		{UserID: u.ID, Wallet: models.WalletDeposit, Amount: 1000, Type: models.EntryRechargeCredit, Reference: "recharge:1"},
		{UserID: u.ID, Wallet: models.WalletWithdrawable, Amount: 50, Type: models.EntrySignupCredit, Reference: "signup:1"},
		{UserID: u.ID, Wallet: models.WalletWithdrawable, Amount: 150, Type: models.EntryClaimCredit, Reference: "claim:1:2026-03-01"},
		{UserID: u.ID, Wallet: models.WalletWithdrawable, Amount: 40, Type: models.EntryReferralCredit, Reference: "referral:7"},
	}
	for _, op := range ops {
		_, err := ledgerSvc.Credit(ctx, op)
		require.NoError(t, err)
	}
	debits := []ledger.Operation{
		{UserID: u.ID, Wallet: models.WalletDeposit, Amount: 500, Type: models.EntryPurchaseDebit, Reference: "purchase:1"},
		{UserID: u.ID, Wallet: models.WalletWithdrawable, Amount: 100, Type: models.EntryWithdrawalDebit, Reference: "withdrawal:1"},
	}
	for _, op := range debits {
		_, err := ledgerSvc.Debit(ctx, op)
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx, u.ID)
	require.NoError(t, err)

	assert.Equal(t, float64(500), summary.DepositBalance)
	assert.Equal(t, float64(140), summary.WithdrawableBalance)
	assert.Equal(t, float64(500), summary.TotalInvested)
	assert.Equal(t, float64(150), summary.TotalEarned)
	assert.Equal(t, float64(40), summary.ReferralEarnings)
	assert.Equal(t, float64(100), summary.TotalWithdrawn)
	assert.Equal(t, float64(1000), summary.TotalRecharged)
}

func TestAdjustBalance(t *testing.T) {
	svc, ledgerSvc, _, u := setup(t)
	ctx := context.Background()

	entry, err := svc.AdjustBalance(ctx, u.ID, models.WalletDeposit, 250, true)
	require.NoError(t, err)
	assert.Equal(t, models.EntryAdjustCredit, entry.Type)
	assert.Equal(t, float64(250), entry.Amount)

	entry, err = svc.AdjustBalance(ctx, u.ID, models.WalletDeposit, 100, false)
	require.NoError(t, err)
	assert.Equal(t, models.EntryAdjustDebit, entry.Type)
	assert.Equal(t, float64(-100), entry.Amount)

	wallet, err := ledgerSvc.BalanceFor(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(150), wallet.DepositBalance)

	// Adjustments show in the history like any other entry.
	report, err := ledgerSvc.Reconcile(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, report.Consistent)
}

func TestAdjustBalanceValidation(t *testing.T) {
	svc, _, _, u := setup(t)
	ctx := context.Background()

	_, err := svc.AdjustBalance(ctx, u.ID, models.WalletDeposit, -5, true)
	assert.ErrorIs(t, err, user.ErrInvalidAmount)

	_, err = svc.AdjustBalance(ctx, u.ID, "savings", 5, true)
	assert.ErrorIs(t, err, user.ErrInvalidWallet)

	_, err = svc.AdjustBalance(ctx, 777, models.WalletDeposit, 5, true)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestList(t *testing.T) {
	svc, _, store, _ := setup(t)
	ctx := context.Background()

	for _, mobile := range []string{"9876543211", "9876543212"} {
		require.NoError(t, store.Users().Create(ctx, &models.User{Name: "U", Mobile: mobile, Password: "x"}))
	}

	users, total, err := svc.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 2)
}
