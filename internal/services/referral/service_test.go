package referral_test

import (
	"context"
	"testing"

	"investplus/internal/models"
	"investplus/internal/repositories/repotest"
	"investplus/internal/services/ledger"
	"investplus/internal/services/referral"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*repotest.Store, ledger.Service, referral.Service, *models.User, *models.User) {
	t.Helper()
	ctx := context.Background()
	store := repotest.NewStore()

	referrer := &models.User{Name: "Referrer", Mobile: "9000000000", Password: "x"}
	require.NoError(t, store.Users().Create(ctx, referrer))
	require.NoError(t, store.Ledger().CreateWallet(ctx, &models.Wallet{UserID: referrer.ID}))

	buyer := &models.User{Name: "Buyer", Mobile: "9000000001", Password: "x", ReferredBy: &referrer.ID}
	require.NoError(t, store.Users().Create(ctx, buyer))
	require.NoError(t, store.Ledger().CreateWallet(ctx, &models.Wallet{UserID: buyer.ID}))

	ledgerSvc := ledger.NewService(store.Ledger(), nil, ledger.Config{}, nil)
	svc := referral.NewService(store.Users(), ledgerSvc, referral.Config{CommissionPercent: 10, BaseURL: "https://example.com"})
	return store, ledgerSvc, svc, referrer, buyer
}

func seedInvestment(t *testing.T, store *repotest.Store, buyer *models.User, price float64) *models.Investment {
	t.Helper()
	inv := &models.Investment{UserID: buyer.ID, PlanID: 1, PlanName: "Starter", OrderID: "o-1", Price: price, DailyIncome: 50, DurationDays: 10, DaysLeft: 10}
	require.NoError(t, store.Investments().Create(context.Background(), inv))
	return inv
}

func TestPayCommission(t *testing.T) {
	store, ledgerSvc, svc, referrer, buyer := setup(t)
	ctx := context.Background()
	inv := seedInvestment(t, store, buyer, 500)

	err := svc.PayCommission(ctx, store.Investments(), store.Ledger(), buyer, inv)
	require.NoError(t, err)

	wallet, err := ledgerSvc.BalanceFor(ctx, referrer.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(50), wallet.WithdrawableBalance)
}

// A replay of the same investment must not pay twice; the referral_paid flag
// absorbs it silently.
func TestPayCommissionIdempotent(t *testing.T) {
	store, ledgerSvc, svc, referrer, buyer := setup(t)
	ctx := context.Background()
	inv := seedInvestment(t, store, buyer, 500)

	require.NoError(t, svc.PayCommission(ctx, store.Investments(), store.Ledger(), buyer, inv))
	require.NoError(t, svc.PayCommission(ctx, store.Investments(), store.Ledger(), buyer, inv))

	wallet, err := ledgerSvc.BalanceFor(ctx, referrer.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(50), wallet.WithdrawableBalance)

	entries, _, err := ledgerSvc.EntriesFor(ctx, referrer.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPayCommissionNoReferrer(t *testing.T) {
	store, ledgerSvc, svc, referrer, buyer := setup(t)
	ctx := context.Background()

	buyer.ReferredBy = nil
	inv := seedInvestment(t, store, buyer, 500)

	require.NoError(t, svc.PayCommission(ctx, store.Investments(), store.Ledger(), buyer, inv))

	wallet, err := ledgerSvc.BalanceFor(ctx, referrer.ID)
	require.NoError(t, err)
	assert.Zero(t, wallet.WithdrawableBalance)
}

// A referrer account that has since disappeared is skipped, not an error.
func TestPayCommissionMissingReferrer(t *testing.T) {
	store, _, svc, _, buyer := setup(t)
	ctx := context.Background()

	missing := uint(12345)
	buyer.ReferredBy = &missing
	inv := seedInvestment(t, store, buyer, 500)

	err := svc.PayCommission(ctx, store.Investments(), store.Ledger(), buyer, inv)
	assert.NoError(t, err)

	// The flag must stay unset so a corrected referrer could still be paid.
	current, err := store.Investments().GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.False(t, current.ReferralPaid)
}

func TestLink(t *testing.T) {
	_, _, svc, referrer, _ := setup(t)
	link := svc.Link(referrer)
	assert.Contains(t, link, "https://example.com/register?ref=")
}
