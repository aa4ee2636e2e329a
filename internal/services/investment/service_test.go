package investment_test

import (
	"context"
	"testing"
	"time"

	"investplus/internal/models"
	"investplus/internal/repositories/repotest"
	"investplus/internal/services/investment"
	"investplus/internal/services/ledger"
	"investplus/internal/services/referral"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store  *repotest.Store
	svc    investment.Service
	ledger ledger.Service
	plan   *models.ProductPlan
	buyer  *models.User
}

// newFixture seeds one buyer with deposit funds and one active plan:
// price 500, daily income 50, duration 10 days.
func newFixture(t *testing.T, deposit float64, referrerID *uint) *fixture {
	t.Helper()
	ctx := context.Background()
	store := repotest.NewStore()

	buyer := &models.User{Name: "Buyer", Mobile: "9000000001", Password: "x", ReferredBy: referrerID}
	require.NoError(t, store.Users().Create(ctx, buyer))
	require.NoError(t, store.Ledger().CreateWallet(ctx, &models.Wallet{UserID: buyer.ID}))

	ledgerSvc := ledger.NewService(store.Ledger(), nil, ledger.Config{}, nil)
	if deposit > 0 {
		_, err := ledgerSvc.Credit(ctx, ledger.Operation{
			UserID: buyer.ID, Wallet: models.WalletDeposit, Amount: deposit,
			Type: models.EntryRechargeCredit, Reference: "recharge:seed",
		})
		require.NoError(t, err)
	}

	plan := &models.ProductPlan{Name: "Starter", Price: 500, DailyIncome: 50, DurationDays: 10, Status: "active"}
	require.NoError(t, store.Plans().Create(ctx, plan))

	referralSvc := referral.NewService(store.Users(), ledgerSvc, referral.Config{CommissionPercent: 10})
	svc := investment.NewService(store.Investments(), store.Plans(), store.Users(), ledgerSvc, referralSvc, nil, 0)

	return &fixture{store: store, svc: svc, ledger: ledgerSvc, plan: plan, buyer: buyer}
}

func (f *fixture) balance(t *testing.T, userID uint) *models.Wallet {
	t.Helper()
	wallet, err := f.ledger.BalanceFor(context.Background(), userID)
	require.NoError(t, err)
	return wallet
}

func TestPurchase(t *testing.T) {
	f := newFixture(t, 1000, nil)
	ctx := context.Background()

	inv, err := f.svc.Purchase(ctx, f.buyer.ID, f.plan.ID)
	require.NoError(t, err)

	assert.Equal(t, f.plan.Price, inv.Price)
	assert.Equal(t, f.plan.DailyIncome, inv.DailyIncome)
	assert.Equal(t, 10, inv.DaysLeft)
	assert.Equal(t, models.InvestmentRunning, inv.Status)
	assert.NotEmpty(t, inv.OrderID)

	assert.Equal(t, float64(500), f.balance(t, f.buyer.ID).DepositBalance)
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	f := newFixture(t, 100, nil)

	_, err := f.svc.Purchase(context.Background(), f.buyer.ID, f.plan.ID)
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	// The aborted purchase must leave no investment behind.
	views, listErr := f.svc.List(context.Background(), f.buyer.ID)
	require.NoError(t, listErr)
	assert.Empty(t, views)
	assert.Equal(t, float64(100), f.balance(t, f.buyer.ID).DepositBalance)
}

func TestPurchaseInactivePlan(t *testing.T) {
	f := newFixture(t, 1000, nil)
	ctx := context.Background()

	f.plan.Status = "inactive"
	require.NoError(t, f.store.Plans().Update(ctx, f.plan))

	_, err := f.svc.Purchase(ctx, f.buyer.ID, f.plan.ID)
	assert.ErrorIs(t, err, investment.ErrPlanUnavailable)
}

func TestPurchasePaysReferralCommission(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore()

	referrer := &models.User{Name: "Referrer", Mobile: "9000000000", Password: "x"}
	require.NoError(t, store.Users().Create(ctx, referrer))
	require.NoError(t, store.Ledger().CreateWallet(ctx, &models.Wallet{UserID: referrer.ID}))

	f := &fixture{store: store}
	buyer := &models.User{Name: "Buyer", Mobile: "9000000001", Password: "x", ReferredBy: &referrer.ID}
	require.NoError(t, store.Users().Create(ctx, buyer))
	require.NoError(t, store.Ledger().CreateWallet(ctx, &models.Wallet{UserID: buyer.ID}))

	ledgerSvc := ledger.NewService(store.Ledger(), nil, ledger.Config{}, nil)
	_, err := ledgerSvc.Credit(ctx, ledger.Operation{
		UserID: buyer.ID, Wallet: models.WalletDeposit, Amount: 1000,
		Type: models.EntryRechargeCredit, Reference: "recharge:seed",
	})
	require.NoError(t, err)

	plan := &models.ProductPlan{Name: "Starter", Price: 500, DailyIncome: 50, DurationDays: 10, Status: "active"}
	require.NoError(t, store.Plans().Create(ctx, plan))

	referralSvc := referral.NewService(store.Users(), ledgerSvc, referral.Config{CommissionPercent: 10})
	svc := investment.NewService(store.Investments(), store.Plans(), store.Users(), ledgerSvc, referralSvc, nil, 0)
	f.svc, f.ledger = svc, ledgerSvc

	_, err = svc.Purchase(ctx, buyer.ID, plan.ID)
	require.NoError(t, err)

	// 10% of 500 lands in the referrer's withdrawable wallet, exactly once.
	assert.Equal(t, float64(50), f.balance(t, referrer.ID).WithdrawableBalance)

	_, err = svc.Purchase(ctx, buyer.ID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(100), f.balance(t, referrer.ID).WithdrawableBalance)
}

func TestClaim(t *testing.T) {
	f := newFixture(t, 1000, nil)
	ctx := context.Background()

	inv, err := f.svc.Purchase(ctx, f.buyer.ID, f.plan.ID)
	require.NoError(t, err)

	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	claimed, err := f.svc.Claim(ctx, f.buyer.ID, inv.ID, day1)
	require.NoError(t, err)
	assert.Equal(t, 9, claimed.DaysLeft)

	wallet := f.balance(t, f.buyer.ID)
	assert.Equal(t, float64(50), wallet.WithdrawableBalance)
	assert.Equal(t, float64(500), wallet.DepositBalance)
}

func TestClaimTwiceSameDay(t *testing.T) {
	f := newFixture(t, 1000, nil)
	ctx := context.Background()

	inv, err := f.svc.Purchase(ctx, f.buyer.ID, f.plan.ID)
	require.NoError(t, err)

	morning := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)

	_, err = f.svc.Claim(ctx, f.buyer.ID, inv.ID, morning)
	require.NoError(t, err)

	_, err = f.svc.Claim(ctx, f.buyer.ID, inv.ID, evening)
	assert.ErrorIs(t, err, investment.ErrAlreadyClaimedToday)

	assert.Equal(t, float64(50), f.balance(t, f.buyer.ID).WithdrawableBalance)
}

func TestClaimNotOwner(t *testing.T) {
	f := newFixture(t, 1000, nil)
	ctx := context.Background()

	inv, err := f.svc.Purchase(ctx, f.buyer.ID, f.plan.ID)
	require.NoError(t, err)

	other := &models.User{Name: "Other", Mobile: "9000000002", Password: "x"}
	require.NoError(t, f.store.Users().Create(ctx, other))

	_, err = f.svc.Claim(ctx, other.ID, inv.ID, time.Now())
	assert.ErrorIs(t, err, investment.ErrNotOwner)
}

// Claiming every day of the duration pays out the full return and completes
// the investment; one more claim reports exhaustion.
func TestClaimFullLifecycle(t *testing.T) {
	f := newFixture(t, 1000, nil)
	ctx := context.Background()

	inv, err := f.svc.Purchase(ctx, f.buyer.ID, f.plan.ID)
	require.NoError(t, err)

	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		_, err := f.svc.Claim(ctx, f.buyer.ID, inv.ID, day.AddDate(0, 0, i))
		require.NoError(t, err, "claim on day %d", i+1)
	}

	current, err := f.store.Investments().GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, current.DaysLeft)
	assert.Equal(t, models.InvestmentCompleted, current.Status)
	assert.Equal(t, float64(500), f.balance(t, f.buyer.ID).WithdrawableBalance)

	_, err = f.svc.Claim(ctx, f.buyer.ID, inv.ID, day.AddDate(0, 0, 10))
	assert.ErrorIs(t, err, investment.ErrInvestmentExhausted)
}

func TestListDerivesClaimState(t *testing.T) {
	f := newFixture(t, 1000, nil)
	ctx := context.Background()

	inv, err := f.svc.Purchase(ctx, f.buyer.ID, f.plan.ID)
	require.NoError(t, err)

	_, err = f.svc.Claim(ctx, f.buyer.ID, inv.ID, time.Now())
	require.NoError(t, err)

	views, err := f.svc.List(ctx, f.buyer.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].ClaimedToday)
	assert.Equal(t, float64(50), views[0].TotalEarned)
}
