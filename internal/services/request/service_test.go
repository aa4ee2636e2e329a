package request_test

import (
	"context"
	"testing"

	"investplus/internal/models"
	"investplus/internal/repositories/repotest"
	"investplus/internal/services/ledger"
	"investplus/internal/services/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userID  = uint(1)
	adminID = uint(99)
)

func newFixture(t *testing.T, withdrawable float64) (request.Service, ledger.Service, *repotest.Store) {
	t.Helper()
	ctx := context.Background()
	store := repotest.NewStore()

	u := &models.User{Name: "User", Mobile: "9000000001", Password: "x"}
	require.NoError(t, store.Users().Create(ctx, u))
	require.NoError(t, store.Ledger().CreateWallet(ctx, &models.Wallet{UserID: u.ID}))

	ledgerSvc := ledger.NewService(store.Ledger(), nil, ledger.Config{}, nil)
	if withdrawable > 0 {
		_, err := ledgerSvc.Credit(ctx, ledger.Operation{
			UserID: u.ID, Wallet: models.WalletWithdrawable, Amount: withdrawable,
			Type: models.EntryClaimCredit, Reference: "claim:seed",
		})
		require.NoError(t, err)
	}

	svc := request.NewService(store.Requests(), ledgerSvc, nil, request.Config{})
	return svc, ledgerSvc, store
}

func TestSubmitWithdrawal(t *testing.T) {
	svc, _, _ := newFixture(t, 1000)

	req, err := svc.SubmitWithdrawal(context.Background(), userID, request.WithdrawalInput{
		Amount: 200, Method: "upi", Details: "user@bank",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RequestPending, req.Status)
	assert.Equal(t, float64(200), req.Amount)
	assert.Equal(t, float64(36), req.GstAmount) // 18% of 200
	assert.Equal(t, float64(164), req.NetAmount)
}

func TestSubmitWithdrawalValidation(t *testing.T) {
	svc, _, _ := newFixture(t, 1000)
	ctx := context.Background()

	tests := []struct {
		name  string
		input request.WithdrawalInput
		want  error
	}{
		{"below minimum", request.WithdrawalInput{Amount: 50, Method: "upi", Details: "x"}, request.ErrAmountBelowMinimum},
		{"zero amount", request.WithdrawalInput{Method: "upi", Details: "x"}, request.ErrInvalidAmount},
		{"missing details", request.WithdrawalInput{Amount: 200, Method: "upi"}, request.ErrMissingPayoutDetails},
		{"over balance", request.WithdrawalInput{Amount: 5000, Method: "upi", Details: "x"}, ledger.ErrInsufficientFunds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitWithdrawal(ctx, userID, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestApproveWithdrawal(t *testing.T) {
	svc, ledgerSvc, _ := newFixture(t, 1000)
	ctx := context.Background()

	req, err := svc.SubmitWithdrawal(ctx, userID, request.WithdrawalInput{
		Amount: 200, Method: "upi", Details: "user@bank",
	})
	require.NoError(t, err)

	settled, err := svc.ApproveWithdrawal(ctx, req.ID, adminID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, settled.Status)
	require.NotNil(t, settled.ProcessedBy)
	assert.Equal(t, adminID, *settled.ProcessedBy)

	// The full requested amount leaves the withdrawable wallet.
	wallet, err := ledgerSvc.BalanceFor(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, float64(800), wallet.WithdrawableBalance)
}

func TestApproveWithdrawalTwice(t *testing.T) {
	svc, ledgerSvc, _ := newFixture(t, 1000)
	ctx := context.Background()

	req, err := svc.SubmitWithdrawal(ctx, userID, request.WithdrawalInput{
		Amount: 200, Method: "upi", Details: "user@bank",
	})
	require.NoError(t, err)

	_, err = svc.ApproveWithdrawal(ctx, req.ID, adminID)
	require.NoError(t, err)

	_, err = svc.ApproveWithdrawal(ctx, req.ID, adminID)
	assert.ErrorIs(t, err, request.ErrInvalidStateTransition)

	wallet, err := ledgerSvc.BalanceFor(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, float64(800), wallet.WithdrawableBalance)
}

// Funds spent between submission and approval make the approval abort; the
// request stays pending so the admin can reject it instead.
func TestApproveWithdrawalInsufficientFunds(t *testing.T) {
	svc, ledgerSvc, _ := newFixture(t, 1000)
	ctx := context.Background()

	req, err := svc.SubmitWithdrawal(ctx, userID, request.WithdrawalInput{
		Amount: 800, Method: "upi", Details: "user@bank",
	})
	require.NoError(t, err)

	_, err = ledgerSvc.Debit(ctx, ledger.Operation{
		UserID: userID, Wallet: models.WalletWithdrawable, Amount: 900,
		Type: models.EntryWithdrawalDebit, Reference: "withdrawal:other",
	})
	require.NoError(t, err)

	_, err = svc.ApproveWithdrawal(ctx, req.ID, adminID)
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	current, err := svc.WithdrawalsFor(ctx, userID)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, models.RequestPending, current[0].Status)
}

func TestRejectWithdrawalLeavesBalance(t *testing.T) {
	svc, ledgerSvc, _ := newFixture(t, 1000)
	ctx := context.Background()

	req, err := svc.SubmitWithdrawal(ctx, userID, request.WithdrawalInput{
		Amount: 200, Method: "upi", Details: "user@bank",
	})
	require.NoError(t, err)

	settled, err := svc.RejectWithdrawal(ctx, req.ID, adminID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, settled.Status)

	wallet, err := ledgerSvc.BalanceFor(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, float64(1000), wallet.WithdrawableBalance)

	// A settled request cannot be approved afterwards.
	_, err = svc.ApproveWithdrawal(ctx, req.ID, adminID)
	assert.ErrorIs(t, err, request.ErrInvalidStateTransition)
}

func TestRechargeWorkflow(t *testing.T) {
	svc, ledgerSvc, _ := newFixture(t, 0)
	ctx := context.Background()

	_, err := svc.SubmitRecharge(ctx, userID, request.RechargeInput{Amount: 500})
	assert.ErrorIs(t, err, request.ErrMissingUTR)

	req, err := svc.SubmitRecharge(ctx, userID, request.RechargeInput{Amount: 500, UTR: "UTR123456"})
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, req.Status)

	// Submission alone must not move money.
	wallet, err := ledgerSvc.BalanceFor(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, wallet.DepositBalance)

	settled, err := svc.ApproveRecharge(ctx, req.ID, adminID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, settled.Status)

	wallet, err = ledgerSvc.BalanceFor(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, float64(500), wallet.DepositBalance)

	_, err = svc.ApproveRecharge(ctx, req.ID, adminID)
	assert.ErrorIs(t, err, request.ErrInvalidStateTransition)
}

func TestPendingQueues(t *testing.T) {
	svc, _, _ := newFixture(t, 1000)
	ctx := context.Background()

	first, err := svc.SubmitWithdrawal(ctx, userID, request.WithdrawalInput{Amount: 100, Method: "upi", Details: "a"})
	require.NoError(t, err)
	second, err := svc.SubmitWithdrawal(ctx, userID, request.WithdrawalInput{Amount: 150, Method: "upi", Details: "b"})
	require.NoError(t, err)

	_, err = svc.RejectWithdrawal(ctx, first.ID, adminID)
	require.NoError(t, err)

	pending, err := svc.PendingWithdrawals(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
}
