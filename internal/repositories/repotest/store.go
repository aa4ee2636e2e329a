// Package repotest provides in-memory repository implementations for service
// tests. Transactions are simulated with snapshot/restore: a returned error
// rolls the whole store back, mirroring the database behavior the services
// rely on.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"investplus/internal/models"
	"investplus/internal/repositories"
)

type Store struct {
	mu sync.Mutex

	users       map[uint]*models.User
	wallets     map[uint]*models.Wallet // keyed by user id
	entries     []models.LedgerEntry
	refs        map[string]bool
	plans       map[uint]*models.ProductPlan
	investments map[uint]*models.Investment
	withdrawals map[uint]*models.WithdrawalRequest
	recharges   map[uint]*models.RechargeRequest

	nextID uint
}

func NewStore() *Store {
	return &Store{
		users:       make(map[uint]*models.User),
		wallets:     make(map[uint]*models.Wallet),
		refs:        make(map[string]bool),
		plans:       make(map[uint]*models.ProductPlan),
		investments: make(map[uint]*models.Investment),
		withdrawals: make(map[uint]*models.WithdrawalRequest),
		recharges:   make(map[uint]*models.RechargeRequest),
	}
}

// Accessors returning the repository interface views.

func (s *Store) Ledger() repositories.LedgerRepository          { return &ledgerView{s} }
func (s *Store) Investments() repositories.InvestmentRepository { return &investmentView{s} }
func (s *Store) Requests() repositories.RequestRepository       { return &requestView{s} }
func (s *Store) Users() repositories.UserRepository             { return &userView{s} }
func (s *Store) Plans() repositories.PlanRepository             { return &planView{s} }

func (s *Store) nextSeq() uint {
	s.nextID++
	return s.nextID
}

type snapshot struct {
	users       map[uint]*models.User
	wallets     map[uint]*models.Wallet
	entries     []models.LedgerEntry
	refs        map[string]bool
	plans       map[uint]*models.ProductPlan
	investments map[uint]*models.Investment
	withdrawals map[uint]*models.WithdrawalRequest
	recharges   map[uint]*models.RechargeRequest
	nextID      uint
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		users:       make(map[uint]*models.User, len(s.users)),
		wallets:     make(map[uint]*models.Wallet, len(s.wallets)),
		entries:     append([]models.LedgerEntry(nil), s.entries...),
		refs:        make(map[string]bool, len(s.refs)),
		plans:       make(map[uint]*models.ProductPlan, len(s.plans)),
		investments: make(map[uint]*models.Investment, len(s.investments)),
		withdrawals: make(map[uint]*models.WithdrawalRequest, len(s.withdrawals)),
		recharges:   make(map[uint]*models.RechargeRequest, len(s.recharges)),
		nextID:      s.nextID,
	}
	for id, u := range s.users {
		c := *u
		snap.users[id] = &c
	}
	for id, w := range s.wallets {
		c := *w
		snap.wallets[id] = &c
	}
	for ref := range s.refs {
		snap.refs[ref] = true
	}
	for id, p := range s.plans {
		c := *p
		snap.plans[id] = &c
	}
	for id, inv := range s.investments {
		c := *inv
		snap.investments[id] = &c
	}
	for id, w := range s.withdrawals {
		c := *w
		snap.withdrawals[id] = &c
	}
	for id, r := range s.recharges {
		c := *r
		snap.recharges[id] = &c
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.wallets = snap.wallets
	s.entries = snap.entries
	s.refs = snap.refs
	s.plans = snap.plans
	s.investments = snap.investments
	s.withdrawals = snap.withdrawals
	s.recharges = snap.recharges
	s.nextID = snap.nextID
}

// transact runs fn against the live store and rolls everything back when it
// fails.
func (s *Store) transact(fn func() error) error {
	snap := s.snapshot()
	if err := fn(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Ledger view

type ledgerView struct{ s *Store }

func (v *ledgerView) CreateWallet(_ context.Context, w *models.Wallet) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if w.ID == 0 {
		w.ID = v.s.nextSeq()
	}
	c := *w
	v.s.wallets[w.UserID] = &c
	return nil
}

func (v *ledgerView) WalletFor(_ context.Context, userID uint) (*models.Wallet, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	w, ok := v.s.wallets[userID]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	c := *w
	return &c, nil
}

func (v *ledgerView) WalletForUpdate(ctx context.Context, userID uint) (*models.Wallet, error) {
	return v.WalletFor(ctx, userID)
}

func (v *ledgerView) SaveWallet(_ context.Context, w *models.Wallet) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	c := *w
	v.s.wallets[w.UserID] = &c
	return nil
}

func (v *ledgerView) AppendEntry(_ context.Context, e *models.LedgerEntry) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if v.s.refs[e.Reference] {
		return repositories.ErrDuplicateReference
	}
	e.ID = v.s.nextSeq()
	e.CreatedAt = time.Now()
	v.s.refs[e.Reference] = true
	v.s.entries = append(v.s.entries, *e)
	return nil
}

func (v *ledgerView) EntriesFor(_ context.Context, userID uint, limit, offset int) ([]models.LedgerEntry, int64, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var all []models.LedgerEntry
	for _, e := range v.s.entries {
		if e.UserID == userID {
			all = append(all, e)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (v *ledgerView) SumEntries(_ context.Context, userID uint, wallet string) (float64, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var sum float64
	for _, e := range v.s.entries {
		if e.UserID == userID && e.Wallet == wallet {
			sum += e.Amount
		}
	}
	return sum, nil
}

func (v *ledgerView) SumByType(_ context.Context, userID uint, entryType string) (float64, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var sum float64
	for _, e := range v.s.entries {
		if e.UserID == userID && e.Type == entryType {
			sum += e.Amount
		}
	}
	return sum, nil
}

func (v *ledgerView) ExecuteInTransaction(_ context.Context, fn func(repositories.LedgerRepository) error) error {
	return v.s.transact(func() error { return fn(v) })
}

// Investment view

type investmentView struct{ s *Store }

func (v *investmentView) Create(_ context.Context, inv *models.Investment) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	inv.ID = v.s.nextSeq()
	inv.CreatedAt = time.Now()
	c := *inv
	v.s.investments[inv.ID] = &c
	return nil
}

func (v *investmentView) GetByID(_ context.Context, id uint) (*models.Investment, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	inv, ok := v.s.investments[id]
	if !ok {
		return nil, repositories.ErrInvestmentNotFound
	}
	c := *inv
	return &c, nil
}

func (v *investmentView) ListByUser(_ context.Context, userID uint) ([]models.Investment, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []models.Investment
	for _, inv := range v.s.investments {
		if inv.UserID == userID {
			out = append(out, *inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (v *investmentView) ApplyClaim(_ context.Context, invID uint, day time.Time) (bool, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	inv, ok := v.s.investments[invID]
	if !ok {
		return false, repositories.ErrInvestmentNotFound
	}
	if inv.DaysLeft <= 0 {
		return false, nil
	}
	if inv.LastClaimDate != nil && !inv.LastClaimDate.Before(day) {
		return false, nil
	}
	inv.DaysLeft--
	d := day
	inv.LastClaimDate = &d
	return true, nil
}

func (v *investmentView) MarkReferralPaid(_ context.Context, invID uint) (bool, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	inv, ok := v.s.investments[invID]
	if !ok {
		return false, repositories.ErrInvestmentNotFound
	}
	if inv.ReferralPaid {
		return false, nil
	}
	inv.ReferralPaid = true
	return true, nil
}

func (v *investmentView) MarkCompleted(_ context.Context, invID uint) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	inv, ok := v.s.investments[invID]
	if !ok {
		return repositories.ErrInvestmentNotFound
	}
	if inv.DaysLeft == 0 {
		inv.Status = models.InvestmentCompleted
	}
	return nil
}

func (v *investmentView) ExecuteInTransaction(_ context.Context, fn func(repositories.InvestmentRepository, repositories.LedgerRepository) error) error {
	return v.s.transact(func() error { return fn(v, &ledgerView{v.s}) })
}

// Request view

type requestView struct{ s *Store }

func (v *requestView) CreateWithdrawal(_ context.Context, req *models.WithdrawalRequest) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	req.ID = v.s.nextSeq()
	req.CreatedAt = time.Now()
	c := *req
	v.s.withdrawals[req.ID] = &c
	return nil
}

func (v *requestView) CreateRecharge(_ context.Context, req *models.RechargeRequest) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	req.ID = v.s.nextSeq()
	req.CreatedAt = time.Now()
	c := *req
	v.s.recharges[req.ID] = &c
	return nil
}

func (v *requestView) GetWithdrawal(_ context.Context, id uint) (*models.WithdrawalRequest, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	req, ok := v.s.withdrawals[id]
	if !ok {
		return nil, repositories.ErrRequestNotFound
	}
	c := *req
	return &c, nil
}

func (v *requestView) GetRecharge(_ context.Context, id uint) (*models.RechargeRequest, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	req, ok := v.s.recharges[id]
	if !ok {
		return nil, repositories.ErrRequestNotFound
	}
	c := *req
	return &c, nil
}

func (v *requestView) WithdrawalsByUser(_ context.Context, userID uint) ([]models.WithdrawalRequest, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []models.WithdrawalRequest
	for _, req := range v.s.withdrawals {
		if req.UserID == userID {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (v *requestView) RechargesByUser(_ context.Context, userID uint) ([]models.RechargeRequest, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []models.RechargeRequest
	for _, req := range v.s.recharges {
		if req.UserID == userID {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (v *requestView) PendingWithdrawals(_ context.Context) ([]models.WithdrawalRequest, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []models.WithdrawalRequest
	for _, req := range v.s.withdrawals {
		if req.Status == models.RequestPending {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (v *requestView) PendingRecharges(_ context.Context) ([]models.RechargeRequest, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []models.RechargeRequest
	for _, req := range v.s.recharges {
		if req.Status == models.RequestPending {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (v *requestView) SettleWithdrawal(_ context.Context, id uint, status string, adminID uint, at time.Time) (bool, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	req, ok := v.s.withdrawals[id]
	if !ok {
		return false, repositories.ErrRequestNotFound
	}
	if req.Status != models.RequestPending {
		return false, nil
	}
	req.Status = status
	req.ProcessedAt = &at
	req.ProcessedBy = &adminID
	return true, nil
}

func (v *requestView) SettleRecharge(_ context.Context, id uint, status string, adminID uint, at time.Time) (bool, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	req, ok := v.s.recharges[id]
	if !ok {
		return false, repositories.ErrRequestNotFound
	}
	if req.Status != models.RequestPending {
		return false, nil
	}
	req.Status = status
	req.ProcessedAt = &at
	req.ProcessedBy = &adminID
	return true, nil
}

func (v *requestView) ExecuteInTransaction(_ context.Context, fn func(repositories.RequestRepository, repositories.LedgerRepository) error) error {
	return v.s.transact(func() error { return fn(v, &ledgerView{v.s}) })
}

// User view

type userView struct{ s *Store }

func (v *userView) Create(_ context.Context, u *models.User) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, existing := range v.s.users {
		if existing.Mobile == u.Mobile {
			return repositories.ErrMobileTaken
		}
	}
	u.ID = v.s.nextSeq()
	u.CreatedAt = time.Now()
	if u.TokenVersion == 0 {
		u.TokenVersion = 1
	}
	c := *u
	v.s.users[u.ID] = &c
	return nil
}

func (v *userView) GetByID(_ context.Context, id uint) (*models.User, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	u, ok := v.s.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (v *userView) GetByMobile(_ context.Context, mobile string) (*models.User, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, u := range v.s.users {
		if strings.EqualFold(u.Mobile, mobile) {
			c := *u
			return &c, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (v *userView) Update(_ context.Context, u *models.User) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.users[u.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	c := *u
	v.s.users[u.ID] = &c
	return nil
}

func (v *userView) IncrementTokenVersion(_ context.Context, userID uint) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	u, ok := v.s.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.TokenVersion++
	return nil
}

func (v *userView) UpdatePassword(_ context.Context, userID uint, hashedPassword string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	u, ok := v.s.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Password = hashedPassword
	return nil
}

func (v *userView) List(_ context.Context, offset, limit int) ([]models.User, int64, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var all []models.User
	for _, u := range v.s.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

// Plan view

type planView struct{ s *Store }

func (v *planView) Create(_ context.Context, plan *models.ProductPlan) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	plan.ID = v.s.nextSeq()
	c := *plan
	v.s.plans[plan.ID] = &c
	return nil
}

func (v *planView) GetByID(_ context.Context, id uint) (*models.ProductPlan, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	plan, ok := v.s.plans[id]
	if !ok {
		return nil, repositories.ErrPlanNotFound
	}
	c := *plan
	return &c, nil
}

func (v *planView) ListActive(_ context.Context) ([]models.ProductPlan, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []models.ProductPlan
	for _, plan := range v.s.plans {
		if plan.Status == "active" {
			out = append(out, *plan)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (v *planView) List(_ context.Context) ([]models.ProductPlan, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []models.ProductPlan
	for _, plan := range v.s.plans {
		out = append(out, *plan)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (v *planView) Update(_ context.Context, plan *models.ProductPlan) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.plans[plan.ID]; !ok {
		return repositories.ErrPlanNotFound
	}
	c := *plan
	v.s.plans[plan.ID] = &c
	return nil
}
