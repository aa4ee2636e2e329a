// Package migrations provides a versioned, idempotent schema migration
// runner. Every step is recorded in schema_migrations and checks the current
// database state before applying, so re-running the binary is always safe.
package migrations

import (
	"fmt"
	"log"
	"time"

	"investplus/internal/models"

	"gorm.io/gorm"
)

// SchemaMigration is the bookkeeping row for one applied step.
type SchemaMigration struct {
	ID        string `gorm:"primarykey;size:64"`
	AppliedAt time.Time
}

// Migration is a single schema step. Run must be re-runnable: it inspects
// the migrator state and only applies what is missing.
type Migration struct {
	ID  string
	Run func(db *gorm.DB) error
}

// All lists every migration in order. New steps are appended, never
// reordered or edited once released.
var All = []Migration{
	{ID: "001_core_tables", Run: coreTables},
	{ID: "002_wallet_split", Run: walletSplit},
	{ID: "003_investment_days_left", Run: investmentDaysLeft},
	{ID: "004_referral_guard", Run: referralGuard},
	{ID: "005_seed_plans", Run: seedPlans},
}

// Apply runs all unapplied migrations in order.
func Apply(db *gorm.DB) error {
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("failed to prepare schema_migrations: %w", err)
	}

	for _, m := range All {
		var applied SchemaMigration
		err := db.Where("id = ?", m.ID).First(&applied).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to read schema_migrations: %w", err)
		}

		log.Printf("applying migration %s", m.ID)
		if err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Run(tx); err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{ID: m.ID, AppliedAt: time.Now().UTC()}).Error
		}); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.ID, err)
		}
	}
	return nil
}

func coreTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.ProductPlan{},
		&models.Investment{},
		&models.LedgerEntry{},
		&models.WithdrawalRequest{},
		&models.RechargeRequest{},
	)
}

// walletSplit backfills the deposit/withdrawable split for databases that
// predate it and still carry a single users.balance column.
func walletSplit(db *gorm.DB) error {
	if !db.Migrator().HasColumn(&models.User{}, "balance") {
		return nil
	}
	if err := db.Exec(`
		UPDATE wallets SET deposit_balance = users.balance
		FROM users
		WHERE wallets.user_id = users.id AND wallets.deposit_balance = 0
	`).Error; err != nil {
		return err
	}
	return db.Migrator().DropColumn(&models.User{}, "balance")
}

// investmentDaysLeft backfills days_left from the snapshot duration for
// investments created before the claim counter existed. Only NULL counters
// are touched: a zero means the investment already paid out every day, and
// resetting it would resume payouts.
func investmentDaysLeft(db *gorm.DB) error {
	if !db.Migrator().HasColumn(&models.Investment{}, "days_left") {
		if err := db.Migrator().AddColumn(&models.Investment{}, "DaysLeft"); err != nil {
			return err
		}
	}
	return db.Exec(`
		UPDATE investments SET days_left = duration_days
		WHERE days_left IS NULL
	`).Error
}

// referralGuard adds the referral_paid flag and makes sure the ledger
// reference index is unique, the two guards that keep commission payout
// at-most-once per investment.
func referralGuard(db *gorm.DB) error {
	if !db.Migrator().HasColumn(&models.Investment{}, "referral_paid") {
		if err := db.Migrator().AddColumn(&models.Investment{}, "ReferralPaid"); err != nil {
			return err
		}
	}
	if !db.Migrator().HasIndex(&models.LedgerEntry{}, "Reference") {
		return db.Migrator().CreateIndex(&models.LedgerEntry{}, "Reference")
	}
	return nil
}

// seedPlans inserts the default catalog on an empty plans table only.
func seedPlans(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.ProductPlan{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plans := []models.ProductPlan{
		{Name: "Starter Plan", Category: "beginner", Price: 490, DailyIncome: 80, DurationDays: 9},
		{Name: "Smart Saver", Category: "beginner", Price: 750, DailyIncome: 85, DurationDays: 14},
		{Name: "Bronze Booster", Category: "intermediate", Price: 1000, DailyIncome: 100, DurationDays: 15},
		{Name: "Silver Growth", Category: "intermediate", Price: 1500, DailyIncome: 115, DurationDays: 20},
		{Name: "Gold Income", Category: "advanced", Price: 2000, DailyIncome: 135, DurationDays: 23},
		{Name: "Platinum Plan", Category: "advanced", Price: 2500, DailyIncome: 160, DurationDays: 24},
		{Name: "Elite Earning", Category: "premium", Price: 3000, DailyIncome: 180, DurationDays: 25},
		{Name: "VIP Profiter", Category: "premium", Price: 3500, DailyIncome: 200, DurationDays: 27},
		{Name: "Executive Growth", Category: "premium", Price: 4000, DailyIncome: 220, DurationDays: 28},
		{Name: "Royal Investor", Category: "premium", Price: 5000, DailyIncome: 250, DurationDays: 30},
	}
	return db.Create(&plans).Error
}
