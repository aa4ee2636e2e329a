// Package auth covers registration, login and the token lifecycle. Tokens
// carry a version; bumping the user's version revokes every outstanding
// token at once.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"investplus/internal/models"
	"investplus/internal/repositories"
	"investplus/internal/services/ledger"
	"investplus/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// Config holds signup policy.
type Config struct {
	// SignupBonus is credited to the deposit wallet on registration.
	// Zero disables the bonus.
	SignupBonus float64
}

const DefaultSignupBonus = 50.0

// RegisterInput is a signup request. ReferralCode is the referrer's numeric
// user id as handed out in referral links; empty means no referrer.
type RegisterInput struct {
	Name         string `json:"name"`
	Mobile       string `json:"mobile"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	ReferralCode string `json:"referral_code"`
}

type Service interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, mobile, password string) (*models.User, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, userID uint) error
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
}

type service struct {
	users      repositories.UserRepository
	wallets    repositories.LedgerRepository
	ledger     ledger.Service
	config     Config
	generate   func(*models.UserClaims) (string, string, error)
	parseToken func(string) (*models.UserClaims, error)
}

// TokenFuncs lets main wire the JWT helpers in; tests substitute fakes.
type TokenFuncs struct {
	Generate func(*models.UserClaims) (string, string, error)
	Parse    func(string) (*models.UserClaims, error)
}

func NewService(users repositories.UserRepository, wallets repositories.LedgerRepository, ledgerSvc ledger.Service, config Config, tokens TokenFuncs) Service {
	if users == nil {
		panic("user repo is required")
	}
	if wallets == nil {
		panic("ledger repo is required")
	}
	if ledgerSvc == nil {
		panic("ledger service is required")
	}
	if tokens.Generate == nil || tokens.Parse == nil {
		panic("token funcs are required")
	}
	return &service{
		users:      users,
		wallets:    wallets,
		ledger:     ledgerSvc,
		config:     config,
		generate:   tokens.Generate,
		parseToken: tokens.Parse,
	}
}

// Register creates the account, its wallet and, when configured, the signup
// bonus ledger entry. The bonus reference "signup:<userID>" makes a retried
// registration unable to credit twice.
func (s *service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	v := validation.New()
	v.Registration(in.Name, in.Mobile, in.Email, in.Password)
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrWeakPassword, v.Errors)
	}

	var referredBy *uint
	if in.ReferralCode != "" {
		referrer, err := s.resolveReferrer(ctx, in.ReferralCode)
		if err != nil {
			return nil, err
		}
		referredBy = &referrer.ID
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:       in.Name,
		Mobile:     in.Mobile,
		Email:      in.Email,
		Password:   string(hashed),
		Role:       "user",
		Status:     "active",
		ReferredBy: referredBy,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrMobileTaken) {
			return nil, ErrMobileTaken
		}
		return nil, err
	}

	if err := s.wallets.CreateWallet(ctx, &models.Wallet{UserID: user.ID}); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	if s.config.SignupBonus > 0 {
		// The bonus goes to the deposit wallet: spendable on plans, not
		// directly withdrawable.
		_, err := s.ledger.Credit(ctx, ledger.Operation{
			UserID:    user.ID,
			Wallet:    models.WalletDeposit,
			Amount:    s.config.SignupBonus,
			Type:      models.EntrySignupCredit,
			Reference: fmt.Sprintf("signup:%d", user.ID),
			RefID:     user.ID,
		})
		if err != nil && !errors.Is(err, ledger.ErrDuplicateReference) {
			log.Printf("failed to credit signup bonus for user %d: %v", user.ID, err)
		}
	}

	return user, nil
}

func (s *service) Login(ctx context.Context, mobile, password string) (*models.User, string, string, error) {
	user, err := s.users.GetByMobile(ctx, mobile)
	if err != nil {
		log.Printf("login failed: no user for mobile %s", mobile)
		return nil, "", "", ErrInvalidCredentials
	}
	if user.Status != "active" {
		return nil, "", "", ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("login failed: wrong password for user %d", user.ID)
		user.FailedLoginAttempts++
		if err := s.users.Update(ctx, user); err != nil {
			log.Printf("failed to record login attempt for user %d: %v", user.ID, err)
		}
		return nil, "", "", ErrInvalidCredentials
	}

	user.FailedLoginAttempts = 0
	user.LastLoginAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		log.Printf("failed to record login for user %d: %v", user.ID, err)
	}

	accessToken, refreshToken, err := s.generate(&models.UserClaims{
		UserID:       user.ID,
		Mobile:       user.Mobile,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		log.Printf("error generating tokens: %v", err)
		return nil, "", "", errors.New("error generating tokens")
	}
	return user, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return "", "", ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", ErrInvalidRefreshToken
	}
	if user.TokenVersion != claims.TokenVersion {
		return "", "", ErrTokenVersionMismatch
	}

	return s.generate(&models.UserClaims{
		UserID:       user.ID,
		Mobile:       user.Mobile,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
	})
}

func (s *service) Logout(ctx context.Context, userID uint) error {
	return s.users.IncrementTokenVersion(ctx, userID)
}

func (s *service) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	v := validation.New()
	v.Password("password", newPassword)
	if !v.Valid() {
		return fmt.Errorf("%w: %v", ErrWeakPassword, v.Errors)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return err
	}
	// Revoke outstanding tokens issued against the old password.
	return s.users.IncrementTokenVersion(ctx, userID)
}

func (s *service) resolveReferrer(ctx context.Context, code string) (*models.User, error) {
	id, err := strconv.ParseUint(code, 10, 64)
	if err != nil || id == 0 {
		return nil, ErrInvalidReferralCode
	}
	referrer, err := s.users.GetByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidReferralCode
		}
		return nil, err
	}
	return referrer, nil
}
