package service

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/branchbank/wallet-system/internal/core/domain"
	"github.com/branchbank/wallet-system/internal/core/ports"
)

// AuthService implements registration, login with lockout, password changes
// and account deletion on top of the account directory.
type AuthService struct {
	mu        sync.Mutex
	accounts  *domain.Directory
	store     ports.AccountStore
	hasher    ports.PasswordHasher
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	accounts *domain.Directory,
	store ports.AccountStore,
	hasher ports.PasswordHasher,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		accounts:  accounts,
		store:     store,
		hasher:    hasher,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Register opens a new account with a zero balance. The password is hashed
// before the account ever reaches the directory or the store.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	account := domain.NewAccount(input.Username, input.Email, hash)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.accounts.Insert(account); err != nil {
		return nil, err
	}
	if err := s.store.AppendAccount(ctx, accountRecord(account)); err != nil {
		s.log.Error().Err(err).Str("username", account.Username).Msg("persist new account")
	}

	s.log.Info().Str("username", account.Username).Msg("account registered")
	return account, nil
}

// Login checks the password against the stored digest. A locked account
// fails before any hash comparison. Three consecutive failures lock the
// account; a success resets the counter and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.Authenticated, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.accounts.Find(username)
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}

	if err := s.authenticate(ctx, account, password); err != nil {
		return nil, err
	}

	token, err := s.generateToken(account)
	if err != nil {
		return nil, err
	}
	return &ports.Authenticated{Username: account.Username, Token: token}, nil
}

// ChangePassword re-authenticates with the old password, applying the same
// lockout rules as Login, then stores a fresh digest of the new one.
func (s *AuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.accounts.Find(username)
	if account == nil {
		return domain.ErrAccountNotFound
	}
	if err := s.authenticate(ctx, account, oldPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	s.persist(ctx, account)

	s.log.Info().Str("username", username).Msg("password changed")
	return nil
}

// DeleteAccount removes the account from the directory, releasing its
// ledger, and deletes its stored records.
func (s *AuthService) DeleteAccount(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts.Remove(username); !ok {
		return domain.ErrAccountNotFound
	}
	if err := s.store.DeleteAccount(ctx, username); err != nil {
		s.log.Error().Err(err).Str("username", username).Msg("delete stored account")
	}

	s.log.Info().Str("username", username).Msg("account deleted")
	return nil
}

// authenticate applies the lockout state machine. Callers hold s.mu.
func (s *AuthService) authenticate(ctx context.Context, account *domain.Account, password string) error {
	if account.Locked {
		return domain.ErrAccountLocked
	}

	if !s.hasher.Compare(account.PasswordHash, password) {
		remaining := account.RecordFailedLogin()
		s.persist(ctx, account)
		if account.Locked {
			s.log.Warn().Str("username", account.Username).Msg("account locked after repeated failures")
			return domain.ErrAccountLocked
		}
		return &domain.InvalidCredentialsError{AttemptsRemaining: remaining}
	}

	account.ResetFailedLogins()
	s.persist(ctx, account)
	return nil
}

func (s *AuthService) persist(ctx context.Context, account *domain.Account) {
	if err := s.store.UpdateAccount(ctx, accountRecord(account)); err != nil {
		s.log.Error().Err(err).Str("username", account.Username).Msg("persist account update")
	}
}

func (s *AuthService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"username": account.Username,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
