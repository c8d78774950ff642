package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"schoolhub/api/internal/models"
	"schoolhub/api/internal/repository"
	"schoolhub/api/internal/security"
)

var (
	ErrInvalidCredentials      = errors.New("invalid username or password")
	ErrCurrentPasswordMismatch = errors.New("current password does not match")
	ErrPasswordReused          = errors.New("new password equals current password")
)

// AccountStore is the slice of the account repository the auth flows need.
type AccountStore interface {
	FindByUsername(ctx context.Context, username string) (models.Account, error)
	GetByID(ctx context.Context, id int64) (models.Account, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, account models.Account) (int64, error)
	UpdatePassword(ctx context.Context, id int64, hash []byte) error
}

type AuthService struct {
	accounts AccountStore
	log      zerolog.Logger
}

func NewAuthService(accounts AccountStore, log zerolog.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		log:      log,
	}
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	Account models.Account
	Message string
}

// Login checks the credentials. Unknown usernames and wrong passwords both
// return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	account, err := s.accounts.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("find account: %w", err)
	}

	ok, err := security.VerifyPassword(input.Password, account.PasswordHash)
	if err != nil {
		return LoginResult{}, err
	}
	if !ok {
		return LoginResult{}, ErrInvalidCredentials
	}

	return LoginResult{
		Account: account,
		Message: LoginMessage(account),
	}, nil
}

type RegisterInput struct {
	Name     string
	Surname  string
	Username string
	Email    string
	Password string
}

// Register creates an account. The pre-checks give the common case a precise
// error; the table's unique constraints still decide concurrent races, and
// Create reports those as the same conflict errors.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.Account, error) {
	taken, err := s.accounts.UsernameExists(ctx, input.Username)
	if err != nil {
		return models.Account{}, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return models.Account{}, repository.ErrUsernameTaken
	}

	taken, err = s.accounts.EmailExists(ctx, input.Email)
	if err != nil {
		return models.Account{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return models.Account{}, repository.ErrEmailTaken
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.Account{}, err
	}

	account := models.Account{
		Name:         input.Name,
		Surname:      input.Surname,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		IsActive:     true,
	}

	id, err := s.accounts.Create(ctx, account)
	if err != nil {
		return models.Account{}, err
	}
	account.ID = id

	s.log.Info().Int64("account_id", id).Str("username", account.Username).Msg("account registered")
	return account, nil
}

type UpdatePasswordInput struct {
	AccountID       int64
	CurrentPassword string
	NewPassword     string
}

func (s *AuthService) UpdatePassword(ctx context.Context, input UpdatePasswordInput) error {
	account, err := s.accounts.GetByID(ctx, input.AccountID)
	if err != nil {
		return err
	}

	ok, err := security.VerifyPassword(input.CurrentPassword, account.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCurrentPasswordMismatch
	}
	if input.NewPassword == input.CurrentPassword {
		return ErrPasswordReused
	}

	hash, err := security.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	if err := s.accounts.UpdatePassword(ctx, account.ID, hash); err != nil {
		return err
	}

	s.log.Info().Int64("account_id", account.ID).Msg("password updated")
	return nil
}
