package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/voltra-app/voltra-go/internal/errors"
	"github.com/voltra-app/voltra-go/internal/model"
	"github.com/voltra-app/voltra-go/internal/repository"
	"github.com/voltra-app/voltra-go/internal/util"
)

// AuthService validates signup and login requests against the account
// directory and installs the resulting session.
type AuthService struct {
	directory repository.DirectoryRepository
	session   *SessionService
}

func NewAuthService(directory repository.DirectoryRepository, session *SessionService) *AuthService {
	return &AuthService{
		directory: directory,
		session:   session,
	}
}

// Signup validates every field before anything is written: a rejected request
// never appends an account. On success the new account is appended to the
// directory and logged in.
func (s *AuthService) Signup(ctx context.Context, params model.CreateAccountParams) (*model.User, error) {
	fullName := strings.TrimSpace(params.FullName)
	if fullName == "" {
		return nil, apperrors.ValidationError("Please enter your full name")
	}
	if len(fullName) < 2 {
		return nil, apperrors.ValidationError("Full name must be at least 2 characters")
	}

	email := strings.TrimSpace(params.Email)
	if msg := util.ValidateEmail(email); msg != "" {
		return nil, apperrors.ValidationError(msg)
	}

	existing, err := s.directory.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.ErrCodeAlreadyExists,
			"This email is already registered. Please sign in instead.")
	}

	if msg := util.ValidatePassword(params.Password); msg != "" {
		return nil, apperrors.ValidationError(msg)
	}

	if len(params.Interests) == 0 {
		return nil, apperrors.ValidationError("Please add at least one volunteer interest")
	}

	if !params.AccountType.Valid() {
		return nil, apperrors.InvalidInput("accountType", "must be volunteer or organization")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password").WithCause(err)
	}

	account := model.Account{
		Email:            email,
		PasswordHash:     string(hash),
		FullName:         fullName,
		Interests:        params.Interests,
		AccountType:      params.AccountType,
		OrganizationName: params.OrganizationName,
	}

	if err := s.directory.Append(ctx, account); err != nil {
		return nil, apperrors.Storage(err)
	}

	user := account.User()
	if err := s.session.Login(ctx, user); err != nil {
		return nil, err
	}

	log.Info().
		Str("email", account.Email).
		Str("accountType", string(account.AccountType)).
		Msg("account created")
	return user, nil
}

// Login authenticates against the directory and installs the session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.ValidationError("Please enter your email address")
	}
	if msg := util.ValidateEmail(email); msg != "" {
		return nil, apperrors.ValidationError(msg)
	}

	account, err := s.directory.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if account == nil {
		return nil, apperrors.New(apperrors.ErrCodeNotFound,
			"Couldn't find an account with this email. Try creating a new account.")
	}

	if password == "" {
		return nil, apperrors.ValidationError("Please enter your password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", account.Email).Msg("failed login attempt")
		return nil, apperrors.WrongPassword()
	}

	user := account.User()
	if err := s.session.Login(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("email", account.Email).Msg("sign in successful")
	return user, nil
}
