package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hackmatch/internal/domain/user"
	"hackmatch/internal/pkg/jwt"
	"hackmatch/internal/pkg/telegram"
	"hackmatch/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrTelegramAuth        = errors.New("telegram auth rejected")
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

type LoginInput struct {
	Email    string
	Password string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, TokenPair, error)
	Login(ctx context.Context, in LoginInput) (user.User, TokenPair, error)
	TelegramLogin(ctx context.Context, data telegram.LoginData) (user.User, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

type Auth struct {
	users    repository.UserRepository
	jwt      jwt.Service
	botToken string
	now      func() time.Time
}

func NewAuthUsecase(users repository.UserRepository, jwtSvc jwt.Service, telegramBotToken string) *Auth {
	return &Auth{users: users, jwt: jwtSvc, botToken: telegramBotToken, now: time.Now}
}

func (u *Auth) Register(ctx context.Context, in RegisterInput) (user.User, TokenPair, error) {
	email := normalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)
	if email == "" || username == "" || len(strings.TrimSpace(in.Password)) < 8 {
		return user.User{}, TokenPair{}, ErrInvalidInput
	}

	if _, err := u.users.GetByEmail(ctx, email); err == nil {
		return user.User{}, TokenPair{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return user.User{}, TokenPair{}, ErrInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}

	usr := user.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		ReadyToTeam:  true,
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}

	pair, err := u.issueTokens(usr)
	if err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}
	return sanitize(usr), pair, nil
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (user.User, TokenPair, error) {
	usr, err := u.users.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return user.User{}, TokenPair{}, ErrInvalidCredentials
		}
		return user.User{}, TokenPair{}, ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)) != nil {
		return user.User{}, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := u.issueTokens(usr)
	if err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}
	return sanitize(usr), pair, nil
}

// TelegramLogin verifies the login-widget signature and signs the Telegram
// account in, creating a profile on first contact.
func (u *Auth) TelegramLogin(ctx context.Context, data telegram.LoginData) (user.User, TokenPair, error) {
	if u.botToken == "" {
		return user.User{}, TokenPair{}, ErrTelegramAuth
	}
	if err := telegram.Verify(data, u.botToken, u.now()); err != nil {
		return user.User{}, TokenPair{}, ErrTelegramAuth
	}

	usr, err := u.users.GetByTgID(ctx, data.ID)
	if errors.Is(err, repository.ErrUserNotFound) {
		tgID := data.ID
		usr = user.User{
			ID:          uuid.New(),
			TgID:        &tgID,
			Username:    firstNonEmpty(data.Username, fmt.Sprintf("tg_%d", data.ID)),
			FullName:    strings.TrimSpace(data.FirstName + " " + data.LastName),
			ReadyToTeam: true,
		}
		if err := u.users.Create(ctx, usr); err != nil {
			return user.User{}, TokenPair{}, ErrInternal
		}
	} else if err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}

	pair, err := u.issueTokens(usr)
	if err != nil {
		return user.User{}, TokenPair{}, ErrInternal
	}
	return sanitize(usr), pair, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	claims, err := u.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenPair{}, ErrRefreshTokenExpired
		}
		return TokenPair{}, ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, ErrInternal
	}

	return u.issueTokens(usr)
}

func (u *Auth) issueTokens(usr user.User) (TokenPair, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Username)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func sanitize(usr user.User) user.User {
	usr.PasswordHash = ""
	return usr
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return ""
	}
	return email
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
