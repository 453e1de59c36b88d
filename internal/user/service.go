package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cercle-be/internal/logger"
	"cercle-be/internal/mailer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	activationTTL = 48 * time.Hour
	resetTTL      = time.Hour
)

type CreateUserInput struct {
	FirstName string
	LastName  string
	MemberID  *string
	Email     *string
	Password  string
	Role      string
}

type Service interface {
	Login(ctx context.Context, email, password string) (string, *User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*User, error)
	Activate(ctx context.Context, tokenStr string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, tokenStr, newPassword string) error
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	ChangeRole(ctx context.Context, id, role string) (*User, error)
	DeleteUser(ctx context.Context, id string) error
}

type service struct {
	repo    Repository
	mail    mailer.Mailer
	baseURL string
}

func NewService(repo Repository, mail mailer.Mailer, baseURL string) Service {
	return &service{repo: repo, mail: mail, baseURL: baseURL}
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		log.Info("login failed, email not found")
		return "", nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		log.Info("login failed, password mismatch", zap.String("user_id", u.ID))
		return "", nil, ErrInvalidCredentials
	}

	if !u.IsActive {
		return "", nil, ErrAccountInactive
	}

	token, err := GenerateJWT(u.ID, string(u.Role), strings.ToLower(email))
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *service) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	log := logger.FromCtx(ctx)

	role := RoleMember
	if input.Role != "" {
		parsed, ok := ParseRole(input.Role)
		if !ok {
			return nil, ErrInvalidRole
		}
		role = parsed
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	var email *string
	if input.Email != nil && *input.Email != "" {
		lowered := strings.ToLower(strings.TrimSpace(*input.Email))
		email = &lowered
	}

	u := &User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		MemberID:     input.MemberID,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		// Accounts without an email cannot receive an activation link,
		// so they start active.
		IsActive: email == nil,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	if email != nil {
		if err := s.sendActivation(ctx, u); err != nil {
			// User exists; the mail can be re-sent. Do not fail creation.
			log.Warn("failed to send activation mail",
				zap.String("user_id", u.ID), zap.Error(err))
		}
	}

	log.Info("user created",
		zap.String("user_id", u.ID),
		zap.String("role", string(u.Role)),
	)
	return u, nil
}

func (s *service) sendActivation(ctx context.Context, u *User) error {
	jti := uuid.New().String()
	expiry := time.Now().Add(activationTTL)

	if err := s.repo.SetActivationToken(ctx, u.ID, jti, expiry); err != nil {
		return err
	}

	token, err := GenerateActionToken(u.ID, PurposeActivate, jti, activationTTL)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/activate?token=%s", s.baseURL, token)
	return s.mail.SendActivation(*u.Email, u.FirstName, link)
}

func (s *service) Activate(ctx context.Context, tokenStr string) error {
	claims, err := ParseActionToken(tokenStr, PurposeActivate)
	if err != nil {
		return ErrInvalidToken
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return ErrInvalidToken
	}

	// The stored jti must match, so old links die once a new one is issued.
	if u.ActivationToken == nil || *u.ActivationToken != claims.ID {
		return ErrInvalidToken
	}
	if u.ActivationTokenExpiry != nil && time.Now().After(*u.ActivationTokenExpiry) {
		return ErrInvalidToken
	}

	return s.repo.Activate(ctx, u.ID)
}

func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// Do not reveal whether the address exists.
		log.Info("password reset requested for unknown email")
		return nil
	}
	if u.Email == nil {
		return nil
	}

	jti := uuid.New().String()
	expiry := time.Now().Add(resetTTL)
	if err := s.repo.SetResetToken(ctx, u.ID, jti, expiry); err != nil {
		return err
	}

	token, err := GenerateActionToken(u.ID, PurposePasswordReset, jti, resetTTL)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	if err := s.mail.SendPasswordReset(*u.Email, u.FirstName, link); err != nil {
		log.Error("failed to send reset mail", zap.String("user_id", u.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	claims, err := ParseActionToken(tokenStr, PurposePasswordReset)
	if err != nil {
		return ErrInvalidToken
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return ErrInvalidToken
	}

	if u.ResetToken == nil || *u.ResetToken != claims.ID {
		return ErrInvalidToken
	}
	if u.ResetTokenExpiry != nil && time.Now().After(*u.ResetTokenExpiry) {
		return ErrInvalidToken
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, u.ID, hashed)
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) ChangeRole(ctx context.Context, id, role string) (*User, error) {
	parsed, ok := ParseRole(role)
	if !ok {
		return nil, ErrInvalidRole
	}

	if err := s.repo.UpdateRole(ctx, id, parsed); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) DeleteUser(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx)

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete user", zap.String("user_id", id), zap.Error(err))
		return err
	}

	log.Info("user deleted", zap.String("user_id", id))
	return nil
}
