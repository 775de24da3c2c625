package user

import (
	"context"
	"net/mail"
	"strings"

	"storefront-be/internal/auth"
	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (string, *User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context, opts ListOptions) ([]*User, int, error)
	UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role string) (*User, error)
	SetActive(ctx context.Context, actorID, targetID uuid.UUID, active bool) (*User, error)
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{repo: repo, jwtSecret: jwtSecret}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (string, *User, error) {
	log := logger.FromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", nil, ErrInvalidInput.With("field", "email")
	}
	if len(input.Password) < 8 {
		return "", nil, ErrInvalidInput.With("field", "password").With("reason", "minimum 8 characters")
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashed,
		FullName:     input.FullName,
		Role:         utils.RoleUser,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return "", nil, err
	}

	token, err := auth.GenerateToken(s.jwtSecret, u.ID, u.Email, u.Role)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID.String()), zap.Error(err))
		return "", nil, err
	}

	log.Info("user registered",
		zap.String("user_id", u.ID.String()),
		zap.String("email", email),
	)
	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		log.Debug("login: email not found")
		return "", nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		log.Debug("login: password mismatch", zap.String("user_id", u.ID.String()))
		return "", nil, ErrInvalidCredentials
	}

	if !u.IsActive {
		return "", nil, ErrAccountInactive
	}

	token, err := auth.GenerateToken(s.jwtSecret, u.ID, u.Email, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]*User, int, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	return s.repo.List(ctx, opts)
}

// UpdateRole changes a user's role. Admins cannot change their own role,
// which keeps at least one path back to an admin account.
func (s *service) UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role string) (*User, error) {
	if role != utils.RoleUser && role != utils.RoleAdmin {
		return nil, ErrInvalidRole.With("role", role)
	}
	if actorID == targetID {
		return nil, ErrSelfAction
	}

	u, err := s.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if u.Role == role {
		return u, nil
	}

	if err := s.repo.UpdateRole(ctx, targetID, role); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("user role updated",
		zap.String("actor_id", actorID.String()),
		zap.String("user_id", targetID.String()),
		zap.String("role", role),
	)

	u.Role = role
	return u, nil
}

func (s *service) SetActive(ctx context.Context, actorID, targetID uuid.UUID, active bool) (*User, error) {
	if actorID == targetID {
		return nil, ErrSelfAction
	}

	u, err := s.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if u.IsActive == active {
		return u, nil
	}

	if err := s.repo.SetActive(ctx, targetID, active); err != nil {
		return nil, err
	}

	u.IsActive = active
	return u, nil
}
