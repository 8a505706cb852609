package service

import (
	"context"

	"certificates-backend/internal/domains/user"
	"certificates-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles operator authentication and account management.
type UserService struct {
	repo user.Repository
	jwt  *jwt.Manager
}

func NewUserService(repo user.Repository, jwtManager *jwt.Manager) *UserService {
	return &UserService{repo: repo, jwt: jwtManager}
}

// Register creates an operator account. Route-level middleware restricts it
// to admins.
func (s *UserService) Register(ctx context.Context, req user.RegisterRequest) (*user.User, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         user.Role(req.Role),
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("email", u.Email).Str("role", u.Role.String()).Msg("operator account created")
	u.Sanitize()
	return u, nil
}

// Login verifies the credentials and returns a token pair. Credential and
// lookup failures collapse into ErrInvalidCredentials so responses do not
// reveal which emails exist.
func (s *UserService) Login(ctx context.Context, req user.LoginRequest) (*user.TokenPair, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err == user.ErrNotFound {
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, user.ErrInactiveAccount
	}

	if err := s.repo.UpdateLastLogin(ctx, u.ID); err != nil {
		log.Warn().Err(err).Str("user", u.ID.String()).Msg("failed to record login time")
	}

	return s.issueTokens(u)
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *UserService) Refresh(ctx context.Context, req user.RefreshRequest) (*user.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, user.ErrInactiveAccount
	}

	return s.issueTokens(u)
}

func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Sanitize()
	return u, nil
}

func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, req user.ChangePasswordRequest) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return user.ErrInvalidCredentials
	}
	if req.CurrentPassword == req.NewPassword {
		return user.ErrSamePassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, string(hash))
}

func (s *UserService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

func (s *UserService) issueTokens(u *user.User) (*user.TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID.String(), u.Email, u.Role.String())
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwt.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, err
	}

	u.Sanitize()
	return &user.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         u,
	}, nil
}
