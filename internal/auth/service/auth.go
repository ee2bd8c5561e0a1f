package service

import (
	"context"

	accounts "tutorbook/internal/accounts/service"
	"tutorbook/internal/auth/password"
	"tutorbook/internal/auth/token"
	"tutorbook/internal/events"
	"tutorbook/pkg/config"
	apperrors "tutorbook/pkg/errors"
	"tutorbook/pkg/metrics"
	"tutorbook/pkg/model"
	"tutorbook/pkg/sanitizer"
	"tutorbook/pkg/validation"
)

const invalidCredentials = "Invalid email or password"

type AuthService interface {
	Signup(ctx context.Context, role model.Role, req *model.SignupRequest) (*model.AuthResult, error)
	Login(ctx context.Context, role model.Role, req *model.LoginRequest) (*model.AuthResult, error)
	AdminLogin(ctx context.Context, req *model.LoginRequest) (*model.AuthResult, error)
	Verify(raw string) (*model.Principal, error)
}

type authService struct {
	accounts  accounts.AccountService
	tokens    *token.Manager
	hasher    *password.Hasher
	publisher events.Publisher
	validator *validation.Validator
	cfg       *config.Config
}

func NewAuthService(
	accounts accounts.AccountService,
	tokens *token.Manager,
	hasher *password.Hasher,
	publisher events.Publisher,
	cfg *config.Config,
) AuthService {
	return &authService{
		accounts:  accounts,
		tokens:    tokens,
		hasher:    hasher,
		publisher: publisher,
		validator: validation.New(),
		cfg:       cfg,
	}
}

func (s *authService) Signup(ctx context.Context, role model.Role, req *model.SignupRequest) (result *model.AuthResult, err error) {
	defer func() { metrics.RecordAuth("signup", string(role), metrics.Outcome(err)) }()

	if role != model.RoleStudent && role != model.RoleTeacher {
		return nil, apperrors.InvalidInput("Signup is only available for students and teachers")
	}

	req.Name = sanitizer.SanitizeName(req.Name)
	req.Email = sanitizer.SanitizeEmail(req.Email)
	req.Subject = sanitizer.SanitizeName(req.Subject)

	if err := s.validator.Struct(req); err != nil {
		s.cfg.Log.Warn("Signup validation failed", "role", role, "email", req.Email, "error", err)
		return nil, validation.ToAppError("Signup validation failed", err)
	}
	if role == model.RoleTeacher && req.Subject == "" {
		return nil, apperrors.InvalidInput("Signup validation failed").WithDetails(map[string]any{
			"fields": map[string]any{"subject": "subject is required"},
		})
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.cfg.Log.Error("Failed to hash password", "role", role, "error", err)
		return nil, apperrors.Internal("Failed to create account", err)
	}

	var summary model.AccountSummary
	switch role {
	case model.RoleStudent:
		student := &model.Student{Name: req.Name, Email: req.Email, PasswordHash: hash}
		if err := s.accounts.CreateStudent(ctx, student); err != nil {
			return nil, err
		}
		summary = model.AccountSummary{ID: student.ID, Role: role, Name: student.Name, Email: student.Email}
	case model.RoleTeacher:
		teacher := &model.Teacher{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			Subject:      req.Subject,
			Bio:          req.Bio,
			ImageURL:     req.ImageURL,
			Slots:        req.Slots,
		}
		if req.Price != nil {
			teacher.Price = *req.Price
		}
		if err := s.accounts.CreateTeacher(ctx, teacher); err != nil {
			return nil, err
		}
		summary = model.AccountSummary{ID: teacher.ID, Role: role, Name: teacher.Name, Email: teacher.Email}
	}

	result, err = s.issue(summary)
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Account registered", "id", summary.ID, "role", role)
	events.Emit(ctx, s.publisher, s.cfg.Log, events.AccountRegistered, summary.ID, events.AccountPayload{
		AccountID: summary.ID,
		Role:      string(role),
		Email:     summary.Email,
	})
	return result, nil
}

func (s *authService) Login(ctx context.Context, role model.Role, req *model.LoginRequest) (result *model.AuthResult, err error) {
	defer func() { metrics.RecordAuth("login", string(role), metrics.Outcome(err)) }()

	if !role.Valid() {
		return nil, apperrors.InvalidInput("Unknown account role")
	}

	req.Email = sanitizer.SanitizeEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.ToAppError("Login validation failed", err)
	}

	creds, err := s.accounts.FindCredentials(ctx, role, req.Email)
	if err != nil {
		return nil, err
	}
	if creds == nil || !s.hasher.Matches(creds.PasswordHash, req.Password) {
		s.cfg.Log.Warn("Login rejected", "role", role, "email", req.Email)
		return nil, apperrors.Unauthorized(invalidCredentials)
	}

	return s.issue(model.AccountSummary{ID: creds.ID, Role: role, Name: creds.Name, Email: creds.Email})
}

func (s *authService) AdminLogin(ctx context.Context, req *model.LoginRequest) (*model.AuthResult, error) {
	return s.Login(ctx, model.RoleAdmin, req)
}

func (s *authService) Verify(raw string) (*model.Principal, error) {
	principal, err := s.tokens.Verify(raw)
	if err != nil {
		s.cfg.Log.Debug("Token rejected", "error", err)
		return nil, apperrors.Unauthorized("Invalid or expired token")
	}
	return principal, nil
}

func (s *authService) issue(summary model.AccountSummary) (*model.AuthResult, error) {
	raw, expiresAt, err := s.tokens.Issue(model.Principal{
		ID:    summary.ID,
		Role:  summary.Role,
		Email: summary.Email,
	})
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "id", summary.ID, "role", summary.Role, "error", err)
		return nil, apperrors.Internal("Failed to issue credential", err)
	}
	return &model.AuthResult{Token: raw, ExpiresAt: expiresAt, Account: summary}, nil
}
