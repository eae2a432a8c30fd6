package auth

import (
	"context"
	"strings"
	"time"

	autherrors "go-erp/internal/auth/errors"
	"go-erp/internal/domain"
	"go-erp/internal/employee"
	"go-erp/internal/middleware"
	"go-erp/internal/shared/apperror"
	"go-erp/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const AccessTokenTTL = 15 * time.Minute

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, email, password string) (accessToken string, resp AuthResponse, err error)
	Me(ctx context.Context, viewer domain.Viewer) (AuthResponse, error)
}

type service struct {
	repo      Repository
	employees employee.Service
	viewers   middleware.ViewerResolver
	secret    []byte
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	employees employee.Service,
	viewers middleware.ViewerResolver,
	secret []byte,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		repo:      repo,
		employees: employees,
		viewers:   viewers,
		secret:    secret,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	emp, err := s.employees.Find(ctx, req.EmployeeID)
	if err != nil {
		return AuthResponse{}, err
	}

	if existing, err := s.repo.FindByEmployeeID(ctx, emp.ID); err != nil {
		return AuthResponse{}, err
	} else if existing != nil {
		return AuthResponse{}, autherrors.ErrAccountAlreadyExists
	}
	if existing, err := s.repo.FindByEmail(ctx, email); err != nil {
		return AuthResponse{}, err
	} else if existing != nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	account := &Account{
		ID:           uuid.New(),
		EmployeeID:   emp.ID,
		Email:        email,
		PasswordHash: string(hashed),
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, account); err != nil {
		if apperror.IsCode(err, apperror.CodeConflict) {
			return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		log.Error("create account failed", zap.Int64("employee_id", emp.ID), zap.Error(err))
		return AuthResponse{}, err
	}

	viewer, err := s.viewers.ResolveViewer(ctx, emp.ID)
	if err != nil {
		return AuthResponse{}, err
	}
	log.Info("account registered", zap.Int64("employee_id", emp.ID))
	return mapToResponse(account, emp, viewer.Role), nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, AuthResponse, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", AuthResponse{}, err
	}
	if account == nil {
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	emp, err := s.employees.Find(ctx, account.EmployeeID)
	if err != nil {
		return "", AuthResponse{}, err
	}
	viewer, err := s.viewers.ResolveViewer(ctx, emp.ID)
	if err != nil {
		return "", AuthResponse{}, err
	}

	token, err := s.generateToken(emp.ID, AccessTokenTTL)
	if err != nil {
		return "", AuthResponse{}, err
	}
	return token, mapToResponse(account, emp, viewer.Role), nil
}

func (s *service) Me(ctx context.Context, viewer domain.Viewer) (AuthResponse, error) {
	emp, err := s.employees.Find(ctx, viewer.ID)
	if err != nil {
		return AuthResponse{}, err
	}
	account, err := s.repo.FindByEmployeeID(ctx, viewer.ID)
	if err != nil {
		return AuthResponse{}, err
	}
	return mapToResponse(account, emp, viewer.Role), nil
}

func (s *service) generateToken(employeeID int64, expiry time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"employee_id": employeeID,
		"iat":         now.Unix(),
		"exp":         now.Add(expiry).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func mapToResponse(a *Account, emp employee.Employee, role domain.Role) AuthResponse {
	resp := AuthResponse{
		EmployeeID: emp.ID,
		Name:       emp.Name,
		Department: emp.Department,
		Email:      emp.Email,
		Role:       role,
		RoleLabel:  role.Label(),
	}
	if a != nil {
		resp.AccountID = a.ID.String()
		resp.Email = a.Email
	}
	return resp
}
