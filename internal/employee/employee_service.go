package employee

import (
	"context"
	"time"

	"go-erp/internal/cache"
	employeeerrors "go-erp/internal/employee/errors"
	"go-erp/internal/gateway"
	"go-erp/internal/shared/contextutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id int64) (EmployeeResponse, error)
	Roster(ctx context.Context) ([]Employee, error)
	Refresh(ctx context.Context) ([]Employee, error)
	Find(ctx context.Context, id int64) (Employee, error)
	Directory(ctx context.Context) (Directory, error)
	Watch(ctx context.Context, gw gateway.Gateway) (gateway.Subscription, error)
}

type service struct {
	repo   Repository
	table  *cache.Table[Employee]
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:   repo,
		table:  cache.NewTable(gateway.TableEmployee, repo.FindAll, l),
		logger: l,
	}
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	emps, err := s.Roster(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(emps), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (EmployeeResponse, error) {
	emp, err := s.Find(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(emp), nil
}

// Roster returns every employee ordered by name from the cached table.
func (s *service) Roster(ctx context.Context) ([]Employee, error) {
	emps, err := s.table.Get(ctx)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("load employee roster failed", zap.Error(err))
		return nil, err
	}
	return emps, nil
}

// Refresh reloads the roster so it reflects every change committed so far.
func (s *service) Refresh(ctx context.Context) ([]Employee, error) {
	return s.table.Refresh(ctx)
}

// Find checks the cached roster first and falls back to the gateway for
// employees added since the last reload.
func (s *service) Find(ctx context.Context, id int64) (Employee, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	emps, err := s.Roster(ctx)
	if err != nil {
		return Employee{}, err
	}
	for _, e := range emps {
		if e.ID == id {
			return e, nil
		}
	}

	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error("find employee failed", zap.Int64("employee_id", id), zap.Error(err))
		return Employee{}, err
	}
	if emp == nil {
		log.Debug("employee not found", zap.Int64("employee_id", id))
		return Employee{}, employeeerrors.ErrEmployeeNotFound
	}
	return *emp, nil
}

func (s *service) Directory(ctx context.Context) (Directory, error) {
	emps, err := s.Roster(ctx)
	if err != nil {
		return nil, err
	}
	return NewDirectory(emps), nil
}

func (s *service) Watch(ctx context.Context, gw gateway.Gateway) (gateway.Subscription, error) {
	return s.table.Watch(ctx, gw)
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Department: e.Department,
		Email:      e.Email,
		CreatedAt:  formatTime(e.CreatedAt),
		RenewedAt:  formatTime(e.RenewedAt),
	}
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(emps))
	for i, e := range emps {
		res[i] = mapToResponse(e)
	}
	return res
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
