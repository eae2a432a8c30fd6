package rbac

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"go-erp/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

const (
	effectAllow = "allow"
	effectDeny  = "deny"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Load(policy Policy) error
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	loaded   bool
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{enforcer: enforcer, logger: l}
}

func employeeSubject(id int64) string {
	return "emp:" + strconv.FormatInt(id, 10)
}

func roleSubject(r domain.Role) string {
	return "role:" + string(r)
}

// Load replaces the whole policy.
func (s *service) Load(policy Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()

	for _, rg := range policy.Roles {
		if _, err := s.enforcer.AddPolicy(roleSubject(rg.Role), rg.Capability, effectAllow); err != nil {
			return fmt.Errorf("add role policy %s/%s: %w", rg.Role, rg.Capability, err)
		}
	}

	overrides := 0
	for _, eg := range policy.Employees {
		sub := employeeSubject(eg.EmployeeID)
		if _, err := s.enforcer.AddGroupingPolicy(sub, roleSubject(eg.Role)); err != nil {
			return fmt.Errorf("add grouping for employee %d: %w", eg.EmployeeID, err)
		}

		caps := make([]string, 0, len(eg.Overrides))
		for c := range eg.Overrides {
			caps = append(caps, c)
		}
		sort.Strings(caps)

		for _, c := range caps {
			eft := effectDeny
			if eg.Overrides[c] {
				eft = effectAllow
			}
			if _, err := s.enforcer.AddPolicy(sub, c, eft); err != nil {
				return fmt.Errorf("add override for employee %d: %w", eg.EmployeeID, err)
			}
			overrides++
		}
	}

	s.loaded = true
	s.logger.Debug("rbac policy loaded",
		zap.Int("role_grants", len(policy.Roles)),
		zap.Int("employees", len(policy.Employees)),
		zap.Int("overrides", overrides),
	)
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false, ErrPolicyNotLoaded
	}

	allowed, err := s.enforcer.Enforce(employeeSubject(req.EmployeeID), req.Capability)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.Int64("employee_id", req.EmployeeID),
			zap.String("capability", req.Capability),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.Int64("employee_id", req.EmployeeID),
		zap.String("capability", req.Capability),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}
