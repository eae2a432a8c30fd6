package permission

import (
	"context"
	"time"

	"go-erp/internal/bootstrap"
	"go-erp/internal/cache"
	"go-erp/internal/domain"
	"go-erp/internal/employee"
	employeeerrors "go-erp/internal/employee/errors"
	"go-erp/internal/gateway"
	permissionerrors "go-erp/internal/permission/errors"
	"go-erp/internal/rbac"
	"go-erp/internal/shared/contextutil"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, viewer domain.Viewer) ([]PermissionResponse, error)
	Get(ctx context.Context, viewer domain.Viewer, employeeID int64) (PermissionResponse, error)
	ReassignRole(ctx context.Context, viewer domain.Viewer, employeeID int64, role domain.Role) (PermissionResponse, error)
	SetCapability(ctx context.Context, viewer domain.Viewer, employeeID int64, name Capability, value bool) (PermissionResponse, error)
	Stats(ctx context.Context, viewer domain.Viewer) (StatsResponse, error)
	ResolveViewer(ctx context.Context, employeeID int64) (domain.Viewer, error)
	Reload(ctx context.Context) error
	Watch(ctx context.Context, gw gateway.Gateway) ([]gateway.Subscription, error)
}

type service struct {
	employees employee.Service
	repo      Repository
	table     *cache.Table[Record]
	rbac      rbac.Service
	audit     bootstrap.AuditLogger
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	employees employee.Service,
	repo Repository,
	rbacService rbac.Service,
	audit bootstrap.AuditLogger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("permission.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("permission.service")
	}
	return &service{
		employees: employees,
		repo:      repo,
		table:     cache.NewTable(gateway.TablePermissions, repo.FindAll, l),
		rbac:      rbacService,
		audit:     audit,
		now:       time.Now,
		logger:    l,
	}
}

// resolveAll joins the roster with persisted rows. Employees without a row
// get their department default.
func (s *service) resolveAll(ctx context.Context) ([]Permission, employee.Directory, error) {
	emps, err := s.employees.Roster(ctx)
	if err != nil {
		return nil, nil, err
	}
	recs, err := s.table.Get(ctx)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("load permissions failed", zap.Error(err))
		return nil, nil, err
	}

	byID := make(map[int64]Record, len(recs))
	for _, r := range recs {
		byID[r.EmployeeID] = r
	}

	perms := make([]Permission, 0, len(emps))
	for _, e := range emps {
		perms = append(perms, resolve(e, byID))
	}
	return perms, employee.NewDirectory(emps), nil
}

func resolve(e employee.Employee, byID map[int64]Record) Permission {
	p := DefaultPermission(e)
	if rec, ok := byID[e.ID]; ok && rec.Role.Valid() {
		p.Role = rec.Role
		p.Capabilities = rec.Capabilities
		p.Persisted = true
	}
	return p
}

func (s *service) target(ctx context.Context, employeeID int64) (Permission, employee.Directory, error) {
	perms, dir, err := s.resolveAll(ctx)
	if err != nil {
		return Permission{}, nil, err
	}
	for _, p := range perms {
		if p.EmployeeID == employeeID {
			return p, dir, nil
		}
	}
	return Permission{}, nil, employeeerrors.ErrEmployeeNotFound
}

func (s *service) List(ctx context.Context, viewer domain.Viewer) ([]PermissionResponse, error) {
	perms, dir, err := s.resolveAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		if !CanView(viewer, p, dir) {
			continue
		}
		res = append(res, toResponse(viewer, p, dir))
	}
	return res, nil
}

func (s *service) Get(ctx context.Context, viewer domain.Viewer, employeeID int64) (PermissionResponse, error) {
	p, dir, err := s.target(ctx, employeeID)
	if err != nil {
		return PermissionResponse{}, err
	}
	if !CanView(viewer, p, dir) {
		return PermissionResponse{}, permissionerrors.ErrCannotView
	}
	return toResponse(viewer, p, dir), nil
}

func (s *service) ReassignRole(ctx context.Context, viewer domain.Viewer, employeeID int64, role domain.Role) (PermissionResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	p, dir, err := s.target(ctx, employeeID)
	if err != nil {
		return PermissionResponse{}, err
	}
	previous := p.Role

	updated, err := ReassignRole(viewer, p, role, dir)
	if err != nil {
		log.Warn("role reassignment rejected",
			zap.Int64("target_id", employeeID),
			zap.String("role", string(role)),
			zap.Error(err),
		)
		return PermissionResponse{}, err
	}

	if err := s.persist(ctx, viewer, updated); err != nil {
		return PermissionResponse{}, err
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  "permission.role_reassigned",
		Message: "employee role reassigned",
		ActorID: viewer.ID,
		Meta: map[string]any{
			"target_id": employeeID,
			"from":      string(previous),
			"to":        string(role),
		},
	})
	return toResponse(viewer, updated, dir), nil
}

func (s *service) SetCapability(ctx context.Context, viewer domain.Viewer, employeeID int64, name Capability, value bool) (PermissionResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	p, dir, err := s.target(ctx, employeeID)
	if err != nil {
		return PermissionResponse{}, err
	}

	updated, err := SetCapability(viewer, p, name, value, dir)
	if err != nil {
		log.Warn("capability change rejected",
			zap.Int64("target_id", employeeID),
			zap.String("capability", string(name)),
			zap.Error(err),
		)
		return PermissionResponse{}, err
	}

	if err := s.persist(ctx, viewer, updated); err != nil {
		return PermissionResponse{}, err
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  "permission.capability_set",
		Message: "employee capability changed",
		ActorID: viewer.ID,
		Meta: map[string]any{
			"target_id":  employeeID,
			"capability": string(name),
			"value":      value,
		},
	})
	return toResponse(viewer, updated, dir), nil
}

// persist writes the row and rebuilds the enforcer so the next request sees it.
func (s *service) persist(ctx context.Context, viewer domain.Viewer, p Permission) error {
	log := contextutil.GetLogger(ctx, s.logger)

	rec := Record{
		EmployeeID:   p.EmployeeID,
		Role:         p.Role,
		Capabilities: p.Capabilities,
		UpdatedBy:    viewer.ID,
		UpdatedAt:    s.now(),
	}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		log.Error("persist permission failed", zap.Int64("target_id", p.EmployeeID), zap.Error(err))
		return err
	}

	if err := s.Reload(ctx); err != nil {
		log.Warn("reload after permission change failed", zap.Error(err))
	}
	return nil
}

func (s *service) Stats(ctx context.Context, viewer domain.Viewer) (StatsResponse, error) {
	perms, dir, err := s.resolveAll(ctx)
	if err != nil {
		return StatsResponse{}, err
	}

	stats := StatsResponse{ByRole: make(map[domain.Role]int, len(domain.Roles))}
	for _, r := range domain.Roles {
		stats.ByRole[r] = 0
	}
	for _, p := range perms {
		if !CanView(viewer, p, dir) {
			continue
		}
		stats.Total++
		stats.ByRole[p.Role]++
		if p.Customized() {
			stats.Customized++
		}
	}
	return stats, nil
}

func (s *service) ResolveViewer(ctx context.Context, employeeID int64) (domain.Viewer, error) {
	emp, err := s.employees.Find(ctx, employeeID)
	if err != nil {
		return domain.Viewer{}, err
	}
	recs, err := s.table.Get(ctx)
	if err != nil {
		return domain.Viewer{}, err
	}

	byID := make(map[int64]Record, len(recs))
	for _, r := range recs {
		byID[r.EmployeeID] = r
	}
	p := resolve(emp, byID)
	return domain.Viewer{ID: p.EmployeeID, Role: p.Role}, nil
}

// Reload refreshes the permission rows and replaces the enforcer policy.
func (s *service) Reload(ctx context.Context) error {
	if _, err := s.table.Refresh(ctx); err != nil {
		return err
	}
	return s.rebuildPolicy(ctx)
}

func (s *service) rebuildPolicy(ctx context.Context) error {
	perms, _, err := s.resolveAll(ctx)
	if err != nil {
		return err
	}
	return s.rbac.Load(BuildPolicy(perms))
}

// Watch keeps the enforcer in step with both the permission rows and the
// roster, since a new employee gets a department default.
func (s *service) Watch(ctx context.Context, gw gateway.Gateway) ([]gateway.Subscription, error) {
	perms, err := gw.SubscribeChanges(ctx, gateway.TablePermissions, gateway.MaskAll, func(e gateway.ChangeEvent) {
		if err := s.Reload(ctx); err != nil {
			s.logger.Warn("reload after permission change failed",
				zap.String("event_id", e.EventID),
				zap.Error(err),
			)
		}
	})
	if err != nil {
		return nil, err
	}

	emps, err := gw.SubscribeChanges(ctx, gateway.TableEmployee, gateway.MaskAll, func(e gateway.ChangeEvent) {
		if _, err := s.employees.Refresh(ctx); err != nil {
			s.logger.Warn("roster refresh failed", zap.String("event_id", e.EventID), zap.Error(err))
			return
		}
		if err := s.rebuildPolicy(ctx); err != nil {
			s.logger.Warn("policy rebuild after roster change failed",
				zap.String("event_id", e.EventID),
				zap.Error(err),
			)
		}
	})
	if err != nil {
		_ = perms.Close()
		return nil, err
	}

	return []gateway.Subscription{perms, emps}, nil
}

// BuildPolicy grants every role its template and records each employee's
// divergence from its template as an override.
func BuildPolicy(perms []Permission) rbac.Policy {
	var policy rbac.Policy
	for _, r := range domain.Roles {
		caps := CapabilitiesFor(r)
		for _, c := range AllCapabilities {
			if caps.Has(c) {
				policy.Roles = append(policy.Roles, rbac.RoleGrant{Role: r, Capability: string(c)})
			}
		}
	}

	for _, p := range perms {
		grant := rbac.EmployeeGrant{EmployeeID: p.EmployeeID, Role: p.Role}
		diff := p.Capabilities.Diff(CapabilitiesFor(p.Role))
		if len(diff) > 0 {
			grant.Overrides = make(map[string]bool, len(diff))
			for c, v := range diff {
				grant.Overrides[string(c)] = v
			}
		}
		policy.Employees = append(policy.Employees, grant)
	}
	return policy
}

func toResponse(viewer domain.Viewer, p Permission, dir domain.Directory) PermissionResponse {
	editable := CanEdit(viewer, p, dir)
	res := PermissionResponse{
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		Department:   p.Department,
		Role:         p.Role,
		RoleLabel:    p.Role.Label(),
		Capabilities: p.Capabilities,
		Customized:   p.Customized(),
		Persisted:    p.Persisted,
		Editable:     editable,
	}
	if editable {
		res.AssignableRoles = AssignableRoles(viewer)
	}
	return res
}
