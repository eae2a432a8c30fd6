package app

import (
	"context"

	"go-erp/internal/attendance"
	"go-erp/internal/auth"
	"go-erp/internal/bootstrap"
	"go-erp/internal/course"
	"go-erp/internal/employee"
	"go-erp/internal/gateway"
	"go-erp/internal/inventory"
	"go-erp/internal/messaging/kafka"
	"go-erp/internal/middleware"
	"go-erp/internal/permission"
	"go-erp/internal/rbac"
	"go-erp/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// watcher is a service that keeps a cache in step with one gateway table.
type watcher interface {
	Watch(ctx context.Context, gw gateway.Gateway) (gateway.Subscription, error)
}

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg Config,
	gw gateway.Gateway,
	rdb *redis.Client,
	outboxRepo kafka.OutboxRepository,
	logger *zap.Logger,
) ([]gateway.Subscription, error) {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gw)
	authRepo := auth.NewRepository(gw)
	courseRepo := course.NewRepository(gw)
	employeeRepo := employee.NewRepository(gw)
	inventoryRepo := inventory.NewRepository(gw)
	permissionRepo := permission.NewRepository(gw)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	rbacService := rbac.NewService(enforcer, logger)
	auditLogger := bootstrap.NewStdoutAuditLogger(logger)

	// --- Services ---
	employeeService := employee.NewService(employeeRepo, logger)
	permissionService := permission.NewService(employeeService, permissionRepo, rbacService, auditLogger, logger)
	attendanceService := attendance.NewService(employeeService, attendanceRepo, attendance.Options{
		Location: cfg.Location,
		QRSecret: cfg.QRSecret,
		QRTTL:    cfg.QRTTL,
		Outbox:   outboxRepo,
	}, logger)
	authService := auth.NewService(authRepo, employeeService, permissionService, cfg.JWTSecret, logger)
	courseService := course.NewService(courseRepo, logger)
	inventoryService := inventory.NewService(inventoryRepo, logger)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	authHandler := auth.NewHandler(authService, logger)
	courseHandler := course.NewHandler(courseService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	inventoryHandler := inventory.NewHandler(inventoryService, logger)
	permissionHandler := permission.NewHandler(permissionService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authMiddleware, permissionService, logger)
		attendance.RegisterRoutes(api, attendanceHandler, authMiddleware, permissionService, rdb, logger)
		course.RegisterRoutes(api, courseHandler, authMiddleware, permissionService, rdb, logger)
		employee.RegisterRoutes(api, employeeHandler, authMiddleware, permissionService, logger)
		inventory.RegisterRoutes(api, inventoryHandler, authMiddleware, rbacService, logger)
		permission.RegisterRoutes(api, permissionHandler, authMiddleware, permissionService, logger)
		rbac.RegisterRoutes(api, rbacHandler, authMiddleware, permissionService, logger)
	}

	// --- Change feed ---
	if err := permissionService.Reload(ctx); err != nil {
		logger.Error("initial permission load failed", zap.Error(err))
	}

	var subs []gateway.Subscription
	for _, w := range []watcher{employeeService, attendanceService, courseService, inventoryService} {
		sub, err := w.Watch(ctx, gw)
		if err != nil {
			closeAll(subs)
			return nil, err
		}
		subs = append(subs, sub)
	}

	permissionSubs, err := permissionService.Watch(ctx, gw)
	if err != nil {
		closeAll(subs)
		return nil, err
	}
	subs = append(subs, permissionSubs...)

	return subs, nil
}

func closeAll(subs []gateway.Subscription) {
	for _, s := range subs {
		_ = s.Close()
	}
}
