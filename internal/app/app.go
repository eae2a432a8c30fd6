package app

import (
	"context"
	"database/sql"
	"fmt"

	"go-erp/internal/attendance"
	"go-erp/internal/auth"
	"go-erp/internal/course"
	"go-erp/internal/employee"
	"go-erp/internal/gateway"
	"go-erp/internal/inventory"
	"go-erp/internal/messaging/kafka"
	"go-erp/internal/permission"
	"go-erp/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildApp connects the infrastructure, registers every module on router and
// starts the change feed subscriptions. The returned func releases them.
func BuildApp(ctx context.Context, router *gin.Engine, cfg Config) (func(), error) {
	logger := zap.L().Named("app")

	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		connectRetries,
	)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := migrate(ctx, gormDB, sqlDB); err != nil {
			return nil, err
		}
		logger.Info("schema migrated")
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		return nil, err
	}
	logger.Info("redis connection established")

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	feed := gateway.NewRedisFeed(rdb, logger)
	gw := gateway.New(gormDB, gateway.MultiNotifier{feed, gateway.NewOutboxNotifier(outboxRepo)}, feed, logger)

	watchCtx, cancel := context.WithCancel(ctx)
	subs, err := registerModules(watchCtx, router, cfg, gw, rdb, outboxRepo, logger)
	if err != nil {
		cancel()
		return nil, err
	}

	cleanup := func() {
		cancel()
		for _, s := range subs {
			_ = s.Close()
		}
		_ = rdb.Close()
		_ = sqlDB.Close()
	}
	return cleanup, nil
}

func migrate(ctx context.Context, db *gorm.DB, sqlDB *sql.DB) error {
	if err := kafka.EnsureOutboxSchema(ctx, sqlDB); err != nil {
		return err
	}
	return db.WithContext(ctx).AutoMigrate(
		&employee.Employee{},
		&attendance.Record{},
		&inventory.Item{},
		&course.Course{},
		&course.Registration{},
		&permission.Record{},
		&auth.Account{},
	)
}
