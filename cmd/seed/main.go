package main

import (
	"context"
	"time"

	"github.com/yahya12213/SiteManagement-sub007/internal/config"
	"github.com/yahya12213/SiteManagement-sub007/internal/database"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/employee"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/hierarchy"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/permission"
	"github.com/yahya12213/SiteManagement-sub007/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Seed loads the default role permissions and a small demo org so the engine
// can be exercised out of the box.
func Seed(
	lc fx.Lifecycle,
	permissionRepo permission.PermissionRepository,
	employeeRepo employee.EmployeeRepository,
	hierarchyService hierarchy.HierarchyService,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("Starting database seeding...")

				rolePerms := []permission.RolePermission{
					{Role: "admin", Operations: []string{
						permission.OpChainsManage, permission.OpChainsRead,
						permission.OpDelegationsManage, permission.OpDelegationsRead,
						permission.OpRequestsSubmit, permission.OpRequestsDecide,
						permission.OpRequestsCancel, permission.OpAuditRead,
					}},
					{Role: "manager", Operations: []string{
						permission.OpChainsRead,
						permission.OpDelegationsManage, permission.OpDelegationsRead,
						permission.OpRequestsSubmit, permission.OpRequestsDecide,
					}},
					{Role: "employee", Operations: []string{
						permission.OpRequestsSubmit,
					}},
					{Role: "hr", Operations: []string{
						permission.OpChainsManage, permission.OpChainsRead,
						permission.OpDelegationsRead, permission.OpAuditRead,
					}},
				}
				for _, rp := range rolePerms {
					if err := permissionRepo.Upsert(ctx, rp); err != nil {
						logger.Error("Failed to seed permission", zap.String("role", rp.Role), zap.Error(err))
						return
					}
				}

				now := time.Now()
				demoEmployees := []employee.Employee{
					{EmployeeID: "E1001", FullName: "Asha Raman", Email: "asha@example.com", Active: true, SyncedAt: now},
					{EmployeeID: "M2001", FullName: "Leo Okafor", Email: "leo@example.com", Active: true, SyncedAt: now},
					{EmployeeID: "M3001", FullName: "Mira Castillo", Email: "mira@example.com", Active: true, SyncedAt: now},
				}
				for _, emp := range demoEmployees {
					if err := employeeRepo.Upsert(ctx, emp); err != nil {
						logger.Error("Failed to seed employee", zap.String("id", emp.EmployeeID), zap.Error(err))
						return
					}
				}

				_, err := hierarchyService.SetChain(ctx, "E1001", hierarchy.ChainInput{
					Assignments: []hierarchy.AssignmentInput{
						{ManagerID: "M2001", Rank: 0},
						{ManagerID: "M3001", Rank: 1},
					},
				})
				if err != nil {
					logger.Error("Failed to seed demo chain", zap.Error(err))
					return
				}

				logger.Info("Seeding complete")
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			permission.NewPermissionRepository,
			employee.NewEmployeeRepository,
			hierarchy.NewHierarchyRepository,
			hierarchy.NewHierarchyService,
			func(db *database.MongodbDB) database.TxRunner { return db },
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
