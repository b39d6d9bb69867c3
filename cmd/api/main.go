package main

import (
	"context"
	"fmt"
	"log"

	common_api "github.com/yahya12213/SiteManagement-sub007/internal/common/api"
	"github.com/yahya12213/SiteManagement-sub007/internal/config"
	"github.com/yahya12213/SiteManagement-sub007/internal/database"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/audit"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/chain"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/delegation"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/employee"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/hierarchy"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/notification"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/permission"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/request"
	sync_feature "github.com/yahya12213/SiteManagement-sub007/internal/features/sync"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/system"
	"github.com/yahya12213/SiteManagement-sub007/internal/logger"
	"github.com/yahya12213/SiteManagement-sub007/internal/middleware"
	"github.com/yahya12213/SiteManagement-sub007/pkg/clock"
	"github.com/yahya12213/SiteManagement-sub007/pkg/utils"

	_ "github.com/yahya12213/SiteManagement-sub007/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d routes\n", len(routes))
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// StartScheduler runs the delegation expiry sweep and the directory sync on
// their configured cron schedules.
func StartScheduler(
	lc fx.Lifecycle,
	cfg *config.Config,
	sweeper *delegation.Sweeper,
	syncService sync_feature.DirectorySyncService,
	zapLogger *zap.Logger,
) {
	scheduler := cron.New()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if _, err := scheduler.AddFunc(cfg.SweepSchedule, sweeper.Run); err != nil {
				return fmt.Errorf("invalid sweep schedule: %w", err)
			}
			if _, err := scheduler.AddFunc(cfg.SyncSchedule, func() {
				if _, err := syncService.RunSync(context.Background()); err != nil {
					zapLogger.Error("scheduled directory sync failed", zap.Error(err))
				}
			}); err != nil {
				return fmt.Errorf("invalid sync schedule: %w", err)
			}
			scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}

// @title           HR Approval Workflow API
// @version         1.0
// @description     Multi-level approval workflow engine for HR requests.

// @host            localhost:8080
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Wall clock (injectable so tests can freeze time)
			clock.NewSystem,

			// Initialize Repositories
			employee.NewEmployeeRepository,
			hierarchy.NewHierarchyRepository,
			delegation.NewDelegationRepository,
			permission.NewPermissionRepository,
			audit.NewEventRepository,
			request.NewRequestRepository,
			notification.NewNotificationRepository,
			sync_feature.NewSyncLogRepository,

			// Initialize Services
			hierarchy.NewHierarchyService,
			delegation.NewDelegationService,
			delegation.NewSweeper,
			chain.NewResolver,
			permission.NewPermissionService,
			audit.NewAuditService,
			notification.NewHub,
			notification.NewNotificationService,
			request.NewRequestService,
			sync_feature.NewDirectorySyncService,

			// Interface Adapters to satisfy Fx
			func(db *database.MongodbDB) database.TxRunner { return db },
			func(s permission.PermissionService) middleware.Authorizer { return s },
			func(s notification.NotificationService) request.Notifier { return s },

			// Initialize Controllers
			employee.NewEmployeeController,
			hierarchy.NewHierarchyController,
			delegation.NewDelegationController,
			chain.NewChainController,
			permission.NewPermissionController,
			audit.NewAuditController,
			request.NewRequestController,
			notification.NewNotificationController,
			sync_feature.NewSyncController,

			// Initialize API Routes
			AsRoute(employee.NewEmployeeApi),
			AsRoute(hierarchy.NewHierarchyApi),
			AsRoute(delegation.NewDelegationApi),
			AsRoute(chain.NewChainApi),
			AsRoute(permission.NewPermissionApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(request.NewRequestApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(sync_feature.NewSyncApi),
			AsRoute(system.NewSwaggerApi),
			AsRoute(system.NewHealthApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },
			RegisterAllRoutesWithAnnotation,
			StartServer,
			StartScheduler,
		),
	)

	app.Run()
}
