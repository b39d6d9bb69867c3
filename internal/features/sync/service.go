package sync

import (
	"context"
	"time"

	"github.com/yahya12213/SiteManagement-sub007/internal/config"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/employee"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/hierarchy"

	"go.uber.org/zap"
)

// DirectorySyncService replicates the external HR directory into the local
// employees collection and replays manager assignments through the hierarchy
// store, so chain validation applies to synced data too.
type DirectorySyncService interface {
	RunSync(ctx context.Context) (*SyncLog, error)
	ListLogs(ctx context.Context, limit int64) ([]SyncLog, error)
}

type DirectorySyncServiceImpl struct {
	Config       *config.Config
	EmployeeRepo employee.EmployeeRepository
	Hierarchy    hierarchy.HierarchyService
	LogRepo      SyncLogRepository
	Logger       *zap.Logger
}

func NewDirectorySyncService(
	cfg *config.Config,
	employeeRepo employee.EmployeeRepository,
	hierarchyService hierarchy.HierarchyService,
	logRepo SyncLogRepository,
	logger *zap.Logger,
) DirectorySyncService {
	return &DirectorySyncServiceImpl{
		Config:       cfg,
		EmployeeRepo: employeeRepo,
		Hierarchy:    hierarchyService,
		LogRepo:      logRepo,
		Logger:       logger,
	}
}

func (s *DirectorySyncServiceImpl) RunSync(ctx context.Context) (*SyncLog, error) {
	log := SyncLog{StartTime: time.Now(), Status: "success"}

	err := s.runSync(ctx, &log)
	if err != nil {
		log.Status = "failed"
		log.Error = err.Error()
		s.Logger.Error("directory sync failed", zap.Error(err))
	}

	log.EndTime = time.Now()
	if logErr := s.LogRepo.Create(ctx, log); logErr != nil {
		s.Logger.Warn("failed to record sync log", zap.Error(logErr))
	}
	return &log, err
}

func (s *DirectorySyncServiceImpl) runSync(ctx context.Context, log *SyncLog) error {
	connector := NewDirectoryConnector(s.Config.DirectoryDriver)
	if err := connector.Connect(ctx, s.Config.DirectoryDSN); err != nil {
		return err
	}
	defer connector.Disconnect(ctx)

	employees, err := connector.FetchEmployees(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, row := range employees {
		emp := employee.Employee{
			EmployeeID: row.EmployeeID,
			FullName:   row.FullName,
			Email:      row.Email,
			Active:     row.Active,
			SyncedAt:   now,
		}
		if err := s.EmployeeRepo.Upsert(ctx, emp); err != nil {
			return err
		}
		log.EmployeeCount++
	}

	assignments, err := connector.FetchAssignments(ctx)
	if err != nil {
		return err
	}

	// Replay chains per employee through SetChain so every synced chain passes
	// the same validation and transactional replace as a manual edit.
	chains := make(map[string][]hierarchy.AssignmentInput)
	for _, row := range assignments {
		chains[row.EmployeeID] = append(chains[row.EmployeeID], hierarchy.AssignmentInput{
			ManagerID: row.ManagerID,
			Rank:      row.Rank,
		})
	}

	for employeeID, inputs := range chains {
		_, err := s.Hierarchy.SetChain(ctx, employeeID, hierarchy.ChainInput{Assignments: inputs})
		if err != nil {
			// A malformed source chain must not abort the whole run.
			s.Logger.Warn("skipping invalid chain from directory",
				zap.String("employee", employeeID),
				zap.Error(err))
			log.SkippedChains++
			continue
		}
		log.ChainCount++
	}

	s.Logger.Info("directory sync completed",
		zap.Int("employees", log.EmployeeCount),
		zap.Int("chains", log.ChainCount),
		zap.Int("skipped", log.SkippedChains))
	return nil
}

func (s *DirectorySyncServiceImpl) ListLogs(ctx context.Context, limit int64) ([]SyncLog, error) {
	if limit < 1 {
		limit = 20
	}
	return s.LogRepo.List(ctx, limit)
}
