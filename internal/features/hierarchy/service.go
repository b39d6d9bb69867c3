package hierarchy

import (
	"context"

	"github.com/yahya12213/SiteManagement-sub007/internal/common/apperrors"
	"github.com/yahya12213/SiteManagement-sub007/internal/database"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/employee"
)

type HierarchyService interface {
	// SetChain replaces the employee's whole chain in one transaction and keeps
	// the denormalized direct-manager pointer in sync with rank 0.
	SetChain(ctx context.Context, employeeID string, input ChainInput) ([]ManagerAssignment, error)
	GetChain(ctx context.Context, employeeID string) ([]ManagerAssignment, error)
}

type HierarchyServiceImpl struct {
	DB           database.TxRunner
	Repo         HierarchyRepository
	EmployeeRepo employee.EmployeeRepository
}

func NewHierarchyService(db database.TxRunner, repo HierarchyRepository, employeeRepo employee.EmployeeRepository) HierarchyService {
	return &HierarchyServiceImpl{
		DB:           db,
		Repo:         repo,
		EmployeeRepo: employeeRepo,
	}
}

func (s *HierarchyServiceImpl) SetChain(ctx context.Context, employeeID string, input ChainInput) ([]ManagerAssignment, error) {
	assignments, err := validateChain(employeeID, input.Assignments)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.Repo.ReplaceChain(txCtx, employeeID, assignments); err != nil {
			return err
		}

		// Rank 0 projection: set when a chain exists, cleared otherwise.
		var directManager *string
		for i := range assignments {
			if assignments[i].Rank == 0 {
				directManager = &assignments[i].ManagerID
				break
			}
		}
		return s.EmployeeRepo.SetDirectManager(txCtx, employeeID, directManager)
	})
	if err != nil {
		return nil, err
	}

	return s.Repo.GetChain(ctx, employeeID)
}

func (s *HierarchyServiceImpl) GetChain(ctx context.Context, employeeID string) ([]ManagerAssignment, error) {
	return s.Repo.GetChain(ctx, employeeID)
}

// validateChain enforces the chain invariants before anything is persisted:
// exactly one rank-0 entry when the list is non-empty, unique ranks, and no
// self-approval.
func validateChain(employeeID string, inputs []AssignmentInput) ([]ManagerAssignment, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	seenRanks := make(map[int]bool, len(inputs))
	rankZero := 0
	assignments := make([]ManagerAssignment, 0, len(inputs))

	for _, in := range inputs {
		if in.Rank < 0 {
			return nil, apperrors.Validationf("rank %d is negative", in.Rank)
		}
		if in.ManagerID == "" {
			return nil, apperrors.Validationf("manager_id is required for rank %d", in.Rank)
		}
		if in.ManagerID == employeeID {
			return nil, apperrors.Validationf("employee %s cannot be their own approver", employeeID)
		}
		if seenRanks[in.Rank] {
			return nil, apperrors.Validationf("duplicate rank %d in chain", in.Rank)
		}
		seenRanks[in.Rank] = true
		if in.Rank == 0 {
			rankZero++
		}
		assignments = append(assignments, ManagerAssignment{
			EmployeeID: employeeID,
			ManagerID:  in.ManagerID,
			Rank:       in.Rank,
		})
	}

	if rankZero != 1 {
		return nil, apperrors.Validationf("a chain requires exactly one rank-0 direct manager, got %d", rankZero)
	}

	return assignments, nil
}
