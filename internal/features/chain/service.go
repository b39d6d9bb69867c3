package chain

import (
	"context"
	"time"

	"github.com/yahya12213/SiteManagement-sub007/internal/features/delegation"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/hierarchy"
)

// Resolver produces the ordered, delegation-resolved list of principals
// entitled to approve at each rank of an employee's chain.
type Resolver interface {
	// Resolve is a pure read combining the hierarchy store and the delegation
	// registry at a single instant. An empty result is a valid, distinguished
	// outcome meaning "no approval required"; callers must check for it.
	Resolve(ctx context.Context, employeeID string, asOf time.Time) ([]RankApprovers, error)
}

type ResolverImpl struct {
	Hierarchy   hierarchy.HierarchyRepository
	Delegations delegation.DelegationService
}

func NewResolver(hierarchyRepo hierarchy.HierarchyRepository, delegations delegation.DelegationService) Resolver {
	return &ResolverImpl{
		Hierarchy:   hierarchyRepo,
		Delegations: delegations,
	}
}

func (r *ResolverImpl) Resolve(ctx context.Context, employeeID string, asOf time.Time) ([]RankApprovers, error) {
	assignments, err := r.Hierarchy.GetChain(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, nil
	}

	resolved := make([]RankApprovers, 0, len(assignments))
	for _, a := range assignments {
		eligible, err := r.Delegations.ActiveDelegatesFor(ctx, a.ManagerID, a.Rank, asOf)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, RankApprovers{
			Rank:      a.Rank,
			ManagerID: a.ManagerID,
			Eligible:  eligible,
		})
	}
	return resolved, nil
}
