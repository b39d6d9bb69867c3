package delegation

import (
	"context"
	"time"

	"github.com/yahya12213/SiteManagement-sub007/internal/common/apperrors"
	"github.com/yahya12213/SiteManagement-sub007/pkg/clock"
)

type DelegationService interface {
	Grant(ctx context.Context, input GrantInput) (*Delegation, error)
	// Revoke closes the window at the current instant. Only the delegator or an
	// administrator may revoke; the caller enforces the admin side.
	Revoke(ctx context.Context, id string, actorID string, isAdmin bool) error
	ListByDelegator(ctx context.Context, delegatorID string) ([]Delegation, error)

	// ActiveDelegatesFor returns the principal itself plus every delegate with
	// a grant covering asOf at the given rank. Multiple grants union.
	ActiveDelegatesFor(ctx context.Context, principalID string, rank int, asOf time.Time) ([]string, error)
}

type DelegationServiceImpl struct {
	Repo  DelegationRepository
	Clock clock.Clock
}

func NewDelegationService(repo DelegationRepository, clk clock.Clock) DelegationService {
	return &DelegationServiceImpl{
		Repo:  repo,
		Clock: clk,
	}
}

func (s *DelegationServiceImpl) Grant(ctx context.Context, input GrantInput) (*Delegation, error) {
	if input.DelegatorID == "" || input.DelegateID == "" {
		return nil, apperrors.Validationf("delegator_id and delegate_id are required")
	}
	if input.DelegatorID == input.DelegateID {
		return nil, apperrors.Validationf("cannot delegate to oneself")
	}
	if !input.ValidTo.After(input.ValidFrom) {
		return nil, apperrors.Validationf("valid_to must be after valid_from")
	}
	if input.ScopeRank != nil && *input.ScopeRank < 0 {
		return nil, apperrors.Validationf("scope_rank cannot be negative")
	}

	d := Delegation{
		DelegatorID: input.DelegatorID,
		DelegateID:  input.DelegateID,
		ValidFrom:   input.ValidFrom,
		ValidTo:     input.ValidTo,
		ScopeRank:   input.ScopeRank,
		Reason:      input.Reason,
		CreatedAt:   s.Clock.Now(),
	}

	id, err := s.Repo.Create(ctx, d)
	if err != nil {
		return nil, err
	}
	d.ID = id
	return &d, nil
}

func (s *DelegationServiceImpl) Revoke(ctx context.Context, id string, actorID string, isAdmin bool) error {
	d, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return apperrors.ErrNotFound
	}
	if !isAdmin && d.DelegatorID != actorID {
		return apperrors.ErrAuthorizationDenied
	}

	return s.Repo.CloseWindow(ctx, id, s.Clock.Now(), actorID)
}

func (s *DelegationServiceImpl) ListByDelegator(ctx context.Context, delegatorID string) ([]Delegation, error) {
	return s.Repo.ListByDelegator(ctx, delegatorID)
}

func (s *DelegationServiceImpl) ActiveDelegatesFor(ctx context.Context, principalID string, rank int, asOf time.Time) ([]string, error) {
	grants, err := s.Repo.ListCovering(ctx, principalID, asOf)
	if err != nil {
		return nil, err
	}

	principals := []string{principalID}
	seen := map[string]bool{principalID: true}
	for _, g := range grants {
		if !g.ActiveAt(asOf, rank) {
			continue
		}
		if !seen[g.DelegateID] {
			seen[g.DelegateID] = true
			principals = append(principals, g.DelegateID)
		}
	}
	return principals, nil
}
