package request

import (
	"context"

	"github.com/yahya12213/SiteManagement-sub007/internal/common/apperrors"
	"github.com/yahya12213/SiteManagement-sub007/internal/database"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/audit"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/chain"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/employee"
	"github.com/yahya12213/SiteManagement-sub007/pkg/clock"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Notifier receives a copy of every recorded transition. Delivery is
// best-effort: it runs after the transaction commits and its failures never
// roll back the transition.
type Notifier interface {
	TransitionRecorded(ctx context.Context, req *Request, event audit.ApprovalEvent, nextEligible []string)
}

type RequestService interface {
	Submit(ctx context.Context, input SubmitInput, actorID string) (*Request, error)
	Approve(ctx context.Context, requestID string, actorID string, comment string) (*Request, error)
	Reject(ctx context.Context, requestID string, actorID string, reason string) (*Request, error)
	Cancel(ctx context.Context, requestID string, actorID string, reason string) (*Request, error)
	Get(ctx context.Context, requestID string) (*Request, error)
	List(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]Request, error)
}

type RequestServiceImpl struct {
	DB           database.TxRunner
	Repo         RequestRepository
	EventRepo    audit.EventRepository
	Resolver     chain.Resolver
	EmployeeRepo employee.EmployeeRepository
	Notifier     Notifier
	Clock        clock.Clock
	Logger       *zap.Logger
}

func NewRequestService(
	db database.TxRunner,
	repo RequestRepository,
	eventRepo audit.EventRepository,
	resolver chain.Resolver,
	employeeRepo employee.EmployeeRepository,
	notifier Notifier,
	clk clock.Clock,
	logger *zap.Logger,
) RequestService {
	return &RequestServiceImpl{
		DB:           db,
		Repo:         repo,
		EventRepo:    eventRepo,
		Resolver:     resolver,
		EmployeeRepo: employeeRepo,
		Notifier:     notifier,
		Clock:        clk,
		Logger:       logger,
	}
}

func (s *RequestServiceImpl) Submit(ctx context.Context, input SubmitInput, actorID string) (*Request, error) {
	if input.EmployeeID == "" {
		return nil, apperrors.Validationf("employee_id is required")
	}
	if !ValidType(input.RequestType) {
		return nil, apperrors.Validationf("unknown request type %q", input.RequestType)
	}

	emp, err := s.EmployeeRepo.GetByEmployeeID(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, apperrors.Validationf("employee %s is not in the directory", input.EmployeeID)
	}

	now := s.Clock.Now()
	resolved, err := s.Resolver.Resolve(ctx, input.EmployeeID, now)
	if err != nil {
		return nil, err
	}

	req := &Request{
		ID:          primitive.NewObjectID(),
		EmployeeID:  input.EmployeeID,
		RequestType: input.RequestType,
		Payload:     input.Payload,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	events := []audit.ApprovalEvent{{
		RequestID:  req.ID,
		Rank:       -1,
		ActorID:    actorID,
		Decision:   audit.DecisionSubmitted,
		OccurredAt: now,
	}}

	if len(resolved) == 0 {
		// No chain configured: no approval required, never stall.
		req.Status = StatusApproved
		req.CurrentRank = -1
		events = append(events, audit.ApprovalEvent{
			RequestID:  req.ID,
			Rank:       -1,
			ActorID:    "system",
			Decision:   audit.DecisionAutoApproved,
			OccurredAt: now,
		})
	} else {
		req.Status = StatusPending
		req.CurrentRank = resolved[0].Rank
	}

	err = s.DB.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.Repo.Insert(txCtx, req); err != nil {
			return err
		}
		for _, ev := range events {
			if err := s.EventRepo.Append(txCtx, ev); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, req, events[len(events)-1], resolved)
	return req, nil
}

func (s *RequestServiceImpl) Approve(ctx context.Context, requestID string, actorID string, comment string) (*Request, error) {
	return s.decide(ctx, requestID, actorID, comment, audit.DecisionApproved)
}

func (s *RequestServiceImpl) Reject(ctx context.Context, requestID string, actorID string, reason string) (*Request, error) {
	if reason == "" {
		return nil, apperrors.ErrReasonRequired
	}
	return s.decide(ctx, requestID, actorID, reason, audit.DecisionRejected)
}

// decide applies a rank decision: eligibility against the resolved chain at a
// single instant, then a guarded transition plus exactly one ledger event in
// the same transaction.
func (s *RequestServiceImpl) decide(ctx context.Context, requestID string, actorID string, note string, decision audit.Decision) (*Request, error) {
	req, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status.Terminal() {
		return nil, apperrors.ErrInvalidTransition
	}

	now := s.Clock.Now()
	resolved, err := s.Resolver.Resolve(ctx, req.EmployeeID, now)
	if err != nil {
		return nil, err
	}

	rank := EligibleAt(resolved, req.CurrentRank)
	if rank == nil {
		return nil, apperrors.ErrNotEligible
	}
	delegator, eligible := rank.DelegatorOf(actorID)
	if !eligible {
		return nil, apperrors.ErrNotEligible
	}

	var toStatus Status
	var toRank int
	switch decision {
	case audit.DecisionApproved:
		toStatus, toRank = NextOnApprove(resolved, req.CurrentRank)
	case audit.DecisionRejected:
		if !CanReject(req.Status) {
			return nil, apperrors.ErrInvalidTransition
		}
		toStatus, toRank = StatusRejected, req.CurrentRank
	default:
		return nil, apperrors.ErrInvalidTransition
	}

	event := audit.ApprovalEvent{
		RequestID:          req.ID,
		Rank:               req.CurrentRank,
		ActorID:            actorID,
		ActingAsDelegateOf: delegator,
		Decision:           decision,
		Reason:             note,
		OccurredAt:         now,
	}

	if err := s.applyTransition(ctx, req, toStatus, toRank, event); err != nil {
		return nil, err
	}

	s.notify(ctx, req, event, resolved)
	return req, nil
}

// Cancel is the administrator-only terminal transition, legal only from an
// already-approved request. The route guards the capability; chain membership
// is not required.
func (s *RequestServiceImpl) Cancel(ctx context.Context, requestID string, actorID string, reason string) (*Request, error) {
	if reason == "" {
		return nil, apperrors.ErrReasonRequired
	}

	req, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !CanCancel(req.Status) {
		return nil, apperrors.ErrInvalidTransition
	}

	now := s.Clock.Now()
	event := audit.ApprovalEvent{
		RequestID:  req.ID,
		Rank:       req.CurrentRank,
		ActorID:    actorID,
		Decision:   audit.DecisionCancelled,
		Reason:     reason,
		OccurredAt: now,
	}

	if err := s.applyTransition(ctx, req, StatusCancelled, req.CurrentRank, event); err != nil {
		return nil, err
	}

	s.notify(ctx, req, event, nil)
	return req, nil
}

func (s *RequestServiceImpl) applyTransition(ctx context.Context, req *Request, toStatus Status, toRank int, event audit.ApprovalEvent) error {
	fromStatus, fromRank := req.Status, req.CurrentRank
	err := s.DB.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.Repo.UpdateStateIfCurrent(txCtx, req.ID, fromStatus, fromRank, toStatus, toRank, event.OccurredAt); err != nil {
			return err
		}
		return s.EventRepo.Append(txCtx, event)
	})
	if err != nil {
		return err
	}

	req.Status = toStatus
	req.CurrentRank = toRank
	req.UpdatedAt = event.OccurredAt
	return nil
}

func (s *RequestServiceImpl) notify(ctx context.Context, req *Request, event audit.ApprovalEvent, resolved []chain.RankApprovers) {
	if s.Notifier == nil {
		return
	}

	var nextEligible []string
	if !req.Status.Terminal() {
		if rank := EligibleAt(resolved, req.CurrentRank); rank != nil {
			nextEligible = rank.Eligible
		}
	}

	// Best-effort by contract; the notifier logs its own failures.
	s.Notifier.TransitionRecorded(ctx, req, event, nextEligible)
}

func (s *RequestServiceImpl) Get(ctx context.Context, requestID string) (*Request, error) {
	return s.load(ctx, requestID)
}

func (s *RequestServiceImpl) List(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]Request, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 25
	}
	return s.Repo.List(ctx, filters, limit, (page-1)*limit)
}

func (s *RequestServiceImpl) load(ctx context.Context, requestID string) (*Request, error) {
	oid, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return nil, apperrors.Validationf("invalid request id %q", requestID)
	}
	req, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperrors.ErrNotFound
	}
	return req, nil
}
