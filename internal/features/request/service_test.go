package request

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yahya12213/SiteManagement-sub007/internal/common/apperrors"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/audit"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/chain"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/employee"
	"github.com/yahya12213/SiteManagement-sub007/pkg/clock"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRequestRepo struct {
	store map[primitive.ObjectID]*Request

	// afterGet runs once after the next GetByID, so tests can slip in a
	// concurrent transition between load and the guarded update.
	afterGet func()
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{store: map[primitive.ObjectID]*Request{}}
}

func (f *fakeRequestRepo) Insert(ctx context.Context, req *Request) error {
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	cp := *req
	f.store[req.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*Request, error) {
	stored, ok := f.store[id]
	if !ok {
		return nil, nil
	}
	cp := *stored
	if f.afterGet != nil {
		hook := f.afterGet
		f.afterGet = nil
		hook()
	}
	return &cp, nil
}

func (f *fakeRequestRepo) List(ctx context.Context, filters map[string]interface{}, limit, offset int64) ([]Request, error) {
	var out []Request
	for _, r := range f.store {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRequestRepo) UpdateStateIfCurrent(ctx context.Context, id primitive.ObjectID, fromStatus Status, fromRank int, toStatus Status, toRank int, at time.Time) error {
	stored, ok := f.store[id]
	if !ok || stored.Status != fromStatus || stored.CurrentRank != fromRank {
		return apperrors.ErrStaleState
	}
	stored.Status = toStatus
	stored.CurrentRank = toRank
	stored.UpdatedAt = at
	return nil
}

type fakeEventRepo struct {
	events []audit.ApprovalEvent
}

func (f *fakeEventRepo) Append(ctx context.Context, event audit.ApprovalEvent) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventRepo) ListByRequest(ctx context.Context, requestID primitive.ObjectID) ([]audit.ApprovalEvent, error) {
	var out []audit.ApprovalEvent
	for _, e := range f.events {
		if e.RequestID == requestID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) List(ctx context.Context, filters map[string]interface{}, limit, offset int64) ([]audit.ApprovalEvent, error) {
	return f.events, nil
}

// stubResolver returns whatever chain the test installs; swapping the chain
// mid-test models hierarchy edits while a request is in flight.
type stubResolver struct {
	resolved []chain.RankApprovers
}

func (s *stubResolver) Resolve(ctx context.Context, employeeID string, asOf time.Time) ([]chain.RankApprovers, error) {
	return s.resolved, nil
}

type fakeEmployeeRepo struct {
	known map[string]bool
}

func (f *fakeEmployeeRepo) Upsert(ctx context.Context, emp employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*employee.Employee, error) {
	if !f.known[employeeID] {
		return nil, nil
	}
	return &employee.Employee{EmployeeID: employeeID, Active: true}, nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) SetDirectManager(ctx context.Context, employeeID string, managerID *string) error {
	return nil
}

type notifierCall struct {
	status       Status
	decision     audit.Decision
	nextEligible []string
}

type recordingNotifier struct {
	calls []notifierCall
}

func (r *recordingNotifier) TransitionRecorded(ctx context.Context, req *Request, event audit.ApprovalEvent, nextEligible []string) {
	r.calls = append(r.calls, notifierCall{status: req.Status, decision: event.Decision, nextEligible: nextEligible})
}

type testEnv struct {
	service  *RequestServiceImpl
	repo     *fakeRequestRepo
	events   *fakeEventRepo
	resolver *stubResolver
	notifier *recordingNotifier
	clock    *clock.Fake
}

func newTestEnv(resolved []chain.RankApprovers) *testEnv {
	env := &testEnv{
		repo:     newFakeRequestRepo(),
		events:   &fakeEventRepo{},
		resolver: &stubResolver{resolved: resolved},
		notifier: &recordingNotifier{},
		clock:    clock.NewFake(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)),
	}
	env.service = &RequestServiceImpl{
		DB:           fakeTxRunner{},
		Repo:         env.repo,
		EventRepo:    env.events,
		Resolver:     env.resolver,
		EmployeeRepo: &fakeEmployeeRepo{known: map[string]bool{"E1": true}},
		Notifier:     env.notifier,
		Clock:        env.clock,
		Logger:       zap.NewNop(),
	}
	return env
}

// twoLevelChain is the common fixture: M1 at rank 0 with delegate D1, M2 at
// rank 1.
func twoLevelChain() []chain.RankApprovers {
	return []chain.RankApprovers{
		{Rank: 0, ManagerID: "M1", Eligible: []string{"M1", "D1"}},
		{Rank: 1, ManagerID: "M2", Eligible: []string{"M2"}},
	}
}

func TestSubmitValidation(t *testing.T) {
	env := newTestEnv(twoLevelChain())
	ctx := context.Background()

	tests := []struct {
		name  string
		input SubmitInput
	}{
		{"Missing Employee", SubmitInput{RequestType: TypeLeave}},
		{"Unknown Type", SubmitInput{EmployeeID: "E1", RequestType: "vacation"}},
		{"Employee Not In Directory", SubmitInput{EmployeeID: "ghost", RequestType: TypeLeave}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.service.Submit(ctx, tt.input, "E1")
			if !apperrors.IsValidation(err) {
				t.Errorf("Submit() error = %v, want validation error", err)
			}
		})
	}
}

func TestSubmitStartsAtLowestRank(t *testing.T) {
	env := newTestEnv(twoLevelChain())

	req, err := env.service.Submit(context.Background(), SubmitInput{
		EmployeeID:  "E1",
		RequestType: TypeLeave,
		Payload:     map[string]interface{}{"days": 3},
	}, "E1")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if req.Status != StatusPending || req.CurrentRank != 0 {
		t.Errorf("submitted request = %s rank %d, want pending rank 0", req.Status, req.CurrentRank)
	}

	events, _ := env.events.ListByRequest(context.Background(), req.ID)
	if len(events) != 1 || events[0].Decision != audit.DecisionSubmitted {
		t.Fatalf("ledger = %+v, want a single submitted event", events)
	}

	if len(env.notifier.calls) != 1 {
		t.Fatalf("notifier calls = %d, want 1", len(env.notifier.calls))
	}
	call := env.notifier.calls[0]
	if len(call.nextEligible) != 2 || call.nextEligible[0] != "M1" {
		t.Errorf("next eligible = %v, want rank-0 approvers", call.nextEligible)
	}
}

func TestSubmitWithoutChainAutoApproves(t *testing.T) {
	env := newTestEnv(nil)

	req, err := env.service.Submit(context.Background(), SubmitInput{
		EmployeeID:  "E1",
		RequestType: TypeOvertime,
	}, "E1")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if req.Status != StatusApproved {
		t.Errorf("status = %s, want approved", req.Status)
	}

	events, _ := env.events.ListByRequest(context.Background(), req.ID)
	if len(events) != 2 {
		t.Fatalf("ledger has %d events, want submitted plus auto_approved", len(events))
	}
	if events[1].Decision != audit.DecisionAutoApproved || events[1].ActorID != "system" {
		t.Errorf("auto approval event = %+v", events[1])
	}
}

func TestApprovalEscalatesThenFinalizes(t *testing.T) {
	env := newTestEnv(twoLevelChain())
	ctx := context.Background()

	req, err := env.service.Submit(ctx, SubmitInput{EmployeeID: "E1", RequestType: TypeLeave}, "E1")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	req, err = env.service.Approve(ctx, req.ID.Hex(), "M1", "ok by me")
	if err != nil {
		t.Fatalf("first Approve() error = %v", err)
	}
	if req.Status != StageStatus(1) || req.CurrentRank != 1 {
		t.Errorf("after first approval: %s rank %d, want approved_n1 rank 1", req.Status, req.CurrentRank)
	}

	req, err = env.service.Approve(ctx, req.ID.Hex(), "M2", "")
	if err != nil {
		t.Fatalf("final Approve() error = %v", err)
	}
	if req.Status != StatusApproved {
		t.Errorf("after final approval: %s, want approved", req.Status)
	}

	events, _ := env.events.ListByRequest(ctx, req.ID)
	if len(events) != 3 {
		t.Fatalf("ledger has %d events, want 3", len(events))
	}
	if events[1].Rank != 0 || events[1].ActorID != "M1" || events[1].ActingAsDelegateOf != "" {
		t.Errorf("rank-0 event = %+v, want M1 acting directly", events[1])
	}
	if events[2].Rank != 1 || events[2].ActorID != "M2" {
		t.Errorf("rank-1 event = %+v", events[2])
	}

	// Terminal requests accept no further decisions.
	if _, err := env.service.Approve(ctx, req.ID.Hex(), "M2", ""); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Errorf("approve after terminal: error = %v, want ErrInvalidTransition", err)
	}
}

func TestApproveByDelegateRecordsDelegator(t *testing.T) {
	env := newTestEnv(twoLevelChain())
	ctx := context.Background()

	req, _ := env.service.Submit(ctx, SubmitInput{EmployeeID: "E1", RequestType: TypeLeave}, "E1")

	req, err := env.service.Approve(ctx, req.ID.Hex(), "D1", "covering for M1")
	if err != nil {
		t.Fatalf("Approve() by delegate error = %v", err)
	}
	if req.Status != StageStatus(1) {
		t.Errorf("status = %s, want approved_n1", req.Status)
	}

	events, _ := env.events.ListByRequest(ctx, req.ID)
	last := events[len(events)-1]
	if last.ActorID != "D1" || last.ActingAsDelegateOf != "M1" {
		t.Errorf("delegate event = %+v, want actor D1 for delegator M1", last)
	}
}

func TestApproveNotEligible(t *testing.T) {
	env := newTestEnv(twoLevelChain())
	ctx := context.Background()

	req, _ := env.service.Submit(ctx, SubmitInput{EmployeeID: "E1", RequestType: TypeLeave}, "E1")

	// M2 holds rank 1, not the outstanding rank 0.
	if _, err := env.service.Approve(ctx, req.ID.Hex(), "M2", ""); !errors.Is(err, apperrors.ErrNotEligible) {
		t.Errorf("wrong-rank actor: error = %v, want ErrNotEligible", err)
	}
	if _, err := env.service.Approve(ctx, req.ID.Hex(), "stranger", ""); !errors.Is(err, apperrors.ErrNotEligible) {
		t.Errorf("stranger: error = %v, want ErrNotEligible", err)
	}
}

func TestApproveRankRemovedMidFlight(t *testing.T) {
	env := newTestEnv(twoLevelChain())
	ctx := context.Background()

	req, _ := env.service.Submit(ctx, SubmitInput{EmployeeID: "E1", RequestType: TypeLeave}, "E1")
	req, err := env.service.Approve(ctx, req.ID.Hex(), "M1", "")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	// The chain is edited so rank 1 no longer exists. Nobody is eligible for
	// the outstanding rank; the request stalls rather than advancing.
	env.resolver.resolved = []chain.RankApprovers{
		{Rank: 0, ManagerID: "M1", Eligible: []string{"M1"}},
	}
	if _, err := env.service.Approve(ctx, req.ID.Hex(), "M2", ""); !errors.Is(err, apperrors.ErrNotEligible) {
		t.Errorf("removed rank: error = %v, want ErrNotEligible", err)
	}
}

func TestApproveLosesRaceToConcurrentDecision(t *testing.T) {
	env := newTestEnv(twoLevelChain())
	ctx := context.Background()

	req, _ := env.service.Submit(ctx, SubmitInput{EmployeeID: "E1", RequestType: TypeLeave}, "E1")

	// D1 approves between M1's load and M1's guarded update.
	env.repo.afterGet = func() {
		stored := env.repo.store[req.ID]
		stored.Status = StageStatus(1)
		stored.CurrentRank = 1
	}

	if _, err := env.service.Approve(ctx, req.ID.Hex(), "M1", ""); !errors.Is(err, apperrors.ErrStaleState) {
		t.Fatalf("racing approval: error = %v, want ErrStaleState", err)
	}

	// The loser writes no ledger event.
	events, _ := env.events.ListByRequest(ctx, req.ID)
	if len(events) != 1 {
		t.Errorf("ledger has %d events after lost race, want the submit event only", len(events))
	}
}

func TestReject(t *testing.T) {
	env := newTestEnv(twoLevelChain())
	ctx := context.Background()

	req, _ := env.service.Submit(ctx, SubmitInput{EmployeeID: "E1", RequestType: TypeCorrection}, "E1")

	if _, err := env.service.Reject(ctx, req.ID.Hex(), "M1", ""); !errors.Is(err, apperrors.ErrReasonRequired) {
		t.Fatalf("reject without reason: error = %v, want ErrReasonRequired", err)
	}

	req, err := env.service.Reject(ctx, req.ID.Hex(), "M1", "dates overlap an audit freeze")
	if err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if req.Status != StatusRejected || req.CurrentRank != 0 {
		t.Errorf("rejected request = %s rank %d, want rejected at rank 0", req.Status, req.CurrentRank)
	}

	events, _ := env.events.ListByRequest(ctx, req.ID)
	last := events[len(events)-1]
	if last.Decision != audit.DecisionRejected || last.Reason == "" {
		t.Errorf("rejection event = %+v, want decision rejected with reason", last)
	}

	// Rejection is final at any level.
	if _, err := env.service.Approve(ctx, req.ID.Hex(), "M1", ""); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Errorf("approve after rejection: error = %v, want ErrInvalidTransition", err)
	}
}

func TestCancel(t *testing.T) {
	env := newTestEnv(twoLevelChain())
	ctx := context.Background()

	req, _ := env.service.Submit(ctx, SubmitInput{EmployeeID: "E1", RequestType: TypeLeave}, "E1")

	// Only an approved request can be cancelled.
	if _, err := env.service.Cancel(ctx, req.ID.Hex(), "admin", "policy breach"); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("cancel pending: error = %v, want ErrInvalidTransition", err)
	}

	req, _ = env.service.Approve(ctx, req.ID.Hex(), "M1", "")
	req, err := env.service.Approve(ctx, req.ID.Hex(), "M2", "")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	if _, err := env.service.Cancel(ctx, req.ID.Hex(), "admin", ""); !errors.Is(err, apperrors.ErrReasonRequired) {
		t.Fatalf("cancel without reason: error = %v, want ErrReasonRequired", err)
	}

	req, err = env.service.Cancel(ctx, req.ID.Hex(), "admin", "granted in error")
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if req.Status != StatusCancelled {
		t.Errorf("status = %s, want cancelled", req.Status)
	}

	events, _ := env.events.ListByRequest(ctx, req.ID)
	last := events[len(events)-1]
	if last.Decision != audit.DecisionCancelled || last.ActorID != "admin" {
		t.Errorf("cancel event = %+v", last)
	}

	if _, err := env.service.Cancel(ctx, req.ID.Hex(), "admin", "again"); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Errorf("cancel twice: error = %v, want ErrInvalidTransition", err)
	}
}

func TestGetMissingRequest(t *testing.T) {
	env := newTestEnv(nil)

	if _, err := env.service.Get(context.Background(), primitive.NewObjectID().Hex()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Get() missing: error = %v, want ErrNotFound", err)
	}
	if _, err := env.service.Get(context.Background(), "not-an-id"); !apperrors.IsValidation(err) {
		t.Errorf("Get() malformed id: error = %v, want validation error", err)
	}
}
