package delegation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yahya12213/SiteManagement-sub007/internal/common/apperrors"
	"github.com/yahya12213/SiteManagement-sub007/pkg/clock"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeDelegationRepo struct {
	store map[string]*Delegation
}

func newFakeDelegationRepo() *fakeDelegationRepo {
	return &fakeDelegationRepo{store: map[string]*Delegation{}}
}

func (f *fakeDelegationRepo) Create(ctx context.Context, d Delegation) (primitive.ObjectID, error) {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	f.store[d.ID.Hex()] = &d
	return d.ID, nil
}

func (f *fakeDelegationRepo) GetByID(ctx context.Context, id string) (*Delegation, error) {
	d, ok := f.store[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDelegationRepo) ListByDelegator(ctx context.Context, delegatorID string) ([]Delegation, error) {
	var out []Delegation
	for _, d := range f.store {
		if d.DelegatorID == delegatorID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDelegationRepo) ListCovering(ctx context.Context, delegatorID string, asOf time.Time) ([]Delegation, error) {
	var out []Delegation
	for _, d := range f.store {
		if d.DelegatorID != delegatorID {
			continue
		}
		if !asOf.Before(d.ValidFrom) && asOf.Before(d.ValidTo) {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDelegationRepo) CloseWindow(ctx context.Context, id string, at time.Time, revokedBy string) error {
	d, ok := f.store[id]
	if !ok {
		return errors.New("not found")
	}
	d.ValidTo = at
	d.RevokedAt = &at
	d.RevokedBy = revokedBy
	return nil
}

func (f *fakeDelegationRepo) MarkExpired(ctx context.Context, before time.Time) (int64, error) {
	var n int64
	for _, d := range f.store {
		if !d.Expired && !d.ValidTo.After(before) {
			d.Expired = true
			n++
		}
	}
	return n, nil
}

var baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestService(now time.Time) (*DelegationServiceImpl, *fakeDelegationRepo, *clock.Fake) {
	repo := newFakeDelegationRepo()
	clk := clock.NewFake(now)
	return &DelegationServiceImpl{Repo: repo, Clock: clk}, repo, clk
}

func TestGrantValidation(t *testing.T) {
	negRank := -1
	tests := []struct {
		name    string
		input   GrantInput
		wantErr bool
	}{
		{
			name: "Valid Grant",
			input: GrantInput{
				DelegatorID: "M1",
				DelegateID:  "M2",
				ValidFrom:   baseTime,
				ValidTo:     baseTime.Add(72 * time.Hour),
			},
		},
		{
			name: "Self Delegation",
			input: GrantInput{
				DelegatorID: "M1",
				DelegateID:  "M1",
				ValidFrom:   baseTime,
				ValidTo:     baseTime.Add(time.Hour),
			},
			wantErr: true,
		},
		{
			name: "Inverted Window",
			input: GrantInput{
				DelegatorID: "M1",
				DelegateID:  "M2",
				ValidFrom:   baseTime.Add(time.Hour),
				ValidTo:     baseTime,
			},
			wantErr: true,
		},
		{
			name: "Zero Length Window",
			input: GrantInput{
				DelegatorID: "M1",
				DelegateID:  "M2",
				ValidFrom:   baseTime,
				ValidTo:     baseTime,
			},
			wantErr: true,
		},
		{
			name: "Negative Scope Rank",
			input: GrantInput{
				DelegatorID: "M1",
				DelegateID:  "M2",
				ValidFrom:   baseTime,
				ValidTo:     baseTime.Add(time.Hour),
				ScopeRank:   &negRank,
			},
			wantErr: true,
		},
		{
			name: "Missing Delegate",
			input: GrantInput{
				DelegatorID: "M1",
				ValidFrom:   baseTime,
				ValidTo:     baseTime.Add(time.Hour),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService(baseTime)
			got, err := service.Grant(context.Background(), tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Grant() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !apperrors.IsValidation(err) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if got.ID.IsZero() {
				t.Errorf("Grant() did not assign an id")
			}
		})
	}
}

func TestActiveDelegatesForWindows(t *testing.T) {
	service, _, _ := newTestService(baseTime)
	ctx := context.Background()

	_, err := service.Grant(ctx, GrantInput{
		DelegatorID: "M1",
		DelegateID:  "M2",
		ValidFrom:   baseTime,
		ValidTo:     baseTime.Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Grant() error = %v", err)
	}

	// Before the window opens only the principal is eligible.
	eligible, err := service.ActiveDelegatesFor(ctx, "M1", 0, baseTime.Add(-time.Minute))
	if err != nil {
		t.Fatalf("ActiveDelegatesFor() error = %v", err)
	}
	if len(eligible) != 1 || eligible[0] != "M1" {
		t.Errorf("before window: eligible = %v, want [M1]", eligible)
	}

	// Inclusive start.
	eligible, _ = service.ActiveDelegatesFor(ctx, "M1", 0, baseTime)
	if len(eligible) != 2 {
		t.Errorf("at valid_from: eligible = %v, want principal and delegate", eligible)
	}

	// Exclusive end.
	eligible, _ = service.ActiveDelegatesFor(ctx, "M1", 0, baseTime.Add(48*time.Hour))
	if len(eligible) != 1 {
		t.Errorf("at valid_to: eligible = %v, want principal only", eligible)
	}
}

func TestActiveDelegatesForScopeAndUnion(t *testing.T) {
	service, _, _ := newTestService(baseTime)
	ctx := context.Background()
	rankOne := 1

	grants := []GrantInput{
		{DelegatorID: "M1", DelegateID: "M2", ValidFrom: baseTime, ValidTo: baseTime.Add(time.Hour)},
		{DelegatorID: "M1", DelegateID: "M3", ValidFrom: baseTime, ValidTo: baseTime.Add(time.Hour), ScopeRank: &rankOne},
		// Overlapping duplicate grant to the same delegate.
		{DelegatorID: "M1", DelegateID: "M2", ValidFrom: baseTime, ValidTo: baseTime.Add(2 * time.Hour)},
	}
	for _, g := range grants {
		if _, err := service.Grant(ctx, g); err != nil {
			t.Fatalf("Grant() error = %v", err)
		}
	}

	asOf := baseTime.Add(30 * time.Minute)

	// Rank 0: the rank-scoped grant to M3 does not apply, and the duplicate
	// grants to M2 union into one entry.
	eligible, err := service.ActiveDelegatesFor(ctx, "M1", 0, asOf)
	if err != nil {
		t.Fatalf("ActiveDelegatesFor() error = %v", err)
	}
	if len(eligible) != 2 || eligible[0] != "M1" {
		t.Errorf("rank 0: eligible = %v, want [M1 M2]", eligible)
	}

	// Rank 1: all three.
	eligible, _ = service.ActiveDelegatesFor(ctx, "M1", 1, asOf)
	if len(eligible) != 3 {
		t.Errorf("rank 1: eligible = %v, want principal plus both delegates", eligible)
	}
}

func TestRevoke(t *testing.T) {
	service, repo, clk := newTestService(baseTime)
	ctx := context.Background()

	d, err := service.Grant(ctx, GrantInput{
		DelegatorID: "M1",
		DelegateID:  "M2",
		ValidFrom:   baseTime,
		ValidTo:     baseTime.Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Grant() error = %v", err)
	}

	// Only the delegator or an admin may revoke.
	if err := service.Revoke(ctx, d.ID.Hex(), "M2", false); !errors.Is(err, apperrors.ErrAuthorizationDenied) {
		t.Errorf("Revoke by stranger: error = %v, want ErrAuthorizationDenied", err)
	}

	clk.Advance(24 * time.Hour)
	if err := service.Revoke(ctx, d.ID.Hex(), "M1", false); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}

	// Revocation closes the window at the revoke instant.
	stored := repo.store[d.ID.Hex()]
	if !stored.ValidTo.Equal(baseTime.Add(24 * time.Hour)) {
		t.Errorf("valid_to = %v, want the revoke instant", stored.ValidTo)
	}
	if stored.RevokedAt == nil || stored.RevokedBy != "M1" {
		t.Errorf("revocation metadata not recorded: %+v", stored)
	}

	eligible, _ := service.ActiveDelegatesFor(ctx, "M1", 0, clk.Now())
	if len(eligible) != 1 {
		t.Errorf("after revoke: eligible = %v, want principal only", eligible)
	}

	if err := service.Revoke(ctx, primitive.NewObjectID().Hex(), "M1", false); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Revoke missing: error = %v, want ErrNotFound", err)
	}
}

func TestSweeperFlagsOnlyFullyPastWindows(t *testing.T) {
	repo := newFakeDelegationRepo()
	past := Delegation{DelegatorID: "M1", DelegateID: "M2", ValidFrom: baseTime.Add(-48 * time.Hour), ValidTo: baseTime.Add(-24 * time.Hour)}
	open := Delegation{DelegatorID: "M1", DelegateID: "M3", ValidFrom: baseTime.Add(-time.Hour), ValidTo: baseTime.Add(time.Hour)}
	ctx := context.Background()
	pastID, err := repo.Create(ctx, past)
	if err != nil {
		t.Fatal(err)
	}
	openID, err := repo.Create(ctx, open)
	if err != nil {
		t.Fatal(err)
	}

	sweeper := NewSweeper(repo, clock.NewFake(baseTime), zap.NewNop())
	sweeper.Run()

	if !repo.store[pastID.Hex()].Expired {
		t.Errorf("fully past window should be flagged expired")
	}
	if repo.store[openID.Hex()].Expired {
		t.Errorf("open window must not be flagged")
	}
}
