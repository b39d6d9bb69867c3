package hierarchy

import (
	"context"
	"testing"

	"github.com/yahya12213/SiteManagement-sub007/internal/common/apperrors"
	"github.com/yahya12213/SiteManagement-sub007/internal/features/employee"
)

type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeHierarchyRepo struct {
	chains map[string][]ManagerAssignment
}

func newFakeHierarchyRepo() *fakeHierarchyRepo {
	return &fakeHierarchyRepo{chains: map[string][]ManagerAssignment{}}
}

func (f *fakeHierarchyRepo) GetChain(ctx context.Context, employeeID string) ([]ManagerAssignment, error) {
	return f.chains[employeeID], nil
}

func (f *fakeHierarchyRepo) ReplaceChain(ctx context.Context, employeeID string, assignments []ManagerAssignment) error {
	f.chains[employeeID] = assignments
	return nil
}

type fakeEmployeeRepoForChain struct {
	directManager map[string]*string
}

func (f *fakeEmployeeRepoForChain) Upsert(ctx context.Context, emp employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepoForChain) GetByEmployeeID(ctx context.Context, employeeID string) (*employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepoForChain) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepoForChain) SetDirectManager(ctx context.Context, employeeID string, managerID *string) error {
	if f.directManager == nil {
		f.directManager = map[string]*string{}
	}
	f.directManager[employeeID] = managerID
	return nil
}

func TestValidateChain(t *testing.T) {
	tests := []struct {
		name    string
		inputs  []AssignmentInput
		wantErr bool
	}{
		{
			name: "Valid Two Levels",
			inputs: []AssignmentInput{
				{ManagerID: "M1", Rank: 0},
				{ManagerID: "M2", Rank: 1},
			},
		},
		{
			name: "Valid Non Contiguous Ranks",
			inputs: []AssignmentInput{
				{ManagerID: "M1", Rank: 0},
				{ManagerID: "M2", Rank: 3},
			},
		},
		{
			name:   "Empty Chain Is Allowed",
			inputs: nil,
		},
		{
			name: "Duplicate Rank",
			inputs: []AssignmentInput{
				{ManagerID: "M1", Rank: 0},
				{ManagerID: "M2", Rank: 0},
			},
			wantErr: true,
		},
		{
			name: "Missing Rank Zero",
			inputs: []AssignmentInput{
				{ManagerID: "M1", Rank: 1},
				{ManagerID: "M2", Rank: 2},
			},
			wantErr: true,
		},
		{
			name: "Self As Approver",
			inputs: []AssignmentInput{
				{ManagerID: "E1", Rank: 0},
			},
			wantErr: true,
		},
		{
			name: "Negative Rank",
			inputs: []AssignmentInput{
				{ManagerID: "M1", Rank: -1},
			},
			wantErr: true,
		},
		{
			name: "Missing Manager",
			inputs: []AssignmentInput{
				{ManagerID: "", Rank: 0},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateChain("E1", tt.inputs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateChain() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !apperrors.IsValidation(err) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if len(got) != len(tt.inputs) {
				t.Errorf("validateChain() returned %d assignments, want %d", len(got), len(tt.inputs))
			}
		})
	}
}

func TestSetChainSyncsDirectManager(t *testing.T) {
	repo := newFakeHierarchyRepo()
	employees := &fakeEmployeeRepoForChain{}
	service := &HierarchyServiceImpl{
		DB:           fakeTxRunner{},
		Repo:         repo,
		EmployeeRepo: employees,
	}

	_, err := service.SetChain(context.Background(), "E1", ChainInput{
		Assignments: []AssignmentInput{
			{ManagerID: "M2", Rank: 1},
			{ManagerID: "M1", Rank: 0},
		},
	})
	if err != nil {
		t.Fatalf("SetChain() error = %v", err)
	}

	dm := employees.directManager["E1"]
	if dm == nil || *dm != "M1" {
		t.Errorf("direct manager = %v, want M1", dm)
	}

	// Clearing the chain clears the pointer.
	if _, err := service.SetChain(context.Background(), "E1", ChainInput{}); err != nil {
		t.Fatalf("SetChain(empty) error = %v", err)
	}
	if employees.directManager["E1"] != nil {
		t.Errorf("direct manager should be cleared when the chain is removed")
	}
}
