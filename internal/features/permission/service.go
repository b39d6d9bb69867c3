package permission

import (
	"context"
	"slices"

	"github.com/yahya12213/SiteManagement-sub007/internal/common/apperrors"
	"github.com/yahya12213/SiteManagement-sub007/pkg/utils"
)

type PermissionService interface {
	// Authorize returns ErrAuthorizationDenied unless one of the actor's roles
	// carries the operation.
	Authorize(ctx context.Context, claims *utils.UserClaims, operation string) error
	ListPermissions(ctx context.Context) ([]RolePermission, error)
	SetRoleOperations(ctx context.Context, role string, operations []string) error
}

type PermissionServiceImpl struct {
	Repo PermissionRepository
}

func NewPermissionService(repo PermissionRepository) PermissionService {
	return &PermissionServiceImpl{Repo: repo}
}

func (s *PermissionServiceImpl) Authorize(ctx context.Context, claims *utils.UserClaims, operation string) error {
	if claims == nil || len(claims.Roles) == 0 {
		return apperrors.ErrAuthorizationDenied
	}

	perms, err := s.Repo.FindByRoles(ctx, claims.Roles)
	if err != nil {
		return err
	}

	for _, p := range perms {
		if slices.Contains(p.Operations, operation) {
			return nil
		}
	}
	return apperrors.ErrAuthorizationDenied
}

func (s *PermissionServiceImpl) ListPermissions(ctx context.Context) ([]RolePermission, error) {
	return s.Repo.List(ctx)
}

func (s *PermissionServiceImpl) SetRoleOperations(ctx context.Context, role string, operations []string) error {
	if role == "" {
		return apperrors.Validationf("role is required")
	}
	known := []string{
		OpChainsManage, OpChainsRead,
		OpDelegationsManage, OpDelegationsRead,
		OpRequestsSubmit, OpRequestsDecide, OpRequestsCancel,
		OpAuditRead,
	}
	for _, op := range operations {
		if !slices.Contains(known, op) {
			return apperrors.Validationf("unknown operation %q", op)
		}
	}
	return s.Repo.Upsert(ctx, RolePermission{Role: role, Operations: operations})
}
