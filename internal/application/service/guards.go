package service

import (
	"context"
	"fmt"

	"github.com/rbcaldoza/docflows/internal/application/port"
	"github.com/rbcaldoza/docflows/internal/domain/entity"
)

// requireRequesterOrAdmin passes when the actor is the document's original
// requester or holds the admin role
func requireRequesterOrAdmin(ctx context.Context, authority port.AuthorityChecker, requesterID, actorID string) error {
	if actorID == requesterID {
		return nil
	}
	isAdmin, err := authority.ActorHasRole(ctx, actorID, entity.RoleAdmin)
	if err != nil {
		return err
	}
	if !isAdmin {
		return fmt.Errorf("%w: actor %s is not the requester", ErrUnauthorized, actorID)
	}
	return nil
}

// requireLevel passes when the actor holds approver authority at the given
// level for the department
func requireLevel(ctx context.Context, authority port.AuthorityChecker, actorID, departmentID string, level int) error {
	ok, err := authority.ActorHasLevel(ctx, actorID, departmentID, level)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: actor %s lacks approver authority at level %d", ErrUnauthorized, actorID, level)
	}
	return nil
}

// requireFinanceOrAdmin passes when the actor is finance staff or an admin
func requireFinanceOrAdmin(ctx context.Context, authority port.AuthorityChecker, actorID string) error {
	for _, role := range []string{entity.RoleFinance, entity.RoleAdmin} {
		ok, err := authority.ActorHasRole(ctx, actorID, role)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return fmt.Errorf("%w: actor %s requires finance authority", ErrUnauthorized, actorID)
}

// requireAdmin passes only for admins
func requireAdmin(ctx context.Context, authority port.AuthorityChecker, actorID string) error {
	ok, err := authority.ActorHasRole(ctx, actorID, entity.RoleAdmin)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: actor %s requires admin authority", ErrUnauthorized, actorID)
	}
	return nil
}
