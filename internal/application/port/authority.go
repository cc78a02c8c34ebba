package port

import "context"

// AuthorityChecker answers who may act on a document. It is an injected
// collaborator; the production implementation reads the users table.
type AuthorityChecker interface {
	// ActorHasLevel reports whether the actor holds approver authority at
	// the given level for the given department
	ActorHasLevel(ctx context.Context, actorID, departmentID string, level int) (bool, error)

	// ActorHasRole reports whether the actor holds the exact role
	// (REQUESTER, FINANCE, ADMIN)
	ActorHasRole(ctx context.Context, actorID, role string) (bool, error)
}
