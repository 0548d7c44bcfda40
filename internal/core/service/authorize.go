package service

import (
	"context"
	"fmt"

	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
)

// Action is a mutating operation admitted or rejected by the Gate.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// policyRule is one row of the static policy table: the roles allowed to
// attempt the operation, and whether ownership of the target must also hold.
type policyRule struct {
	roles          map[string]struct{}
	needsOwnership bool
}

func roles(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

var anyRole = roles(domain.RoleAdmin, domain.RoleDev, domain.RoleGuest)

// policy is the single authoritative permission table, applied uniformly to
// every mutating route. Ownership of a user means being that user; ownership
// of a comment means authorship.
var policy = map[domain.EntityType]map[Action]policyRule{
	domain.EntityUser: {
		ActionUpdate: {roles: anyRole, needsOwnership: true},
		ActionDelete: {roles: anyRole, needsOwnership: true},
	},
	domain.EntityDeveloper: {
		ActionCreate: {roles: roles(domain.RoleAdmin)},
		ActionUpdate: {roles: anyRole, needsOwnership: true},
		ActionDelete: {roles: anyRole, needsOwnership: true},
	},
	domain.EntityGame: {
		// Game writes require a dev or admin role AND ownership of the
		// owning developer chain.
		ActionCreate: {roles: roles(domain.RoleAdmin, domain.RoleDev)},
		ActionUpdate: {roles: roles(domain.RoleAdmin, domain.RoleDev), needsOwnership: true},
		ActionDelete: {roles: roles(domain.RoleAdmin, domain.RoleDev), needsOwnership: true},
	},
	domain.EntityComment: {
		ActionCreate: {roles: anyRole},
		ActionUpdate: {roles: anyRole, needsOwnership: true},
		ActionDelete: {roles: anyRole, needsOwnership: true},
	},
}

// Gate composes the role policy with ownership resolution. It is a pure
// predicate: decisions are evaluated fresh on every request because
// ownership can change between requests.
type Gate struct {
	engine *CascadeEngine
}

func NewGate(engine *CascadeEngine) *Gate {
	return &Gate{engine: engine}
}

// AuthorizeWrite admits or rejects update/delete on an existing entity.
// A missing entity surfaces as its not-found error before any Forbidden
// verdict, so callers never leak existence through a 403.
func (g *Gate) AuthorizeWrite(ctx context.Context, p domain.Principal, action Action, t domain.EntityType, id string) error {
	rule, err := lookupRule(t, action)
	if err != nil {
		return err
	}

	if !rule.needsOwnership {
		if _, allowed := rule.roles[p.Role]; !allowed {
			return domain.ErrForbidden
		}
		return nil
	}

	// Ownership resolution runs first: NotFound takes precedence over
	// Forbidden.
	owns, err := g.engine.CheckOwnership(ctx, p, t, id)
	if err != nil {
		return err
	}
	if _, allowed := rule.roles[p.Role]; !allowed {
		return domain.ErrForbidden
	}
	if !owns {
		return domain.ErrForbidden
	}
	return nil
}

// AuthorizeCreate admits or rejects creation of a new entity. For games the
// principal must additionally own the target developer, so ownerID carries
// the developer id; pass an empty ownerID for role-only checks.
func (g *Gate) AuthorizeCreate(ctx context.Context, p domain.Principal, t domain.EntityType, ownerID string) error {
	rule, err := lookupRule(t, ActionCreate)
	if err != nil {
		return err
	}
	if _, allowed := rule.roles[p.Role]; !allowed {
		return domain.ErrForbidden
	}
	if t == domain.EntityGame && ownerID != "" {
		owns, err := g.engine.CheckOwnership(ctx, p, domain.EntityDeveloper, ownerID)
		if err != nil {
			return err
		}
		if !owns {
			return domain.ErrForbidden
		}
	}
	return nil
}

// RequireAdmin guards privileged sub-operations (role changes, owner
// reassignment) independent of the base update permission.
func (g *Gate) RequireAdmin(p domain.Principal) error {
	if !p.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

func lookupRule(t domain.EntityType, action Action) (policyRule, error) {
	rule, ok := policy[t][action]
	if !ok {
		return policyRule{}, fmt.Errorf("%w: no policy for %s %s", domain.ErrIntegrity, action, t)
	}
	return rule, nil
}
