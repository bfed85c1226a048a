package service

import (
	"context"
	"time"

	"github.com/farmlog/farm-records/internal/core/domain"
	"github.com/farmlog/farm-records/internal/core/ports"
)

// OwnershipCheck describes one protected action on a resource.
type OwnershipCheck struct {
	Resource    string
	Action      string
	ResourceID  int64
	Lookup      ports.OwnerLookup
	AdminBypass bool
	Timeout     time.Duration
}

// CheckOwnership allows the call when the principal owns the resource.
//
// A missing resource is reported as the lookup's not-found error before any
// comparison is made, so callers see 404 rather than 403 for ids that do not
// exist.
func CheckOwnership(ctx context.Context, p *domain.Principal, check OwnershipCheck) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}

	timeout := check.Timeout
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	lookupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ownerID, err := check.Lookup(lookupCtx, check.ResourceID)
	if err != nil {
		return err
	}

	if p.ID == ownerID {
		return nil
	}
	if check.AdminBypass && p.IsAdmin() {
		return nil
	}
	return &domain.AccessDeniedError{
		Resource:    check.Resource,
		Action:      check.Action,
		ResourceID:  check.ResourceID,
		PrincipalID: p.ID,
		OwnerID:     ownerID,
	}
}

// RequireRole allows the call when the principal's role equals role.
func RequireRole(p *domain.Principal, role domain.Role) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	if p.Role != role {
		return &domain.AccessDeniedError{
			Resource:    "route",
			Action:      "require_role",
			PrincipalID: p.ID,
			Reason:      "role " + string(p.Role) + " is not " + string(role),
		}
	}
	return nil
}
