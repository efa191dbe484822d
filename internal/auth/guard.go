package auth

import (
	"lostlink/internal/errs"
	"lostlink/internal/models"
)

// Authorization policies. Pure checks, no side effects; callers map the
// sentinel errors to HTTP statuses at the boundary.

// RequireAdmin allows only verified administrators.
func RequireAdmin(actor *models.User) error {
	if actor == nil {
		return errs.ErrUnauthenticated
	}
	if !actor.IsAdmin || actor.VerificationStatus != models.VerificationVerified {
		return errs.ErrForbidden
	}
	return nil
}

// RequireOwnerOrAdmin allows the resource owner or any admin.
func RequireOwnerOrAdmin(actor *models.User, ownerID uint) error {
	if actor == nil {
		return errs.ErrUnauthenticated
	}
	if actor.ID != ownerID && !actor.IsAdmin {
		return errs.ErrForbidden
	}
	return nil
}

// RequireOwner allows only the resource owner, with no admin override.
func RequireOwner(actor *models.User, ownerID uint) error {
	if actor == nil {
		return errs.ErrUnauthenticated
	}
	if actor.ID != ownerID {
		return errs.ErrForbidden
	}
	return nil
}
