package services

import (
	"github.com/IlluminoStudio/scribemate-sub000/internal/models"
	"github.com/IlluminoStudio/scribemate-sub000/pkg/apperr"
)

// Authorization reason codes, stable across the API surface.
const (
	ReasonNotCoordinator = "not_coordinator"
	ReasonNotCarer       = "not_carer"
	ReasonNotAssociated  = "not_associated"
)

// RequireCoordinator rejects any viewer that is not a coordinator.
// The switch is exhaustive over the closed Role set so a new role
// forces a review here.
func RequireCoordinator(viewer *models.User) error {
	switch viewer.Role {
	case models.RoleCoordinator:
		return nil
	case models.RoleCarer, models.RoleSystem:
		return apperr.Authorization(ReasonNotCoordinator)
	default:
		return apperr.Authorization(ReasonNotCoordinator)
	}
}

// RequireCarer rejects any viewer that is not a carer.
func RequireCarer(viewer *models.User) error {
	switch viewer.Role {
	case models.RoleCarer:
		return nil
	case models.RoleCoordinator, models.RoleSystem:
		return apperr.Authorization(ReasonNotCarer)
	default:
		return apperr.Authorization(ReasonNotCarer)
	}
}

// RequireAssociation fails unless the carer is currently assigned to
// the coordinator.
func RequireAssociation(carerID, coordinatorID string) error {
	ok, err := IsAssociated(carerID, coordinatorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Authorization(ReasonNotAssociated)
	}
	return nil
}
