package services

import (
	"errors"

	"github.com/IlluminoStudio/scribemate-sub000/internal/database"
	"github.com/IlluminoStudio/scribemate-sub000/internal/models"
	"github.com/IlluminoStudio/scribemate-sub000/pkg/apperr"
	"gorm.io/gorm"
)

// CoordinatorFor returns the id of the coordinator the carer is
// currently assigned to.
func CoordinatorFor(carerID string) (string, error) {
	var carer models.User
	if err := database.DB.Select("id", "role", "coordinator_id").
		First(&carer, "id = ?", carerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound("Carer not found")
		}
		return "", apperr.Persistence("Failed to look up carer")
	}

	if carer.Role != models.RoleCarer || carer.CoordinatorID == nil {
		return "", apperr.NotFound("Carer not found")
	}
	return *carer.CoordinatorID, nil
}

// CarersFor returns the coordinator's current carer set. Queried on
// demand every time; message fan-out depends on this being the live
// association, not a cached one.
func CarersFor(coordinatorID string) ([]models.User, error) {
	var carers []models.User
	err := database.DB.
		Where("coordinator_id = ? AND role = ?", coordinatorID, models.RoleCarer).
		Order("full_name asc").
		Find(&carers).Error
	if err != nil {
		return nil, apperr.Persistence("Failed to look up carers")
	}
	return carers, nil
}

// IsAssociated reports whether the carer is currently assigned to the
// coordinator.
func IsAssociated(carerID, coordinatorID string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.User{}).
		Where("id = ? AND coordinator_id = ? AND role = ?", carerID, coordinatorID, models.RoleCarer).
		Count(&count).Error
	if err != nil {
		return false, apperr.Persistence("Failed to check association")
	}
	return count > 0, nil
}
