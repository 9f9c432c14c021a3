package main

import (
	"log"

	"github.com/IlluminoStudio/scribemate-sub000/internal/config"
	"github.com/IlluminoStudio/scribemate-sub000/internal/database"
	"github.com/IlluminoStudio/scribemate-sub000/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo coordinator with three carers for local development.
func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("Running migrations (just in case)...")
	database.DB.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.MessageRecipient{},
		&models.MessageAcknowledgment{},
		&models.CareVisit{},
		&models.AuditEvent{},
	)

	var existing int64
	database.DB.Model(&models.User{}).Where("username = ?", "coord1").Count(&existing)
	if existing > 0 {
		log.Println("Seed users already present, nothing to do")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	coordinator := models.User{
		FullName: "Cora Danvers",
		Username: "coord1",
		Role:     models.RoleCoordinator,
		Password: string(hash),
	}
	if err := database.DB.Create(&coordinator).Error; err != nil {
		log.Fatalf("Failed to create coordinator: %v", err)
	}

	carers := []models.User{
		{FullName: "Alice Nguyen", Username: "carer1"},
		{FullName: "Ben Okafor", Username: "carer2"},
		{FullName: "Dana Ruiz", Username: "carer3"},
	}
	for i := range carers {
		carers[i].Role = models.RoleCarer
		carers[i].CoordinatorID = &coordinator.ID
		carers[i].Password = string(hash)
		if err := database.DB.Create(&carers[i]).Error; err != nil {
			log.Fatalf("Failed to create carer %s: %v", carers[i].Username, err)
		}
	}

	log.Printf("Seeded coordinator %s with %d carers (password: password123)", coordinator.Username, len(carers))
}
