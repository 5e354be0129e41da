package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-bot/internal/config"
	"github.com/BruksfildServices01/barber-bot/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Service{},
		&models.Slot{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedServices(db)

	return db
}

// Catálogo base; criação idempotente.
func seedServices(db *gorm.DB) {
	for _, name := range []string{
		"Corte",
		"Barba",
		"Sobrancelha",
		"Corte + Barba",
	} {
		var svc models.Service
		if err := db.Where("name = ?", name).
			FirstOrCreate(&svc, models.Service{Name: name}).Error; err != nil {
			log.Fatalf("failed to seed services: %v", err)
		}
	}
}
