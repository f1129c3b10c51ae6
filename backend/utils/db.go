package utils

import (
	"fmt"

	"ceplatform/backend/config"
	"ceplatform/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate applies the full schema. Shared with the test setup, which runs
// it against an in-memory sqlite database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.LoginHistory{},
		&models.Course{},
		&models.Unit{},
		&models.Lesson{},
		&models.MediaAsset{},
		&models.SitePage{},
		&models.PageSection{},
		&models.SectionBlock{},
		&models.QuestionBank{},
		&models.BankQuestion{},
		&models.Enrollment{},
		&models.UnitProgress{},
		&models.LessonProgress{},
		&models.Purchase{},
		&models.Refund{},
		&models.AccountCredit{},
		&models.SystemSetting{},
		&models.EmailTemplate{},
		&models.UserRole{},
		&models.ActivityEvent{},
	)
}
