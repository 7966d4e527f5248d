package database

import (
	"log"
	"time"

	"salestrack-backend/internal/config"
	"salestrack-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// TranslateError maps the Postgres unique violation onto
	// gorm.ErrDuplicatedKey, which the leave handler relies on.
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Sale{},
		&models.Leave{},
		&models.PasswordReset{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	seedDefaultAdmin(cfg)
	sweepExpiredResets()

	log.Println("Database connected, migrations complete.")
}

// seedDefaultAdmin creates the initial admin account exactly once: it counts
// existing admins first, so restarts never double-seed.
func seedDefaultAdmin(cfg *config.Config) {
	var count int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	if cfg.AdminPassword == "" {
		log.Println("[WARN] No admin account exists and ADMIN_PASSWORD is not set, skipping admin seed.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Could not hash admin seed password: %v", err)
	}

	admin := models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		Name:         "Administrator",
		Role:         models.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Fatalf("Could not seed default admin: %v", err)
	}
	log.Printf("Seeded default admin account %q", cfg.AdminUsername)
}

func sweepExpiredResets() {
	res := DB.Where("expires_at < ?", time.Now()).Delete(&models.PasswordReset{})
	if res.Error != nil {
		log.Printf("Could not sweep expired password reset codes: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Removed %d expired password reset codes", res.RowsAffected)
	}
}
