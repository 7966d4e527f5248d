package importer

import (
	"errors"

	"salestrack-backend/internal/models"

	"gorm.io/gorm"
)

// gormStore backs the import policies with the shared database handle.
type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (g *gormStore) ReplaceProducts(batch []models.Product) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}
		return tx.CreateInBatches(batch, 200).Error
	})
}

func (g *gormStore) InsertSale(s *models.Sale) error {
	return g.db.Create(s).Error
}

func (g *gormStore) LeaveExists(salesmanID, fromDate string) (bool, error) {
	var leave models.Leave
	err := g.db.Where("salesman_id = ? AND from_date = ?", salesmanID, fromDate).First(&leave).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (g *gormStore) InsertLeave(l *models.Leave) error {
	return g.db.Create(l).Error
}

func (g *gormStore) UsernameTaken(username string) (bool, error) {
	var count int64
	err := g.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (g *gormStore) SalesmanIDTaken(salesmanID string) (bool, error) {
	var count int64
	err := g.db.Model(&models.User{}).Where("salesman_id = ?", salesmanID).Count(&count).Error
	return count > 0, err
}

func (g *gormStore) InsertUser(u *models.User) error {
	return g.db.Create(u).Error
}
