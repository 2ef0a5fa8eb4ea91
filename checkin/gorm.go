package checkin

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cocob23/jobexpo-backend/models"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore arma el Store de producción sobre Postgres.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (g *gormStore) FindCompany(id uint) (models.Company, bool, error) {
	var c models.Company
	err := g.db.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Company{}, false, nil
	}
	if err != nil {
		return models.Company{}, false, err
	}
	return c, true, nil
}

func (g *gormStore) HasOpen(ownerID uint) (bool, error) {
	var n int64
	err := g.db.Model(&models.Llegada{}).
		Where("owner_id = ? AND check_out_time IS NULL", ownerID).
		Count(&n).Error
	return n > 0, err
}

func (g *gormStore) Insert(l *models.Llegada) error {
	return g.db.Create(l).Error
}

func (g *gormStore) LatestOpen(ownerID uint) (models.Llegada, bool, error) {
	var l models.Llegada
	err := g.db.
		Where("owner_id = ? AND check_out_time IS NULL", ownerID).
		Order("check_in_date DESC, check_in_time DESC").
		First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Llegada{}, false, nil
	}
	if err != nil {
		return models.Llegada{}, false, err
	}
	return l, true, nil
}

func (g *gormStore) CloseOpen(id uuid.UUID, ownerID uint, date, clock string, fix Fix) (int64, error) {
	tx := g.db.Model(&models.Llegada{}).
		Where("id = ? AND owner_id = ? AND check_out_time IS NULL", id, ownerID).
		Updates(map[string]any{
			"check_out_date": date,
			"check_out_time": clock,
			"check_out_lat":  fix.Lat,
			"check_out_lng":  fix.Lng,
		})
	return tx.RowsAffected, tx.Error
}

func (g *gormStore) Get(id uuid.UUID) (models.Llegada, bool, error) {
	var l models.Llegada
	err := g.db.First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Llegada{}, false, nil
	}
	if err != nil {
		return models.Llegada{}, false, err
	}
	return l, true, nil
}
