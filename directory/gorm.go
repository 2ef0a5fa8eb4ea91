package directory

import (
	"gorm.io/gorm"

	"github.com/cocob23/jobexpo-backend/models"
)

type gormSearcher struct {
	db *gorm.DB
}

// NewGormSearcher arma el Searcher de producción sobre la tabla companies.
func NewGormSearcher(db *gorm.DB) Searcher {
	return &gormSearcher{db: db}
}

func (g *gormSearcher) Search(term string, limit int) ([]models.Company, error) {
	like := "%" + term + "%"
	var rows []models.Company
	err := g.db.
		Where("name ILIKE ? OR alias ILIKE ?", like, like).
		Order("name ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (g *gormSearcher) All() ([]models.Company, error) {
	var rows []models.Company
	err := g.db.Order("name ASC").Find(&rows).Error
	return rows, err
}
