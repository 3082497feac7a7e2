package services

import (
	"errors"

	"frontdesk-backend/engine"
	"frontdesk-backend/models"

	"gorm.io/gorm"
)

// CatalogService manages the additional-service catalog. Price edits here
// never touch existing charges: those carry their own snapshot.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

func (s *CatalogService) Create(svc models.Service) (models.Service, error) {
	if svc.BasePrice < 0 {
		return svc, engine.ErrNegativeAmount
	}
	svc.Active = true
	err := s.DB.Create(&svc).Error
	return svc, err
}

func (s *CatalogService) GetAll(activeOnly bool) ([]models.Service, error) {
	var list []models.Service
	q := s.DB.Order("service_type ASC, service_name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&list).Error
	return list, err
}

func (s *CatalogService) GetByID(id uint) (models.Service, error) {
	var svc models.Service
	err := s.DB.First(&svc, id).Error
	return svc, err
}

func (s *CatalogService) Update(svc models.Service) (models.Service, error) {
	if svc.BasePrice < 0 {
		return svc, engine.ErrNegativeAmount
	}

	var existing models.Service
	if err := s.DB.First(&existing, svc.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return svc, errors.New("service_not_found")
		}
		return svc, err
	}

	err := s.DB.Model(&existing).Updates(map[string]interface{}{
		"service_name": svc.ServiceName,
		"service_type": svc.ServiceType,
		"base_price":   svc.BasePrice,
		"per_item":     svc.PerItem,
		"active":       svc.Active,
	}).Error
	if err != nil {
		return svc, err
	}
	return s.GetByID(svc.ID)
}

func (s *CatalogService) Delete(id uint) error {
	res := s.DB.Delete(&models.Service{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
