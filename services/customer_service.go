package services

import (
	"frontdesk-backend/models"

	"gorm.io/gorm"
)

type CustomerService struct {
	DB *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{DB: db}
}

func (s *CustomerService) Create(c models.Customer) (models.Customer, error) {
	err := s.DB.Create(&c).Error
	return c, err
}

func (s *CustomerService) GetAll() ([]models.Customer, error) {
	var list []models.Customer
	err := s.DB.Order("full_name ASC").Find(&list).Error
	return list, err
}

func (s *CustomerService) GetByID(id uint) (models.Customer, error) {
	var c models.Customer
	err := s.DB.First(&c, id).Error
	return c, err
}
