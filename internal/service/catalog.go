package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Giuseppe84/vespera/internal/models"
)

// CatalogService is the read-only gateway to catalog records. The core never
// mutates lamps, components or parts; price changes made elsewhere do not
// affect already-snapshotted slots or orders.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) Lamp(id uint) (*models.Lamp, error) {
	var lamp models.Lamp
	if err := s.db.First(&lamp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("lamp not found")
		}
		return nil, err
	}
	return &lamp, nil
}

func (s *CatalogService) Component(id uint) (*models.Component, error) {
	var component models.Component
	if err := s.db.First(&component, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("component %d not found", id)
		}
		return nil, err
	}
	return &component, nil
}

func (s *CatalogService) ElectricalPart(id uint) (*models.ElectricalPart, error) {
	var part models.ElectricalPart
	if err := s.db.First(&part, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("electrical part %d not found", id)
		}
		return nil, err
	}
	return &part, nil
}

func (s *CatalogService) Variant(id uint) (*models.LampVariant, error) {
	var variant models.LampVariant
	if err := s.db.First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("variant not found")
		}
		return nil, err
	}
	return &variant, nil
}
