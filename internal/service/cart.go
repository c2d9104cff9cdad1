package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Giuseppe84/vespera/internal/models"
)

type AddToCartInput struct {
	LampID          uint  `json:"lampId" binding:"required"`
	VariantID       *uint `json:"variantId"`
	ConfigurationID *uint `json:"configurationId"`
	Quantity        int   `json:"quantity" binding:"omitempty,min=1"`
}

type CartSummary struct {
	ItemCount int     `json:"itemCount"`
	Subtotal  float64 `json:"subtotal"`
}

type CartView struct {
	Items   []models.CartItem `json:"items"`
	Summary CartSummary       `json:"summary"`
}

// CartService manages a user's pending cart lines. Prices are resolved once
// at add time with precedence configuration > variant > lamp base price.
type CartService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewCartService(db *gorm.DB, catalog *CatalogService) *CartService {
	return &CartService{db: db, catalog: catalog}
}

// AddItem resolves the unit price for the referenced source and upserts a
// cart line: adding the same (lamp, variant, configuration) triple again
// increments the existing line's quantity.
func (s *CartService) AddItem(userID uint, in AddToCartInput) (*models.CartItem, error) {
	var unitPrice float64

	switch {
	case in.ConfigurationID != nil:
		var config models.LampConfiguration
		if err := s.db.First(&config, *in.ConfigurationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFound("configuration not found")
			}
			return nil, err
		}
		if config.UserID != userID {
			return nil, badRequest("configuration does not belong to this user")
		}
		unitPrice = config.TotalPrice
	case in.VariantID != nil:
		variant, err := s.catalog.Variant(*in.VariantID)
		if err != nil {
			return nil, err
		}
		if !variant.IsActive {
			return nil, notFound("variant not available")
		}
		if variant.StockQty < 1 {
			return nil, badRequest("variant out of stock")
		}
		unitPrice = variant.Price
	default:
		lamp, err := s.catalog.Lamp(in.LampID)
		if err != nil {
			return nil, err
		}
		if !lamp.IsActive {
			return nil, notFound("lamp not available")
		}
		unitPrice = lamp.BasePrice
	}

	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	query := s.db.Where("user_id = ? AND lamp_id = ?", userID, in.LampID)
	if in.VariantID != nil {
		query = query.Where("variant_id = ?", *in.VariantID)
	} else {
		query = query.Where("variant_id IS NULL")
	}
	if in.ConfigurationID != nil {
		query = query.Where("configuration_id = ?", *in.ConfigurationID)
	} else {
		query = query.Where("configuration_id IS NULL")
	}

	var existing models.CartItem
	err := query.First(&existing).Error
	if err == nil {
		newQty := existing.Quantity + qty
		if err := s.db.Model(&existing).Update("quantity", newQty).Error; err != nil {
			return nil, err
		}
		existing.Quantity = newQty
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := models.CartItem{
		UserID:          userID,
		LampID:          in.LampID,
		VariantID:       in.VariantID,
		ConfigurationID: in.ConfigurationID,
		Quantity:        qty,
		UnitPrice:       unitPrice,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetCart returns the cart lines with a summary. The subtotal is rounded to
// two decimals only here, at the response boundary.
func (s *CartService) GetCart(userID uint) (*CartView, error) {
	var items []models.CartItem
	err := s.db.Where("user_id = ?", userID).
		Preload("Lamp").
		Preload("Variant").
		Preload("Configuration").
		Preload("Configuration.Slots", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order asc") }).
		Order("added_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: items}
	for _, item := range items {
		view.Summary.ItemCount += item.Quantity
		view.Summary.Subtotal += item.UnitPrice * float64(item.Quantity)
	}
	view.Summary.Subtotal = round2(view.Summary.Subtotal)
	return view, nil
}

func (s *CartService) GetCount(userID uint) (int, error) {
	var count int
	err := s.db.Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *CartService) UpdateItem(itemID, userID uint, quantity int) (*models.CartItem, error) {
	item, err := s.findItem(itemID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(item).Update("quantity", quantity).Error; err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

func (s *CartService) RemoveItem(itemID, userID uint) error {
	item, err := s.findItem(itemID, userID)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}

func (s *CartService) ClearCart(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

func (s *CartService) findItem(itemID, userID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("item not found in cart")
		}
		return nil, err
	}
	return &item, nil
}
