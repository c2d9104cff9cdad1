package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Giuseppe84/vespera/internal/models"
)

// CheckoutPolicy carries the flat-rate shop policy applied at checkout.
// Hardened switches the order-number allocator and the coupon counter to
// their race-safe variants; the legacy behavior stays the default because it
// matches the numbering and counting the shop has run with so far.
type CheckoutPolicy struct {
	OrderPrefix     string
	FreeShippingMin float64
	ShippingFee     float64
	TaxRate         float64
	Hardened        bool
}

func DefaultCheckoutPolicy() CheckoutPolicy {
	return CheckoutPolicy{
		OrderPrefix:     "VES",
		FreeShippingMin: 100,
		ShippingFee:     9.90,
		TaxRate:         0.22,
		Hardened:        false,
	}
}

type CreateOrderInput struct {
	ShippingAddressID uint   `json:"shippingAddressId" binding:"required"`
	BillingAddressID  uint   `json:"billingAddressId" binding:"required"`
	CouponCode        string `json:"couponCode"`
	Notes             string `json:"notes"`
}

type AddShipmentInput struct {
	ProviderID     uint   `json:"providerId" binding:"required"`
	TrackingNumber string `json:"trackingNumber"`
	TrackingURL    string `json:"trackingUrl"`
}

type OrderListQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Status string `form:"status"`
}

type ListMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type OrderList struct {
	Data []models.Order `json:"data"`
	Meta ListMeta       `json:"meta"`
}

type OrderStats struct {
	TotalOrders   int64   `json:"totalOrders"`
	PendingOrders int64   `json:"pendingOrders"`
	TodayOrders   int64   `json:"todayOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

type OrderService struct {
	db     *gorm.DB
	policy CheckoutPolicy
}

func NewOrderService(db *gorm.DB, policy CheckoutPolicy) *OrderService {
	return &OrderService{db: db, policy: policy}
}

// CreateFromCart converts the user's cart into an order. Everything with a
// side effect happens in one transaction: order + item snapshots, coupon
// usage, cart cleanup, configuration transitions. A failure at any step
// rolls all of it back, leaving cart and configurations untouched.
func (s *OrderService) CreateFromCart(userID uint, in CreateOrderInput) (*models.Order, error) {
	var cartItems []models.CartItem
	err := s.db.Where("user_id = ?", userID).
		Preload("Lamp").
		Preload("Variant").
		Preload("Configuration").
		Find(&cartItems).Error
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, badRequest("cart is empty")
	}

	if err := s.addressOwned(in.ShippingAddressID, userID, "shipping"); err != nil {
		return nil, err
	}
	if err := s.addressOwned(in.BillingAddressID, userID, "billing"); err != nil {
		return nil, err
	}

	var subtotal float64
	for _, item := range cartItems {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	now := time.Now()

	var coupon *models.Coupon
	var discountAmount float64
	if in.CouponCode != "" {
		coupon, discountAmount, err = s.validateCoupon(s.db, in.CouponCode, subtotal, now)
		if err != nil {
			return nil, err
		}
	}

	shippingCost := s.policy.ShippingFee
	if subtotal >= s.policy.FreeShippingMin {
		shippingCost = 0
	}

	taxableAmount := subtotal - discountAmount + shippingCost
	taxAmount := taxableAmount * s.policy.TaxRate
	totalAmount := taxableAmount + taxAmount

	// Legacy numbering counts existing orders outside the transaction; two
	// concurrent checkouts can compute the same sequence. The hardened
	// allocator replaces this inside the transaction.
	var orderNumber string
	if !s.policy.Hardened {
		orderNumber, err = s.legacyOrderNumber(now)
		if err != nil {
			return nil, err
		}
	}

	var orderID uint
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if s.policy.Hardened {
			orderNumber, err = s.nextOrderNumber(tx, now)
			if err != nil {
				return err
			}
		}

		order := models.Order{
			OrderNumber:       orderNumber,
			UserID:            userID,
			Status:            models.OrderStatusPending,
			Subtotal:          subtotal,
			ShippingCost:      shippingCost,
			TaxAmount:         round2(taxAmount),
			DiscountAmount:    round2(discountAmount),
			TotalAmount:       round2(totalAmount),
			Notes:             in.Notes,
			ShippingAddressID: in.ShippingAddressID,
			BillingAddressID:  in.BillingAddressID,
		}
		for _, item := range cartItems {
			orderItem := models.OrderItem{
				LampID:          item.LampID,
				VariantID:       item.VariantID,
				ConfigurationID: item.ConfigurationID,
				Quantity:        item.Quantity,
				UnitPrice:       item.UnitPrice,
				TotalPrice:      round2(item.UnitPrice * float64(item.Quantity)),
				LampName:        item.Lamp.Name,
				LampSKU:         item.Lamp.SKU,
			}
			if item.Variant != nil {
				orderItem.VariantName = item.Variant.Name
			}
			if item.Configuration != nil {
				orderItem.ConfigurationName = item.Configuration.Name
			}
			order.Items = append(order.Items, orderItem)
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		orderID = order.ID

		if coupon != nil {
			if err := s.consumeCoupon(tx, coupon, subtotal, now); err != nil {
				return err
			}
			usage := models.CouponUsage{CouponID: coupon.ID, OrderID: order.ID}
			if err := tx.Create(&usage).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		configIDs := make([]uint, 0)
		seen := make(map[uint]bool)
		for _, item := range cartItems {
			if item.ConfigurationID != nil && !seen[*item.ConfigurationID] {
				seen[*item.ConfigurationID] = true
				configIDs = append(configIDs, *item.ConfigurationID)
			}
		}
		if len(configIDs) > 0 {
			err := tx.Model(&models.LampConfiguration{}).
				Where("id IN ?", configIDs).
				Update("status", models.ConfigStatusOrdered).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.load(orderID)
}

func (s *OrderService) FindAllByUser(userID uint, q OrderListQuery) (*OrderList, error) {
	return s.list(s.db.Where("user_id = ?", userID), q, 10)
}

func (s *OrderService) FindAllAdmin(q OrderListQuery) (*OrderList, error) {
	return s.list(s.db, q, 20)
}

func (s *OrderService) FindOne(id, userID uint) (*models.Order, error) {
	order, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, forbidden("access denied")
	}
	return order, nil
}

// Cancel lets the owning user cancel an order that has not entered
// fulfilment yet.
func (s *OrderService) Cancel(id, userID uint) (*models.Order, error) {
	order, err := s.FindOne(id, userID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusConfirmed {
		return nil, badRequest("cannot cancel an order that is already being processed")
	}
	if err := s.db.Model(order).Update("status", models.OrderStatusCancelled).Error; err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusCancelled
	return order, nil
}

// UpdateStatus is the admin path through the order state machine.
func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	switch status {
	case models.OrderStatusConfirmed, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled:
	default:
		return nil, badRequest("invalid order status %q", status)
	}

	order, err := s.load(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{"status": status}
	if status == models.OrderStatusDelivered {
		now := time.Now()
		updates["delivered_at"] = &now
	}
	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.load(id)
}

// AddShipment attaches a tracking record and forces the order to SHIPPED
// regardless of its previous status. Policy choice, not a validated
// transition.
func (s *OrderService) AddShipment(orderID uint, in AddShipmentInput) (*models.Shipment, error) {
	if _, err := s.load(orderID); err != nil {
		return nil, err
	}

	var provider models.ShippingProvider
	if err := s.db.First(&provider, in.ProviderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("shipping provider not found")
		}
		return nil, err
	}

	shipment := models.Shipment{
		OrderID:        orderID,
		ProviderID:     in.ProviderID,
		TrackingNumber: in.TrackingNumber,
		TrackingURL:    in.TrackingURL,
		ShippedAt:      time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&shipment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).Where("id = ?", orderID).
			Update("status", models.OrderStatusShipped).Error
	})
	if err != nil {
		return nil, err
	}

	shipment.Provider = provider
	return &shipment, nil
}

func (s *OrderService) Stats() (*OrderStats, error) {
	stats := &OrderStats{}

	if err := s.db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}

	revenueStatuses := []string{
		models.OrderStatusConfirmed, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered,
	}
	err := s.db.Model(&models.Order{}).
		Where("status IN ?", revenueStatuses).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	err = s.db.Model(&models.Order{}).
		Where("created_at >= ?", startOfDay).
		Count(&stats.TodayOrders).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// validateCoupon checks activation window, minimum order and usage cap, and
// returns the discount. Percentage wins over fixed when both are set; a
// fixed discount is capped at the subtotal so totals stay non-negative.
func (s *OrderService) validateCoupon(db *gorm.DB, code string, subtotal float64, now time.Time) (*models.Coupon, float64, error) {
	var coupon models.Coupon
	err := db.Where("code = ? AND is_active = ?", code, true).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, badRequest("coupon not valid or expired")
		}
		return nil, 0, err
	}

	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return nil, 0, badRequest("coupon not valid or expired")
	}
	if coupon.ExpiresAt != nil && now.After(*coupon.ExpiresAt) {
		return nil, 0, badRequest("coupon not valid or expired")
	}
	if coupon.MinOrderAmount > 0 && subtotal < coupon.MinOrderAmount {
		return nil, 0, badRequest("minimum order for this coupon: %.2f", coupon.MinOrderAmount)
	}
	if coupon.MaxUses > 0 && coupon.UsedCount >= coupon.MaxUses {
		return nil, 0, badRequest("coupon exhausted")
	}

	var discount float64
	if coupon.DiscountPercent > 0 {
		discount = subtotal * coupon.DiscountPercent / 100
	} else if coupon.DiscountFixed > 0 {
		discount = coupon.DiscountFixed
		if discount > subtotal {
			discount = subtotal
		}
	}
	return &coupon, discount, nil
}

// consumeCoupon increments the usage counter inside the checkout
// transaction. Legacy mode re-validates the cap before a plain increment,
// which narrows but does not close the check-then-act race; hardened mode
// closes it with a guarded conditional update.
func (s *OrderService) consumeCoupon(tx *gorm.DB, coupon *models.Coupon, subtotal float64, now time.Time) error {
	if s.policy.Hardened {
		res := tx.Model(&models.Coupon{}).
			Where("id = ? AND (max_uses = 0 OR used_count < max_uses)", coupon.ID).
			UpdateColumn("used_count", gorm.Expr("used_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return badRequest("coupon exhausted")
		}
		return nil
	}

	if _, _, err := s.validateCoupon(tx, coupon.Code, subtotal, now); err != nil {
		return err
	}
	return tx.Model(&models.Coupon{}).
		Where("id = ?", coupon.ID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
}

// legacyOrderNumber derives the sequence from a plain order count, matching
// the numbering already in the wild: VES-YYYYMM-00042.
func (s *OrderService) legacyOrderNumber(now time.Time) (string, error) {
	var count int64
	if err := s.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%05d", s.policy.OrderPrefix, now.Format("200601"), count+1), nil
}

// nextOrderNumber allocates from a per-month sequence row, atomically,
// inside the checkout transaction. Same external format as the legacy
// scheme.
func (s *OrderService) nextOrderNumber(tx *gorm.DB, now time.Time) (string, error) {
	period := now.Format("200601")

	res := tx.Model(&models.OrderSequence{}).
		Where("period = ?", period).
		UpdateColumn("last_value", gorm.Expr("last_value + 1"))
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		seq := models.OrderSequence{Period: period, LastValue: 1}
		if err := tx.Create(&seq).Error; err != nil {
			return "", err
		}
		return fmt.Sprintf("%s-%s-%05d", s.policy.OrderPrefix, period, 1), nil
	}

	var seq models.OrderSequence
	if err := tx.Where("period = ?", period).First(&seq).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%05d", s.policy.OrderPrefix, period, seq.LastValue), nil
}

func (s *OrderService) addressOwned(addressID, userID uint, label string) error {
	var address models.Address
	err := s.db.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("%s address not found", label)
		}
		return err
	}
	return nil
}

func (s *OrderService) list(query *gorm.DB, q OrderListQuery, defaultLimit int) (*OrderList, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	// Session makes the condition chain reusable for both Count and Find.
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, err
	}

	orders := []models.Order{}
	err := query.Model(&models.Order{}).
		Preload("Items").
		Preload("Shipments.Provider").
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &OrderList{
		Data: orders,
		Meta: ListMeta{Total: total, Page: page, Limit: limit, TotalPages: totalPages},
	}, nil
}

func (s *OrderService) load(id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.
		Preload("Items").
		Preload("Items.Lamp").
		Preload("ShippingAddress").
		Preload("BillingAddress").
		Preload("Shipments.Provider").
		Preload("CouponUsages.Coupon").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("order not found")
		}
		return nil, err
	}
	return &order, nil
}
