package cart

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rampurgold/storefront/internal/logging"
	"github.com/rampurgold/storefront/internal/models"
)

// ErrUnauthorized is returned by AddItem when no user is attached to the call.
var ErrUnauthorized = errors.New("cart: not logged in")

type Service struct {
	DB *gorm.DB
}

// ViewItem is a cart entry with its product resolved.
type ViewItem struct {
	Product  models.Product
	Quantity uint
	Subtotal float64
}

type View struct {
	Items []ViewItem
	Total float64
}

func (s *Service) load(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := s.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id ASC") }).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem puts one unit of the product into the user's cart, creating the
// cart when the user has none. A second add for the same product increments
// the existing entry instead of appending a duplicate.
func (s *Service) AddItem(ctx context.Context, userID, productID uint) error {
	if userID == 0 {
		return ErrUnauthorized
	}

	cart, err := s.load(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = &models.Cart{UserID: userID}
		if err := s.DB.WithContext(ctx).Create(cart).Error; err != nil {
			return fmt.Errorf("create cart: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += 1
			if err := s.DB.WithContext(ctx).Save(&cart.Items[i]).Error; err != nil {
				return fmt.Errorf("save cart item: %w", err)
			}
			return nil
		}
	}

	item := models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: 1}
	if err := s.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return fmt.Errorf("create cart item: %w", err)
	}
	return nil
}

// Increase bumps the quantity of an existing entry by one. A missing cart or
// entry is a no-op, not an error.
func (s *Service) Increase(ctx context.Context, userID, productID uint) error {
	cart, err := s.load(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += 1
			if err := s.DB.WithContext(ctx).Save(&cart.Items[i]).Error; err != nil {
				return fmt.Errorf("save cart item: %w", err)
			}
			return nil
		}
	}
	return nil
}

// Decrease lowers the quantity of an existing entry by one. At quantity 1 the
// entry is removed entirely; a zero-quantity entry never persists.
func (s *Service) Decrease(ctx context.Context, userID, productID uint) error {
	cart, err := s.load(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID != productID {
			continue
		}
		if cart.Items[i].Quantity > 1 {
			cart.Items[i].Quantity -= 1
			if err := s.DB.WithContext(ctx).Save(&cart.Items[i]).Error; err != nil {
				return fmt.Errorf("save cart item: %w", err)
			}
			return nil
		}
		if err := s.DB.WithContext(ctx).Delete(&cart.Items[i]).Error; err != nil {
			return fmt.Errorf("delete cart item: %w", err)
		}
		return nil
	}
	return nil
}

// Remove drops the entry for the product at any quantity. Missing cart or
// entry is a no-op.
func (s *Service) Remove(ctx context.Context, userID, productID uint) error {
	cart, err := s.load(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	if err := s.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

// View resolves the cart into products and a recomputed total. Lookup
// failures degrade to an empty view; they are logged, never surfaced.
func (s *Service) View(ctx context.Context, userID uint) View {
	view := View{Items: []ViewItem{}}

	cart, err := s.load(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return view
	}
	if err != nil {
		logging.FromContext(ctx).Error("cart view failed", "user_id", userID, "error", err)
		return view
	}

	for _, item := range cart.Items {
		var product models.Product
		if err := s.DB.WithContext(ctx).First(&product, item.ProductID).Error; err != nil {
			logging.FromContext(ctx).Error("cart product lookup failed", "product_id", item.ProductID, "error", err)
			continue
		}
		subtotal := product.Price * float64(item.Quantity)
		view.Items = append(view.Items, ViewItem{Product: product, Quantity: item.Quantity, Subtotal: subtotal})
		view.Total += subtotal
	}
	return view
}

// ItemCount sums quantities across the user's cart. Unauthenticated users and
// absent carts count as zero.
func (s *Service) ItemCount(ctx context.Context, userID uint) uint {
	if userID == 0 {
		return 0
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logging.FromContext(ctx).Error("cart count failed", "user_id", userID, "error", err)
		}
		return 0
	}

	var count uint
	for _, item := range cart.Items {
		count += item.Quantity
	}
	return count
}
