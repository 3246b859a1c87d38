package service

import (
	"strings"

	"github.com/royale-store/royale-api/internal/models"
	"github.com/royale-store/royale-api/internal/repository"
)

const cartMaxQuantity = 99

// CartService manages the server-side session cart. Each line snapshots
// the product's name, price and discount at add time; checkout prices
// the snapshot, not the live product.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddItemInput is one add-to-cart request.
type AddItemInput struct {
	SessionID        string
	ProductID        uint
	Quantity         int
	VariantID        string
	VariantAttribute string
	VariantValue     string
}

// List returns the session's cart lines.
func (s *CartService) List(sessionID string) ([]models.CartItem, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionRequired
	}
	return s.cartRepo.ListBySession(sessionID)
}

// Add snapshots a product into the cart, merging with an existing line
// for the same product and variant.
func (s *CartService) Add(input AddItemInput) error {
	if strings.TrimSpace(input.SessionID) == "" {
		return ErrSessionRequired
	}
	if input.Quantity <= 0 || input.Quantity > cartMaxQuantity {
		return ErrQuantityInvalid
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if !product.IsActive {
		return ErrProductInactive
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	return s.cartRepo.Upsert(&models.CartItem{
		SessionID:          input.SessionID,
		ProductID:          product.ID,
		VariantID:          input.VariantID,
		ProductName:        product.Name,
		UnitPrice:          product.Price,
		DiscountPercentage: product.DiscountPercentage,
		Quantity:           input.Quantity,
		VariantAttribute:   input.VariantAttribute,
		VariantValue:       input.VariantValue,
		CashOnDelivery:     product.CashOnDelivery,
		ImageURL:           image,
	})
}

// UpdateQuantity sets a line's quantity; zero removes the line.
func (s *CartService) UpdateQuantity(sessionID string, productID uint, variantID string, quantity int) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrSessionRequired
	}
	if quantity < 0 || quantity > cartMaxQuantity {
		return ErrQuantityInvalid
	}

	line, err := s.cartRepo.GetLine(sessionID, productID, variantID)
	if err != nil {
		return err
	}
	if line == nil {
		return ErrCartLineNotFound
	}
	if quantity == 0 {
		return s.cartRepo.DeleteLine(line.ID)
	}
	return s.cartRepo.UpdateQuantity(line.ID, quantity)
}

// Remove deletes one cart line.
func (s *CartService) Remove(sessionID string, productID uint, variantID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrSessionRequired
	}
	line, err := s.cartRepo.GetLine(sessionID, productID, variantID)
	if err != nil {
		return err
	}
	if line == nil {
		return ErrCartLineNotFound
	}
	return s.cartRepo.DeleteLine(line.ID)
}

// Clear empties the session's cart.
func (s *CartService) Clear(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrSessionRequired
	}
	return s.cartRepo.ClearSession(sessionID)
}
