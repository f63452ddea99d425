package service

import (
	"context"
	"time"

	"github.com/R-Agile/epetshop-backend/internal/errors"
	"github.com/R-Agile/epetshop-backend/internal/models"
	repository "github.com/R-Agile/epetshop-backend/internal/repositories"
	"github.com/google/uuid"
)

type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

type CartView struct {
	Cart  *models.Cart      `json:"cart"`
	Items []models.CartItem `json:"items"`
}

// getOrCreateCart returns the user's cart, creating an empty one on first
// use.
func (s *CartService) getOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}

	cart = &models.Cart{
		ID:        uuid.New(),
		UserID:    &userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.cartRepo.CreateCart(ctx, cart); err != nil {
		return nil, errors.DatabaseError("Failed to create cart").WithError(err)
	}

	return cart, nil
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart items").WithError(err)
	}

	return &CartView{Cart: cart, Items: items}, nil
}

// AddItem adds a product to the cart. A product already in the cart gets
// its quantity incremented, so a cart holds at most one line per product.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.CartItem, error) {
	if _, err := s.productRepo.GetProductByID(ctx, req.ProductID); err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.FindItem(ctx, cart.ID, req.ProductID)
	if err == nil {
		newQuantity := existing.Quantity + req.Quantity

		if err := s.cartRepo.UpdateItemQuantity(ctx, existing.ID, newQuantity); err != nil {
			return nil, errors.DatabaseError("Failed to update cart item").WithError(err)
		}

		existing.Quantity = newQuantity

		return existing, nil
	}

	item := &models.CartItem{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		CreatedAt: time.Now(),
	}

	if err := s.cartRepo.AddItem(ctx, item); err != nil {
		return nil, errors.DatabaseError("Failed to add cart item").WithError(err)
	}

	if err := s.cartRepo.TouchCart(ctx, cart.ID); err != nil {
		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	return item, nil
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req *models.UpdateCartItemRequest) (*models.CartItem, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, item.ID, req.Quantity); err != nil {
		return nil, errors.DatabaseError("Failed to update cart item").WithError(err)
	}

	item.Quantity = req.Quantity

	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if err := s.cartRepo.DeleteItem(ctx, item.ID); err != nil {
		return errors.DatabaseError("Failed to remove cart item").WithError(err)
	}

	return nil
}

func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		// Nothing to clear.
		return nil
	}

	if err := s.cartRepo.DeleteItems(ctx, cart.ID); err != nil {
		return errors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}

// ownedItem loads a cart item and verifies it belongs to the user's cart.
func (s *CartService) ownedItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error) {
	item, err := s.cartRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, errors.NotFoundError("Cart item not found").WithError(err)
	}

	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil || cart.ID != item.CartID {
		return nil, errors.ForbiddenError("Cart item does not belong to you")
	}

	return item, nil
}

// GetGuestCart returns the guest's cart items, empty when the guest has no
// cart yet.
func (s *CartService) GetGuestCart(ctx context.Context, guestID string) (*models.GuestCartResponse, error) {
	cart, err := s.cartRepo.GetCartByGuestID(ctx, guestID)
	if err != nil {
		return &models.GuestCartResponse{Items: []models.CartItem{}}, nil
	}

	items, err := s.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart items").WithError(err)
	}

	if items == nil {
		items = []models.CartItem{}
	}

	return &models.GuestCartResponse{Items: items}, nil
}

// SyncGuestCart replaces the guest cart's contents with the client's view.
// Each incoming item carries a product snapshot so guest carts render
// without catalog lookups.
func (s *CartService) SyncGuestCart(ctx context.Context, guestID string, req *models.GuestCartSyncRequest) (*models.GuestCartResponse, error) {
	cart, err := s.cartRepo.GetCartByGuestID(ctx, guestID)
	if err != nil {
		cart = &models.Cart{
			ID:        uuid.New(),
			GuestID:   &guestID,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.cartRepo.CreateCart(ctx, cart); err != nil {
			return nil, errors.DatabaseError("Failed to create guest cart").WithError(err)
		}
	}

	if err := s.cartRepo.DeleteItems(ctx, cart.ID); err != nil {
		return nil, errors.DatabaseError("Failed to clear guest cart").WithError(err)
	}

	items := make([]models.CartItem, 0, len(req.Items))

	for _, incoming := range req.Items {
		snapshot := incoming.Product

		item := models.CartItem{
			ID:        uuid.New(),
			CartID:    cart.ID,
			ProductID: snapshot.ID,
			Quantity:  incoming.Quantity,
			Product:   &snapshot,
			CreatedAt: time.Now(),
		}

		if err := s.cartRepo.AddItem(ctx, &item); err != nil {
			return nil, errors.DatabaseError("Failed to add guest cart item").WithError(err)
		}

		items = append(items, item)
	}

	if err := s.cartRepo.TouchCart(ctx, cart.ID); err != nil {
		return nil, errors.DatabaseError("Failed to update guest cart").WithError(err)
	}

	return &models.GuestCartResponse{Items: items}, nil
}

func (s *CartService) ClearGuestCart(ctx context.Context, guestID string) error {
	cart, err := s.cartRepo.GetCartByGuestID(ctx, guestID)
	if err != nil {
		return nil
	}

	if err := s.cartRepo.DeleteItems(ctx, cart.ID); err != nil {
		return errors.DatabaseError("Failed to clear guest cart").WithError(err)
	}

	return nil
}
