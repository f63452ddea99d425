package service

import (
	"context"
	"time"

	"github.com/R-Agile/epetshop-backend/internal/errors"
	"github.com/R-Agile/epetshop-backend/internal/models"
	repository "github.com/R-Agile/epetshop-backend/internal/repositories"
	"github.com/google/uuid"
)

type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

// AddItem puts a product on the user's wishlist. Duplicates are rejected.
func (s *WishlistService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddWishlistItemRequest) (*models.WishlistItem, error) {
	if _, err := s.productRepo.GetProductByID(ctx, req.ProductID); err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if existing, _ := s.wishlistRepo.FindItem(ctx, userID, req.ProductID); existing != nil {
		return nil, errors.DuplicateEntryError("Product is already on the wishlist")
	}

	item := &models.WishlistItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: req.ProductID,
		CreatedAt: time.Now(),
	}

	if err := s.wishlistRepo.AddItem(ctx, item); err != nil {
		return nil, errors.DatabaseError("Failed to add wishlist item").WithError(err)
	}

	return item, nil
}

func (s *WishlistService) ListMine(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	items, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list wishlist").WithError(err)
	}

	return items, nil
}

func (s *WishlistService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.wishlistRepo.GetItem(ctx, itemID)
	if err != nil {
		return errors.NotFoundError("Wishlist item not found").WithError(err)
	}

	if item.UserID != userID {
		return errors.ForbiddenError("Wishlist item does not belong to you")
	}

	if err := s.wishlistRepo.DeleteItem(ctx, itemID); err != nil {
		return errors.DatabaseError("Failed to remove wishlist item").WithError(err)
	}

	return nil
}

func (s *WishlistService) RemoveByProduct(ctx context.Context, userID, productID uuid.UUID) error {
	if err := s.wishlistRepo.DeleteByProduct(ctx, userID, productID); err != nil {
		return errors.NotFoundError("Wishlist item not found").WithError(err)
	}

	return nil
}
