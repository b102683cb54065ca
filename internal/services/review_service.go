package services

import (
	"context"
	"errors"

	"shop-service/internal/domain"
	"shop-service/internal/repository"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("product already reviewed by this user")
	ErrNotReviewOwner  = errors.New("review belongs to another user")
)

type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
}

func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, products: products}
}

func (s *ReviewService) CreateReview(ctx context.Context, productID, userID uint64, rating int, text string) (*domain.Review, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	existing, err := s.reviews.FindByProductAndUser(ctx, productID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	rev := &domain.Review{ProductID: productID, UserID: userID, Rating: rating, Text: text}
	if err := s.reviews.Save(ctx, rev); err != nil {
		return nil, err
	}
	if err := s.reviews.RefreshProductRating(ctx, productID); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID uint64) ([]domain.Review, error) {
	return s.reviews.FindByProduct(ctx, productID)
}

func (s *ReviewService) UpdateReview(ctx context.Context, id, userID uint64, rating int, text string) (*domain.Review, error) {
	rev, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rev == nil {
		return nil, ErrReviewNotFound
	}
	if rev.UserID != userID {
		return nil, ErrNotReviewOwner
	}

	if rating > 0 {
		rev.Rating = rating
	}
	if text != "" {
		rev.Text = text
	}
	if err := s.reviews.Update(ctx, rev); err != nil {
		return nil, err
	}
	if err := s.reviews.RefreshProductRating(ctx, rev.ProductID); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, id, userID uint64) error {
	rev, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if rev == nil {
		return ErrReviewNotFound
	}
	if rev.UserID != userID {
		return ErrNotReviewOwner
	}

	if _, err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	return s.reviews.RefreshProductRating(ctx, rev.ProductID)
}
