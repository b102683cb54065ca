package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/singleflight"
)

var ErrProductNotFound = errors.New("product not found")

const productCacheTTL = time.Minute

type ProductService struct {
	products    repository.ProductRepository
	redisClient *redis.Client
	group       singleflight.Group
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

type ProductInput struct {
	Title              string
	Description        string
	Price              float64
	PriceAfterDiscount *float64
	Quantity           int64
	CategoryID         uint64
	BrandID            *uint64
}

func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	p := &domain.Product{
		Title:              in.Title,
		Slug:               Slugify(in.Title),
		Description:        in.Description,
		Price:              in.Price,
		PriceAfterDiscount: in.PriceAfterDiscount,
		Quantity:           in.Quantity,
		CategoryID:         in.CategoryID,
		BrandID:            in.BrandID,
	}
	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProduct reads through the redis cache; concurrent misses for the
// same product collapse into one database query.
func (s *ProductService) GetProduct(ctx context.Context, id uint64) (*domain.Product, error) {
	cacheKey := fmt.Sprintf("product:%d", id)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	v, err, _ := s.group.Do(cacheKey, func() (interface{}, error) {
		p, err := s.products.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, ErrProductNotFound
		}
		if s.redisClient != nil {
			if data, err := json.Marshal(p); err == nil {
				s.redisClient.Set(ctx, cacheKey, data, productCacheTTL)
			}
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

func (s *ProductService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	return s.products.FindAll(ctx, filter)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uint64, in ProductInput) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	if in.Title != "" {
		p.Title = in.Title
		p.Slug = Slugify(in.Title)
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Price > 0 {
		p.Price = in.Price
	}
	if in.PriceAfterDiscount != nil {
		p.PriceAfterDiscount = in.PriceAfterDiscount
	}
	if in.Quantity > 0 {
		p.Quantity = in.Quantity
	}
	if in.CategoryID != 0 {
		p.CategoryID = in.CategoryID
	}
	if in.BrandID != nil {
		p.BrandID = in.BrandID
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return p, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint64) error {
	n, err := s.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id uint64) {
	if s.redisClient != nil {
		s.redisClient.Del(ctx, fmt.Sprintf("product:%d", id))
	}
}

// Slugify lowercases a title and joins its words with dashes.
func Slugify(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(title))), "-")
}
