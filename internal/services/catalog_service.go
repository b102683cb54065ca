package services

import (
	"context"
	"errors"

	"shop-service/internal/domain"
	"shop-service/internal/repository"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrBrandNotFound    = errors.New("brand not found")
)

type CategoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	c := &domain.Category{Name: name, Slug: Slugify(name)}
	if err := s.categories.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint64) (*domain.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.FindAll(ctx)
}

func (s *CategoryService) Update(ctx context.Context, id uint64, name string) (*domain.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	c.Name = name
	c.Slug = Slugify(name)
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint64) error {
	n, err := s.categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

type BrandService struct {
	brands repository.BrandRepository
}

func NewBrandService(brands repository.BrandRepository) *BrandService {
	return &BrandService{brands: brands}
}

func (s *BrandService) Create(ctx context.Context, name string) (*domain.Brand, error) {
	b := &domain.Brand{Name: name, Slug: Slugify(name)}
	if err := s.brands.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BrandService) Get(ctx context.Context, id uint64) (*domain.Brand, error) {
	b, err := s.brands.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBrandNotFound
	}
	return b, nil
}

func (s *BrandService) List(ctx context.Context) ([]domain.Brand, error) {
	return s.brands.FindAll(ctx)
}

func (s *BrandService) Update(ctx context.Context, id uint64, name string) (*domain.Brand, error) {
	b, err := s.brands.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBrandNotFound
	}
	b.Name = name
	b.Slug = Slugify(name)
	if err := s.brands.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BrandService) Delete(ctx context.Context, id uint64) error {
	n, err := s.brands.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBrandNotFound
	}
	return nil
}
