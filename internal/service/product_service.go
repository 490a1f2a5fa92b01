package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"github.com/sosmedia/portfolio-api/internal/mapper"
	"github.com/sosmedia/portfolio-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductService struct {
	productRepo *repository.ProductRepository
	logger      *zap.Logger
}

func NewProductService(productRepo *repository.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{productRepo: productRepo, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, req *domain.CreateProductRequest) (*domain.ProductDTO, error) {
	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Status:      statusOrActive(req.Status),
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	dto := mapper.ToProductDTO(product)
	return &dto, nil
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProductDTO, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	dto := mapper.ToProductDTO(product)
	return &dto, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateProductRequest) (*domain.ProductDTO, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	product.Name = req.Name
	product.Description = req.Description
	if req.Status != "" {
		product.Status = req.Status
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	dto := mapper.ToProductDTO(product)
	return &dto, nil
}

func (s *ProductService) List(ctx context.Context, page, pageSize int, status *domain.EntityStatus) (*domain.PaginatedResponse, error) {
	products, total, err := s.productRepo.List(ctx, page, pageSize, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	dtos := make([]domain.ProductDTO, len(products))
	for i := range products {
		dtos[i] = mapper.ToProductDTO(&products[i])
	}
	return paginate(dtos, total, page, pageSize), nil
}
