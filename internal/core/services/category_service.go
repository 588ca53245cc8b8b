package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/TidonAM/ODET/internal/apperrors"
	"github.com/TidonAM/ODET/internal/core/domain"
	portsrepo "github.com/TidonAM/ODET/internal/core/ports/repositories"
	portssvc "github.com/TidonAM/ODET/internal/core/ports/services"
	"github.com/TidonAM/ODET/internal/dto"
	"github.com/TidonAM/ODET/internal/middleware"
	"github.com/google/uuid"
)

// categoryService implements portssvc.CategorySvcFacade.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
	dashboard    portssvc.DashboardInvalidator
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo portsrepo.CategoryRepositoryFacade, dashboard portssvc.DashboardInvalidator) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: repo, dashboard: dashboard}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Title:      req.Title,
		Color:      req.Color,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category in repository", slog.String("error", err.Error()), slog.String("category_id", category.CategoryID))
		return nil, err
	}

	s.invalidate(userID)
	logger.Info("Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find category by ID in repository", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	categories, err := s.categoryRepo.ListCategories(ctx, userID)
	if err != nil {
		logger.Error("Failed to list categories from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		category.Title = *req.Title
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		logger.Error("Failed to update category in repository", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, err
	}

	s.invalidate(userID)
	logger.Info("Category updated", slog.String("category_id", categoryID))
	return category, nil
}

// DeleteCategory removes the category only; transactions keep their
// dangling category ids and render without a tag.
func (s *categoryService) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.categoryRepo.DeleteCategory(ctx, userID, categoryID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete category in repository", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		}
		return err
	}

	s.invalidate(userID)
	logger.Info("Category deleted", slog.String("category_id", categoryID))
	return nil
}

func (s *categoryService) invalidate(userID string) {
	if s.dashboard != nil {
		s.dashboard.Invalidate(userID)
	}
}
