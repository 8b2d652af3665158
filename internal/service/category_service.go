package service

import (
	"context"
	"strings"
	"time"

	"github.com/vparmar-art/MarketplaceApp/internal/domain"
	"github.com/vparmar-art/MarketplaceApp/internal/dto"
	"github.com/vparmar-art/MarketplaceApp/internal/repository"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
	"github.com/vparmar-art/MarketplaceApp/pkg/errs"
)

type CategoryServiceImpl struct {
	repository repository.CatalogRepository
	now        func() time.Time
}

func CreateCategoryService(repository repository.CatalogRepository) CategoryService {
	return &CategoryServiceImpl{
		repository: repository,
		now:        time.Now,
	}
}

func toCategoryResponse(category domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Image:       category.Image,
		CreatedAt:   toTime(category.CreatedAt),
		UpdatedAt:   toTime(category.UpdatedAt),
	}
}

func (s *CategoryServiceImpl) AddCategory(ctx context.Context, actor domain.Actor, req dto.CategoryRequest) (resp dto.CategoryResponse, err error) {
	if !actor.IsStaff {
		return resp, errs.ErrForbidden
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return resp, errs.ErrMissingName
	}

	now := s.now().UnixMilli()
	category := domain.Category{
		Name:      strings.TrimSpace(*req.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	assignOptional(&category.Description, req.Description)
	assignOptional(&category.Image, req.Image)

	category.ID, err = s.repository.AddCategory(ctx, category)
	if err != nil {
		return resp, err
	}

	return toCategoryResponse(category), nil
}

func (s *CategoryServiceImpl) GetCategories(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error) {
	filter = filter.Normalize()

	categories, err := s.repository.GetCategories(ctx, filter)
	if err != nil {
		return resp, err
	}

	count, err := s.repository.CountCategories(ctx, filter)
	if err != nil {
		return resp, err
	}

	records := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		records = append(records, toCategoryResponse(category))
	}

	return paginated(records, count, filter), nil
}

func (s *CategoryServiceImpl) getCategory(ctx context.Context, id int64) (category domain.Category, err error) {
	category, err = s.repository.GetCategoryByID(ctx, id)
	if err != nil {
		return category, err
	}
	if category.ID == 0 {
		return category, errs.ErrCategoryNotFound
	}

	return category, nil
}

func (s *CategoryServiceImpl) GetCategory(ctx context.Context, id int64) (resp dto.CategoryResponse, err error) {
	category, err := s.getCategory(ctx, id)
	if err != nil {
		return resp, err
	}

	return toCategoryResponse(category), nil
}

func (s *CategoryServiceImpl) UpdateCategory(ctx context.Context, actor domain.Actor, req dto.CategoryRequest) (resp dto.CategoryResponse, err error) {
	if !actor.IsStaff {
		return resp, errs.ErrForbidden
	}

	category, err := s.getCategory(ctx, req.ID)
	if err != nil {
		return resp, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return resp, errs.ErrMissingName
		}
		category.Name = name
	}
	assignOptional(&category.Description, req.Description)
	assignOptional(&category.Image, req.Image)
	category.UpdatedAt = s.now().UnixMilli()

	if err = s.repository.UpdateCategory(ctx, category); err != nil {
		return resp, err
	}

	return toCategoryResponse(category), nil
}

func (s *CategoryServiceImpl) DeleteCategory(ctx context.Context, actor domain.Actor, id int64) (err error) {
	if !actor.IsStaff {
		return errs.ErrForbidden
	}

	if _, err = s.getCategory(ctx, id); err != nil {
		return err
	}

	return s.repository.DeleteCategory(ctx, id)
}
