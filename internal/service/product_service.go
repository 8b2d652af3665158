package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/vparmar-art/MarketplaceApp/internal/domain"
	"github.com/vparmar-art/MarketplaceApp/internal/dto"
	"github.com/vparmar-art/MarketplaceApp/internal/repository"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
	"github.com/vparmar-art/MarketplaceApp/pkg/errs"
)

const defaultProductOrdering = "-" + repository.ProductOrderCreatedAt

type ProductServiceImpl struct {
	catalogRepository repository.CatalogRepository
	userRepository    repository.UserRepository
	publisher         EventPublisher
	now               func() time.Time
}

func CreateProductService(catalogRepository repository.CatalogRepository, userRepository repository.UserRepository, publisher EventPublisher) ProductService {
	return &ProductServiceImpl{
		catalogRepository: catalogRepository,
		userRepository:    userRepository,
		publisher:         publisher,
		now:               time.Now,
	}
}

// parseProductQuery turns raw listing parameters into a repository query.
func parseProductQuery(filter dto.ProductFilter) (query repository.ProductQuery, paging pkgdto.Filter, err error) {
	paging = filter.Paging().Normalize()
	query.Search = strings.TrimSpace(filter.Search)
	query.Limit = paging.Limit
	query.Offset = paging.Offset()

	if filter.Category != "" {
		if query.CategoryID, err = strconv.ParseInt(filter.Category, 10, 64); err != nil {
			return query, paging, errs.ErrInvalidFilter
		}
	}
	if filter.Seller != "" {
		if query.SellerID, err = strconv.ParseInt(filter.Seller, 10, 64); err != nil {
			return query, paging, errs.ErrInvalidFilter
		}
	}
	if filter.MinPrice != "" {
		minPrice, err := decimal.NewFromString(filter.MinPrice)
		if err != nil {
			return query, paging, errs.ErrInvalidFilter
		}
		query.MinPrice = &minPrice
	}
	if filter.MaxPrice != "" {
		maxPrice, err := decimal.NewFromString(filter.MaxPrice)
		if err != nil {
			return query, paging, errs.ErrInvalidFilter
		}
		query.MaxPrice = &maxPrice
	}

	ordering := filter.Ordering
	if ordering == "" {
		ordering = defaultProductOrdering
	}
	query.Descending = strings.HasPrefix(ordering, "-")
	query.OrderBy = strings.TrimPrefix(ordering, "-")
	if !repository.IsProductOrderField(query.OrderBy) {
		return query, paging, errs.ErrInvalidOrdering
	}

	return query, paging, nil
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context, filter dto.ProductFilter) (resp pkgdto.PaginationResponse, err error) {
	query, paging, err := parseProductQuery(filter)
	if err != nil {
		return resp, err
	}

	products, err := s.catalogRepository.GetProducts(ctx, query)
	if err != nil {
		return resp, err
	}

	count, err := s.catalogRepository.CountProducts(ctx, query)
	if err != nil {
		return resp, err
	}

	records, err := s.assembleProducts(ctx, products)
	if err != nil {
		return resp, err
	}

	return paginated(records, count, paging), nil
}

func (s *ProductServiceImpl) getActiveProduct(ctx context.Context, id int64) (product domain.Product, err error) {
	product, err = s.catalogRepository.GetProductByID(ctx, id)
	if err != nil {
		return product, err
	}
	if product.ID == 0 || !product.IsActive {
		return product, errs.ErrProductNotFound
	}

	return product, nil
}

func (s *ProductServiceImpl) getProductResponse(ctx context.Context, product domain.Product) (resp dto.ProductResponse, err error) {
	records, err := s.assembleProducts(ctx, []domain.Product{product})
	if err != nil {
		return resp, err
	}

	return records[0], nil
}

func (s *ProductServiceImpl) GetProduct(ctx context.Context, id int64) (resp dto.ProductResponse, err error) {
	product, err := s.getActiveProduct(ctx, id)
	if err != nil {
		return resp, err
	}

	return s.getProductResponse(ctx, product)
}

func validateProductQuantities(price *decimal.Decimal, minimumOrderQuantity, availableQuantity *int64) error {
	if price != nil && !domain.IsValidPrice(*price) {
		return errs.ErrInvalidPrice
	}
	if minimumOrderQuantity != nil && *minimumOrderQuantity < 1 {
		return errs.ErrMinimumOrderQuantity
	}
	if availableQuantity != nil && *availableQuantity < 0 {
		return errs.ErrNegativeAvailableQty
	}
	return nil
}

func toSpecifications(productID int64, reqs []dto.SpecificationRequest) []domain.ProductSpecification {
	specifications := make([]domain.ProductSpecification, 0, len(reqs))
	for _, req := range reqs {
		specifications = append(specifications, domain.ProductSpecification{
			ProductID: productID,
			Name:      req.Name,
			Value:     req.Value,
		})
	}
	return specifications
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, actor domain.Actor, req dto.ProductRequest) (resp dto.ProductResponse, err error) {
	if !actor.IsAuthenticated() {
		return resp, errs.ErrNotLoggedIn
	}
	if req.Price == nil {
		return resp, errs.ErrInvalidPrice
	}
	if err = validateProductQuantities(req.Price, req.MinimumOrderQuantity, req.AvailableQuantity); err != nil {
		return resp, err
	}

	category, err := s.catalogRepository.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return resp, err
	}
	if category.ID == 0 {
		return resp, errs.ErrCategoryNotFound
	}

	now := s.now().UnixMilli()
	product := domain.Product{
		SellerID:             actor.UserID,
		CategoryID:           category.ID,
		Name:                 req.Name,
		Description:          req.Description,
		Price:                *req.Price,
		MinimumOrderQuantity: 1,
		Unit:                 req.Unit,
		CountryOfOrigin:      req.CountryOfOrigin,
		ShippingTerms:        req.ShippingTerms,
		LeadTime:             req.LeadTime,
		Certifications:       req.Certifications,
		Image:                req.Image,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if req.MinimumOrderQuantity != nil {
		product.MinimumOrderQuantity = *req.MinimumOrderQuantity
	}
	if req.AvailableQuantity != nil {
		product.AvailableQuantity = *req.AvailableQuantity
	}

	err = s.catalogRepository.HandleTrx(ctx, func(repo repository.CatalogRepository) error {
		id, err := repo.AddProduct(ctx, product)
		if err != nil {
			return err
		}
		product.ID = id

		if err := repo.AddSpecifications(ctx, toSpecifications(id, req.Specifications)); err != nil {
			return err
		}

		images := make([]domain.ProductImage, 0, len(req.Images))
		for _, image := range req.Images {
			images = append(images, domain.ProductImage{
				ProductID: id,
				Image:     image.Image,
				IsPrimary: image.IsPrimary,
				CreatedAt: now,
			})
		}
		return repo.AddImages(ctx, images)
	})
	if err != nil {
		return resp, err
	}

	publishEvent(ctx, s.publisher, strconv.FormatInt(product.ID, 10), dto.EventProductCreated, toProductEvent(product))

	return s.getProductResponse(ctx, product)
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, actor domain.Actor, req dto.ProductUpdateRequest) (resp dto.ProductResponse, err error) {
	product, err := s.getActiveProduct(ctx, req.ID)
	if err != nil {
		return resp, err
	}
	if !actor.CanManage(product.SellerID) {
		return resp, errs.ErrForbidden
	}

	if err = validateProductQuantities(req.Price, req.MinimumOrderQuantity, req.AvailableQuantity); err != nil {
		return resp, err
	}

	if req.CategoryID != nil && *req.CategoryID != product.CategoryID {
		category, err := s.catalogRepository.GetCategoryByID(ctx, *req.CategoryID)
		if err != nil {
			return resp, err
		}
		if category.ID == 0 {
			return resp, errs.ErrCategoryNotFound
		}
		product.CategoryID = category.ID
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.MinimumOrderQuantity != nil {
		product.MinimumOrderQuantity = *req.MinimumOrderQuantity
	}
	if req.AvailableQuantity != nil {
		product.AvailableQuantity = *req.AvailableQuantity
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.CountryOfOrigin != nil {
		product.CountryOfOrigin = *req.CountryOfOrigin
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	assignOptional(&product.ShippingTerms, req.ShippingTerms)
	assignOptional(&product.LeadTime, req.LeadTime)
	assignOptional(&product.Certifications, req.Certifications)
	product.UpdatedAt = s.now().UnixMilli()

	err = s.catalogRepository.HandleTrx(ctx, func(repo repository.CatalogRepository) error {
		if err := repo.UpdateProduct(ctx, product); err != nil {
			return err
		}
		if req.Specifications == nil {
			return nil
		}

		if err := repo.DeleteSpecificationsByProductID(ctx, product.ID); err != nil {
			return err
		}
		return repo.AddSpecifications(ctx, toSpecifications(product.ID, *req.Specifications))
	})
	if err != nil {
		return resp, err
	}

	publishEvent(ctx, s.publisher, strconv.FormatInt(product.ID, 10), dto.EventProductUpdated, toProductEvent(product))

	return s.getProductResponse(ctx, product)
}

func (s *ProductServiceImpl) DeactivateProduct(ctx context.Context, actor domain.Actor, id int64) (err error) {
	product, err := s.getActiveProduct(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(product.SellerID) {
		return errs.ErrForbidden
	}

	if err = s.catalogRepository.DeactivateProduct(ctx, product.ID, s.now().UnixMilli()); err != nil {
		return err
	}
	product.IsActive = false

	publishEvent(ctx, s.publisher, strconv.FormatInt(product.ID, 10), dto.EventProductDeactivated, toProductEvent(product))

	return nil
}

func (s *ProductServiceImpl) AddReview(ctx context.Context, actor domain.Actor, req dto.ReviewRequest) (resp dto.ReviewResponse, err error) {
	if !actor.IsAuthenticated() {
		return resp, errs.ErrNotLoggedIn
	}
	if !domain.IsValidRating(req.Rating) {
		return resp, errs.ErrInvalidRating
	}

	product, err := s.getActiveProduct(ctx, req.ProductID)
	if err != nil {
		return resp, err
	}

	existing, err := s.catalogRepository.GetReviewByProductAndUser(ctx, product.ID, actor.UserID)
	if err != nil {
		return resp, err
	}
	if existing.ID != 0 {
		return resp, errs.ErrReviewAlreadyExists
	}

	now := s.now().UnixMilli()
	review := domain.Review{
		ProductID: product.ID,
		UserID:    actor.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	review.ID, err = s.catalogRepository.AddReview(ctx, review)
	if err != nil {
		return resp, err
	}

	publishEvent(ctx, s.publisher, strconv.FormatInt(product.ID, 10), dto.EventReviewAdded, dto.ReviewEvent{
		ReviewID:  review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
	})

	user, err := s.userRepository.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return resp, err
	}

	return toReviewResponse(review, user), nil
}

func toProductEvent(product domain.Product) dto.ProductEvent {
	return dto.ProductEvent{
		ProductID:  product.ID,
		SellerID:   product.SellerID,
		CategoryID: product.CategoryID,
		Name:       product.Name,
		Price:      product.Price.StringFixed(2),
		IsActive:   product.IsActive,
	}
}

func toReviewResponse(review domain.Review, user domain.User) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        review.ID,
		ProductID: review.ProductID,
		User:      toUserResponse(user),
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: toTime(review.CreatedAt),
		UpdatedAt: toTime(review.UpdatedAt),
	}
}

// assembleProducts builds read views with a fixed number of batch queries
// regardless of how many products are listed.
func (s *ProductServiceImpl) assembleProducts(ctx context.Context, products []domain.Product) (records []dto.ProductResponse, err error) {
	records = make([]dto.ProductResponse, 0, len(products))
	if len(products) == 0 {
		return records, nil
	}

	productIDs := make([]int64, 0, len(products))
	categoryIDs := make([]int64, 0, len(products))
	userIDs := make([]int64, 0, len(products))
	for _, product := range products {
		productIDs = append(productIDs, product.ID)
		categoryIDs = append(categoryIDs, product.CategoryID)
		userIDs = append(userIDs, product.SellerID)
	}

	specifications, err := s.catalogRepository.GetSpecificationsByProductIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	images, err := s.catalogRepository.GetImagesByProductIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	reviews, err := s.catalogRepository.GetReviewsByProductIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	categories, err := s.catalogRepository.GetCategoriesByIDs(ctx, uniqueIDs(categoryIDs))
	if err != nil {
		return nil, err
	}

	for _, review := range reviews {
		userIDs = append(userIDs, review.UserID)
	}
	users, err := s.userRepository.GetUsersByIDs(ctx, uniqueIDs(userIDs))
	if err != nil {
		return nil, err
	}

	userMap := usersByID(users)
	categoryMap := make(map[int64]domain.Category, len(categories))
	for _, category := range categories {
		categoryMap[category.ID] = category
	}
	specificationMap := make(map[int64][]dto.SpecificationResponse)
	for _, specification := range specifications {
		specificationMap[specification.ProductID] = append(specificationMap[specification.ProductID], dto.SpecificationResponse{
			ID:    specification.ID,
			Name:  specification.Name,
			Value: specification.Value,
		})
	}
	imageMap := make(map[int64][]dto.ImageResponse)
	for _, image := range images {
		imageMap[image.ProductID] = append(imageMap[image.ProductID], dto.ImageResponse{
			ID:        image.ID,
			Image:     image.Image,
			IsPrimary: image.IsPrimary,
			CreatedAt: toTime(image.CreatedAt),
		})
	}
	reviewMap := make(map[int64][]domain.Review)
	for _, review := range reviews {
		reviewMap[review.ProductID] = append(reviewMap[review.ProductID], review)
	}

	for _, product := range products {
		if _, ok := categoryMap[product.CategoryID]; !ok {
			log.Warn().Str("component", "assembleProducts").Int64("product_id", product.ID).Msg("category missing")
		}

		productReviews := reviewMap[product.ID]
		reviewResponses := make([]dto.ReviewResponse, 0, len(productReviews))
		for _, review := range productReviews {
			reviewResponses = append(reviewResponses, toReviewResponse(review, userMap[review.UserID]))
		}

		specificationResponses := specificationMap[product.ID]
		if specificationResponses == nil {
			specificationResponses = []dto.SpecificationResponse{}
		}
		imageResponses := imageMap[product.ID]
		if imageResponses == nil {
			imageResponses = []dto.ImageResponse{}
		}

		records = append(records, dto.ProductResponse{
			ID:                   product.ID,
			Seller:               toUserResponse(userMap[product.SellerID]),
			Category:             toCategoryResponse(categoryMap[product.CategoryID]),
			Name:                 product.Name,
			Description:          product.Description,
			Price:                product.Price.StringFixed(2),
			MinimumOrderQuantity: product.MinimumOrderQuantity,
			AvailableQuantity:    product.AvailableQuantity,
			Unit:                 product.Unit,
			CountryOfOrigin:      product.CountryOfOrigin,
			ShippingTerms:        product.ShippingTerms,
			LeadTime:             product.LeadTime,
			Certifications:       product.Certifications,
			Image:                product.Image,
			IsActive:             product.IsActive,
			Specifications:       specificationResponses,
			Images:               imageResponses,
			Reviews:              reviewResponses,
			AverageRating:        domain.AverageRating(productReviews),
			CreatedAt:            toTime(product.CreatedAt),
			UpdatedAt:            toTime(product.UpdatedAt),
		})
	}

	return records, nil
}
