package service

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/vparmar-art/MarketplaceApp/internal/dto"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
	"github.com/vparmar-art/MarketplaceApp/pkg/errs"
)

func decimalPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func (s *ServiceTestSuite) TestCategoryWritesAreStaffOnly() {
	_, err := s.categoryService.AddCategory(s.ctx, s.seller, dto.CategoryRequest{Name: strPtr("Spices")})
	s.ErrorIs(err, errs.ErrForbidden)

	_, err = s.categoryService.AddCategory(s.ctx, s.staff, dto.CategoryRequest{Name: strPtr("  ")})
	s.ErrorIs(err, errs.ErrMissingName)

	created, err := s.categoryService.AddCategory(s.ctx, s.staff, dto.CategoryRequest{Name: strPtr(" Spices "), Description: strPtr("Whole and ground")})
	s.Require().NoError(err)
	s.Equal("Spices", created.Name)
	s.Equal("Whole and ground", *created.Description)

	_, err = s.categoryService.UpdateCategory(s.ctx, s.buyer, dto.CategoryRequest{ID: created.ID, Name: strPtr("Herbs")})
	s.ErrorIs(err, errs.ErrForbidden)

	updated, err := s.categoryService.UpdateCategory(s.ctx, s.staff, dto.CategoryRequest{ID: created.ID, Description: strPtr("")})
	s.Require().NoError(err)
	s.Equal("Spices", updated.Name)
	s.Nil(updated.Description)

	_, err = s.categoryService.UpdateCategory(s.ctx, s.staff, dto.CategoryRequest{ID: 9999, Name: strPtr("Herbs")})
	s.ErrorIs(err, errs.ErrCategoryNotFound)
}

func (s *ServiceTestSuite) TestCategoryReads() {
	spices := s.seedCategory("Spices")
	s.seedCategory("Textiles")

	got, err := s.categoryService.GetCategory(s.ctx, spices.ID)
	s.NoError(err)
	s.Equal("Spices", got.Name)

	_, err = s.categoryService.GetCategory(s.ctx, 9999)
	s.ErrorIs(err, errs.ErrCategoryNotFound)

	list, err := s.categoryService.GetCategories(s.ctx, pkgdto.Filter{Search: "text"})
	s.NoError(err)
	s.Equal(uint64(1), list.Metadata.TotalCount)
	s.Equal(1, int(list.Metadata.Page))
	s.Equal(pkgdto.DefaultPageLimit, list.Metadata.Limit)
}

func (s *ServiceTestSuite) TestDeleteCategory() {
	spices := s.seedCategory("Spices")
	empty := s.seedCategory("Empty")
	s.seedProduct(spices.ID, "Pepper", "4.50", 1)

	s.ErrorIs(s.categoryService.DeleteCategory(s.ctx, s.seller, empty.ID), errs.ErrForbidden)

	err := s.categoryService.DeleteCategory(s.ctx, s.staff, spices.ID)
	s.ErrorIs(err, errs.ErrCategoryInUse)
	s.Equal(errs.ErrStatusConflict, errs.GetErrorStatusCode(err))
	s.Contains(s.db.categories, spices.ID)

	s.NoError(s.categoryService.DeleteCategory(s.ctx, s.staff, empty.ID))
	s.NotContains(s.db.categories, empty.ID)

	s.ErrorIs(s.categoryService.DeleteCategory(s.ctx, s.staff, empty.ID), errs.ErrCategoryNotFound)
}

func (s *ServiceTestSuite) listProducts(filter dto.ProductFilter) []dto.ProductResponse {
	resp, err := s.productService.GetProducts(s.ctx, filter)
	s.Require().NoError(err)
	return resp.Records.([]dto.ProductResponse)
}

func productNames(products []dto.ProductResponse) []string {
	names := make([]string, 0, len(products))
	for _, product := range products {
		names = append(names, product.Name)
	}
	return names
}

func (s *ServiceTestSuite) TestGetProductsFiltersAndOrders() {
	spices := s.seedCategory("Spices")
	textiles := s.seedCategory("Textiles")
	s.seedProduct(spices.ID, "Pepper", "4.50", 1)
	s.seedProduct(spices.ID, "Saffron", "120.00", 2)
	s.seedProduct(textiles.ID, "Cotton", "12.00", 3)
	hidden := s.seedProduct(textiles.ID, "Silk", "80.00", 4)
	hidden.IsActive = false
	s.db.products[hidden.ID] = hidden

	type TestCase struct {
		Name     string
		Filter   dto.ProductFilter
		Expected []string
	}

	testCases := []TestCase{
		{Name: "default is newest first", Filter: dto.ProductFilter{}, Expected: []string{"Cotton", "Saffron", "Pepper"}},
		{Name: "price ascending", Filter: dto.ProductFilter{Ordering: "price"}, Expected: []string{"Pepper", "Cotton", "Saffron"}},
		{Name: "name descending", Filter: dto.ProductFilter{Ordering: "-name"}, Expected: []string{"Saffron", "Pepper", "Cotton"}},
		{Name: "category", Filter: dto.ProductFilter{Category: formatID(spices.ID), Ordering: "name"}, Expected: []string{"Pepper", "Saffron"}},
		{Name: "price range", Filter: dto.ProductFilter{MinPrice: "5", MaxPrice: "100", Ordering: "name"}, Expected: []string{"Cotton"}},
		{Name: "search matches category name", Filter: dto.ProductFilter{Search: "textiles"}, Expected: []string{"Cotton"}},
		{Name: "seller", Filter: dto.ProductFilter{Seller: formatID(s.buyer.UserID)}, Expected: []string{}},
		{Name: "paging", Filter: dto.ProductFilter{Ordering: "name", Limit: 2, Page: 2}, Expected: []string{"Saffron"}},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			s.Equal(tc.Expected, productNames(s.listProducts(tc.Filter)))
		})
	}
}

func (s *ServiceTestSuite) TestGetProductsRejectsBadParameters() {
	testCases := map[string]struct {
		Filter   dto.ProductFilter
		Expected error
	}{
		"unknown ordering": {Filter: dto.ProductFilter{Ordering: "seller"}, Expected: errs.ErrInvalidOrdering},
		"bad category":     {Filter: dto.ProductFilter{Category: "spices"}, Expected: errs.ErrInvalidFilter},
		"bad price":        {Filter: dto.ProductFilter{MinPrice: "cheap"}, Expected: errs.ErrInvalidFilter},
	}

	for name, tc := range testCases {
		s.Run(name, func() {
			_, err := s.productService.GetProducts(s.ctx, tc.Filter)
			s.ErrorIs(err, tc.Expected)
			s.Equal(errs.ErrStatusClient, errs.GetErrorStatusCode(err))
		})
	}
}

func (s *ServiceTestSuite) productRequest(categoryID int64) dto.ProductRequest {
	return dto.ProductRequest{
		CategoryID:      categoryID,
		Name:            "Cardamom",
		Description:     "Green cardamom pods",
		Price:           decimalPtr("18.5"),
		Unit:            "kg",
		CountryOfOrigin: "IN",
		Image:           "cardamom.png",
		Specifications: []dto.SpecificationRequest{
			{Name: "Grade", Value: "8mm"},
			{Name: "Moisture", Value: "10%"},
		},
		Images: []dto.ImageRequest{{Image: "pods.png", IsPrimary: true}},
	}
}

func (s *ServiceTestSuite) TestAddProduct() {
	spices := s.seedCategory("Spices")

	resp, err := s.productService.AddProduct(s.ctx, s.seller, s.productRequest(spices.ID))
	s.Require().NoError(err)

	s.Equal("18.50", resp.Price)
	s.Equal(int64(1), resp.MinimumOrderQuantity)
	s.Equal("seller", resp.Seller.Username)
	s.Equal("Spices", resp.Category.Name)
	s.Len(resp.Specifications, 2)
	s.Len(resp.Images, 1)
	s.Empty(resp.Reviews)
	s.Zero(resp.AverageRating)
	s.True(resp.IsActive)

	s.publisher.AssertCalled(s.T(), "Publish", mock.Anything, formatID(resp.ID), mock.MatchedBy(func(msg dto.KafkaMessage) bool {
		return msg.EventType == dto.EventProductCreated
	}))
}

func (s *ServiceTestSuite) TestAddProductValidation() {
	spices := s.seedCategory("Spices")

	unknownCategory := s.productRequest(9999)
	_, err := s.productService.AddProduct(s.ctx, s.seller, unknownCategory)
	s.ErrorIs(err, errs.ErrCategoryNotFound)

	negative := s.productRequest(spices.ID)
	negative.Price = decimalPtr("-1")
	_, err = s.productService.AddProduct(s.ctx, s.seller, negative)
	s.ErrorIs(err, errs.ErrInvalidPrice)

	for _, price := range []string{"100000000", "99999999.995"} {
		tooLarge := s.productRequest(spices.ID)
		tooLarge.Price = decimalPtr(price)
		_, err = s.productService.AddProduct(s.ctx, s.seller, tooLarge)
		s.ErrorIs(err, errs.ErrInvalidPrice, price)
	}

	zeroMinimum := s.productRequest(spices.ID)
	zeroMinimum.MinimumOrderQuantity = int64Ptr(0)
	_, err = s.productService.AddProduct(s.ctx, s.seller, zeroMinimum)
	s.ErrorIs(err, errs.ErrMinimumOrderQuantity)

	_, err = s.productService.AddProduct(s.ctx, s.seedAnonymous(), s.productRequest(spices.ID))
	s.ErrorIs(err, errs.ErrNotLoggedIn)

	s.Empty(s.db.products)
}

func (s *ServiceTestSuite) TestAddProductRollsBackWhenSpecificationsFail() {
	spices := s.seedCategory("Spices")
	s.db.failOn["AddSpecifications"] = errors.New("connection reset")

	_, err := s.productService.AddProduct(s.ctx, s.seller, s.productRequest(spices.ID))
	s.Error(err)
	s.Empty(s.db.products)
	s.Empty(s.db.specifications)
	s.publisher.AssertNotCalled(s.T(), "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServiceTestSuite) TestUpdateProduct() {
	spices := s.seedCategory("Spices")
	created, err := s.productService.AddProduct(s.ctx, s.seller, s.productRequest(spices.ID))
	s.Require().NoError(err)

	_, err = s.productService.UpdateProduct(s.ctx, s.buyer, dto.ProductUpdateRequest{ID: created.ID, Name: strPtr("Stolen")})
	s.ErrorIs(err, errs.ErrForbidden)

	_, err = s.productService.UpdateProduct(s.ctx, s.seller, dto.ProductUpdateRequest{ID: created.ID, CategoryID: int64Ptr(9999)})
	s.ErrorIs(err, errs.ErrCategoryNotFound)

	specifications := []dto.SpecificationRequest{{Name: "Grade", Value: "7mm"}}
	updated, err := s.productService.UpdateProduct(s.ctx, s.seller, dto.ProductUpdateRequest{
		ID:             created.ID,
		Price:          decimalPtr("20"),
		Specifications: &specifications,
	})
	s.Require().NoError(err)
	s.Equal("20.00", updated.Price)
	s.Equal("Cardamom", updated.Name)
	s.Require().Len(updated.Specifications, 1)
	s.Equal("7mm", updated.Specifications[0].Value)

	byStaff, err := s.productService.UpdateProduct(s.ctx, s.staff, dto.ProductUpdateRequest{ID: created.ID, Name: strPtr("Black cardamom")})
	s.Require().NoError(err)
	s.Equal("Black cardamom", byStaff.Name)
	s.Len(byStaff.Specifications, 1)
}

func (s *ServiceTestSuite) TestDeactivateProductHidesIt() {
	spices := s.seedCategory("Spices")
	product := s.seedProduct(spices.ID, "Pepper", "4.50", 1)

	s.ErrorIs(s.productService.DeactivateProduct(s.ctx, s.buyer, product.ID), errs.ErrForbidden)
	s.NoError(s.productService.DeactivateProduct(s.ctx, s.seller, product.ID))

	s.Contains(s.db.products, product.ID)
	_, err := s.productService.GetProduct(s.ctx, product.ID)
	s.ErrorIs(err, errs.ErrProductNotFound)
	s.Empty(s.listProducts(dto.ProductFilter{}))
	s.ErrorIs(s.productService.DeactivateProduct(s.ctx, s.seller, product.ID), errs.ErrProductNotFound)
}

func (s *ServiceTestSuite) TestAddReview() {
	spices := s.seedCategory("Spices")
	product := s.seedProduct(spices.ID, "Pepper", "4.50", 1)

	for _, rating := range []int{0, 6} {
		_, err := s.productService.AddReview(s.ctx, s.buyer, dto.ReviewRequest{ProductID: product.ID, Rating: rating})
		s.ErrorIs(err, errs.ErrInvalidRating)
	}

	review, err := s.productService.AddReview(s.ctx, s.buyer, dto.ReviewRequest{ProductID: product.ID, Rating: 5, Comment: "Fresh"})
	s.Require().NoError(err)
	s.Equal("buyer", review.User.Username)

	_, err = s.productService.AddReview(s.ctx, s.buyer, dto.ReviewRequest{ProductID: product.ID, Rating: 1})
	s.ErrorIs(err, errs.ErrReviewAlreadyExists)
	s.Equal(errs.ErrStatusConflict, errs.GetErrorStatusCode(err))

	_, err = s.productService.AddReview(s.ctx, s.other, dto.ReviewRequest{ProductID: product.ID, Rating: 2})
	s.Require().NoError(err)

	got, err := s.productService.GetProduct(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Len(got.Reviews, 2)
	s.InDelta(3.5, got.AverageRating, 0.0001)

	s.publisher.AssertCalled(s.T(), "Publish", mock.Anything, formatID(product.ID), dto.KafkaMessage{
		EventType: dto.EventReviewAdded,
		Data: dto.ReviewEvent{
			ReviewID:  review.ID,
			ProductID: product.ID,
			UserID:    s.buyer.UserID,
			Rating:    5,
		},
	})
}

func (s *ServiceTestSuite) TestPublishFailureDoesNotFailTheWrite() {
	spices := s.seedCategory("Spices")
	s.publisher.ExpectedCalls = nil
	s.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := s.productService.AddProduct(s.ctx, s.seller, s.productRequest(spices.ID))
	s.NoError(err)
	s.Len(s.db.products, 1)
}
