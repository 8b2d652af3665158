package repository

import (
	"context"

	"github.com/vparmar-art/MarketplaceApp/internal/domain"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
)

// Lookups return the zero value with a nil error when no row matches. A zero
// userID in a list or count method selects every user's rows.

type UserRepository interface {
	HandleTrx(ctx context.Context, fn func(repo UserRepository) error) error

	AddUser(ctx context.Context, data domain.User) (id int64, err error)
	GetUserByID(ctx context.Context, id int64) (data domain.User, err error)
	GetUserByUsername(ctx context.Context, username string) (data domain.User, err error)
	GetUserByEmail(ctx context.Context, email string) (data domain.User, err error)
	GetUsersByIDs(ctx context.Context, ids []int64) (data []domain.User, err error)
	GetUsers(ctx context.Context, filter pkgdto.Filter) (data []domain.User, err error)
	CountUsers(ctx context.Context, filter pkgdto.Filter) (count uint64, err error)
	UpdateUser(ctx context.Context, data domain.User) (err error)

	AddProfile(ctx context.Context, data domain.UserProfile) (id int64, err error)
	GetProfileByID(ctx context.Context, id int64) (data domain.UserProfile, err error)
	GetProfileByUserID(ctx context.Context, userID int64) (data domain.UserProfile, err error)
	GetProfiles(ctx context.Context, filter pkgdto.Filter, userID int64) (data []domain.UserProfile, err error)
	CountProfiles(ctx context.Context, userID int64) (count uint64, err error)
	UpdateProfile(ctx context.Context, data domain.UserProfile) (err error)

	AddToken(ctx context.Context, data domain.AuthToken) (err error)
	GetTokenByKey(ctx context.Context, key string) (data domain.AuthToken, err error)
	GetTokenByUserID(ctx context.Context, userID int64) (data domain.AuthToken, err error)
	DeleteTokenByUserID(ctx context.Context, userID int64) (err error)
	DeleteExpiredTokens(ctx context.Context, now int64) (deleted int64, err error)
}

type CatalogRepository interface {
	HandleTrx(ctx context.Context, fn func(repo CatalogRepository) error) error

	AddCategory(ctx context.Context, data domain.Category) (id int64, err error)
	GetCategoryByID(ctx context.Context, id int64) (data domain.Category, err error)
	GetCategoriesByIDs(ctx context.Context, ids []int64) (data []domain.Category, err error)
	GetCategories(ctx context.Context, filter pkgdto.Filter) (data []domain.Category, err error)
	CountCategories(ctx context.Context, filter pkgdto.Filter) (count uint64, err error)
	UpdateCategory(ctx context.Context, data domain.Category) (err error)
	DeleteCategory(ctx context.Context, id int64) (err error)

	AddProduct(ctx context.Context, data domain.Product) (id int64, err error)
	GetProductByID(ctx context.Context, id int64) (data domain.Product, err error)
	GetProductsByIDs(ctx context.Context, ids []int64) (data []domain.Product, err error)
	GetProducts(ctx context.Context, query ProductQuery) (data []domain.Product, err error)
	CountProducts(ctx context.Context, query ProductQuery) (count uint64, err error)
	UpdateProduct(ctx context.Context, data domain.Product) (err error)
	DeactivateProduct(ctx context.Context, id int64, updatedAt int64) (err error)

	AddSpecifications(ctx context.Context, data []domain.ProductSpecification) (err error)
	DeleteSpecificationsByProductID(ctx context.Context, productID int64) (err error)
	GetSpecificationsByProductIDs(ctx context.Context, ids []int64) (data []domain.ProductSpecification, err error)
	AddImages(ctx context.Context, data []domain.ProductImage) (err error)
	GetImagesByProductIDs(ctx context.Context, ids []int64) (data []domain.ProductImage, err error)

	AddReview(ctx context.Context, data domain.Review) (id int64, err error)
	GetReviewByProductAndUser(ctx context.Context, productID, userID int64) (data domain.Review, err error)
	GetReviewsByProductIDs(ctx context.Context, ids []int64) (data []domain.Review, err error)
}

type OrderRepository interface {
	HandleTrx(ctx context.Context, fn func(repo OrderRepository) error) error

	AddOrder(ctx context.Context, data domain.Order) (id int64, err error)
	AddOrderItem(ctx context.Context, data domain.OrderItem) (id int64, err error)
	GetOrderByID(ctx context.Context, id int64) (data domain.Order, err error)
	// LockOrderByID reads the order and locks its row until the surrounding transaction ends.
	LockOrderByID(ctx context.Context, id int64) (data domain.Order, err error)
	GetOrders(ctx context.Context, filter pkgdto.Filter, userID int64) (data []domain.Order, err error)
	CountOrders(ctx context.Context, userID int64) (count uint64, err error)
	UpdateOrder(ctx context.Context, data domain.Order) (err error)
	DeleteOrder(ctx context.Context, id int64) (err error)
	GetOrderItemsByOrderIDs(ctx context.Context, ids []int64) (data []domain.OrderItem, err error)

	AddOrderDocument(ctx context.Context, data domain.OrderDocument) (id int64, err error)
	GetOrderDocumentsByOrderIDs(ctx context.Context, ids []int64) (data []domain.OrderDocument, err error)
}
