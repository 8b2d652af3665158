package service

import (
	"context"

	"github.com/vparmar-art/MarketplaceApp/internal/domain"
	"github.com/vparmar-art/MarketplaceApp/internal/dto"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
)

type UserService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (resp dto.UserResponse, err error)
	Login(ctx context.Context, req dto.LoginRequest) (resp dto.LoginResponse, err error)
	Logout(ctx context.Context, actor domain.Actor) (err error)
	Authenticate(ctx context.Context, token string) (actor domain.Actor, err error)
	Me(ctx context.Context, actor domain.Actor) (resp dto.UserResponse, err error)
	GetUsers(ctx context.Context, actor domain.Actor, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error)
	GetUser(ctx context.Context, actor domain.Actor, id int64) (resp dto.UserResponse, err error)
	UpdateUser(ctx context.Context, actor domain.Actor, req dto.UpdateUserRequest) (resp dto.UserResponse, err error)
	PurgeExpiredTokens()
}

type ProfileService interface {
	GetOrCreateProfile(ctx context.Context, actor domain.Actor) (resp dto.ProfileResponse, err error)
	GetProfiles(ctx context.Context, actor domain.Actor, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error)
	GetProfile(ctx context.Context, actor domain.Actor, id int64) (resp dto.ProfileResponse, err error)
	UpdateProfile(ctx context.Context, actor domain.Actor, req dto.ProfileRequest) (resp dto.ProfileResponse, err error)
}

type CategoryService interface {
	AddCategory(ctx context.Context, actor domain.Actor, req dto.CategoryRequest) (resp dto.CategoryResponse, err error)
	GetCategories(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error)
	GetCategory(ctx context.Context, id int64) (resp dto.CategoryResponse, err error)
	UpdateCategory(ctx context.Context, actor domain.Actor, req dto.CategoryRequest) (resp dto.CategoryResponse, err error)
	DeleteCategory(ctx context.Context, actor domain.Actor, id int64) (err error)
}

type ProductService interface {
	GetProducts(ctx context.Context, filter dto.ProductFilter) (resp pkgdto.PaginationResponse, err error)
	GetProduct(ctx context.Context, id int64) (resp dto.ProductResponse, err error)
	AddProduct(ctx context.Context, actor domain.Actor, req dto.ProductRequest) (resp dto.ProductResponse, err error)
	UpdateProduct(ctx context.Context, actor domain.Actor, req dto.ProductUpdateRequest) (resp dto.ProductResponse, err error)
	DeactivateProduct(ctx context.Context, actor domain.Actor, id int64) (err error)
	AddReview(ctx context.Context, actor domain.Actor, req dto.ReviewRequest) (resp dto.ReviewResponse, err error)
}

type OrderService interface {
	ExpressInterest(ctx context.Context, actor domain.Actor, req dto.ExpressInterestRequest) (resp dto.OrderResponse, err error)
	AddOrder(ctx context.Context, actor domain.Actor, req dto.OrderRequest) (resp dto.OrderResponse, err error)
	GetOrders(ctx context.Context, actor domain.Actor, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error)
	GetOrder(ctx context.Context, actor domain.Actor, id int64) (resp dto.OrderResponse, err error)
	UpdateOrder(ctx context.Context, actor domain.Actor, req dto.OrderUpdateRequest) (resp dto.OrderResponse, err error)
	CancelOrder(ctx context.Context, actor domain.Actor, id int64) (resp dto.OrderResponse, err error)
	DeleteOrder(ctx context.Context, actor domain.Actor, id int64) (err error)
	AddOrderDocument(ctx context.Context, actor domain.Actor, req dto.OrderDocumentRequest) (resp dto.OrderDocumentResponse, err error)
}

// EventPublisher is satisfied by the Kafka publisher.
type EventPublisher interface {
	Publish(ctx context.Context, key string, msg dto.KafkaMessage) error
}

// Notifier is satisfied by the SMTP mailer.
type Notifier interface {
	Send(to, subject, body string) error
}
