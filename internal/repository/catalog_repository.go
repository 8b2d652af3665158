package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/vparmar-art/MarketplaceApp/internal/domain"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
	"github.com/vparmar-art/MarketplaceApp/pkg/errs"
)

const (
	categoryColumns      = "id, name, description, image, created_at, updated_at"
	productColumns       = "id, seller_id, category_id, name, description, price, minimum_order_quantity, available_quantity, unit, country_of_origin, shipping_terms, lead_time, certifications, image, is_active, created_at, updated_at"
	specificationColumns = "id, product_id, name, value"
	imageColumns         = "id, product_id, image, is_primary, created_at"
	reviewColumns        = "id, product_id, user_id, rating, comment, created_at, updated_at"
)

type CatalogRepositoryImpl struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func CreateCatalogRepository(db *sqlx.DB) CatalogRepository {
	return &CatalogRepositoryImpl{
		db: db,
	}
}

func (r *CatalogRepositoryImpl) conn() sqlx.ExtContext {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *CatalogRepositoryImpl) HandleTrx(ctx context.Context, fn func(repo CatalogRepository) error) error {
	if r.tx != nil {
		return fn(r)
	}

	return runInTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(&CatalogRepositoryImpl{db: r.db, tx: tx})
	})
}

func (r *CatalogRepositoryImpl) AddCategory(ctx context.Context, data domain.Category) (id int64, err error) {
	id, err = insertReturningID(ctx, r.conn(), "INSERT INTO categories(name, description, image, created_at, updated_at) VALUES (:name, :description, :image, :created_at, :updated_at) RETURNING id", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddCategory").Msg("")
		return 0, err
	}

	return id, nil
}

func (r *CatalogRepositoryImpl) GetCategoryByID(ctx context.Context, id int64) (data domain.Category, err error) {
	err = sqlx.GetContext(ctx, r.conn(), &data, "SELECT "+categoryColumns+" FROM categories WHERE id = $1", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetCategoryByID").Msg("")
		return data, err
	}

	return data, nil
}

func (r *CatalogRepositoryImpl) GetCategoriesByIDs(ctx context.Context, ids []int64) (data []domain.Category, err error) {
	err = selectIn(ctx, r.conn(), &data, "SELECT "+categoryColumns+" FROM categories WHERE id IN (?)", ids)
	if err != nil {
		log.Error().Err(err).Str("component", "GetCategoriesByIDs").Msg("")
		return nil, err
	}

	return data, nil
}

func categorySearchClause(args *queryArgs, filter pkgdto.Filter) string {
	if filter.Search == "" {
		return ""
	}
	pattern := args.add(containsPattern(filter.Search))
	return " WHERE (name ILIKE " + pattern + " OR description ILIKE " + pattern + ")"
}

func (r *CatalogRepositoryImpl) GetCategories(ctx context.Context, filter pkgdto.Filter) (data []domain.Category, err error) {
	args := &queryArgs{}
	query := "SELECT " + categoryColumns + " FROM categories" + categorySearchClause(args, filter) + " ORDER BY name, id"
	query += args.paginate(filter)

	err = sqlx.SelectContext(ctx, r.conn(), &data, query, args.values...)
	if err != nil {
		log.Error().Err(err).Str("component", "GetCategories").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *CatalogRepositoryImpl) CountCategories(ctx context.Context, filter pkgdto.Filter) (count uint64, err error) {
	args := &queryArgs{}
	err = sqlx.GetContext(ctx, r.conn(), &count, "SELECT COUNT(*) FROM categories"+categorySearchClause(args, filter), args.values...)
	if err != nil {
		log.Error().Err(err).Str("component", "CountCategories").Msg("")
		return 0, err
	}

	return count, nil
}

func (r *CatalogRepositoryImpl) UpdateCategory(ctx context.Context, data domain.Category) (err error) {
	_, err = sqlx.NamedExecContext(ctx, r.conn(), "UPDATE categories SET name = :name, description = :description, image = :image, updated_at = :updated_at WHERE id = :id", data)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateCategory").Msg("")
		return err
	}

	return nil
}

func (r *CatalogRepositoryImpl) DeleteCategory(ctx context.Context, id int64) (err error) {
	_, err = r.conn().ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		log.Error().Err(err).Str("component", "DeleteCategory").Msg("")
		if isForeignKeyViolation(err) {
			return errs.ErrCategoryInUse
		}
		return err
	}

	return nil
}

func (r *CatalogRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id int64, err error) {
	id, err = insertReturningID(ctx, r.conn(), "INSERT INTO products(seller_id, category_id, name, description, price, minimum_order_quantity, available_quantity, unit, country_of_origin, shipping_terms, lead_time, certifications, image, is_active, created_at, updated_at) VALUES (:seller_id, :category_id, :name, :description, :price, :minimum_order_quantity, :available_quantity, :unit, :country_of_origin, :shipping_terms, :lead_time, :certifications, :image, :is_active, :created_at, :updated_at) RETURNING id", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddProduct").Msg("")
		if isForeignKeyViolation(err) {
			return 0, errs.ErrCategoryNotFound
		}
		return 0, err
	}

	return id, nil
}

func (r *CatalogRepositoryImpl) GetProductByID(ctx context.Context, id int64) (data domain.Product, err error) {
	err = sqlx.GetContext(ctx, r.conn(), &data, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetProductByID").Msg("")
		return data, err
	}

	return data, nil
}

func (r *CatalogRepositoryImpl) GetProductsByIDs(ctx context.Context, ids []int64) (data []domain.Product, err error) {
	err = selectIn(ctx, r.conn(), &data, "SELECT "+productColumns+" FROM products WHERE id IN (?)", ids)
	if err != nil {
		log.Error().Err(err).Str("component", "GetProductsByIDs").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *CatalogRepositoryImpl) GetProducts(ctx context.Context, q ProductQuery) (data []domain.Product, err error) {
	query, args := buildProductListQuery(q)

	err = sqlx.SelectContext(ctx, r.conn(), &data, query, args...)
	if err != nil {
		log.Error().Err(err).Str("component", "GetProducts").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *CatalogRepositoryImpl) CountProducts(ctx context.Context, q ProductQuery) (count uint64, err error) {
	query, args := buildProductCountQuery(q)

	err = sqlx.GetContext(ctx, r.conn(), &count, query, args...)
	if err != nil {
		log.Error().Err(err).Str("component", "CountProducts").Msg("")
		return 0, err
	}

	return count, nil
}

func (r *CatalogRepositoryImpl) UpdateProduct(ctx context.Context, data domain.Product) (err error) {
	_, err = sqlx.NamedExecContext(ctx, r.conn(), "UPDATE products SET category_id = :category_id, name = :name, description = :description, price = :price, minimum_order_quantity = :minimum_order_quantity, available_quantity = :available_quantity, unit = :unit, country_of_origin = :country_of_origin, shipping_terms = :shipping_terms, lead_time = :lead_time, certifications = :certifications, image = :image, updated_at = :updated_at WHERE id = :id", data)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateProduct").Msg("")
		if isForeignKeyViolation(err) {
			return errs.ErrCategoryNotFound
		}
		return err
	}

	return nil
}

func (r *CatalogRepositoryImpl) DeactivateProduct(ctx context.Context, id int64, updatedAt int64) (err error) {
	_, err = r.conn().ExecContext(ctx, "UPDATE products SET is_active = FALSE, updated_at = $1 WHERE id = $2", updatedAt, id)
	if err != nil {
		log.Error().Err(err).Str("component", "DeactivateProduct").Msg("")
		return err
	}

	return nil
}

func (r *CatalogRepositoryImpl) AddSpecifications(ctx context.Context, data []domain.ProductSpecification) (err error) {
	if len(data) == 0 {
		return nil
	}

	_, err = sqlx.NamedExecContext(ctx, r.conn(), "INSERT INTO product_specifications(product_id, name, value) VALUES (:product_id, :name, :value)", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddSpecifications").Msg("")
		return err
	}

	return nil
}

func (r *CatalogRepositoryImpl) DeleteSpecificationsByProductID(ctx context.Context, productID int64) (err error) {
	_, err = r.conn().ExecContext(ctx, "DELETE FROM product_specifications WHERE product_id = $1", productID)
	if err != nil {
		log.Error().Err(err).Str("component", "DeleteSpecificationsByProductID").Msg("")
		return err
	}

	return nil
}

func (r *CatalogRepositoryImpl) GetSpecificationsByProductIDs(ctx context.Context, ids []int64) (data []domain.ProductSpecification, err error) {
	err = selectIn(ctx, r.conn(), &data, "SELECT "+specificationColumns+" FROM product_specifications WHERE product_id IN (?) ORDER BY id", ids)
	if err != nil {
		log.Error().Err(err).Str("component", "GetSpecificationsByProductIDs").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *CatalogRepositoryImpl) AddImages(ctx context.Context, data []domain.ProductImage) (err error) {
	if len(data) == 0 {
		return nil
	}

	_, err = sqlx.NamedExecContext(ctx, r.conn(), "INSERT INTO product_images(product_id, image, is_primary, created_at) VALUES (:product_id, :image, :is_primary, :created_at)", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddImages").Msg("")
		return err
	}

	return nil
}

func (r *CatalogRepositoryImpl) GetImagesByProductIDs(ctx context.Context, ids []int64) (data []domain.ProductImage, err error) {
	err = selectIn(ctx, r.conn(), &data, "SELECT "+imageColumns+" FROM product_images WHERE product_id IN (?) ORDER BY is_primary DESC, id", ids)
	if err != nil {
		log.Error().Err(err).Str("component", "GetImagesByProductIDs").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *CatalogRepositoryImpl) AddReview(ctx context.Context, data domain.Review) (id int64, err error) {
	id, err = insertReturningID(ctx, r.conn(), "INSERT INTO reviews(product_id, user_id, rating, comment, created_at, updated_at) VALUES (:product_id, :user_id, :rating, :comment, :created_at, :updated_at) RETURNING id", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddReview").Msg("")
		if _, ok := uniqueViolation(err); ok {
			return 0, errs.ErrReviewAlreadyExists
		}
		return 0, err
	}

	return id, nil
}

func (r *CatalogRepositoryImpl) GetReviewByProductAndUser(ctx context.Context, productID, userID int64) (data domain.Review, err error) {
	err = sqlx.GetContext(ctx, r.conn(), &data, "SELECT "+reviewColumns+" FROM reviews WHERE product_id = $1 AND user_id = $2", productID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetReviewByProductAndUser").Msg("")
		return data, err
	}

	return data, nil
}

func (r *CatalogRepositoryImpl) GetReviewsByProductIDs(ctx context.Context, ids []int64) (data []domain.Review, err error) {
	err = selectIn(ctx, r.conn(), &data, "SELECT "+reviewColumns+" FROM reviews WHERE product_id IN (?) ORDER BY created_at DESC, id DESC", ids)
	if err != nil {
		log.Error().Err(err).Str("component", "GetReviewsByProductIDs").Msg("")
		return nil, err
	}

	return data, nil
}
