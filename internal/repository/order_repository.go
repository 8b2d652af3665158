package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/vparmar-art/MarketplaceApp/internal/domain"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
)

const (
	orderColumns         = "id, user_id, total_amount, shipping_address, destination_country, destination_port, shipping_terms, payment_terms, status, notes, estimated_delivery_date, created_at, updated_at"
	orderItemColumns     = "id, order_id, product_id, quantity, price"
	orderDocumentColumns = "id, order_id, document_type, document, description, uploaded_at"
)

type OrderRepositoryImpl struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func CreateOrderRepository(db *sqlx.DB) OrderRepository {
	return &OrderRepositoryImpl{
		db: db,
	}
}

func (r *OrderRepositoryImpl) conn() sqlx.ExtContext {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *OrderRepositoryImpl) HandleTrx(ctx context.Context, fn func(repo OrderRepository) error) error {
	if r.tx != nil {
		return fn(r)
	}

	return runInTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(&OrderRepositoryImpl{db: r.db, tx: tx})
	})
}

func (r *OrderRepositoryImpl) AddOrder(ctx context.Context, data domain.Order) (id int64, err error) {
	id, err = insertReturningID(ctx, r.conn(), "INSERT INTO orders(user_id, total_amount, shipping_address, destination_country, destination_port, shipping_terms, payment_terms, status, notes, estimated_delivery_date, created_at, updated_at) VALUES (:user_id, :total_amount, :shipping_address, :destination_country, :destination_port, :shipping_terms, :payment_terms, :status, :notes, :estimated_delivery_date, :created_at, :updated_at) RETURNING id", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddOrder").Msg("")
		return 0, err
	}

	return id, nil
}

func (r *OrderRepositoryImpl) AddOrderItem(ctx context.Context, data domain.OrderItem) (id int64, err error) {
	id, err = insertReturningID(ctx, r.conn(), "INSERT INTO order_items(order_id, product_id, quantity, price) VALUES (:order_id, :product_id, :quantity, :price) RETURNING id", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddOrderItem").Msg("")
		return 0, err
	}

	return id, nil
}

func (r *OrderRepositoryImpl) getOrder(ctx context.Context, component, query string, id int64) (data domain.Order, err error) {
	err = sqlx.GetContext(ctx, r.conn(), &data, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", component).Msg("")
		return data, err
	}

	return data, nil
}

func (r *OrderRepositoryImpl) GetOrderByID(ctx context.Context, id int64) (data domain.Order, err error) {
	return r.getOrder(ctx, "GetOrderByID", "SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
}

func (r *OrderRepositoryImpl) LockOrderByID(ctx context.Context, id int64) (data domain.Order, err error) {
	return r.getOrder(ctx, "LockOrderByID", "SELECT "+orderColumns+" FROM orders WHERE id = $1 FOR UPDATE", id)
}

func (r *OrderRepositoryImpl) GetOrders(ctx context.Context, filter pkgdto.Filter, userID int64) (data []domain.Order, err error) {
	args := &queryArgs{}
	query := "SELECT " + orderColumns + " FROM orders" + ownerClause(args, "user_id", userID) + " ORDER BY created_at DESC, id DESC"
	query += args.paginate(filter)

	err = sqlx.SelectContext(ctx, r.conn(), &data, query, args.values...)
	if err != nil {
		log.Error().Err(err).Str("component", "GetOrders").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *OrderRepositoryImpl) CountOrders(ctx context.Context, userID int64) (count uint64, err error) {
	args := &queryArgs{}
	err = sqlx.GetContext(ctx, r.conn(), &count, "SELECT COUNT(*) FROM orders"+ownerClause(args, "user_id", userID), args.values...)
	if err != nil {
		log.Error().Err(err).Str("component", "CountOrders").Msg("")
		return 0, err
	}

	return count, nil
}

func (r *OrderRepositoryImpl) UpdateOrder(ctx context.Context, data domain.Order) (err error) {
	_, err = sqlx.NamedExecContext(ctx, r.conn(), "UPDATE orders SET shipping_address = :shipping_address, destination_country = :destination_country, destination_port = :destination_port, shipping_terms = :shipping_terms, payment_terms = :payment_terms, status = :status, notes = :notes, estimated_delivery_date = :estimated_delivery_date, updated_at = :updated_at WHERE id = :id", data)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateOrder").Msg("")
		return err
	}

	return nil
}

func (r *OrderRepositoryImpl) DeleteOrder(ctx context.Context, id int64) (err error) {
	_, err = r.conn().ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		log.Error().Err(err).Str("component", "DeleteOrder").Msg("")
		return err
	}

	return nil
}

func (r *OrderRepositoryImpl) GetOrderItemsByOrderIDs(ctx context.Context, ids []int64) (data []domain.OrderItem, err error) {
	err = selectIn(ctx, r.conn(), &data, "SELECT "+orderItemColumns+" FROM order_items WHERE order_id IN (?) ORDER BY id", ids)
	if err != nil {
		log.Error().Err(err).Str("component", "GetOrderItemsByOrderIDs").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *OrderRepositoryImpl) AddOrderDocument(ctx context.Context, data domain.OrderDocument) (id int64, err error) {
	id, err = insertReturningID(ctx, r.conn(), "INSERT INTO order_documents(order_id, document_type, document, description, uploaded_at) VALUES (:order_id, :document_type, :document, :description, :uploaded_at) RETURNING id", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddOrderDocument").Msg("")
		return 0, err
	}

	return id, nil
}

func (r *OrderRepositoryImpl) GetOrderDocumentsByOrderIDs(ctx context.Context, ids []int64) (data []domain.OrderDocument, err error) {
	err = selectIn(ctx, r.conn(), &data, "SELECT "+orderDocumentColumns+" FROM order_documents WHERE order_id IN (?) ORDER BY uploaded_at, id", ids)
	if err != nil {
		log.Error().Err(err).Str("component", "GetOrderDocumentsByOrderIDs").Msg("")
		return nil, err
	}

	return data, nil
}
