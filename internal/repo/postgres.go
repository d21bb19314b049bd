package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/entities"
	"github.com/SergeyBogomolovv/order-orchestrator/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type postgresRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewPostgresRepo(db *sqlx.DB) *postgresRepo {
	return &postgresRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresRepo) SaveOrder(ctx context.Context, o entities.Order) (entities.Order, error) {
	query, args := r.qb.Insert("orders").
		Columns("customer_id", "order_status", "payment_status", "order_total", "created_at").
		Values(o.CustomerID, string(o.OrderStatus), string(o.PaymentStatus), o.Total, o.CreatedAt).
		Suffix("RETURNING order_id, created_at").
		MustSql()

	var saved struct {
		OrderID   int64        `db:"order_id"`
		CreatedAt sql.NullTime `db:"created_at"`
	}
	if err := r.getContext(ctx, &saved, query, args...); err != nil {
		return entities.Order{}, fmt.Errorf("failed to save order: %w", err)
	}

	o.OrderID = saved.OrderID
	if saved.CreatedAt.Valid {
		o.CreatedAt = saved.CreatedAt.Time
	}
	return o, nil
}

func (r *postgresRepo) SaveItems(ctx context.Context, orderID int64, items []entities.Item) error {
	if len(items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").
		Columns("order_id", "product_id", "sku", "quantity", "unit_price")

	for _, it := range items {
		q = q.Values(orderID, it.ProductID, it.SKU, it.Quantity, it.UnitPrice)
	}

	query, args := q.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save items: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, orderID int64) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.itemsByOrder(ctx, []int64{orderID})
	if err != nil {
		return entities.Order{}, err
	}

	return OrderToEntity(order, items[orderID]), nil
}

// UpdateStatus is a compare-and-set on order_status: the row is written only
// while it still holds expected.
func (r *postgresRepo) UpdateStatus(
	ctx context.Context,
	orderID int64,
	expected entities.OrderStatus,
	status entities.OrderStatus,
	payment entities.PaymentStatus,
) error {
	query, args := r.qb.Update("orders").
		Set("order_status", string(status)).
		Set("payment_status", string(payment)).
		Where(sq.Eq{"order_id": orderID, "order_status": string(expected)}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected > 0 {
		return nil
	}

	query, args = r.qb.Select("1").
		From("orders").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	var exists int
	err = r.getContext(ctx, &exists, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check order: %w", err)
	}
	return fmt.Errorf("%w: order %d is no longer %s", entities.ErrStatusConflict, orderID, expected)
}

func (r *postgresRepo) CustomerOrders(ctx context.Context, customerID int64) ([]entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC", "order_id DESC").
		MustSql()

	return r.ordersWithItems(ctx, query, args...)
}

func (r *postgresRepo) LatestOrders(ctx context.Context, count int) ([]entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC", "order_id DESC").
		Limit(uint64(count)).
		MustSql()

	return r.ordersWithItems(ctx, query, args...)
}

func (r *postgresRepo) ordersWithItems(ctx context.Context, query string, args ...any) ([]entities.Order, error) {
	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}

	if len(orders) == 0 {
		return []entities.Order{}, nil
	}

	ids := make([]int64, len(orders))
	for i, order := range orders {
		ids[i] = order.OrderID
	}

	items, err := r.itemsByOrder(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]entities.Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, OrderToEntity(order, items[order.OrderID]))
	}
	return result, nil
}

// itemsByOrder keeps items in insertion order within each order.
func (r *postgresRepo) itemsByOrder(ctx context.Context, orderIDs []int64) (map[int64][]Item, error) {
	query, args := r.qb.Select(itemColumns...).
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("order_item_id").
		MustSql()

	var items []Item
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}

	byOrder := make(map[int64][]Item, len(orderIDs))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	return byOrder, nil
}

func (r *postgresRepo) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return r.db.ExecContext(ctx, query, args...)
}

func (r *postgresRepo) getContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return r.db.GetContext(ctx, dest, query, args...)
}

func (r *postgresRepo) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return r.db.SelectContext(ctx, dest, query, args...)
}
