package repository

import (
	"context"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/mehtaam/shopstack/internal/core/domain"
)

var orderColumns = []string{
	"id", "user_id", "payment_method", "is_paid", "status",
	"subtotal", "discount", "delivery_charge", "convenience_fee",
	"platform_fee", "total", "annotations", "placed_at",
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	order := domain.Order{}
	var annotations []byte
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.PaymentMethod,
		&order.IsPaid,
		&order.Status,
		&order.Subtotal,
		&order.Discount,
		&order.DeliveryCharge,
		&order.ConvenienceFee,
		&order.PlatformFee,
		&order.Total,
		&annotations,
		&order.PlacedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(annotations) > 0 {
		// A corrupt annotation blob reads as empty rather than failing the
		// order read; the eligibility pre-filter treats that as no flags set.
		_ = json.Unmarshal(annotations, &order.Annotations)
	}
	return &order, nil
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	annotations, err := json.Marshal(order.Annotations)
	if err != nil {
		return nil, err
	}
	if order.Annotations == nil {
		annotations = []byte(`{}`)
	}

	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		orderSt := r.db.QueryBuilder.
			Insert("orders").
			Columns(orderColumns...).
			Values(order.ID, order.UserID, order.PaymentMethod, order.IsPaid, order.Status,
				order.Subtotal, order.Discount, order.DeliveryCharge, order.ConvenienceFee,
				order.PlatformFee, order.Total, annotations, order.PlacedAt)

		sql, args, err := orderSt.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		for i, item := range order.Items {
			itemSt := r.db.QueryBuilder.
				Insert("order_items").
				Columns("order_id", "line_index", "product_id", "name", "unit_price", "quantity").
				Values(order.ID, i, item.ProductID, item.Name, item.UnitPrice, item.Quantity)

			sql, args, err := itemSt.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if uniqueViolation(err) {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}
	return order, nil
}

func (r *Repository) ReadOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Repository) loadItems(ctx context.Context, order *domain.Order) error {
	statement := r.db.QueryBuilder.
		Select("product_id", "name", "unit_price", "quantity").
		From("order_items").
		Where(sq.Eq{"order_id": order.ID}).
		OrderBy("line_index")

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		item := domain.LineItem{}
		if err := rows.Scan(&item.ProductID, &item.Name, &item.UnitPrice, &item.Quantity); err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func (r *Repository) ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("placed_at DESC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *Repository) SetOrderPaid(ctx context.Context, orderID string, at time.Time) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Update("orders").
		Set("is_paid", true).
		Where(sq.Eq{"id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrDataNotFound
	}
	return r.ReadOrder(ctx, orderID)
}

// PatchOrderAnnotations merges the patch into the jsonb annotation bag
// without touching other keys.
func (r *Repository) PatchOrderAnnotations(ctx context.Context, orderID string, patch map[string]any) error {
	raw, err := json.Marshal(patch)
	if err != nil {
		return err
	}

	statement := r.db.QueryBuilder.
		Update("orders").
		Set("annotations", sq.Expr("annotations || ?::jsonb", raw)).
		Where(sq.Eq{"id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}
