package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/mehtaam/shopstack/internal/core/domain"
)

func (r *Repository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Insert("products").
		Columns("id", "name", "price", "inventory").
		Values(product.ID, product.Name, product.Price, product.Inventory)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if uniqueViolation(err) {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}
	return product, nil
}

func (r *Repository) ReadProduct(ctx context.Context, productID string) (*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name", "price", "inventory").
		From("products").
		Where(sq.Eq{"id": productID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	product := domain.Product{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Inventory,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return &product, nil
}

var saleColumns = []string{
	"id", "product_id", "discount_percent", "allocation", "committed",
	"coupon_allowed", "ledger_allowed", "starts_at", "ends_at",
}

func scanSale(row pgx.Row) (*domain.Sale, error) {
	sale := domain.Sale{}
	err := row.Scan(
		&sale.ID,
		&sale.ProductID,
		&sale.DiscountPercent,
		&sale.Allocation,
		&sale.Committed,
		&sale.CouponAllowed,
		&sale.LedgerAllowed,
		&sale.StartsAt,
		&sale.EndsAt,
	)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *Repository) CreateSale(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	statement := r.db.QueryBuilder.
		Insert("sales").
		Columns("product_id", "discount_percent", "allocation", "committed",
			"coupon_allowed", "ledger_allowed", "starts_at", "ends_at").
		Values(sale.ProductID, sale.DiscountPercent, sale.Allocation, sale.Committed,
			sale.CouponAllowed, sale.LedgerAllowed, sale.StartsAt, sale.EndsAt).
		Suffix("RETURNING id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&sale.ID); err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *Repository) ActiveSaleForProduct(ctx context.Context, productID string, now time.Time) (*domain.Sale, error) {
	statement := r.db.QueryBuilder.
		Select(saleColumns...).
		From("sales").
		Where(sq.Eq{"product_id": productID}).
		Where(sq.LtOrEq{"starts_at": now}).
		Where(sq.GtOrEq{"ends_at": now}).
		Where("committed < allocation").
		OrderBy("starts_at DESC").
		Limit(1)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	sale, err := scanSale(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return sale, nil
}

// CommitSaleQuantity claims sale allocation with a conditional update that
// re-checks both the remaining allocation and real inventory at commit
// time. Zero rows affected means the race was lost.
func (r *Repository) CommitSaleQuantity(ctx context.Context, saleID uint64, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidAmount
	}

	statement := r.db.QueryBuilder.
		Update("sales").
		Set("committed", sq.Expr("committed + ?", quantity)).
		Where(sq.Eq{"id": saleID}).
		Where(sq.Expr("committed + ? <= allocation", quantity)).
		Where(sq.Expr(
			"? <= (SELECT inventory FROM products WHERE products.id = sales.product_id)",
			quantity))

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleSoldOut
	}
	return nil
}

// ReleaseSaleQuantity gives back allocation claimed by an order that failed
// after its sale commits. The guard keeps committed from going negative if
// the same failure is compensated twice.
func (r *Repository) ReleaseSaleQuantity(ctx context.Context, saleID uint64, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidAmount
	}

	statement := r.db.QueryBuilder.
		Update("sales").
		Set("committed", sq.Expr("committed - ?", quantity)).
		Where(sq.Eq{"id": saleID}).
		Where(sq.Expr("committed >= ?", quantity))

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoUpdatedData
	}
	return nil
}
