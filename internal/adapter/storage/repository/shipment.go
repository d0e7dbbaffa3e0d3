package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/mehtaam/shopstack/internal/core/domain"
	"github.com/mehtaam/shopstack/internal/core/port"
)

var shipmentColumns = []string{
	"order_id", "line_index", "product_id", "status", "flow", "progress",
	"tracking_number", "estimated_delivery", "delivered_at", "updated_at",
}

func scanShipmentLine(row pgx.Row) (*domain.ShipmentLine, error) {
	line := domain.ShipmentLine{}
	err := row.Scan(
		&line.OrderID,
		&line.LineIndex,
		&line.ProductID,
		&line.Status,
		&line.Flow,
		&line.Progress,
		&line.TrackingNumber,
		&line.EstimatedDelivery,
		&line.DeliveredAt,
		&line.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *Repository) CreateShipmentLines(ctx context.Context, lines []*domain.ShipmentLine) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, line := range lines {
			statement := r.db.QueryBuilder.
				Insert("shipment_lines").
				Columns(shipmentColumns...).
				Values(line.OrderID, line.LineIndex, line.ProductID, line.Status, line.Flow,
					line.Progress, line.TrackingNumber, line.EstimatedDelivery,
					line.DeliveredAt, line.UpdatedAt)

			sql, args, err := statement.ToSql()
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
			return domain.ErrConflictingData
		}
		return err
	}
	return nil
}

func (r *Repository) ListShipmentLines(ctx context.Context, orderID string) ([]*domain.ShipmentLine, error) {
	statement := r.db.QueryBuilder.
		Select(shipmentColumns...).
		From("shipment_lines").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("line_index")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.ShipmentLine, 0)
	for rows.Next() {
		line, err := scanShipmentLine(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateShipmentLine runs updateFn against the current row under a row lock
// so concurrent courier reports serialize per line. The ratchet logic lives
// in the closure; the repository only guarantees read-modify-write atomicity.
func (r *Repository) UpdateShipmentLine(ctx context.Context,
	orderID string, lineIndex int, updateFn port.UpdateShipmentFn) (*domain.ShipmentLine, error) {

	var line *domain.ShipmentLine
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		statement := r.db.QueryBuilder.
			Select(shipmentColumns...).
			From("shipment_lines").
			Where(sq.Eq{"order_id": orderID, "line_index": lineIndex}).
			Suffix("FOR UPDATE")

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}

		line, err = scanShipmentLine(tx.QueryRow(ctx, sql, args...))
		if err != nil {
			if err == pgx.ErrNoRows {
				return domain.ErrDataNotFound
			}
			return err
		}

		if err := updateFn(line); err != nil {
			return err
		}

		update := r.db.QueryBuilder.
			Update("shipment_lines").
			Set("status", line.Status).
			Set("flow", line.Flow).
			Set("progress", line.Progress).
			Set("tracking_number", line.TrackingNumber).
			Set("estimated_delivery", line.EstimatedDelivery).
			Set("delivered_at", line.DeliveredAt).
			Set("updated_at", line.UpdatedAt).
			Where(sq.Eq{"order_id": orderID, "line_index": lineIndex})

		sql, args, err = update.ToSql()
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, sql, args...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}
