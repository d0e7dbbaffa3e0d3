package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/mehtaam/shopstack/internal/core/domain"
)

var ledgerColumns = []string{
	"id", "user_id", "order_id", "kind", "amount",
	"issued_at", "expires_at", "consumed", "source_entry_id",
}

func scanLedgerEntry(row pgx.Row) (*domain.RewardLedgerEntry, error) {
	entry := domain.RewardLedgerEntry{}
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.OrderID,
		&entry.Kind,
		&entry.Amount,
		&entry.IssuedAt,
		&entry.ExpiresAt,
		&entry.Consumed,
		&entry.SourceEntryID,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// InsertLedgerEntry attempts the unique-constrained append. A duplicate
// (order, kind) — or (user, kind) for non-order rewards — comes back as
// domain.ErrConflictingData, which callers treat as the benign
// already-granted case.
func (r *Repository) InsertLedgerEntry(ctx context.Context,
	entry *domain.RewardLedgerEntry) (*domain.RewardLedgerEntry, error) {

	statement := r.db.QueryBuilder.
		Insert("reward_ledger").
		Columns("user_id", "order_id", "kind", "amount", "issued_at", "expires_at", "consumed").
		Values(entry.UserID, entry.OrderID, entry.Kind, entry.Amount,
			entry.IssuedAt, entry.ExpiresAt, entry.Consumed).
		Suffix("RETURNING id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&entry.ID)
	if err != nil {
		if uniqueViolation(err) {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}
	return entry, nil
}

func (r *Repository) ReadLedgerEntryByOrder(ctx context.Context,
	orderID string, kind domain.RewardKind) (*domain.RewardLedgerEntry, error) {

	statement := r.db.QueryBuilder.
		Select(ledgerColumns...).
		From("reward_ledger").
		Where(sq.Eq{"order_id": orderID, "kind": kind}).
		Where("source_entry_id IS NULL")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	entry, err := scanLedgerEntry(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (r *Repository) ReadLedgerEntryByUser(ctx context.Context,
	userID uint64, kind domain.RewardKind) (*domain.RewardLedgerEntry, error) {

	statement := r.db.QueryBuilder.
		Select(ledgerColumns...).
		From("reward_ledger").
		Where(sq.Eq{"user_id": userID, "kind": kind}).
		Where("order_id IS NULL").
		Where("source_entry_id IS NULL")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	entry, err := scanLedgerEntry(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (r *Repository) ListLedgerEntries(ctx context.Context, userID uint64) ([]*domain.RewardLedgerEntry, error) {
	statement := r.db.QueryBuilder.
		Select(ledgerColumns...).
		From("reward_ledger").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("issued_at DESC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.RewardLedgerEntry, 0)
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// SumBalance recomputes the spendable balance from the ledger. Expiry is
// decided against the caller's single instant, never a per-row clock read.
func (r *Repository) SumBalance(ctx context.Context, userID uint64, now time.Time) (int64, error) {
	statement := r.db.QueryBuilder.
		Select("COALESCE(SUM(amount), 0)").
		From("reward_ledger").
		Where(sq.Eq{"user_id": userID, "consumed": false}).
		Where(sq.Or{
			sq.Eq{"expires_at": nil},
			sq.Gt{"expires_at": now},
		})

	sql, args, err := statement.ToSql()
	if err != nil {
		return 0, err
	}

	var balance int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&balance); err != nil {
		return 0, err
	}
	return balance, nil
}

// SpendBalance consumes entries oldest-first inside one transaction. The
// user's unconsumed rows are locked, the available sum is re-checked at
// commit time, and an entry larger than the remainder is flipped consumed
// with a residual entry appended for the leftover. That keeps the ledger
// append-only while the balance drops by exactly the requested amount.
func (r *Repository) SpendBalance(ctx context.Context, userID uint64, amount int64, now time.Time) (int64, error) {
	var remaining int64

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		statement := r.db.QueryBuilder.
			Select(ledgerColumns...).
			From("reward_ledger").
			Where(sq.Eq{"user_id": userID, "consumed": false}).
			Where(sq.Or{
				sq.Eq{"expires_at": nil},
				sq.Gt{"expires_at": now},
			}).
			OrderBy("issued_at").
			Suffix("FOR UPDATE")

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return err
		}

		entries := make([]*domain.RewardLedgerEntry, 0)
		var available int64
		for rows.Next() {
			entry, err := scanLedgerEntry(rows)
			if err != nil {
				rows.Close()
				return err
			}
			entries = append(entries, entry)
			available += entry.Amount
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		if available < amount {
			return domain.ErrInsufficientBalance
		}

		left := amount
		for _, entry := range entries {
			if left == 0 {
				break
			}

			consume := r.db.QueryBuilder.
				Update("reward_ledger").
				Set("consumed", true).
				Where(sq.Eq{"id": entry.ID})
			sql, args, err := consume.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return err
			}

			if entry.Amount > left {
				residual := r.db.QueryBuilder.
					Insert("reward_ledger").
					Columns("user_id", "order_id", "kind", "amount",
						"issued_at", "expires_at", "consumed", "source_entry_id").
					Values(entry.UserID, entry.OrderID, entry.Kind, entry.Amount-left,
						entry.IssuedAt, entry.ExpiresAt, false, entry.ID)
				sql, args, err := residual.ToSql()
				if err != nil {
					return err
				}
				if _, err := tx.Exec(ctx, sql, args...); err != nil {
					return err
				}
				left = 0
				break
			}
			left -= entry.Amount
		}

		remaining = available - amount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}
