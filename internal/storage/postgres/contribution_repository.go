package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Teckart20/say-i-do-gifts/internal/domain"
)

type ContributionRepository struct {
	pool *pgxpool.Pool
}

func NewContributionRepository(pool *pgxpool.Pool) *ContributionRepository {
	return &ContributionRepository{pool: pool}
}

func (r *ContributionRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetGiftForUpdate locks the gift row, which serializes every mutation path
// for that gift while leaving other gifts untouched.
func (r *ContributionRepository) GetGiftForUpdate(ctx context.Context, giftID string) (domain.Gift, error) {
	query := `SELECT ` + giftColumns + ` FROM gifts WHERE id = $1 FOR UPDATE`

	gift, err := scanGift(r.queryRow(ctx, query, giftID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Gift{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Gift{}, domain.ErrGiftNotFound
		}
		return domain.Gift{}, fmt.Errorf("get gift for update: %w", err)
	}
	return gift, nil
}

const contributionColumns = `id, gift_id, quantity, amount, contributor_name, contributor_email, message,
payment_method, payment_reference, is_anonymous, is_confirmed, created_at, confirmed_at`

func scanContribution(row pgx.Row) (domain.Contribution, error) {
	var c domain.Contribution
	err := row.Scan(
		&c.ID,
		&c.GiftID,
		&c.Quantity,
		&c.Amount,
		&c.ContributorName,
		&c.ContributorEmail,
		&c.Message,
		&c.PaymentMethod,
		&c.PaymentReference,
		&c.IsAnonymous,
		&c.IsConfirmed,
		&c.CreatedAt,
		&c.ConfirmedAt,
	)
	if err != nil {
		return domain.Contribution{}, err
	}
	return c, nil
}

func (r *ContributionRepository) CreateContribution(ctx context.Context, c domain.Contribution) error {
	const stmt = `
INSERT INTO contributions (id, gift_id, quantity, amount, contributor_name, contributor_email, message,
	payment_method, payment_reference, is_anonymous, is_confirmed, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.exec(ctx, stmt,
		c.ID,
		c.GiftID,
		c.Quantity,
		c.Amount,
		c.ContributorName,
		c.ContributorEmail,
		c.Message,
		c.PaymentMethod,
		c.PaymentReference,
		c.IsAnonymous,
		c.IsConfirmed,
		c.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrGiftNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create contribution: %w", err)
	}
	return nil
}

func (r *ContributionRepository) GetContribution(ctx context.Context, id string) (domain.Contribution, error) {
	query := `SELECT ` + contributionColumns + ` FROM contributions WHERE id = $1`

	c, err := scanContribution(r.queryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Contribution{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Contribution{}, domain.ErrContributionNotFound
		}
		return domain.Contribution{}, fmt.Errorf("get contribution: %w", err)
	}
	return c, nil
}

// MarkConfirmed flips the confirmed flag exactly once; the predicate makes
// retried confirmations a no-op at the row level.
func (r *ContributionRepository) MarkConfirmed(ctx context.Context, id string, confirmedAt time.Time) (bool, error) {
	const stmt = `
UPDATE contributions
SET is_confirmed = TRUE, confirmed_at = $2
WHERE id = $1 AND NOT is_confirmed`

	tag, err := r.exec(ctx, stmt, id, confirmedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("mark confirmed: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ApplyDelta moves the cached aggregates. The predicate re-asserts the unit
// cap inside the database even though callers check it under the row lock.
func (r *ContributionRepository) ApplyDelta(ctx context.Context, giftID string, deltaQuantity int, deltaAmount decimal.Decimal) error {
	const stmt = `
UPDATE gifts
SET purchased_quantity = purchased_quantity + $2,
	collected_amount = collected_amount + $3,
	updated_at = NOW()
WHERE id = $1 AND purchased_quantity + $2 <= desired_quantity`

	tag, err := r.exec(ctx, stmt, giftID, deltaQuantity, deltaAmount)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("apply delta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCapacityExceeded
	}
	return nil
}

func (r *ContributionRepository) SumConfirmed(ctx context.Context, giftID string) (int, decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(quantity), 0), COALESCE(SUM(amount), 0)
FROM contributions
WHERE gift_id = $1 AND is_confirmed`

	var quantity int
	var amount decimal.Decimal
	if err := r.queryRow(ctx, query, giftID).Scan(&quantity, &amount); err != nil {
		if isInvalidUUID(err) {
			return 0, decimal.Zero, domain.ErrInvalidID
		}
		return 0, decimal.Zero, fmt.Errorf("sum confirmed: %w", err)
	}
	return quantity, amount, nil
}

func (r *ContributionRepository) ListByGift(ctx context.Context, giftID string) ([]domain.Contribution, error) {
	var exists bool
	if err := r.queryRow(ctx, `SELECT EXISTS (SELECT 1 FROM gifts WHERE id = $1)`, giftID).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("check gift: %w", err)
	}
	if !exists {
		return nil, domain.ErrGiftNotFound
	}

	query := `SELECT ` + contributionColumns + ` FROM contributions WHERE gift_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.query(ctx, query, giftID)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	var contributions []domain.Contribution
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		contributions = append(contributions, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate contributions: %w", rows.Err())
	}
	return contributions, nil
}

func (r *ContributionRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ContributionRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *ContributionRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
