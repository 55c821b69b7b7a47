package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Teckart20/say-i-do-gifts/internal/domain"
)

type RegistryRepository struct {
	pool *pgxpool.Pool
}

func NewRegistryRepository(pool *pgxpool.Pool) *RegistryRepository {
	return &RegistryRepository{pool: pool}
}

func (r *RegistryRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *RegistryRepository) CreateCouple(ctx context.Context, couple domain.Couple) error {
	const stmt = `
INSERT INTO couples (id, slug, bride_name, groom_name, wedding_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.exec(ctx, stmt,
		couple.ID,
		couple.Slug,
		couple.BrideName,
		couple.GroomName,
		couple.WeddingDate,
		couple.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlugAlreadyExists
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create couple: %w", err)
	}
	return nil
}

func (r *RegistryRepository) ListCouples(ctx context.Context) ([]domain.Couple, error) {
	const query = `
SELECT id, slug, bride_name, groom_name, wedding_date, created_at
FROM couples
ORDER BY created_at ASC`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list couples: %w", err)
	}
	defer rows.Close()

	var couples []domain.Couple
	for rows.Next() {
		var c domain.Couple
		if err := rows.Scan(&c.ID, &c.Slug, &c.BrideName, &c.GroomName, &c.WeddingDate, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan couple: %w", err)
		}
		couples = append(couples, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate couples: %w", rows.Err())
	}
	return couples, nil
}

const giftColumns = `id, couple_id, name, description, category, image_url, purchase_link, display_order,
desired_quantity, suggested_value, purchased_quantity, collected_amount, created_at, updated_at`

func scanGift(row pgx.Row) (domain.Gift, error) {
	var g domain.Gift
	var suggested decimal.NullDecimal
	err := row.Scan(
		&g.ID,
		&g.CoupleID,
		&g.Name,
		&g.Description,
		&g.Category,
		&g.ImageURL,
		&g.PurchaseLink,
		&g.DisplayOrder,
		&g.DesiredQuantity,
		&suggested,
		&g.PurchasedQuantity,
		&g.CollectedAmount,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return domain.Gift{}, err
	}
	if suggested.Valid {
		v := suggested.Decimal
		g.SuggestedValue = &v
	}
	return g, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func (r *RegistryRepository) CreateGift(ctx context.Context, gift domain.Gift) error {
	const stmt = `
INSERT INTO gifts (id, couple_id, name, description, category, image_url, purchase_link, display_order,
	desired_quantity, suggested_value, purchased_quantity, collected_amount, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.exec(ctx, stmt,
		gift.ID,
		gift.CoupleID,
		gift.Name,
		gift.Description,
		gift.Category,
		gift.ImageURL,
		gift.PurchaseLink,
		gift.DisplayOrder,
		gift.DesiredQuantity,
		nullDecimal(gift.SuggestedValue),
		gift.PurchasedQuantity,
		gift.CollectedAmount,
		gift.CreatedAt,
		gift.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCoupleNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create gift: %w", err)
	}
	return nil
}

func (r *RegistryRepository) GetGift(ctx context.Context, id string) (domain.Gift, error) {
	query := `SELECT ` + giftColumns + ` FROM gifts WHERE id = $1`

	gift, err := scanGift(r.queryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Gift{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Gift{}, domain.ErrGiftNotFound
		}
		return domain.Gift{}, fmt.Errorf("get gift: %w", err)
	}
	return gift, nil
}

func (r *RegistryRepository) GetGiftForUpdate(ctx context.Context, id string) (domain.Gift, error) {
	query := `SELECT ` + giftColumns + ` FROM gifts WHERE id = $1 FOR UPDATE`

	gift, err := scanGift(r.queryRow(ctx, query, id))
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

func (r *RegistryRepository) ListGiftsByCouple(ctx context.Context, coupleID string) ([]domain.Gift, error) {
	query := `SELECT ` + giftColumns + ` FROM gifts WHERE couple_id = $1 ORDER BY display_order ASC, created_at ASC`

	rows, err := r.query(ctx, query, coupleID)
	if err != nil {
		return nil, fmt.Errorf("list gifts: %w", err)
	}
	defer rows.Close()

	var gifts []domain.Gift
	for rows.Next() {
		gift, err := scanGift(rows)
		if err != nil {
			return nil, fmt.Errorf("scan gift: %w", err)
		}
		gifts = append(gifts, gift)
	}
	if rows.Err() != nil {
		if isInvalidUUID(rows.Err()) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("iterate gifts: %w", rows.Err())
	}
	return gifts, nil
}

func (r *RegistryRepository) UpdateGiftTarget(ctx context.Context, id string, desiredQuantity int, suggestedValue *decimal.Decimal) error {
	const stmt = `
UPDATE gifts
SET desired_quantity = $2, suggested_value = $3, updated_at = NOW()
WHERE id = $1 AND purchased_quantity <= $2`

	tag, err := r.exec(ctx, stmt, id, desiredQuantity, nullDecimal(suggestedValue))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update gift target: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidTarget
	}
	return nil
}

func (r *RegistryRepository) CountConfirmedByGift(ctx context.Context, giftID string) (int, error) {
	const query = `SELECT COUNT(*) FROM contributions WHERE gift_id = $1 AND is_confirmed`

	var count int
	if err := r.queryRow(ctx, query, giftID).Scan(&count); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, fmt.Errorf("count confirmed contributions: %w", err)
	}
	return count, nil
}

func (r *RegistryRepository) DeleteGift(ctx context.Context, id string) error {
	const stmt = `DELETE FROM gifts WHERE id = $1`

	tag, err := r.exec(ctx, stmt, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete gift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGiftNotFound
	}
	return nil
}

func (r *RegistryRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *RegistryRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *RegistryRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
