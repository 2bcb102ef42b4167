package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ratewatch/rate-notifier/internal/apperrors"
	"github.com/ratewatch/rate-notifier/internal/core/ports"
	"github.com/ratewatch/rate-notifier/internal/models"
)

// PgxSubscriptionRepository implements ports.SubscriptionRepository using pgxpool.
type PgxSubscriptionRepository struct {
	BaseRepository
}

// NewPgxSubscriptionRepository creates a new PgxSubscriptionRepository.
func NewPgxSubscriptionRepository(pool *pgxpool.Pool) *PgxSubscriptionRepository {
	return &PgxSubscriptionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ ports.SubscriptionRepository = (*PgxSubscriptionRepository)(nil)

// SaveSubscription upserts by natural key. The unique index on
// (email, currency_code) serializes concurrent subscribes for the same pair;
// the update path never touches subscription_id or created_at.
func (r *PgxSubscriptionRepository) SaveSubscription(ctx context.Context, sub models.Subscription) error {
	query := `
		INSERT INTO subscriptions (subscription_id, email, currency_code, active, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email, currency_code) DO UPDATE SET
			active = EXCLUDED.active,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		sub.SubscriptionID,
		strings.ToLower(sub.Email),
		strings.ToUpper(sub.CurrencyCode),
		sub.Active,
		sub.CreatedAt,
		sub.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save subscription %s/%s: %w", sub.Email, sub.CurrencyCode, err)
	}
	return nil
}

// FindByEmailAndCurrency retrieves the subscription row for one (email, currency) pair.
func (r *PgxSubscriptionRepository) FindByEmailAndCurrency(ctx context.Context, email, currencyCode string) (*models.Subscription, error) {
	query := `
		SELECT subscription_id, email, currency_code, active, created_at, last_updated_at
		FROM subscriptions
		WHERE email = $1 AND currency_code = $2;
	`
	var sub models.Subscription
	err := r.Pool.QueryRow(ctx, query, strings.ToLower(email), strings.ToUpper(currencyCode)).Scan(
		&sub.SubscriptionID, &sub.Email, &sub.CurrencyCode,
		&sub.Active, &sub.CreatedAt, &sub.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: subscription", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}
	return &sub, nil
}

// ListActive retrieves all rows with active=true.
func (r *PgxSubscriptionRepository) ListActive(ctx context.Context) ([]models.Subscription, error) {
	query := `
		SELECT subscription_id, email, currency_code, active, created_at, last_updated_at
		FROM subscriptions
		WHERE active = TRUE;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []models.Subscription
	for rows.Next() {
		var sub models.Subscription
		if err := rows.Scan(
			&sub.SubscriptionID, &sub.Email, &sub.CurrencyCode,
			&sub.Active, &sub.CreatedAt, &sub.LastUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}
	return subs, nil
}
