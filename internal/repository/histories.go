package repository

import (
	"context"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

func (r *Repository) InsertHistory(history *domain.History) error {
	query := `
		INSERT INTO histories (action, actor_id, shop_id, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{history.Action, history.ActorID, history.ShopID, history.Payload, history.OccurredAt}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&history.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetHistoriesByShop(shopID int64) ([]*domain.History, error) {
	query := `
		SELECT id, action, actor_id, payload, occurred_at
		FROM histories
		WHERE shop_id = $1
		ORDER BY occurred_at DESC, id DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	histories := []*domain.History{}
	for rows.Next() {
		history := domain.History{
			ShopID: shopID,
		}
		dst := []any{&history.ID, &history.Action, &history.ActorID, &history.Payload, &history.OccurredAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		histories = append(histories, &history)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return histories, nil
}
