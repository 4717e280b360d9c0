package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

func (r *Repository) CreateShiftLabel(label *domain.ShiftLabel) error {
	query := `
		INSERT INTO shift_labels (shop_id, name, default_duration_minutes, applicable_days)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	days, err := json.Marshal(label.ApplicableDays)
	if err != nil {
		return err
	}

	params := []any{label.ShopID, label.Name, label.DefaultDurationMinutes, days}
	dst := []any{&label.ID, &label.IsActive, &label.CreatedAt, &label.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftLabelsByShop(shopID int64, activeOnly bool) ([]*domain.ShiftLabel, error) {
	// creation (id) order matters: the engine fills labels in this order
	query := `
		SELECT id, name, default_duration_minutes, applicable_days, is_active, created_at, version
		FROM shift_labels
		WHERE shop_id = $1 AND (NOT $2 OR is_active = TRUE)
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shopID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := []*domain.ShiftLabel{}
	for rows.Next() {
		label := domain.ShiftLabel{
			ShopID: shopID,
		}
		var days []byte
		dst := []any{&label.ID, &label.Name, &label.DefaultDurationMinutes, &days, &label.IsActive, &label.CreatedAt, &label.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(days, &label.ApplicableDays); err != nil {
			return nil, err
		}
		labels = append(labels, &label)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return labels, nil
}

func (r *Repository) GetShiftLabelByID(id int64) (*domain.ShiftLabel, error) {
	query := `
		SELECT shop_id, name, default_duration_minutes, applicable_days, is_active, created_at, version
		FROM shift_labels WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	label := &domain.ShiftLabel{
		ID: id,
	}

	var days []byte
	dst := []any{&label.ShopID, &label.Name, &label.DefaultDurationMinutes, &days, &label.IsActive, &label.CreatedAt, &label.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(days, &label.ApplicableDays); err != nil {
		return nil, err
	}

	return label, nil
}

func (r *Repository) UpdateShiftLabel(label *domain.ShiftLabel) error {
	query := `
		UPDATE shift_labels
		SET
			name = $1,
			default_duration_minutes = $2,
			applicable_days = $3,
			is_active = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	days, err := json.Marshal(label.ApplicableDays)
	if err != nil {
		return err
	}

	params := []any{label.Name, label.DefaultDurationMinutes, days, label.IsActive, label.ID, label.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&label.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShiftLabel(id int64) error {
	query := `
		DELETE FROM shift_labels WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
