package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

func (r *Repository) CreateRule(rule *domain.Rule) error {
	query := `
		INSERT INTO rules (shop_id, employee_id, kind, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	payload, err := json.Marshal(rule.Payload)
	if err != nil {
		return err
	}

	params := []any{rule.ShopID, rule.EmployeeID, rule.Kind, payload}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&rule.ID, &rule.CreatedAt); err != nil {
		return err
	}

	return nil
}

// GetRulesByEmployee returns all of a shop's rules grouped by target employee,
// the shape the engine consumes.
func (r *Repository) GetRulesByEmployee(shopID int64) (map[int64][]*domain.Rule, error) {
	query := `
		SELECT id, employee_id, kind, payload, created_at
		FROM rules
		WHERE shop_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := map[int64][]*domain.Rule{}
	for rows.Next() {
		rule := domain.Rule{
			ShopID: shopID,
		}
		var payload []byte
		dst := []any{&rule.ID, &rule.EmployeeID, &rule.Kind, &payload, &rule.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &rule.Payload); err != nil {
			return nil, err
		}
		rules[rule.EmployeeID] = append(rules[rule.EmployeeID], &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *Repository) GetRuleByID(id int64) (*domain.Rule, error) {
	query := `
		SELECT shop_id, employee_id, kind, payload, created_at
		FROM rules WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rule := &domain.Rule{
		ID: id,
	}

	var payload []byte
	dst := []any{&rule.ShopID, &rule.EmployeeID, &rule.Kind, &payload, &rule.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &rule.Payload); err != nil {
		return nil, err
	}

	return rule, nil
}

func (r *Repository) DeleteRule(id int64) error {
	query := `
		DELETE FROM rules WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
