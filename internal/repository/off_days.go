package repository

import (
	"context"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

func (r *Repository) CreateOffDay(offDay *domain.OffDay) error {
	query := `
		INSERT INTO off_days (employee_id, date, reason, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{offDay.EmployeeID, offDay.Date, offDay.Reason, domain.OffDayPending}
	dst := []any{&offDay.ID, &offDay.CreatedAt, &offDay.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}
	offDay.Status = domain.OffDayPending

	return nil
}

func (r *Repository) GetOffDayByID(id int64) (*domain.OffDay, error) {
	query := `
		SELECT employee_id, date, reason, status, created_at, version
		FROM off_days WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	offDay := &domain.OffDay{
		ID: id,
	}

	var date time.Time
	dst := []any{&offDay.EmployeeID, &date, &offDay.Reason, &offDay.Status, &offDay.CreatedAt, &offDay.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	offDay.Date = date.Format(domain.DateLayout)

	return offDay, nil
}

func (r *Repository) GetOffDaysByShop(shopID int64) ([]*domain.OffDay, error) {
	query := `
		SELECT od.id, od.employee_id, od.date, od.reason, od.status, od.created_at, od.version
		FROM off_days od
		JOIN shop_users su ON su.user_id = od.employee_id
		WHERE su.shop_id = $1
		ORDER BY od.date, od.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offDays := []*domain.OffDay{}
	for rows.Next() {
		var offDay domain.OffDay
		var date time.Time
		dst := []any{&offDay.ID, &offDay.EmployeeID, &date, &offDay.Reason, &offDay.Status, &offDay.CreatedAt, &offDay.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		offDay.Date = date.Format(domain.DateLayout)
		offDays = append(offDays, &offDay)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return offDays, nil
}

// UpdateOffDayStatus transitions a pending off-day; the WHERE clause keeps the
// transition single-shot.
func (r *Repository) UpdateOffDayStatus(offDay *domain.OffDay, status domain.OffDayStatus) error {
	query := `
		UPDATE off_days
		SET status = $1, version = version + 1
		WHERE id = $2 AND status = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{status, offDay.ID, domain.OffDayPending, offDay.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&offDay.Version); err != nil {
		return err
	}
	offDay.Status = status

	return nil
}

// GetApprovedOffDays prefetches every approved off-day for the employee set and
// date range in one query, keyed by employee. The engine never looks up
// per-candidate leave inside its scan loop.
func (r *Repository) GetApprovedOffDays(employeeIDs []int64, dateFrom, dateTo time.Time) (map[int64][]string, error) {
	query := `
		SELECT employee_id, date
		FROM off_days
		WHERE employee_id = ANY($1) AND date BETWEEN $2 AND $3 AND status = $4
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeIDs, dateFrom, dateTo, domain.OffDayApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offDays := map[int64][]string{}
	for rows.Next() {
		var employeeID int64
		var date time.Time
		if err := rows.Scan(&employeeID, &date); err != nil {
			return nil, err
		}
		offDays[employeeID] = append(offDays[employeeID], date.Format(domain.DateLayout))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return offDays, nil
}
