package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

// shiftsShopDateKey is the schema-level uniqueness constraint behind the
// one-record-per-(shop,date) invariant.
const shiftsShopDateKey = "shifts_shop_id_date_key"

func scanAssignments(raw []byte) ([]domain.Assignment, error) {
	assignments := []domain.Assignment{}
	if err := json.Unmarshal(raw, &assignments); err != nil {
		return nil, fmt.Errorf("malformed assignment list in storage: %w", err)
	}
	return assignments, nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `
		SELECT shop_id, date, assignments, created_at, version
		FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	shift := &domain.Shift{
		ID: id,
	}

	var date time.Time
	var raw []byte
	dst := []any{&shift.ShopID, &date, &raw, &shift.CreatedAt, &shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	shift.Date = date.Format(domain.DateLayout)

	assignments, err := scanAssignments(raw)
	if err != nil {
		return nil, err
	}
	shift.Assignments = assignments

	return shift, nil
}

func (r *Repository) GetShiftByShopAndDate(shopID int64, date string) (*domain.Shift, error) {
	query := `
		SELECT id, assignments, created_at, version
		FROM shifts WHERE shop_id = $1 AND date = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	shift := &domain.Shift{
		ShopID: shopID,
		Date:   date,
	}

	var raw []byte
	dst := []any{&shift.ID, &raw, &shift.CreatedAt, &shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, shopID, date).Scan(dst...); err != nil {
		return nil, err
	}

	assignments, err := scanAssignments(raw)
	if err != nil {
		return nil, err
	}
	shift.Assignments = assignments

	return shift, nil
}

func (r *Repository) GetShiftsByShopAndDateRange(shopID int64, dateFrom, dateTo time.Time) ([]*domain.Shift, error) {
	query := `
		SELECT id, date, assignments, created_at, version
		FROM shifts
		WHERE shop_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shopID, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := []*domain.Shift{}
	for rows.Next() {
		shift := domain.Shift{
			ShopID: shopID,
		}
		var date time.Time
		var raw []byte
		dst := []any{&shift.ID, &date, &raw, &shift.CreatedAt, &shift.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shift.Date = date.Format(domain.DateLayout)

		assignments, err := scanAssignments(raw)
		if err != nil {
			return nil, err
		}
		shift.Assignments = assignments
		shifts = append(shifts, &shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

// lockShiftRow reads the (shop, date) row under FOR UPDATE so that concurrent
// read-modify-write cycles on the same day serialize instead of losing updates.
func lockShiftRow(ctx context.Context, tx *sql.Tx, shopID int64, date string) (*domain.Shift, error) {
	query := `
		SELECT id, assignments, created_at, version
		FROM shifts WHERE shop_id = $1 AND date = $2
		FOR UPDATE
	`

	shift := &domain.Shift{
		ShopID: shopID,
		Date:   date,
	}

	var raw []byte
	dst := []any{&shift.ID, &raw, &shift.CreatedAt, &shift.Version}
	if err := tx.QueryRowContext(ctx, query, shopID, date).Scan(dst...); err != nil {
		return nil, err
	}

	assignments, err := scanAssignments(raw)
	if err != nil {
		return nil, err
	}
	shift.Assignments = assignments

	return shift, nil
}

func insertShift(ctx context.Context, tx *sql.Tx, shift *domain.Shift) error {
	query := `
		INSERT INTO shifts (shop_id, date, assignments)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	raw, err := json.Marshal(shift.Assignments)
	if err != nil {
		return err
	}

	if err := tx.QueryRowContext(ctx, query, shift.ShopID, shift.Date, raw).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == shiftsShopDateKey {
			// someone else created the day between our read and this insert
			return fmt.Errorf("shift for this date already exists: %w", domain.ErrConflict)
		}
		return err
	}

	return nil
}

func updateShiftAssignments(ctx context.Context, tx *sql.Tx, shift *domain.Shift) error {
	query := `
		UPDATE shifts
		SET assignments = $1, version = version + 1
		WHERE id = $2
		RETURNING version
	`

	raw, err := json.Marshal(shift.Assignments)
	if err != nil {
		return err
	}

	if err := tx.QueryRowContext(ctx, query, raw, shift.ID).Scan(&shift.Version); err != nil {
		return err
	}

	return nil
}

// UpsertShiftAssignments implements the manual create-or-merge semantics: a
// missing day is created from the (sentinel-stripped) incoming list; an
// existing day gets stored-then-incoming concatenation before stripping.
// Returns the persisted shift and whether the day already existed.
func (r *Repository) UpsertShiftAssignments(shopID int64, date string, incoming []domain.Assignment) (*domain.Shift, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	shift, err := lockShiftRow(ctx, tx, shopID, date)
	existed := true
	switch {
	case err == nil:
		shift.Assignments = domain.MergeAssignments(shift.Assignments, incoming)
		if err := updateShiftAssignments(ctx, tx, shift); err != nil {
			return nil, false, err
		}
	case errors.Is(err, sql.ErrNoRows):
		existed = false
		shift = &domain.Shift{
			ShopID:      shopID,
			Date:        date,
			Assignments: domain.StripUnassigned(incoming),
		}
		if err := insertShift(ctx, tx, shift); err != nil {
			return nil, false, err
		}
	default:
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}

	return shift, existed, nil
}

// ReplaceShiftAssignments overwrites a day's assignment list wholesale,
// creating the day when absent. This is the auto-assign write path; it never
// merges.
func (r *Repository) ReplaceShiftAssignments(shopID int64, date string, assignments []domain.Assignment) (*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	shift, err := lockShiftRow(ctx, tx, shopID, date)
	switch {
	case err == nil:
		shift.Assignments = domain.StripUnassigned(assignments)
		if err := updateShiftAssignments(ctx, tx, shift); err != nil {
			return nil, err
		}
	case errors.Is(err, sql.ErrNoRows):
		shift = &domain.Shift{
			ShopID:      shopID,
			Date:        date,
			Assignments: domain.StripUnassigned(assignments),
		}
		if err := insertShift(ctx, tx, shift); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return shift, nil
}

// UpdateShiftAssignmentsByID replaces an existing shift's assignment list
// (sentinel-stripped) without touching any other field.
func (r *Repository) UpdateShiftAssignmentsByID(id int64, assignments []domain.Assignment) (*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		SELECT shop_id, date, created_at, version
		FROM shifts WHERE id = $1
		FOR UPDATE
	`

	shift := &domain.Shift{
		ID: id,
	}
	var date time.Time
	dst := []any{&shift.ShopID, &date, &shift.CreatedAt, &shift.Version}
	if err := tx.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	shift.Date = date.Format(domain.DateLayout)

	shift.Assignments = domain.StripUnassigned(assignments)
	if err := updateShiftAssignments(ctx, tx, shift); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return shift, nil
}

func (r *Repository) DeleteShiftByID(id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// GetWeeklyAssignmentCounts seeds the engine's in-memory weekly-count table in
// one pass over the persisted shifts of the weeks overlapping the run. Dates
// inside [skipFrom, skipTo] are excluded: auto-assign regenerates them
// wholesale, so their current contents must not count against anyone's cap.
// Keys: employee id -> week-start date (Monday) -> assignment count.
func (r *Repository) GetWeeklyAssignmentCounts(shopID int64, dateFrom, dateTo, skipFrom, skipTo time.Time) (map[int64]map[string]int32, error) {
	query := `
		SELECT date, assignments
		FROM shifts
		WHERE shop_id = $1 AND date BETWEEN $2 AND $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shopID, domain.WeekStart(dateFrom), domain.WeekEnd(dateTo))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[int64]map[string]int32{}
	for rows.Next() {
		var date time.Time
		var raw []byte
		if err := rows.Scan(&date, &raw); err != nil {
			return nil, err
		}

		if !date.Before(skipFrom) && !date.After(skipTo) {
			continue
		}

		assignments, err := scanAssignments(raw)
		if err != nil {
			return nil, err
		}

		weekStart := domain.WeekStart(date).Format(domain.DateLayout)
		for _, a := range assignments {
			if _, exists := counts[a.EmployeeID]; !exists {
				counts[a.EmployeeID] = map[string]int32{}
			}
			counts[a.EmployeeID][weekStart]++
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
