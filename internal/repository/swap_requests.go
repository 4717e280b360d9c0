package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

func (r *Repository) CreateSwapRequest(req *domain.ShiftSwapRequest) error {
	query := `
		INSERT INTO shift_swap_requests (shop_id, shift_label_id, shift_date, requester_id, requested_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{req.ShopID, req.ShiftLabelID, req.ShiftDate, req.RequesterID, req.RequestedID, domain.SwapPending}
	dst := []any{&req.ID, &req.CreatedAt, &req.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}
	req.Status = domain.SwapPending

	return nil
}

func (r *Repository) GetSwapRequestsByShop(shopID int64) ([]*domain.ShiftSwapRequest, error) {
	query := `
		SELECT id, shift_label_id, shift_date, requester_id, requested_id, status, created_at, version
		FROM shift_swap_requests
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

	requests := []*domain.ShiftSwapRequest{}
	for rows.Next() {
		req := domain.ShiftSwapRequest{
			ShopID: shopID,
		}
		var date time.Time
		dst := []any{&req.ID, &req.ShiftLabelID, &date, &req.RequesterID, &req.RequestedID, &req.Status, &req.CreatedAt, &req.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		req.ShiftDate = date.Format(domain.DateLayout)
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *Repository) GetSwapRequestByID(id int64) (*domain.ShiftSwapRequest, error) {
	query := `
		SELECT shop_id, shift_label_id, shift_date, requester_id, requested_id, status, created_at, version
		FROM shift_swap_requests WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	req := &domain.ShiftSwapRequest{
		ID: id,
	}

	var date time.Time
	dst := []any{&req.ShopID, &req.ShiftLabelID, &date, &req.RequesterID, &req.RequestedID, &req.Status, &req.CreatedAt, &req.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	req.ShiftDate = date.Format(domain.DateLayout)

	return req, nil
}

// ApproveSwapRequest runs the two-entity approval in one transaction: the
// request row and the shift row are locked, the first assignment matching
// (label, requester) has its employee replaced, and the status transition
// commits together with the shift write. A request whose shift has no matching
// assignment still gets approved with the shift untouched.
func (r *Repository) ApproveSwapRequest(id int64) (*domain.ShiftSwapRequest, error) {
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
		SELECT shop_id, shift_label_id, shift_date, requester_id, requested_id, status, created_at, version
		FROM shift_swap_requests WHERE id = $1
		FOR UPDATE
	`

	req := &domain.ShiftSwapRequest{
		ID: id,
	}
	var date time.Time
	dst := []any{&req.ShopID, &req.ShiftLabelID, &date, &req.RequesterID, &req.RequestedID, &req.Status, &req.CreatedAt, &req.Version}
	if err := tx.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("swap request %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	req.ShiftDate = date.Format(domain.DateLayout)

	if req.Status != domain.SwapPending {
		return nil, fmt.Errorf("swap request %d is already %s: %w", id, req.Status, domain.ErrInvalidState)
	}

	shift, err := lockShiftRow(ctx, tx, req.ShopID, req.ShiftDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no shift on %s for shop %d: %w", req.ShiftDate, req.ShopID, domain.ErrNotFound)
		}
		return nil, err
	}

	requested, err := getUserForUpdate(ctx, tx, req.RequestedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("requested employee %d: %w", req.RequestedID, domain.ErrNotFound)
		}
		return nil, err
	}

	if domain.SwapAssignmentEmployee(shift.Assignments, req.ShiftLabelID, req.RequesterID, requested) {
		if err := updateShiftAssignments(ctx, tx, shift); err != nil {
			return nil, err
		}
	}

	query = `
		UPDATE shift_swap_requests
		SET status = $1, version = version + 1
		WHERE id = $2
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, domain.SwapApproved, id).Scan(&req.Version); err != nil {
		return nil, err
	}
	req.Status = domain.SwapApproved

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return req, nil
}

// RejectSwapRequest transitions a pending request to rejected; the shift is
// never touched on this path.
func (r *Repository) RejectSwapRequest(id int64) (*domain.ShiftSwapRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE shift_swap_requests
		SET status = $1, version = version + 1
		WHERE id = $2 AND status = $3
		RETURNING shop_id, shift_label_id, shift_date, requester_id, requested_id, created_at, version
	`

	req := &domain.ShiftSwapRequest{
		ID:     id,
		Status: domain.SwapRejected,
	}
	var date time.Time
	dst := []any{&req.ShopID, &req.ShiftLabelID, &date, &req.RequesterID, &req.RequestedID, &req.CreatedAt, &req.Version}
	err := r.dbpool.QueryRowContext(ctx, query, domain.SwapRejected, id, domain.SwapPending).Scan(dst...)
	if err == nil {
		req.ShiftDate = date.Format(domain.DateLayout)
		return req, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// no pending row matched: distinguish a missing request from one that has
	// already been decided
	existing, err := r.GetSwapRequestByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("swap request %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}

	return nil, fmt.Errorf("swap request %d is already %s: %w", id, existing.Status, domain.ErrInvalidState)
}

func getUserForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*domain.User, error) {
	query := `
		SELECT username, full_name, email, max_shifts_per_week, is_active, created_at, version
		FROM users WHERE id = $1
	`

	user := &domain.User{
		ID: id,
	}

	dst := []any{&user.Username, &user.FullName, &user.Email, &user.MaxShiftsPerWeek, &user.IsActive, &user.CreatedAt, &user.Version}
	if err := tx.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}
