package repository

import (
	"context"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

func (r *Repository) CreateShop(shop *domain.Shop) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO shops (name, location, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, is_active, created_at, version
	`
	params := []any{shop.Name, shop.Location, shop.OwnerID}
	dst := []any{&shop.ID, &shop.IsActive, &shop.CreatedAt, &shop.Version}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	// the owner is always a roster member as well
	query = `
		INSERT INTO shop_users (shop_id, user_id, role)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.ExecContext(ctx, query, shop.ID, shop.OwnerID, domain.ShopRoleOwner); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShopByID(id int64) (*domain.Shop, error) {
	query := `
		SELECT name, location, owner_id, is_active, created_at, version
		FROM shops WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	shop := &domain.Shop{
		ID: id,
	}

	dst := []any{&shop.Name, &shop.Location, &shop.OwnerID, &shop.IsActive, &shop.CreatedAt, &shop.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return shop, nil
}

func (r *Repository) GetShopsByUser(userID int64) ([]*domain.Shop, error) {
	query := `
		SELECT s.id, s.name, s.location, s.owner_id, s.is_active, s.created_at, s.version
		FROM shops s
		JOIN shop_users su ON su.shop_id = s.id
		WHERE su.user_id = $1 AND s.is_active = TRUE
		ORDER BY s.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shops := []*domain.Shop{}
	for rows.Next() {
		var shop domain.Shop
		dst := []any{&shop.ID, &shop.Name, &shop.Location, &shop.OwnerID, &shop.IsActive, &shop.CreatedAt, &shop.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shops = append(shops, &shop)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shops, nil
}

func (r *Repository) AddShopMember(shopID, userID int64, role domain.ShopRole) error {
	query := `
		INSERT INTO shop_users (shop_id, user_id, role)
		VALUES ($1, $2, $3)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, shopID, userID, role); err != nil {
		return err
	}

	return nil
}

// GetShopMembers returns the full roster with membership roles, active or not.
func (r *Repository) GetShopMembers(shopID int64) ([]*domain.ShopMember, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.email, u.max_shifts_per_week, u.is_active, u.created_at, u.version, su.role
		FROM users u
		JOIN shop_users su ON su.user_id = u.id
		WHERE su.shop_id = $1
		ORDER BY u.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []*domain.ShopMember{}
	for rows.Next() {
		var m domain.ShopMember
		dst := []any{&m.ID, &m.Username, &m.FullName, &m.Email, &m.MaxShiftsPerWeek, &m.IsActive, &m.CreatedAt, &m.Version, &m.Role}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

// GetActiveShopEmployees returns the schedulable roster of a shop.
func (r *Repository) GetActiveShopEmployees(shopID int64) ([]*domain.User, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.email, u.max_shifts_per_week, u.is_active, u.created_at, u.version
		FROM users u
		JOIN shop_users su ON su.user_id = u.id
		WHERE su.shop_id = $1 AND u.is_active = TRUE
		ORDER BY u.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []*domain.User{}
	for rows.Next() {
		var u domain.User
		dst := []any{&u.ID, &u.Username, &u.FullName, &u.Email, &u.MaxShiftsPerWeek, &u.IsActive, &u.CreatedAt, &u.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employees = append(employees, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// CanManageShop is the owner-or-manager check consulted before any mutating
// shop operation.
func (r *Repository) CanManageShop(userID, shopID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM shops WHERE id = $1 AND owner_id = $2
		) OR EXISTS (
			SELECT 1 FROM shop_users WHERE shop_id = $1 AND user_id = $2 AND role = $3
		)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var canManage bool
	if err := r.dbpool.QueryRowContext(ctx, query, shopID, userID, domain.ShopRoleManager).Scan(&canManage); err != nil {
		return false, err
	}

	return canManage, nil
}

// IsShopMember reports whether the user belongs to the shop's roster at all.
func (r *Repository) IsShopMember(userID, shopID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM shop_users WHERE shop_id = $1 AND user_id = $2
		)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var isMember bool
	if err := r.dbpool.QueryRowContext(ctx, query, shopID, userID).Scan(&isMember); err != nil {
		return false, err
	}

	return isMember, nil
}
