package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	domain "github.com/Tarankalsi/backend-triumphllights/internal/entity"
	"github.com/Tarankalsi/backend-triumphllights/internal/usecase"
)

type MySQLCartRepo struct{ db *sql.DB }

func NewMySQLCartRepo(db *sql.DB) *MySQLCartRepo { return &MySQLCartRepo{db: db} }

var _ usecase.CartRepo = (*MySQLCartRepo)(nil)

func (r *MySQLCartRepo) GetWithItems(ctx context.Context, cartID string) (*domain.Cart, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT cart_id, COALESCE(user_id,''), created_at FROM carts WHERE cart_id = ?`, cartID)

	var c domain.Cart
	if err := row.Scan(&c.ID, &c.UserID, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT ci.cart_item_id, ci.cart_id, ci.product_id, ci.quantity, ci.color,
       p.product_id, p.name, p.sku, p.price, p.discount_percent, p.availability,
       p.item_weight_grams, p.length_cm, p.width_cm, p.height_cm
FROM cart_items ci
JOIN products p ON p.product_id = ci.product_id
WHERE ci.cart_id = ?`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.Color,
			&it.Product.ID, &it.Product.Name, &it.Product.SKU, &it.Product.Price,
			&it.Product.DiscountPercent, &it.Product.Availability,
			&it.Product.WeightGrams, &it.Product.LengthCM, &it.Product.WidthCM, &it.Product.HeightCM,
		); err != nil {
			return nil, err
		}
		c.Items = append(c.Items, it)
	}
	return &c, rows.Err()
}

func (r *MySQLCartRepo) ClearItems(ctx context.Context, cartID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}

// DeleteExpiredAnonymous removes anonymous carts older than the cutoff.
// Carts referenced by an order are excluded so an in-flight commit never
// races with the sweep.
func (r *MySQLCartRepo) DeleteExpiredAnonymous(ctx context.Context, cutoff time.Time) (int64, error) {
	if _, err := r.db.ExecContext(ctx, `
DELETE ci FROM cart_items ci
JOIN carts c ON c.cart_id = ci.cart_id
WHERE c.user_id IS NULL AND c.created_at <= ?
  AND c.cart_id NOT IN (SELECT cart_id FROM orders WHERE cart_id IS NOT NULL)`, cutoff); err != nil {
		return 0, fmt.Errorf("sweep cart items: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
DELETE FROM carts
WHERE user_id IS NULL AND created_at <= ?
  AND cart_id NOT IN (SELECT cart_id FROM orders WHERE cart_id IS NOT NULL)`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweep carts: %w", err)
	}
	return res.RowsAffected()
}
