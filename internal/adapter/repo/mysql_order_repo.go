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

var ErrNotFound = errors.New("not found")

type MySQLOrderStore struct{ db *sql.DB }

func NewMySQLOrderStore(db *sql.DB) *MySQLOrderStore { return &MySQLOrderStore{db: db} }

var _ usecase.OrderStore = (*MySQLOrderStore)(nil)

// CreateWithReservation decrements availability for every line item and
// inserts the order and its frozen items in one transaction. The guarded
// UPDATE serializes concurrent reservations on the same product row; a
// zero-row update means the stock check failed and everything rolls back.
func (r *MySQLOrderStore) CreateWithReservation(ctx context.Context, o *domain.Order) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, item := range o.Items {
		res, uerr := tx.ExecContext(ctx, `
UPDATE products SET availability = availability - ?
WHERE product_id = ? AND availability >= ?`,
			item.Quantity, item.ProductID, item.Quantity,
		)
		if uerr != nil {
			err = fmt.Errorf("reserve stock: %w", uerr)
			return err
		}
		rows, uerr := res.RowsAffected()
		if uerr != nil {
			err = uerr
			return err
		}
		if rows == 0 {
			err = &usecase.OutOfStockError{ProductID: item.ProductID}
			return err
		}
	}

	if _, err = tx.ExecContext(ctx, `
INSERT INTO orders (order_id,user_id,cart_id,status,payment_method,shipping_address_id,
  sub_total,discount,tax_amount,shipping_charges,total_amount,created_at,updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.ID, o.UserID, o.CartID, o.Status, o.PaymentMethod, o.ShippingAddressID,
		o.SubTotal, o.Discount, o.TaxAmount, o.ShippingCharges, o.TotalAmount,
		o.CreatedAt, o.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		if _, err = tx.ExecContext(ctx, `
INSERT INTO order_items (order_item_id,order_id,product_id,quantity,unit_price,sub_total,discount,color)
VALUES (?,?,?,?,?,?,?,?)`,
			item.ID, o.ID, item.ProductID, item.Quantity, item.UnitPrice, item.SubTotal, item.Discount, item.Color,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

// DeleteRestoringStock reverses a reservation: availability goes back up by
// each item's quantity, then the items and the order row are removed. Used
// for post-commit compensation and for confirmed cancellations.
func (r *MySQLOrderStore) DeleteRestoringStock(ctx context.Context, orderID string) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `
UPDATE products p
JOIN order_items oi ON oi.product_id = p.product_id
SET p.availability = p.availability + oi.quantity
WHERE oi.order_id = ?`, orderID); err != nil {
		return fmt.Errorf("restore stock: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, orderID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	res, derr := tx.ExecContext(ctx, `DELETE FROM orders WHERE order_id = ?`, orderID)
	if derr != nil {
		err = fmt.Errorf("delete order: %w", derr)
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		err = ErrNotFound
		return err
	}
	return tx.Commit()
}

func (r *MySQLOrderStore) SetCarrierRefs(ctx context.Context, orderID string, refs usecase.CarrierRefs) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders
SET carrier_order_id = ?, carrier_shipment_id = ?, carrier_channel_order_id = ?,
    carrier_awb_code = ?, carrier_status = ?, updated_at = NOW()
WHERE order_id = ?`,
		refs.OrderID, refs.ShipmentID, refs.ChannelOrderID, refs.AWBCode, refs.Status, orderID,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

const orderColumns = `order_id,user_id,cart_id,status,payment_method,shipping_address_id,
sub_total,discount,tax_amount,shipping_charges,total_amount,
COALESCE(carrier_order_id,''),COALESCE(carrier_shipment_id,''),COALESCE(carrier_channel_order_id,''),
COALESCE(carrier_awb_code,''),COALESCE(carrier_status,''),COALESCE(carrier_updated_at,created_at),
created_at,updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.UserID, &o.CartID, &o.Status, &o.PaymentMethod, &o.ShippingAddressID,
		&o.SubTotal, &o.Discount, &o.TaxAmount, &o.ShippingCharges, &o.TotalAmount,
		&o.CarrierOrderID, &o.CarrierShipmentID, &o.CarrierChannelOrderID,
		&o.CarrierAWBCode, &o.CarrierStatus, &o.CarrierUpdatedAt,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *MySQLOrderStore) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = ?`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.Items, err = r.loadItems(ctx, o.ID)
	return o, err
}

func (r *MySQLOrderStore) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Items, err = r.loadItems(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *MySQLOrderStore) loadItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT order_item_id,order_id,product_id,quantity,unit_price,sub_total,discount,color
FROM order_items WHERE order_id = ?`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.SubTotal, &it.Discount, &it.Color); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateStatusByAWB is a plain overwrite so the webhook ingestor stays
// idempotent. It returns the ids of the orders touched; zero is fine. The
// locking SELECT and the UPDATE share one transaction, so the returned ids
// are exactly the rows the UPDATE touched.
func (r *MySQLOrderStore) UpdateStatusByAWB(ctx context.Context, awb, status string, at time.Time) (ids []string, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rows, err := tx.QueryContext(ctx, `SELECT order_id FROM orders WHERE carrier_awb_code = ? FOR UPDATE`, awb)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(ids) == 0 {
		return nil, tx.Commit()
	}

	if _, err = tx.ExecContext(ctx, `
UPDATE orders
SET status = ?, carrier_status = ?, carrier_updated_at = ?, updated_at = NOW()
WHERE carrier_awb_code = ?`,
		status, status, at, awb,
	); err != nil {
		return nil, err
	}
	return ids, tx.Commit()
}
