package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cercle-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, orderID string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	UpdateQuantities(ctx context.Context, orderID string, edits []QuantityEdit) error
	Delete(ctx context.Context, orderID string) error

	// Transition changes an order's status and reconciles pin stock inside
	// a single transaction with the affected pin rows locked.
	Transition(ctx context.Context, orderID, newStatus string) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, status, created_at)
		VALUES ($1,$2,$3,$4)
	`, o.ID, o.UserID, o.Status, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.OrderID = o.ID

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, pin_id, title, price, quantity)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, item.ID, item.OrderID, item.PinID, item.Title, item.Price, item.Quantity)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *repository) Get(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, status, created_at FROM orders WHERE id = $1
	`, orderID).Scan(&o.ID, &o.UserID, &o.Status, &o.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	itemsByOrder, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = itemsByOrder[o.ID]
	return &o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	return r.list(ctx, `WHERE user_id = $1`, userID)
}

func (r *repository) ListAll(ctx context.Context) ([]*Order, error) {
	return r.list(ctx, ``)
}

func (r *repository) list(ctx context.Context, where string, args ...interface{}) ([]*Order, error) {
	query := `SELECT id, user_id, status, created_at FROM orders ` +
		where + ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	var ids []string
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemsByOrder, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.Items = itemsByOrder[o.ID]
	}
	return orders, nil
}

// loadItems fetches items for a set of orders, enriched with each pin's
// current stock (nil when the pin has been deleted since).
func (r *repository) loadItems(ctx context.Context, orderIDs []string) (map[string][]*OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.pin_id, oi.title, oi.price, oi.quantity, p.stock
		FROM order_items oi
		LEFT JOIN pins p ON p.id = oi.pin_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.title ASC
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	itemsByOrder := make(map[string][]*OrderItem)
	for rows.Next() {
		var item OrderItem
		var stock sql.NullInt64
		if err := rows.Scan(&item.ID, &item.OrderID, &item.PinID,
			&item.Title, &item.Price, &item.Quantity, &stock); err != nil {
			return nil, err
		}
		if stock.Valid {
			s := int(stock.Int64)
			item.CurrentStock = &s
		}
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], &item)
	}
	return itemsByOrder, rows.Err()
}

func (r *repository) UpdateQuantities(ctx context.Context, orderID string, edits []QuantityEdit) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, edit := range edits {
		_, err := tx.ExecContext(ctx, `
			UPDATE order_items SET quantity = $3
			WHERE order_id = $1 AND title = $2
		`, orderID, edit.Title, edit.Quantity)
		if err != nil {
			return fmt.Errorf("update item quantity: %w", err)
		}
	}

	return tx.Commit()
}

func (r *repository) Delete(ctx context.Context, orderID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}

	return tx.Commit()
}

func (r *repository) Transition(ctx context.Context, orderID, newStatus string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", orderID),
		zap.String("new_status", newStatus),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var o Order
	err = tx.QueryRowContext(ctx, `
		SELECT id, user_id, status, created_at FROM orders
		WHERE id = $1 FOR UPDATE
	`, orderID).Scan(&o.ID, &o.UserID, &o.Status, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	oldStatus := o.Status
	entering := oldStatus != StatusShipped && newStatus == StatusShipped
	leaving := oldStatus == StatusShipped && newStatus != StatusShipped

	itemRows, err := tx.QueryContext(ctx, `
		SELECT id, order_id, pin_id, title, price, quantity
		FROM order_items WHERE order_id = $1 ORDER BY title ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	var items []*OrderItem
	var pinIDs []string
	for itemRows.Next() {
		var item OrderItem
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.PinID,
			&item.Title, &item.Price, &item.Quantity); err != nil {
			itemRows.Close()
			return nil, err
		}
		items = append(items, &item)
		pinIDs = append(pinIDs, item.PinID)
	}
	itemRows.Close()
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	stocks := make(map[string]int)
	if len(pinIDs) > 0 {
		// Lock pin rows (in a stable order, so concurrent transitions over
		// shared pins cannot deadlock) before checking availability.
		lockClause := ``
		if entering || leaving {
			lockClause = ` FOR UPDATE`
		}
		pinRows, err := tx.QueryContext(ctx, `
			SELECT id, stock FROM pins
			WHERE id = ANY($1) ORDER BY id`+lockClause,
			pq.Array(pinIDs))
		if err != nil {
			return nil, err
		}
		for pinRows.Next() {
			var id string
			var stock int
			if err := pinRows.Scan(&id, &stock); err != nil {
				pinRows.Close()
				return nil, err
			}
			stocks[id] = stock
		}
		pinRows.Close()
		if err := pinRows.Err(); err != nil {
			return nil, err
		}
	}

	if entering {
		// All-or-nothing: every line is checked before any write.
		for _, item := range items {
			available, exists := stocks[item.PinID]
			if !exists {
				available = 0
			}
			if item.Quantity > available {
				log.Info("transition rejected, insufficient stock",
					zap.String("pin_title", item.Title),
					zap.Int("available", available),
					zap.Int("requested", item.Quantity),
				)
				return nil, &InsufficientStockError{
					PinTitle:  item.Title,
					Available: available,
					Requested: item.Quantity,
				}
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1`, orderID, newStatus); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	if entering || leaving {
		delta := -1
		if leaving {
			delta = 1
		}
		for _, item := range items {
			if _, exists := stocks[item.PinID]; !exists {
				// Pin deleted since the order shipped; nothing to restore.
				continue
			}
			if _, err := tx.ExecContext(ctx, `
				UPDATE pins SET stock = stock + $2 WHERE id = $1
			`, item.PinID, delta*item.Quantity); err != nil {
				return nil, fmt.Errorf("adjust pin stock: %w", err)
			}
			stocks[item.PinID] += delta * item.Quantity
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	o.Status = newStatus
	o.Items = items
	for _, item := range items {
		if stock, exists := stocks[item.PinID]; exists {
			s := stock
			item.CurrentStock = &s
		}
	}

	log.Info("order transitioned",
		zap.String("old_status", oldStatus),
		zap.Bool("stock_committed", entering),
		zap.Bool("stock_released", leaving),
	)
	return &o, nil
}
