package order

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/wichananm65/folio-shop-backend/internal/cart"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	cartLinesQuery = `
		SELECT ci.cart_item_id, p.product_id, p.name, p.image_url, p.price, p.sale_price, p.stock_quantity, ci.quantity
		FROM cart_items ci
		JOIN products p ON p.product_id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.cart_item_id`

	orderColumns = `order_id, order_number, user_id, status, payment_status, payment_method, payment_intent_id,
		sub_total, tax, shipping_cost, total_amount,
		shipping_name, COALESCE(shipping_phone, ''), shipping_address, notes,
		to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"'), to_char(updated_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"'),
		to_char(shipped_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"'), to_char(delivered_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')`

	insertOrderQuery = `
		INSERT INTO orders (order_number, user_id, status, payment_status, payment_method, sub_total, tax, shipping_cost, total_amount, shipping_name, shipping_phone, shipping_address, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING order_id, to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"'), to_char(updated_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')`

	insertOrderItemQuery = `
		INSERT INTO order_items (order_id, product_id, product_name, product_image, unit_price, quantity, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING order_item_id`

	decrementStockQuery = `
		UPDATE products
		SET stock_quantity = stock_quantity - $1, updated_at = now()
		WHERE product_id = $2 AND stock_quantity >= $1`

	restoreStockQuery = `
		UPDATE products
		SET stock_quantity = stock_quantity + $1, updated_at = now()
		WHERE product_id = $2`

	orderItemsQuery = `
		SELECT order_item_id, order_id, product_id, product_name, product_image, unit_price, quantity, line_total
		FROM order_items
		WHERE order_id = ANY($1::int[])
		ORDER BY order_item_id`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CartLines(userID int) ([]cart.Line, error) {
	rows, err := r.db.Query(cartLinesQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cart.Line, 0)
	for rows.Next() {
		var l cart.Line
		var img, price, sale sql.NullString
		if err := rows.Scan(&l.ItemID, &l.ProductID, &l.ProductName, &img, &price, &sale, &l.Stock, &l.Quantity); err != nil {
			return nil, err
		}
		if img.Valid {
			l.ProductImage = &img.String
		}
		if price.Valid {
			d, err := decimal.NewFromString(price.String)
			if err != nil {
				return nil, err
			}
			l.Price = d
		}
		if sale.Valid {
			d, err := decimal.NewFromString(sale.String)
			if err != nil {
				return nil, err
			}
			l.SalePrice = &d
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CreateFromCart runs the whole checkout write-set in one transaction.
// Stock is decremented with a conditional update per line; a line whose
// update affects zero rows fails the transaction with
// ErrInsufficientStock and nothing is applied.
func (r *PostgresRepository) CreateFromCart(ord Order) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	err = tx.QueryRow(insertOrderQuery,
		ord.OrderNumber, ord.UserID, ord.Status, ord.PaymentStatus, ord.PaymentMethod,
		ord.SubTotal.StringFixed(2), ord.Tax.StringFixed(2), ord.ShippingCost.StringFixed(2), ord.TotalAmount.StringFixed(2),
		ord.ShippingName, ord.ShippingPhone, ord.ShippingAddress, ord.Notes,
	).Scan(&ord.ID, &ord.CreatedAt, &ord.UpdatedAt)
	if err != nil {
		return Order{}, err
	}

	for i := range ord.Items {
		it := &ord.Items[i]
		it.OrderID = ord.ID
		if err := tx.QueryRow(insertOrderItemQuery,
			ord.ID, it.ProductID, it.ProductName, it.ProductImage,
			it.UnitPrice.StringFixed(2), it.Quantity, it.LineTotal.StringFixed(2),
		).Scan(&it.ID); err != nil {
			return Order{}, err
		}

		res, err := tx.Exec(decrementStockQuery, it.Quantity, it.ProductID)
		if err != nil {
			return Order{}, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return Order{}, &InsufficientStockError{Product: it.ProductName}
		}
	}

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE user_id = $1`, ord.UserID); err != nil {
		return Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return ord, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var ord Order
	var method, intent, notes, shippedAt, deliveredAt sql.NullString
	var sub, tax, ship, total string
	err := row.Scan(&ord.ID, &ord.OrderNumber, &ord.UserID, &ord.Status, &ord.PaymentStatus, &method, &intent,
		&sub, &tax, &ship, &total,
		&ord.ShippingName, &ord.ShippingPhone, &ord.ShippingAddress, &notes,
		&ord.CreatedAt, &ord.UpdatedAt, &shippedAt, &deliveredAt)
	if err != nil {
		return Order{}, err
	}

	if ord.SubTotal, err = decimal.NewFromString(sub); err != nil {
		return Order{}, err
	}
	if ord.Tax, err = decimal.NewFromString(tax); err != nil {
		return Order{}, err
	}
	if ord.ShippingCost, err = decimal.NewFromString(ship); err != nil {
		return Order{}, err
	}
	if ord.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return Order{}, err
	}

	if method.Valid {
		ord.PaymentMethod = &method.String
	}
	if intent.Valid {
		ord.PaymentIntentID = &intent.String
	}
	if notes.Valid {
		ord.Notes = &notes.String
	}
	if shippedAt.Valid {
		ord.ShippedAt = &shippedAt.String
	}
	if deliveredAt.Valid {
		ord.DeliveredAt = &deliveredAt.String
	}
	return ord, nil
}

// loadItems fetches the items for the given orders in one query and
// attaches each to its parent.
func (r *PostgresRepository) loadItems(orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[int]*Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, ord := range orders {
		ord.Items = make([]Item, 0)
		byID[ord.ID] = ord
		ids = append(ids, int64(ord.ID))
	}

	rows, err := r.db.Query(orderItemsQuery, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		var img sql.NullString
		var unit, total string
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &img, &unit, &it.Quantity, &total); err != nil {
			return err
		}
		if img.Valid {
			it.ProductImage = &img.String
		}
		if it.UnitPrice, err = decimal.NewFromString(unit); err != nil {
			return err
		}
		if it.LineTotal, err = decimal.NewFromString(total); err != nil {
			return err
		}
		if ord, ok := byID[it.OrderID]; ok {
			ord.Items = append(ord.Items, it)
		}
	}
	return rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	if err := r.loadItems([]*Order{&ord}); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByPaymentIntent(intentID string) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE payment_intent_id = $1`, intentID))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	if err := r.loadItems([]*Order{&ord}); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) list(query string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*Order, len(out))
	for i := range out {
		refs[i] = &out[i]
	}
	if err := r.loadItems(refs); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	return r.list(`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY order_id DESC`, userID)
}

func (r *PostgresRepository) ListAll() ([]Order, error) {
	return r.list(`SELECT ` + orderColumns + ` FROM orders ORDER BY order_id DESC`)
}

func (r *PostgresRepository) UpdateStatus(ord Order) error {
	res, err := r.db.Exec(`UPDATE orders SET status = $1, shipped_at = $2, delivered_at = $3, updated_at = now() WHERE order_id = $4`,
		ord.Status, nullTime(ord.ShippedAt), nullTime(ord.DeliveredAt), ord.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdatePaymentStatus(id int, ps PaymentStatus) error {
	res, err := r.db.Exec(`UPDATE orders SET payment_status = $1, updated_at = now() WHERE order_id = $2`, ps, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetPaymentIntent(id int, intentID string) error {
	res, err := r.db.Exec(`UPDATE orders SET payment_intent_id = $1, updated_at = now() WHERE order_id = $2`, intentID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CancelRestock flips the order to cancelled and puts every line's
// quantity back onto the product stock, atomically.
func (r *PostgresRepository) CancelRestock(ord Order) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// A cancel that lost the race to another cancel sees zero rows here
	// and must not restock.
	res, err := tx.Exec(`UPDATE orders SET status = $1, updated_at = now() WHERE order_id = $2 AND status <> $1`, StatusCancelled, ord.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAlreadyCancelled
	}

	for _, it := range ord.Items {
		if _, err := tx.Exec(restoreStockQuery, it.Quantity, it.ProductID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func nullTime(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
