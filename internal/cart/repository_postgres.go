package cart

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	lineColumns = `ci.cart_item_id, p.product_id, p.name, p.image_url, p.price, p.sale_price, p.stock_quantity, ci.quantity`

	linesQuery = `
		SELECT ` + lineColumns + `
		FROM cart_items ci
		JOIN products p ON p.product_id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.cart_item_id`

	lineByIDQuery = `
		SELECT ` + lineColumns + `
		FROM cart_items ci
		JOIN products p ON p.product_id = ci.product_id
		WHERE ci.user_id = $1 AND ci.cart_item_id = $2`

	productLineQuery = `
		SELECT 0, product_id, name, image_url, price, sale_price, stock_quantity, 0
		FROM products
		WHERE product_id = $1 AND is_active`

	saveLineQuery = `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()
		RETURNING cart_item_id`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLine(row rowScanner) (Line, error) {
	var l Line
	var img sql.NullString
	var price, sale sql.NullString
	if err := row.Scan(&l.ItemID, &l.ProductID, &l.ProductName, &img, &price, &sale, &l.Stock, &l.Quantity); err != nil {
		return Line{}, err
	}
	if img.Valid {
		l.ProductImage = &img.String
	}
	if price.Valid {
		d, err := decimal.NewFromString(price.String)
		if err != nil {
			return Line{}, err
		}
		l.Price = d
	}
	if sale.Valid {
		d, err := decimal.NewFromString(sale.String)
		if err != nil {
			return Line{}, err
		}
		l.SalePrice = &d
	}
	return l, nil
}

func (r *PostgresRepository) Lines(userID int) ([]Line, error) {
	rows, err := r.db.Query(linesQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Line, 0)
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) LineByID(userID, itemID int) (Line, error) {
	l, err := scanLine(r.db.QueryRow(lineByIDQuery, userID, itemID))
	if err != nil {
		if err == sql.ErrNoRows {
			return Line{}, ErrLineNotFound
		}
		return Line{}, err
	}
	return l, nil
}

func (r *PostgresRepository) ProductLine(productID int) (Line, error) {
	l, err := scanLine(r.db.QueryRow(productLineQuery, productID))
	if err != nil {
		if err == sql.ErrNoRows {
			return Line{}, ErrProductNotFound
		}
		return Line{}, err
	}
	return l, nil
}

func (r *PostgresRepository) SaveLine(userID, productID, qty int) (int, error) {
	var itemID int
	if err := r.db.QueryRow(saveLineQuery, userID, productID, qty).Scan(&itemID); err != nil {
		return 0, err
	}
	return itemID, nil
}

func (r *PostgresRepository) SetQuantity(itemID, qty int) error {
	res, err := r.db.Exec(`UPDATE cart_items SET quantity = $1, updated_at = now() WHERE cart_item_id = $2`, qty, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteLine(itemID int) error {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_item_id = $1`, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (r *PostgresRepository) Clear(userID int) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}
