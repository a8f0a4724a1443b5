package product

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	productColumns = `product_id, name, COALESCE(description, ''), price, sale_price, stock_quantity, is_active, image_url, category_id, to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"'), to_char(updated_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')`

	getProductQuery = `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`

	insertProductQuery = `
		INSERT INTO products (name, description, price, sale_price, stock_quantity, is_active, image_url, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING product_id, to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"'), to_char(updated_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')`

	updateProductQuery = `
		UPDATE products
		SET name = $1,
			description = $2,
			price = $3,
			sale_price = $4,
			stock_quantity = $5,
			is_active = $6,
			image_url = $7,
			category_id = $8,
			updated_at = now()
		WHERE product_id = $9`

	deleteProductQuery = `DELETE FROM products WHERE product_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var price, sale sql.NullString
	var img sql.NullString
	var categoryID sql.NullInt64
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &sale, &p.StockQuantity, &p.IsActive, &img, &categoryID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Product{}, err
	}
	if price.Valid {
		d, err := decimal.NewFromString(price.String)
		if err != nil {
			return Product{}, err
		}
		p.Price = d
	}
	if sale.Valid {
		d, err := decimal.NewFromString(sale.String)
		if err != nil {
			return Product{}, err
		}
		p.SalePrice = &d
	}
	if img.Valid {
		p.ImageURL = &img.String
	}
	if categoryID.Valid {
		id := int(categoryID.Int64)
		p.CategoryID = &id
	}
	return p, nil
}

func (r *PostgresRepository) List(f Filter) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := make([]any, 0, 3)

	if f.ActiveOnly {
		query += ` AND is_active`
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		query += fmt.Sprintf(` AND category_id = $%d`, len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}

	switch f.Sort {
	case "price":
		query += ` ORDER BY COALESCE(sale_price, price)`
	case "price_desc":
		query += ` ORDER BY COALESCE(sale_price, price) DESC`
	case "name":
		query += ` ORDER BY name`
	case "newest":
		query += ` ORDER BY created_at DESC`
	default:
		query += ` ORDER BY product_id`
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	var sale any
	if p.SalePrice != nil {
		sale = p.SalePrice.StringFixed(2)
	}
	err := r.db.QueryRow(insertProductQuery, p.Name, p.Description, p.Price.StringFixed(2), sale, p.StockQuantity, p.IsActive, p.ImageURL, p.CategoryID).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	var sale any
	if p.SalePrice != nil {
		sale = p.SalePrice.StringFixed(2)
	}
	res, err := r.db.Exec(updateProductQuery, p.Name, p.Description, p.Price.StringFixed(2), sale, p.StockQuantity, p.IsActive, p.ImageURL, p.CategoryID, id)
	if err != nil {
		return Product{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
