package address

import (
	"database/sql"
	"errors"
)

const addressColumns = `address_id, user_id, COALESCE(label, ''), recipient, COALESCE(phone, ''), detail,
	to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"'),
	to_char(updated_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanAddress(row interface{ Scan(dest ...any) error }) (Address, error) {
	var a Address
	err := row.Scan(&a.ID, &a.UserID, &a.Label, &a.Recipient, &a.Phone, &a.Detail, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *PostgresRepository) ListByUser(userID int) ([]Address, error) {
	rows, err := r.db.Query(`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY address_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(a Address) (Address, error) {
	row := r.db.QueryRow(
		`INSERT INTO addresses (user_id, label, recipient, phone, detail) VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+addressColumns,
		a.UserID, a.Label, a.Recipient, a.Phone, a.Detail,
	)
	return scanAddress(row)
}

func (r *PostgresRepository) Update(userID, id int, a Address) (Address, error) {
	row := r.db.QueryRow(
		`UPDATE addresses SET label = $1, recipient = $2, phone = $3, detail = $4, updated_at = now()
		 WHERE address_id = $5 AND user_id = $6
		 RETURNING `+addressColumns,
		a.Label, a.Recipient, a.Phone, a.Detail, id, userID,
	)
	updated, err := scanAddress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Address{}, ErrNotFound
	}
	if err != nil {
		return Address{}, err
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(userID, id int) error {
	res, err := r.db.Exec(`DELETE FROM addresses WHERE address_id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
