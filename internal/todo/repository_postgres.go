package todo

import (
	"database/sql"
	"errors"
)

const todoColumns = `todo_id, user_id, title, done,
	to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"'),
	to_char(updated_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(userID int) ([]Todo, error) {
	rows, err := r.db.Query(`SELECT `+todoColumns+` FROM todos WHERE user_id = $1 ORDER BY todo_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Todo, 0)
	for rows.Next() {
		var t Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Done, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(t Todo) (Todo, error) {
	err := r.db.QueryRow(
		`INSERT INTO todos (user_id, title, done) VALUES ($1, $2, $3) RETURNING `+todoColumns,
		t.UserID, t.Title, t.Done,
	).Scan(&t.ID, &t.UserID, &t.Title, &t.Done, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return Todo{}, err
	}
	return t, nil
}

func (r *PostgresRepository) Update(userID, id int, t Todo) (Todo, error) {
	row := r.db.QueryRow(
		`UPDATE todos SET title = $1, done = $2, updated_at = now()
		 WHERE todo_id = $3 AND user_id = $4
		 RETURNING `+todoColumns,
		t.Title, t.Done, id, userID,
	)
	var updated Todo
	err := row.Scan(&updated.ID, &updated.UserID, &updated.Title, &updated.Done, &updated.CreatedAt, &updated.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Todo{}, ErrNotFound
	}
	if err != nil {
		return Todo{}, err
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(userID, id int) error {
	res, err := r.db.Exec(`DELETE FROM todos WHERE todo_id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
