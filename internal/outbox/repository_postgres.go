package outbox

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Enqueue(e Email) (Email, error) {
	err := r.db.QueryRow(`INSERT INTO email_outbox (recipient, subject, body) VALUES ($1, $2, $3)
		RETURNING outbox_id, status, to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')`,
		e.Recipient, e.Subject, e.Body).Scan(&e.ID, &e.Status, &e.CreatedAt)
	if err != nil {
		return Email{}, err
	}
	return e, nil
}

func (r *PostgresRepository) Pending(limit int) ([]Email, error) {
	rows, err := r.db.Query(`SELECT outbox_id, recipient, subject, body, status, attempts, last_error
		FROM email_outbox
		WHERE status = $1
		ORDER BY outbox_id
		LIMIT $2`, StatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Email, 0)
	for rows.Next() {
		var e Email
		var lastErr sql.NullString
		if err := rows.Scan(&e.ID, &e.Recipient, &e.Subject, &e.Body, &e.Status, &e.Attempts, &lastErr); err != nil {
			return nil, err
		}
		if lastErr.Valid {
			e.LastError = &lastErr.String
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) MarkSent(id int) error {
	res, err := r.db.Exec(`UPDATE email_outbox SET status = $1, sent_at = now() WHERE outbox_id = $2`, StatusSent, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) MarkFailed(id int, attempts int, reason string, final bool) error {
	status := StatusPending
	if final {
		status = StatusFailed
	}
	res, err := r.db.Exec(`UPDATE email_outbox SET status = $1, attempts = $2, last_error = $3 WHERE outbox_id = $4`,
		status, attempts, reason, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
