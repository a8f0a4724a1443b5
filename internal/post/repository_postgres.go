package post

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const postColumns = `post_id, title, slug, body, COALESCE(cover_image, ''), published,
	to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"'),
	to_char(updated_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Body, &p.CoverImage, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostgresRepository) List(publishedOnly bool) ([]Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	if publishedOnly {
		query += ` WHERE published`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetBySlug(slug string) (Post, error) {
	row := r.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE lower(slug) = lower($1)`, slug)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) Create(p Post) (Post, error) {
	err := r.db.QueryRow(
		`INSERT INTO posts (title, slug, body, cover_image, published) VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+postColumns,
		p.Title, strings.ToLower(p.Slug), p.Body, p.CoverImage, p.Published,
	).Scan(&p.ID, &p.Title, &p.Slug, &p.Body, &p.CoverImage, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if isUniqueViolation(err) {
		return Post{}, ErrSlugExists
	}
	if err != nil {
		return Post{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Post) (Post, error) {
	row := r.db.QueryRow(
		`UPDATE posts SET title = $1, slug = $2, body = $3, cover_image = $4, published = $5, updated_at = now()
		 WHERE post_id = $6
		 RETURNING `+postColumns,
		p.Title, strings.ToLower(p.Slug), p.Body, p.CoverImage, p.Published, id,
	)
	updated, err := scanPost(row)
	if isUniqueViolation(err) {
		return Post{}, ErrSlugExists
	}
	if errors.Is(err, sql.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	if err != nil {
		return Post{}, err
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM posts WHERE post_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
