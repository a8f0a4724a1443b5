package project

import (
	"database/sql"
	"errors"
)

const projectColumns = `project_id, title, COALESCE(description, ''), repo_url, live_url, image_url, ord,
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

func scanProject(row rowScanner) (Project, error) {
	var p Project
	var repo, live, image sql.NullString
	err := row.Scan(&p.ID, &p.Title, &p.Description, &repo, &live, &image, &p.Ord, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Project{}, err
	}
	if repo.Valid {
		p.RepoURL = &repo.String
	}
	if live.Valid {
		p.LiveURL = &live.String
	}
	if image.Valid {
		p.ImageURL = &image.String
	}
	return p, nil
}

func (r *PostgresRepository) List() ([]Project, error) {
	rows, err := r.db.Query(`SELECT ` + projectColumns + ` FROM projects ORDER BY ord, project_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(p Project) (Project, error) {
	row := r.db.QueryRow(
		`INSERT INTO projects (title, description, repo_url, live_url, image_url, ord) VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+projectColumns,
		p.Title, p.Description, p.RepoURL, p.LiveURL, p.ImageURL, p.Ord,
	)
	return scanProject(row)
}

func (r *PostgresRepository) Update(id int, p Project) (Project, error) {
	row := r.db.QueryRow(
		`UPDATE projects SET title = $1, description = $2, repo_url = $3, live_url = $4, image_url = $5, ord = $6, updated_at = now()
		 WHERE project_id = $7
		 RETURNING `+projectColumns,
		p.Title, p.Description, p.RepoURL, p.LiveURL, p.ImageURL, p.Ord, id,
	)
	updated, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	if err != nil {
		return Project{}, err
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM projects WHERE project_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
