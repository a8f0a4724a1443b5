package skill

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Skill, error) {
	rows, err := r.db.Query(`SELECT skill_id, name, level, COALESCE(category, ''), ord FROM skills ORDER BY ord, skill_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Level, &s.Category, &s.Ord); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(s Skill) (Skill, error) {
	err := r.db.QueryRow(`INSERT INTO skills (name, level, category, ord) VALUES ($1, $2, $3, $4) RETURNING skill_id`,
		s.Name, s.Level, s.Category, s.Ord).Scan(&s.ID)
	if err != nil {
		return Skill{}, err
	}
	return s, nil
}

func (r *PostgresRepository) Update(id int, s Skill) (Skill, error) {
	res, err := r.db.Exec(`UPDATE skills SET name = $1, level = $2, category = $3, ord = $4 WHERE skill_id = $5`,
		s.Name, s.Level, s.Category, s.Ord, id)
	if err != nil {
		return Skill{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Skill{}, ErrNotFound
	}
	s.ID = id
	return s, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM skills WHERE skill_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
