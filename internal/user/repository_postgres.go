package user

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	userColumns = `user_id, username, email, password, role, COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(phone, ''), avatar_pic, to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"'), to_char(updated_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')`

	listUsersQuery = `SELECT ` + userColumns + ` FROM users ORDER BY user_id`

	getUserByIDQuery = `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	getUserByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	getUserByLoginQuery = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1) OR lower(username) = lower($1)`

	insertUserQuery = `
		INSERT INTO users (username, email, password, role, first_name, last_name, phone, avatar_pic)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING user_id, to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"'), to_char(updated_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')`

	updateUserQuery = `
		UPDATE users
		SET username = $1,
			email = $2,
			first_name = $3,
			last_name = $4,
			phone = $5,
			avatar_pic = $6,
			updated_at = now()
		WHERE user_id = $7`

	deleteUserQuery = `DELETE FROM users WHERE user_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row rowScanner) (User, error) {
	var u User
	var avatar sql.NullString
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Role, &u.FirstName, &u.LastName, &u.Phone, &avatar, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return User{}, err
	}
	if avatar.Valid {
		u.AvatarPic = &avatar.String
	}
	return u, nil
}

func (r *PostgresRepository) List() []User {
	rows, err := r.db.Query(listUsersQuery)
	if err != nil {
		return []User{}
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			continue
		}
		users = append(users, u)
	}

	return users
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	u, err := scanUser(r.db.QueryRow(getUserByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	u, err := scanUser(r.db.QueryRow(getUserByEmailQuery, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByLogin(login string) (User, error) {
	u, err := scanUser(r.db.QueryRow(getUserByLoginQuery, login))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(insertUserQuery, u.Username, u.Email, u.Password, u.Role, u.FirstName, u.LastName, u.Phone, u.AvatarPic).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	res, err := r.db.Exec(updateUserQuery, u.Username, u.Email, u.FirstName, u.LastName, u.Phone, u.AvatarPic, id)
	if err != nil {
		return User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return User{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteUserQuery, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
