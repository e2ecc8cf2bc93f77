package repositories

import (
	"context"
	"errors"

	"medivision/internal/common"
	"medivision/internal/models"

	"github.com/jackc/pgx/v5"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, username string) error
	SetActive(ctx context.Context, username string, active bool) error
	SetProfilePic(ctx context.Context, username, objectName string) error
}

type userRepository struct {
	db Database
}

func NewUserRepository(db Database) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (id, username, password_hash, company, role, is_active, profile_pic)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.Company, user.Role, user.IsActive, user.ProfilePic)
	return err
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password_hash, company, role, is_active, profile_pic
		FROM users WHERE username = $1`
	user := &models.User{}
	err := r.db.QueryRow(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Company, &user.Role, &user.IsActive, &user.ProfilePic)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT id, username, password_hash, company, role, is_active, profile_pic
		FROM users ORDER BY username`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Company,
			&user.Role, &user.IsActive, &user.ProfilePic); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) Delete(ctx context.Context, username string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *userRepository) SetActive(ctx context.Context, username string, active bool) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET is_active = $1 WHERE username = $2`, active, username)
	return err
}

func (r *userRepository) SetProfilePic(ctx context.Context, username, objectName string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET profile_pic = $1 WHERE username = $2`, objectName, username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}
