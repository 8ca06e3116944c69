package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chef_bazaar/internal/common"
	"chef_bazaar/internal/domain/model"
)

// UserRepository is the identity directory: the source of truth for a user's
// role and status. Role lookups happen on every gated request, so reads must
// stay point lookups.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	CountUsers(ctx context.Context) (int, error)
	UpdateStatus(ctx context.Context, id, status string) error

	// UpdateRole and NextChefSeq run inside the approval transaction.
	UpdateRole(ctx context.Context, tx *sql.Tx, email, role string, chefID *string) error
	NextChefSeq(ctx context.Context, tx *sql.Tx) (int64, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, name, email, role, status, chef_id, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &user.Status,
		&user.ChefID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, name, email, role, status)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.Role, user.Status)
	if err != nil {
		if common.IsUniqueViolation(err, "uq_users_email") {
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("pgUserRepository.FindAll: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *pgUserRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgUserRepository.CountUsers: %w", err)
	}
	return count, nil
}

func (r *pgUserRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE users SET status = $2, updated_at = now() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdateStatus: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) UpdateRole(ctx context.Context, tx *sql.Tx, email, role string, chefID *string) error {
	query := `UPDATE users SET role = $2, chef_id = $3, updated_at = now() WHERE email = $1`
	result, err := tx.ExecContext(ctx, query, email, role, chefID)
	if err != nil {
		if common.IsUniqueViolation(err, "uq_users_chef_id") {
			return fmt.Errorf("chef id %v: %w", chefID, common.ErrAllocationConflict)
		}
		return fmt.Errorf("pgUserRepository.UpdateRole: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// NextChefSeq atomically advances the chef identifier counter and returns the
// new value. Running it inside the approval transaction keeps the counter and
// the user write a single logical unit.
func (r *pgUserRepository) NextChefSeq(ctx context.Context, tx *sql.Tx) (int64, error) {
	var value int64
	query := `UPDATE chef_sequence SET value = value + 1 WHERE id = 1 RETURNING value`
	if err := tx.QueryRowContext(ctx, query).Scan(&value); err != nil {
		return 0, fmt.Errorf("pgUserRepository.NextChefSeq: %w", err)
	}
	return value, nil
}
