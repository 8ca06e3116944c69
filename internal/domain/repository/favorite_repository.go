package repository

import (
	"context"
	"database/sql"
	"fmt"

	"chef_bazaar/internal/common"
	"chef_bazaar/internal/domain/model"
)

type FavoriteRepository interface {
	// Insert relies on the (user_email, meal_id) unique index; a duplicate
	// reports ErrConflict instead of inserting twice.
	Insert(ctx context.Context, fav *model.Favorite) error
	Exists(ctx context.Context, userEmail, mealID string) (bool, error)
	FindByUserEmail(ctx context.Context, email string) ([]model.Favorite, error)
	Delete(ctx context.Context, id string) error
}

type pgFavoriteRepository struct {
	db *sql.DB
}

func NewPgFavoriteRepository(db *sql.DB) FavoriteRepository {
	return &pgFavoriteRepository{db: db}
}

func (r *pgFavoriteRepository) Insert(ctx context.Context, fav *model.Favorite) error {
	query := `INSERT INTO favorites (id, user_email, meal_id, added_time)
	          VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, fav.ID, fav.UserEmail, fav.MealID, fav.AddedTime)
	if err != nil {
		if common.IsUniqueViolation(err, "uq_favorites_user_meal") {
			return common.ErrConflict
		}
		return fmt.Errorf("pgFavoriteRepository.Insert: %w", err)
	}
	return nil
}

func (r *pgFavoriteRepository) Exists(ctx context.Context, userEmail, mealID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_email = $1 AND meal_id = $2)`,
		userEmail, mealID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("pgFavoriteRepository.Exists: %w", err)
	}
	return exists, nil
}

func (r *pgFavoriteRepository) FindByUserEmail(ctx context.Context, email string) ([]model.Favorite, error) {
	query := `SELECT id, user_email, meal_id, added_time
	          FROM favorites WHERE user_email = $1 ORDER BY added_time DESC`
	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("pgFavoriteRepository.FindByUserEmail: %w", err)
	}
	defer rows.Close()

	var favorites []model.Favorite
	for rows.Next() {
		var fav model.Favorite
		if err := rows.Scan(&fav.ID, &fav.UserEmail, &fav.MealID, &fav.AddedTime); err != nil {
			return nil, fmt.Errorf("pgFavoriteRepository.FindByUserEmail: %w", err)
		}
		favorites = append(favorites, fav)
	}
	return favorites, rows.Err()
}

func (r *pgFavoriteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgFavoriteRepository.Delete: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
