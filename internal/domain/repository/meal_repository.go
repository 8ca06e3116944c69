package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chef_bazaar/internal/common"
	"chef_bazaar/internal/domain/model"
)

type MealRepository interface {
	Create(ctx context.Context, meal *model.Meal) error
	FindByID(ctx context.Context, id string) (*model.Meal, error)
	FindAll(ctx context.Context) ([]model.Meal, error)
	FindByChefEmail(ctx context.Context, email string) ([]model.Meal, error)
	Delete(ctx context.Context, id string) error
}

type pgMealRepository struct {
	db *sql.DB
}

func NewPgMealRepository(db *sql.DB) MealRepository {
	return &pgMealRepository{db: db}
}

const mealColumns = `id, chef_email, chef_name, title, slug, description, price, image_url, created_at`

func (r *pgMealRepository) Create(ctx context.Context, meal *model.Meal) error {
	query := `INSERT INTO meals (id, chef_email, chef_name, title, slug, description, price, image_url)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		meal.ID, meal.ChefEmail, meal.ChefName, meal.Title, meal.Slug, meal.Description, meal.Price, meal.ImageURL)
	if err != nil {
		return fmt.Errorf("pgMealRepository.Create: %w", err)
	}
	return nil
}

func (r *pgMealRepository) FindByID(ctx context.Context, id string) (*model.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE id = $1`
	meal := &model.Meal{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&meal.ID, &meal.ChefEmail, &meal.ChefName, &meal.Title, &meal.Slug,
		&meal.Description, &meal.Price, &meal.ImageURL, &meal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgMealRepository.FindByID: %w", err)
	}
	return meal, nil
}

func (r *pgMealRepository) FindAll(ctx context.Context) ([]model.Meal, error) {
	return r.queryMeals(ctx, `SELECT `+mealColumns+` FROM meals ORDER BY created_at DESC`)
}

func (r *pgMealRepository) FindByChefEmail(ctx context.Context, email string) ([]model.Meal, error) {
	return r.queryMeals(ctx,
		`SELECT `+mealColumns+` FROM meals WHERE chef_email = $1 ORDER BY created_at DESC`, email)
}

func (r *pgMealRepository) queryMeals(ctx context.Context, query string, args ...interface{}) ([]model.Meal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgMealRepository.queryMeals: %w", err)
	}
	defer rows.Close()

	var meals []model.Meal
	for rows.Next() {
		var meal model.Meal
		if err := rows.Scan(
			&meal.ID, &meal.ChefEmail, &meal.ChefName, &meal.Title, &meal.Slug,
			&meal.Description, &meal.Price, &meal.ImageURL, &meal.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgMealRepository.queryMeals: %w", err)
		}
		meals = append(meals, meal)
	}
	return meals, rows.Err()
}

func (r *pgMealRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM meals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgMealRepository.Delete: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
