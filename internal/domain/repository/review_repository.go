package repository

import (
	"context"
	"database/sql"
	"fmt"

	"chef_bazaar/internal/common"
	"chef_bazaar/internal/domain/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByMealID(ctx context.Context, mealID string) ([]model.Review, error)
	FindByUserEmail(ctx context.Context, email string) ([]model.Review, error)
	Update(ctx context.Context, id, text string, rating int) error
	Delete(ctx context.Context, id string) error
}

type pgReviewRepository struct {
	db *sql.DB
}

func NewPgReviewRepository(db *sql.DB) ReviewRepository {
	return &pgReviewRepository{db: db}
}

const reviewColumns = `id, meal_id, user_email, rating, review, created_at`

func (r *pgReviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `INSERT INTO reviews (id, meal_id, user_email, rating, review)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		review.ID, review.MealID, review.UserEmail, review.Rating, review.Review)
	if err != nil {
		return fmt.Errorf("pgReviewRepository.Create: %w", err)
	}
	return nil
}

func (r *pgReviewRepository) FindByMealID(ctx context.Context, mealID string) ([]model.Review, error) {
	return r.queryReviews(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE meal_id = $1 ORDER BY created_at DESC`, mealID)
}

func (r *pgReviewRepository) FindByUserEmail(ctx context.Context, email string) ([]model.Review, error) {
	return r.queryReviews(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE user_email = $1 ORDER BY created_at DESC`, email)
}

func (r *pgReviewRepository) queryReviews(ctx context.Context, query string, args ...interface{}) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgReviewRepository.queryReviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var review model.Review
		if err := rows.Scan(
			&review.ID, &review.MealID, &review.UserEmail, &review.Rating, &review.Review, &review.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgReviewRepository.queryReviews: %w", err)
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (r *pgReviewRepository) Update(ctx context.Context, id, text string, rating int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET review = $2, rating = $3 WHERE id = $1`, id, text, rating)
	if err != nil {
		return fmt.Errorf("pgReviewRepository.Update: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgReviewRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgReviewRepository.Delete: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
