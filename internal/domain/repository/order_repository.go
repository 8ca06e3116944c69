package repository

import (
	"context"
	"database/sql"
	"fmt"

	"chef_bazaar/internal/common"
	"chef_bazaar/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByUserEmail(ctx context.Context, email string) ([]model.Order, error)
	FindByChefID(ctx context.Context, chefID string) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
	MarkPaid(ctx context.Context, id string) error
	CountOrders(ctx context.Context) (int, error)
	CountOrdersByStatus(ctx context.Context, status string) (int, error)
}

type pgOrderRepository struct {
	db *sql.DB
}

func NewPgOrderRepository(db *sql.DB) OrderRepository {
	return &pgOrderRepository{db: db}
}

const orderColumns = `id, meal_id, user_email, chef_id, quantity, order_status, payment_status, created_at`

func (r *pgOrderRepository) Create(ctx context.Context, order *model.Order) error {
	query := `INSERT INTO orders (id, meal_id, user_email, chef_id, quantity, order_status, payment_status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		order.ID, order.MealID, order.UserEmail, order.ChefID, order.Quantity,
		order.OrderStatus, order.PaymentStatus)
	if err != nil {
		return fmt.Errorf("pgOrderRepository.Create: %w", err)
	}
	return nil
}

func (r *pgOrderRepository) FindByUserEmail(ctx context.Context, email string) ([]model.Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_email = $1 ORDER BY created_at DESC`, email)
}

func (r *pgOrderRepository) FindByChefID(ctx context.Context, chefID string) ([]model.Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE chef_id = $1 ORDER BY created_at DESC`, chefID)
}

func (r *pgOrderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgOrderRepository.queryOrders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var order model.Order
		if err := rows.Scan(
			&order.ID, &order.MealID, &order.UserEmail, &order.ChefID, &order.Quantity,
			&order.OrderStatus, &order.PaymentStatus, &order.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgOrderRepository.queryOrders: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *pgOrderRepository) UpdateOrderStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET order_status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("pgOrderRepository.UpdateOrderStatus: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgOrderRepository) MarkPaid(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET payment_status = $2 WHERE id = $1`, id, model.PaymentPaid)
	if err != nil {
		return fmt.Errorf("pgOrderRepository.MarkPaid: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgOrderRepository) CountOrders(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM orders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgOrderRepository.CountOrders: %w", err)
	}
	return count, nil
}

func (r *pgOrderRepository) CountOrdersByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM orders WHERE order_status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgOrderRepository.CountOrdersByStatus: %w", err)
	}
	return count, nil
}
