package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chef_bazaar/internal/common"
	"chef_bazaar/internal/domain/model"
)

type RoleRequestRepository interface {
	// Insert creates a pending request. The existence check and the insert
	// are a single conditional write: a partial unique index rejects a
	// second pending request for the same requester.
	Insert(ctx context.Context, req *model.RoleRequest) error
	FindByID(ctx context.Context, id string) (*model.RoleRequest, error)
	ListAll(ctx context.Context) ([]model.RoleRequest, error)

	// Transition moves a request out of pending inside tx. It fails with
	// ErrInvalidState when the request is already terminal and ErrNotFound
	// when it does not exist.
	Transition(ctx context.Context, tx *sql.Tx, id, newStatus string) error
}

type pgRoleRequestRepository struct {
	db *sql.DB
}

func NewPgRoleRequestRepository(db *sql.DB) RoleRequestRepository {
	return &pgRoleRequestRepository{db: db}
}

func (r *pgRoleRequestRepository) Insert(ctx context.Context, req *model.RoleRequest) error {
	query := `INSERT INTO role_requests (id, requester_email, requested_role, request_status, request_time)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.RequesterEmail, req.RequestedRole, req.RequestStatus, req.RequestTime)
	if err != nil {
		if common.IsUniqueViolation(err, "uq_role_requests_pending") {
			return common.ErrDuplicateRequest
		}
		return fmt.Errorf("pgRoleRequestRepository.Insert: %w", err)
	}
	return nil
}

func (r *pgRoleRequestRepository) FindByID(ctx context.Context, id string) (*model.RoleRequest, error) {
	query := `SELECT id, requester_email, requested_role, request_status, request_time
	          FROM role_requests WHERE id = $1`
	req := &model.RoleRequest{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.RequesterEmail, &req.RequestedRole, &req.RequestStatus, &req.RequestTime,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgRoleRequestRepository.FindByID: %w", err)
	}
	return req, nil
}

// ListAll returns requests most recent first. The ordering is a user-facing
// guarantee, not incidental.
func (r *pgRoleRequestRepository) ListAll(ctx context.Context) ([]model.RoleRequest, error) {
	query := `SELECT id, requester_email, requested_role, request_status, request_time
	          FROM role_requests ORDER BY request_time DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgRoleRequestRepository.ListAll: %w", err)
	}
	defer rows.Close()

	var requests []model.RoleRequest
	for rows.Next() {
		var req model.RoleRequest
		if err := rows.Scan(&req.ID, &req.RequesterEmail, &req.RequestedRole, &req.RequestStatus, &req.RequestTime); err != nil {
			return nil, fmt.Errorf("pgRoleRequestRepository.ListAll: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *pgRoleRequestRepository) Transition(ctx context.Context, tx *sql.Tx, id, newStatus string) error {
	query := `UPDATE role_requests SET request_status = $2
	          WHERE id = $1 AND request_status = $3`
	result, err := tx.ExecContext(ctx, query, id, newStatus, model.RequestPending)
	if err != nil {
		return fmt.Errorf("pgRoleRequestRepository.Transition: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgRoleRequestRepository.Transition: %w", err)
	}
	if n == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM role_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("pgRoleRequestRepository.Transition: %w", err)
		}
		if !exists {
			return common.ErrNotFound
		}
		return common.ErrInvalidState
	}
	return nil
}
