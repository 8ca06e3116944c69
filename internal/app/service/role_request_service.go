package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"chef_bazaar/internal/common"
	"chef_bazaar/internal/domain/model"
	"chef_bazaar/internal/domain/repository"
	"chef_bazaar/internal/platform/metrics"
)

// RoleRequestService runs the role-change workflow: a user submits a request,
// an administrator resolves it exactly once. Approving a chef request also
// allocates the user's chef identifier.
type RoleRequestService struct {
	requestRepo repository.RoleRequestRepository
	userRepo    repository.UserRepository
	tx          repository.TxRunner
	log         zerolog.Logger
}

func NewRoleRequestService(
	requestRepo repository.RoleRequestRepository,
	userRepo repository.UserRepository,
	tx repository.TxRunner,
	log zerolog.Logger,
) *RoleRequestService {
	return &RoleRequestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		tx:          tx,
		log:         log.With().Str("service", "role_request").Logger(),
	}
}

// FormatChefID renders the nth allocation as CH-001, CH-002, ... The numeric
// part simply grows past three digits.
func FormatChefID(seq int64) string {
	return fmt.Sprintf("CH-%03d", seq)
}

func (s *RoleRequestService) Submit(ctx context.Context, requesterEmail, requestedRole string) (*model.RoleRequest, error) {
	if !model.ValidRole(requestedRole) {
		return nil, fmt.Errorf("unknown role %q: %w", requestedRole, common.ErrValidation)
	}

	// requester_email is a logical foreign key; the schema does not enforce
	// it, so the workflow does.
	if _, err := s.userRepo.FindByEmail(ctx, requesterEmail); err != nil {
		return nil, fmt.Errorf("requester lookup: %w", err)
	}

	req := &model.RoleRequest{
		ID:             uuid.NewString(),
		RequesterEmail: requesterEmail,
		RequestedRole:  requestedRole,
		RequestStatus:  model.RequestPending,
		RequestTime:    time.Now().UTC(),
	}
	if err := s.requestRepo.Insert(ctx, req); err != nil {
		if errors.Is(err, common.ErrDuplicateRequest) {
			metrics.RoleRequestsTotal.WithLabelValues("duplicate").Inc()
		}
		return nil, err
	}

	metrics.RoleRequestsTotal.WithLabelValues("submitted").Inc()
	s.log.Info().Str("requester", requesterEmail).Str("role", requestedRole).Msg("role request submitted")
	return req, nil
}

// ListAll returns every request, most recent first.
func (s *RoleRequestService) ListAll(ctx context.Context) ([]model.RoleRequest, error) {
	return s.requestRepo.ListAll(ctx)
}

// ListPending returns pending requests, most recent first.
func (s *RoleRequestService) ListPending(ctx context.Context) ([]model.RoleRequest, error) {
	all, err := s.requestRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	pending := make([]model.RoleRequest, 0, len(all))
	for _, req := range all {
		if req.RequestStatus == model.RequestPending {
			pending = append(pending, req)
		}
	}
	return pending, nil
}

// Approve grants targetRole to targetEmail and marks the request approved.
// The chef identifier allocation, the user write, and the status transition
// run in one transaction; the transition is the last write so a crash
// mid-operation leaves the request visibly pending.
func (s *RoleRequestService) Approve(ctx context.Context, requestID, targetRole, targetEmail string) (*string, error) {
	if !model.ValidRole(targetRole) {
		return nil, fmt.Errorf("unknown role %q: %w", targetRole, common.ErrValidation)
	}
	if _, err := s.userRepo.FindByEmail(ctx, targetEmail); err != nil {
		return nil, fmt.Errorf("target user lookup: %w", err)
	}

	var chefID *string
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		if targetRole == model.RoleChef {
			seq, err := s.userRepo.NextChefSeq(ctx, tx)
			if err != nil {
				return fmt.Errorf("allocate chef id: %w", err)
			}
			id := FormatChefID(seq)
			chefID = &id
		}

		if err := s.userRepo.UpdateRole(ctx, tx, targetEmail, targetRole, chefID); err != nil {
			if chefID != nil && !errors.Is(err, common.ErrAllocationConflict) {
				// The identifier was allocated but never reached the
				// user record. The rollback keeps storage consistent,
				// yet the failure is operational and must not look
				// like a denial.
				s.log.Error().Err(err).
					Str("chef_id", *chefID).
					Str("email", targetEmail).
					Msg("chef id allocated but user update failed")
				return fmt.Errorf("update role for %s: %v: %w", targetEmail, err, common.ErrInconsistent)
			}
			return fmt.Errorf("update role for %s: %w", targetEmail, err)
		}

		// The transition stays the last write.
		if err := s.requestRepo.Transition(ctx, tx, requestID, model.RequestApproved); err != nil {
			return fmt.Errorf("transition request %s: %w", requestID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RoleRequestsTotal.WithLabelValues("approved").Inc()
	event := s.log.Info().Str("request_id", requestID).Str("email", targetEmail).Str("role", targetRole)
	if chefID != nil {
		event = event.Str("chef_id", *chefID)
	}
	event.Msg("role request approved")
	return chefID, nil
}

// Reject marks the request rejected. Rejecting a request that is already
// terminal fails with ErrInvalidState rather than silently succeeding.
func (s *RoleRequestService) Reject(ctx context.Context, requestID string) error {
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		return s.requestRepo.Transition(ctx, tx, requestID, model.RequestRejected)
	})
	if err != nil {
		return fmt.Errorf("transition request %s: %w", requestID, err)
	}

	metrics.RoleRequestsTotal.WithLabelValues("rejected").Inc()
	s.log.Info().Str("request_id", requestID).Msg("role request rejected")
	return nil
}
