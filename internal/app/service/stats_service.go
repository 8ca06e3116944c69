package service

import (
	"context"
	"fmt"

	"chef_bazaar/internal/domain/model"
	"chef_bazaar/internal/domain/repository"
)

type StatsService struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
}

func NewStatsService(userRepo repository.UserRepository, orderRepo repository.OrderRepository) *StatsService {
	return &StatsService{userRepo: userRepo, orderRepo: orderRepo}
}

type AdminStats struct {
	TotalUsers      int `json:"total_users"`
	TotalOrders     int `json:"total_orders"`
	DeliveredOrders int `json:"delivered_orders"`
}

func (s *StatsService) AdminStats(ctx context.Context) (*AdminStats, error) {
	totalUsers, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	totalOrders, err := s.orderRepo.CountOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	delivered, err := s.orderRepo.CountOrdersByStatus(ctx, model.OrderDelivered)
	if err != nil {
		return nil, fmt.Errorf("count delivered orders: %w", err)
	}

	return &AdminStats{
		TotalUsers:      totalUsers,
		TotalOrders:     totalOrders,
		DeliveredOrders: delivered,
	}, nil
}
