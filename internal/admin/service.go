package admin

import (
	"context"

	"storefront-be/internal/metrics"
	"storefront-be/internal/order"
	"storefront-be/internal/review"
	"storefront-be/internal/user"
)

type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	Metrics() map[string]uint64
}

type service struct {
	repo       Repository
	orderRepo  order.Repository
	userRepo   user.Repository
	reviewRepo review.Repository
	registry   *metrics.Registry
}

func NewService(repo Repository, orderRepo order.Repository, userRepo user.Repository, reviewRepo review.Repository, registry *metrics.Registry) Service {
	return &service{
		repo:       repo,
		orderRepo:  orderRepo,
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
		registry:   registry,
	}
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	orderCount, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orderRepo.RevenueTotal(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	statusCounts := make(map[string]int, len(byStatus))
	for status, n := range byStatus {
		statusCounts[string(status)] = n
	}

	productStats, err := s.repo.ProductStats(ctx)
	if err != nil {
		return nil, err
	}

	pendingReviews, err := s.reviewRepo.CountByStatus(ctx, review.StatusPending)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Users: users,
		Orders: OrderStats{
			Total:    orderCount,
			Revenue:  revenue,
			ByStatus: statusCounts,
		},
		Products:       *productStats,
		PendingReviews: pendingReviews,
	}, nil
}

func (s *service) Metrics() map[string]uint64 {
	return s.registry.Snapshot()
}
