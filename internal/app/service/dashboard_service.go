package service

import (
	"context"
	"fmt"

	"github.com/SamriddhiRoy/user-dashboard/internal/common/clock"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/repository"
	"github.com/SamriddhiRoy/user-dashboard/internal/platform/logger"

	"go.uber.org/zap"
)

type DashboardService struct {
	todoRepo repository.TodoRepository
	userRepo repository.UserRepository
	stats    StatsCache
	clock    clock.Clock
}

func NewDashboardService(todoRepo repository.TodoRepository, userRepo repository.UserRepository, stats StatsCache, clk clock.Clock) *DashboardService {
	return &DashboardService{todoRepo: todoRepo, userRepo: userRepo, stats: stats, clock: clk}
}

// Stats returns the caller's todo counters. totalUsers is only filled in for
// superusers and is always read live.
func (s *DashboardService) Stats(ctx context.Context, user *model.User) (*model.TodoStats, error) {
	stats, err := s.todoStats(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	out := *stats
	out.TotalUsers = 0
	if user.IsSuperuser() {
		total, err := s.userRepo.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("counting users: %w", err)
		}
		out.TotalUsers = total
	}
	return &out, nil
}

func (s *DashboardService) todoStats(ctx context.Context, userID string) (*model.TodoStats, error) {
	if s.stats != nil {
		cached, err := s.stats.Get(ctx, userID)
		if err != nil {
			logger.Warn("reading stats cache", zap.String("user_id", userID), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	stats, err := s.todoRepo.Stats(ctx, userID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("computing todo stats: %w", err)
	}
	if s.stats != nil {
		if err := s.stats.Set(ctx, userID, stats); err != nil {
			logger.Warn("writing stats cache", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return stats, nil
}
