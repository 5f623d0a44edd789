package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
)

const topContributors = 5

// DashboardService aggregates ticket counts. End users only count their own
// tickets.
type DashboardService struct {
	stats ports.StatsRepository
	users ports.UserRepository
}

func NewDashboardService(stats ports.StatsRepository, users ports.UserRepository) *DashboardService {
	return &DashboardService{stats: stats, users: users}
}

func (s *DashboardService) Summary(ctx context.Context, sess domain.Session) (*ports.DashboardSummary, error) {
	owner := ownerScope(sess)

	byStatus, err := s.stats.CountTicketsBy(ctx, "status", owner)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	byPriority, err := s.stats.CountTicketsBy(ctx, "priority", owner)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	unassigned, err := s.stats.CountUnassignedOpen(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	questions, err := s.stats.CountQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	top, err := s.users.TopByReputation(ctx, topContributors)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	sum := &ports.DashboardSummary{
		ByStatus:        withZeros(byStatus, string(domain.StatusOpen), string(domain.StatusInProgress), string(domain.StatusResolved), string(domain.StatusClosed)),
		ByPriority:      withZeros(byPriority, string(domain.PriorityLow), string(domain.PriorityMedium), string(domain.PriorityHigh)),
		UnassignedOpen:  unassigned,
		Questions:       questions,
		TopContributors: make([]ports.Contributor, 0, len(top)),
	}
	for _, n := range byStatus {
		sum.Total += n
	}
	for _, u := range top {
		sum.TopContributors = append(sum.TopContributors, ports.Contributor{
			UserID:       u.ID,
			Name:         displayName(u),
			Reputation:   u.Reputation,
			AnswersCount: u.AnswersCount,
		})
	}
	return sum, nil
}

func withZeros(counts map[string]int64, keys ...string) map[string]int64 {
	out := make(map[string]int64, len(keys))
	for _, k := range keys {
		out[k] = 0
	}
	for k, v := range counts {
		out[k] = v
	}
	return out
}

func displayName(u *domain.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}
