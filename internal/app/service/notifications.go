package service

import (
	"sort"
	"time"

	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"
)

const (
	UpcomingWindow       = 4 * time.Hour
	RecentlyCompletedCap = 10
)

type Notifications struct {
	Upcoming          []model.Todo
	RecentlyCompleted []model.Todo
}

// BuildNotifications derives both sets from a snapshot of one user's todos.
// Upcoming holds incomplete todos scheduled in (now, now+4h], soonest first.
// RecentlyCompleted holds the 10 most recently completed todos, newest first.
func BuildNotifications(todos []model.Todo, now time.Time) Notifications {
	horizon := now.Add(UpcomingWindow)
	n := Notifications{
		Upcoming:          []model.Todo{},
		RecentlyCompleted: []model.Todo{},
	}
	for _, t := range todos {
		if t.Completed {
			if t.CompletedAt != nil {
				n.RecentlyCompleted = append(n.RecentlyCompleted, t)
			}
			continue
		}
		if t.ScheduledAt.After(now) && !t.ScheduledAt.After(horizon) {
			n.Upcoming = append(n.Upcoming, t)
		}
	}

	sort.SliceStable(n.Upcoming, func(i, j int) bool {
		return n.Upcoming[i].ScheduledAt.Before(n.Upcoming[j].ScheduledAt)
	})
	sort.SliceStable(n.RecentlyCompleted, func(i, j int) bool {
		return n.RecentlyCompleted[i].CompletedAt.After(*n.RecentlyCompleted[j].CompletedAt)
	})
	if len(n.RecentlyCompleted) > RecentlyCompletedCap {
		n.RecentlyCompleted = n.RecentlyCompleted[:RecentlyCompletedCap]
	}
	return n
}
