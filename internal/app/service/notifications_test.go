package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"
)

func completedAt(d time.Duration) *time.Time {
	t := testNow.Add(d)
	return &t
}

func ids(todos []model.Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.ID
	}
	return out
}

func TestBuildNotificationsUpcomingWindow(t *testing.T) {
	todos := []model.Todo{
		{ID: "past", ScheduledAt: testNow.Add(-time.Minute)},
		{ID: "now", ScheduledAt: testNow},
		{ID: "in-3h", ScheduledAt: testNow.Add(3 * time.Hour)},
		{ID: "in-1h", ScheduledAt: testNow.Add(time.Hour)},
		{ID: "edge-4h", ScheduledAt: testNow.Add(4 * time.Hour)},
		{ID: "beyond", ScheduledAt: testNow.Add(4*time.Hour + time.Second)},
		{ID: "done-soon", ScheduledAt: testNow.Add(time.Hour), Completed: true, CompletedAt: completedAt(-time.Hour)},
	}

	n := BuildNotifications(todos, testNow)
	got := ids(n.Upcoming)
	want := []string{"in-1h", "in-3h", "edge-4h"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("upcoming = %v, want %v", got, want)
	}
	for _, todo := range n.Upcoming {
		if todo.Completed || todo.ScheduledAt.After(testNow.Add(UpcomingWindow)) {
			t.Errorf("upcoming contains %+v", todo)
		}
	}
}

func TestBuildNotificationsRecentlyCompletedCap(t *testing.T) {
	var todos []model.Todo
	for i := 0; i < 15; i++ {
		todos = append(todos, model.Todo{
			ID:          fmt.Sprintf("done-%02d", i),
			Completed:   true,
			CompletedAt: completedAt(-time.Duration(i) * time.Minute),
			ScheduledAt: testNow.Add(-time.Hour),
		})
	}
	todos = append(todos, model.Todo{ID: "open", ScheduledAt: testNow.Add(time.Hour)})

	n := BuildNotifications(todos, testNow)
	if len(n.RecentlyCompleted) != RecentlyCompletedCap {
		t.Fatalf("recently completed = %d, want %d", len(n.RecentlyCompleted), RecentlyCompletedCap)
	}
	if n.RecentlyCompleted[0].ID != "done-00" || n.RecentlyCompleted[9].ID != "done-09" {
		t.Errorf("recently completed order = %v", ids(n.RecentlyCompleted))
	}
}

func TestBuildNotificationsEmpty(t *testing.T) {
	n := BuildNotifications(nil, testNow)
	if n.Upcoming == nil || n.RecentlyCompleted == nil {
		t.Error("empty input should yield empty, non-nil slices")
	}
}
