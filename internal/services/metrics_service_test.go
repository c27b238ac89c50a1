package services

import (
	"math"
	"testing"
	"time"

	"github.com/NitishV2006/OneOrbit/internal/models"
)

func strPtr(s string) *string { return &s }

func TestTaskCompletionRatioBounds(t *testing.T) {
	if got := TaskCompletionRatio(nil); got != 0 {
		t.Fatalf("expected 0 for empty list, got %v", got)
	}

	done := strPtr("2026-08-30T10:00:00Z")
	tasks := []models.Task{
		{ID: "a", CompletedAt: done},
		{ID: "b"},
		{ID: "c", CompletedAt: done},
		{ID: "d"},
	}
	got := TaskCompletionRatio(tasks)
	if got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}

	all := []models.Task{{ID: "a", CompletedAt: done}, {ID: "b", CompletedAt: done}}
	if got := TaskCompletionRatio(all); got != 1 {
		t.Fatalf("expected 1 when all completed, got %v", got)
	}
}

func TestAverageMastery(t *testing.T) {
	if got := AverageMastery(nil); got != 0 {
		t.Fatalf("expected 0 for empty list, got %v", got)
	}

	items := []models.LearningItem{
		{MasteryScore: 20},
		{MasteryScore: 40},
		{MasteryScore: 90},
	}
	if got := AverageMastery(items); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
}

func TestBudgetPercentageClampsAt100(t *testing.T) {
	expenses := []models.Expense{{Amount: 150}, {Amount: 100}}

	if got := BudgetPercentage(expenses, 200); got != 100 {
		t.Fatalf("expected overspend to clamp at 100, got %v", got)
	}
	if got := BudgetPercentage(expenses, 500); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
	if got := BudgetPercentage(expenses, 0); got != 0 {
		t.Fatalf("expected 0 for zero budget, got %v", got)
	}
	if got := BudgetPercentage(expenses, -10); got != 0 {
		t.Fatalf("expected 0 for negative budget, got %v", got)
	}
}

func TestEnergyScoreClamps(t *testing.T) {
	// 2×10 + 7×5 + 6×2 − 4 = 63
	if got := EnergyScore(7, 6, 4, 2); got != 63 {
		t.Fatalf("expected 63, got %d", got)
	}
	if got := EnergyScore(0, 0, 10, 0); got != 0 {
		t.Fatalf("expected floor of 0, got %d", got)
	}
	if got := EnergyScore(12, 20, 1, 10); got != 100 {
		t.Fatalf("expected ceiling of 100, got %d", got)
	}
}

func TestEnergyScoreRounds(t *testing.T) {
	// 0.25×10 + 0 + 0 − 0 = 2.5, rounds half away from zero
	if got := EnergyScore(0, 0, 0, 0.25); got != 3 {
		t.Fatalf("expected rounding to 3, got %d", got)
	}
}

func TestStreakIsHalfCompletedCount(t *testing.T) {
	done := strPtr("2026-08-30T10:00:00Z")
	tasks := []models.Task{
		{ID: "a", CompletedAt: done},
		{ID: "b", CompletedAt: done},
		{ID: "c", CompletedAt: done},
		{ID: "d"},
	}
	if got := Streak(tasks); got != 1 {
		t.Fatalf("expected streak 1 for 3 completed, got %d", got)
	}
	if got := Streak(nil); got != 0 {
		t.Fatalf("expected 0 for no tasks, got %d", got)
	}
}

func TestGoalProgress(t *testing.T) {
	done := strPtr("2026-08-30T10:00:00Z")
	reflection := &models.Reflection{
		Goals: []models.Goal{
			{ID: "g1", Text: "Read more"},
			{ID: "g2", Text: "Exercise"},
		},
	}
	tasks := []models.Task{
		{ID: "a", GoalID: "g1", CompletedAt: done},
		{ID: "b", GoalID: "g1"},
		{ID: "c"},
	}

	entries := GoalProgress(reflection, tasks)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].GoalID != "g1" || entries[0].Progress != 50 {
		t.Fatalf("expected g1 at 50%%, got %+v", entries[0])
	}
	if entries[1].GoalID != "g2" || entries[1].Progress != 0 {
		t.Fatalf("expected g2 with no linked tasks at 0%%, got %+v", entries[1])
	}
}

func TestGoalProgressNilReflection(t *testing.T) {
	entries := GoalProgress(nil, []models.Task{{ID: "a"}})
	if len(entries) != 0 {
		t.Fatalf("expected empty result for nil reflection, got %d entries", len(entries))
	}
}

func TestOpenFocusHours(t *testing.T) {
	done := strPtr("2026-08-30T10:00:00Z")
	tasks := []models.Task{
		{ID: "a", Duration: 60},
		{ID: "b", Duration: 30},
		{ID: "c", Duration: 120, CompletedAt: done},
	}
	if got := OpenFocusHours(tasks); got != 1.5 {
		t.Fatalf("expected 1.5 open hours, got %v", got)
	}
}

func TestCompletedOn(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", CompletedAt: strPtr("2026-08-30T10:00:00Z")},
		{ID: "b", CompletedAt: strPtr("2026-08-30T18:30:00Z")},
		{ID: "c", CompletedAt: strPtr("2026-08-29T08:00:00Z")},
		{ID: "d"},
	}
	if got := CompletedOn(tasks, "2026-08-30"); got != 2 {
		t.Fatalf("expected 2 completions on 2026-08-30, got %d", got)
	}
}

func TestBuildDashboard(t *testing.T) {
	now, err := time.Parse(time.RFC3339, "2026-08-30T12:00:00Z")
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	done := strPtr("2026-08-30T10:00:00Z")

	data := &models.UserData{
		Tasks: []models.Task{
			{ID: "a", Duration: 60, CompletedAt: done},
			{ID: "b", Duration: 90},
		},
		LearningItems: []models.LearningItem{{MasteryScore: 40}, {MasteryScore: 60}},
		Expenses:      []models.Expense{{Amount: 250}},
		HealthLogs: map[string]models.HealthLog{
			"2026-08-30": {EnergyScore: 74},
		},
		FinanceSettings: models.FinanceSettings{WeeklyBudget: 1000},
	}

	summary := BuildDashboard(data, now)
	if summary.Progress.Tasks != 50 {
		t.Fatalf("expected 50%% task progress, got %v", summary.Progress.Tasks)
	}
	if summary.Progress.Study != 50 {
		t.Fatalf("expected 50 study progress, got %v", summary.Progress.Study)
	}
	if summary.Progress.Budget != 25 {
		t.Fatalf("expected 25%% budget, got %v", summary.Progress.Budget)
	}
	if summary.Progress.Health != 74 {
		t.Fatalf("expected health 74, got %v", summary.Progress.Health)
	}
	if summary.KPIs.Energy != 74 {
		t.Fatalf("expected energy 74, got %d", summary.KPIs.Energy)
	}
	if math.Abs(summary.KPIs.FocusHours-1.5) > 1e-9 {
		t.Fatalf("expected 1.5 focus hours, got %v", summary.KPIs.FocusHours)
	}
	if summary.KPIs.BudgetSpent != 250 {
		t.Fatalf("expected 250 spent, got %v", summary.KPIs.BudgetSpent)
	}
}

func TestBuildDashboardNoHealthLogToday(t *testing.T) {
	now, _ := time.Parse(time.RFC3339, "2026-08-30T12:00:00Z")
	data := &models.UserData{
		HealthLogs: map[string]models.HealthLog{
			"2026-08-29": {EnergyScore: 80},
		},
	}

	summary := BuildDashboard(data, now)
	if summary.Progress.Health != 0 || summary.KPIs.Energy != 0 {
		t.Fatalf("expected zero health with no log today, got %+v", summary)
	}
}
