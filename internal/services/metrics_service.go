package services

import (
	"math"
	"strings"
	"time"

	"github.com/NitishV2006/OneOrbit/internal/models"
)

// Derived metrics are pure functions over the current blob, recomputed on
// every read. Nothing here is cached or persisted.

// TaskCompletionRatio returns completed/total in [0,1], 0 for an empty list.
func TaskCompletionRatio(tasks []models.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, task := range tasks {
		if task.CompletedAt != nil {
			completed++
		}
	}
	return float64(completed) / float64(len(tasks))
}

// AverageMastery returns the mean mastery score, 0 for an empty list.
func AverageMastery(items []models.LearningItem) float64 {
	if len(items) == 0 {
		return 0
	}
	total := 0
	for _, item := range items {
		total += item.MasteryScore
	}
	return float64(total) / float64(len(items))
}

func TotalSpent(expenses []models.Expense) float64 {
	total := 0.0
	for _, expense := range expenses {
		total += expense.Amount
	}
	return total
}

// BudgetPercentage returns spent/budget as a percentage clamped at 100,
// 0 when the budget is not positive. The remainder shown to the user is
// budget − TotalSpent and may go negative; only the percentage clamps.
func BudgetPercentage(expenses []models.Expense, weeklyBudget float64) float64 {
	if weeklyBudget <= 0 {
		return 0
	}
	percentage := TotalSpent(expenses) / weeklyBudget * 100
	return math.Min(percentage, 100)
}

// EnergyScore derives a 0-100 score from one day's inputs:
// focus×10 + sleep×5 + water×2 − stress, rounded and clamped.
func EnergyScore(sleepHours float64, waterCups, stressRating int, focusHours float64) int {
	score := focusHours*10 + sleepHours*5 + float64(waterCups)*2 - float64(stressRating)
	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

type GoalProgressEntry struct {
	GoalID   string  `json:"goal_id"`
	Text     string  `json:"text"`
	Progress float64 `json:"progress"`
}

// GoalProgress reports, for each goal of the reflection, the percentage of
// goal-linked tasks that are completed. A goal with no linked tasks sits
// at 0%.
func GoalProgress(reflection *models.Reflection, tasks []models.Task) []GoalProgressEntry {
	if reflection == nil {
		return []GoalProgressEntry{}
	}

	entries := make([]GoalProgressEntry, 0, len(reflection.Goals))
	for _, goal := range reflection.Goals {
		linked, completed := 0, 0
		for _, task := range tasks {
			if task.GoalID != goal.ID {
				continue
			}
			linked++
			if task.CompletedAt != nil {
				completed++
			}
		}

		progress := 0.0
		if linked > 0 {
			progress = float64(completed) / float64(linked) * 100
		}
		entries = append(entries, GoalProgressEntry{GoalID: goal.ID, Text: goal.Text, Progress: progress})
	}
	return entries
}

// Streak counts one day per two completed tasks. This is a deliberately
// rough heuristic, not a consecutive-day calculation.
func Streak(tasks []models.Task) int {
	completed := 0
	for _, task := range tasks {
		if task.CompletedAt != nil {
			completed++
		}
	}
	return completed / 2
}

// OpenFocusHours sums the planned duration of incomplete tasks, in hours.
func OpenFocusHours(tasks []models.Task) float64 {
	minutes := 0
	for _, task := range tasks {
		if task.CompletedAt == nil {
			minutes += task.Duration
		}
	}
	return float64(minutes) / 60
}

// CompletedOn counts tasks whose completion timestamp falls on the given
// calendar date (YYYY-MM-DD).
func CompletedOn(tasks []models.Task, date string) int {
	count := 0
	for _, task := range tasks {
		if task.CompletedAt != nil && strings.HasPrefix(*task.CompletedAt, date) {
			count++
		}
	}
	return count
}

type DashboardProgress struct {
	Tasks  float64 `json:"tasks"`
	Study  float64 `json:"study"`
	Budget float64 `json:"budget"`
	Health float64 `json:"health"`
}

type DashboardKPIs struct {
	Streak      int     `json:"streak"`
	BudgetSpent float64 `json:"budget_spent"`
	Energy      int     `json:"energy"`
	FocusHours  float64 `json:"focus_hours"`
}

type DashboardSummary struct {
	Progress DashboardProgress `json:"progress"`
	KPIs     DashboardKPIs     `json:"kpis"`
}

// BuildDashboard assembles the Home orbit's progress rings and KPI cards
// from the current blob.
func BuildDashboard(data *models.UserData, now time.Time) DashboardSummary {
	today := now.UTC().Format("2006-01-02")

	healthProgress := 0.0
	energy := 0
	if log, ok := data.HealthLogs[today]; ok {
		healthProgress = float64(log.EnergyScore)
		energy = log.EnergyScore
	}

	return DashboardSummary{
		Progress: DashboardProgress{
			Tasks:  TaskCompletionRatio(data.Tasks) * 100,
			Study:  AverageMastery(data.LearningItems),
			Budget: BudgetPercentage(data.Expenses, data.FinanceSettings.WeeklyBudget),
			Health: healthProgress,
		},
		KPIs: DashboardKPIs{
			Streak:      Streak(data.Tasks),
			BudgetSpent: TotalSpent(data.Expenses),
			Energy:      energy,
			FocusHours:  OpenFocusHours(data.Tasks),
		},
	}
}
