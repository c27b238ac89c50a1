// Package seed holds the demo account set and the template data blob used
// to initialize storage on first read.
package seed

import (
	"time"

	"github.com/NitishV2006/OneOrbit/internal/models"
)

// DemoPassword is the shared password for the seeded demo accounts. It is
// hashed before the accounts are written.
const DemoPassword = "password"

func DemoAccounts(hash func(string) (string, error)) ([]models.Account, error) {
	demos := []struct {
		id       string
		username string
		avatar   string
	}{
		{"1", "demo", "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?q=80&w=256&h=256&fit=crop&crop=faces"},
		{"2", "alex", "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?q=80&w=256&h=256&fit=crop&crop=faces"},
		{"3", "casey", "https://images.unsplash.com/photo-1580489944761-15a19d654956?q=80&w=256&h=256&fit=crop&crop=faces"},
		{"4", "jordan", "https://images.unsplash.com/photo-1544005313-94ddf0286df2?q=80&w=256&h=256&fit=crop&crop=faces"},
		{"5", "riley", "https://images.unsplash.com/photo-1494790108377-be9c29b29330?q=80&w=256&h=256&fit=crop&crop=faces"},
		{"6", "morgan", "https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?q=80&w=256&h=256&fit=crop&crop=faces"},
	}

	accounts := make([]models.Account, 0, len(demos))
	for _, demo := range demos {
		passwordHash, err := hash(DemoPassword)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, models.Account{
			ID:           demo.id,
			Username:     demo.username,
			PasswordHash: passwordHash,
			AvatarURL:    demo.avatar,
			CreatedAt:    time.Now().UTC(),
		})
	}
	return accounts, nil
}

// TrioMembers is the fixed accountability pair offered when a user forms
// their trio.
func TrioMembers() []models.TrioMember {
	return []models.TrioMember{
		{
			ID:        "trio-1",
			Username:  "gnanendra",
			AvatarURL: "https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?q=80&w=256&h=256&fit=crop&crop=faces",
		},
		{
			ID:        "trio-2",
			Username:  "manohar",
			AvatarURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?q=80&w=256&h=256&fit=crop&crop=faces",
		},
	}
}

// TemplateUserData is the default blob written for accounts that have no
// stored data yet.
func TemplateUserData() models.UserData {
	return models.UserData{
		SchemaVersion: models.UserDataSchemaVersion,
		Profile: models.Profile{
			Bio:      "Ready to start my journey!",
			Skills:   []string{},
			Projects: []models.Project{},
		},
		Tasks:           []models.Task{},
		LearningItems:   []models.LearningItem{},
		StudySessions:   []models.StudySession{},
		Expenses:        []models.Expense{},
		HealthLogs:      map[string]models.HealthLog{},
		FinanceSettings: models.FinanceSettings{WeeklyBudget: 3000},
		Reflections:     []models.Reflection{},
		TrioMembers:     []models.TrioMember{},
		CheckIns:        []models.CheckIn{},
	}
}

// DemoUserData is the richer starter blob attached to the "demo" account so
// a fresh install has something to show on every orbit.
func DemoUserData() models.UserData {
	now := time.Now().UTC()
	yesterday := now.AddDate(0, 0, -1)
	yesterdayDate := yesterday.Format("2006-01-02")
	yesterdayAt := yesterday.Format(time.RFC3339)
	todayAt := now.Format(time.RFC3339)

	data := TemplateUserData()
	data.Profile = models.Profile{
		Bio:    "Lifelong learner and productivity enthusiast. Exploring the intersection of technology and self-improvement.",
		Skills: []string{"Go", "PostgreSQL", "Productivity", "Time Management"},
		Projects: []models.Project{
			{Title: "Personal Portfolio", Description: "A website to showcase my work."},
			{Title: "Task Management CLI", Description: "A command-line tool for managing daily tasks."},
		},
	}
	data.Tasks = []models.Task{
		{ID: "t1", Title: "Complete Chapter 5 of History book", Category: models.TaskCategoryStudy, Priority: models.TaskPriorityHigh, Duration: 60, DueDate: todayAt, GoalID: "g1"},
		{ID: "t2", Title: "Go for a 30-min run", Category: models.TaskCategoryFitness, Priority: models.TaskPriorityMedium, Duration: 30, DueDate: todayAt},
		{ID: "t3", Title: "Submit project proposal", Category: models.TaskCategoryWork, Priority: models.TaskPriorityHigh, Duration: 120, DueDate: todayAt},
		{ID: "t4", Title: "Grocery shopping", Category: models.TaskCategoryPersonal, Priority: models.TaskPriorityLow, Duration: 45, DueDate: yesterdayAt, CompletedAt: &yesterdayAt},
	}
	data.LearningItems = []models.LearningItem{
		{ID: "l1", Title: "Quantum Computing Basics", Difficulty: models.DifficultyHard, MasteryScore: 25, Streak: 2, TimeInvestedMinutes: 120},
		{ID: "l2", Title: "Advanced CSS Selectors", Difficulty: models.DifficultyEasy, MasteryScore: 85, Streak: 5, TimeInvestedMinutes: 300},
		{ID: "l3", Title: "Data Structures in Python", Difficulty: models.DifficultyMedium, MasteryScore: 60, Streak: 3, TimeInvestedMinutes: 450},
	}
	data.StudySessions = []models.StudySession{
		{ID: "ss1", LearningItemID: "l1", StartTime: yesterdayAt, EndTime: yesterday.Add(25 * time.Minute).Format(time.RFC3339), Duration: 25, QualityRating: 4},
	}
	data.Expenses = []models.Expense{
		{ID: "e1", Amount: 250.00, Category: models.ExpenseCategoryFood, Note: "Lunch with team", CreatedAt: todayAt},
		{ID: "e2", Amount: 85.50, Category: models.ExpenseCategoryTransport, Note: "Metro card recharge", CreatedAt: todayAt},
		{ID: "e3", Amount: 1200.00, Category: models.ExpenseCategorySupplies, Note: "New textbooks", CreatedAt: yesterdayAt},
	}
	data.HealthLogs = map[string]models.HealthLog{
		yesterdayDate: {ID: "h1", LoggedDate: yesterdayDate, SleepHours: 7.5, WaterCups: 8, StressRating: 3, FocusHours: 6, EnergyScore: 74},
	}
	data.FinanceSettings = models.FinanceSettings{WeeklyBudget: 5000}
	data.Reflections = []models.Reflection{
		{
			ID:        "r1",
			CreatedAt: yesterdayAt,
			Content: models.ReflectionContent{
				WorkedWell:  "Managed to stick to my study schedule and completed all planned tasks.",
				FailedItems: "Procrastinated on my workout routine and overspent on food.",
				NextGoals:   "My main goal is to finish the history book and start preparing for the exam.",
			},
			Goals: []models.Goal{
				{ID: "g1", Text: "Finish history book for exam preparation", CreatedAt: yesterdayAt},
			},
		},
	}
	data.TrioMembers = TrioMembers()
	data.CheckIns = []models.CheckIn{
		{UserID: "trio-1", Username: "gnanendra", AvatarURL: data.TrioMembers[0].AvatarURL, Message: "Ready for another productive week!", Timestamp: now.Add(-3 * time.Hour).Format(time.RFC3339)},
		{UserID: "1", Username: "demo", AvatarURL: "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?q=80&w=256&h=256&fit=crop&crop=faces", Message: "Just finished my history chapter. On to the next task!", Timestamp: now.Add(-2 * time.Hour).Format(time.RFC3339)},
		{UserID: "trio-2", Username: "manohar", AvatarURL: data.TrioMembers[1].AvatarURL, Message: "Awesome job, demo! I'm about to start my workout.", Timestamp: now.Add(-1 * time.Hour).Format(time.RFC3339)},
	}
	return data
}
