package models

// UserData is the complete per-user record. It is persisted and replaced as
// a single unit: every mutation rewrites the whole blob, last full write
// wins. SchemaVersion drives the load-time migration (see services.MigrateUserData).
type UserData struct {
	SchemaVersion   int                  `json:"schema_version"`
	Profile         Profile              `json:"profile"`
	Tasks           []Task               `json:"tasks"`
	LearningItems   []LearningItem       `json:"learningItems"`
	StudySessions   []StudySession       `json:"studySessions"`
	Expenses        []Expense            `json:"expenses"`
	HealthLogs      map[string]HealthLog `json:"healthLogs"`
	FinanceSettings FinanceSettings      `json:"financeSettings"`
	Reflections     []Reflection         `json:"reflections"`
	TrioMembers     []TrioMember         `json:"trioMembers"`
	CheckIns        []CheckIn            `json:"checkIns"`
}

// UserDataSchemaVersion is the version written by the current code. Version 1
// blobs predate the social-accountability fields.
const UserDataSchemaVersion = 2

type Profile struct {
	Bio      string    `json:"bio"`
	Skills   []string  `json:"skills"`
	Projects []Project `json:"projects"`
}

type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Task struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Priority    string  `json:"priority"`
	Duration    int     `json:"duration"`
	DueDate     string  `json:"due_date"`
	CompletedAt *string `json:"completed_at"`
	GoalID      string  `json:"goalId,omitempty"`
}

const (
	TaskCategoryStudy    = "Study"
	TaskCategoryWork     = "Work"
	TaskCategoryPersonal = "Personal"
	TaskCategoryFitness  = "Fitness"

	TaskPriorityLow    = "Low"
	TaskPriorityMedium = "Medium"
	TaskPriorityHigh   = "High"
)

func ValidTaskCategory(category string) bool {
	switch category {
	case TaskCategoryStudy, TaskCategoryWork, TaskCategoryPersonal, TaskCategoryFitness:
		return true
	}
	return false
}

func ValidTaskPriority(priority string) bool {
	switch priority {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type LearningItem struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Difficulty          string `json:"difficulty"`
	MasteryScore        int    `json:"mastery_score"`
	Streak              int    `json:"streak"`
	TimeInvestedMinutes int    `json:"time_invested_minutes"`
}

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

func ValidDifficulty(difficulty string) bool {
	switch difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type StudySession struct {
	ID             string `json:"id"`
	LearningItemID string `json:"learning_item_id"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Duration       int    `json:"duration"`
	QualityRating  int    `json:"quality_rating"`
}

type Expense struct {
	ID        string  `json:"id"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category"`
	Note      string  `json:"note"`
	CreatedAt string  `json:"created_at"`
}

const (
	ExpenseCategoryFood          = "Food"
	ExpenseCategoryTransport     = "Transport"
	ExpenseCategorySupplies      = "Supplies"
	ExpenseCategoryEntertainment = "Entertainment"
	ExpenseCategoryOther         = "Other"
)

func ValidExpenseCategory(category string) bool {
	switch category {
	case ExpenseCategoryFood, ExpenseCategoryTransport, ExpenseCategorySupplies,
		ExpenseCategoryEntertainment, ExpenseCategoryOther:
		return true
	}
	return false
}

// HealthLog holds one day's self-reported metrics. EnergyScore is derived
// from the other fields when the log is written.
type HealthLog struct {
	ID           string  `json:"id"`
	LoggedDate   string  `json:"logged_date"`
	SleepHours   float64 `json:"sleep_hours"`
	WaterCups    int     `json:"water_cups"`
	StressRating int     `json:"stress_rating"`
	FocusHours   float64 `json:"focus_hours"`
	EnergyScore  int     `json:"energy_score"`
}

type FinanceSettings struct {
	WeeklyBudget float64 `json:"weeklyBudget"`
}

type Goal struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

type ReflectionContent struct {
	WorkedWell  string `json:"worked_well"`
	FailedItems string `json:"failed_items"`
	NextGoals   string `json:"next_goals"`
}

type Reflection struct {
	ID        string            `json:"id"`
	CreatedAt string            `json:"created_at"`
	Content   ReflectionContent `json:"content"`
	Goals     []Goal            `json:"goals"`
}

type TrioMember struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

type CheckIn struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// TaskSuggestion is the structured result of analyzing a task title.
type TaskSuggestion struct {
	Category string `json:"category"`
	Priority string `json:"priority"`
	Duration int    `json:"duration"`
}
