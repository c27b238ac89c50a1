package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/NitishV2006/OneOrbit/internal/models"
	"github.com/NitishV2006/OneOrbit/internal/services"
)

type userDataAccess interface {
	Load(ctx context.Context, userID string) (*models.UserData, error)
	Update(ctx context.Context, userID string, mutate func(*models.UserData) error) (*models.UserData, error)
}

type TaskHandler struct {
	data     userDataAccess
	analyzer services.TextAnalyzer
}

func NewTaskHandler(data userDataAccess, analyzer services.TextAnalyzer) *TaskHandler {
	return &TaskHandler{data: data, analyzer: analyzer}
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	data, err := h.data.Load(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load tasks"})
	}

	return c.JSON(fiber.Map{
		"tasks":            data.Tasks,
		"streak":           services.Streak(data.Tasks),
		"completion_ratio": services.TaskCompletionRatio(data.Tasks),
	})
}

type newTaskRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	Duration int    `json:"duration"`
	DueDate  string `json:"due_date"`
	GoalID   string `json:"goalId"`
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req newTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.Duration <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title and positive duration are required"})
	}
	if !models.ValidTaskCategory(req.Category) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category"})
	}
	if !models.ValidTaskPriority(req.Priority) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid priority"})
	}

	dueDate := req.DueDate
	if dueDate == "" {
		dueDate = time.Now().UTC().Format(time.RFC3339)
	}

	task := models.Task{
		ID:       uuid.NewString(),
		Title:    req.Title,
		Category: req.Category,
		Priority: req.Priority,
		Duration: req.Duration,
		DueDate:  dueDate,
		GoalID:   req.GoalID,
	}

	data, err := h.data.Update(c.Context(), userID, func(data *models.UserData) error {
		if task.GoalID != "" && !goalExists(data, task.GoalID) {
			return services.ErrInvalidInput
		}
		data.Tasks = append([]models.Task{task}, data.Tasks...)
		return nil
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown goal reference"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add task"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"task":  task,
		"tasks": data.Tasks,
	})
}

// CompleteTask stamps the completion time once. Completing an already
// completed task keeps the original timestamp.
func (h *TaskHandler) CompleteTask(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	taskID := c.Params("id")

	var completed *models.Task
	data, err := h.data.Update(c.Context(), userID, func(data *models.UserData) error {
		for i := range data.Tasks {
			if data.Tasks[i].ID != taskID {
				continue
			}
			if data.Tasks[i].CompletedAt == nil {
				now := time.Now().UTC().Format(time.RFC3339)
				data.Tasks[i].CompletedAt = &now
			}
			task := data.Tasks[i]
			completed = &task
			return nil
		}
		return errTaskNotFound
	})
	if err != nil {
		if errors.Is(err, errTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete task"})
	}

	return c.JSON(fiber.Map{
		"task":   completed,
		"streak": services.Streak(data.Tasks),
	})
}

type analyzeTaskRequest struct {
	Title string `json:"title"`
}

// AnalyzeTask returns model suggestions for a task title. A null suggestion
// means the analysis produced nothing usable; the client shows a generic
// try-again message.
func (h *TaskHandler) AnalyzeTask(c *fiber.Ctx) error {
	if _, ok := currentUserID(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req analyzeTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title is required"})
	}

	if h.analyzer == nil {
		return c.JSON(fiber.Map{"suggestion": nil})
	}
	return c.JSON(fiber.Map{"suggestion": h.analyzer.AnalyzeTaskTitle(c.Context(), req.Title)})
}

var errTaskNotFound = errors.New("task not found")

func goalExists(data *models.UserData, goalID string) bool {
	for _, reflection := range data.Reflections {
		for _, goal := range reflection.Goals {
			if goal.ID == goalID {
				return true
			}
		}
	}
	return false
}
