package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/NitishV2006/OneOrbit/internal/models"
	"github.com/NitishV2006/OneOrbit/internal/services"
)

type ReflectionHandler struct {
	data     userDataAccess
	analyzer services.TextAnalyzer
}

func NewReflectionHandler(data userDataAccess, analyzer services.TextAnalyzer) *ReflectionHandler {
	return &ReflectionHandler{data: data, analyzer: analyzer}
}

func (h *ReflectionHandler) ListReflections(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	data, err := h.data.Load(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load reflections"})
	}

	var latest *models.Reflection
	if len(data.Reflections) > 0 {
		latest = &data.Reflections[0]
	}

	return c.JSON(fiber.Map{
		"reflections":   data.Reflections,
		"goal_progress": services.GoalProgress(latest, data.Tasks),
	})
}

type newReflectionRequest struct {
	Content models.ReflectionContent `json:"content"`
	Goals   []string                 `json:"goals"`
}

// CreateReflection stores a weekly reflection and turns its goals into
// tasks. When the caller supplies no goals they are extracted from the
// "next goals" text; extraction failing just means no tasks get spawned.
func (h *ReflectionHandler) CreateReflection(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req newReflectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Content.WorkedWell) == "" &&
		strings.TrimSpace(req.Content.FailedItems) == "" &&
		strings.TrimSpace(req.Content.NextGoals) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Reflection cannot be empty"})
	}

	goalTexts := make([]string, 0, len(req.Goals))
	for _, g := range req.Goals {
		if g = strings.TrimSpace(g); g != "" {
			goalTexts = append(goalTexts, g)
		}
	}
	if len(goalTexts) == 0 && h.analyzer != nil && strings.TrimSpace(req.Content.NextGoals) != "" {
		goalTexts = h.analyzer.ExtractGoals(c.Context(), req.Content.NextGoals)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	goals := make([]models.Goal, 0, len(goalTexts))
	tasks := make([]models.Task, 0, len(goalTexts))
	for _, text := range goalTexts {
		goal := models.Goal{ID: uuid.NewString(), Text: text, CreatedAt: now}
		goals = append(goals, goal)
		tasks = append(tasks, models.Task{
			ID:       uuid.NewString(),
			Title:    goal.Text,
			Category: models.TaskCategoryPersonal,
			Priority: models.TaskPriorityMedium,
			Duration: 30,
			DueDate:  now,
			GoalID:   goal.ID,
		})
	}

	reflection := models.Reflection{
		ID:        uuid.NewString(),
		CreatedAt: now,
		Content:   req.Content,
		Goals:     goals,
	}

	data, err := h.data.Update(c.Context(), userID, func(data *models.UserData) error {
		data.Reflections = append([]models.Reflection{reflection}, data.Reflections...)
		data.Tasks = append(append([]models.Task{}, tasks...), data.Tasks...)
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save reflection"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"reflection":    reflection,
		"tasks":         tasks,
		"goal_progress": services.GoalProgress(&data.Reflections[0], data.Tasks),
	})
}

type extractGoalsRequest struct {
	Text string `json:"text"`
}

// ExtractGoals runs goal extraction without persisting anything, so the
// client can preview and edit the list before saving a reflection.
func (h *ReflectionHandler) ExtractGoals(c *fiber.Ctx) error {
	if _, ok := currentUserID(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req extractGoalsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Text is required"})
	}

	goals := []string{}
	if h.analyzer != nil {
		goals = h.analyzer.ExtractGoals(c.Context(), req.Text)
	}
	if goals == nil {
		goals = []string{}
	}
	return c.JSON(fiber.Map{"goals": goals})
}
