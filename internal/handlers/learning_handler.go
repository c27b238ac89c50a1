package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/NitishV2006/OneOrbit/internal/models"
	"github.com/NitishV2006/OneOrbit/internal/services"
)

const recentSessionLimit = 10

type LearningHandler struct {
	data userDataAccess
}

func NewLearningHandler(data userDataAccess) *LearningHandler {
	return &LearningHandler{data: data}
}

var errLearningItemNotFound = errors.New("learning item not found")

func (h *LearningHandler) ListItems(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	data, err := h.data.Load(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load learning items"})
	}

	sessions := data.StudySessions
	if len(sessions) > recentSessionLimit {
		sessions = sessions[:recentSessionLimit]
	}

	return c.JSON(fiber.Map{
		"items":           data.LearningItems,
		"average_mastery": services.AverageMastery(data.LearningItems),
		"recent_sessions": sessions,
	})
}

type newLearningItemRequest struct {
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
}

func (h *LearningHandler) CreateItem(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req newLearningItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title is required"})
	}
	if !models.ValidDifficulty(req.Difficulty) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid difficulty"})
	}

	item := models.LearningItem{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Difficulty: req.Difficulty,
	}

	data, err := h.data.Update(c.Context(), userID, func(data *models.UserData) error {
		data.LearningItems = append(data.LearningItems, item)
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add learning item"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"item":  item,
		"items": data.LearningItems,
	})
}

type studySessionRequest struct {
	DurationMinutes int `json:"duration_minutes"`
	QualityRating   int `json:"quality_rating"`
}

// RecordSession logs a finished study session against an item: minutes
// accumulate, mastery grows by round(quality × duration / 5) capped at 100,
// and the item's streak counter advances.
func (h *LearningHandler) RecordSession(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	itemID := c.Params("id")

	var req studySessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.DurationMinutes <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Duration must be positive"})
	}
	if req.QualityRating < 1 || req.QualityRating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Quality rating must be between 1 and 5"})
	}

	now := time.Now().UTC()
	session := models.StudySession{
		ID:             uuid.NewString(),
		LearningItemID: itemID,
		StartTime:      now.Add(-time.Duration(req.DurationMinutes) * time.Minute).Format(time.RFC3339),
		EndTime:        now.Format(time.RFC3339),
		Duration:       req.DurationMinutes,
		QualityRating:  req.QualityRating,
	}

	var updated *models.LearningItem
	_, err := h.data.Update(c.Context(), userID, func(data *models.UserData) error {
		for i := range data.LearningItems {
			if data.LearningItems[i].ID != itemID {
				continue
			}
			item := &data.LearningItems[i]
			item.TimeInvestedMinutes += req.DurationMinutes
			gain := (req.QualityRating*req.DurationMinutes + 2) / 5
			item.MasteryScore = min(100, item.MasteryScore+gain)
			item.Streak++
			found := *item
			updated = &found

			data.StudySessions = append([]models.StudySession{session}, data.StudySessions...)
			return nil
		}
		return errLearningItemNotFound
	})
	if err != nil {
		if errors.Is(err, errLearningItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Learning item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record session"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session": session,
		"item":    updated,
	})
}
