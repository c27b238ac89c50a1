package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/NitishV2006/OneOrbit/internal/models"
	"github.com/NitishV2006/OneOrbit/internal/services"
)

const healthHistoryDays = 7

type HealthHandler struct {
	data userDataAccess
}

func NewHealthHandler(data userDataAccess) *HealthHandler {
	return &HealthHandler{data: data}
}

func (h *HealthHandler) Today(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	data, err := h.data.Load(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load health logs"})
	}

	today := time.Now().UTC().Format("2006-01-02")
	resp := fiber.Map{"history": healthHistory(data.HealthLogs, time.Now().UTC())}
	if log, ok := data.HealthLogs[today]; ok {
		resp["today"] = log
	} else {
		resp["today"] = nil
	}
	return c.JSON(resp)
}

type healthLogRequest struct {
	SleepHours   float64 `json:"sleep_hours"`
	WaterCups    int     `json:"water_cups"`
	StressRating int     `json:"stress_rating"`
	FocusHours   float64 `json:"focus_hours"`
}

// LogToday upserts the current day's entry. Re-logging replaces the day's
// values and recomputes the energy score rather than appending a second row.
func (h *HealthHandler) LogToday(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req healthLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.SleepHours < 0 || req.SleepHours > 24 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Sleep hours must be between 0 and 24"})
	}
	if req.WaterCups < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Water cups cannot be negative"})
	}
	if req.StressRating < 1 || req.StressRating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Stress rating must be between 1 and 5"})
	}
	if req.FocusHours < 0 || req.FocusHours > 24 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Focus hours must be between 0 and 24"})
	}

	today := time.Now().UTC().Format("2006-01-02")
	var saved models.HealthLog
	data, err := h.data.Update(c.Context(), userID, func(data *models.UserData) error {
		log := models.HealthLog{
			ID:           uuid.NewString(),
			LoggedDate:   today,
			SleepHours:   req.SleepHours,
			WaterCups:    req.WaterCups,
			StressRating: req.StressRating,
			FocusHours:   req.FocusHours,
			EnergyScore:  services.EnergyScore(req.SleepHours, req.WaterCups, req.StressRating, req.FocusHours),
		}
		if existing, ok := data.HealthLogs[today]; ok {
			log.ID = existing.ID
		}
		if data.HealthLogs == nil {
			data.HealthLogs = make(map[string]models.HealthLog)
		}
		data.HealthLogs[today] = log
		saved = log
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save health log"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"today":   saved,
		"history": healthHistory(data.HealthLogs, time.Now().UTC()),
	})
}

// healthHistory returns the last seven calendar days oldest first, with gaps
// for days that were never logged.
func healthHistory(logs map[string]models.HealthLog, now time.Time) []models.HealthLog {
	history := make([]models.HealthLog, 0, healthHistoryDays)
	for i := healthHistoryDays - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		if log, ok := logs[date]; ok {
			history = append(history, log)
		}
	}
	return history
}
