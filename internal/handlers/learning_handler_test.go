package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/NitishV2006/OneOrbit/internal/models"
	"github.com/NitishV2006/OneOrbit/internal/repository"
	"github.com/NitishV2006/OneOrbit/internal/services"
)

func newLearningTestApp() (*fiber.App, *services.UserDataService) {
	data := services.NewUserDataService(repository.NewMemoryStore(), zap.NewNop())
	handler := NewLearningHandler(data)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "u1")
		return c.Next()
	})
	app.Get("/api/v1/learning", handler.ListItems)
	app.Post("/api/v1/learning", handler.CreateItem)
	app.Post("/api/v1/learning/:id/sessions", handler.RecordSession)
	return app, data
}

func TestCreateLearningItemStartsAtZero(t *testing.T) {
	app, _ := newLearningTestApp()

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/learning", map[string]string{
		"title":      "Linear Algebra",
		"difficulty": "Hard",
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	item := body["item"].(map[string]any)
	if item["mastery_score"].(float64) != 0 || item["streak"].(float64) != 0 || item["time_invested_minutes"].(float64) != 0 {
		t.Fatalf("expected zeroed counters on a new item, got %v", item)
	}
}

func TestCreateLearningItemRejectsBadDifficulty(t *testing.T) {
	app, _ := newLearningTestApp()

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/learning", map[string]string{
		"title":      "Linear Algebra",
		"difficulty": "Impossible",
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRecordSessionGrowsMastery(t *testing.T) {
	app, data := newLearningTestApp()

	if _, err := data.Update(context.Background(), "u1", func(data *models.UserData) error {
		data.LearningItems = []models.LearningItem{
			{ID: "l1", Title: "Go Concurrency", Difficulty: models.DifficultyMedium, MasteryScore: 40, Streak: 2, TimeInvestedMinutes: 100},
		}
		return nil
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/learning/l1/sessions", map[string]any{
		"duration_minutes": 25,
		"quality_rating":   4,
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	item := body["item"].(map[string]any)
	// 40 + round(4×25/5) = 60
	if item["mastery_score"].(float64) != 60 {
		t.Fatalf("expected mastery 60, got %v", item["mastery_score"])
	}
	if item["streak"].(float64) != 3 {
		t.Fatalf("expected streak 3, got %v", item["streak"])
	}
	if item["time_invested_minutes"].(float64) != 125 {
		t.Fatalf("expected 125 minutes, got %v", item["time_invested_minutes"])
	}

	session := body["session"].(map[string]any)
	if session["learning_item_id"] != "l1" || session["duration"].(float64) != 25 {
		t.Fatalf("unexpected session payload %v", session)
	}
}

func TestRecordSessionCapsMasteryAt100(t *testing.T) {
	app, data := newLearningTestApp()

	if _, err := data.Update(context.Background(), "u1", func(data *models.UserData) error {
		data.LearningItems = []models.LearningItem{
			{ID: "l1", Title: "Go Concurrency", Difficulty: models.DifficultyEasy, MasteryScore: 95},
		}
		return nil
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/learning/l1/sessions", map[string]any{
		"duration_minutes": 60,
		"quality_rating":   5,
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body := decodeBody(t, resp)
	if body["item"].(map[string]any)["mastery_score"].(float64) != 100 {
		t.Fatalf("expected mastery capped at 100, got %v", body["item"].(map[string]any)["mastery_score"])
	}
}

func TestRecordSessionUnknownItemReturns404(t *testing.T) {
	app, _ := newLearningTestApp()

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/learning/nope/sessions", map[string]any{
		"duration_minutes": 25,
		"quality_rating":   4,
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestListItemsReportsAverageMastery(t *testing.T) {
	app, data := newLearningTestApp()

	if _, err := data.Update(context.Background(), "u1", func(data *models.UserData) error {
		data.LearningItems = []models.LearningItem{
			{ID: "l1", MasteryScore: 30},
			{ID: "l2", MasteryScore: 70},
		}
		return nil
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/v1/learning", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body := decodeBody(t, resp)
	if body["average_mastery"].(float64) != 50 {
		t.Fatalf("expected average 50, got %v", body["average_mastery"])
	}
}
