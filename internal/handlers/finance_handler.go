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

type FinanceHandler struct {
	data userDataAccess
}

func NewFinanceHandler(data userDataAccess) *FinanceHandler {
	return &FinanceHandler{data: data}
}

func (h *FinanceHandler) Summary(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	data, err := h.data.Load(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load finances"})
	}

	return c.JSON(financeSummary(data))
}

type newExpenseRequest struct {
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Note     string  `json:"note"`
}

func (h *FinanceHandler) AddExpense(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req newExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Amount must be positive"})
	}
	if !models.ValidExpenseCategory(req.Category) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid expense category"})
	}

	expense := models.Expense{
		ID:        uuid.NewString(),
		Amount:    req.Amount,
		Category:  req.Category,
		Note:      strings.TrimSpace(req.Note),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	data, err := h.data.Update(c.Context(), userID, func(data *models.UserData) error {
		data.Expenses = append([]models.Expense{expense}, data.Expenses...)
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add expense"})
	}

	resp := financeSummary(data)
	resp["expense"] = expense
	return c.Status(fiber.StatusCreated).JSON(resp)
}

var errExpenseNotFound = errors.New("expense not found")

func (h *FinanceHandler) DeleteExpense(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	expenseID := c.Params("id")

	data, err := h.data.Update(c.Context(), userID, func(data *models.UserData) error {
		for i, e := range data.Expenses {
			if e.ID == expenseID {
				data.Expenses = append(data.Expenses[:i], data.Expenses[i+1:]...)
				return nil
			}
		}
		return errExpenseNotFound
	})
	if err != nil {
		if errors.Is(err, errExpenseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Expense not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete expense"})
	}

	return c.JSON(financeSummary(data))
}

type budgetRequest struct {
	WeeklyBudget float64 `json:"weeklyBudget"`
}

func (h *FinanceHandler) SetBudget(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req budgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.WeeklyBudget < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Budget cannot be negative"})
	}

	data, err := h.data.Update(c.Context(), userID, func(data *models.UserData) error {
		data.FinanceSettings.WeeklyBudget = req.WeeklyBudget
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update budget"})
	}

	return c.JSON(financeSummary(data))
}

// financeSummary reports spend against the weekly budget. Remaining goes
// negative on overspend while the percentage stays capped at 100.
func financeSummary(data *models.UserData) fiber.Map {
	spent := services.TotalSpent(data.Expenses)
	budget := data.FinanceSettings.WeeklyBudget
	return fiber.Map{
		"expenses":       data.Expenses,
		"weekly_budget":  budget,
		"total_spent":    spent,
		"remaining":      budget - spent,
		"budget_percent": services.BudgetPercentage(data.Expenses, budget),
	}
}
