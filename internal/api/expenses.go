package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"splitpal/internal/middleware"
	"splitpal/internal/service"
	"splitpal/internal/split"
)

// ExpenseHandler handles expense creation and retrieval.
type ExpenseHandler struct {
	expenses *service.ExpenseService
	validate *validator.Validate
}

// NewExpenseHandler creates an ExpenseHandler over the expense service.
func NewExpenseHandler(expenses *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, validate: validator.New()}
}

// Create handles POST /api/expenses. The authenticated user is the payer.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := DecodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(w, err)
		return
	}

	draft := split.Draft{
		Amount:      req.Amount,
		Description: req.Description,
		Type:        split.Type(req.SplitType),
		PaidBy:      middleware.GetUserID(r.Context()),
		GroupID:     req.GroupID,
	}
	inputs := make([]split.Input, len(req.Splits))
	for i, in := range req.Splits {
		inputs[i] = split.Input{
			Participant: in.UserID,
			Amount:      in.Amount,
			Percent:     in.Percent,
			Shares:      in.Shares,
		}
	}

	expense, err := h.expenses.CreateExpense(r.Context(), draft, inputs)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, newExpenseResponse(expense))
}

// Get handles GET /api/expenses/{id}.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	expense, err := h.expenses.GetExpense(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, newExpenseResponse(expense))
}
