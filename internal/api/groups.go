package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"splitpal/internal/middleware"
	"splitpal/internal/models"
	"splitpal/internal/service"
)

// GroupHandler handles group creation and membership endpoints.
type GroupHandler struct {
	groups   *service.GroupService
	expenses *service.ExpenseService
	validate *validator.Validate
}

// NewGroupHandler creates a GroupHandler. The expense service backs the
// per-group expense listing.
func NewGroupHandler(groups *service.GroupService, expenses *service.ExpenseService) *GroupHandler {
	return &GroupHandler{groups: groups, expenses: expenses, validate: validator.New()}
}

// Create handles POST /api/groups.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if err := DecodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(w, err)
		return
	}

	group, err := h.groups.CreateGroup(
		r.Context(),
		req.Name,
		models.GroupType(req.GroupType),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, newGroupResponse(group))
}

// Get handles GET /api/groups/{id}.
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.GetGroup(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, newGroupResponse(group))
}

// AddMembers handles POST /api/groups/{id}/members. The response reports
// every requested id under exactly one outcome bucket.
func (h *GroupHandler) AddMembers(w http.ResponseWriter, r *http.Request) {
	var req AddMembersRequest
	if err := DecodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(w, err)
		return
	}

	result, err := h.groups.AddMembers(
		r.Context(),
		chi.URLParam(r, "id"),
		middleware.GetUserID(r.Context()),
		req.MemberIDs,
	)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, result)
}

// ListExpenses handles GET /api/groups/{id}/expenses.
func (h *GroupHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenses.ListGroupExpenses(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = newExpenseResponse(&expenses[i])
	}
	RespondWithJSON(w, http.StatusOK, out)
}
