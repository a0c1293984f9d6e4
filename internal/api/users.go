package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"splitpal/internal/middleware"
	"splitpal/internal/models"
	"splitpal/internal/service"
)

// UserHandler handles registration, login, profile, and friendships.
type UserHandler struct {
	users    *service.UserService
	validate *validator.Validate
}

// NewUserHandler creates a UserHandler over the user service.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users, validate: validator.New()}
}

// Register handles POST /api/users/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(w, err)
		return
	}

	user := &models.User{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		MobileNo:        req.MobileNo,
		DefaultCurrency: req.DefaultCurrency,
	}
	token, err := h.users.Register(r.Context(), user, req.Password)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, AuthResponse{
		User:  newUserResponse(user),
		Token: token,
	})
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(w, err)
		return
	}

	user, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, AuthResponse{
		User:  newUserResponse(user),
		Token: token,
	})
}

// Me handles GET /api/users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Profile(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, newUserResponse(user))
}

// RequestFriend handles POST /api/friends/request.
func (h *UserHandler) RequestFriend(w http.ResponseWriter, r *http.Request) {
	var req FriendRequestRequest
	if err := DecodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(w, err)
		return
	}

	friendship, err := h.users.RequestFriend(r.Context(), middleware.GetUserID(r.Context()), req.ToUserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, newFriendshipResponse(friendship))
}

// RespondFriend handles POST /api/friends/{id}/respond.
func (h *UserHandler) RespondFriend(w http.ResponseWriter, r *http.Request) {
	var req FriendRespondRequest
	if err := DecodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(w, err)
		return
	}

	friendship, err := h.users.RespondFriend(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "id"),
		req.Action == "accept",
	)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, newFriendshipResponse(friendship))
}

// ListFriends handles GET /api/friends.
func (h *UserHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := h.users.ListFriends(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]UserResponse, len(friends))
	for i := range friends {
		out[i] = newUserResponse(&friends[i])
	}
	RespondWithJSON(w, http.StatusOK, out)
}
