package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"splitpal/internal/auth"
	"splitpal/internal/middleware"
	"splitpal/internal/service"
)

// NewRouter assembles the full route tree. Registration and login are
// public; everything else under /api requires a bearer token.
func NewRouter(
	jwt *auth.JWTManager,
	users *service.UserService,
	groups *service.GroupService,
	expenses *service.ExpenseService,
) http.Handler {
	userHandler := NewUserHandler(users)
	groupHandler := NewGroupHandler(groups, expenses)
	expenseHandler := NewExpenseHandler(expenses)

	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/register", userHandler.Register)
		r.Post("/users/login", userHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwt))

			r.Get("/users/me", userHandler.Me)

			r.Post("/friends/request", userHandler.RequestFriend)
			r.Post("/friends/{id}/respond", userHandler.RespondFriend)
			r.Get("/friends", userHandler.ListFriends)

			r.Post("/groups", groupHandler.Create)
			r.Get("/groups/{id}", groupHandler.Get)
			r.Post("/groups/{id}/members", groupHandler.AddMembers)
			r.Get("/groups/{id}/expenses", groupHandler.ListExpenses)

			r.Post("/expenses", expenseHandler.Create)
			r.Get("/expenses/{id}", expenseHandler.Get)
		})
	})

	return r
}
