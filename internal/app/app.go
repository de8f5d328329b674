package app

import (
	"net/http"
	"pms/internal/app/deps"
	"pms/internal/app/services"
	"pms/internal/http/handlers/auth"
	changepassword "pms/internal/http/handlers/auth/change_password"
	loginwithemail "pms/internal/http/handlers/auth/log_in_with_email"
	logout "pms/internal/http/handlers/auth/log_out"
	"pms/internal/http/handlers/auth/me"
	registeruser "pms/internal/http/handlers/auth/register_user"
	resetpassword "pms/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "pms/internal/http/handlers/auth/send_password_reset_token"
	"pms/internal/http/handlers/response"
	deleteuser "pms/internal/http/handlers/users/delete_user"
	getuser "pms/internal/http/handlers/users/get_user"
	listusers "pms/internal/http/handlers/users/list_users"
	updateuser "pms/internal/http/handlers/users/update_user"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

const WelcomeMessage = "Welcome to Mobiloitte PMS API"

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	return &http.Server{
		Handler: NewRouter(deps.Config.AllowedOrigins, s),
		Addr:    "0.0.0.0:" + deps.Config.Port,
	}
}

func NewRouter(allowedOrigins []string, s *services.Services) http.Handler {
	requestResetToken := sendpasswordresettoken.New(s.SendPasswordResetToken)
	confirmReset := resetpassword.New(s.ResetPassword)

	resetRouter := chi.NewRouter()
	resetRouter.Method(http.MethodPost, "/request", requestResetToken)
	resetRouter.Method(http.MethodPost, "/confirm/{token}", confirmReset)

	usersRouter := chi.NewRouter()
	usersRouter.Use(auth.SetAuthTokenToContext)
	usersRouter.Method(http.MethodPost, "/register", registeruser.New(s.RegisterUser))
	usersRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
	usersRouter.Method(http.MethodPost, "/logout", logout.New(s.LogOut))
	usersRouter.Method(http.MethodGet, "/profile", me.New(s.GetUserBySessionToken))
	usersRouter.Method(http.MethodPut, "/password", changepassword.New(s.ChangePassword))
	usersRouter.Method(http.MethodPost, "/forgotpassword", requestResetToken)
	usersRouter.Method(http.MethodPut, "/resetpassword/{token}", confirmReset)
	usersRouter.Method(http.MethodGet, "/", listusers.New(s.ListUsers))
	usersRouter.Method(http.MethodGet, "/{id}", getuser.New(s.GetUser))
	usersRouter.Method(http.MethodPut, "/{id}", updateuser.New(s.UpdateUser))
	usersRouter.Method(http.MethodDelete, "/{id}", deleteuser.New(s.DeleteUser))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.NotFound(func(rw http.ResponseWriter, r *http.Request) {
		response.RenderNotFound(rw)
	})
	router.MethodNotAllowed(func(rw http.ResponseWriter, r *http.Request) {
		response.RenderNotFound(rw)
	})
	router.Get("/", func(rw http.ResponseWriter, r *http.Request) {
		response.RenderSuccess(rw, http.StatusOK, WelcomeMessage, nil)
	})
	router.Mount("/reset", resetRouter)
	router.Mount("/api/users", usersRouter)

	return router
}
