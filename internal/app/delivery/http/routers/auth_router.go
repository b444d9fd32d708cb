package routers

import (
	"theramind-service/internal/app/delivery/http/controllers"
	"theramind-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	router.Post("/login", authController.Login)
	router.With(middlewares.Authenticate).Post("/calendar-consent", authController.CalendarConsent)
	router.With(middlewares.Authenticate).Post("/logout", authController.Logout)
}
