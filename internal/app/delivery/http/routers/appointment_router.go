package routers

import (
	"theramind-service/internal/app/delivery/http/controllers"
	"theramind-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.Use(middlewares.Authenticate)

	router.Post("/", appointmentController.Book)
	router.Get("/", appointmentController.FindAll)
	router.Get("/{appointmentID}", appointmentController.FindByID)
	router.Delete("/{appointmentID}", appointmentController.Cancel)
	router.Put("/{appointmentID}/reschedule", appointmentController.Reschedule)
}
