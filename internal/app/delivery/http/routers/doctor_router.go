package routers

import (
	"theramind-service/internal/app/delivery/http/controllers"
	"theramind-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, middlewares *middlewares.Middlewares, doctorController *controllers.DoctorController) {
	router.Get("/", doctorController.FindAll)
	router.Get("/{doctorEmail}", doctorController.FindByEmail)
	router.Post("/", doctorController.CreateDoctor)
	router.With(middlewares.Authenticate).Put("/timeslots", doctorController.SetTimeslots)
}
