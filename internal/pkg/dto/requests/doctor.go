package requests

type CreateDoctorRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

type SetTimeslotsRequest struct {
	Timeslots []string `json:"timeslots" validate:"dive,required"`
}
