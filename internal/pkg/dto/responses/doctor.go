package responses

import "time"

type Doctor struct {
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Timeslots []time.Time `json:"timeslots"`
}
