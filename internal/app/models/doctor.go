package models

import "time"

// Doctor is keyed by email. Timeslots hold the published availability; a slot
// leaves the set when booked and returns on cancellation.
type Doctor struct {
	ID        string      `bson:"_id,omitempty"`
	Email     string      `bson:"email"`
	Name      string      `bson:"name"`
	Timeslots []time.Time `bson:"timeslots"`
	TimeModel `bson:",inline"`
}

func (d *Doctor) HasTimeslot(slot time.Time) bool {
	for _, s := range d.Timeslots {
		if s.Equal(slot) {
			return true
		}
	}
	return false
}
