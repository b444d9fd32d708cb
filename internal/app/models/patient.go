package models

type Patient struct {
	ID        string `bson:"_id,omitempty"`
	Email     string `bson:"email"`
	Name      string `bson:"name"`
	Verified  bool   `bson:"verified"`
	TimeModel `bson:",inline"`
}
