package models

import "github.com/harentsoaR/doctor-portfolio-api/internal/store"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

const (
	AppointmentName   store.Field = "name"
	AppointmentEmail  store.Field = "email"
	AppointmentPhone  store.Field = "phone"
	AppointmentDate   store.Field = "date"
	AppointmentTime   store.Field = "time"
	AppointmentNote   store.Field = "note"
	AppointmentStatus store.Field = "status"
)

// Appointments is the collection of patient bookings.
var Appointments = store.Collection{
	Name: "appointment",
	Fields: []store.Field{
		AppointmentName, AppointmentEmail, AppointmentPhone, AppointmentDate,
		AppointmentTime, AppointmentNote, AppointmentStatus,
	},
}

// AppointmentInput is the client-writable part of an appointment.
type AppointmentInput struct {
	Name  string  `bson:"name" json:"name" binding:"required"`
	Email string  `bson:"email" json:"email" binding:"required,email"`
	Phone *string `bson:"phone" json:"phone"`
	Date  string  `bson:"date" json:"date" binding:"required,isodate"` // YYYY-MM-DD
	Time  string  `bson:"time" json:"time" binding:"required"`         // free-text slot label, e.g. "10:30 AM"
	Note  *string `bson:"note" json:"note"`
	// No transition rules are enforced between statuses.
	Status string `bson:"status" json:"status" binding:"oneof=pending confirmed cancelled"`
}

// NewAppointmentInput returns an input carrying the schema defaults, ready
// to be decoded into.
func NewAppointmentInput() AppointmentInput {
	return AppointmentInput{Status: StatusPending}
}

// Normalize canonicalizes the email the same way for every booking.
func (in *AppointmentInput) Normalize() {
	in.Email = NormalizeEmail(in.Email)
}

// Appointment is a stored booking.
type Appointment struct {
	Record           `bson:",inline"`
	AppointmentInput `bson:",inline"`
}
