package models

import "github.com/harentsoaR/doctor-portfolio-api/internal/store"

const (
	SettingsNotificationEmail store.Field = "notification_email"
	SettingsAvailableSlots    store.Field = "available_slots"
)

// Settings holds at most one document. Nothing in the store enforces that.
var Settings = store.Collection{
	Name:   "doctorsettings",
	Fields: []store.Field{SettingsNotificationEmail, SettingsAvailableSlots},
}

type DoctorSettingsInput struct {
	NotificationEmail string   `bson:"notification_email" json:"notification_email" binding:"required,email"`
	AvailableSlots    []string `bson:"available_slots" json:"available_slots"`
}

func NewDoctorSettingsInput() DoctorSettingsInput {
	return DoctorSettingsInput{AvailableSlots: []string{}}
}

func (in *DoctorSettingsInput) Normalize() {
	in.NotificationEmail = NormalizeEmail(in.NotificationEmail)
	if in.AvailableSlots == nil {
		in.AvailableSlots = []string{}
	}
}

type DoctorSettings struct {
	Record              `bson:",inline"`
	DoctorSettingsInput `bson:",inline"`
}

// DefaultAvailableSlots is served while no settings document exists.
func DefaultAvailableSlots() []string {
	return []string{"09:00", "10:00", "11:00", "14:00", "15:00"}
}

// DefaultSettings is the synthesized, never persisted fallback.
func DefaultSettings(notificationEmail string) DoctorSettingsInput {
	return DoctorSettingsInput{
		NotificationEmail: notificationEmail,
		AvailableSlots:    DefaultAvailableSlots(),
	}
}
