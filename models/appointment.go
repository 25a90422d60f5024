package models

import "time"

type AppointmentStatus string

const (
	AppointmentPending    AppointmentStatus = "Pending"
	AppointmentConsulting AppointmentStatus = "Consulting"
	AppointmentCompleted  AppointmentStatus = "Completed"
	AppointmentCancelled  AppointmentStatus = "Cancelled"
)

type Appointment struct {
	AppointmentID   string            `gorm:"primaryKey" json:"appointment_id"`
	PatientID       int               `json:"patient_id" gorm:"not null"`
	AffiliationID   uint              `json:"affiliation_id" gorm:"not null"`
	DoctorID        uint              `json:"doctor_id" gorm:"not null"`
	HospitalID      uint              `json:"hospital_id" gorm:"not null"`
	TokenNo         string            `json:"token_no" gorm:"not null"`
	AppointmentDate string            `json:"appointment_date" gorm:"not null"`
	UrgencyScore    int               `json:"urgency_score" gorm:"not null"`
	Status          AppointmentStatus `json:"status" gorm:"not null"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// TokenSequence is the per-(hospital, date) token counter. The row is taken
// with a FOR UPDATE lock while booking so two concurrent bookings can never
// be issued the same token number.
type TokenSequence struct {
	ID         uint   `gorm:"primaryKey"`
	HospitalID uint   `gorm:"not null;uniqueIndex:idx_hospital_date"`
	Date       string `gorm:"not null;uniqueIndex:idx_hospital_date"`
	LastNo     int    `gorm:"not null"`
}
