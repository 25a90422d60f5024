package models

import "time"

type AffiliationState string

const (
	AffiliationInvited  AffiliationState = "invited"
	AffiliationAccepted AffiliationState = "accepted"
	AffiliationDeclined AffiliationState = "declined"
)

// Affiliation is the doctor-hospital relationship. Fee, working hours and
// availability belong here rather than on the doctor: a doctor may charge and
// work differently at each hospital. At most one row exists per
// (doctor, hospital) pair.
type Affiliation struct {
	AffiliationID    uint             `gorm:"primaryKey" json:"affiliation_id"`
	DoctorID         uint             `json:"doctor_id" gorm:"not null;uniqueIndex:idx_doctor_hospital"`
	HospitalID       uint             `json:"hospital_id" gorm:"not null;uniqueIndex:idx_doctor_hospital"`
	SpecializationID uint             `json:"specialization_id"`
	State            AffiliationState `json:"state" gorm:"not null"`
	Available        bool             `json:"available"`
	Fee              uint32           `json:"fee"`
	WorkingHours     string           `json:"working_hours"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
