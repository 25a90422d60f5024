// Package queue owns the booking act and the consult lifecycle. A booking
// assigns one eligible doctor and a sequential token within the
// (hospital, date) scope; the queue itself is a read-time sort by urgency
// then token.
package queue

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/SOUNDAR42/medicare-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DateLayout is the day-granular scope key for tokens and queues.
const DateLayout = "2006-01-02"

// Book selects an eligible doctor at the hospital, assigns the next token in
// the (hospital, date) scope and creates a Pending appointment. Eligible
// means an accepted affiliation with availability on. Among eligible doctors
// the one with the fewest Pending appointments for that date wins, ties going
// to the lowest doctor id. The whole act runs in one transaction: a failed
// booking consumes no token number and leaves no partial record.
func Book(db *gorm.DB, patientID int, hospitalID uint, date time.Time, urgencyScore int) (*models.Appointment, error) {
	day := date.Format(DateLayout)

	var appointment models.Appointment
	err := db.Transaction(func(tx *gorm.DB) error {
		var patient models.Patient
		if err := tx.Where("patient_id = ?", patientID).First(&patient).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}

		var hospital models.Hospital
		if err := tx.Where("hospital_id = ?", hospitalID).First(&hospital).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}

		assigned, err := selectDoctor(tx, hospitalID, day)
		if err != nil {
			return err
		}

		token, err := nextToken(tx, hospitalID, day)
		if err != nil {
			return err
		}

		appointment = models.Appointment{
			AppointmentID:   uuid.NewString(),
			PatientID:       patientID,
			AffiliationID:   assigned.AffiliationID,
			DoctorID:        assigned.DoctorID,
			HospitalID:      hospitalID,
			TokenNo:         token,
			AppointmentDate: day,
			UrgencyScore:    urgencyScore,
			Status:          models.AppointmentPending,
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// selectDoctor picks the accepted+available affiliation with the lightest
// Pending load for the date. Affiliations are scanned in doctor id order so
// equal loads resolve deterministically to the lowest id.
func selectDoctor(tx *gorm.DB, hospitalID uint, day string) (*models.Affiliation, error) {
	var eligible []models.Affiliation
	if err := tx.Where("hospital_id = ? AND state = ? AND available = ?",
		hospitalID, models.AffiliationAccepted, true).
		Order("doctor_id").Find(&eligible).Error; err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, models.ErrNoAvailableDoctor
	}

	var assigned *models.Affiliation
	minLoad := int64(-1)
	for i := range eligible {
		var load int64
		if err := tx.Model(&models.Appointment{}).
			Where("doctor_id = ? AND hospital_id = ? AND appointment_date = ? AND status = ?",
				eligible[i].DoctorID, hospitalID, day, models.AppointmentPending).
			Count(&load).Error; err != nil {
			return nil, err
		}
		if minLoad < 0 || load < minLoad {
			minLoad = load
			assigned = &eligible[i]
		}
	}
	return assigned, nil
}

// nextToken increments the per-(hospital, date) sequence under a row lock so
// concurrent bookings never share a token number.
func nextToken(tx *gorm.DB, hospitalID uint, day string) (string, error) {
	var seq models.TokenSequence
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("hospital_id = ? AND date = ?", hospitalID, day).
		First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq = models.TokenSequence{HospitalID: hospitalID, Date: day}
	} else if err != nil {
		return "", err
	}
	seq.LastNo++
	if err := tx.Save(&seq).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("T%d", seq.LastNo), nil
}

// Advance moves an appointment one step forward: Pending to Consulting, or
// Consulting to Completed. Only the assigned doctor may advance, and steps
// cannot be skipped.
func Advance(db *gorm.DB, appointmentID string, actor models.DoctorActor) (*models.Appointment, error) {
	var appointment models.Appointment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("appointment_id = ?", appointmentID).
			First(&appointment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}
		if appointment.DoctorID != actor.DoctorID {
			return models.ErrForbidden
		}
		switch appointment.Status {
		case models.AppointmentPending:
			appointment.Status = models.AppointmentConsulting
		case models.AppointmentConsulting:
			appointment.Status = models.AppointmentCompleted
		default:
			return models.ErrInvalidState
		}
		return tx.Save(&appointment).Error
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Cancel marks a Pending appointment Cancelled. The owning patient or the
// assigned doctor may cancel; the token slot is not reclaimed, so later
// queues simply show a gap.
func Cancel(db *gorm.DB, appointmentID string, actor models.Actor) (*models.Appointment, error) {
	var appointment models.Appointment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("appointment_id = ?", appointmentID).
			First(&appointment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}
		if !mayCancel(actor, appointment) {
			return models.ErrForbidden
		}
		if appointment.Status != models.AppointmentPending {
			return models.ErrInvalidState
		}
		appointment.Status = models.AppointmentCancelled
		return tx.Save(&appointment).Error
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func mayCancel(actor models.Actor, appointment models.Appointment) bool {
	switch a := actor.(type) {
	case models.PatientActor:
		return a.PatientID == appointment.PatientID
	case models.DoctorActor:
		return a.DoctorID == appointment.DoctorID
	default:
		return false
	}
}

// QueueFor returns the doctor's queue at a hospital for a date, ordered by
// urgency score descending then token number ascending. The token tie-break
// compares the numeric suffix, so T10 sorts after T2. A later, more urgent
// booking therefore overtakes an earlier, less urgent one still Pending.
func QueueFor(db *gorm.DB, hospitalID, doctorID uint, date time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := db.Where("hospital_id = ? AND doctor_id = ? AND appointment_date = ?",
		hospitalID, doctorID, date.Format(DateLayout)).
		Find(&appointments).Error; err != nil {
		return nil, err
	}
	sortQueue(appointments)
	return appointments, nil
}

// ListForHospital returns every appointment booked into the hospital, most
// recent date first, tokens in numeric order within a date.
func ListForHospital(db *gorm.DB, hospitalID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := db.Where("hospital_id = ?", hospitalID).Find(&appointments).Error; err != nil {
		return nil, err
	}
	sort.SliceStable(appointments, func(i, j int) bool {
		if appointments[i].AppointmentDate != appointments[j].AppointmentDate {
			return appointments[i].AppointmentDate > appointments[j].AppointmentDate
		}
		return TokenNumber(appointments[i].TokenNo) < TokenNumber(appointments[j].TokenNo)
	})
	return appointments, nil
}

// ListForPatient returns the patient's appointment history, newest first.
func ListForPatient(db *gorm.DB, patientID int) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := db.Where("patient_id = ?", patientID).
		Order("created_at DESC").Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func sortQueue(appointments []models.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		if appointments[i].UrgencyScore != appointments[j].UrgencyScore {
			return appointments[i].UrgencyScore > appointments[j].UrgencyScore
		}
		return TokenNumber(appointments[i].TokenNo) < TokenNumber(appointments[j].TokenNo)
	})
}

// TokenNumber extracts the integer suffix of a token like "T12".
func TokenNumber(token string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(token, "T"))
	if err != nil {
		return 0
	}
	return n
}
