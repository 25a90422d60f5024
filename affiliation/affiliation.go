// Package affiliation owns the doctor-hospital relationship lifecycle:
// a hospital invites a doctor, the doctor accepts or declines, and an
// accepted doctor's availability can be toggled by either party.
package affiliation

import (
	"errors"

	"github.com/SOUNDAR42/medicare-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DoctorIdentifier resolves a doctor either by internal id or by contact
// phone number. Exactly one of the two is set, via ByID or ByContact.
type DoctorIdentifier struct {
	id    uint
	phone string
}

func ByID(id uint) DoctorIdentifier {
	return DoctorIdentifier{id: id}
}

func ByContact(phone string) DoctorIdentifier {
	return DoctorIdentifier{phone: phone}
}

// Resolve looks the doctor up in the directory.
func (ident DoctorIdentifier) Resolve(db *gorm.DB) (*models.Doctor, error) {
	var doctor models.Doctor
	var err error
	if ident.id != 0 {
		err = db.Where("doctor_id = ?", ident.id).First(&doctor).Error
	} else {
		err = db.Where("phone = ?", ident.phone).First(&doctor).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &doctor, nil
}

type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionDecline Decision = "decline"
)

type InviteParams struct {
	SpecializationID uint
	Fee              uint32
	WorkingHours     string
}

// Invite creates an affiliation in the invited state. A declined pair may be
// re-invited; since at most one row exists per (doctor, hospital), the
// declined row is reset to invited with the new terms. An invited or
// accepted pair cannot be invited again.
func Invite(db *gorm.DB, actor models.HospitalActor, doctor DoctorIdentifier, params InviteParams) (*models.Affiliation, error) {
	var hospital models.Hospital
	if err := db.Where("hospital_id = ?", actor.HospitalID).First(&hospital).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	resolved, err := doctor.Resolve(db)
	if err != nil {
		return nil, err
	}

	var affiliation models.Affiliation
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing models.Affiliation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("doctor_id = ? AND hospital_id = ?", resolved.DoctorID, actor.HospitalID).
			First(&existing).Error
		switch {
		case err == nil:
			if existing.State != models.AffiliationDeclined {
				return models.ErrConflict
			}
			existing.State = models.AffiliationInvited
			existing.Available = false
			existing.SpecializationID = params.SpecializationID
			existing.Fee = params.Fee
			existing.WorkingHours = params.WorkingHours
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			affiliation = existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			affiliation = models.Affiliation{
				DoctorID:         resolved.DoctorID,
				HospitalID:       actor.HospitalID,
				SpecializationID: params.SpecializationID,
				State:            models.AffiliationInvited,
				Available:        false,
				Fee:              params.Fee,
				WorkingHours:     params.WorkingHours,
			}
			return tx.Create(&affiliation).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &affiliation, nil
}

// Respond records the invited doctor's accept or decline decision. Accepting
// marks the doctor available by default; declining is terminal.
func Respond(db *gorm.DB, affiliationID uint, actor models.DoctorActor, decision Decision) (*models.Affiliation, error) {
	var affiliation models.Affiliation
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("affiliation_id = ?", affiliationID).
			First(&affiliation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}
		if affiliation.DoctorID != actor.DoctorID {
			return models.ErrForbidden
		}
		if affiliation.State != models.AffiliationInvited {
			return models.ErrInvalidState
		}
		switch decision {
		case DecisionAccept:
			affiliation.State = models.AffiliationAccepted
			affiliation.Available = true
		case DecisionDecline:
			affiliation.State = models.AffiliationDeclined
			affiliation.Available = false
		default:
			return models.ErrInvalidState
		}
		return tx.Save(&affiliation).Error
	})
	if err != nil {
		return nil, err
	}
	return &affiliation, nil
}

// ToggleAvailability flips the availability flag of an accepted affiliation.
// Either party of the affiliation may toggle; the row is locked so two
// concurrent toggles cannot lose an update.
func ToggleAvailability(db *gorm.DB, affiliationID uint, actor models.Actor) (*models.Affiliation, error) {
	var affiliation models.Affiliation
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("affiliation_id = ?", affiliationID).
			First(&affiliation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}
		if !mayToggle(actor, affiliation) {
			return models.ErrForbidden
		}
		if affiliation.State != models.AffiliationAccepted {
			return models.ErrInvalidState
		}
		affiliation.Available = !affiliation.Available
		return tx.Save(&affiliation).Error
	})
	if err != nil {
		return nil, err
	}
	return &affiliation, nil
}

func mayToggle(actor models.Actor, affiliation models.Affiliation) bool {
	switch a := actor.(type) {
	case models.DoctorActor:
		return a.DoctorID == affiliation.DoctorID
	case models.HospitalActor:
		return a.HospitalID == affiliation.HospitalID
	default:
		return false
	}
}

// ListForDoctor returns all affiliations of a doctor regardless of state.
func ListForDoctor(db *gorm.DB, doctorID uint) ([]models.Affiliation, error) {
	var affiliations []models.Affiliation
	if err := db.Where("doctor_id = ?", doctorID).Order("affiliation_id").Find(&affiliations).Error; err != nil {
		return nil, err
	}
	return affiliations, nil
}

// ListForHospital returns all affiliations of a hospital regardless of state.
func ListForHospital(db *gorm.DB, hospitalID uint) ([]models.Affiliation, error) {
	var affiliations []models.Affiliation
	if err := db.Where("hospital_id = ?", hospitalID).Order("affiliation_id").Find(&affiliations).Error; err != nil {
		return nil, err
	}
	return affiliations, nil
}
